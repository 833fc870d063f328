// Copyright 2016 - 2025 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package sheetkit

import "container/list"

// lruCache implements an LRU (Least Recently Used) cache with a maximum
// size limit. When the cache is full, the least recently used item is
// evicted to make room for new items. The style table uses it to remember
// the classification of number format codes.
type lruCache[V any] struct {
	capacity int
	cache    map[string]*list.Element
	lruList  *list.List
}

// lruEntry represents a key-value pair in the LRU cache.
type lruEntry[V any] struct {
	key   string
	value V
}

// newLRUCache creates a new LRU cache with the specified capacity, a
// non-positive capacity falls back to the default one.
func newLRUCache[V any](capacity int) *lruCache[V] {
	if capacity <= 0 {
		capacity = defaultFormatCacheSize
	}
	return &lruCache[V]{
		capacity: capacity,
		cache:    make(map[string]*list.Element),
		lruList:  list.New(),
	}
}

// Load retrieves a value from the cache and marks it as the most recently
// used one.
func (c *lruCache[V]) Load(key string) (V, bool) {
	if elem, ok := c.cache[key]; ok {
		c.lruList.MoveToFront(elem)
		return elem.Value.(*lruEntry[V]).value, true
	}
	var zero V
	return zero, false
}

// Store adds or updates a value in the cache. If the cache is at capacity,
// the least recently used item is evicted. Returns true if an item was
// evicted.
func (c *lruCache[V]) Store(key string, value V) bool {
	if elem, ok := c.cache[key]; ok {
		c.lruList.MoveToFront(elem)
		elem.Value.(*lruEntry[V]).value = value
		return false
	}
	evicted := false
	if c.lruList.Len() >= c.capacity {
		if oldest := c.lruList.Back(); oldest != nil {
			c.lruList.Remove(oldest)
			delete(c.cache, oldest.Value.(*lruEntry[V]).key)
			evicted = true
		}
	}
	c.cache[key] = c.lruList.PushFront(&lruEntry[V]{key: key, value: value})
	return evicted
}

// Clear removes all items from the cache.
func (c *lruCache[V]) Clear() {
	c.cache = make(map[string]*list.Element)
	c.lruList = list.New()
}

// Len returns the current number of items in the cache.
func (c *lruCache[V]) Len() int {
	return c.lruList.Len()
}

// Delete removes a key from the cache. Returns true if the key was present.
func (c *lruCache[V]) Delete(key string) bool {
	if elem, ok := c.cache[key]; ok {
		c.lruList.Remove(elem)
		delete(c.cache, key)
		return true
	}
	return false
}
