// Copyright 2016 - 2025 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package sheetkit

import (
	"bytes"
	"encoding/xml"
	"path"
	"strconv"
	"strings"

	"github.com/OmniMCP-AI/sheetkit/xmltree"
)

// relationships is the relationship part of one source part. Entries that
// the model does not manage are kept as read.
type relationships struct {
	items []xlsxRelationship
	seq   int
}

// relsPathFor returns the path of the relationship part of a part, for
// example xl/worksheets/_rels/sheet1.xml.rels for xl/worksheets/sheet1.xml.
func relsPathFor(part string) string {
	dir, file := path.Split(cleanPartName(part))
	return dir + "_rels/" + file + ".rels"
}

// resolveTarget resolves a relationship target against the directory of the
// source part. Absolute targets start at the package root.
func resolveTarget(source, target string) string {
	if strings.HasPrefix(target, "/") {
		return cleanPartName(target)
	}
	return cleanPartName(path.Join(path.Dir(cleanPartName(source)), target))
}

// relativeTarget returns the target of a relationship from source to part.
func relativeTarget(source, part string) string {
	from := strings.Split(path.Dir(cleanPartName(source)), "/")
	to := strings.Split(cleanPartName(part), "/")
	if from[0] == "." {
		from = nil
	}
	i := 0
	for i < len(from) && i < len(to)-1 && from[i] == to[i] {
		i++
	}
	var parts []string
	for j := i; j < len(from); j++ {
		parts = append(parts, "..")
	}
	parts = append(parts, to[i:]...)
	return strings.Join(parts, "/")
}

// relTypeIs reports whether a relationship type matches the wanted
// transitional type, strict conformance types share the same tail.
func relTypeIs(actual, want string) bool {
	if actual == want {
		return true
	}
	if i := strings.LastIndex(want, "/relationships/"); i >= 0 {
		return strings.HasSuffix(actual, want[i:])
	}
	return false
}

// readRelationships provides a function to read the relationship part at
// the given path, a missing or malformed part reads as empty.
func (wb *Workbook) readRelationships(name string) *relationships {
	rels := &relationships{}
	content, ok := wb.pkg.Get(name)
	if !ok {
		return rels
	}
	var decoded xlsxRelationships
	if err := xml.NewDecoder(bytes.NewReader(content)).Decode(&decoded); err != nil {
		wb.options.logf("sheetkit: ignoring malformed relationships %s: %v", name, err)
		return rels
	}
	rels.items = decoded.Relationships
	return rels
}

// maxID returns the largest numeric suffix of the rIdN identifiers.
func (r *relationships) maxID() int {
	last := 0
	for _, rel := range r.items {
		if n, err := strconv.Atoi(strings.TrimPrefix(rel.ID, "rId")); err == nil && n > last {
			last = n
		}
	}
	return last
}

// add appends a relationship and returns its identifier, allocated above the
// largest one in use and above every one handed out before, so identifiers
// of removed relationships are never reused.
func (r *relationships) add(relType, target string) string {
	r.seq = max(r.seq, r.maxID()) + 1
	id := "rId" + strconv.Itoa(r.seq)
	r.items = append(r.items, xlsxRelationship{ID: id, Type: relType, Target: target})
	return id
}

// get returns the relationship with the given identifier.
func (r *relationships) get(id string) (xlsxRelationship, bool) {
	for _, rel := range r.items {
		if rel.ID == id {
			return rel, true
		}
	}
	return xlsxRelationship{}, false
}

// remove deletes the relationship with the given identifier.
func (r *relationships) remove(id string) {
	for i, rel := range r.items {
		if rel.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return
		}
	}
}

// ofType returns the relationships of the given type.
func (r *relationships) ofType(relType string) []xlsxRelationship {
	var list []xlsxRelationship
	for _, rel := range r.items {
		if relTypeIs(rel.Type, relType) {
			list = append(list, rel)
		}
	}
	return list
}

// len returns the number of relationships.
func (r *relationships) len() int {
	return len(r.items)
}

// clone returns an independent copy.
func (r *relationships) clone() *relationships {
	return &relationships{items: append([]xlsxRelationship(nil), r.items...), seq: r.seq}
}

// bytes serializes the relationship part.
func (r *relationships) bytes() ([]byte, error) {
	out, err := xml.Marshal(xlsxRelationships{Relationships: r.items})
	if err != nil {
		return nil, err
	}
	return append([]byte(xmltree.Header), out...), nil
}
