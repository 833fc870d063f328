// Copyright 2016 - 2025 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package sheetkit

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/OmniMCP-AI/sheetkit/xmltree"
)

// sharedStringItem is one entry of the shared string table. The parsed si
// element of a loaded entry is kept so that rich text runs and phonetic
// hints are written back as read.
type sharedStringItem struct {
	text string
	node *xmltree.Node
}

// SharedStringTable directly maps the shared string part. Entries are
// deduplicated by exact text, the index of an entry is the value cells of
// type "s" refer to.
type SharedStringTable struct {
	items []sharedStringItem
	index map[string]int
	count int
	root  *xmltree.Node
	dirty bool
}

func newSharedStringTable() *SharedStringTable {
	return &SharedStringTable{index: make(map[string]int)}
}

// AddString provides a function to register a string and return its index.
// A string seen before returns the existing index. Every call counts as
// one more use of the string.
func (sst *SharedStringTable) AddString(s string) int {
	sst.count++
	sst.dirty = true
	if idx, ok := sst.index[s]; ok {
		return idx
	}
	sst.items = append(sst.items, sharedStringItem{text: s})
	sst.index[s] = len(sst.items) - 1
	return len(sst.items) - 1
}

// GetString provides a function to get the text of the entry at the given
// index, rich text runs are concatenated.
func (sst *SharedStringTable) GetString(idx int) (string, bool) {
	if idx < 0 || idx >= len(sst.items) {
		return "", false
	}
	return sst.items[idx].text, true
}

// Count returns the total number of uses of shared strings, repeats
// included.
func (sst *SharedStringTable) Count() int {
	return sst.count
}

// UniqueCount returns the number of distinct entries.
func (sst *SharedStringTable) UniqueCount() int {
	return len(sst.items)
}

// IsDirty reports whether the table changed since it was loaded or saved.
func (sst *SharedStringTable) IsDirty() bool {
	return sst.dirty
}

// parseSharedStrings provides a function to read the shared string part.
// The declared total count is kept when it is not smaller than the number
// of entries.
func parseSharedStrings(content []byte) (*SharedStringTable, error) {
	doc, err := xmltree.ParseBytes(content)
	if err != nil {
		return nil, err
	}
	sst := newSharedStringTable()
	sst.root = doc.Root
	for _, si := range doc.Root.ChildrenNamed("si") {
		text := stringItemText(si)
		if _, ok := sst.index[text]; !ok {
			sst.index[text] = len(sst.items)
		}
		sst.items = append(sst.items, sharedStringItem{text: text, node: si})
	}
	sst.count = len(sst.items)
	if n, err := strconv.Atoi(doc.Root.Attr("count")); err == nil && n > sst.count {
		sst.count = n
	}
	return sst, nil
}

// stringItemText returns the plain text of a si or is element: its own t
// element, or the t elements of its runs in order. Phonetic runs are not
// part of the value.
func stringItemText(item *xmltree.Node) string {
	var sb strings.Builder
	for _, c := range item.Elements() {
		switch c.Local() {
		case "t":
			sb.WriteString(c.TextContent())
		case "r":
			sb.WriteString(c.Child("t").TextContent())
		}
	}
	return unescapeStringItem(sb.String())
}

// isEscapedChar reports whether s holds an _xHHHH_ escape at i.
func isEscapedChar(s string, i int) bool {
	if i+7 > len(s) || s[i] != '_' || s[i+1] != 'x' || s[i+6] != '_' {
		return false
	}
	for _, h := range s[i+2 : i+6] {
		if !('0' <= h && h <= '9' || 'a' <= h && h <= 'f' || 'A' <= h && h <= 'F') {
			return false
		}
	}
	return true
}

// isXMLChar reports whether r may appear in an XML 1.0 document.
func isXMLChar(r rune) bool {
	return r == '\t' || r == '\n' || r == '\r' ||
		r >= 0x20 && r <= 0xD7FF || r >= 0xE000 && r <= 0xFFFD || r >= 0x10000 && r <= 0x10FFFF
}

// escapeStringItem provides a function to write the characters XML can not
// carry as _xHHHH_ escapes. The underscore of text that already looks like
// an escape is written as _x005F_ so it reads back unchanged.
func escapeStringItem(s string) string {
	var sb strings.Builder
	for i, r := range s {
		switch {
		case !isXMLChar(r):
			fmt.Fprintf(&sb, "_x%04X_", r)
		case r == '_' && isEscapedChar(s, i):
			sb.WriteString("_x005F_")
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// unescapeStringItem provides a function to decode the _xHHHH_ escapes of a
// string item.
func unescapeStringItem(s string) string {
	if !strings.Contains(s, "_x") {
		return s
	}
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if isEscapedChar(s, i) {
			code, _ := strconv.ParseUint(s[i+2:i+6], 16, 16)
			sb.WriteRune(rune(code))
			i += 6
			continue
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}

// newTextElement returns a t element holding s, marked to preserve
// surrounding white space when s has any.
func newTextElement(name, s string) *xmltree.Node {
	t := xmltree.NewElement(name)
	if s != strings.TrimSpace(s) {
		t.SetAttr("xml:space", "preserve")
	}
	if s != "" {
		t.SetText(escapeStringItem(s))
	}
	return t
}

// bytes serializes the shared string part. Entries that came from a loaded
// part are written from their preserved element.
func (sst *SharedStringTable) bytes() []byte {
	root := sst.root
	if root == nil {
		root = xmltree.NewElement("sst", xmltree.Attr{Name: "xmlns", Value: NameSpaceSpreadSheet})
	} else {
		root = &xmltree.Node{Kind: root.Kind, Name: root.Name, Attrs: append([]xmltree.Attr(nil), root.Attrs...)}
	}
	prefix := xmltree.Prefix(root.Name)
	qualify := func(local string) string {
		if prefix == "" {
			return local
		}
		return prefix + ":" + local
	}
	root.SetAttr("count", strconv.Itoa(max(sst.count, len(sst.items))))
	root.SetAttr("uniqueCount", strconv.Itoa(len(sst.items)))
	for _, item := range sst.items {
		if item.node != nil {
			root.AppendChild(item.node)
			continue
		}
		root.AppendChild(xmltree.NewElement(qualify("si")).AppendChild(newTextElement(qualify("t"), item.text)))
	}
	for _, c := range sst.root.Elements() {
		if !c.Is("si") {
			root.AppendChild(c)
		}
	}
	return xmltree.NewDocument(root).Bytes()
}
