// Copyright 2016 - 2025 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package xmltree implements an ordered, generic XML node tree. Parsing
// keeps element order, qualified names as written (prefix included),
// attribute order, comments and every run of character data, so that a
// document which is parsed and serialized again is equivalent to its
// source. Callers replace only the subtrees they understand.
package xmltree

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/valyala/bytebufferpool"
	"golang.org/x/net/html/charset"
)

// Header is the declaration written in front of every serialized document.
const Header = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

// ErrNoRoot defined the error message on parse a document without a root
// element.
var ErrNoRoot = errors.New("xmltree: document has no root element")

// Kind is the type of a node.
type Kind uint8

// Node kinds.
const (
	ElementNode Kind = iota
	TextNode
	CommentNode
	ProcInstNode
	DirectiveNode
)

// Attr is an attribute with its qualified name as written, for example
// "r:id" or "xmlns:x14ac".
type Attr struct {
	Name  string
	Value string
}

// Node is an element, a run of character data, a comment, a processing
// instruction or a directive. Element nodes use Name, Attrs and Children;
// the other kinds carry their content in Text (and the target of a
// processing instruction in Name).
type Node struct {
	Kind     Kind
	Name     string
	Attrs    []Attr
	Children []*Node
	Text     string
}

// Document is a parsed XML document: the nodes before the root element
// (other than the XML declaration) and the root element itself.
type Document struct {
	Prolog []*Node
	Root   *Node
}

// NewElement returns an element node with the given qualified name and
// attributes.
func NewElement(name string, attrs ...Attr) *Node {
	return &Node{Kind: ElementNode, Name: name, Attrs: attrs}
}

// NewText returns a character data node.
func NewText(text string) *Node {
	return &Node{Kind: TextNode, Text: text}
}

// NewDocument returns a document rooted at the given element.
func NewDocument(root *Node) *Document {
	return &Document{Root: root}
}

// Parse reads a whole document. Non UTF-8 documents are decoded through the
// charset declared in their XML declaration.
func Parse(r io.Reader) (*Document, error) {
	dec := xml.NewDecoder(r)
	dec.Strict = false
	dec.CharsetReader = charset.NewReaderLabel
	var (
		doc   Document
		stack []*Node
	)
	for {
		tok, err := dec.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("xmltree: %w", err)
		}
		var node *Node
		switch t := tok.(type) {
		case xml.StartElement:
			el := NewElement(qualified(t.Name))
			for _, a := range t.Attr {
				el.Attrs = append(el.Attrs, Attr{Name: qualified(a.Name), Value: a.Value})
			}
			if len(stack) == 0 {
				if doc.Root != nil {
					return nil, fmt.Errorf("xmltree: multiple root elements")
				}
				doc.Root = el
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, el)
			}
			stack = append(stack, el)
			continue
		case xml.EndElement:
			if len(stack) == 0 {
				return nil, fmt.Errorf("xmltree: unexpected end element %s", qualified(t.Name))
			}
			stack = stack[:len(stack)-1]
			continue
		case xml.CharData:
			node = NewText(string(t))
		case xml.Comment:
			node = &Node{Kind: CommentNode, Text: string(t)}
		case xml.ProcInst:
			if t.Target == "xml" {
				continue
			}
			node = &Node{Kind: ProcInstNode, Name: t.Target, Text: string(t.Inst)}
		case xml.Directive:
			node = &Node{Kind: DirectiveNode, Text: string(t)}
		default:
			continue
		}
		if len(stack) == 0 {
			if node.Kind == TextNode && strings.TrimSpace(node.Text) == "" {
				continue
			}
			if doc.Root == nil {
				doc.Prolog = append(doc.Prolog, node)
			}
			continue
		}
		parent := stack[len(stack)-1]
		parent.Children = append(parent.Children, node)
	}
	if doc.Root == nil {
		return nil, ErrNoRoot
	}
	if len(stack) != 0 {
		return nil, fmt.Errorf("xmltree: unclosed element %s", stack[len(stack)-1].Name)
	}
	return &doc, nil
}

// ParseBytes reads a whole document from memory.
func ParseBytes(b []byte) (*Document, error) {
	return Parse(bytes.NewReader(b))
}

func qualified(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

// LocalName returns the name without its namespace prefix.
func LocalName(name string) string {
	if i := strings.IndexByte(name, ':'); i >= 0 {
		return name[i+1:]
	}
	return name
}

// Prefix returns the namespace prefix of a qualified name, or "".
func Prefix(name string) string {
	if i := strings.IndexByte(name, ':'); i >= 0 {
		return name[:i]
	}
	return ""
}

// Local returns the local part of the element name.
func (n *Node) Local() string {
	return LocalName(n.Name)
}

// Is reports whether n is an element with the given local name.
func (n *Node) Is(local string) bool {
	return n != nil && n.Kind == ElementNode && n.Local() == local
}

// LookupAttr returns the value of the attribute with the given qualified
// name, or with the given local name when name has no prefix.
func (n *Node) LookupAttr(name string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	if Prefix(name) != "" {
		return "", false
	}
	for _, a := range n.Attrs {
		if Prefix(a.Name) != "xmlns" && a.Name != "xmlns" && LocalName(a.Name) == name {
			return a.Value, true
		}
	}
	return "", false
}

// Attr returns the value of an attribute or "".
func (n *Node) Attr(name string) string {
	v, _ := n.LookupAttr(name)
	return v
}

// SetAttr replaces the value of an attribute, appending it when absent.
func (n *Node) SetAttr(name, value string) *Node {
	for i := range n.Attrs {
		if n.Attrs[i].Name == name {
			n.Attrs[i].Value = value
			return n
		}
	}
	n.Attrs = append(n.Attrs, Attr{Name: name, Value: value})
	return n
}

// RemoveAttr deletes an attribute.
func (n *Node) RemoveAttr(name string) *Node {
	for i := range n.Attrs {
		if n.Attrs[i].Name == name {
			n.Attrs = append(n.Attrs[:i], n.Attrs[i+1:]...)
			break
		}
	}
	return n
}

// Child returns the first child element with the given local name.
func (n *Node) Child(local string) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Is(local) {
			return c
		}
	}
	return nil
}

// ChildrenNamed returns the child elements with the given local name.
func (n *Node) ChildrenNamed(local string) []*Node {
	if n == nil {
		return nil
	}
	var list []*Node
	for _, c := range n.Children {
		if c.Is(local) {
			list = append(list, c)
		}
	}
	return list
}

// Elements returns the child elements, skipping text and comments.
func (n *Node) Elements() []*Node {
	if n == nil {
		return nil
	}
	var list []*Node
	for _, c := range n.Children {
		if c.Kind == ElementNode {
			list = append(list, c)
		}
	}
	return list
}

// AppendChild adds children at the end and returns n.
func (n *Node) AppendChild(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// AppendElement appends a new child element and returns it.
func (n *Node) AppendElement(name string, attrs ...Attr) *Node {
	el := NewElement(name, attrs...)
	n.Children = append(n.Children, el)
	return el
}

// RemoveChildren deletes every child element with the given local name and
// returns how many were removed.
func (n *Node) RemoveChildren(local string) int {
	kept, removed := n.Children[:0], 0
	for _, c := range n.Children {
		if c.Is(local) {
			removed++
			continue
		}
		kept = append(kept, c)
	}
	for i := len(kept); i < len(n.Children); i++ {
		n.Children[i] = nil
	}
	n.Children = kept
	return removed
}

// SetChild places child among the children of n according to order, a list
// of local names in schema sequence. An existing child with the same local
// name is replaced in place; otherwise child is inserted before the first
// child that comes later in the sequence. A nil child removes the existing
// one. Children whose names are not in order keep their position.
func (n *Node) SetChild(local string, child *Node, order []string) {
	for i, c := range n.Children {
		if !c.Is(local) {
			continue
		}
		if child == nil {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			return
		}
		n.Children[i] = child
		return
	}
	if child == nil {
		return
	}
	rank := indexOf(order, local)
	if rank >= 0 {
		for i, c := range n.Children {
			if c.Kind != ElementNode {
				continue
			}
			if r := indexOf(order, c.Local()); r > rank {
				n.Children = append(n.Children[:i], append([]*Node{child}, n.Children[i:]...)...)
				return
			}
		}
	}
	n.Children = append(n.Children, child)
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}

// TextContent returns the concatenated character data of n and its
// descendants.
func (n *Node) TextContent() string {
	if n == nil {
		return ""
	}
	if n.Kind == TextNode {
		return n.Text
	}
	var sb strings.Builder
	n.collectText(&sb)
	return sb.String()
}

func (n *Node) collectText(sb *strings.Builder) {
	for _, c := range n.Children {
		switch c.Kind {
		case TextNode:
			sb.WriteString(c.Text)
		case ElementNode:
			c.collectText(sb)
		}
	}
}

// SetText replaces the children of n with a single character data node.
func (n *Node) SetText(text string) *Node {
	n.Children = []*Node{NewText(text)}
	return n
}

// Clone returns a deep copy of n.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := &Node{Kind: n.Kind, Name: n.Name, Text: n.Text}
	if n.Attrs != nil {
		c.Attrs = append([]Attr(nil), n.Attrs...)
	}
	if n.Children != nil {
		c.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			c.Children[i] = child.Clone()
		}
	}
	return c
}

// Bytes serializes the document with the standard declaration.
func (d *Document) Bytes() []byte {
	b := bytebufferpool.Get()
	defer bytebufferpool.Put(b)
	_, _ = b.WriteString(Header)
	for _, n := range d.Prolog {
		writeNode(b, n)
	}
	if d.Root != nil {
		writeNode(b, d.Root)
	}
	return append([]byte(nil), b.B...)
}

// WriteTo implements io.WriterTo.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(d.Bytes())
	return int64(n), err
}

// Bytes serializes a single node without declaration.
func (n *Node) Bytes() []byte {
	b := bytebufferpool.Get()
	defer bytebufferpool.Put(b)
	writeNode(b, n)
	return append([]byte(nil), b.B...)
}

// String implements fmt.Stringer.
func (n *Node) String() string {
	return string(n.Bytes())
}

func writeNode(b *bytebufferpool.ByteBuffer, n *Node) {
	switch n.Kind {
	case TextNode:
		escapeText(b, n.Text)
	case CommentNode:
		_, _ = b.WriteString("<!--")
		_, _ = b.WriteString(n.Text)
		_, _ = b.WriteString("-->")
	case ProcInstNode:
		_, _ = b.WriteString("<?")
		_, _ = b.WriteString(n.Name)
		if n.Text != "" {
			_ = b.WriteByte(' ')
			_, _ = b.WriteString(n.Text)
		}
		_, _ = b.WriteString("?>")
	case DirectiveNode:
		_, _ = b.WriteString("<!")
		_, _ = b.WriteString(n.Text)
		_ = b.WriteByte('>')
	default:
		_ = b.WriteByte('<')
		_, _ = b.WriteString(n.Name)
		for _, a := range n.Attrs {
			_ = b.WriteByte(' ')
			_, _ = b.WriteString(a.Name)
			_, _ = b.WriteString(`="`)
			escapeAttr(b, a.Value)
			_ = b.WriteByte('"')
		}
		if len(n.Children) == 0 {
			_, _ = b.WriteString("/>")
			return
		}
		_ = b.WriteByte('>')
		for _, c := range n.Children {
			writeNode(b, c)
		}
		_, _ = b.WriteString("</")
		_, _ = b.WriteString(n.Name)
		_ = b.WriteByte('>')
	}
}

func escapeText(b *bytebufferpool.ByteBuffer, s string) {
	escape(b, s, false)
}

func escapeAttr(b *bytebufferpool.ByteBuffer, s string) {
	escape(b, s, true)
}

// isXMLChar reports whether r may appear in an XML 1.0 document.
func isXMLChar(r rune) bool {
	return r == '\t' || r == '\n' || r == '\r' ||
		r >= 0x20 && r <= 0xD7FF || r >= 0xE000 && r <= 0xFFFD || r >= 0x10000 && r <= 0x10FFFF
}

// escape writes s as character data. Characters XML 1.0 does not allow,
// invalid UTF-8 included, are written as U+FFFD.
func escape(b *bytebufferpool.ByteBuffer, s string, attr bool) {
	last := 0
	for i := 0; i < len(s); {
		r, width := utf8.DecodeRuneInString(s[i:])
		var esc string
		switch {
		case r == '&':
			esc = "&amp;"
		case r == '<':
			esc = "&lt;"
		case r == '>':
			esc = "&gt;"
		case r == '\r':
			esc = "&#xD;"
		case attr && r == '"':
			esc = "&quot;"
		case attr && r == '\n':
			esc = "&#xA;"
		case attr && r == '\t':
			esc = "&#x9;"
		case r == utf8.RuneError && width == 1, !isXMLChar(r):
			esc = "\uFFFD"
		default:
			i += width
			continue
		}
		_, _ = b.WriteString(s[last:i])
		_, _ = b.WriteString(esc)
		i += width
		last = i
	}
	_, _ = b.WriteString(s[last:])
}
