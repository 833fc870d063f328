// Copyright 2016 - 2025 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package sheetkit

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/OmniMCP-AI/sheetkit/xmltree"
)

// Font directly maps the font settings of a cell style. Colors are RGB or
// ARGB hex strings, with or without a leading "#".
type Font struct {
	Name      string
	Size      float64
	Bold      bool
	Italic    bool
	Underline string
	Strike    bool
	Color     string
}

// Fill directly maps the pattern fill of a cell style. A fill with a color
// and no pattern is a solid fill.
type Fill struct {
	Pattern string
	Color   string
	BgColor string
}

// BorderSide directly maps one edge of a cell border.
type BorderSide struct {
	Style string
	Color string
}

// Border directly maps the border settings of a cell style.
type Border struct {
	Left     BorderSide
	Right    BorderSide
	Top      BorderSide
	Bottom   BorderSide
	Diagonal BorderSide
}

// Alignment directly maps the alignment settings of a cell style.
type Alignment struct {
	Horizontal   string
	Vertical     string
	WrapText     bool
	ShrinkToFit  bool
	Indent       int
	TextRotation int
}

// CellStyle directly maps the style of a cell. A nil member keeps the
// workbook default, NumFmt holds a number format code such as "0.00".
type CellStyle struct {
	Font      *Font
	Fill      *Fill
	Border    *Border
	Alignment *Alignment
	NumFmt    string
}

// IsEmpty reports whether the style sets nothing.
func (s CellStyle) IsEmpty() bool {
	return s.Font == nil && s.Fill == nil && s.Border == nil && s.Alignment == nil && s.NumFmt == ""
}

// mergeStyle overlays the members set in over onto base.
func mergeStyle(base, over CellStyle) CellStyle {
	if over.Font != nil {
		base.Font = over.Font
	}
	if over.Fill != nil {
		base.Fill = over.Fill
	}
	if over.Border != nil {
		base.Border = over.Border
	}
	if over.Alignment != nil {
		base.Alignment = over.Alignment
	}
	if over.NumFmt != "" {
		base.NumFmt = over.NumFmt
	}
	return base
}

// styleRecord is a font, fill or border of the style table along with the
// element it was read from.
type styleRecord[T any] struct {
	value T
	node  *xmltree.Node
}

// cellXf is a composite style record: references into the font, fill,
// border and number format tables plus an optional alignment.
type cellXf struct {
	fontID    int
	fillID    int
	borderID  int
	numFmtID  int
	alignment *Alignment
	node      *xmltree.Node
}

func (xf cellXf) key() string {
	return fmt.Sprintf("%d|%d|%d|%d|%s", xf.fontID, xf.fillID, xf.borderID, xf.numFmtID, alignmentKey(xf.alignment))
}

// StyleTable directly maps the style part. Fonts, fills, borders and the
// composite cell formats are each deduplicated by value, so equal style
// requests resolve to the same index.
type StyleTable struct {
	root      *xmltree.Node
	numFmts   map[int]string
	numFmtIDs map[string]int
	fonts     []styleRecord[Font]
	fontIndex map[string]int
	fills     []styleRecord[Fill]
	fillIndex map[string]int
	borders   []styleRecord[Border]
	bdrIndex  map[string]int
	xfs       []cellXf
	xfIndex   map[string]int
	dirty     bool
	dateCache *lruCache[bool]
}

// newStyleTable returns the default style table of a new workbook.
func newStyleTable(cacheSize int) *StyleTable {
	st, err := parseStyles([]byte(templateStyles), cacheSize)
	if err != nil {
		panic(err) // the template is a constant
	}
	st.dirty = true
	return st
}

// parseStyles provides a function to read the style part.
func parseStyles(content []byte, cacheSize int) (*StyleTable, error) {
	doc, err := xmltree.ParseBytes(content)
	if err != nil {
		return nil, err
	}
	st := &StyleTable{
		root:      doc.Root,
		numFmts:   make(map[int]string),
		numFmtIDs: make(map[string]int),
		fontIndex: make(map[string]int),
		fillIndex: make(map[string]int),
		bdrIndex:  make(map[string]int),
		xfIndex:   make(map[string]int),
		dateCache: newLRUCache[bool](cacheSize),
	}
	for _, n := range doc.Root.Child("numFmts").ChildrenNamed("numFmt") {
		id, err := strconv.Atoi(n.Attr("numFmtId"))
		if err != nil {
			continue
		}
		code := n.Attr("formatCode")
		st.numFmts[id] = code
		if _, ok := st.numFmtIDs[code]; !ok {
			st.numFmtIDs[code] = id
		}
	}
	for _, n := range doc.Root.Child("fonts").ChildrenNamed("font") {
		f := parseFont(n)
		addRecord(&st.fonts, st.fontIndex, fontKey(f), styleRecord[Font]{value: f, node: n})
	}
	for _, n := range doc.Root.Child("fills").ChildrenNamed("fill") {
		f := parseFill(n)
		addRecord(&st.fills, st.fillIndex, fillKey(f), styleRecord[Fill]{value: f, node: n})
	}
	for _, n := range doc.Root.Child("borders").ChildrenNamed("border") {
		b := parseBorder(n)
		addRecord(&st.borders, st.bdrIndex, borderKey(b), styleRecord[Border]{value: b, node: n})
	}
	for _, n := range doc.Root.Child("cellXfs").ChildrenNamed("xf") {
		xf := cellXf{
			fontID:   atoiAttr(n, "fontId"),
			fillID:   atoiAttr(n, "fillId"),
			borderID: atoiAttr(n, "borderId"),
			numFmtID: atoiAttr(n, "numFmtId"),
			node:     n,
		}
		if a := n.Child("alignment"); a != nil {
			xf.alignment = parseAlignment(a)
		}
		if _, ok := st.xfIndex[xf.key()]; !ok {
			st.xfIndex[xf.key()] = len(st.xfs)
		}
		st.xfs = append(st.xfs, xf)
	}
	if len(st.xfs) == 0 {
		st.xfs = append(st.xfs, cellXf{})
		st.xfIndex[cellXf{}.key()] = 0
		st.dirty = true
	}
	return st, nil
}

// addRecord appends a record, the first record of a key owns the index.
func addRecord[T any](list *[]styleRecord[T], index map[string]int, key string, rec styleRecord[T]) int {
	if _, ok := index[key]; !ok {
		index[key] = len(*list)
	}
	*list = append(*list, rec)
	return len(*list) - 1
}

func atoiAttr(n *xmltree.Node, name string) int {
	v, _ := strconv.Atoi(n.Attr(name))
	return v
}

// boolElement reads a CT_BooleanProperty element, a missing val means true.
func boolElement(n *xmltree.Node) bool {
	v, ok := n.LookupAttr("val")
	return !ok || v == "1" || v == "true"
}

func parseFont(n *xmltree.Node) Font {
	var f Font
	for _, c := range n.Elements() {
		switch c.Local() {
		case "name":
			f.Name = c.Attr("val")
		case "sz":
			f.Size, _ = strconv.ParseFloat(c.Attr("val"), 64)
		case "b":
			f.Bold = boolElement(c)
		case "i":
			f.Italic = boolElement(c)
		case "strike":
			f.Strike = boolElement(c)
		case "u":
			if v := c.Attr("val"); v == "" {
				f.Underline = "single"
			} else if v != "none" {
				f.Underline = v
			}
		case "color":
			f.Color = c.Attr("rgb")
		}
	}
	return f
}

func parseFill(n *xmltree.Node) Fill {
	var f Fill
	if p := n.Child("patternFill"); p != nil {
		f.Pattern = p.Attr("patternType")
		f.Color = p.Child("fgColor").Attr("rgb")
		f.BgColor = p.Child("bgColor").Attr("rgb")
	} else if n.Child("gradientFill") != nil {
		f.Pattern = "gradient"
	}
	return f
}

func parseBorder(n *xmltree.Node) Border {
	side := func(local string) BorderSide {
		c := n.Child(local)
		return BorderSide{Style: c.Attr("style"), Color: c.Child("color").Attr("rgb")}
	}
	return Border{Left: side("left"), Right: side("right"), Top: side("top"), Bottom: side("bottom"), Diagonal: side("diagonal")}
}

func parseAlignment(n *xmltree.Node) *Alignment {
	return &Alignment{
		Horizontal:   n.Attr("horizontal"),
		Vertical:     n.Attr("vertical"),
		WrapText:     n.Attr("wrapText") == "1" || n.Attr("wrapText") == "true",
		ShrinkToFit:  n.Attr("shrinkToFit") == "1" || n.Attr("shrinkToFit") == "true",
		Indent:       atoiAttr(n, "indent"),
		TextRotation: atoiAttr(n, "textRotation"),
	}
}

// normalizeColor returns the ARGB form of a RGB or ARGB hex color.
func normalizeColor(color string) string {
	color = strings.ToUpper(strings.TrimPrefix(color, "#"))
	if len(color) == 6 {
		return "FF" + color
	}
	return color
}

func fontKey(f Font) string {
	return fmt.Sprintf("%s|%g|%t|%t|%s|%t|%s", f.Name, f.Size, f.Bold, f.Italic, f.Underline, f.Strike, normalizeColor(f.Color))
}

func fillKey(f Fill) string {
	return f.Pattern + "|" + normalizeColor(f.Color) + "|" + normalizeColor(f.BgColor)
}

func borderKey(b Border) string {
	var sb strings.Builder
	for _, s := range []BorderSide{b.Left, b.Right, b.Top, b.Bottom, b.Diagonal} {
		sb.WriteString(s.Style + ":" + normalizeColor(s.Color) + "|")
	}
	return sb.String()
}

func alignmentKey(a *Alignment) string {
	if a == nil {
		return ""
	}
	return fmt.Sprintf("%s|%s|%t|%t|%d|%d", a.Horizontal, a.Vertical, a.WrapText, a.ShrinkToFit, a.Indent, a.TextRotation)
}

// CreateStyle provides a function to get the index of the cell format
// described by style, creating the records it needs. Equal styles always
// return the same index and fonts, fills and borders are shared between
// cell formats. An empty style is the default format 0.
func (st *StyleTable) CreateStyle(style CellStyle) int {
	xf := cellXf{}
	if style.Font != nil {
		xf.fontID = st.fontID(st.completeFont(*style.Font))
	}
	if style.Fill != nil {
		xf.fillID = st.fillID(*style.Fill)
	}
	if style.Border != nil {
		xf.borderID = st.borderID(*style.Border)
	}
	if style.NumFmt != "" {
		xf.numFmtID = st.GetOrCreateNumFmtID(style.NumFmt)
	}
	if style.Alignment != nil {
		a := *style.Alignment
		xf.alignment = &a
	}
	return st.xfID(xf)
}

// completeFont fills the name and size the font leaves out from the
// default font.
func (st *StyleTable) completeFont(f Font) Font {
	if len(st.fonts) > 0 {
		def := st.fonts[0].value
		if f.Name == "" {
			f.Name = def.Name
		}
		if f.Size == 0 {
			f.Size = def.Size
		}
	}
	if f.Name == "" {
		f.Name = "Calibri"
	}
	if f.Size == 0 {
		f.Size = 11
	}
	f.Color = normalizeColor(f.Color)
	return f
}

func (st *StyleTable) fontID(f Font) int {
	if id, ok := st.fontIndex[fontKey(f)]; ok {
		return id
	}
	st.dirty = true
	return addRecord(&st.fonts, st.fontIndex, fontKey(f), styleRecord[Font]{value: f})
}

func (st *StyleTable) fillID(f Fill) int {
	if f.Pattern == "" {
		f.Pattern = "solid"
		if f.Color == "" {
			f.Pattern = "none"
		}
	}
	f.Color, f.BgColor = normalizeColor(f.Color), normalizeColor(f.BgColor)
	if id, ok := st.fillIndex[fillKey(f)]; ok {
		return id
	}
	st.dirty = true
	return addRecord(&st.fills, st.fillIndex, fillKey(f), styleRecord[Fill]{value: f})
}

func (st *StyleTable) borderID(b Border) int {
	for _, s := range []*BorderSide{&b.Left, &b.Right, &b.Top, &b.Bottom, &b.Diagonal} {
		s.Color = normalizeColor(s.Color)
	}
	if id, ok := st.bdrIndex[borderKey(b)]; ok {
		return id
	}
	st.dirty = true
	return addRecord(&st.borders, st.bdrIndex, borderKey(b), styleRecord[Border]{value: b})
}

func (st *StyleTable) xfID(xf cellXf) int {
	if id, ok := st.xfIndex[xf.key()]; ok {
		return id
	}
	st.dirty = true
	st.xfs = append(st.xfs, xf)
	st.xfIndex[xf.key()] = len(st.xfs) - 1
	return len(st.xfs) - 1
}

// withNumFmt returns the index of the cell format equal to the one at idx
// except for its number format.
func (st *StyleTable) withNumFmt(idx, numFmtID int) int {
	var xf cellXf
	if idx >= 0 && idx < len(st.xfs) {
		xf = st.xfs[idx]
	}
	if xf.numFmtID == numFmtID && idx >= 0 && idx < len(st.xfs) {
		return idx
	}
	xf.numFmtID, xf.node = numFmtID, nil
	return st.xfID(xf)
}

// GetStyle provides a function to resolve a cell format index into the
// style it describes. An unknown index resolves to the empty style.
func (st *StyleTable) GetStyle(idx int) CellStyle {
	var style CellStyle
	if idx < 0 || idx >= len(st.xfs) {
		return style
	}
	xf := st.xfs[idx]
	if xf.fontID > 0 && xf.fontID < len(st.fonts) {
		f := st.fonts[xf.fontID].value
		style.Font = &f
	}
	if xf.fillID > 0 && xf.fillID < len(st.fills) {
		f := st.fills[xf.fillID].value
		style.Fill = &f
	}
	if xf.borderID > 0 && xf.borderID < len(st.borders) {
		b := st.borders[xf.borderID].value
		style.Border = &b
	}
	if xf.alignment != nil {
		a := *xf.alignment
		style.Alignment = &a
	}
	if xf.numFmtID != 0 {
		style.NumFmt, _ = st.NumFmtCode(xf.numFmtID)
	}
	return style
}

// GetOrCreateNumFmtID provides a function to get the id of a number format
// code. Built-in codes map to their reserved id, any other code gets an id
// from 164 upwards that stays the same for the lifetime of the table.
func (st *StyleTable) GetOrCreateNumFmtID(code string) int {
	if id, ok := st.numFmtIDs[code]; ok {
		return id
	}
	if id, ok := builtInNumFmtCode[code]; ok {
		return id
	}
	id := firstCustomNumFmtID
	for existing := range st.numFmts {
		if existing >= id {
			id = existing + 1
		}
	}
	st.numFmts[id] = code
	st.numFmtIDs[code] = id
	st.dirty = true
	return id
}

// NumFmtCode returns the format code of a number format id.
func (st *StyleTable) NumFmtCode(id int) (string, bool) {
	if code, ok := st.numFmts[id]; ok {
		return code, true
	}
	code, ok := builtInNumFmt[id]
	return code, ok
}

// Count returns the number of cell formats.
func (st *StyleTable) Count() int {
	return len(st.xfs)
}

// IsDirty reports whether the table changed since it was loaded or saved.
func (st *StyleTable) IsDirty() bool {
	return st.dirty
}

// numFmtID returns the number format id of a cell format.
func (st *StyleTable) numFmtID(idx int) int {
	if idx < 0 || idx >= len(st.xfs) {
		return 0
	}
	return st.xfs[idx].numFmtID
}

// isDateStyle reports whether the cell format at idx shows dates.
func (st *StyleTable) isDateStyle(idx int) bool {
	return st.isDateNumFmt(st.numFmtID(idx))
}

// isDateNumFmt reports whether a number format id shows dates, custom
// codes are classified once and remembered.
func (st *StyleTable) isDateNumFmt(id int) bool {
	code, custom := st.numFmts[id]
	if !custom {
		return isBuiltInDateNumFmt(id)
	}
	if v, ok := st.dateCache.Load(code); ok {
		return v
	}
	v := isDateFormatCode(code)
	st.dateCache.Store(code, v)
	return v
}

// bytes serializes the style part. The records that came from a loaded
// part are written from their preserved elements and every child element
// of the style sheet the table does not own is kept.
func (st *StyleTable) bytes() []byte {
	root := &xmltree.Node{
		Kind:     st.root.Kind,
		Name:     st.root.Name,
		Attrs:    append([]xmltree.Attr(nil), st.root.Attrs...),
		Children: append([]*xmltree.Node(nil), st.root.Children...),
	}
	q := qualifier(root)
	ids := make([]int, 0, len(st.numFmts))
	for id := range st.numFmts {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	var numFmts []*xmltree.Node
	for _, id := range ids {
		numFmts = append(numFmts, xmltree.NewElement(q("numFmt"),
			xmltree.Attr{Name: "numFmtId", Value: strconv.Itoa(id)},
			xmltree.Attr{Name: "formatCode", Value: st.numFmts[id]}))
	}
	var fonts, fills, borders, xfs []*xmltree.Node
	for _, rec := range st.fonts {
		fonts = append(fonts, recordNode(rec.node, func() *xmltree.Node { return fontNode(q, rec.value) }))
	}
	for _, rec := range st.fills {
		fills = append(fills, recordNode(rec.node, func() *xmltree.Node { return fillNode(q, rec.value) }))
	}
	for _, rec := range st.borders {
		borders = append(borders, recordNode(rec.node, func() *xmltree.Node { return borderNode(q, rec.value) }))
	}
	for _, xf := range st.xfs {
		xfs = append(xfs, recordNode(xf.node, func() *xmltree.Node { return xfNode(q, xf) }))
	}
	for _, part := range []struct {
		local string
		items []*xmltree.Node
	}{
		{"numFmts", numFmts}, {"fonts", fonts}, {"fills", fills},
		{"borders", borders}, {"cellXfs", xfs},
	} {
		if len(part.items) == 0 {
			root.SetChild(part.local, nil, styleSheetChildOrder)
			continue
		}
		root.SetChild(part.local, countedContainer(root.Child(part.local), q(part.local), part.items), styleSheetChildOrder)
	}
	return xmltree.NewDocument(root).Bytes()
}

// qualifier returns a function that names child elements with the prefix
// of the given element.
func qualifier(root *xmltree.Node) func(string) string {
	prefix := xmltree.Prefix(root.Name)
	return func(local string) string {
		if prefix == "" {
			return local
		}
		return prefix + ":" + local
	}
}

func recordNode(node *xmltree.Node, build func() *xmltree.Node) *xmltree.Node {
	if node != nil {
		return node
	}
	return build()
}

// countedContainer returns a container element holding items with its
// count attribute set, the attributes of an existing container are kept.
func countedContainer(existing *xmltree.Node, name string, items []*xmltree.Node) *xmltree.Node {
	el := xmltree.NewElement(name)
	if existing != nil {
		el.Name = existing.Name
		el.Attrs = append([]xmltree.Attr(nil), existing.Attrs...)
	}
	el.SetAttr("count", strconv.Itoa(len(items)))
	return el.AppendChild(items...)
}

func valElement(name, val string) *xmltree.Node {
	return xmltree.NewElement(name, xmltree.Attr{Name: "val", Value: val})
}

func fontNode(q func(string) string, f Font) *xmltree.Node {
	el := xmltree.NewElement(q("font"))
	if f.Bold {
		el.AppendElement(q("b"))
	}
	if f.Italic {
		el.AppendElement(q("i"))
	}
	if f.Strike {
		el.AppendElement(q("strike"))
	}
	if f.Underline != "" {
		if f.Underline == "single" {
			el.AppendElement(q("u"))
		} else {
			el.AppendChild(valElement(q("u"), f.Underline))
		}
	}
	if f.Size > 0 {
		el.AppendChild(valElement(q("sz"), strconv.FormatFloat(f.Size, 'f', -1, 64)))
	}
	if f.Color != "" {
		el.AppendElement(q("color"), xmltree.Attr{Name: "rgb", Value: normalizeColor(f.Color)})
	}
	if f.Name != "" {
		el.AppendChild(valElement(q("name"), f.Name))
	}
	return el
}

func fillNode(q func(string) string, f Fill) *xmltree.Node {
	pattern := xmltree.NewElement(q("patternFill"), xmltree.Attr{Name: "patternType", Value: f.Pattern})
	if f.Color != "" {
		pattern.AppendElement(q("fgColor"), xmltree.Attr{Name: "rgb", Value: normalizeColor(f.Color)})
	}
	if f.BgColor != "" {
		pattern.AppendElement(q("bgColor"), xmltree.Attr{Name: "rgb", Value: normalizeColor(f.BgColor)})
	} else if f.Color != "" {
		pattern.AppendElement(q("bgColor"), xmltree.Attr{Name: "indexed", Value: "64"})
	}
	return xmltree.NewElement(q("fill")).AppendChild(pattern)
}

func borderNode(q func(string) string, b Border) *xmltree.Node {
	el := xmltree.NewElement(q("border"))
	for _, side := range []struct {
		name string
		side BorderSide
	}{
		{"left", b.Left}, {"right", b.Right}, {"top", b.Top}, {"bottom", b.Bottom}, {"diagonal", b.Diagonal},
	} {
		s := el.AppendElement(q(side.name))
		if side.side.Style != "" {
			s.SetAttr("style", side.side.Style)
		}
		if side.side.Color != "" {
			s.AppendElement(q("color"), xmltree.Attr{Name: "rgb", Value: normalizeColor(side.side.Color)})
		}
	}
	return el
}

func xfNode(q func(string) string, xf cellXf) *xmltree.Node {
	el := xmltree.NewElement(q("xf"),
		xmltree.Attr{Name: "numFmtId", Value: strconv.Itoa(xf.numFmtID)},
		xmltree.Attr{Name: "fontId", Value: strconv.Itoa(xf.fontID)},
		xmltree.Attr{Name: "fillId", Value: strconv.Itoa(xf.fillID)},
		xmltree.Attr{Name: "borderId", Value: strconv.Itoa(xf.borderID)},
		xmltree.Attr{Name: "xfId", Value: "0"},
	)
	for _, apply := range []struct {
		name string
		set  bool
	}{
		{"applyNumberFormat", xf.numFmtID != 0}, {"applyFont", xf.fontID != 0},
		{"applyFill", xf.fillID != 0}, {"applyBorder", xf.borderID != 0},
		{"applyAlignment", xf.alignment != nil},
	} {
		if apply.set {
			el.SetAttr(apply.name, "1")
		}
	}
	if a := xf.alignment; a != nil {
		al := el.AppendElement(q("alignment"))
		if a.Horizontal != "" {
			al.SetAttr("horizontal", a.Horizontal)
		}
		if a.Vertical != "" {
			al.SetAttr("vertical", a.Vertical)
		}
		if a.TextRotation != 0 {
			al.SetAttr("textRotation", strconv.Itoa(a.TextRotation))
		}
		if a.WrapText {
			al.SetAttr("wrapText", "1")
		}
		if a.Indent != 0 {
			al.SetAttr("indent", strconv.Itoa(a.Indent))
		}
		if a.ShrinkToFit {
			al.SetAttr("shrinkToFit", "1")
		}
	}
	return el
}
