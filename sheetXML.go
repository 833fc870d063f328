// Copyright 2016 - 2025 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package sheetkit

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/OmniMCP-AI/sheetkit/xmltree"
)

// maxColumns is the number of columns of a worksheet, column ranges are
// clipped to it on load.
const maxColumns = 16384

// dateTimeLayouts are the layouts of the ISO 8601 values of "d" cells.
var dateTimeLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999999", "2006-01-02T15:04", time.DateOnly}

// parse provides a function to read a worksheet part into the model. The
// parsed document is kept for the elements the model does not own.
func (ws *Worksheet) parse(content []byte) error {
	doc, err := xmltree.ParseBytes(content)
	if err != nil {
		return err
	}
	ws.doc = doc
	root := doc.Root
	ws.parseCols(root.Child("cols"))
	if pane := root.Child("sheetViews").Child("sheetView").Child("pane"); pane != nil {
		if state := pane.Attr("state"); state == "frozen" || state == "frozenSplit" {
			row, _ := strconv.ParseFloat(pane.Attr("ySplit"), 64)
			col, _ := strconv.ParseFloat(pane.Attr("xSplit"), 64)
			if row > 0 || col > 0 {
				ws.frozen = &CellAddress{Row: int(row), Col: int(col)}
			}
		}
	}
	ws.parseSheetData(root.Child("sheetData"))
	for _, m := range root.Child("mergeCells").ChildrenNamed("mergeCell") {
		r, err := ParseRange(m.Attr("ref"))
		if err != nil {
			ws.wb.options.logf("sheetkit: ignoring merged range %q of %s: %v", m.Attr("ref"), ws.name, err)
			continue
		}
		ws.merged = append(ws.merged, NormalizeRange(r))
	}
	return nil
}

func (ws *Worksheet) parseCols(cols *xmltree.Node) {
	for _, col := range cols.ChildrenNamed("col") {
		first, last := atoiAttr(col, "min"), atoiAttr(col, "max")
		if first < 1 || last < first {
			continue
		}
		last = min(last, maxColumns)
		width, widthErr := strconv.ParseFloat(col.Attr("width"), 64)
		var extra []xmltree.Attr
		for _, a := range col.Attrs {
			switch a.Name {
			case "min", "max", "width", "customWidth":
			default:
				extra = append(extra, a)
			}
		}
		for i := first - 1; i < last; i++ {
			if widthErr == nil && width > 0 {
				ws.colWidths[i] = width
			}
			if len(extra) > 0 {
				ws.colAttrs[i] = extra
			}
		}
	}
}

func (ws *Worksheet) parseSheetData(sheetData *xmltree.Node) {
	rowIdx := -1
	for _, row := range sheetData.ChildrenNamed("row") {
		if n, err := strconv.Atoi(row.Attr("r")); err == nil && n > 0 {
			rowIdx = n - 1
		} else {
			rowIdx++
		}
		if ht, err := strconv.ParseFloat(row.Attr("ht"), 64); err == nil && ht > 0 {
			ws.rowHeights[rowIdx] = ht
		}
		var extra []xmltree.Attr
		for _, a := range row.Attrs {
			switch a.Name {
			case "r", "ht", "customHeight", "spans":
			default:
				extra = append(extra, a)
			}
		}
		if len(extra) > 0 {
			ws.rowAttrs[rowIdx] = extra
		}
		colIdx := -1
		for _, el := range row.ChildrenNamed("c") {
			if addr, err := ParseAddress(el.Attr("r")); err == nil {
				colIdx = addr.Col
			} else {
				colIdx++
				el.SetAttr("r", ToAddress(rowIdx, colIdx))
			}
			c := ws.parseCell(el, rowIdx, colIdx)
			ws.cells[c.Address()] = c
		}
	}
}

// parseCell reads a c element into a cell.
func (ws *Worksheet) parseCell(el *xmltree.Node, row, col int) *Cell {
	c := &Cell{ws: ws, row: row, col: col, orig: el, style: atoiAttr(el, "s")}
	if f := el.Child("f"); f != nil {
		c.formula = f.TextContent()
		c.formulaType = f.Attr("t")
		c.formulaRef = f.Attr("ref")
		c.sharedIndex = f.Attr("si")
		if c.formulaType == "normal" {
			c.formulaType = ""
		}
	}
	v := el.Child("v")
	text := v.TextContent()
	switch el.Attr("t") {
	case "s":
		if v == nil {
			break
		}
		idx, err := strconv.Atoi(strings.TrimSpace(text))
		if err != nil {
			ws.wb.options.logf("sheetkit: ignoring shared string index %q in %s!%s", text, ws.name, c.Address())
			break
		}
		if _, ok := ws.wb.sst.GetString(idx); !ok {
			ws.wb.options.logf("sheetkit: shared string index %d out of range in %s!%s", idx, ws.name, c.Address())
		}
		c.typ, c.sst = CellTypeSharedString, idx
	case "str":
		c.typ, c.str = CellTypeInlineString, unescapeStringItem(text)
	case "inlineStr":
		c.typ, c.str = CellTypeInlineString, stringItemText(el.Child("is"))
	case "b":
		c.typ = CellTypeBool
		if t := strings.TrimSpace(text); t == "1" || t == "true" {
			c.num = 1
		}
	case "e":
		c.typ, c.str = CellTypeError, text
	case "d":
		for _, layout := range dateTimeLayouts {
			if t, err := time.Parse(layout, strings.TrimSpace(text)); err == nil {
				c.typ, c.num = CellTypeDate, timeToSerial(t, ws.wb.date1904)
				break
			}
		}
	default:
		if v == nil {
			break
		}
		if f, err := strconv.ParseFloat(strings.TrimSpace(text), 64); err == nil {
			c.typ, c.num = CellTypeNumber, f
			if ws.wb.styles.isDateStyle(c.style) {
				c.typ = CellTypeDate
			}
		}
	}
	return c
}

// bytes serializes the worksheet part. The children the model owns are
// rebuilt and every other child of a loaded part is kept as read.
func (ws *Worksheet) bytes() ([]byte, error) {
	var doc *xmltree.Document
	if ws.doc != nil {
		doc = &xmltree.Document{Prolog: ws.doc.Prolog, Root: shallowCopy(ws.doc.Root)}
	} else {
		parsed, err := xmltree.ParseBytes([]byte(templateWorksheet))
		if err != nil {
			return nil, err
		}
		doc = parsed
	}
	root := doc.Root
	q := qualifier(root)
	dimension := xmltree.NewElement(q("dimension"))
	if existing := root.Child("dimension"); existing != nil {
		dimension = existing.Clone()
	}
	dimension.SetAttr("ref", ws.Dimension())
	root.SetChild("dimension", dimension, worksheetChildOrder)
	root.SetChild("sheetViews", ws.sheetViewsNode(root.Child("sheetViews"), q), worksheetChildOrder)
	root.SetChild("cols", ws.colsNode(q), worksheetChildOrder)
	root.SetChild("sheetData", ws.sheetDataNode(root.Child("sheetData"), q), worksheetChildOrder)
	var merge *xmltree.Node
	if len(ws.merged) > 0 {
		var items []*xmltree.Node
		for _, m := range ws.merged {
			items = append(items, xmltree.NewElement(q("mergeCell"), xmltree.Attr{Name: "ref", Value: m.String()}))
		}
		merge = countedContainer(root.Child("mergeCells"), q("mergeCells"), items)
	}
	root.SetChild("mergeCells", merge, worksheetChildOrder)
	var parts *xmltree.Node
	relIDs := append([]string(nil), ws.opaqueTables...)
	for _, t := range ws.tables {
		relIDs = append(relIDs, t.relID)
	}
	if len(relIDs) > 0 {
		r := relationshipPrefix(root)
		var items []*xmltree.Node
		for _, id := range relIDs {
			items = append(items, xmltree.NewElement(q("tablePart"), xmltree.Attr{Name: r + ":id", Value: id}))
		}
		parts = countedContainer(nil, q("tableParts"), items)
	}
	root.SetChild("tableParts", parts, worksheetChildOrder)
	return doc.Bytes(), nil
}

// shallowCopy returns a copy of an element that shares the children but
// not the child list, so children can be replaced without touching n.
func shallowCopy(n *xmltree.Node) *xmltree.Node {
	return &xmltree.Node{
		Kind:     n.Kind,
		Name:     n.Name,
		Attrs:    append([]xmltree.Attr(nil), n.Attrs...),
		Children: append([]*xmltree.Node(nil), n.Children...),
	}
}

// relationshipPrefix returns the prefix bound to the relationships
// namespace on root, declaring "r" when there is none.
func relationshipPrefix(root *xmltree.Node) string {
	for _, a := range root.Attrs {
		if xmltree.Prefix(a.Name) == "xmlns" && (a.Value == NameSpaceRelationships || a.Value == nameSpaceStrictRels) {
			return xmltree.LocalName(a.Name)
		}
	}
	root.SetAttr("xmlns:r", NameSpaceRelationships)
	return "r"
}

func (ws *Worksheet) sheetViewsNode(existing *xmltree.Node, q func(string) string) *xmltree.Node {
	var views *xmltree.Node
	if existing != nil {
		views = existing.Clone()
	} else {
		views = xmltree.NewElement(q("sheetViews"))
	}
	view := views.Child("sheetView")
	if view == nil {
		view = views.AppendElement(q("sheetView"), xmltree.Attr{Name: "workbookViewId", Value: "0"})
	}
	if ws.wb.activeSheet() == ws {
		view.SetAttr("tabSelected", "1")
	} else {
		view.RemoveAttr("tabSelected")
	}
	pane := view.Child("pane")
	if ws.frozen == nil {
		if pane != nil && (pane.Attr("state") == "frozen" || pane.Attr("state") == "frozenSplit") {
			view.RemoveChildren("pane")
			removeSelectionPanes(view)
		}
		return views
	}
	view.RemoveChildren("pane")
	view.RemoveChildren("selection")
	topLeft := ToAddress(ws.frozen.Row, ws.frozen.Col)
	active := "bottomRight"
	switch {
	case ws.frozen.Col == 0:
		active = "bottomLeft"
	case ws.frozen.Row == 0:
		active = "topRight"
	}
	pane = xmltree.NewElement(q("pane"))
	if ws.frozen.Col > 0 {
		pane.SetAttr("xSplit", strconv.Itoa(ws.frozen.Col))
	}
	if ws.frozen.Row > 0 {
		pane.SetAttr("ySplit", strconv.Itoa(ws.frozen.Row))
	}
	pane.SetAttr("topLeftCell", topLeft).SetAttr("activePane", active).SetAttr("state", "frozen")
	view.SetChild("pane", pane, sheetViewChildOrder)
	view.SetChild("selection", xmltree.NewElement(q("selection"),
		xmltree.Attr{Name: "pane", Value: active},
		xmltree.Attr{Name: "activeCell", Value: topLeft},
		xmltree.Attr{Name: "sqref", Value: topLeft}), sheetViewChildOrder)
	return views
}

func removeSelectionPanes(view *xmltree.Node) {
	kept := view.Children[:0]
	for _, c := range view.Children {
		if c.Is("selection") {
			if _, ok := c.LookupAttr("pane"); ok {
				continue
			}
		}
		kept = append(kept, c)
	}
	view.Children = kept
}

// colsNode groups adjacent columns with the same settings into col
// elements.
func (ws *Worksheet) colsNode(q func(string) string) *xmltree.Node {
	seen := make(map[int]bool)
	var idx []int
	for i := range ws.colWidths {
		seen[i] = true
		idx = append(idx, i)
	}
	for i := range ws.colAttrs {
		if !seen[i] {
			idx = append(idx, i)
		}
	}
	if len(idx) == 0 {
		return nil
	}
	sort.Ints(idx)
	same := func(a, b int) bool {
		if ws.colWidths[a] != ws.colWidths[b] || len(ws.colAttrs[a]) != len(ws.colAttrs[b]) {
			return false
		}
		for i := range ws.colAttrs[a] {
			if ws.colAttrs[a][i] != ws.colAttrs[b][i] {
				return false
			}
		}
		return true
	}
	cols := xmltree.NewElement(q("cols"))
	for i := 0; i < len(idx); {
		j := i
		for j+1 < len(idx) && idx[j+1] == idx[j]+1 && same(idx[i], idx[j+1]) {
			j++
		}
		col := cols.AppendElement(q("col"),
			xmltree.Attr{Name: "min", Value: strconv.Itoa(idx[i] + 1)},
			xmltree.Attr{Name: "max", Value: strconv.Itoa(idx[j] + 1)})
		if w, ok := ws.colWidths[idx[i]]; ok {
			col.SetAttr("width", formatNumber(w)).SetAttr("customWidth", "1")
		}
		col.Attrs = append(col.Attrs, ws.colAttrs[idx[i]]...)
		i = j + 1
	}
	return cols
}

// persisted reports whether a cell needs a c element.
func (c *Cell) persisted() bool {
	return c.orig != nil || !c.IsEmpty() || c.style != 0
}

func (ws *Worksheet) sheetDataNode(existing *xmltree.Node, q func(string) string) *xmltree.Node {
	sheetData := xmltree.NewElement(q("sheetData"))
	if existing != nil {
		sheetData.Name = existing.Name
		sheetData.Attrs = append([]xmltree.Attr(nil), existing.Attrs...)
	}
	rows := make(map[int][]*Cell)
	for _, c := range ws.Cells() {
		if c.persisted() {
			rows[c.row] = append(rows[c.row], c)
		}
	}
	indexes := make([]int, 0, len(rows))
	for r := range rows {
		indexes = append(indexes, r)
	}
	for r := range ws.rowHeights {
		if _, ok := rows[r]; !ok {
			indexes = append(indexes, r)
			rows[r] = nil
		}
	}
	for r := range ws.rowAttrs {
		if _, ok := rows[r]; !ok {
			indexes = append(indexes, r)
			rows[r] = nil
		}
	}
	sort.Ints(indexes)
	for _, r := range indexes {
		row := sheetData.AppendElement(q("row"), xmltree.Attr{Name: "r", Value: strconv.Itoa(r + 1)})
		row.Attrs = append(row.Attrs, ws.rowAttrs[r]...)
		if ht, ok := ws.rowHeights[r]; ok {
			row.SetAttr("ht", formatNumber(ht)).SetAttr("customHeight", "1")
		}
		for _, c := range rows[r] {
			row.AppendChild(c.node(q))
		}
	}
	return sheetData
}

// node returns the c element of the cell.
func (c *Cell) node(q func(string) string) *xmltree.Node {
	if c.orig != nil {
		return c.orig
	}
	el := xmltree.NewElement(q("c"), xmltree.Attr{Name: "r", Value: c.Address()})
	if c.style != 0 {
		el.SetAttr("s", strconv.Itoa(c.style))
	}
	switch c.typ {
	case CellTypeSharedString:
		el.SetAttr("t", "s")
	case CellTypeInlineString:
		if c.formula != "" {
			el.SetAttr("t", "str")
		} else {
			el.SetAttr("t", "inlineStr")
		}
	case CellTypeBool:
		el.SetAttr("t", "b")
	case CellTypeError:
		el.SetAttr("t", "e")
	}
	if c.formula != "" || c.formulaType != "" {
		f := el.AppendElement(q("f"))
		if c.formulaType != "" {
			f.SetAttr("t", c.formulaType)
		}
		if c.formulaRef != "" {
			f.SetAttr("ref", c.formulaRef)
		}
		if c.sharedIndex != "" {
			f.SetAttr("si", c.sharedIndex)
		}
		if c.formula != "" {
			f.SetText(c.formula)
		}
	}
	value := func(s string) {
		el.AppendElement(q("v")).SetText(s)
	}
	switch c.typ {
	case CellTypeSharedString:
		value(strconv.Itoa(c.sst))
	case CellTypeInlineString:
		if c.formula != "" {
			value(escapeStringItem(c.str))
			break
		}
		el.AppendElement(q("is")).AppendChild(newTextElement(q("t"), c.str))
	case CellTypeBool:
		value(strconv.Itoa(int(c.num)))
	case CellTypeError:
		value(c.str)
	case CellTypeNumber, CellTypeDate:
		value(formatNumber(c.num))
	}
	return el
}
