// Copyright 2016 - 2025 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package sheetkit

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html/charset"
)

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.]*$`)

// subtotalCodes defined the SUBTOTAL function numbers of the table total
// functions, the variants that ignore hidden rows.
var subtotalCodes = map[string]int{
	"average":   101,
	"count":     102,
	"countNums": 103,
	"max":       104,
	"min":       105,
	"stdDev":    107,
	"sum":       109,
	"var":       110,
}

// TableStyle directly maps the style settings of a table.
type TableStyle struct {
	Name              string
	ShowFirstColumn   bool
	ShowLastColumn    bool
	ShowRowStripes    bool
	ShowColumnStripes bool
}

// TableOptions directly maps the settings of a new table. The auto filter
// is on unless NoAutoFilter is set, Style defaults to TableStyleMedium2
// with row stripes.
type TableOptions struct {
	Name         string
	DisplayName  string
	NoAutoFilter bool
	TotalRow     bool
	Style        *TableStyle
}

// TableColumn is one column of a table. ColIndex is the 0-based position
// of the column inside the table.
type TableColumn struct {
	ID            int
	Name          string
	ColIndex      int
	TotalFunction string
}

// Table is a named structured range of a worksheet.
type Table struct {
	ws          *Worksheet
	id          int
	name        string
	displayName string
	ref         RangeAddress
	columns     []TableColumn
	autoFilter  bool
	style       TableStyle
	totalRow    bool
	part        string
	relID       string
	raw         *xlsxTable
	dirty       bool
}

// CreateTable provides a function to create a table over a range of the
// worksheet. The column names come from the header row, blank header cells
// are named ColumnN. Table names are unique in the whole workbook.
func (ws *Worksheet) CreateTable(ref string, opts TableOptions) (*Table, error) {
	if opts.Name == "" || !tableNamePattern.MatchString(opts.Name) {
		return nil, newInvalidTableNameError(opts.Name)
	}
	if ws.wb.tableByName(opts.Name) != nil {
		return nil, newTableExistsError(opts.Name)
	}
	r, err := ParseRange(ref)
	if err != nil {
		return nil, err
	}
	r = NormalizeRange(r)
	t := &Table{
		ws:          ws,
		name:        opts.Name,
		displayName: opts.DisplayName,
		ref:         r,
		autoFilter:  !opts.NoAutoFilter,
		style:       TableStyle{Name: "TableStyleMedium2", ShowRowStripes: true},
		totalRow:    opts.TotalRow,
		dirty:       true,
	}
	if t.displayName == "" {
		t.displayName = t.name
	}
	if opts.Style != nil {
		t.style = *opts.Style
	}
	t.columns = ws.headerColumns(r)
	if t.totalRow {
		t.ref.End.Row++
	}
	t.id = ws.wb.allocTableID()
	t.part = fmt.Sprintf("xl/tables/table%d.xml", ws.wb.allocPartIndex(partTable))
	t.relID = ws.rels.add(SourceRelationshipTable, relativeTarget(ws.part, t.part))
	ws.tables = append(ws.tables, t)
	ws.dirty = true
	return t, nil
}

// headerColumns reads the column names from the first row of the range.
// Blank header cells get a ColumnN name written into them, repeated names
// get a numeric suffix.
func (ws *Worksheet) headerColumns(r RangeAddress) []TableColumn {
	used := make(map[string]bool)
	var columns []TableColumn
	for col := r.Start.Col; col <= r.End.Col; col++ {
		pos := col - r.Start.Col
		name := ""
		if c := ws.cellAt(r.Start.Row, col, false); c != nil {
			name = strings.TrimSpace(valueString(c.Value()))
		}
		if name == "" {
			name = "Column" + strconv.Itoa(pos+1)
			ws.cellAt(r.Start.Row, col, true).SetValue(name)
		}
		base := name
		for n := 2; used[strings.ToLower(name)]; n++ {
			name = base + strconv.Itoa(n)
		}
		used[strings.ToLower(name)] = true
		columns = append(columns, TableColumn{ID: pos + 1, Name: name, ColIndex: pos})
	}
	return columns
}

// valueString renders a cell value as header text.
func valueString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return formatNumber(t)
	case bool:
		if t {
			return "TRUE"
		}
		return "FALSE"
	case CellError:
		return string(t)
	}
	return fmt.Sprint(v)
}

// Name returns the name of the table.
func (t *Table) Name() string {
	return t.name
}

// DisplayName returns the display name of the table.
func (t *Table) DisplayName() string {
	return t.displayName
}

// Worksheet returns the worksheet that owns the table.
func (t *Table) Worksheet() *Worksheet {
	return t.ws
}

// Ref returns the reference of the whole table, total row included.
func (t *Table) Ref() string {
	return t.ref.String()
}

// AutoFilterRef returns the reference covered by the auto filter, which
// never includes the total row.
func (t *Table) AutoFilterRef() string {
	r := t.ref
	if t.totalRow && r.End.Row > r.Start.Row {
		r.End.Row--
	}
	return r.String()
}

// AutoFilter reports whether the table has an auto filter.
func (t *Table) AutoFilter() bool {
	return t.autoFilter
}

// Columns returns the columns of the table.
func (t *Table) Columns() []TableColumn {
	return append([]TableColumn(nil), t.columns...)
}

// TotalRow reports whether the table has a total row.
func (t *Table) TotalRow() bool {
	return t.totalRow
}

// Style returns the style settings of the table.
func (t *Table) Style() TableStyle {
	return t.style
}

// SetTotalRow provides a function to turn the total row on or off. Turning
// it on grows the table by one row, turning it off clears the total
// functions of every column and leaves the range as it is.
func (t *Table) SetTotalRow(enabled bool) {
	if enabled == t.totalRow {
		return
	}
	t.totalRow = enabled
	if enabled {
		t.ref.End.Row++
	} else {
		for i := range t.columns {
			t.columns[i].TotalFunction = ""
		}
	}
	t.touch()
}

// SetTotalFunction provides a function to set the aggregate of a column in
// the total row and write the matching SUBTOTAL formula into the total row
// cell of the column. The functions are average, count, countNums, max,
// min, stdDev, sum and var; "none" or "" removes the aggregate.
func (t *Table) SetTotalFunction(column, fn string) error {
	if !t.totalRow {
		return ErrTotalRowDisabled
	}
	idx := -1
	for i, c := range t.columns {
		if c.Name == column {
			idx = i
			break
		}
	}
	if idx < 0 {
		return newColumnNotExistError(column)
	}
	cell := t.ws.cellAt(t.ref.End.Row, t.ref.Start.Col+t.columns[idx].ColIndex, true)
	if fn == "" || fn == "none" {
		t.columns[idx].TotalFunction = ""
		cell.SetValue(nil)
		t.touch()
		return nil
	}
	code, ok := subtotalCodes[fn]
	if !ok {
		return fmt.Errorf("%w: %s", ErrTotalFunction, fn)
	}
	t.columns[idx].TotalFunction = fn
	cell.SetFormula(fmt.Sprintf("SUBTOTAL(%d,[%s])", code, escapeStructuredName(column)))
	t.touch()
	return nil
}

// escapeStructuredName escapes the characters that have a meaning inside
// the brackets of a structured reference.
func escapeStructuredName(name string) string {
	var sb strings.Builder
	for _, r := range name {
		switch r {
		case '[', ']', '#', '\'':
			sb.WriteByte('\'')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func (t *Table) touch() {
	t.dirty = true
	t.ws.dirty = true
}

// XML provides a function to serialize the table part.
func (t *Table) XML() ([]byte, error) {
	x := xlsxTable{
		ID:          t.id,
		Name:        t.name,
		DisplayName: t.displayName,
		Ref:         t.ref.String(),
	}
	if t.raw != nil {
		x.HeaderRowCount, x.SortState, x.ExtLst = t.raw.HeaderRowCount, t.raw.SortState, t.raw.ExtLst
		x.Attrs = t.raw.Attrs
	}
	if t.totalRow {
		x.TotalsRowCount = 1
	} else {
		x.TotalsRowShown = "0"
	}
	if t.autoFilter {
		x.AutoFilter = &xlsxAutoFilter{Ref: t.AutoFilterRef()}
		if t.raw != nil && t.raw.AutoFilter != nil {
			x.AutoFilter.Attrs, x.AutoFilter.Inner = t.raw.AutoFilter.Attrs, t.raw.AutoFilter.Inner
		}
	}
	rawColumns := make(map[int]xlsxTableColumn)
	if t.raw != nil {
		for _, c := range t.raw.TableColumns.TableColumn {
			rawColumns[c.ID] = c
		}
	}
	x.TableColumns.Count = len(t.columns)
	for _, c := range t.columns {
		col := xlsxTableColumn{ID: c.ID, Name: c.Name}
		if raw, ok := rawColumns[c.ID]; ok {
			col.TotalsRowLabel, col.DataDxfID, col.Inner = raw.TotalsRowLabel, raw.DataDxfID, raw.Inner
			col.Attrs = raw.Attrs
		}
		if t.totalRow && c.TotalFunction != "" {
			col.TotalsRowFunction = c.TotalFunction
		}
		x.TableColumns.TableColumn = append(x.TableColumns.TableColumn, col)
	}
	x.TableStyleInfo = &xlsxTableStyleInfo{
		Name:              t.style.Name,
		ShowFirstColumn:   boolToInt(t.style.ShowFirstColumn),
		ShowLastColumn:    boolToInt(t.style.ShowLastColumn),
		ShowRowStripes:    boolToInt(t.style.ShowRowStripes),
		ShowColumnStripes: boolToInt(t.style.ShowColumnStripes),
	}
	return marshalPart(x)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// parseTable provides a function to read a table part of a loaded
// worksheet.
func (ws *Worksheet) parseTable(part, relID string, content []byte) (*Table, error) {
	var x xlsxTable
	dec := xml.NewDecoder(bytes.NewReader(content))
	dec.CharsetReader = charset.NewReaderLabel
	if err := dec.Decode(&x); err != nil {
		return nil, err
	}
	r, err := ParseRange(x.Ref)
	if err != nil {
		return nil, err
	}
	prefixes := namespacePrefixes(x.Attrs)
	x.Attrs = qualifyAttrs(x.Attrs, prefixes)
	if x.AutoFilter != nil {
		x.AutoFilter.Attrs = qualifyAttrs(x.AutoFilter.Attrs, prefixes)
	}
	for _, el := range []*xlsxRawElement{x.SortState, x.ExtLst} {
		if el != nil {
			el.Attrs = qualifyAttrs(el.Attrs, prefixes)
		}
	}
	for i := range x.TableColumns.TableColumn {
		col := &x.TableColumns.TableColumn[i]
		col.Attrs = qualifyAttrs(col.Attrs, prefixes)
	}
	t := &Table{
		ws:          ws,
		id:          x.ID,
		name:        x.Name,
		displayName: x.DisplayName,
		ref:         NormalizeRange(r),
		autoFilter:  x.AutoFilter != nil,
		totalRow:    x.TotalsRowCount > 0,
		part:        part,
		relID:       relID,
		raw:         &x,
	}
	if t.displayName == "" {
		t.displayName = t.name
	}
	if s := x.TableStyleInfo; s != nil {
		t.style = TableStyle{
			Name:              s.Name,
			ShowFirstColumn:   s.ShowFirstColumn == 1,
			ShowLastColumn:    s.ShowLastColumn == 1,
			ShowRowStripes:    s.ShowRowStripes == 1,
			ShowColumnStripes: s.ShowColumnStripes == 1,
		}
	}
	for i, c := range x.TableColumns.TableColumn {
		t.columns = append(t.columns, TableColumn{ID: c.ID, Name: c.Name, ColIndex: i, TotalFunction: c.TotalsRowFunction})
	}
	return t, nil
}
