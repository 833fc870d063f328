// Copyright 2016 - 2025 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package sheetkit

import (
	"sort"

	"github.com/OmniMCP-AI/sheetkit/xmltree"
)

// Worksheet is one worksheet of a workbook. Cells live in a sparse map
// keyed by their address. The parsed part of a loaded worksheet is kept so
// that the elements the model does not own are written back as read.
type Worksheet struct {
	wb      *Workbook
	name    string
	sheetID int
	relID   string
	part    string
	// entry is the sheet element of the workbook part as read, the
	// attributes it carries besides name, sheetId and r:id are kept.
	entry *xmltree.Node
	doc   *xmltree.Document

	cells      map[string]*Cell
	merged     []RangeAddress
	colWidths  map[int]float64
	colAttrs   map[int][]xmltree.Attr
	rowHeights map[int]float64
	rowAttrs   map[int][]xmltree.Attr
	frozen     *CellAddress
	tables     []*Table
	// opaqueTables are relationship ids of table parts that could not be
	// read, they stay referenced from the worksheet.
	opaqueTables []string
	rels         *relationships
	dirty        bool
}

func newWorksheet(wb *Workbook, name string) *Worksheet {
	return &Worksheet{
		wb:         wb,
		name:       name,
		cells:      make(map[string]*Cell),
		colWidths:  make(map[int]float64),
		colAttrs:   make(map[int][]xmltree.Attr),
		rowHeights: make(map[int]float64),
		rowAttrs:   make(map[int][]xmltree.Attr),
		rels:       &relationships{},
		dirty:      true,
	}
}

// Name returns the name of the worksheet.
func (ws *Worksheet) Name() string {
	return ws.name
}

// IsDirty reports whether the worksheet changed since it was loaded or
// saved.
func (ws *Worksheet) IsDirty() bool {
	return ws.dirty
}

// cellAt returns the cell at the 0-based coordinates, creating an empty one
// when create is set.
func (ws *Worksheet) cellAt(row, col int, create bool) *Cell {
	if row < 0 || col < 0 {
		return nil
	}
	addr := ToAddress(row, col)
	if c, ok := ws.cells[addr]; ok {
		return c
	}
	if !create {
		return nil
	}
	c := &Cell{ws: ws, row: row, col: col}
	ws.cells[addr] = c
	ws.dirty = true
	return c
}

// Cell provides a function to get the cell at an A1 style address. A cell
// that does not exist yet is created empty.
func (ws *Worksheet) Cell(address string) (*Cell, error) {
	addr, err := ParseAddress(address)
	if err != nil {
		return nil, err
	}
	return ws.cellAt(addr.Row, addr.Col, true), nil
}

// CellAt returns the cell at the 0-based coordinates, creating it when it
// does not exist yet. It returns nil for negative coordinates.
func (ws *Worksheet) CellAt(row, col int) *Cell {
	return ws.cellAt(row, col, true)
}

// GetCellIfExists returns the cell at an A1 style address, or nil when the
// cell does not exist or the address is invalid. It never creates a cell.
func (ws *Worksheet) GetCellIfExists(address string) *Cell {
	addr, err := ParseAddress(address)
	if err != nil {
		return nil
	}
	return ws.cellAt(addr.Row, addr.Col, false)
}

// SetCellValue provides a function to set the value of the cell at an A1
// style address.
func (ws *Worksheet) SetCellValue(address string, value any) error {
	c, err := ws.Cell(address)
	if err != nil {
		return err
	}
	c.SetValue(value)
	return nil
}

// SetCellFormula provides a function to set the formula of the cell at an
// A1 style address.
func (ws *Worksheet) SetCellFormula(address, formula string) error {
	c, err := ws.Cell(address)
	if err != nil {
		return err
	}
	c.SetFormula(formula)
	return nil
}

// GetCellValue returns the value of the cell at an A1 style address, nil
// for a cell that does not exist.
func (ws *Worksheet) GetCellValue(address string) (any, error) {
	addr, err := ParseAddress(address)
	if err != nil {
		return nil, err
	}
	if c := ws.cellAt(addr.Row, addr.Col, false); c != nil {
		return c.Value(), nil
	}
	return nil, nil
}

// Cells returns a snapshot of the cells of the worksheet in row-major
// order.
func (ws *Worksheet) Cells() []*Cell {
	cells := make([]*Cell, 0, len(ws.cells))
	for _, c := range ws.cells {
		cells = append(cells, c)
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].row != cells[j].row {
			return cells[i].row < cells[j].row
		}
		return cells[i].col < cells[j].col
	})
	return cells
}

// CellCount returns the number of cells in the sparse cell map.
func (ws *Worksheet) CellCount() int {
	return len(ws.cells)
}

// usedRange returns the smallest range holding every non-empty cell.
func (ws *Worksheet) usedRange() (RangeAddress, bool) {
	var (
		r     RangeAddress
		found bool
	)
	for _, c := range ws.cells {
		if c.IsEmpty() && c.style == 0 {
			continue
		}
		if !found {
			r = RangeAddress{Start: CellAddress{c.row, c.col}, End: CellAddress{c.row, c.col}}
			found = true
			continue
		}
		r.Start.Row, r.Start.Col = min(r.Start.Row, c.row), min(r.Start.Col, c.col)
		r.End.Row, r.End.Col = max(r.End.Row, c.row), max(r.End.Col, c.col)
	}
	return r, found
}

// Dimension returns the reference of the used range of the worksheet, "A1"
// for an empty worksheet.
func (ws *Worksheet) Dimension() string {
	r, _ := ws.usedRange()
	return r.String()
}

// Range provides a function to get a rectangular view over the cells of a
// range reference such as "A1:C3".
func (ws *Worksheet) Range(ref string) (*Range, error) {
	r, err := ParseRange(ref)
	if err != nil {
		return nil, err
	}
	return &Range{ws: ws, ref: NormalizeRange(r)}, nil
}

// MergeCells provides a function to merge a range of cells. A range that
// overlaps an existing merged range is rejected, merging a range that is
// already merged or a single cell does nothing.
func (ws *Worksheet) MergeCells(ref string) error {
	r, err := ParseRange(ref)
	if err != nil {
		return err
	}
	r = NormalizeRange(r)
	if r.Start == r.End {
		return nil
	}
	for _, m := range ws.merged {
		if m == r {
			return nil
		}
		if rangesOverlap(m, r) {
			return ErrMergeOverlap
		}
	}
	ws.merged = append(ws.merged, r)
	ws.dirty = true
	return nil
}

// UnmergeCells provides a function to remove a merged range.
func (ws *Worksheet) UnmergeCells(ref string) error {
	r, err := ParseRange(ref)
	if err != nil {
		return err
	}
	r = NormalizeRange(r)
	for i, m := range ws.merged {
		if m == r {
			ws.merged = append(ws.merged[:i], ws.merged[i+1:]...)
			ws.dirty = true
			break
		}
	}
	return nil
}

// MergedCells returns the references of the merged ranges.
func (ws *Worksheet) MergedCells() []string {
	refs := make([]string, len(ws.merged))
	for i, m := range ws.merged {
		refs[i] = m.String()
	}
	return refs
}

// SetColumnWidth provides a function to set the width of the column at
// the 0-based index.
func (ws *Worksheet) SetColumnWidth(col int, width float64) error {
	if col < 0 {
		return newInvalidAddressError(ColToLetter(col))
	}
	if width <= 0 {
		return ErrInvalidColumnWidth
	}
	ws.colWidths[col] = width
	ws.dirty = true
	return nil
}

// GetColumnWidth returns the width of the column at the 0-based index, 0
// when the column has the default width.
func (ws *Worksheet) GetColumnWidth(col int) float64 {
	return ws.colWidths[col]
}

// SetRowHeight provides a function to set the height of the row at the
// 0-based index.
func (ws *Worksheet) SetRowHeight(row int, height float64) error {
	if row < 0 {
		return newInvalidAddressError(ToAddress(row, 0))
	}
	if height <= 0 {
		return ErrInvalidRowHeight
	}
	ws.rowHeights[row] = height
	ws.dirty = true
	return nil
}

// GetRowHeight returns the height of the row at the 0-based index, 0 when
// the row has the default height.
func (ws *Worksheet) GetRowHeight(row int) float64 {
	return ws.rowHeights[row]
}

// SetFrozenPane provides a function to freeze the rows above row and the
// columns left of col. Zero for both removes the frozen pane.
func (ws *Worksheet) SetFrozenPane(row, col int) error {
	if row < 0 || col < 0 {
		return ErrInvalidFreezePane
	}
	ws.dirty = true
	if row == 0 && col == 0 {
		ws.frozen = nil
		return nil
	}
	ws.frozen = &CellAddress{Row: row, Col: col}
	return nil
}

// GetFrozenPane returns the split of the frozen pane: the number of frozen
// rows and columns.
func (ws *Worksheet) GetFrozenPane() (CellAddress, bool) {
	if ws.frozen == nil {
		return CellAddress{}, false
	}
	return *ws.frozen, true
}

// Tables returns the tables of the worksheet.
func (ws *Worksheet) Tables() []*Table {
	return append([]*Table(nil), ws.tables...)
}

// Table returns the table of the worksheet with the given name, or nil.
func (ws *Worksheet) Table(name string) *Table {
	for _, t := range ws.tables {
		if t.name == name {
			return t
		}
	}
	return nil
}

// PivotTables returns the pivot tables placed on the worksheet.
func (ws *Worksheet) PivotTables() []*PivotTable {
	var list []*PivotTable
	for _, pt := range ws.wb.pivotTables {
		if pt.sheet == ws {
			list = append(list, pt)
		}
	}
	return list
}
