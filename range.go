// Copyright 2016 - 2025 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package sheetkit

// CellData contains value, style and formula for a cell.
type CellData struct {
	Value   any
	Style   CellStyle
	Formula string
}

// Range is a rectangular view over the cells of a worksheet.
type Range struct {
	ws  *Worksheet
	ref RangeAddress
}

// Address returns the reference of the range.
func (r *Range) Address() string {
	return r.ref.String()
}

// Ref returns the normalized coordinates of the range.
func (r *Range) Ref() RangeAddress {
	return r.ref
}

// each visits every address of the range in row-major order.
func (r *Range) each(fn func(i, j, row, col int)) {
	for row := r.ref.Start.Row; row <= r.ref.End.Row; row++ {
		for col := r.ref.Start.Col; col <= r.ref.End.Col; col++ {
			fn(row-r.ref.Start.Row, col-r.ref.Start.Col, row, col)
		}
	}
}

func (r *Range) grid() [][]any {
	values := make([][]any, r.ref.Rows())
	for i := range values {
		values[i] = make([]any, r.ref.Cols())
	}
	return values
}

// Values returns the values of the range as rows, creating the cells that
// do not exist yet.
func (r *Range) Values() [][]any {
	return r.GetValues(true)
}

// GetValues provides a function to get the values of the range as rows.
// With createMissing unset, cells that do not exist read as nil and are not
// created.
func (r *Range) GetValues(createMissing bool) [][]any {
	values := r.grid()
	r.each(func(i, j, row, col int) {
		if c := r.ws.cellAt(row, col, createMissing); c != nil {
			values[i][j] = c.Value()
		}
	})
	return values
}

// SetValues provides a function to write rows of values into the range.
// Rows and columns beyond the bounds of the range are ignored.
func (r *Range) SetValues(values [][]any) {
	for i, row := range values {
		if i >= r.ref.Rows() {
			break
		}
		for j, v := range row {
			if j >= r.ref.Cols() {
				break
			}
			r.ws.cellAt(r.ref.Start.Row+i, r.ref.Start.Col+j, true).SetValue(v)
		}
	}
}

// Formulas returns the formulas of the range as rows, "" for cells without
// a formula. No cell is created.
func (r *Range) Formulas() [][]string {
	formulas := make([][]string, r.ref.Rows())
	for i := range formulas {
		formulas[i] = make([]string, r.ref.Cols())
	}
	r.each(func(i, j, row, col int) {
		if c := r.ws.cellAt(row, col, false); c != nil {
			formulas[i][j] = c.formula
		}
	})
	return formulas
}

// SetFormulas provides a function to write rows of formulas into the
// range, empty strings leave the cell alone. Rows and columns beyond the
// bounds of the range are ignored.
func (r *Range) SetFormulas(formulas [][]string) {
	for i, row := range formulas {
		if i >= r.ref.Rows() {
			break
		}
		for j, f := range row {
			if j >= r.ref.Cols() {
				break
			}
			if f == "" {
				continue
			}
			r.ws.cellAt(r.ref.Start.Row+i, r.ref.Start.Col+j, true).SetFormula(f)
		}
	}
}

// SetStyle provides a function to merge the style into the style of every
// cell of the range, each cell is resolved on its own.
func (r *Range) SetStyle(style CellStyle) {
	r.each(func(_, _, row, col int) {
		r.ws.cellAt(row, col, true).SetStyle(style)
	})
}

// Cells returns the cells of the range as rows, creating the cells that do
// not exist yet.
func (r *Range) Cells() [][]*Cell {
	cells := make([][]*Cell, r.ref.Rows())
	for i := range cells {
		cells[i] = make([]*Cell, r.ref.Cols())
	}
	r.each(func(i, j, row, col int) {
		cells[i][j] = r.ws.cellAt(row, col, true)
	})
	return cells
}

// Data returns the value, style and formula of every cell of the range as
// rows without creating cells.
func (r *Range) Data() [][]CellData {
	data := make([][]CellData, r.ref.Rows())
	for i := range data {
		data[i] = make([]CellData, r.ref.Cols())
	}
	r.each(func(i, j, row, col int) {
		if c := r.ws.cellAt(row, col, false); c != nil {
			data[i][j] = CellData{Value: c.Value(), Style: c.Style(), Formula: c.formula}
		}
	})
	return data
}
