// Copyright 2016 - 2025 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package sheetkit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSheet(t *testing.T) *Worksheet {
	t.Helper()
	wb := NewWorkbook()
	ws, err := wb.AddSheet("Sheet1")
	require.NoError(t, err)
	return ws
}

func TestCellSetValue(t *testing.T) {
	ws := newTestSheet(t)
	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	for _, c := range []struct {
		value    any
		typ      CellType
		expected any
	}{
		{"text", CellTypeSharedString, "text"},
		{42, CellTypeNumber, 42.0},
		{int64(-7), CellTypeNumber, -7.0},
		{float32(1.5), CellTypeNumber, 1.5},
		{float32(1.1), CellTypeNumber, 1.1},
		{uint8(3), CellTypeNumber, 3.0},
		{true, CellTypeBool, true},
		{false, CellTypeBool, false},
		{"#N/A", CellTypeError, ErrorNA},
		{ErrorDiv0, CellTypeError, ErrorDiv0},
		{date, CellTypeDate, date},
		{nil, CellTypeEmpty, nil},
		{[]byte("bytes"), CellTypeSharedString, "bytes"},
		{struct{ A int }{1}, CellTypeSharedString, "{1}"},
	} {
		cell, err := ws.Cell("A1")
		require.NoError(t, err)
		cell.SetValue(c.value)
		assert.Equal(t, c.typ, cell.Type(), c.typ.String())
		assert.Equal(t, c.expected, cell.Value(), c.typ.String())
	}
}

func TestCellDateFormat(t *testing.T) {
	ws := newTestSheet(t)
	cell := ws.CellAt(0, 0)
	cell.SetValue(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "mm-dd-yy", cell.NumberFormat())
	assert.Equal(t, "2024-01-15", cell.Text())

	cell = ws.CellAt(0, 1)
	cell.SetValue(time.Date(2024, 1, 15, 13, 30, 0, 0, time.UTC))
	assert.Equal(t, "m/d/yy h:mm", cell.NumberFormat())
	assert.Equal(t, "2024-01-15 13:30:00", cell.Text())

	cell = ws.CellAt(0, 2)
	cell.SetValue(45306.0)
	assert.Equal(t, CellTypeNumber, cell.Type())
	cell.SetNumberFormat("yyyy-mm-dd")
	assert.Equal(t, CellTypeDate, cell.Type())
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), cell.Value())
	cell.SetNumberFormat("0.00")
	assert.Equal(t, CellTypeNumber, cell.Type())
	assert.Equal(t, 45306.0, cell.Value())

	cell = ws.CellAt(0, 3)
	cell.SetStyle(CellStyle{NumFmt: "dd/mm/yyyy"})
	cell.SetValue(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "dd/mm/yyyy", cell.NumberFormat())
}

func TestCellFormula(t *testing.T) {
	ws := newTestSheet(t)
	cell := ws.CellAt(2, 2)
	cell.SetValue(10)
	cell.SetFormula("=SUM(A1:B2)+'My Sheet'!C3*Data!$D$4")
	assert.Equal(t, "SUM(A1:B2)+'My Sheet'!C3*Data!$D$4", cell.Formula())
	assert.Equal(t, 10.0, cell.Value())
	assert.Equal(t, []string{"A1:B2", "My Sheet!C3", "Data!$D$4"}, cell.References())
	assert.Equal(t, "C3", cell.Address())
	assert.Equal(t, 2, cell.Row())
	assert.Equal(t, 2, cell.Col())

	cell.SetValue("reset")
	assert.Equal(t, "", cell.Formula())
	assert.Nil(t, cell.References())
}

func TestCellStyle(t *testing.T) {
	ws := newTestSheet(t)
	cell := ws.CellAt(0, 0)
	cell.SetStyle(CellStyle{Font: &Font{Bold: true}})
	cell.SetStyle(CellStyle{Fill: &Fill{Color: "FFFF00"}})
	style := cell.Style()
	require.NotNil(t, style.Font)
	require.NotNil(t, style.Fill)
	assert.True(t, style.Font.Bold)
	assert.Equal(t, "FFFFFF00", style.Fill.Color)

	other := ws.CellAt(0, 1)
	other.SetStyle(CellStyle{Font: &Font{Bold: true}, Fill: &Fill{Color: "FFFF00"}})
	assert.Equal(t, cell.StyleIndex(), other.StyleIndex())
}

func TestCellText(t *testing.T) {
	ws := newTestSheet(t)
	cell := ws.CellAt(0, 0)
	assert.Equal(t, "", cell.Text())
	assert.True(t, cell.IsEmpty())
	cell.SetValue(1.25)
	assert.Equal(t, "1.25", cell.Text())
	cell.SetValue(true)
	assert.Equal(t, "TRUE", cell.Text())
	cell.SetText("yes")
	assert.Equal(t, "yes", cell.Text())
}

func TestRenameSheetInFormula(t *testing.T) {
	for _, c := range []struct {
		formula, expected string
		changed           bool
	}{
		{"Old!A1+1", "New!A1+1", true},
		{"SUM(Old!A1:B2,Other!C3)", "SUM(New!A1:B2,Other!C3)", true},
		{`IF(Old!A1>0,"Old!A1","x ""y""")`, `IF(New!A1>0,"Old!A1","x ""y""")`, true},
		{"Older!A1", "Older!A1", false},
		{"A1*2", "A1*2", false},
		{"SUM({1,2})+Old!A1", "SUM({1,2})+Old!A1", false},
	} {
		got, changed := renameSheetInFormula(c.formula, "Old", "New")
		assert.Equal(t, c.changed, changed, c.formula)
		assert.Equal(t, c.expected, got, c.formula)
	}

	got, changed := renameSheetInFormula("'My Data'!A1*2", "My Data", "Plain")
	assert.True(t, changed)
	assert.Equal(t, "Plain!A1*2", got)

	got, changed = renameSheetInFormula("Plain!A1", "Plain", "It's here")
	assert.True(t, changed)
	assert.Equal(t, "'It''s here'!A1", got)

	got, changed = renameSheetInFormula("SUM(Jan:Old!B2)", "Old", "Dec")
	assert.True(t, changed)
	assert.Equal(t, "SUM(Jan:Dec!B2)", got)
}
