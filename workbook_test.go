// Copyright 2016 - 2025 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package sheetkit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWorkbook(t *testing.T) {
	wb := NewWorkbook()
	assert.Equal(t, 0, wb.SheetCount())
	assert.Empty(t, wb.SheetNames())
	assert.True(t, wb.IsDirty())
	assert.False(t, wb.Date1904())
	assert.NotNil(t, wb.Styles())
	assert.NotNil(t, wb.SharedStrings())
	_, err := wb.WriteToBuffer()
	assert.ErrorIs(t, err, ErrNoSheets)
	_, err = wb.SheetByIndex(0)
	assert.ErrorIs(t, err, ErrSheetNotExist)
}

func TestAddSheet(t *testing.T) {
	wb := NewWorkbook()
	first, err := wb.AddSheet("Sheet1")
	require.NoError(t, err)
	second, err := wb.AddSheet("Données")
	require.NoError(t, err)
	assert.Equal(t, []string{"Sheet1", "Données"}, wb.SheetNames())
	assert.Equal(t, "xl/worksheets/sheet1.xml", first.part)
	assert.Equal(t, "xl/worksheets/sheet2.xml", second.part)
	assert.Equal(t, 1, first.sheetID)
	assert.Equal(t, 2, second.sheetID)

	ws, err := wb.Sheet("Données")
	require.NoError(t, err)
	assert.Same(t, second, ws)
	ws, err = wb.SheetByIndex(0)
	require.NoError(t, err)
	assert.Same(t, first, ws)
	_, err = wb.Sheet("Missing")
	assert.ErrorIs(t, err, ErrSheetNotExist)

	for _, c := range []struct {
		name string
		err  error
	}{
		{"", ErrSheetNameBlank},
		{strings.Repeat("x", MaxSheetNameLength+1), ErrSheetNameLength},
		{"a/b", ErrSheetNameInvalid},
		{"a[1]", ErrSheetNameInvalid},
		{"What?", ErrSheetNameInvalid},
		{"'quoted", ErrSheetNameInvalid},
		{"quoted'", ErrSheetNameInvalid},
		{"Sheet1", ErrSheetExists},
	} {
		_, err := wb.AddSheet(c.name)
		assert.ErrorIs(t, err, c.err, c.name)
	}
	_, err = wb.AddSheet(strings.Repeat("é", MaxSheetNameLength))
	assert.NoError(t, err)
	_, err = wb.AddSheet("It's fine")
	assert.NoError(t, err)
	assert.Equal(t, 4, wb.SheetCount())
}

func TestDeleteSheet(t *testing.T) {
	wb := NewWorkbook()
	for _, name := range []string{"A", "B", "C"} {
		_, err := wb.AddSheet(name)
		require.NoError(t, err)
	}
	salesSheet(t, wb, "Data")
	_, err := wb.CreatePivotTable(PivotTableOptions{Source: "Data!A1:C6", Target: "C!A1"})
	require.NoError(t, err)
	require.NoError(t, wb.SetActiveSheet(2))

	assert.ErrorIs(t, wb.DeleteSheet("Missing"), ErrSheetNotExist)
	require.NoError(t, wb.DeleteSheet("A"))
	assert.Equal(t, []string{"B", "C", "Data"}, wb.SheetNames())
	assert.Equal(t, 1, wb.ActiveSheet())

	require.NoError(t, wb.DeleteSheet("C"))
	assert.Empty(t, wb.PivotTables())
	assert.Len(t, wb.PivotCaches(), 1)
	assert.Equal(t, 1, wb.ActiveSheet())
	assert.Equal(t, "Data", wb.sheets[wb.ActiveSheet()].Name())

	require.NoError(t, wb.DeleteSheet("Data"))
	assert.Equal(t, 0, wb.ActiveSheet())
	assert.ErrorIs(t, wb.DeleteSheet("B"), ErrLastSheet)

	ws, err := wb.AddSheet("A")
	require.NoError(t, err)
	assert.Equal(t, "xl/worksheets/sheet5.xml", ws.part)
}

func TestRenameSheet(t *testing.T) {
	wb := NewWorkbook()
	data := salesSheet(t, wb, "Data")
	report, err := wb.AddSheet("Report")
	require.NoError(t, err)
	require.NoError(t, report.SetCellFormula("A1", "SUM(Data!C2:C6)"))
	require.NoError(t, report.SetCellFormula("A2", `COUNTIF(Data!A2:A6,"Data!")`))
	require.NoError(t, report.SetCellFormula("A3", "Report!A1*2"))
	require.NoError(t, data.SetCellFormula("D2", "C2*2"))
	pt, err := wb.CreatePivotTable(PivotTableOptions{Source: "Data!A1:C6", Target: "Report!C1"})
	require.NoError(t, err)

	assert.ErrorIs(t, wb.RenameSheet("Missing", "X"), ErrSheetNotExist)
	assert.ErrorIs(t, wb.RenameSheet("Data", "Report"), ErrSheetExists)
	assert.ErrorIs(t, wb.RenameSheet("Data", "Bad:Name"), ErrSheetNameInvalid)
	require.NoError(t, wb.RenameSheet("Data", "Data"))

	require.NoError(t, wb.RenameSheet("Data", "Sales 2024"))
	assert.Equal(t, []string{"Sales 2024", "Report"}, wb.SheetNames())
	assert.Equal(t, "Sales 2024", data.Name())
	_, err = wb.Sheet("Data")
	assert.ErrorIs(t, err, ErrSheetNotExist)

	assert.Equal(t, "SUM('Sales 2024'!C2:C6)", report.GetCellIfExists("A1").Formula())
	assert.Equal(t, `COUNTIF('Sales 2024'!A2:A6,"Data!")`, report.GetCellIfExists("A2").Formula())
	assert.Equal(t, "Report!A1*2", report.GetCellIfExists("A3").Formula())
	assert.Equal(t, "C2*2", data.GetCellIfExists("D2").Formula())
	assert.Equal(t, "Sales 2024", pt.Cache().SourceSheet())

	content, err := pt.Cache().DefinitionXML()
	require.NoError(t, err)
	assert.Contains(t, string(content), `<worksheetSource ref="A1:C6" sheet="Sales 2024">`)
}

func TestCopySheet(t *testing.T) {
	wb := NewWorkbook()
	src := salesSheet(t, wb, "Data")
	require.NoError(t, src.MergeCells("E1:F2"))
	require.NoError(t, src.SetColumnWidth(0, 18))
	require.NoError(t, src.SetRowHeight(0, 24))
	require.NoError(t, src.SetFrozenPane(1, 0))
	require.NoError(t, src.SetCellFormula("D2", "C2*2"))
	_, err := src.CreateTable("A1:C6", TableOptions{Name: "Sales"})
	require.NoError(t, err)

	_, err = wb.CopySheet("Missing", "Copy")
	assert.ErrorIs(t, err, ErrSheetNotExist)
	_, err = wb.CopySheet("Data", "Data")
	assert.ErrorIs(t, err, ErrSheetExists)

	dst, err := wb.CopySheet("Data", "Copy")
	require.NoError(t, err)
	assert.Equal(t, []string{"Data", "Copy"}, wb.SheetNames())
	assert.Equal(t, src.CellCount(), dst.CellCount())
	assert.Equal(t, "West", dst.GetCellIfExists("A3").Value())
	assert.Equal(t, 250.0, dst.GetCellIfExists("C3").Value())
	assert.Equal(t, "C2*2", dst.GetCellIfExists("D2").Formula())
	assert.Equal(t, []string{"E1:F2"}, dst.MergedCells())
	assert.Equal(t, 18.0, dst.GetColumnWidth(0))
	assert.Equal(t, 24.0, dst.GetRowHeight(0))
	pane, ok := dst.GetFrozenPane()
	assert.True(t, ok)
	assert.Equal(t, CellAddress{Row: 1, Col: 0}, pane)
	assert.Empty(t, dst.Tables())

	dst.GetCellIfExists("A3").SetValue("South")
	require.NoError(t, dst.SetColumnWidth(0, 30))
	require.NoError(t, dst.UnmergeCells("E1:F2"))
	assert.Equal(t, "West", src.GetCellIfExists("A3").Value())
	assert.Equal(t, 18.0, src.GetColumnWidth(0))
	assert.Equal(t, []string{"E1:F2"}, src.MergedCells())
}

func TestSetActiveSheet(t *testing.T) {
	wb := NewWorkbook()
	first := newTestSheetIn(t, wb, "First")
	second := newTestSheetIn(t, wb, "Second")
	assert.Equal(t, 0, wb.ActiveSheet())
	assert.ErrorIs(t, wb.SetActiveSheet(2), ErrSheetNotExist)
	assert.ErrorIs(t, wb.SetActiveSheet(-1), ErrSheetNotExist)

	require.NoError(t, wb.SetActiveSheet(1))
	assert.Equal(t, 1, wb.ActiveSheet())
	assert.Contains(t, string(wb.workbookXML()), `activeTab="1"`)

	content, err := first.bytes()
	require.NoError(t, err)
	assert.NotContains(t, string(content), "tabSelected")
	content, err = second.bytes()
	require.NoError(t, err)
	assert.Contains(t, string(content), `tabSelected="1"`)

	require.NoError(t, wb.SetActiveSheet(0))
	assert.NotContains(t, string(wb.workbookXML()), "activeTab")
}

func TestWorkbookXML(t *testing.T) {
	wb := NewWorkbook()
	newTestSheetIn(t, wb, "One")
	newTestSheetIn(t, wb, "Two & Three")
	salesSheet(t, wb, "Data")
	_, err := wb.CreatePivotTable(PivotTableOptions{Source: "Data!A1:C6", Target: "Data!F1"})
	require.NoError(t, err)

	xml := string(wb.workbookXML())
	assert.Contains(t, xml, `<sheets><sheet name="One" sheetId="1" r:id="rId2"/><sheet name="Two &amp; Three" sheetId="2" r:id="rId3"/><sheet name="Data" sheetId="3" r:id="rId4"/></sheets>`)
	assert.Contains(t, xml, `<calcPr calcId="191029"/><pivotCaches><pivotCache cacheId="1" r:id="rId5"/></pivotCaches>`)
	assert.Less(t, strings.Index(xml, "<bookViews>"), strings.Index(xml, "<sheets>"))
}

func newTestSheetIn(t *testing.T, wb *Workbook, name string) *Worksheet {
	t.Helper()
	ws, err := wb.AddSheet(name)
	require.NoError(t, err)
	return ws
}
