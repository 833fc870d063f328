// Copyright 2016 - 2025 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package sheetkit

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testNS     = `xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"`
	testRelsNS = `xmlns="http://schemas.openxmlformats.org/package/2006/relationships"`
	testTheme  = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<a:theme xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" name="Office"><a:themeElements/></a:theme>`
	testSheet1 = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<worksheet ` + testNS + `><dimension ref="A1:B3"/><sheetData><row r="1"><c r="A1" t="s"><v>0</v></c><c r="B1" s="1"><v>0</v></c></row><row r="2"><c r="A2"><v>2.5</v></c><c r="B2" t="b"><v>1</v></c></row><row r="3"><c r="A3"><f>SUM(A1:A2)</f><v>2.5</v></c><c r="B3" t="e"><v>#DIV/0!</v></c></row></sheetData><pageMargins left="0.7" right="0.7" top="0.75" bottom="0.75" header="0.3" footer="0.3"/></worksheet>`
)

// loadedPackage returns a package written by another application: a 1904
// date system, a chart sheet, a theme and defined names.
func loadedPackage(t *testing.T) []byte {
	t.Helper()
	return zipParts(t,
		[2]string{"[Content_Types].xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"><Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/><Default Extension="xml" ContentType="application/xml"/><Override PartName="/xl/workbook.xml" ContentType="application/vnd.ms-excel.sheet.macroEnabled.main+xml"/><Override PartName="/xl/worksheets/sheet1.xml" ContentType="application/vnd.openxmlformats-officedocument.spreadsheetml.worksheet+xml"/><Override PartName="/xl/worksheets/sheet2.xml" ContentType="application/vnd.openxmlformats-officedocument.spreadsheetml.worksheet+xml"/><Override PartName="/xl/chartsheets/sheet1.xml" ContentType="application/vnd.openxmlformats-officedocument.spreadsheetml.chartsheet+xml"/><Override PartName="/xl/theme/theme1.xml" ContentType="application/vnd.openxmlformats-officedocument.theme+xml"/><Override PartName="/xl/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.spreadsheetml.styles+xml"/><Override PartName="/xl/sharedStrings.xml" ContentType="application/vnd.openxmlformats-officedocument.spreadsheetml.sharedStrings+xml"/><Override PartName="/xl/calcChain.xml" ContentType="application/vnd.openxmlformats-officedocument.spreadsheetml.calcChain+xml"/></Types>`},
		[2]string{"_rels/.rels", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships ` + testRelsNS + `><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="xl/workbook.xml"/></Relationships>`},
		[2]string{"xl/workbook.xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<workbook ` + testNS + `><workbookPr date1904="1"/><bookViews><workbookView activeTab="1"/></bookViews><sheets><sheet name="Alpha" sheetId="1" r:id="rId1"/><sheet name="Beta" sheetId="2" r:id="rId2"/><sheet name="Chart1" sheetId="5" r:id="rId3"/></sheets><definedNames><definedName name="Total">Alpha!$A$1:$A$3</definedName><definedName name="_xlnm.Print_Area" localSheetId="1">Beta!$A$1:$B$2</definedName></definedNames><calcPr calcId="191029"/></workbook>`},
		[2]string{"xl/_rels/workbook.xml.rels", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships ` + testRelsNS + `><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/worksheet" Target="worksheets/sheet1.xml"/><Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/worksheet" Target="worksheets/sheet2.xml"/><Relationship Id="rId3" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/chartsheet" Target="chartsheets/sheet1.xml"/><Relationship Id="rId4" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/><Relationship Id="rId5" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/sharedStrings" Target="sharedStrings.xml"/><Relationship Id="rId6" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/theme" Target="theme/theme1.xml"/></Relationships>`},
		[2]string{"xl/worksheets/sheet1.xml", testSheet1},
		[2]string{"xl/worksheets/sheet2.xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<worksheet ` + testNS + `><sheetData><row r="1"><c r="A1" t="s"><v>1</v></c><c r="B1"><f>Alpha!A2*2</f><v>5</v></c></row></sheetData></worksheet>`},
		[2]string{"xl/chartsheets/sheet1.xml", `<chartsheet ` + testNS + `/>`},
		[2]string{"xl/theme/theme1.xml", testTheme},
		[2]string{"xl/styles.xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<styleSheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main"><fonts count="1"><font><sz val="11"/><name val="Calibri"/></font></fonts><fills count="2"><fill><patternFill patternType="none"/></fill><fill><patternFill patternType="gray125"/></fill></fills><borders count="1"><border><left/><right/><top/><bottom/><diagonal/></border></borders><cellXfs count="2"><xf numFmtId="0" fontId="0" fillId="0" borderId="0"/><xf numFmtId="14" fontId="0" fillId="0" borderId="0" applyNumberFormat="1"/></cellXfs></styleSheet>`},
		[2]string{"xl/sharedStrings.xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<sst xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" count="2" uniqueCount="2"><si><t>hello</t></si><si><t>world</t></si></sst>`},
	)
}

func TestOpenBytes(t *testing.T) {
	wb, err := OpenBytes(loadedPackage(t))
	require.NoError(t, err)
	assert.Equal(t, []string{"Alpha", "Beta"}, wb.SheetNames())
	assert.True(t, wb.Date1904())
	assert.Equal(t, 1, wb.ActiveSheet())
	assert.False(t, wb.IsDirty())

	alpha, err := wb.Sheet("Alpha")
	require.NoError(t, err)
	for addr, expected := range map[string]any{
		"A1": "hello",
		"B1": time.Date(1904, 1, 1, 0, 0, 0, 0, time.UTC),
		"A2": 2.5,
		"B2": true,
		"A3": 2.5,
		"B3": ErrorDiv0,
	} {
		value, err := alpha.GetCellValue(addr)
		require.NoError(t, err)
		assert.Equal(t, expected, value, addr)
	}
	assert.Equal(t, CellTypeDate, alpha.GetCellIfExists("B1").Type())
	assert.Equal(t, "SUM(A1:A2)", alpha.GetCellIfExists("A3").Formula())
	assert.Equal(t, "A1:B3", alpha.Dimension())

	beta, err := wb.Sheet("Beta")
	require.NoError(t, err)
	assert.Equal(t, "world", beta.GetCellIfExists("A1").Value())
	assert.Equal(t, 5.0, beta.GetCellIfExists("B1").Value())
}

func TestOpenBytesErrors(t *testing.T) {
	_, err := OpenBytes([]byte("not a zip"))
	assert.ErrorIs(t, err, ErrWorkbookFileFormat)

	_, err = OpenBytes(zipParts(t, [2]string{"docProps/app.xml", "<Properties/>"}))
	assert.ErrorIs(t, err, ErrWorkbookFileFormat)

	_, err = OpenBytes(zipParts(t, [2]string{"xl/workbook.xml", "<workbook><sheets>"}))
	assert.ErrorIs(t, err, ErrWorkbookFileFormat)

	_, err = OpenReader(bytes.NewReader(nil))
	assert.Error(t, err)
	_, err = OpenFile(filepath.Join(t.TempDir(), "missing.xlsx"))
	assert.Error(t, err)
}

func TestOpenBytesDegradedParts(t *testing.T) {
	var logs bytes.Buffer
	b := zipParts(t,
		[2]string{"xl/workbook.xml", `<workbook ` + testNS + `><sheets><sheet name="Only" sheetId="1" r:id="rId1"/><sheet name="Gone" sheetId="2" r:id="rId9"/></sheets></workbook>`},
		[2]string{"xl/_rels/workbook.xml.rels", `<Relationships ` + testRelsNS + `><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/worksheet" Target="/xl/worksheets/sheet1.xml"/><Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/sharedStrings" Target="sharedStrings.xml"/></Relationships>`},
		[2]string{"xl/worksheets/sheet1.xml", `<worksheet ` + testNS + `><sheetData><row r="1"><c r="A1" t="s"><v>3</v></c><c r="B1"><v>7</v></c></row></sheetData><tableParts count="1"><tablePart r:id="rId1"/></tableParts></worksheet>`},
		[2]string{"xl/worksheets/_rels/sheet1.xml.rels", `<Relationships ` + testRelsNS + `><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/table" Target="../tables/table1.xml"/></Relationships>`},
	)
	wb, err := OpenBytes(b, Options{Logger: log.New(&logs, "", 0)})
	require.NoError(t, err)
	assert.Equal(t, []string{"Only"}, wb.SheetNames())
	ws, err := wb.Sheet("Only")
	require.NoError(t, err)
	assert.Equal(t, 7.0, ws.GetCellIfExists("B1").Value())
	assert.Equal(t, "", ws.GetCellIfExists("A1").Value())
	assert.Empty(t, ws.Tables())
	assert.Contains(t, logs.String(), "shared strings part xl/sharedStrings.xml is missing")
	assert.Contains(t, logs.String(), "dropping dangling table relationship rId1 of Only")

	out, err := wb.Bytes()
	require.NoError(t, err)
	reopened, err := OpenBytes(out)
	require.NoError(t, err)
	content, ok := reopened.Package().Text("xl/worksheets/sheet1.xml")
	require.True(t, ok)
	assert.NotContains(t, content, "tableParts")
	assert.False(t, reopened.Package().Has("xl/worksheets/_rels/sheet1.xml.rels"))
	assert.True(t, reopened.Package().Has("xl/styles.xml"))
	assert.True(t, reopened.Package().Has(defaultXMLPathRootRels))
}

func TestSaveKeepsUnmanagedParts(t *testing.T) {
	wb, err := OpenBytes(loadedPackage(t))
	require.NoError(t, err)
	require.NoError(t, wb.RenameSheet("Alpha", "First"))
	beta, err := wb.Sheet("Beta")
	require.NoError(t, err)
	assert.Equal(t, "First!A2*2", beta.GetCellIfExists("B1").Formula())
	assert.True(t, beta.IsDirty())

	out, err := wb.Bytes()
	require.NoError(t, err)
	assert.False(t, wb.IsDirty())
	reopened, err := OpenBytes(out)
	require.NoError(t, err)
	pkg := reopened.Package()

	theme, ok := pkg.Text("xl/theme/theme1.xml")
	require.True(t, ok)
	assert.Equal(t, testTheme, theme)
	sheet1, ok := pkg.Text("xl/worksheets/sheet1.xml")
	require.True(t, ok)
	assert.Equal(t, testSheet1, sheet1)
	assert.True(t, pkg.Has("xl/chartsheets/sheet1.xml"))

	workbook, ok := pkg.Text("xl/workbook.xml")
	require.True(t, ok)
	assert.Contains(t, workbook, `<sheets><sheet name="First" sheetId="1" r:id="rId1"/><sheet name="Beta" sheetId="2" r:id="rId2"/><sheet name="Chart1" sheetId="5" r:id="rId3"/></sheets>`)
	assert.Contains(t, workbook, `<definedName name="Total">First!$A$1:$A$3</definedName>`)
	assert.Contains(t, workbook, `<workbookPr date1904="1"/>`)
	assert.Contains(t, workbook, `activeTab="1"`)

	types, ok := pkg.Text(defaultXMLPathContentTypes)
	require.True(t, ok)
	assert.Contains(t, types, `<Override PartName="/xl/workbook.xml" ContentType="`+ContentTypeMacro+`"></Override>`)
	assert.Contains(t, types, `<Override PartName="/xl/theme/theme1.xml"`)
	assert.NotContains(t, types, "calcChain")

	assert.Equal(t, []string{"First", "Beta"}, reopened.SheetNames())
	reBeta, err := reopened.Sheet("Beta")
	require.NoError(t, err)
	assert.Equal(t, "First!A2*2", reBeta.GetCellIfExists("B1").Formula())
	assert.Equal(t, "world", reBeta.GetCellIfExists("A1").Value())

	added, err := reopened.AddSheet("Gamma")
	require.NoError(t, err)
	assert.Equal(t, 6, added.sheetID)
	assert.Equal(t, "xl/worksheets/sheet3.xml", added.part)
	assert.Equal(t, "rId7", added.relID)
}

func TestDeleteLoadedSheet(t *testing.T) {
	wb, err := OpenBytes(loadedPackage(t))
	require.NoError(t, err)
	require.NoError(t, wb.DeleteSheet("Alpha"))
	assert.Equal(t, 0, wb.ActiveSheet())
	out, err := wb.Bytes()
	require.NoError(t, err)

	reopened, err := OpenBytes(out)
	require.NoError(t, err)
	assert.Equal(t, []string{"Beta"}, reopened.SheetNames())
	assert.False(t, reopened.Package().Has("xl/worksheets/sheet1.xml"))
	workbook, ok := reopened.Package().Text("xl/workbook.xml")
	require.True(t, ok)
	assert.Contains(t, workbook, `<definedName name="_xlnm.Print_Area" localSheetId="0">Beta!$A$1:$B$2</definedName>`)
	assert.NotContains(t, workbook, "activeTab")
	types, ok := reopened.Package().Text(defaultXMLPathContentTypes)
	require.True(t, ok)
	assert.NotContains(t, types, "/xl/worksheets/sheet1.xml")
}

func TestRoundTrip(t *testing.T) {
	wb := NewWorkbook()
	data := salesSheet(t, wb, "Data")
	day := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	require.NoError(t, data.SetCellValue("D1", "Day"))
	require.NoError(t, data.SetCellValue("D2", day))
	require.NoError(t, data.SetCellValue("E2", "#N/A"))
	require.NoError(t, data.MergeCells("G1:H2"))
	require.NoError(t, data.SetColumnWidth(0, 16))
	require.NoError(t, data.SetFrozenPane(1, 0))
	tbl, err := data.CreateTable("A1:C6", TableOptions{Name: "Sales", TotalRow: true})
	require.NoError(t, err)
	require.NoError(t, tbl.SetTotalFunction("Sales", "sum"))
	pt, err := wb.CreatePivotTable(PivotTableOptions{Source: "Data!A1:C6", Target: "Report!A3"})
	require.NoError(t, err)
	require.NoError(t, pt.AddRowField("Region"))
	require.NoError(t, pt.AddValueField("Sales", "sum"))

	buf, err := wb.WriteToBuffer()
	require.NoError(t, err)
	assert.False(t, wb.IsDirty())
	reopened, err := OpenReader(buf)
	require.NoError(t, err)
	assert.Equal(t, []string{"Data", "Report"}, reopened.SheetNames())

	ws, err := reopened.Sheet("Data")
	require.NoError(t, err)
	assert.Equal(t, "West", ws.GetCellIfExists("A3").Value())
	assert.Equal(t, 250.0, ws.GetCellIfExists("C3").Value())
	assert.Equal(t, day, ws.GetCellIfExists("D2").Value())
	assert.Equal(t, ErrorNA, ws.GetCellIfExists("E2").Value())
	assert.Equal(t, "SUBTOTAL(109,[Sales])", ws.GetCellIfExists("C7").Formula())
	assert.Equal(t, []string{"G1:H2"}, ws.MergedCells())
	assert.Equal(t, 16.0, ws.GetColumnWidth(0))
	pane, ok := ws.GetFrozenPane()
	assert.True(t, ok)
	assert.Equal(t, CellAddress{Row: 1, Col: 0}, pane)

	tables := reopened.Tables()
	require.Len(t, tables, 1)
	assert.Equal(t, "Sales", tables[0].Name())
	assert.Equal(t, "A1:C7", tables[0].Ref())
	assert.True(t, tables[0].TotalRow())
	assert.Equal(t, "sum", tables[0].Columns()[2].TotalFunction)

	pkg := reopened.Package()
	for _, part := range []string{
		"xl/pivotCache/pivotCacheDefinition1.xml",
		"xl/pivotCache/pivotCacheRecords1.xml",
		"xl/pivotCache/_rels/pivotCacheDefinition1.xml.rels",
		"xl/pivotTables/pivotTable1.xml",
		"xl/pivotTables/_rels/pivotTable1.xml.rels",
		"xl/tables/table1.xml",
		"xl/sharedStrings.xml",
		"docProps/app.xml",
		"docProps/core.xml",
	} {
		assert.True(t, pkg.Has(part), part)
	}
	types, ok := pkg.Text(defaultXMLPathContentTypes)
	require.True(t, ok)
	for part, contentType := range map[string]string{
		"/xl/workbook.xml":                         ContentTypeSheetML,
		"/xl/worksheets/sheet1.xml":                ContentTypeWorksheet,
		"/xl/tables/table1.xml":                    ContentTypeTable,
		"/xl/pivotCache/pivotCacheDefinition1.xml": ContentTypePivotCache,
		"/xl/pivotCache/pivotCacheRecords1.xml":    ContentTypePivotRecords,
		"/xl/pivotTables/pivotTable1.xml":          ContentTypePivotTable,
		"/xl/sharedStrings.xml":                    ContentTypeSharedStrings,
		"/xl/styles.xml":                           ContentTypeStyles,
	} {
		assert.Contains(t, types, `<Override PartName="`+part+`" ContentType="`+contentType+`">`, part)
	}
	assert.Empty(t, reopened.PivotTables())

	second, err := reopened.CreatePivotTable(PivotTableOptions{Source: "Data!A1:C6", Target: "Report!H3"})
	require.NoError(t, err)
	assert.Equal(t, "PivotTable2", second.Name())
	assert.Equal(t, 2, second.Cache().ID())
	out, err := reopened.Bytes()
	require.NoError(t, err)
	final, err := OpenBytes(out)
	require.NoError(t, err)
	workbook, ok := final.Package().Text("xl/workbook.xml")
	require.True(t, ok)
	assert.Contains(t, workbook, `<pivotCache cacheId="1"`)
	assert.Contains(t, workbook, `<pivotCache cacheId="2"`)
	assert.True(t, final.Package().Has("xl/pivotTables/pivotTable1.xml"))
	assert.True(t, final.Package().Has("xl/pivotTables/pivotTable2.xml"))
	assert.True(t, final.Package().Has("xl/pivotCache/pivotCacheDefinition2.xml"))
}

func TestSaveAs(t *testing.T) {
	dir := t.TempDir()
	wb := NewWorkbook()
	ws := newTestSheetIn(t, wb, "Sheet1")
	require.NoError(t, ws.SetCellValue("A1", "saved"))

	assert.ErrorIs(t, wb.SaveAs(strings.Repeat("a", MaxFilePathLength+1)), ErrMaxFilePathLength)
	assert.Error(t, wb.SaveAs(filepath.Join(dir, "missing", "out.xlsx")))
	assert.True(t, wb.IsDirty())

	name := filepath.Join(dir, "out.xlsx")
	require.NoError(t, wb.SaveAs(name))
	assert.False(t, wb.IsDirty())
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "out.xlsx", entries[0].Name())

	reopened, err := OpenFile(name)
	require.NoError(t, err)
	first, err := reopened.SheetByIndex(0)
	require.NoError(t, err)
	value, err := first.GetCellValue("A1")
	require.NoError(t, err)
	assert.Equal(t, "saved", value)

	var buf bytes.Buffer
	require.NoError(t, reopened.Write(&buf))
	assert.NotZero(t, buf.Len())
}

func TestSaveFailureKeepsModel(t *testing.T) {
	wb := NewWorkbook()
	_, err := wb.Bytes()
	assert.ErrorIs(t, err, ErrNoSheets)
	assert.Equal(t, 0, wb.Package().Len())
	assert.True(t, wb.IsDirty())
}

func TestRoundTripControlCharacters(t *testing.T) {
	wb := NewWorkbook()
	ws, err := wb.AddSheet("Sheet1")
	require.NoError(t, err)
	require.NoError(t, ws.SetCellValue("A1", "a\x01b"))
	require.NoError(t, ws.SetCellValue("A2", "_x0041_"))
	require.NoError(t, ws.SetCellValue("A3", "plain"))

	content, err := wb.Bytes()
	require.NoError(t, err)
	pkg, err := ReadPackage(content)
	require.NoError(t, err)
	sst, ok := pkg.Text("xl/sharedStrings.xml")
	require.True(t, ok)
	assert.Contains(t, sst, "<t>a_x0001_b</t>")
	assert.Contains(t, sst, "<t>_x005F_x0041_</t>")

	reopened, err := OpenBytes(content)
	require.NoError(t, err)
	assert.Equal(t, 3, reopened.SharedStrings().UniqueCount())
	ws, err = reopened.Sheet("Sheet1")
	require.NoError(t, err)
	for addr, expected := range map[string]string{"A1": "a\x01b", "A2": "_x0041_", "A3": "plain"} {
		cell := ws.GetCellIfExists(addr)
		require.NotNil(t, cell, addr)
		assert.Equal(t, expected, cell.Value(), addr)
	}
}
