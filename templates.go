// Copyright 2016 - 2025 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.
//
// This file contains default templates and the constant part paths,
// namespaces, content types and relationship types of the package.

package sheetkit

// Part paths.
const (
	defaultXMLPathContentTypes  = "[Content_Types].xml"
	defaultXMLPathRootRels      = "_rels/.rels"
	defaultXMLPathWorkbook      = "xl/workbook.xml"
	defaultXMLPathStyles        = "xl/styles.xml"
	defaultXMLPathSharedStrings = "xl/sharedStrings.xml"
	defaultXMLPathDocPropsApp   = "docProps/app.xml"
	defaultXMLPathDocPropsCore  = "docProps/core.xml"
)

// Namespaces.
const (
	NameSpaceSpreadSheet       = "http://schemas.openxmlformats.org/spreadsheetml/2006/main"
	NameSpaceRelationships     = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	NameSpacePackageRels       = "http://schemas.openxmlformats.org/package/2006/relationships"
	NameSpaceContentTypes      = "http://schemas.openxmlformats.org/package/2006/content-types"
	NameSpaceMarkupCompat      = "http://schemas.openxmlformats.org/markup-compatibility/2006"
	NameSpaceSpreadSheetX14ac  = "http://schemas.microsoft.com/office/spreadsheetml/2009/9/ac"
	nameSpaceStrictRels        = "http://purl.oclc.org/ooxml/officeDocument/relationships"
)

// Relationship types.
const (
	SourceRelationshipOfficeDocument       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	SourceRelationshipWorkSheet            = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/worksheet"
	SourceRelationshipStyles               = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles"
	SourceRelationshipSharedStrings        = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/sharedStrings"
	SourceRelationshipTable                = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/table"
	SourceRelationshipPivotTable           = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/pivotTable"
	SourceRelationshipPivotCache           = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/pivotCacheDefinition"
	SourceRelationshipPivotCacheRecords    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/pivotCacheRecords"
	SourceRelationshipTheme                = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/theme"
	SourceRelationshipCoreProperties       = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties"
	SourceRelationshipExtendedProperties   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/extended-properties"
)

// Content types.
const (
	ContentTypeRelationships = "application/vnd.openxmlformats-package.relationships+xml"
	ContentTypeXML           = "application/xml"
	ContentTypeSheetML       = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet.main+xml"
	ContentTypeMacro         = "application/vnd.ms-excel.sheet.macroEnabled.main+xml"
	ContentTypeWorksheet     = "application/vnd.openxmlformats-officedocument.spreadsheetml.worksheet+xml"
	ContentTypeStyles        = "application/vnd.openxmlformats-officedocument.spreadsheetml.styles+xml"
	ContentTypeSharedStrings = "application/vnd.openxmlformats-officedocument.spreadsheetml.sharedStrings+xml"
	ContentTypeTable         = "application/vnd.openxmlformats-officedocument.spreadsheetml.table+xml"
	ContentTypePivotTable    = "application/vnd.openxmlformats-officedocument.spreadsheetml.pivotTable+xml"
	ContentTypePivotCache    = "application/vnd.openxmlformats-officedocument.spreadsheetml.pivotCacheDefinition+xml"
	ContentTypePivotRecords  = "application/vnd.openxmlformats-officedocument.spreadsheetml.pivotCacheRecords+xml"
	ContentTypeCoreProps     = "application/vnd.openxmlformats-package.core-properties+xml"
	ContentTypeExtendedProps = "application/vnd.openxmlformats-officedocument.extended-properties+xml"
)

// Sequences of the child elements of the parts whose children are
// replaced surgically, they decide where a new child element goes.
var (
	worksheetChildOrder = []string{
		"sheetPr", "dimension", "sheetViews", "sheetFormatPr", "cols", "sheetData",
		"sheetCalcPr", "sheetProtection", "protectedRanges", "scenarios", "autoFilter",
		"sortState", "dataConsolidate", "customSheetViews", "mergeCells", "phoneticPr",
		"conditionalFormatting", "dataValidations", "hyperlinks", "printOptions",
		"pageMargins", "pageSetup", "headerFooter", "rowBreaks", "colBreaks",
		"customProperties", "cellWatches", "ignoredErrors", "smartTags", "drawing",
		"legacyDrawing", "legacyDrawingHF", "drawingHF", "picture", "oleObjects",
		"controls", "webPublishItems", "tableParts", "extLst",
	}
	workbookChildOrder = []string{
		"fileVersion", "fileSharing", "workbookPr", "workbookProtection", "bookViews",
		"sheets", "functionGroups", "externalReferences", "definedNames", "calcPr",
		"oleSize", "customWorkbookViews", "pivotCaches", "smartTagPr", "smartTagTypes",
		"webPublishing", "fileRecoveryPr", "webPublishObjects", "extLst",
	}
	styleSheetChildOrder = []string{
		"numFmts", "fonts", "fills", "borders", "cellStyleXfs", "cellXfs",
		"cellStyles", "dxfs", "tableStyles", "colors", "extLst",
	}
	sheetViewChildOrder = []string{"pane", "selection", "pivotSelection", "extLst"}
)

const templateWorkbook = `<workbook xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"><workbookPr/><bookViews><workbookView xWindow="0" yWindow="0" windowWidth="20000" windowHeight="10000"/></bookViews><sheets/><calcPr calcId="191029"/></workbook>`

const templateStyles = `<styleSheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main"><fonts count="1"><font><sz val="11"/><color theme="1"/><name val="Calibri"/><family val="2"/><scheme val="minor"/></font></fonts><fills count="2"><fill><patternFill patternType="none"/></fill><fill><patternFill patternType="gray125"/></fill></fills><borders count="1"><border><left/><right/><top/><bottom/><diagonal/></border></borders><cellStyleXfs count="1"><xf numFmtId="0" fontId="0" fillId="0" borderId="0"/></cellStyleXfs><cellXfs count="1"><xf numFmtId="0" fontId="0" fillId="0" borderId="0" xfId="0"/></cellXfs><cellStyles count="1"><cellStyle name="Normal" xfId="0" builtinId="0"/></cellStyles><dxfs count="0"/><tableStyles count="0" defaultTableStyle="TableStyleMedium2" defaultPivotStyle="PivotStyleLight16"/></styleSheet>`

const templateWorksheet = `<worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"><dimension ref="A1"/><sheetViews><sheetView workbookViewId="0"/></sheetViews><sheetFormatPr defaultRowHeight="15"/><sheetData/><pageMargins left="0.7" right="0.7" top="0.75" bottom="0.75" header="0.3" footer="0.3"/></worksheet>`

const templateDocPropsApp = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Properties xmlns="http://schemas.openxmlformats.org/officeDocument/2006/extended-properties" xmlns:vt="http://schemas.openxmlformats.org/officeDocument/2006/docPropsVTypes"><Application>Microsoft Excel</Application><DocSecurity>0</DocSecurity><ScaleCrop>false</ScaleCrop><LinksUpToDate>false</LinksUpToDate><SharedDoc>false</SharedDoc><HyperlinksChanged>false</HyperlinksChanged><AppVersion>16.0300</AppVersion></Properties>`

const templateDocPropsCore = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:dcterms="http://purl.org/dc/terms/" xmlns:dcmitype="http://purl.org/dc/dcmitype/" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance"><dc:creator>sheetkit</dc:creator></cp:coreProperties>`
