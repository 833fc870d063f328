// Copyright 2016 - 2025 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package sheetkit

import "encoding/xml"

// xlsxPivotTableDefinition represents the pivotTableDefinition part. This
// part defines the layout of a pivot table: the location, the fields on
// each axis, the enumerated row and column items and the data fields.
type xlsxPivotTableDefinition struct {
	XMLName                 xml.Name                 `xml:"http://schemas.openxmlformats.org/spreadsheetml/2006/main pivotTableDefinition"`
	Name                    string                   `xml:"name,attr"`
	CacheID                 int                      `xml:"cacheId,attr"`
	ApplyNumberFormats      int                      `xml:"applyNumberFormats,attr"`
	ApplyBorderFormats      int                      `xml:"applyBorderFormats,attr"`
	ApplyFontFormats        int                      `xml:"applyFontFormats,attr"`
	ApplyPatternFormats     int                      `xml:"applyPatternFormats,attr"`
	ApplyAlignmentFormats   int                      `xml:"applyAlignmentFormats,attr"`
	ApplyWidthHeightFormats int                      `xml:"applyWidthHeightFormats,attr"`
	DataCaption             string                   `xml:"dataCaption,attr"`
	UpdatedVersion          int                      `xml:"updatedVersion,attr"`
	MinRefreshableVersion   int                      `xml:"minRefreshableVersion,attr"`
	UseAutoFormatting       int                      `xml:"useAutoFormatting,attr"`
	RowGrandTotals          string                   `xml:"rowGrandTotals,attr,omitempty"`
	ColGrandTotals          string                   `xml:"colGrandTotals,attr,omitempty"`
	ItemPrintTitles         int                      `xml:"itemPrintTitles,attr"`
	CreatedVersion          int                      `xml:"createdVersion,attr"`
	Indent                  int                      `xml:"indent,attr"`
	Outline                 int                      `xml:"outline,attr"`
	OutlineData             int                      `xml:"outlineData,attr"`
	MultipleFieldFilters    int                      `xml:"multipleFieldFilters,attr"`
	Location                xlsxLocation             `xml:"location"`
	PivotFields             xlsxPivotFields          `xml:"pivotFields"`
	RowFields               *xlsxFields              `xml:"rowFields"`
	RowItems                *xlsxRowColItems         `xml:"rowItems"`
	ColFields               *xlsxFields              `xml:"colFields"`
	ColItems                *xlsxRowColItems         `xml:"colItems"`
	PageFields              *xlsxPageFields          `xml:"pageFields"`
	DataFields              *xlsxDataFields          `xml:"dataFields"`
	PivotTableStyleInfo     *xlsxPivotTableStyleInfo `xml:"pivotTableStyleInfo"`
}

// xlsxLocation represents location information for the pivot table.
type xlsxLocation struct {
	Ref            string `xml:"ref,attr"`
	FirstHeaderRow int    `xml:"firstHeaderRow,attr"`
	FirstDataRow   int    `xml:"firstDataRow,attr"`
	FirstDataCol   int    `xml:"firstDataCol,attr"`
	RowPageCount   int    `xml:"rowPageCount,attr,omitempty"`
	ColPageCount   int    `xml:"colPageCount,attr,omitempty"`
}

// xlsxPivotFields represents the collection of fields that appear on the
// pivot table, one for every field of the pivot cache.
type xlsxPivotFields struct {
	Count      int              `xml:"count,attr"`
	PivotField []xlsxPivotField `xml:"pivotField"`
}

// xlsxPivotField represents a single field in the pivot table.
type xlsxPivotField struct {
	Axis                         string          `xml:"axis,attr,omitempty"`
	DataField                    string          `xml:"dataField,attr,omitempty"`
	MultipleItemSelectionAllowed string          `xml:"multipleItemSelectionAllowed,attr,omitempty"`
	ShowAll                      int             `xml:"showAll,attr"`
	SortType                     string          `xml:"sortType,attr,omitempty"`
	Items                        *xlsxPivotItems `xml:"items"`
}

// xlsxPivotItems represents the collection of items in a pivot field.
type xlsxPivotItems struct {
	Count int             `xml:"count,attr"`
	Item  []xlsxPivotItem `xml:"item"`
}

// xlsxPivotItem represents a single item in pivot field. X is the index of
// the shared item of the cache field, H hides the item.
type xlsxPivotItem struct {
	H string `xml:"h,attr,omitempty"`
	X *int   `xml:"x,attr"`
	T string `xml:"t,attr,omitempty"`
}

// xlsxFields represents the collection of fields on the row or column axis,
// the field index -2 stands for the data values.
type xlsxFields struct {
	Count int         `xml:"count,attr"`
	Field []xlsxField `xml:"field"`
}

// xlsxField represents a generic field that can appear either on the
// column or the row region of the pivot table.
type xlsxField struct {
	X int `xml:"x,attr"`
}

// xlsxRowColItems represents the collection of row or column items of the
// pivot table.
type xlsxRowColItems struct {
	Count int     `xml:"count,attr"`
	I     []xlsxI `xml:"i"`
}

// xlsxI represents one row or column item: T is the item type, R the
// number of leading indexes repeated from the previous item and I the data
// field index.
type xlsxI struct {
	T string  `xml:"t,attr,omitempty"`
	R int     `xml:"r,attr,omitempty"`
	I int     `xml:"i,attr,omitempty"`
	X []xlsxX `xml:"x"`
}

// xlsxX represents an index into the shared items of a field.
type xlsxX struct {
	V int `xml:"v,attr,omitempty"`
}

// xlsxPageFields represents the collection of items in the page or report
// filter region of the pivot table.
type xlsxPageFields struct {
	Count     int             `xml:"count,attr"`
	PageField []xlsxPageField `xml:"pageField"`
}

// xlsxPageField represents a field on the page or report filter of the
// pivot table.
type xlsxPageField struct {
	Fld  int `xml:"fld,attr"`
	Hier int `xml:"hier,attr"`
}

// xlsxDataFields represents the collection of items in the data region of
// the pivot table.
type xlsxDataFields struct {
	Count     int             `xml:"count,attr"`
	DataField []xlsxDataField `xml:"dataField"`
}

// xlsxDataField represents a field from a source list, table, or database
// that contains data that is summarized in a pivot table.
type xlsxDataField struct {
	Name      string `xml:"name,attr,omitempty"`
	Fld       int    `xml:"fld,attr"`
	Subtotal  string `xml:"subtotal,attr,omitempty"`
	BaseField int    `xml:"baseField,attr"`
	BaseItem  int    `xml:"baseItem,attr"`
	NumFmtID  int    `xml:"numFmtId,attr,omitempty"`
}

// xlsxPivotTableStyleInfo represent information on style applied to the
// pivot table.
type xlsxPivotTableStyleInfo struct {
	Name           string `xml:"name,attr"`
	ShowRowHeaders int    `xml:"showRowHeaders,attr"`
	ShowColHeaders int    `xml:"showColHeaders,attr"`
	ShowRowStripes int    `xml:"showRowStripes,attr"`
	ShowColStripes int    `xml:"showColStripes,attr"`
	ShowLastColumn int    `xml:"showLastColumn,attr"`
}
