// Copyright 2016 - 2025 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package sheetkit

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// valuesField is the field index of the data values pseudo-field on the
// column axis.
const valuesField = -2

// aggregations lists the value field aggregations.
var aggregations = map[string]bool{
	"sum": true, "count": true, "average": true, "max": true, "min": true,
	"product": true, "countNums": true, "stdDev": true, "stdDevp": true,
	"var": true, "varp": true,
}

// captionCase capitalizes the aggregation of a default value field caption
// and keeps the rest of it as written.
var captionCase = cases.Title(language.English, cases.NoLower)

// PivotTableOptions directly maps the settings of a new pivot table. Source
// and Target are sheet qualified references such as "Data!A1:D100" and
// "Report!A3". Cache reuses an existing pivot cache instead of building one
// from Source. Grand totals and refresh on load default to on.
type PivotTableOptions struct {
	Name           string
	Source         string
	Target         string
	Cache          *PivotCache
	Style          string
	RowGrandTotals *bool
	ColGrandTotals *bool
	RefreshOnLoad  *bool
}

// PivotValueFieldConfig directly maps the settings of a value field. The
// aggregation defaults to sum and the display name to "Sum of <Field>".
type PivotValueFieldConfig struct {
	Field        string
	Aggregation  string
	DisplayName  string
	NumberFormat string
}

type pivotDataField struct {
	field       int
	aggregation string
	name        string
	numFmtID    int
}

type pivotFilter struct {
	include []string
	exclude []string
}

// PivotTable summarizes a pivot cache on a worksheet.
type PivotTable struct {
	wb       *Workbook
	name     string
	index    int
	cache    *PivotCache
	sheet    *Worksheet
	location CellAddress

	rowFields  []int
	colFields  []int
	pageFields []int
	dataFields []pivotDataField
	sorts      map[int]string
	filters    map[int]pivotFilter

	style          string
	rowGrandTotals bool
	colGrandTotals bool

	part       string
	relID      string
	cacheRelID string
}

// Name returns the name of the pivot table.
func (pt *PivotTable) Name() string {
	return pt.name
}

// Index returns the sequence number of the pivot table in the workbook.
func (pt *PivotTable) Index() int {
	return pt.index
}

// Cache returns the pivot cache the table summarizes.
func (pt *PivotTable) Cache() *PivotCache {
	return pt.cache
}

// Worksheet returns the worksheet the pivot table is placed on.
func (pt *PivotTable) Worksheet() *Worksheet {
	return pt.sheet
}

func (pt *PivotTable) fieldIndex(name string) (int, error) {
	for i, f := range pt.cache.fields {
		if f.Name == name {
			return i, nil
		}
	}
	return -1, newFieldNotFoundError(name)
}

// assign places a field on one axis, removing it from the other axes.
func (pt *PivotTable) assign(name string, axis *[]int) error {
	idx, err := pt.fieldIndex(name)
	if err != nil {
		return err
	}
	for _, list := range []*[]int{&pt.rowFields, &pt.colFields, &pt.pageFields} {
		if list == axis {
			continue
		}
		if i := indexOfInt(*list, idx); i >= 0 {
			*list = append((*list)[:i], (*list)[i+1:]...)
		}
	}
	if indexOfInt(*axis, idx) < 0 {
		*axis = append(*axis, idx)
	}
	return nil
}

func indexOfInt(list []int, v int) int {
	for i, x := range list {
		if x == v {
			return i
		}
	}
	return -1
}

// AddRowField provides a function to place a cache field on the row axis.
func (pt *PivotTable) AddRowField(name string) error {
	return pt.assign(name, &pt.rowFields)
}

// AddColumnField provides a function to place a cache field on the column
// axis.
func (pt *PivotTable) AddColumnField(name string) error {
	return pt.assign(name, &pt.colFields)
}

// AddFilterField provides a function to place a cache field on the report
// filter (page) axis.
func (pt *PivotTable) AddFilterField(name string) error {
	return pt.assign(name, &pt.pageFields)
}

// AddValueField provides a function to summarize a cache field in the data
// area. An empty aggregation means sum.
func (pt *PivotTable) AddValueField(field, aggregation string) error {
	return pt.AddValueFieldConfig(PivotValueFieldConfig{Field: field, Aggregation: aggregation})
}

// AddValueFieldConfig provides a function to summarize a cache field in the
// data area with a caption and a number format.
func (pt *PivotTable) AddValueFieldConfig(cfg PivotValueFieldConfig) error {
	idx, err := pt.fieldIndex(cfg.Field)
	if err != nil {
		return err
	}
	if cfg.Aggregation == "" {
		cfg.Aggregation = "sum"
	}
	if !aggregations[cfg.Aggregation] {
		return fmt.Errorf("%w: %s", ErrAggregation, cfg.Aggregation)
	}
	df := pivotDataField{field: idx, aggregation: cfg.Aggregation, name: cfg.DisplayName}
	if df.name == "" {
		df.name = captionCase.String(cfg.Aggregation) + " of " + cfg.Field
	}
	if cfg.NumberFormat != "" && pt.wb != nil {
		df.numFmtID = pt.wb.styles.GetOrCreateNumFmtID(cfg.NumberFormat)
	}
	pt.dataFields = append(pt.dataFields, df)
	return nil
}

// SortField provides a function to sort the items of a row or column field
// ascending or descending. The order of the shared items of the cache is
// not changed.
func (pt *PivotTable) SortField(name, order string) error {
	idx, err := pt.fieldIndex(name)
	if err != nil {
		return err
	}
	if indexOfInt(pt.rowFields, idx) < 0 && indexOfInt(pt.colFields, idx) < 0 {
		return newFieldNotOnAxisError(name)
	}
	switch order {
	case "ascending", "descending":
	default:
		return fmt.Errorf("%w: %s", ErrSortOrder, order)
	}
	if pt.sorts == nil {
		pt.sorts = make(map[int]string)
	}
	pt.sorts[idx] = order
	return nil
}

// FilterField provides a function to show only the include values of a
// field, or to hide its exclude values. Only one of the lists may be given.
func (pt *PivotTable) FilterField(name string, include, exclude []string) error {
	if len(include) > 0 && len(exclude) > 0 {
		return ErrFilterConflict
	}
	idx, err := pt.fieldIndex(name)
	if err != nil {
		return err
	}
	if indexOfInt(pt.rowFields, idx) < 0 && indexOfInt(pt.colFields, idx) < 0 && indexOfInt(pt.pageFields, idx) < 0 {
		return newFieldNotOnAxisError(name)
	}
	if pt.filters == nil {
		pt.filters = make(map[int]pivotFilter)
	}
	pt.filters[idx] = pivotFilter{include: include, exclude: exclude}
	return nil
}

// hidden reports whether the shared item i of field idx is filtered out.
func (pt *PivotTable) hidden(idx, i int) bool {
	flt, ok := pt.filters[idx]
	if !ok {
		return false
	}
	text := pt.cache.fields[idx].itemText(i)
	if len(flt.include) > 0 {
		return inStrSlice(flt.include, text) < 0
	}
	return inStrSlice(flt.exclude, text) >= 0
}

// colAxis returns the fields of the column axis, the values pseudo-field
// included when there are several data fields.
func (pt *PivotTable) colAxis() []int {
	axis := append([]int(nil), pt.colFields...)
	if len(pt.dataFields) > 1 {
		axis = append(axis, valuesField)
	}
	return axis
}

// itemCount returns the number of shared items of the first field of an
// axis.
func (pt *PivotTable) itemCount(axis []int) int {
	if len(axis) == 0 || axis[0] < 0 {
		return 0
	}
	return pt.cache.fields[axis[0]].ItemCount()
}

// rowItems enumerates the items of the first row field and the grand
// total.
func (pt *PivotTable) rowItems() []xlsxI {
	if len(pt.rowFields) == 0 {
		return []xlsxI{{}}
	}
	var items []xlsxI
	for i := 0; i < pt.itemCount(pt.rowFields); i++ {
		items = append(items, xlsxI{X: []xlsxX{{V: i}}})
	}
	if pt.rowGrandTotals || len(items) == 0 {
		items = append(items, xlsxI{T: "grand", X: []xlsxX{{}}})
	}
	return items
}

// colItems enumerates the items of the first column field crossed with
// the data fields, followed by the grand totals.
func (pt *PivotTable) colItems() []xlsxI {
	n := len(pt.dataFields)
	if len(pt.colFields) == 0 {
		if n <= 1 {
			return []xlsxI{{}}
		}
		items := make([]xlsxI, n)
		for k := range items {
			items[k] = xlsxI{I: k, X: []xlsxX{{V: k}}}
		}
		return items
	}
	var items []xlsxI
	for j := 0; j < pt.itemCount(pt.colFields); j++ {
		if n <= 1 {
			items = append(items, xlsxI{X: []xlsxX{{V: j}}})
			continue
		}
		items = append(items, xlsxI{X: []xlsxX{{V: j}, {}}})
		for k := 1; k < n; k++ {
			items = append(items, xlsxI{R: 1, I: k, X: []xlsxX{{V: k}}})
		}
	}
	if pt.colGrandTotals || len(items) == 0 {
		for k := 0; k < max(n, 1); k++ {
			items = append(items, xlsxI{T: "grand", I: k, X: []xlsxX{{}}})
		}
	}
	return items
}

// layout returns the location of the pivot table computed from the fields
// on each axis.
func (pt *PivotTable) layout() xlsxLocation {
	loc := xlsxLocation{FirstHeaderRow: 1, FirstDataRow: 1}
	if len(pt.colAxis()) > 0 {
		loc.FirstDataRow = 2
	}
	if len(pt.rowFields) > 0 {
		loc.FirstDataCol = 1
	}
	if len(pt.pageFields) > 0 {
		loc.RowPageCount, loc.ColPageCount = len(pt.pageFields), 1
	}
	rows := max(loc.FirstDataRow+len(pt.rowItems()), 2)
	cols := max(loc.FirstDataCol+len(pt.colItems()), 2)
	end := CellAddress{Row: pt.location.Row + rows - 1, Col: pt.location.Col + cols - 1}
	loc.Ref = RangeAddress{Start: pt.location, End: end}.String()
	return loc
}

// Location returns the reference of the area the pivot table covers, the
// report filters above it excluded.
func (pt *PivotTable) Location() string {
	return pt.layout().Ref
}

// pivotField returns the pivotField element of cache field idx.
func (pt *PivotTable) pivotField(idx int) xlsxPivotField {
	pf := xlsxPivotField{}
	switch {
	case indexOfInt(pt.rowFields, idx) >= 0:
		pf.Axis = "axisRow"
	case indexOfInt(pt.colFields, idx) >= 0:
		pf.Axis = "axisCol"
	case indexOfInt(pt.pageFields, idx) >= 0:
		pf.Axis = "axisPage"
		if _, ok := pt.filters[idx]; ok {
			pf.MultipleItemSelectionAllowed = "1"
		}
	}
	for _, df := range pt.dataFields {
		if df.field == idx {
			pf.DataField = "1"
			break
		}
	}
	pf.SortType = pt.sorts[idx]
	if f := pt.cache.fields[idx]; pf.Axis != "" && f.enumerated() {
		items := &xlsxPivotItems{}
		for i := range f.items {
			x := i
			item := xlsxPivotItem{X: &x}
			if pt.hidden(idx, i) {
				item.H = "1"
			}
			items.Item = append(items.Item, item)
		}
		items.Item = append(items.Item, xlsxPivotItem{T: "default"})
		items.Count = len(items.Item)
		pf.Items = items
	}
	return pf
}

func fieldsXML(list []int) *xlsxFields {
	if len(list) == 0 {
		return nil
	}
	fields := &xlsxFields{Count: len(list)}
	for _, x := range list {
		fields.Field = append(fields.Field, xlsxField{X: x})
	}
	return fields
}

// DefinitionXML provides a function to serialize the pivot table
// definition part.
func (pt *PivotTable) DefinitionXML() ([]byte, error) {
	x := xlsxPivotTableDefinition{
		Name:                    pt.name,
		CacheID:                 pt.cache.id,
		ApplyWidthHeightFormats: 1,
		DataCaption:             "Values",
		UpdatedVersion:          3,
		MinRefreshableVersion:   3,
		UseAutoFormatting:       1,
		ItemPrintTitles:         1,
		CreatedVersion:          3,
		Outline:                 1,
		OutlineData:             1,
		Location:                pt.layout(),
		RowFields:               fieldsXML(pt.rowFields),
		ColFields:               fieldsXML(pt.colAxis()),
	}
	if !pt.rowGrandTotals {
		x.RowGrandTotals = "0"
	}
	if !pt.colGrandTotals {
		x.ColGrandTotals = "0"
	}
	x.PivotFields.Count = len(pt.cache.fields)
	for i := range pt.cache.fields {
		x.PivotFields.PivotField = append(x.PivotFields.PivotField, pt.pivotField(i))
	}
	rowItems := pt.rowItems()
	x.RowItems = &xlsxRowColItems{Count: len(rowItems), I: rowItems}
	colItems := pt.colItems()
	x.ColItems = &xlsxRowColItems{Count: len(colItems), I: colItems}
	if len(pt.pageFields) > 0 {
		x.PageFields = &xlsxPageFields{Count: len(pt.pageFields)}
		for _, idx := range pt.pageFields {
			x.PageFields.PageField = append(x.PageFields.PageField, xlsxPageField{Fld: idx, Hier: -1})
		}
	}
	if len(pt.dataFields) > 0 {
		x.DataFields = &xlsxDataFields{Count: len(pt.dataFields)}
		for _, df := range pt.dataFields {
			x.DataFields.DataField = append(x.DataFields.DataField, xlsxDataField{
				Name:     df.name,
				Fld:      df.field,
				Subtotal: df.aggregation,
				NumFmtID: df.numFmtID,
			})
		}
	}
	x.PivotTableStyleInfo = &xlsxPivotTableStyleInfo{
		Name:           pt.style,
		ShowRowHeaders: 1,
		ShowColHeaders: 1,
		ShowLastColumn: 1,
	}
	return marshalPart(x)
}

// sourceData reads the header names and the data rows of a source range.
// Header values are turned into text, blank headers are named ColumnN.
func (ws *Worksheet) sourceData(r RangeAddress) ([]string, [][]any) {
	headers := make([]string, r.Cols())
	for j := range headers {
		if c := ws.cellAt(r.Start.Row, r.Start.Col+j, false); c != nil {
			headers[j] = strings.TrimSpace(valueString(c.Value()))
		}
		if headers[j] == "" {
			headers[j] = fmt.Sprintf("Column%d", j+1)
		}
	}
	rows := make([][]any, 0, max(r.Rows()-1, 0))
	for row := r.Start.Row + 1; row <= r.End.Row; row++ {
		values := make([]any, r.Cols())
		for j := range values {
			if c := ws.cellAt(row, r.Start.Col+j, false); c != nil {
				values[j] = c.Value()
			}
		}
		rows = append(rows, values)
	}
	return headers, rows
}
