// Copyright 2016 - 2025 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package sheetkit

import (
	"encoding/xml"
	"fmt"
	"math"
	"time"

	"github.com/OmniMCP-AI/sheetkit/xmltree"
)

// cacheDateLayout is the layout of the date values of a pivot cache.
const cacheDateLayout = "2006-01-02T15:04:05"

// cacheItem is one typed value of a cache field. The kinds are those of the
// cache item elements: s, n, b, d, e and m.
type cacheItem struct {
	kind string
	v    string
}

// PivotCacheField describes one column of the source data of a pivot cache
// after type inference. SharedItems lists the distinct text values in the
// order they were first seen.
type PivotCacheField struct {
	Name        string
	Index       int
	IsNumeric   bool
	IsDate      bool
	HasBoolean  bool
	HasBlank    bool
	HasString   bool
	SharedItems []string
	MinValue    float64
	MaxValue    float64
	MinDate     time.Time
	MaxDate     time.Time
	NumFmtID    int

	hasNumber   bool
	hasFraction bool
	items       []cacheItem
	itemIndex   map[cacheItem]int
}

// enumerated reports whether the values of the field are written as
// indexes into its shared items.
func (f *PivotCacheField) enumerated() bool {
	return f.items != nil
}

// ItemCount returns the number of shared items of the field, 0 for numeric
// and date fields whose values are written as literals.
func (f *PivotCacheField) ItemCount() int {
	return len(f.items)
}

// itemText returns the display text of a shared item.
func (f *PivotCacheField) itemText(i int) string {
	it := f.items[i]
	switch it.kind {
	case "b":
		if it.v == "1" {
			return "TRUE"
		}
		return "FALSE"
	case "m":
		return ""
	}
	return it.v
}

// PivotCache is a type-analyzed snapshot of a source range that pivot
// tables summarize.
type PivotCache struct {
	wb            *Workbook
	id            int
	index         int
	sourceSheet   string
	sourceRef     RangeAddress
	fields        []*PivotCacheField
	records       [][]any
	refreshOnLoad bool
	date1904      bool

	relID        string
	part         string
	recordsPart  string
	recordsRelID string
}

// NewPivotCache returns an empty pivot cache over a source range. Call
// BuildFromData to fill it.
func NewPivotCache(sourceSheet, sourceRef string) (*PivotCache, error) {
	r, err := ParseRange(sourceRef)
	if err != nil {
		return nil, err
	}
	return &PivotCache{sourceSheet: sourceSheet, sourceRef: NormalizeRange(r), refreshOnLoad: true}, nil
}

// ID returns the cache id that pivot tables use to refer to the cache.
func (pc *PivotCache) ID() int {
	return pc.id
}

// Fields returns the fields of the cache in source column order.
func (pc *PivotCache) Fields() []*PivotCacheField {
	return pc.fields
}

// Field returns the field with the given name, or nil.
func (pc *PivotCache) Field(name string) *PivotCacheField {
	for _, f := range pc.fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// Records returns the source rows as they were given to BuildFromData.
func (pc *PivotCache) Records() [][]any {
	return pc.records
}

// SourceSheet returns the name of the worksheet holding the source data.
func (pc *PivotCache) SourceSheet() string {
	return pc.sourceSheet
}

// SourceRef returns the reference of the source range.
func (pc *PivotCache) SourceRef() string {
	return pc.sourceRef.String()
}

// RefreshOnLoad reports whether the application refreshes the cache when
// the workbook opens.
func (pc *PivotCache) RefreshOnLoad() bool {
	return pc.refreshOnLoad
}

// SetRefreshOnLoad provides a function to set whether the application
// refreshes the cache when the workbook opens.
func (pc *PivotCache) SetRefreshOnLoad(refresh bool) {
	pc.refreshOnLoad = refresh
}

// toCacheItem classifies a value. It returns the numeric value of numbers
// and the time of dates besides the item.
func toCacheItem(v any) (cacheItem, float64, time.Time) {
	switch t := v.(type) {
	case nil:
		return cacheItem{kind: "m"}, 0, time.Time{}
	case string:
		if t == "" {
			return cacheItem{kind: "m"}, 0, time.Time{}
		}
		return cacheItem{kind: "s", v: t}, 0, time.Time{}
	case CellError:
		return cacheItem{kind: "e", v: string(t)}, 0, time.Time{}
	case bool:
		if t {
			return cacheItem{kind: "b", v: "1"}, 0, time.Time{}
		}
		return cacheItem{kind: "b", v: "0"}, 0, time.Time{}
	case time.Time:
		t = wallClock(t)
		return cacheItem{kind: "d", v: t.Format(cacheDateLayout)}, 0, t
	case *time.Time:
		if t == nil {
			return cacheItem{kind: "m"}, 0, time.Time{}
		}
		return toCacheItem(*t)
	}
	if f, ok := toFloat(v); ok {
		return cacheItem{kind: "n", v: formatNumber(f)}, f, time.Time{}
	}
	return cacheItem{kind: "s", v: fmt.Sprint(v)}, 0, time.Time{}
}

// BuildFromData provides a function to infer the field types of the cache
// from header names and source rows. A field with any text value is a text
// field whose values are all enumerated as shared items; otherwise dates
// make a date field and numbers a numeric field. Blank values set HasBlank
// without affecting the type. Rows are kept as given.
func (pc *PivotCache) BuildFromData(headers []string, rows [][]any) {
	pc.records = rows
	pc.fields = make([]*PivotCacheField, len(headers))
	for i, name := range headers {
		f := &PivotCacheField{Name: name, Index: i}
		var (
			seen             []cacheItem
			hasDate, hasNum  bool
			minDate, maxDate time.Time
		)
		f.MinValue, f.MaxValue = math.Inf(1), math.Inf(-1)
		for _, row := range rows {
			var v any
			if i < len(row) {
				v = row[i]
			}
			it, num, date := toCacheItem(v)
			seen = append(seen, it)
			switch it.kind {
			case "m":
				f.HasBlank = true
			case "s":
				f.HasString = true
			case "e":
				f.HasString = true
			case "b":
				f.HasBoolean = true
			case "d":
				if !hasDate || date.Before(minDate) {
					minDate = date
				}
				if !hasDate || date.After(maxDate) {
					maxDate = date
				}
				hasDate = true
			case "n":
				f.MinValue, f.MaxValue = math.Min(f.MinValue, num), math.Max(f.MaxValue, num)
				f.hasFraction = f.hasFraction || !isWhole(num)
				hasNum = true
			}
		}
		f.hasNumber = hasNum
		f.IsDate = hasDate
		f.IsNumeric = hasNum && !f.HasString && !hasDate
		if !hasNum {
			f.MinValue, f.MaxValue = 0, 0
		}
		if hasDate && !f.HasString {
			if hasNum {
				lo, hi := serialToTime(f.MinValue, pc.date1904), serialToTime(f.MaxValue, pc.date1904)
				if lo.Before(minDate) {
					minDate = lo
				}
				if hi.After(maxDate) {
					maxDate = hi
				}
			}
			f.MinDate, f.MaxDate = minDate, maxDate
			f.NumFmtID = numFmtIDDate
		}
		switch {
		case f.HasString:
			f.enumerate(seen)
		case !hasNum && !hasDate && f.HasBoolean:
			f.items = []cacheItem{{kind: "b", v: "0"}, {kind: "b", v: "1"}}
			if f.HasBlank {
				f.items = append(f.items, cacheItem{kind: "m"})
			}
			f.buildIndex()
		case !hasNum && !hasDate:
			f.items = []cacheItem{{kind: "m"}}
			f.buildIndex()
		}
		pc.fields[i] = f
	}
}

// enumerate registers the distinct values in first-seen order.
func (f *PivotCacheField) enumerate(values []cacheItem) {
	f.items = []cacheItem{}
	f.itemIndex = make(map[cacheItem]int)
	for _, it := range values {
		if _, ok := f.itemIndex[it]; ok {
			continue
		}
		f.itemIndex[it] = len(f.items)
		f.items = append(f.items, it)
		if it.kind == "s" {
			f.SharedItems = append(f.SharedItems, it.v)
		}
	}
}

func (f *PivotCacheField) buildIndex() {
	f.itemIndex = make(map[cacheItem]int, len(f.items))
	for i, it := range f.items {
		f.itemIndex[it] = i
	}
}

func isWhole(f float64) bool {
	return f == math.Trunc(f)
}

func flag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// sharedItemsXML returns the sharedItems element of a field.
func (f *PivotCacheField) sharedItemsXML() *xlsxSharedItems {
	si := &xlsxSharedItems{}
	if f.HasBlank {
		si.ContainsBlank = "1"
	}
	switch {
	case f.enumerated():
		if !f.HasString {
			si.ContainsSemiMixedTypes, si.ContainsString = "0", "0"
			if !f.HasBoolean {
				si.ContainsNonDate = "0"
			}
		}
		if f.HasString && (f.hasNumber || f.HasBoolean || f.IsDate) {
			si.ContainsMixedTypes = "1"
		}
		if f.hasNumber {
			si.ContainsNumber = "1"
			if !f.hasFraction {
				si.ContainsInteger = "1"
			}
			si.MinValue, si.MaxValue = formatNumber(f.MinValue), formatNumber(f.MaxValue)
		}
		if f.IsDate {
			si.ContainsDate = "1"
		}
		si.Count = fmt.Sprint(len(f.items))
		for _, it := range f.items {
			si.Items = append(si.Items, xlsxCacheItem{XMLName: xml.Name{Local: it.kind}, V: it.v})
		}
	case f.IsDate:
		si.ContainsSemiMixedTypes = flag(f.HasBlank)
		si.ContainsNonDate, si.ContainsDate, si.ContainsString = "0", "1", "0"
		si.MinDate = f.MinDate.Format(cacheDateLayout)
		si.MaxDate = f.MaxDate.AddDate(0, 0, 1).Format(cacheDateLayout)
	default:
		si.ContainsSemiMixedTypes = flag(f.HasBlank)
		si.ContainsString, si.ContainsNumber = "0", "1"
		if f.HasBoolean {
			si.ContainsMixedTypes = "1"
		}
		if !f.hasFraction {
			si.ContainsInteger = "1"
		}
		si.MinValue, si.MaxValue = formatNumber(f.MinValue), formatNumber(f.MaxValue)
	}
	return si
}

// DefinitionXML provides a function to serialize the pivot cache definition
// part.
func (pc *PivotCache) DefinitionXML() ([]byte, error) {
	x := xlsxPivotCacheDefinition{
		CreatedVersion:        3,
		RefreshedVersion:      3,
		MinRefreshableVersion: 3,
		RecordCount:           len(pc.records),
		CacheSource: xlsxCacheSource{
			Type:            "worksheet",
			WorksheetSource: &xlsxWorksheetSource{Ref: pc.sourceRef.String(), Sheet: pc.sourceSheet},
		},
	}
	if pc.recordsRelID != "" {
		x.XMLNSR, x.RID = NameSpaceRelationships, pc.recordsRelID
	}
	if pc.refreshOnLoad {
		x.RefreshOnLoad = "1"
	}
	x.CacheFields.Count = len(pc.fields)
	for _, f := range pc.fields {
		x.CacheFields.CacheField = append(x.CacheFields.CacheField, xlsxCacheField{
			Name:        f.Name,
			NumFmtID:    f.NumFmtID,
			SharedItems: f.sharedItemsXML(),
		})
	}
	return marshalPart(x)
}

// RecordsXML provides a function to serialize the pivot cache records part.
// Values of enumerated fields are written as indexes into the shared items,
// every other value as a typed literal.
func (pc *PivotCache) RecordsXML() ([]byte, error) {
	x := xlsxPivotCacheRecords{Count: len(pc.records)}
	for _, row := range pc.records {
		rec := xlsxPivotCacheRecord{Items: make([]xlsxCacheItem, 0, len(pc.fields))}
		for i, f := range pc.fields {
			var v any
			if i < len(row) {
				v = row[i]
			}
			it, num, _ := toCacheItem(v)
			if f.enumerated() {
				if idx, ok := f.itemIndex[it]; ok {
					rec.Items = append(rec.Items, xlsxCacheItem{XMLName: xml.Name{Local: "x"}, V: fmt.Sprint(idx)})
					continue
				}
			}
			if it.kind == "n" && f.IsDate {
				it = cacheItem{kind: "d", v: serialToTime(num, pc.date1904).Format(cacheDateLayout)}
			}
			rec.Items = append(rec.Items, xlsxCacheItem{XMLName: xml.Name{Local: it.kind}, V: it.v})
		}
		x.R = append(x.R, rec)
	}
	return marshalPart(x)
}

// marshalPart serializes a part struct with the XML declaration in front.
func marshalPart(v any) ([]byte, error) {
	out, err := xml.Marshal(v)
	if err != nil {
		return nil, err
	}
	return append([]byte(xmltree.Header), out...), nil
}
