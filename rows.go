// Copyright 2016 - 2025 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package sheetkit

import (
	"fmt"
	"sort"
	"time"
)

// ColumnMapping maps the key of a record to the header of a column.
type ColumnMapping struct {
	Key    string
	Header string
}

// FromDataOptions directly maps the settings of AddSheetFromData. Columns
// gives the order and the headers of the columns, without it the keys of
// the records become the headers in the order they are first seen.
// HeaderStyle is applied to the header row when set.
type FromDataOptions struct {
	Columns     []ColumnMapping
	HeaderStyle *CellStyle
}

// HeaderMode selects where ToRecords takes the keys of the records from.
type HeaderMode int

// Header modes of ToRecords.
const (
	HeaderFirstRow HeaderMode = iota
	HeaderColumnLetters
	HeaderExplicit
)

// DateMode selects how ToRecords returns date cells.
type DateMode int

// Date modes of ToRecords.
const (
	DateAsTime DateMode = iota
	DateAsSerial
	DateAsISO
)

// isoDateLayout is the layout of dates returned as strings.
const isoDateLayout = "2006-01-02T15:04:05.000Z"

// ToRecordsOptions directly maps the settings of ToRecords.
//
// HeaderMode HeaderFirstRow uses the text of the first row of the range as
// keys and reads the data from the next row, HeaderColumnLetters uses the
// column letters and HeaderExplicit the Headers list, both read the data
// from the first row. Columns without a key are skipped.
//
// StopOnBlankRow ends the records at the first row without any value.
//
// Range restricts the read to the given range, the used range of the
// worksheet is read by default.
type ToRecordsOptions struct {
	HeaderMode     HeaderMode
	Headers        []string
	DateMode       DateMode
	StopOnBlankRow bool
	Range          string
}

// recordColumns returns the columns of a set of records: the keys in the
// order they are first seen, the keys new in one record sorted by name.
func recordColumns(records []map[string]any) []ColumnMapping {
	var columns []ColumnMapping
	seen := make(map[string]bool)
	for _, rec := range records {
		var keys []string
		for key := range rec {
			if !seen[key] {
				keys = append(keys, key)
			}
		}
		sort.Strings(keys)
		for _, key := range keys {
			seen[key] = true
			columns = append(columns, ColumnMapping{Key: key, Header: key})
		}
	}
	return columns
}

// AddSheetFromData provides a function to add a worksheet holding a header
// row and one row per record.
func (wb *Workbook) AddSheetFromData(name string, records []map[string]any, opts ...FromDataOptions) (*Worksheet, error) {
	var opt FromDataOptions
	for _, o := range opts {
		opt = o
	}
	columns := opt.Columns
	if len(columns) == 0 {
		columns = recordColumns(records)
	}
	ws, err := wb.AddSheet(name)
	if err != nil {
		return nil, err
	}
	headerStyle := -1
	if opt.HeaderStyle != nil {
		headerStyle = wb.styles.CreateStyle(*opt.HeaderStyle)
	}
	for j, col := range columns {
		header := col.Header
		if header == "" {
			header = col.Key
		}
		c := ws.cellAt(0, j, true)
		c.SetValue(header)
		if headerStyle >= 0 {
			c.SetStyleIndex(headerStyle)
		}
	}
	for i, rec := range records {
		for j, col := range columns {
			if v, ok := rec[col.Key]; ok && v != nil {
				ws.cellAt(i+1, j, true).SetValue(v)
			}
		}
	}
	return ws, nil
}

// SetRow provides a function to write values into the 0-based row from the
// first column on. A nil value leaves the cell as it is.
func (ws *Worksheet) SetRow(row int, values []any) error {
	if row < 0 {
		return newInvalidAddressError(fmt.Sprintf("row %d", row))
	}
	for j, v := range values {
		if v != nil {
			ws.cellAt(row, j, true).SetValue(v)
		}
	}
	return nil
}

// AddRow provides a function to write values into the row after the last
// used row and returns the 0-based index of that row.
func (ws *Worksheet) AddRow(values ...any) int {
	row := 0
	if used, ok := ws.usedRange(); ok {
		row = used.End.Row + 1
	}
	_ = ws.SetRow(row, values)
	return row
}

// ToRecords provides a function to read the rows of the worksheet as
// records keyed by header. Missing cells are not vivified, empty cells are
// left out of their record.
func (ws *Worksheet) ToRecords(opts ...ToRecordsOptions) ([]map[string]any, error) {
	var opt ToRecordsOptions
	for _, o := range opts {
		opt = o
	}
	var area RangeAddress
	if opt.Range != "" {
		r, err := ParseRange(opt.Range)
		if err != nil {
			return nil, err
		}
		area = NormalizeRange(r)
	} else {
		used, ok := ws.usedRange()
		if !ok {
			return []map[string]any{}, nil
		}
		area = used
	}
	keys := make([]string, area.Cols())
	first := area.Start.Row
	switch opt.HeaderMode {
	case HeaderColumnLetters:
		for j := range keys {
			keys[j] = ColToLetter(area.Start.Col + j)
		}
	case HeaderExplicit:
		copy(keys, opt.Headers)
	default:
		for j := range keys {
			if c := ws.cellAt(first, area.Start.Col+j, false); c != nil {
				keys[j] = valueString(c.Value())
			}
		}
		first++
	}
	records := []map[string]any{}
	for row := first; row <= area.End.Row; row++ {
		rec := make(map[string]any)
		blank := true
		for j, key := range keys {
			c := ws.cellAt(row, area.Start.Col+j, false)
			if c == nil || c.typ == CellTypeEmpty {
				continue
			}
			blank = false
			if key == "" {
				continue
			}
			rec[key] = ws.recordValue(c, opt.DateMode)
		}
		if blank && opt.StopOnBlankRow {
			break
		}
		records = append(records, rec)
	}
	return records, nil
}

func (ws *Worksheet) recordValue(c *Cell, mode DateMode) any {
	v := c.Value()
	t, ok := v.(time.Time)
	if !ok {
		return v
	}
	switch mode {
	case DateAsSerial:
		return c.num
	case DateAsISO:
		return t.Format(isoDateLayout)
	}
	return t
}
