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

func TestAddSheetFromData(t *testing.T) {
	wb := NewWorkbook()
	records := []map[string]any{
		{"name": "Ann", "age": 30},
		{"name": "Bob", "city": "Paris", "note": nil},
	}
	ws, err := wb.AddSheetFromData("People", records)
	require.NoError(t, err)
	rng, err := ws.Range("A1:D3")
	require.NoError(t, err)
	assert.Equal(t, [][]any{
		{"age", "name", "city", "note"},
		{30.0, "Ann", nil, nil},
		{nil, "Bob", "Paris", nil},
	}, rng.GetValues(false))

	got, err := ws.ToRecords()
	require.NoError(t, err)
	assert.Equal(t, []map[string]any{
		{"age": 30.0, "name": "Ann"},
		{"name": "Bob", "city": "Paris"},
	}, got)

	_, err = wb.AddSheetFromData("People", records)
	assert.ErrorIs(t, err, ErrSheetExists)
}

func TestAddSheetFromDataColumns(t *testing.T) {
	wb := NewWorkbook()
	ws, err := wb.AddSheetFromData("Out", []map[string]any{
		{"name": "Ann", "age": 30, "ignored": true},
	}, FromDataOptions{
		Columns:     []ColumnMapping{{Key: "name", Header: "Name"}, {Key: "age"}},
		HeaderStyle: &CellStyle{Font: &Font{Bold: true}},
	})
	require.NoError(t, err)
	rng, err := ws.Range("A1:C2")
	require.NoError(t, err)
	assert.Equal(t, [][]any{{"Name", "age", nil}, {"Ann", 30.0, nil}}, rng.GetValues(false))
	style := ws.GetCellIfExists("B1").Style()
	require.NotNil(t, style.Font)
	assert.True(t, style.Font.Bold)
	assert.Equal(t, 0, ws.GetCellIfExists("A2").StyleIndex())
}

func TestToRecordsModes(t *testing.T) {
	ws := newTestSheet(t)
	day := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	require.NoError(t, ws.SetRow(0, []any{"id", "day", "ok"}))
	require.NoError(t, ws.SetRow(1, []any{1, day, true}))
	require.NoError(t, ws.SetRow(3, []any{2, nil, false}))

	got, err := ws.ToRecords()
	require.NoError(t, err)
	assert.Equal(t, []map[string]any{
		{"id": 1.0, "day": day, "ok": true},
		{},
		{"id": 2.0, "ok": false},
	}, got)

	got, err = ws.ToRecords(ToRecordsOptions{StopOnBlankRow: true, DateMode: DateAsSerial})
	require.NoError(t, err)
	assert.Equal(t, []map[string]any{{"id": 1.0, "day": 45306.0, "ok": true}}, got)

	got, err = ws.ToRecords(ToRecordsOptions{DateMode: DateAsISO, Range: "A1:B2"})
	require.NoError(t, err)
	assert.Equal(t, []map[string]any{{"id": 1.0, "day": "2024-01-15T00:00:00.000Z"}}, got)

	got, err = ws.ToRecords(ToRecordsOptions{HeaderMode: HeaderColumnLetters, Range: "B1:C2"})
	require.NoError(t, err)
	assert.Equal(t, []map[string]any{{"B": "day", "C": "ok"}, {"B": day, "C": true}}, got)

	got, err = ws.ToRecords(ToRecordsOptions{HeaderMode: HeaderExplicit, Headers: []string{"first", "", "third"}, StopOnBlankRow: true})
	require.NoError(t, err)
	assert.Equal(t, []map[string]any{
		{"first": "id", "third": "ok"},
		{"first": 1.0, "third": true},
	}, got)

	_, err = ws.ToRecords(ToRecordsOptions{Range: "A1:"})
	assert.Error(t, err)
	assert.Equal(t, 8, ws.CellCount())
}

func TestToRecordsEmpty(t *testing.T) {
	ws := newTestSheet(t)
	got, err := ws.ToRecords()
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestAddRow(t *testing.T) {
	ws := newTestSheet(t)
	assert.Equal(t, 0, ws.AddRow("a", 1))
	assert.Equal(t, 1, ws.AddRow("b", nil, true))
	require.NoError(t, ws.SetRow(4, []any{"e"}))
	assert.Equal(t, 5, ws.AddRow("f"))
	assert.ErrorIs(t, ws.SetRow(-1, []any{"x"}), ErrInvalidAddress)

	assert.Equal(t, "A1:C6", ws.Dimension())
	assert.Nil(t, ws.GetCellIfExists("B2"))
	assert.Equal(t, true, ws.GetCellIfExists("C2").Value())
}
