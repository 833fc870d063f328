// Copyright 2016 - 2025 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package sheetkit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRangeValues(t *testing.T) {
	ws := newTestSheet(t)
	rng, err := ws.Range("C3:A1")
	require.NoError(t, err)
	assert.Equal(t, "A1:C3", rng.Address())
	assert.Equal(t, 3, rng.Ref().Rows())

	require.NoError(t, ws.SetCellValue("B2", 5))
	assert.Equal(t, 1, ws.CellCount())
	values := rng.GetValues(false)
	assert.Equal(t, [][]any{{nil, nil, nil}, {nil, 5.0, nil}, {nil, nil, nil}}, values)
	assert.Equal(t, 1, ws.CellCount())

	values = rng.Values()
	assert.Equal(t, 5.0, values[1][1])
	assert.Equal(t, 9, ws.CellCount())
	assert.Equal(t, "B2", ws.Dimension())
}

func TestRangeSetValues(t *testing.T) {
	ws := newTestSheet(t)
	rng, err := ws.Range("B2:C3")
	require.NoError(t, err)
	rng.SetValues([][]any{
		{"a", "b", "ignored"},
		{1, 2},
		{"ignored"},
	})
	assert.Equal(t, [][]any{{"a", "b"}, {1.0, 2.0}}, rng.GetValues(false))
	assert.Nil(t, ws.GetCellIfExists("D2"))
	assert.Nil(t, ws.GetCellIfExists("B4"))
	assert.Equal(t, "B2:C3", ws.Dimension())

	rng.SetFormulas([][]string{{"", "=B3*2"}})
	assert.Equal(t, [][]string{{"", "B3*2"}, {"", ""}}, rng.Formulas())
	data := rng.Data()
	assert.Equal(t, "B3*2", data[0][1].Formula)
	assert.Equal(t, "a", data[0][0].Value)
}

func TestRangeSetStyle(t *testing.T) {
	ws := newTestSheet(t)
	ws.CellAt(0, 0).SetStyle(CellStyle{Fill: &Fill{Color: "00FF00"}})
	rng, err := ws.Range("A1:B1")
	require.NoError(t, err)
	rng.SetStyle(CellStyle{Font: &Font{Bold: true}})

	cells := rng.Cells()
	first, second := cells[0][0].Style(), cells[0][1].Style()
	require.NotNil(t, first.Fill)
	assert.True(t, first.Font.Bold)
	assert.Nil(t, second.Fill)
	assert.True(t, second.Font.Bold)
	assert.NotEqual(t, cells[0][0].StyleIndex(), cells[0][1].StyleIndex())
}
