// Copyright 2016 - 2025 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package sheetkit

import (
	"archive/zip"
	"bytes"
	"compress/flate"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOptions(t *testing.T) {
	options := getOptions()
	require.NotNil(t, options.CompressionLevel)
	assert.Equal(t, flate.DefaultCompression, *options.CompressionLevel)
	assert.Equal(t, defaultFormatCacheSize, options.FormatCacheSize)

	level := flate.NoCompression
	options = getOptions(Options{CompressionLevel: &level}, Options{TempDir: "tmp"})
	assert.Equal(t, flate.NoCompression, *options.CompressionLevel)
	assert.Equal(t, "tmp", options.TempDir)
	level = flate.BestSpeed
	assert.Equal(t, flate.NoCompression, *options.CompressionLevel)
}

func TestNoCompression(t *testing.T) {
	write := func(opts ...Options) *zip.Reader {
		wb := NewWorkbook(opts...)
		ws, err := wb.AddSheet("Sheet1")
		require.NoError(t, err)
		for row := 0; row < 200; row++ {
			require.NoError(t, ws.SetRow(row, []any{strings.Repeat("value ", 10), row}))
		}
		content, err := wb.Bytes()
		require.NoError(t, err)
		zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
		require.NoError(t, err)
		return zr
	}
	level := flate.NoCompression
	for _, f := range write(Options{CompressionLevel: &level}).File {
		assert.GreaterOrEqual(t, f.CompressedSize64, f.UncompressedSize64, f.Name)
	}
	for _, f := range write().File {
		if f.Name == "xl/worksheets/sheet1.xml" {
			assert.Less(t, f.CompressedSize64, f.UncompressedSize64)
		}
	}
}
