// Copyright 2016 - 2025 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package sheetkit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsDateFormatCode(t *testing.T) {
	for code, expected := range map[string]bool{
		"yyyy-mm-dd":          true,
		"d/m/yyyy h:mm":       true,
		"[h]:mm:ss":           true,
		"mmm-yy":              true,
		"General":             false,
		"@":                   false,
		"0.00":                false,
		"#,##0":               false,
		`"Date" 0`:            false,
		"0.00%":               false,
		"":                    false,
	} {
		assert.Equal(t, expected, isDateFormatCode(code), code)
	}
}

func TestIsBuiltInDateNumFmt(t *testing.T) {
	for _, id := range []int{14, 15, 22, 45, 47} {
		assert.True(t, isBuiltInDateNumFmt(id), id)
	}
	for _, id := range []int{0, 1, 2, 9, 49, 164} {
		assert.False(t, isBuiltInDateNumFmt(id), id)
	}
}
