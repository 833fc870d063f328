// Copyright 2016 - 2025 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package sheetkit

import (
	"regexp"
	"strconv"
	"strings"
)

var addressPattern = regexp.MustCompile(`^([A-Za-z]+)(\d+)$`)

// CellAddress directly maps a 0-based row and column pair.
type CellAddress struct {
	Row int
	Col int
}

// String returns the A1 style address of the cell.
func (a CellAddress) String() string {
	return ToAddress(a.Row, a.Col)
}

// RangeAddress directly maps a rectangular block of cells. A single cell is
// a range whose start equals its end.
type RangeAddress struct {
	Start CellAddress
	End   CellAddress
}

// String returns the A1:B2 style reference of the range.
func (r RangeAddress) String() string {
	return ToRange(r)
}

// Rows returns the number of rows covered by the normalized range.
func (r RangeAddress) Rows() int {
	n := NormalizeRange(r)
	return n.End.Row - n.Start.Row + 1
}

// Cols returns the number of columns covered by the normalized range.
func (r RangeAddress) Cols() int {
	n := NormalizeRange(r)
	return n.End.Col - n.Start.Col + 1
}

// ColToLetter provides a function to convert a 0-based column index to the
// column letters, column 0 is "A" and column 26 is "AA".
func ColToLetter(col int) string {
	if col < 0 {
		return ""
	}
	var buf [16]byte
	i := len(buf)
	for col >= 0 {
		i--
		buf[i] = byte('A' + col%26)
		col = col/26 - 1
	}
	return string(buf[i:])
}

// LetterToCol provides a function to convert the column letters to the
// 0-based column index, the letters are case-insensitive.
func LetterToCol(letters string) (int, error) {
	if letters == "" {
		return -1, newInvalidAddressError(letters)
	}
	col := 0
	for _, r := range letters {
		switch {
		case 'A' <= r && r <= 'Z':
			col = col*26 + int(r-'A') + 1
		case 'a' <= r && r <= 'z':
			col = col*26 + int(r-'a') + 1
		default:
			return -1, newInvalidAddressError(letters)
		}
	}
	return col - 1, nil
}

// ParseAddress provides a function to parse an A1 style address into the
// 0-based row and column pair, "$" anchors are ignored.
func ParseAddress(address string) (CellAddress, error) {
	m := addressPattern.FindStringSubmatch(strings.ReplaceAll(address, "$", ""))
	if m == nil {
		return CellAddress{}, newInvalidAddressError(address)
	}
	col, err := LetterToCol(m[1])
	if err != nil {
		return CellAddress{}, newInvalidAddressError(address)
	}
	row, err := strconv.Atoi(m[2])
	if err != nil || row < 1 {
		return CellAddress{}, newInvalidAddressError(address)
	}
	return CellAddress{Row: row - 1, Col: col}, nil
}

// ToAddress provides a function to render the 0-based row and column pair as
// an A1 style address.
func ToAddress(row, col int) string {
	return ColToLetter(col) + strconv.Itoa(row+1)
}

// ParseRange provides a function to parse a range reference like "A1:B2". A
// single address parses to a range whose start equals its end.
func ParseRange(ref string) (RangeAddress, error) {
	first, last, ok := strings.Cut(ref, ":")
	start, err := ParseAddress(first)
	if err != nil {
		return RangeAddress{}, newInvalidRangeError(ref)
	}
	if !ok {
		return RangeAddress{Start: start, End: start}, nil
	}
	end, err := ParseAddress(last)
	if err != nil {
		return RangeAddress{}, newInvalidRangeError(ref)
	}
	return RangeAddress{Start: start, End: end}, nil
}

// ToRange provides a function to render a range, a zero-size range collapses
// into a single address.
func ToRange(r RangeAddress) string {
	if r.Start == r.End {
		return r.Start.String()
	}
	return r.Start.String() + ":" + r.End.String()
}

// NormalizeRange provides a function to swap the coordinates of a range per
// axis so that the start is always the top-left corner.
func NormalizeRange(r RangeAddress) RangeAddress {
	if r.Start.Row > r.End.Row {
		r.Start.Row, r.End.Row = r.End.Row, r.Start.Row
	}
	if r.Start.Col > r.End.Col {
		r.Start.Col, r.End.Col = r.End.Col, r.Start.Col
	}
	return r
}

// IsInRange reports whether the address lies inside the range, bounds
// included.
func IsInRange(addr CellAddress, r RangeAddress) bool {
	r = NormalizeRange(r)
	return addr.Row >= r.Start.Row && addr.Row <= r.End.Row &&
		addr.Col >= r.Start.Col && addr.Col <= r.End.Col
}

// rangesOverlap reports whether two ranges share at least one cell.
func rangesOverlap(a, b RangeAddress) bool {
	a, b = NormalizeRange(a), NormalizeRange(b)
	return a.Start.Row <= b.End.Row && b.Start.Row <= a.End.Row &&
		a.Start.Col <= b.End.Col && b.Start.Col <= a.End.Col
}

// parseSheetReference splits a "SheetName!A1:B2" reference, the sheet name
// may be quoted as in 'My Sheet'!A1.
func parseSheetReference(ref string) (string, RangeAddress, error) {
	i := strings.LastIndex(ref, "!")
	if i < 0 {
		return "", RangeAddress{}, newInvalidReferenceError(ref)
	}
	sheet := unquoteSheetName(ref[:i])
	if sheet == "" {
		return "", RangeAddress{}, newInvalidReferenceError(ref)
	}
	r, err := ParseRange(ref[i+1:])
	if err != nil {
		return "", RangeAddress{}, err
	}
	return sheet, NormalizeRange(r), nil
}

// quoteSheetName returns the sheet name the way formulas reference it.
func quoteSheetName(name string) string {
	if name == "" {
		return name
	}
	plain := true
	for i, r := range name {
		if r == '_' || r == '.' || ('A' <= r && r <= 'Z') || ('a' <= r && r <= 'z') ||
			(i > 0 && '0' <= r && r <= '9') || r > 127 {
			continue
		}
		plain = false
		break
	}
	if plain {
		return name
	}
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}

// unquoteSheetName removes the formula quoting of a sheet name.
func unquoteSheetName(name string) string {
	if len(name) >= 2 && name[0] == '\'' && name[len(name)-1] == '\'' {
		return strings.ReplaceAll(name[1:len(name)-1], "''", "'")
	}
	return name
}

// inStrSlice provides a function to check if string element exists in
// the slice.
func inStrSlice(a []string, x string) int {
	for idx, n := range a {
		if x == n {
			return idx
		}
	}
	return -1
}
