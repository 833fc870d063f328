// Copyright 2016 - 2025 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package sheetkit

import "github.com/xuri/nfp"

const (
	// firstCustomNumFmtID is the first number format id available for
	// custom format codes, ids below it are reserved for built-in formats.
	firstCustomNumFmtID = 164
	numFmtIDDate        = 14
	numFmtIDDateTime    = 22
)

// builtInNumFmt defined the built-in number formats with their reserved
// ids.
var builtInNumFmt = map[int]string{
	0:  "General",
	1:  "0",
	2:  "0.00",
	3:  "#,##0",
	4:  "#,##0.00",
	9:  "0%",
	10: "0.00%",
	11: "0.00E+00",
	12: "# ?/?",
	13: "# ??/??",
	14: "mm-dd-yy",
	15: "d-mmm-yy",
	16: "d-mmm",
	17: "mmm-yy",
	18: "h:mm AM/PM",
	19: "h:mm:ss AM/PM",
	20: "h:mm",
	21: "h:mm:ss",
	22: "m/d/yy h:mm",
	37: "#,##0 ;(#,##0)",
	38: "#,##0 ;[Red](#,##0)",
	39: "#,##0.00 ;(#,##0.00)",
	40: "#,##0.00 ;[Red](#,##0.00)",
	41: `_(* #,##0_);_(* \(#,##0\);_(* "-"_);_(@_)`,
	42: `_("$"* #,##0_);_("$"* \(#,##0\);_("$"* "-"_);_(@_)`,
	43: `_(* #,##0.00_);_(* \(#,##0.00\);_(* "-"??_);_(@_)`,
	44: `_("$"* #,##0.00_);_("$"* \(#,##0.00\);_("$"* "-"??_);_(@_)`,
	45: "mm:ss",
	46: "[h]:mm:ss",
	47: "mm:ss.0",
	48: "##0.0E+0",
	49: "@",
}

// builtInNumFmtCode maps a built-in format code to its id.
var builtInNumFmtCode = func() map[string]int {
	m := make(map[string]int, len(builtInNumFmt))
	for id, code := range builtInNumFmt {
		m[code] = id
	}
	return m
}()

// isBuiltInDateNumFmt reports whether a reserved number format id shows
// dates or times, the locale dependent ids 27-36 and 50-58 included.
func isBuiltInDateNumFmt(id int) bool {
	return (id >= 14 && id <= 22) || (id >= 27 && id <= 36) ||
		(id >= 45 && id <= 47) || (id >= 50 && id <= 58)
}

// isDateFormatCode provides a function to detect whether a number format
// code renders its value as a date or time, by looking for date and time
// tokens in the first section of the parsed code.
func isDateFormatCode(code string) bool {
	if code == "" || code == "General" || code == "@" {
		return false
	}
	ps := nfp.NumberFormatParser()
	sections := ps.Parse(code)
	if len(sections) == 0 {
		return false
	}
	for _, token := range sections[0].Items {
		switch token.TType {
		case nfp.TokenTypeDateTimes, nfp.TokenTypeElapsedDateTimes:
			return true
		}
	}
	return false
}
