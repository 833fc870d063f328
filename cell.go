// Copyright 2016 - 2025 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package sheetkit

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/OmniMCP-AI/sheetkit/xmltree"
	"github.com/xuri/efp"
)

// CellType is the type of the value stored in a cell.
type CellType byte

// Cell value types.
const (
	CellTypeEmpty CellType = iota
	CellTypeNumber
	CellTypeSharedString
	CellTypeInlineString
	CellTypeBool
	CellTypeError
	CellTypeDate
)

// String returns the name of the cell type.
func (t CellType) String() string {
	switch t {
	case CellTypeNumber:
		return "number"
	case CellTypeSharedString:
		return "sharedString"
	case CellTypeInlineString:
		return "inlineString"
	case CellTypeBool:
		return "boolean"
	case CellTypeError:
		return "error"
	case CellTypeDate:
		return "date"
	}
	return "empty"
}

// CellError is one of the error literals a cell can hold.
type CellError string

// Cell error values.
const (
	ErrorNull        CellError = "#NULL!"
	ErrorDiv0        CellError = "#DIV/0!"
	ErrorValue       CellError = "#VALUE!"
	ErrorRef         CellError = "#REF!"
	ErrorName        CellError = "#NAME?"
	ErrorNum         CellError = "#NUM!"
	ErrorNA          CellError = "#N/A"
	ErrorGettingData CellError = "#GETTING_DATA"
)

// cellErrors defined the closed set of error literals.
var cellErrors = map[string]CellError{
	string(ErrorNull): ErrorNull, string(ErrorDiv0): ErrorDiv0, string(ErrorValue): ErrorValue,
	string(ErrorRef): ErrorRef, string(ErrorName): ErrorName, string(ErrorNum): ErrorNum,
	string(ErrorNA): ErrorNA, string(ErrorGettingData): ErrorGettingData,
}

// Cell is a single cell of a worksheet. It holds its value in the stored
// form of the format: numbers and dates as a serial number, shared strings
// as an index into the shared string table, and its style as an index into
// the style table.
type Cell struct {
	ws  *Worksheet
	row int
	col int

	typ     CellType
	num     float64
	str     string
	sst     int
	formula string
	// formulaType is "shared" or "array" for shared and array formulas,
	// with formulaRef their range and sharedIndex the si of a shared one.
	formulaType string
	formulaRef  string
	sharedIndex string
	style       int
	text        string
	numFmt      string
	// orig is the element a loaded cell was read from, it is written back
	// as long as the cell is not modified.
	orig *xmltree.Node
}

// Address returns the A1 style address of the cell.
func (c *Cell) Address() string {
	return ToAddress(c.row, c.col)
}

// Row returns the 0-based row index of the cell.
func (c *Cell) Row() int {
	return c.row
}

// Col returns the 0-based column index of the cell.
func (c *Cell) Col() int {
	return c.col
}

// Type returns the type of the stored value.
func (c *Cell) Type() CellType {
	return c.typ
}

// Value returns the value of the cell: float64 for numbers, string for
// text, bool, time.Time for dates, CellError for errors and nil for an
// empty cell.
func (c *Cell) Value() any {
	switch c.typ {
	case CellTypeNumber:
		return c.num
	case CellTypeSharedString:
		s, _ := c.ws.wb.sst.GetString(c.sst)
		return s
	case CellTypeInlineString:
		return c.str
	case CellTypeBool:
		return c.num != 0
	case CellTypeError:
		return CellError(c.str)
	case CellTypeDate:
		return serialToTime(c.num, c.ws.wb.date1904)
	}
	return nil
}

// touch marks the cell and its worksheet as modified.
func (c *Cell) touch() {
	c.orig = nil
	c.ws.dirty = true
}

// SetValue provides a function to set the value of the cell, it clears the
// formula of the cell. Strings go to the shared string table unless they
// equal one of the error literals, times are stored as serial dates with a
// date number format, and other types are stored as their default string
// form.
func (c *Cell) SetValue(value any) {
	c.touch()
	c.formula, c.formulaType, c.formulaRef, c.sharedIndex = "", "", "", ""
	c.text, c.str, c.num = "", "", 0
	switch v := value.(type) {
	case nil:
		c.typ = CellTypeEmpty
	case string:
		c.setString(v)
	case []byte:
		c.setString(string(v))
	case CellError:
		c.typ, c.str = CellTypeError, string(v)
	case bool:
		c.typ = CellTypeBool
		if v {
			c.num = 1
		}
	case time.Time:
		c.setTime(v)
	case *time.Time:
		if v == nil {
			c.typ = CellTypeEmpty
			return
		}
		c.setTime(*v)
	case time.Duration:
		c.typ, c.num = CellTypeNumber, v.Hours()/24
		c.applyDefaultNumFmt(21)
	default:
		if f, ok := toFloat(v); ok {
			c.typ, c.num = CellTypeNumber, f
			return
		}
		c.setString(fmt.Sprint(v))
	}
}

func (c *Cell) setString(s string) {
	if e, ok := cellErrors[s]; ok {
		c.typ, c.str = CellTypeError, string(e)
		return
	}
	c.typ = CellTypeSharedString
	c.sst = c.ws.wb.sst.AddString(s)
}

func (c *Cell) setTime(t time.Time) {
	c.typ, c.num = CellTypeDate, timeToSerial(t, c.ws.wb.date1904)
	if isMidnight(t) {
		c.applyDefaultNumFmt(numFmtIDDate)
		return
	}
	c.applyDefaultNumFmt(numFmtIDDateTime)
}

// applyDefaultNumFmt gives the cell the number format when its style does
// not already show dates or times.
func (c *Cell) applyDefaultNumFmt(id int) {
	styles := c.ws.wb.styles
	if styles.isDateStyle(c.style) {
		return
	}
	c.style = styles.withNumFmt(c.style, id)
}

// toFloat converts the numeric kinds to float64.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		f, err := strconv.ParseFloat(strconv.FormatFloat(float64(n), 'f', -1, 32), 64)
		return f, err == nil
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}

// Formula returns the formula of the cell without the leading "=".
func (c *Cell) Formula() string {
	return c.formula
}

// SetFormula provides a function to set the formula of the cell. The
// stored value is kept as the cached result of the formula.
func (c *Cell) SetFormula(formula string) {
	c.touch()
	c.formula = strings.TrimPrefix(formula, "=")
	c.formulaType, c.formulaRef, c.sharedIndex = "", "", ""
}

// StyleIndex returns the index of the cell format of the cell.
func (c *Cell) StyleIndex() int {
	return c.style
}

// SetStyleIndex sets the index of the cell format of the cell.
func (c *Cell) SetStyleIndex(idx int) {
	c.touch()
	c.style = idx
}

// Style returns the style of the cell.
func (c *Cell) Style() CellStyle {
	return c.ws.wb.styles.GetStyle(c.style)
}

// SetStyle provides a function to merge the style into the current style
// of the cell.
func (c *Cell) SetStyle(style CellStyle) {
	c.touch()
	c.style = c.ws.wb.styles.CreateStyle(mergeStyle(c.Style(), style))
}

// NumberFormat returns the number format code of the cell.
func (c *Cell) NumberFormat() string {
	if c.numFmt != "" {
		return c.numFmt
	}
	code, _ := c.ws.wb.styles.NumFmtCode(c.ws.wb.styles.numFmtID(c.style))
	return code
}

// SetNumberFormat provides a function to set the number format code of the
// cell, the other style settings of the cell are kept.
func (c *Cell) SetNumberFormat(code string) {
	c.touch()
	styles := c.ws.wb.styles
	c.numFmt = code
	c.style = styles.withNumFmt(c.style, styles.GetOrCreateNumFmtID(code))
	if c.typ == CellTypeNumber && styles.isDateStyle(c.style) {
		c.typ = CellTypeDate
	} else if c.typ == CellTypeDate && !styles.isDateStyle(c.style) {
		c.typ = CellTypeNumber
	}
}

// Text returns the cached display text of the cell, or a plain rendering
// of its value when there is none.
func (c *Cell) Text() string {
	if c.text != "" {
		return c.text
	}
	switch v := c.Value().(type) {
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		if v {
			return "TRUE"
		}
		return "FALSE"
	case time.Time:
		if isMidnight(v) {
			return v.Format(time.DateOnly)
		}
		return v.Format(time.DateTime)
	case CellError:
		return string(v)
	case string:
		return v
	}
	return ""
}

// SetText sets the cached display text of the cell.
func (c *Cell) SetText(text string) {
	c.text = text
}

// IsEmpty reports whether the cell holds neither a value nor a formula.
func (c *Cell) IsEmpty() bool {
	return c.typ == CellTypeEmpty && c.formula == ""
}

// References provides a function to get the cell and range references of
// the formula of the cell, in the order they appear.
func (c *Cell) References() []string {
	if c.formula == "" {
		return nil
	}
	var refs []string
	ps := efp.ExcelParser()
	for _, token := range ps.Parse(c.formula) {
		if token.TType == efp.TokenTypeOperand && token.TSubType == efp.TokenSubTypeRange {
			refs = append(refs, token.TValue)
		}
	}
	return refs
}

// renameSheetInFormula rewrites the references to sheet oldName in a
// formula to newName. It reports whether the formula changed. Formulas with
// array constants are left alone.
func renameSheetInFormula(formula, oldName, newName string) (string, bool) {
	if strings.ContainsRune(formula, '{') ||
		!strings.Contains(formula, oldName) && !strings.Contains(formula, strings.ReplaceAll(oldName, "'", "''")) {
		return formula, false
	}
	ps := efp.ExcelParser()
	tokens := ps.Parse(formula)
	changed := false
	for i, token := range tokens {
		if token.TType != efp.TokenTypeOperand || token.TSubType != efp.TokenSubTypeRange {
			continue
		}
		if ref, ok := renameSheetInReference(token.TValue, oldName, newName); ok {
			tokens[i].TValue = ref
			changed = true
		}
	}
	if !changed {
		return formula, false
	}
	var sb strings.Builder
	if strings.HasPrefix(formula, "=") {
		sb.WriteByte('=')
	}
	for _, token := range tokens {
		switch {
		case token.TType == efp.TokenTypeFunction && token.TSubType == efp.TokenSubTypeStart:
			sb.WriteString(token.TValue)
			sb.WriteByte('(')
		case token.TSubType == efp.TokenSubTypeStop:
			sb.WriteByte(')')
		case token.TType == efp.TokenTypeSubexpression:
			sb.WriteByte('(')
		case token.TType == efp.TokenTypeOperand && token.TSubType == efp.TokenSubTypeText:
			sb.WriteString(`"` + strings.ReplaceAll(token.TValue, `"`, `""`) + `"`)
		case token.TType == efp.TokenTypeOperatorInfix && token.TSubType == efp.TokenSubTypeIntersection:
			sb.WriteByte(' ')
		default:
			sb.WriteString(token.TValue)
		}
	}
	return sb.String(), true
}

// renameSheetInReference renames the sheet of an unquoted reference such as
// "My Sheet!A1" or "Sheet1:Sheet3!A1" and quotes the sheet part again.
// References into other workbooks are left alone.
func renameSheetInReference(ref, oldName, newName string) (string, bool) {
	i := strings.LastIndex(ref, "!")
	if i < 0 {
		return ref, false
	}
	sheets, cell := ref[:i], ref[i:]
	if strings.HasPrefix(sheets, "[") {
		return ref, false
	}
	names := strings.Split(sheets, ":")
	changed, quote := false, false
	for k, name := range names {
		if name == oldName {
			names[k] = newName
			changed = true
		}
		quote = quote || quoteSheetName(names[k]) != names[k]
	}
	if !changed {
		return ref, false
	}
	joined := strings.Join(names, ":")
	if quote {
		joined = "'" + strings.ReplaceAll(joined, "'", "''") + "'"
	}
	return joined + cell, true
}

// formatNumber renders a stored number the way it is written in the part.
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
