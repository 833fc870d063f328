// Copyright 2016 - 2025 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package sheetkit

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidAddress defined the error message on receive an unparseable
	// cell address.
	ErrInvalidAddress = errors.New("invalid address")
	// ErrInvalidRange defined the error message on receive an unparseable
	// range reference.
	ErrInvalidRange = errors.New("invalid range")
	// ErrInvalidReference defined the error message on receive a sheet
	// qualified reference without the "!" separator.
	ErrInvalidReference = errors.New("invalid reference format")
	// ErrSheetNotExist defined the error message on receive an unknown sheet
	// name or index.
	ErrSheetNotExist = errors.New("sheet does not exist")
	// ErrSheetExists defined the error message on add or rename a sheet with
	// a name already in use.
	ErrSheetExists = errors.New("sheet already exists")
	// ErrSheetNameBlank defined the error message on receive a blank sheet
	// name.
	ErrSheetNameBlank = errors.New("the sheet name can not be blank")
	// ErrLastSheet defined the error message on delete the only remaining
	// sheet of a workbook.
	ErrLastSheet = errors.New("cannot delete the last sheet")
	// ErrNoSheets defined the error message on save a workbook without any
	// worksheet.
	ErrNoSheets = errors.New("workbook has no sheets")
	// ErrInvalidTableName defined the error message on receive an invalid
	// table name.
	ErrInvalidTableName = errors.New("invalid table name")
	// ErrTableExists defined the error message on create a table with a name
	// used anywhere in the workbook.
	ErrTableExists = errors.New("table already exists")
	// ErrTotalRowDisabled defined the error message on set a total function
	// of a table without a total row.
	ErrTotalRowDisabled = errors.New("total row is not enabled")
	// ErrColumnNotExist defined the error message on receive an unknown table
	// column name.
	ErrColumnNotExist = errors.New("column does not exist")
	// ErrFieldNotFound defined the error message on receive a pivot field
	// name that the pivot cache does not carry.
	ErrFieldNotFound = errors.New("field not found")
	// ErrFieldNotOnAxis defined the error message on sort or filter a pivot
	// field that is not assigned to a compatible axis.
	ErrFieldNotOnAxis = errors.New("field is not assigned to a compatible axis")
	// ErrFilterConflict defined the error message on supply both include and
	// exclude values for one pivot field filter.
	ErrFilterConflict = errors.New("cannot specify both include and exclude")
	// ErrPivotTableExists defined the error message on create a pivot table
	// with a name already in use.
	ErrPivotTableExists = errors.New("pivot table already exists")
	// ErrInvalidColumnWidth defined the error message on receive a
	// non-positive column width.
	ErrInvalidColumnWidth = errors.New("column width must be positive")
	// ErrInvalidRowHeight defined the error message on receive a non-positive
	// row height.
	ErrInvalidRowHeight = errors.New("row height must be positive")
	// ErrInvalidFreezePane defined the error message on receive a negative
	// frozen pane split.
	ErrInvalidFreezePane = errors.New("frozen pane split must not be negative")
	// ErrMergeOverlap defined the error message on merge a range that
	// overlaps an existing merged range.
	ErrMergeOverlap = errors.New("merged range overlaps an existing merged range")
	// ErrWorkbookEncrypted defined the error message on open an encrypted
	// or legacy compound file workbook.
	ErrWorkbookEncrypted = errors.New("workbook is encrypted or not an office open xml package")
	// ErrWorkbookFileFormat defined the error message on receive input that
	// is not a zip package.
	ErrWorkbookFileFormat = errors.New("unsupported workbook file format")
	// ErrAggregation defined the error message on receive an unknown value
	// field aggregation.
	ErrAggregation = errors.New("unsupported aggregation")
	// ErrSortOrder defined the error message on receive a pivot field sort
	// order other than ascending or descending.
	ErrSortOrder = errors.New("sort order must be ascending or descending")
	// ErrSheetNameInvalid defined the error message on receive a sheet name
	// with characters that are not allowed in sheet names.
	ErrSheetNameInvalid = errors.New("the sheet can not contain any of the characters :\\/?*[or]")
	// ErrSheetNameLength defined the error message on receive a sheet name
	// longer than 31 characters.
	ErrSheetNameLength = errors.New("the sheet name length exceeds the 31 characters limit")
	// ErrTotalFunction defined the error message on receive an unknown table
	// total function.
	ErrTotalFunction = errors.New("unsupported total function")
	// ErrMaxFilePathLength defined the error message on receive the file path
	// length overflow.
	ErrMaxFilePathLength = errors.New("file path length exceeds maximum limit")
)

// newInvalidAddressError defined the error message on receive the invalid
// cell address.
func newInvalidAddressError(addr string) error {
	return fmt.Errorf("%w %q", ErrInvalidAddress, addr)
}

// newInvalidRangeError defined the error message on receive the invalid
// range reference.
func newInvalidRangeError(ref string) error {
	return fmt.Errorf("%w %q", ErrInvalidRange, ref)
}

// newInvalidReferenceError defined the error message on receive a sheet
// reference without separator.
func newInvalidReferenceError(ref string) error {
	return fmt.Errorf("%w: %q, expected SheetName!Range", ErrInvalidReference, ref)
}

// newNoExistSheetError defined the error message on receive the not exist
// sheet name.
func newNoExistSheetError(name string) error {
	return fmt.Errorf("%w: %s", ErrSheetNotExist, name)
}

// newSheetExistsError defined the error message on receive a duplicate
// sheet name.
func newSheetExistsError(name string) error {
	return fmt.Errorf("%w: %s", ErrSheetExists, name)
}

// newInvalidTableNameError defined the error message on receive the invalid
// table name.
func newInvalidTableNameError(name string) error {
	return fmt.Errorf("%w %q", ErrInvalidTableName, name)
}

// newTableExistsError defined the error message on receive a duplicate table
// name.
func newTableExistsError(name string) error {
	return fmt.Errorf("%w: %s", ErrTableExists, name)
}

// newColumnNotExistError defined the error message on receive an unknown
// table column.
func newColumnNotExistError(name string) error {
	return fmt.Errorf("%w: %s", ErrColumnNotExist, name)
}

// newFieldNotFoundError defined the error message on receive an unknown
// pivot field.
func newFieldNotFoundError(name string) error {
	return fmt.Errorf("%w: %s", ErrFieldNotFound, name)
}

// newFieldNotOnAxisError defined the error message on sort or filter a field
// outside of its allowed axes.
func newFieldNotOnAxisError(name string) error {
	return fmt.Errorf("%w: %s", ErrFieldNotOnAxis, name)
}

// newPivotTableExistsError defined the error message on receive a duplicate
// pivot table name.
func newPivotTableExistsError(name string) error {
	return fmt.Errorf("%w: %s", ErrPivotTableExists, name)
}
