// Copyright 2016 - 2025 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package sheetkit

import (
	"compress/flate"
	"log"
)

const defaultFormatCacheSize = 128

// Options define the options for open and save a workbook.
//
// Logger receives diagnostics about parts that could not be understood on
// load (they degrade to defaults) and a summary line on every save. A nil
// Logger disables the output.
//
// CompressionLevel specifies the deflate level used when writing the
// package, it accepts the compress/flate levels flate.NoCompression
// included. A nil level uses flate.DefaultCompression.
//
// TempDir specifies the directory of the temporary file written by SaveAs
// before it is renamed onto the target path. The directory of the target
// path is used when it is empty.
//
// FormatCacheSize specifies the capacity of the cache that remembers which
// number format codes describe dates.
type Options struct {
	Logger           *log.Logger
	CompressionLevel *int
	TempDir          string
	FormatCacheSize  int
}

// getOptions provides a function to merge the given options into the
// defaults, the last one wins.
func getOptions(opts ...Options) *Options {
	options := &Options{
		CompressionLevel: intPtr(flate.DefaultCompression),
		FormatCacheSize:  defaultFormatCacheSize,
	}
	for _, opt := range opts {
		if opt.Logger != nil {
			options.Logger = opt.Logger
		}
		if opt.CompressionLevel != nil {
			options.CompressionLevel = intPtr(*opt.CompressionLevel)
		}
		if opt.TempDir != "" {
			options.TempDir = opt.TempDir
		}
		if opt.FormatCacheSize > 0 {
			options.FormatCacheSize = opt.FormatCacheSize
		}
	}
	return options
}

// logf writes a diagnostic line through the configured logger.
func (o *Options) logf(format string, args ...interface{}) {
	if o == nil || o.Logger == nil {
		return
	}
	o.Logger.Printf(format, args...)
}

// intPtr returns a pointer to a copy of i.
func intPtr(i int) *int {
	return &i
}
