// Copyright 2016 - 2025 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package sheetkit

import (
	"bytes"
	"encoding/xml"
	"strings"

	"golang.org/x/net/html/charset"
)

// readContentTypes provides a function to read the content types manifest
// of the package, a missing or malformed manifest reads as empty.
func (wb *Workbook) readContentTypes(pkg *Package) *xlsxTypes {
	types := &xlsxTypes{}
	content, ok := pkg.Get(defaultXMLPathContentTypes)
	if !ok {
		return types
	}
	dec := xml.NewDecoder(bytes.NewReader(content))
	dec.CharsetReader = charset.NewReaderLabel
	if err := dec.Decode(types); err != nil {
		wb.options.logf("sheetkit: rebuilding malformed content types: %v", err)
		return &xlsxTypes{}
	}
	return types
}

// managedContentTypes returns the content type of every part the model
// writes, keyed by part name.
func (wb *Workbook) managedContentTypes() map[string]string {
	managed := map[string]string{
		wb.part:                    ContentTypeSheetML,
		wb.stylesPart:              ContentTypeStyles,
		defaultXMLPathDocPropsApp:  ContentTypeExtendedProps,
		defaultXMLPathDocPropsCore: ContentTypeCoreProps,
		wb.sstPart:                 ContentTypeSharedStrings,
	}
	for _, ws := range wb.sheets {
		managed[ws.part] = ContentTypeWorksheet
		for _, t := range ws.tables {
			managed[t.part] = ContentTypeTable
		}
	}
	for _, pc := range wb.pivotCaches {
		managed[pc.part] = ContentTypePivotCache
		managed[pc.recordsPart] = ContentTypePivotRecords
	}
	for _, pt := range wb.pivotTables {
		managed[pt.part] = ContentTypePivotTable
	}
	return managed
}

// contentTypesXML provides a function to build the content types manifest
// of pkg. Defaults and the overrides of parts still in the package are kept
// as read, a loaded override wins over the managed type so macro enabled
// workbooks stay macro enabled. Managed parts without an override get one.
func (wb *Workbook) contentTypesXML(pkg *Package) ([]byte, error) {
	loaded := wb.readContentTypes(pkg)
	types := xlsxTypes{Defaults: loaded.Defaults}
	hasDefault := func(ext string) bool {
		for _, d := range types.Defaults {
			if strings.EqualFold(d.Extension, ext) {
				return true
			}
		}
		return false
	}
	for _, d := range []xlsxDefault{
		{Extension: "rels", ContentType: ContentTypeRelationships},
		{Extension: "xml", ContentType: ContentTypeXML},
	} {
		if !hasDefault(d.Extension) {
			types.Defaults = append(types.Defaults, d)
		}
	}
	seen := make(map[string]bool)
	for _, o := range loaded.Overrides {
		name := strings.TrimPrefix(o.PartName, "/")
		if !pkg.Has(name) || seen[name] {
			continue
		}
		seen[name] = true
		types.Overrides = append(types.Overrides, o)
	}
	managed := wb.managedContentTypes()
	for _, name := range pkg.Paths() {
		contentType, ok := managed[name]
		if !ok || seen[name] {
			continue
		}
		seen[name] = true
		types.Overrides = append(types.Overrides, xlsxOverride{PartName: "/" + name, ContentType: contentType})
	}
	return marshalPart(types)
}
