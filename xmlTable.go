// Copyright 2016 - 2025 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package sheetkit

import "encoding/xml"

// xlsxTable directly maps the table element. A table is a grouping of
// contiguous cells in a worksheet that have a name, a header row and
// optionally a total row, an auto filter and a table style.
type xlsxTable struct {
	XMLName        xml.Name            `xml:"http://schemas.openxmlformats.org/spreadsheetml/2006/main table"`
	ID             int                 `xml:"id,attr"`
	Name           string              `xml:"name,attr"`
	DisplayName    string              `xml:"displayName,attr"`
	Ref            string              `xml:"ref,attr"`
	HeaderRowCount string              `xml:"headerRowCount,attr,omitempty"`
	TotalsRowCount int                 `xml:"totalsRowCount,attr,omitempty"`
	TotalsRowShown string              `xml:"totalsRowShown,attr,omitempty"`
	Attrs          []xml.Attr          `xml:",any,attr"`
	AutoFilter     *xlsxAutoFilter     `xml:"autoFilter"`
	SortState      *xlsxRawElement     `xml:"sortState"`
	TableColumns   xlsxTableColumns    `xml:"tableColumns"`
	TableStyleInfo *xlsxTableStyleInfo `xml:"tableStyleInfo"`
	ExtLst         *xlsxRawElement     `xml:"extLst"`
}

// xlsxAutoFilter directly maps the autoFilter element, the filter columns
// of a loaded table are kept as read.
type xlsxAutoFilter struct {
	Ref   string     `xml:"ref,attr"`
	Attrs []xml.Attr `xml:",any,attr"`
	Inner string     `xml:",innerxml"`
}

// xlsxTableColumns directly maps the element representing the collection of
// all table columns for this table.
type xlsxTableColumns struct {
	Count       int               `xml:"count,attr"`
	TableColumn []xlsxTableColumn `xml:"tableColumn"`
}

// xlsxTableColumn directly maps the element representing a single column
// for this table. The children of a loaded column, such as a calculated
// column formula, are kept as read.
type xlsxTableColumn struct {
	ID                int        `xml:"id,attr"`
	Name              string     `xml:"name,attr"`
	TotalsRowFunction string     `xml:"totalsRowFunction,attr,omitempty"`
	TotalsRowLabel    string     `xml:"totalsRowLabel,attr,omitempty"`
	DataDxfID         string     `xml:"dataDxfId,attr,omitempty"`
	Attrs             []xml.Attr `xml:",any,attr"`
	Inner             string     `xml:",innerxml"`
}

// xlsxTableStyleInfo directly maps the tableStyleInfo element. The boolean
// banding flags are written as 1 or 0.
type xlsxTableStyleInfo struct {
	Name              string `xml:"name,attr,omitempty"`
	ShowFirstColumn   int    `xml:"showFirstColumn,attr"`
	ShowLastColumn    int    `xml:"showLastColumn,attr"`
	ShowRowStripes    int    `xml:"showRowStripes,attr"`
	ShowColumnStripes int    `xml:"showColumnStripes,attr"`
}

// xlsxRawElement holds the attributes and the raw content of an element
// the model does not interpret.
type xlsxRawElement struct {
	Attrs   []xml.Attr `xml:",any,attr"`
	Content string     `xml:",innerxml"`
}

// xmlNamespaceURL is the namespace bound to the reserved xml prefix.
const xmlNamespaceURL = "http://www.w3.org/XML/1998/namespace"

// namespacePrefixes returns the prefixes declared by the attributes of a
// decoded element keyed by namespace.
func namespacePrefixes(attrs []xml.Attr) map[string]string {
	prefixes := map[string]string{xmlNamespaceURL: "xml"}
	for _, a := range attrs {
		if a.Name.Space == "xmlns" {
			prefixes[a.Value] = a.Name.Local
		}
	}
	return prefixes
}

// qualifyAttrs provides a function to give decoded attributes back the
// prefixed names they were read with, namespace declarations included. The
// default namespace declaration is dropped, the element name writes it.
func qualifyAttrs(attrs []xml.Attr, prefixes map[string]string) []xml.Attr {
	var qualified []xml.Attr
	for _, a := range attrs {
		switch {
		case a.Name.Space == "" && a.Name.Local == "xmlns":
			continue
		case a.Name.Space == "xmlns":
			a.Name = xml.Name{Local: "xmlns:" + a.Name.Local}
		case a.Name.Space != "":
			if prefix, ok := prefixes[a.Name.Space]; ok {
				a.Name = xml.Name{Local: prefix + ":" + a.Name.Local}
			}
		}
		qualified = append(qualified, a)
	}
	return qualified
}
