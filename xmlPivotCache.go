// Copyright 2016 - 2025 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package sheetkit

import "encoding/xml"

// xlsxPivotCacheDefinition represents the pivotCacheDefinition part. This
// part defines each field in the source data, including the name, the
// string resources of the instance data (for shared items), and information
// about the type of data that appears in the field.
type xlsxPivotCacheDefinition struct {
	XMLName               xml.Name        `xml:"http://schemas.openxmlformats.org/spreadsheetml/2006/main pivotCacheDefinition"`
	XMLNSR                string          `xml:"xmlns:r,attr,omitempty"`
	RID                   string          `xml:"r:id,attr,omitempty"`
	RefreshOnLoad         string          `xml:"refreshOnLoad,attr,omitempty"`
	CreatedVersion        int             `xml:"createdVersion,attr"`
	RefreshedVersion      int             `xml:"refreshedVersion,attr"`
	MinRefreshableVersion int             `xml:"minRefreshableVersion,attr"`
	RecordCount           int             `xml:"recordCount,attr"`
	CacheSource           xlsxCacheSource `xml:"cacheSource"`
	CacheFields           xlsxCacheFields `xml:"cacheFields"`
}

// xlsxCacheSource represents the description of data source whose data is
// stored in the pivot cache.
type xlsxCacheSource struct {
	Type            string               `xml:"type,attr"`
	WorksheetSource *xlsxWorksheetSource `xml:"worksheetSource"`
}

// xlsxWorksheetSource represents the location of the source of the data
// that is stored in the cache.
type xlsxWorksheetSource struct {
	Ref   string `xml:"ref,attr,omitempty"`
	Sheet string `xml:"sheet,attr,omitempty"`
}

// xlsxCacheFields represents the collection of field definitions in the
// source data.
type xlsxCacheFields struct {
	Count      int              `xml:"count,attr"`
	CacheField []xlsxCacheField `xml:"cacheField"`
}

// xlsxCacheField represent a single field in the pivot cache.
type xlsxCacheField struct {
	Name        string           `xml:"name,attr"`
	NumFmtID    int              `xml:"numFmtId,attr"`
	SharedItems *xlsxSharedItems `xml:"sharedItems"`
}

// xlsxSharedItems represents the collection of unique items for a field in
// the pivot cache. Attributes left empty take the default of the format.
type xlsxSharedItems struct {
	ContainsSemiMixedTypes string          `xml:"containsSemiMixedTypes,attr,omitempty"`
	ContainsNonDate        string          `xml:"containsNonDate,attr,omitempty"`
	ContainsDate           string          `xml:"containsDate,attr,omitempty"`
	ContainsString         string          `xml:"containsString,attr,omitempty"`
	ContainsBlank          string          `xml:"containsBlank,attr,omitempty"`
	ContainsMixedTypes     string          `xml:"containsMixedTypes,attr,omitempty"`
	ContainsNumber         string          `xml:"containsNumber,attr,omitempty"`
	ContainsInteger        string          `xml:"containsInteger,attr,omitempty"`
	MinValue               string          `xml:"minValue,attr,omitempty"`
	MaxValue               string          `xml:"maxValue,attr,omitempty"`
	MinDate                string          `xml:"minDate,attr,omitempty"`
	MaxDate                string          `xml:"maxDate,attr,omitempty"`
	Count                  string          `xml:"count,attr,omitempty"`
	Items                  []xlsxCacheItem `xml:",any"`
}

// xlsxCacheItem is one typed value of the cache: s (text), n (number),
// b (boolean), d (date), e (error) and m (missing) are the shared item and
// record value kinds, x is an index into the shared items of the field.
type xlsxCacheItem struct {
	XMLName xml.Name
	V       string `xml:"v,attr,omitempty"`
}

// xlsxPivotCacheRecords represents the pivotCacheRecords part. This part
// contains the underlying data of the pivot cache.
type xlsxPivotCacheRecords struct {
	XMLName xml.Name               `xml:"http://schemas.openxmlformats.org/spreadsheetml/2006/main pivotCacheRecords"`
	Count   int                    `xml:"count,attr"`
	R       []xlsxPivotCacheRecord `xml:"r"`
}

// xlsxPivotCacheRecord represents one record of the pivot cache records.
type xlsxPivotCacheRecord struct {
	Items []xlsxCacheItem `xml:",any"`
}
