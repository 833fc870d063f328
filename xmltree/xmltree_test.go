// Copyright 2016 - 2025 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package xmltree

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const worksheetSource = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:x14ac="http://schemas.microsoft.com/office/spreadsheetml/2009/9/ac"><dimension ref="A1"/><sheetData><row r="1" x14ac:dyDescent="0.25"><c r="A1" t="s"><v>0</v></c></row></sheetData><conditionalFormatting sqref="A1"><cfRule type="cellIs" dxfId="0" priority="1" operator="greaterThan"><formula>5</formula></cfRule></conditionalFormatting><drawing r:id="rId1"/></worksheet>`

func TestParseRoundTrip(t *testing.T) {
	doc, err := ParseBytes([]byte(worksheetSource))
	require.NoError(t, err)
	assert.Equal(t, "worksheet", doc.Root.Name)
	assert.Equal(t, worksheetSource, string(doc.Bytes()))

	row := doc.Root.Child("sheetData").Child("row")
	require.NotNil(t, row)
	assert.Equal(t, "0.25", row.Attr("x14ac:dyDescent"))
	assert.Equal(t, "0.25", row.Attr("dyDescent"))
	assert.Equal(t, "rId1", doc.Root.Child("drawing").Attr("r:id"))
	assert.Equal(t, "0", row.Child("c").Child("v").TextContent())
}

func TestParsePrefixedElements(t *testing.T) {
	doc, err := ParseBytes([]byte(`<x:sst xmlns:x="urn:main"><x:si><x:t xml:space="preserve"> a </x:t></x:si></x:sst>`))
	require.NoError(t, err)
	si := doc.Root.Child("si")
	require.NotNil(t, si)
	assert.Equal(t, "x:si", si.Name)
	assert.Equal(t, " a ", si.TextContent())
	assert.Equal(t, "preserve", si.Child("t").Attr("xml:space"))
}

func TestParseErrors(t *testing.T) {
	_, err := ParseBytes([]byte(""))
	assert.Error(t, err)
	_, err = ParseBytes([]byte("<a><b></a>"))
	assert.Error(t, err)
}

func TestSetChildOrder(t *testing.T) {
	order := []string{"sheetViews", "cols", "sheetData", "mergeCells", "pageMargins", "tableParts"}
	root := NewElement("worksheet")
	root.AppendElement("sheetData")
	root.AppendElement("pageMargins")
	root.AppendElement("unknownThing")

	root.SetChild("mergeCells", NewElement("mergeCells"), order)
	root.SetChild("cols", NewElement("cols"), order)
	root.SetChild("tableParts", NewElement("tableParts"), order)

	var names []string
	for _, c := range root.Elements() {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"cols", "sheetData", "mergeCells", "pageMargins", "unknownThing", "tableParts"}, names)

	replacement := NewElement("cols", Attr{Name: "x", Value: "1"})
	root.SetChild("cols", replacement, order)
	assert.Equal(t, "1", root.Child("cols").Attr("x"))
	root.SetChild("mergeCells", nil, order)
	assert.Nil(t, root.Child("mergeCells"))
}

func TestEscaping(t *testing.T) {
	el := NewElement("t", Attr{Name: "v", Value: "a\"<b>&\n"})
	el.SetText("x < y & z")
	assert.Equal(t, `<t v="a&quot;&lt;b&gt;&amp;&#xA;">x &lt; y &amp; z</t>`, el.String())

	doc, err := ParseBytes([]byte(el.String()))
	require.NoError(t, err)
	assert.Equal(t, "a\"<b>&\n", doc.Root.Attr("v"))
	assert.Equal(t, "x < y & z", doc.Root.TextContent())
}

func TestEscapingInvalidCharacters(t *testing.T) {
	el := NewElement("t", Attr{Name: "v", Value: "a\x00b\tc"})
	el.SetText("a\x01b\x1f\uffff\xffc\td")
	assert.Equal(t, "<t v=\"a\uFFFDb&#x9;c\">a\uFFFDb\uFFFD\uFFFD\uFFFDc\td</t>", el.String())

	doc, err := ParseBytes([]byte(el.String()))
	require.NoError(t, err)
	assert.Equal(t, "a\uFFFDb\tc", doc.Root.Attr("v"))
	assert.Equal(t, "a\uFFFDb\uFFFD\uFFFD\uFFFDc\td", doc.Root.TextContent())
}

func TestCloneAndAttrs(t *testing.T) {
	el := NewElement("c", Attr{Name: "r", Value: "A1"})
	el.AppendElement("v").SetText("1")
	clone := el.Clone()
	clone.SetAttr("r", "B2").SetAttr("s", "3")
	clone.Child("v").SetText("2")
	assert.Equal(t, "A1", el.Attr("r"))
	assert.Equal(t, "1", el.Child("v").TextContent())
	assert.Equal(t, "3", clone.Attr("s"))
	clone.RemoveAttr("s")
	_, ok := clone.LookupAttr("s")
	assert.False(t, ok)
	assert.Equal(t, 1, clone.RemoveChildren("v"))
	assert.Empty(t, clone.Children)
}

func TestCharsetDeclaration(t *testing.T) {
	src := "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?><a>caf\xe9</a>"
	doc, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, "café", doc.Root.TextContent())
}
