// Copyright 2016 - 2025 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package sheetkit

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"unicode/utf8"

	"github.com/OmniMCP-AI/sheetkit/xmltree"
	"github.com/google/uuid"
)

// MaxFilePathLength is the longest target path SaveAs accepts.
const MaxFilePathLength = 207

// savedPackage is a serialized workbook waiting to be committed.
type savedPackage struct {
	pkg     *Package
	rels    *relationships
	written int
}

// save provides a function to serialize the model into a copy of the
// package. The workbook is left untouched, so a failed save keeps the
// model and the last saved package as they were. Parts the model did not
// change are taken from the package as read.
func (wb *Workbook) save() (*savedPackage, error) {
	if len(wb.sheets) == 0 {
		return nil, ErrNoSheets
	}
	out := &savedPackage{pkg: wb.pkg.Clone(), rels: wb.rels.clone()}
	pkg := out.pkg
	set := func(name string, content []byte) {
		pkg.Set(name, content)
		out.written++
	}
	if wb.styles.IsDirty() || !pkg.Has(wb.stylesPart) {
		set(wb.stylesPart, wb.styles.bytes())
	}
	if len(out.rels.ofType(SourceRelationshipStyles)) == 0 {
		out.rels.add(SourceRelationshipStyles, relativeTarget(wb.part, wb.stylesPart))
	}
	if wb.sst.UniqueCount() > 0 {
		if wb.sst.IsDirty() || !pkg.Has(wb.sstPart) {
			set(wb.sstPart, wb.sst.bytes())
		}
		if len(out.rels.ofType(SourceRelationshipSharedStrings)) == 0 {
			out.rels.add(SourceRelationshipSharedStrings, relativeTarget(wb.part, wb.sstPart))
		}
	} else if !pkg.Has(wb.sstPart) {
		for _, rel := range out.rels.ofType(SourceRelationshipSharedStrings) {
			out.rels.remove(rel.ID)
		}
	}
	for _, ws := range wb.sheets {
		for _, t := range ws.tables {
			if !t.dirty && pkg.Has(t.part) {
				continue
			}
			content, err := t.XML()
			if err != nil {
				return nil, err
			}
			set(t.part, content)
		}
	}
	if err := wb.savePivots(pkg, set); err != nil {
		return nil, err
	}
	for _, ws := range wb.sheets {
		if ws.dirty || !pkg.Has(ws.part) {
			content, err := ws.bytes()
			if err != nil {
				return nil, err
			}
			set(ws.part, content)
		}
		relsPart := relsPathFor(ws.part)
		if ws.rels.len() == 0 {
			pkg.Delete(relsPart)
			continue
		}
		content, err := ws.rels.bytes()
		if err != nil {
			return nil, err
		}
		pkg.Set(relsPart, content)
	}
	set(wb.part, wb.workbookXML())
	content, err := out.rels.bytes()
	if err != nil {
		return nil, err
	}
	pkg.Set(relsPathFor(wb.part), content)
	if err := wb.saveRootParts(pkg); err != nil {
		return nil, err
	}
	if content, err = wb.contentTypesXML(pkg); err != nil {
		return nil, err
	}
	pkg.Set(defaultXMLPathContentTypes, content)
	return out, nil
}

// savePivots writes the pivot cache and pivot table parts with their
// relationships. They are derived from the model and always regenerated.
func (wb *Workbook) savePivots(pkg *Package, set func(string, []byte)) error {
	for _, pc := range wb.pivotCaches {
		def, err := pc.DefinitionXML()
		if err != nil {
			return err
		}
		records, err := pc.RecordsXML()
		if err != nil {
			return err
		}
		set(pc.part, def)
		set(pc.recordsPart, records)
		rels := &relationships{items: []xlsxRelationship{{
			ID: pc.recordsRelID, Type: SourceRelationshipPivotCacheRecords,
			Target: relativeTarget(pc.part, pc.recordsPart),
		}}}
		content, err := rels.bytes()
		if err != nil {
			return err
		}
		pkg.Set(relsPathFor(pc.part), content)
	}
	for _, pt := range wb.pivotTables {
		def, err := pt.DefinitionXML()
		if err != nil {
			return err
		}
		set(pt.part, def)
		rels := &relationships{items: []xlsxRelationship{{
			ID: pt.cacheRelID, Type: SourceRelationshipPivotCache,
			Target: relativeTarget(pt.part, pt.cache.part),
		}}}
		content, err := rels.bytes()
		if err != nil {
			return err
		}
		pkg.Set(relsPathFor(pt.part), content)
	}
	return nil
}

// workbookXML provides a function to serialize the workbook part. The sheet
// list, the pivot cache list and the active tab come from the model, every
// other element is kept as read.
func (wb *Workbook) workbookXML() []byte {
	root := shallowCopy(wb.doc.Root)
	q := qualifier(root)
	r := relationshipPrefix(root)
	sheets := xmltree.NewElement(q("sheets"))
	if existing := root.Child("sheets"); existing != nil {
		sheets = &xmltree.Node{Kind: existing.Kind, Name: existing.Name, Attrs: existing.Attrs}
	}
	for _, ws := range wb.sheets {
		entry := xmltree.NewElement(q("sheet"))
		if ws.entry != nil {
			entry = ws.entry.Clone()
			entry.Children = nil
			attrs := entry.Attrs[:0]
			for _, a := range entry.Attrs {
				if xmltree.LocalName(a.Name) != "id" || xmltree.Prefix(a.Name) == "" {
					attrs = append(attrs, a)
				}
			}
			entry.Attrs = attrs
		}
		entry.SetAttr("name", ws.name)
		entry.SetAttr("sheetId", strconv.Itoa(ws.sheetID))
		entry.SetAttr(r+":id", ws.relID)
		sheets.AppendChild(entry)
	}
	sheets.AppendChild(wb.opaqueSheets...)
	root.SetChild("sheets", sheets, workbookChildOrder)

	caches := append([]*xmltree.Node(nil), wb.loadedCaches...)
	for _, pc := range wb.pivotCaches {
		caches = append(caches, xmltree.NewElement(q("pivotCache"),
			xmltree.Attr{Name: "cacheId", Value: strconv.Itoa(pc.id)},
			xmltree.Attr{Name: r + ":id", Value: pc.relID}))
	}
	var list *xmltree.Node
	if len(caches) > 0 {
		list = xmltree.NewElement(q("pivotCaches")).AppendChild(caches...)
	}
	root.SetChild("pivotCaches", list, workbookChildOrder)

	views := root.Child("bookViews")
	if views == nil && wb.activeTab > 0 {
		views = xmltree.NewElement(q("bookViews")).AppendChild(xmltree.NewElement(q("workbookView")))
	}
	if views != nil {
		views = views.Clone()
		if view := views.Child("workbookView"); view != nil {
			if wb.activeTab > 0 {
				view.SetAttr("activeTab", strconv.Itoa(wb.activeTab))
			} else {
				view.RemoveAttr("activeTab")
			}
		}
		root.SetChild("bookViews", views, workbookChildOrder)
	}
	doc := &xmltree.Document{Prolog: wb.doc.Prolog, Root: root}
	return doc.Bytes()
}

// saveRootParts writes the package relationships and the document
// properties when the package has none.
func (wb *Workbook) saveRootParts(pkg *Package) error {
	if pkg.Has(defaultXMLPathRootRels) {
		return nil
	}
	rels := &relationships{}
	rels.add(SourceRelationshipOfficeDocument, wb.part)
	if !pkg.Has(defaultXMLPathDocPropsCore) {
		pkg.SetText(defaultXMLPathDocPropsCore, templateDocPropsCore)
	}
	rels.add(SourceRelationshipCoreProperties, defaultXMLPathDocPropsCore)
	if !pkg.Has(defaultXMLPathDocPropsApp) {
		pkg.SetText(defaultXMLPathDocPropsApp, templateDocPropsApp)
	}
	rels.add(SourceRelationshipExtendedProperties, defaultXMLPathDocPropsApp)
	content, err := rels.bytes()
	if err != nil {
		return err
	}
	pkg.Set(defaultXMLPathRootRels, content)
	return nil
}

// commit makes a saved package the state of the workbook and clears the
// dirty flags.
func (wb *Workbook) commit(out *savedPackage) {
	wb.pkg, wb.rels = out.pkg, out.rels
	wb.sst.dirty = false
	wb.styles.dirty = false
	for _, ws := range wb.sheets {
		ws.dirty = false
		for _, t := range ws.tables {
			t.dirty = false
		}
	}
	wb.dirty = false
	wb.options.logf("sheetkit: saved %d worksheets, %d parts written, %d parts in package",
		len(wb.sheets), out.written, out.pkg.Len())
}

// WriteToBuffer provides a function to serialize the workbook into a
// buffer.
func (wb *Workbook) WriteToBuffer() (*bytes.Buffer, error) {
	out, err := wb.save()
	if err != nil {
		return nil, err
	}
	buf := new(bytes.Buffer)
	if err := out.pkg.Zip(buf, *wb.options.CompressionLevel); err != nil {
		return nil, err
	}
	wb.commit(out)
	return buf, nil
}

// WriteTo implements io.WriterTo to write the workbook.
func (wb *Workbook) WriteTo(w io.Writer) (int64, error) {
	buf, err := wb.WriteToBuffer()
	if err != nil {
		return 0, err
	}
	return buf.WriteTo(w)
}

// Write provides a function to write the workbook to w.
func (wb *Workbook) Write(w io.Writer) error {
	_, err := wb.WriteTo(w)
	return err
}

// Bytes provides a function to serialize the workbook into memory.
func (wb *Workbook) Bytes() ([]byte, error) {
	buf, err := wb.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SaveAs provides a function to write the workbook to the given path. The
// package is written to a temporary file first and renamed onto the path,
// so an existing file is never left half written.
func (wb *Workbook) SaveAs(name string) error {
	if utf8.RuneCountInString(name) > MaxFilePathLength {
		return ErrMaxFilePathLength
	}
	out, err := wb.save()
	if err != nil {
		return err
	}
	dir := wb.options.TempDir
	if dir == "" {
		dir = filepath.Dir(name)
	}
	tmp := filepath.Join(dir, "."+uuid.New().String()+".tmp")
	file, err := os.OpenFile(filepath.Clean(tmp), os.O_WRONLY|os.O_TRUNC|os.O_CREATE, 0o644)
	if err != nil {
		return err
	}
	if err = out.pkg.Zip(file, *wb.options.CompressionLevel); err == nil {
		err = file.Close()
	} else {
		_ = file.Close()
	}
	if err == nil {
		err = os.Rename(tmp, name)
	}
	if err != nil {
		_ = os.Remove(tmp)
		return err
	}
	wb.commit(out)
	return nil
}
