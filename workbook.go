// Copyright 2016 - 2025 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package sheetkit

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/OmniMCP-AI/sheetkit/xmltree"
	"github.com/tiendc/go-deepcopy"
)

// partKind identifies a family of numbered parts, for example
// xl/worksheets/sheetN.xml.
type partKind int

const (
	partSheet partKind = iota
	partTable
	partPivotCache
	partPivotTable
)

// partPatterns match the numbered parts of each kind.
var partPatterns = map[partKind]*regexp.Regexp{
	partSheet:      regexp.MustCompile(`^xl/worksheets/sheet(\d+)\.xml$`),
	partTable:      regexp.MustCompile(`^xl/tables/table(\d+)\.xml$`),
	partPivotCache: regexp.MustCompile(`^xl/pivotCache/pivotCache(?:Definition|Records)(\d+)\.xml$`),
	partPivotTable: regexp.MustCompile(`^xl/pivotTables/pivotTable(\d+)\.xml$`),
}

// MaxSheetNameLength is the longest sheet name the format allows.
const MaxSheetNameLength = 31

// Workbook is the in-memory model of a spreadsheet package. The parts the
// model does not own are kept in the package as read and written back
// unchanged.
type Workbook struct {
	options *Options
	pkg     *Package
	part    string
	doc     *xmltree.Document
	rels    *relationships

	sheets   []*Worksheet
	sheetMap map[string]*Worksheet
	// opaqueSheets are the sheet entries of the workbook part that are not
	// worksheets, such as chart sheets, kept as read.
	opaqueSheets []*xmltree.Node

	sst         *SharedStringTable
	sstPart     string
	styles      *StyleTable
	stylesPart  string
	pivotCaches []*PivotCache
	pivotTables []*PivotTable
	// loadedCaches are the pivotCache entries of the workbook part as read.
	loadedCaches []*xmltree.Node

	date1904   bool
	activeTab  int
	maxSheetID int
	tableID    int
	cacheID    int
	partSeq    map[partKind]int
	dirty      bool
}

func newWorkbook(opts ...Options) *Workbook {
	options := getOptions(opts...)
	doc, err := xmltree.ParseBytes([]byte(templateWorkbook))
	if err != nil {
		panic(err) // the template is a constant
	}
	return &Workbook{
		options:    options,
		pkg:        NewPackage(),
		part:       defaultXMLPathWorkbook,
		doc:        doc,
		rels:       &relationships{},
		sheetMap:   make(map[string]*Worksheet),
		sst:        newSharedStringTable(),
		sstPart:    defaultXMLPathSharedStrings,
		stylesPart: defaultXMLPathStyles,
		partSeq:    make(map[partKind]int),
		dirty:      true,
	}
}

// NewWorkbook provides a function to create an empty workbook without any
// worksheet.
func NewWorkbook(opts ...Options) *Workbook {
	wb := newWorkbook(opts...)
	wb.styles = newStyleTable(wb.options.FormatCacheSize)
	wb.rels.add(SourceRelationshipStyles, relativeTarget(wb.part, wb.stylesPart))
	return wb
}

// OpenFile provides a function to read a spreadsheet package from a file.
func OpenFile(filename string, opts ...Options) (*Workbook, error) {
	b, err := os.ReadFile(filepath.Clean(filename))
	if err != nil {
		return nil, err
	}
	return OpenBytes(b, opts...)
}

// OpenReader provides a function to read a spreadsheet package from r.
func OpenReader(r io.Reader, opts ...Options) (*Workbook, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return OpenBytes(b, opts...)
}

// OpenBytes provides a function to read a spreadsheet package from memory.
// Optional parts that are missing or malformed load as empty defaults and
// are reported through the logger.
func OpenBytes(b []byte, opts ...Options) (*Workbook, error) {
	pkg, err := ReadPackage(b)
	if err != nil {
		return nil, err
	}
	wb := newWorkbook(opts...)
	wb.pkg = pkg
	wb.dirty = false
	for _, rel := range wb.readRelationships(defaultXMLPathRootRels).ofType(SourceRelationshipOfficeDocument) {
		wb.part = resolveTarget("", rel.Target)
		break
	}
	content, ok := pkg.Get(wb.part)
	if !ok {
		return nil, fmt.Errorf("%w: missing workbook part %s", ErrWorkbookFileFormat, wb.part)
	}
	if wb.doc, err = xmltree.ParseBytes(content); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrWorkbookFileFormat, wb.part, err)
	}
	root := wb.doc.Root
	if v := root.Child("workbookPr").Attr("date1904"); v == "1" || v == "true" {
		wb.date1904 = true
	}
	wb.activeTab, _ = strconv.Atoi(root.Child("bookViews").Child("workbookView").Attr("activeTab"))
	wb.rels = wb.readRelationships(relsPathFor(wb.part))
	wb.loadSharedStrings()
	wb.loadStyles()
	for kind, re := range partPatterns {
		for _, name := range pkg.Paths() {
			if m := re.FindStringSubmatch(name); m != nil {
				n, _ := strconv.Atoi(m[1])
				wb.partSeq[kind] = max(wb.partSeq[kind], n)
			}
		}
	}
	for _, entry := range root.Child("sheets").ChildrenNamed("sheet") {
		wb.loadSheet(entry)
	}
	for _, entry := range root.Child("pivotCaches").ChildrenNamed("pivotCache") {
		wb.loadedCaches = append(wb.loadedCaches, entry)
		if id, err := strconv.Atoi(entry.Attr("cacheId")); err == nil {
			wb.cacheID = max(wb.cacheID, id)
		}
	}
	if wb.activeTab < 0 || wb.activeTab >= len(wb.sheets) {
		wb.activeTab = 0
	}
	return wb, nil
}

func (wb *Workbook) loadSharedStrings() {
	rels := wb.rels.ofType(SourceRelationshipSharedStrings)
	if len(rels) == 0 {
		return
	}
	wb.sstPart = resolveTarget(wb.part, rels[0].Target)
	content, ok := wb.pkg.Get(wb.sstPart)
	if !ok {
		wb.options.logf("sheetkit: shared strings part %s is missing", wb.sstPart)
		return
	}
	sst, err := parseSharedStrings(content)
	if err != nil {
		wb.options.logf("sheetkit: ignoring malformed shared strings %s: %v", wb.sstPart, err)
		return
	}
	wb.sst = sst
}

func (wb *Workbook) loadStyles() {
	if rels := wb.rels.ofType(SourceRelationshipStyles); len(rels) > 0 {
		wb.stylesPart = resolveTarget(wb.part, rels[0].Target)
		if content, ok := wb.pkg.Get(wb.stylesPart); ok {
			st, err := parseStyles(content, wb.options.FormatCacheSize)
			if err == nil {
				wb.styles = st
				return
			}
			wb.options.logf("sheetkit: ignoring malformed styles %s: %v", wb.stylesPart, err)
		}
	} else {
		wb.rels.add(SourceRelationshipStyles, relativeTarget(wb.part, wb.stylesPart))
	}
	wb.styles = newStyleTable(wb.options.FormatCacheSize)
}

// relationshipID returns the value of the r:id attribute of an element
// whatever prefix the relationships namespace is bound to.
func relationshipID(n *xmltree.Node) string {
	for _, a := range n.Attrs {
		if xmltree.LocalName(a.Name) == "id" && xmltree.Prefix(a.Name) != "" && xmltree.Prefix(a.Name) != "xmlns" {
			return a.Value
		}
	}
	return ""
}

// loadSheet reads the worksheet of a sheet entry of the workbook part.
// Entries that are not readable worksheets are kept as read.
func (wb *Workbook) loadSheet(entry *xmltree.Node) {
	id, _ := strconv.Atoi(entry.Attr("sheetId"))
	wb.maxSheetID = max(wb.maxSheetID, id)
	name, relID := entry.Attr("name"), relationshipID(entry)
	rel, ok := wb.rels.get(relID)
	if !ok || !relTypeIs(rel.Type, SourceRelationshipWorkSheet) {
		wb.opaqueSheets = append(wb.opaqueSheets, entry)
		return
	}
	ws := newWorksheet(wb, name)
	ws.sheetID, ws.relID, ws.entry = id, relID, entry
	ws.part = resolveTarget(wb.part, rel.Target)
	content, ok := wb.pkg.Get(ws.part)
	if !ok {
		wb.options.logf("sheetkit: worksheet part %s of %s is missing", ws.part, name)
	} else if err := ws.parse(content); err != nil {
		wb.options.logf("sheetkit: keeping unreadable worksheet %s as is: %v", name, err)
		wb.opaqueSheets = append(wb.opaqueSheets, entry)
		return
	}
	ws.dirty = ws.doc == nil
	ws.rels = wb.readRelationships(relsPathFor(ws.part))
	for _, r := range ws.rels.ofType(SourceRelationshipTable) {
		part := resolveTarget(ws.part, r.Target)
		content, ok := wb.pkg.Get(part)
		if !ok {
			wb.options.logf("sheetkit: dropping dangling table relationship %s of %s", r.ID, name)
			ws.rels.remove(r.ID)
			ws.dirty = true
			continue
		}
		t, err := ws.parseTable(part, r.ID, content)
		if err != nil {
			wb.options.logf("sheetkit: keeping unreadable table %s as is: %v", part, err)
			ws.opaqueTables = append(ws.opaqueTables, r.ID)
			continue
		}
		wb.tableID = max(wb.tableID, t.id)
		ws.tables = append(ws.tables, t)
	}
	wb.sheets = append(wb.sheets, ws)
	wb.sheetMap[name] = ws
}

// allocPartIndex returns the next free number of a part family. Numbers
// are never handed out twice.
func (wb *Workbook) allocPartIndex(kind partKind) int {
	wb.partSeq[kind]++
	return wb.partSeq[kind]
}

// allocTableID returns the next table id of the workbook.
func (wb *Workbook) allocTableID() int {
	for _, t := range wb.Tables() {
		wb.tableID = max(wb.tableID, t.id)
	}
	wb.tableID++
	return wb.tableID
}

// tableByName returns the table of any worksheet with the given name,
// compared without case as the application does.
func (wb *Workbook) tableByName(name string) *Table {
	for _, t := range wb.Tables() {
		if strings.EqualFold(t.name, name) {
			return t
		}
	}
	return nil
}

// Tables returns the tables of every worksheet in sheet order.
func (wb *Workbook) Tables() []*Table {
	var list []*Table
	for _, ws := range wb.sheets {
		list = append(list, ws.tables...)
	}
	return list
}

// Styles returns the style table of the workbook.
func (wb *Workbook) Styles() *StyleTable {
	return wb.styles
}

// SharedStrings returns the shared string table of the workbook.
func (wb *Workbook) SharedStrings() *SharedStringTable {
	return wb.sst
}

// Package returns the package the workbook was loaded from or last saved
// to.
func (wb *Workbook) Package() *Package {
	return wb.pkg
}

// Date1904 reports whether the workbook uses the 1904 date system.
func (wb *Workbook) Date1904() bool {
	return wb.date1904
}

// IsDirty reports whether anything changed since the workbook was loaded
// or saved.
func (wb *Workbook) IsDirty() bool {
	if wb.dirty || wb.sst.IsDirty() || wb.styles.IsDirty() {
		return true
	}
	for _, ws := range wb.sheets {
		if ws.dirty {
			return true
		}
	}
	return false
}

// SheetCount returns the number of worksheets.
func (wb *Workbook) SheetCount() int {
	return len(wb.sheets)
}

// SheetNames returns the names of the worksheets in order.
func (wb *Workbook) SheetNames() []string {
	names := make([]string, len(wb.sheets))
	for i, ws := range wb.sheets {
		names[i] = ws.name
	}
	return names
}

// Sheet provides a function to get a worksheet by name.
func (wb *Workbook) Sheet(name string) (*Worksheet, error) {
	if ws, ok := wb.sheetMap[name]; ok {
		return ws, nil
	}
	return nil, newNoExistSheetError(name)
}

// SheetByIndex provides a function to get a worksheet by its 0-based
// position.
func (wb *Workbook) SheetByIndex(index int) (*Worksheet, error) {
	if index < 0 || index >= len(wb.sheets) {
		return nil, newNoExistSheetError(strconv.Itoa(index))
	}
	return wb.sheets[index], nil
}

func (wb *Workbook) sheetIndex(ws *Worksheet) int {
	for i, s := range wb.sheets {
		if s == ws {
			return i
		}
	}
	return -1
}

// checkSheetName provides a function to check whether a sheet name is
// valid.
func checkSheetName(name string) error {
	if name == "" {
		return ErrSheetNameBlank
	}
	if utf8.RuneCountInString(name) > MaxSheetNameLength {
		return ErrSheetNameLength
	}
	if strings.ContainsAny(name, ":\\/?*[]") || strings.HasPrefix(name, "'") || strings.HasSuffix(name, "'") {
		return ErrSheetNameInvalid
	}
	return nil
}

// AddSheet provides a function to append a new empty worksheet.
func (wb *Workbook) AddSheet(name string) (*Worksheet, error) {
	if err := checkSheetName(name); err != nil {
		return nil, err
	}
	if _, ok := wb.sheetMap[name]; ok {
		return nil, newSheetExistsError(name)
	}
	ws := newWorksheet(wb, name)
	wb.maxSheetID++
	ws.sheetID = wb.maxSheetID
	ws.part = fmt.Sprintf("xl/worksheets/sheet%d.xml", wb.allocPartIndex(partSheet))
	ws.relID = wb.rels.add(SourceRelationshipWorkSheet, relativeTarget(wb.part, ws.part))
	wb.sheets = append(wb.sheets, ws)
	wb.sheetMap[name] = ws
	wb.dirty = true
	return ws, nil
}

// DeleteSheet provides a function to delete a worksheet together with its
// tables and pivot tables. The last worksheet can not be deleted.
func (wb *Workbook) DeleteSheet(name string) error {
	ws, err := wb.Sheet(name)
	if err != nil {
		return err
	}
	if len(wb.sheets) == 1 {
		return ErrLastSheet
	}
	idx := wb.sheetIndex(ws)
	wb.sheets = append(wb.sheets[:idx], wb.sheets[idx+1:]...)
	delete(wb.sheetMap, name)
	wb.rels.remove(ws.relID)
	for _, t := range ws.tables {
		wb.pkg.Delete(t.part)
	}
	for _, r := range ws.rels.ofType(SourceRelationshipPivotTable) {
		part := resolveTarget(ws.part, r.Target)
		wb.pkg.Delete(part)
		wb.pkg.Delete(relsPathFor(part))
	}
	kept := wb.pivotTables[:0]
	for _, pt := range wb.pivotTables {
		if pt.sheet != ws {
			kept = append(kept, pt)
		}
	}
	wb.pivotTables = kept
	wb.pkg.Delete(ws.part)
	wb.pkg.Delete(relsPathFor(ws.part))
	wb.shiftDefinedNames(idx)
	switch {
	case wb.activeTab == idx:
		wb.activeTab = min(idx, len(wb.sheets)-1)
		wb.sheets[wb.activeTab].dirty = true
	case wb.activeTab > idx:
		wb.activeTab--
	}
	wb.dirty = true
	return nil
}

// shiftDefinedNames drops the defined names local to the deleted sheet at
// idx and renumbers those of the sheets after it.
func (wb *Workbook) shiftDefinedNames(idx int) {
	names := wb.doc.Root.Child("definedNames")
	if names == nil {
		return
	}
	kept := names.Children[:0]
	for _, n := range names.Children {
		if n.Is("definedName") {
			if local, err := strconv.Atoi(n.Attr("localSheetId")); err == nil {
				if local == idx {
					continue
				}
				if local > idx {
					n.SetAttr("localSheetId", strconv.Itoa(local-1))
				}
			}
		}
		kept = append(kept, n)
	}
	names.Children = kept
	if len(names.Elements()) == 0 {
		wb.doc.Root.RemoveChildren("definedNames")
	}
}

// RenameSheet provides a function to rename a worksheet. References to the
// sheet in formulas, defined names and pivot cache sources follow the new
// name. The worksheet keeps its dirty state.
func (wb *Workbook) RenameSheet(oldName, newName string) error {
	ws, err := wb.Sheet(oldName)
	if err != nil {
		return err
	}
	if oldName == newName {
		return nil
	}
	if err := checkSheetName(newName); err != nil {
		return err
	}
	if _, ok := wb.sheetMap[newName]; ok {
		return newSheetExistsError(newName)
	}
	delete(wb.sheetMap, oldName)
	ws.name = newName
	wb.sheetMap[newName] = ws
	for _, s := range wb.sheets {
		for _, c := range s.cells {
			if c.formula == "" {
				continue
			}
			if f, ok := renameSheetInFormula(c.formula, oldName, newName); ok {
				c.formula = f
				c.touch()
			}
		}
	}
	for _, n := range wb.doc.Root.Child("definedNames").ChildrenNamed("definedName") {
		if f, ok := renameSheetInFormula(n.TextContent(), oldName, newName); ok {
			n.SetText(f)
		}
	}
	for _, pc := range wb.pivotCaches {
		if pc.sourceSheet == oldName {
			pc.sourceSheet = newName
		}
	}
	wb.renameLoadedCacheSources(oldName, newName)
	wb.dirty = true
	return nil
}

// renameLoadedCacheSources rewrites the worksheet source of the pivot cache
// definitions of the package that point at the renamed sheet.
func (wb *Workbook) renameLoadedCacheSources(oldName, newName string) {
	for _, name := range wb.pkg.PathsWithPrefix("xl/pivotCache/pivotCacheDefinition") {
		content, _ := wb.pkg.Get(name)
		doc, err := xmltree.ParseBytes(content)
		if err != nil {
			continue
		}
		src := doc.Root.Child("cacheSource").Child("worksheetSource")
		if src == nil || src.Attr("sheet") != oldName {
			continue
		}
		src.SetAttr("sheet", newName)
		wb.pkg.Set(name, doc.Bytes())
	}
}

// sheetSnapshot is the copyable state of a worksheet.
type sheetSnapshot struct {
	Cells      []cellSnapshot
	Merged     []RangeAddress
	ColWidths  map[int]float64
	ColAttrs   map[int][]xmltree.Attr
	RowHeights map[int]float64
	RowAttrs   map[int][]xmltree.Attr
	Frozen     *CellAddress
}

type cellSnapshot struct {
	Row, Col    int
	Type        CellType
	Num         float64
	Str         string
	SST         int
	Formula     string
	FormulaType string
	FormulaRef  string
	SharedIndex string
	Style       int
	Text        string
	NumFmt      string
}

func (ws *Worksheet) snapshot() *sheetSnapshot {
	snap := &sheetSnapshot{
		Merged:     ws.merged,
		ColWidths:  ws.colWidths,
		ColAttrs:   ws.colAttrs,
		RowHeights: ws.rowHeights,
		RowAttrs:   ws.rowAttrs,
		Frozen:     ws.frozen,
	}
	for _, c := range ws.Cells() {
		snap.Cells = append(snap.Cells, cellSnapshot{
			Row: c.row, Col: c.col, Type: c.typ, Num: c.num, Str: c.str, SST: c.sst,
			Formula: c.formula, FormulaType: c.formulaType, FormulaRef: c.formulaRef,
			SharedIndex: c.sharedIndex, Style: c.style, Text: c.text, NumFmt: c.numFmt,
		})
	}
	return snap
}

func (ws *Worksheet) restore(snap *sheetSnapshot) {
	for _, s := range snap.Cells {
		ws.cells[ToAddress(s.Row, s.Col)] = &Cell{
			ws: ws, row: s.Row, col: s.Col, typ: s.Type, num: s.Num, str: s.Str, sst: s.SST,
			formula: s.Formula, formulaType: s.FormulaType, formulaRef: s.FormulaRef,
			sharedIndex: s.SharedIndex, style: s.Style, text: s.Text, numFmt: s.NumFmt,
		}
	}
	ws.merged = snap.Merged
	if snap.ColWidths != nil {
		ws.colWidths = snap.ColWidths
	}
	if snap.ColAttrs != nil {
		ws.colAttrs = snap.ColAttrs
	}
	if snap.RowHeights != nil {
		ws.rowHeights = snap.RowHeights
	}
	if snap.RowAttrs != nil {
		ws.rowAttrs = snap.RowAttrs
	}
	ws.frozen = snap.Frozen
	ws.dirty = true
}

// copyStrippedElements are the worksheet children that refer to parts
// through relationships, a copied worksheet goes without them.
var copyStrippedElements = []string{
	"drawing", "legacyDrawing", "legacyDrawingHF", "picture", "oleObjects",
	"controls", "tableParts", "hyperlinks",
}

// CopySheet provides a function to copy a worksheet into a new worksheet
// appended to the workbook. Cells, merged ranges, column and row settings
// and the frozen pane are copied; tables and elements that refer to other
// parts are not.
func (wb *Workbook) CopySheet(src, dst string) (*Worksheet, error) {
	from, err := wb.Sheet(src)
	if err != nil {
		return nil, err
	}
	to, err := wb.AddSheet(dst)
	if err != nil {
		return nil, err
	}
	var snap sheetSnapshot
	if err := deepcopy.Copy(&snap, from.snapshot()); err != nil {
		_ = wb.DeleteSheet(dst)
		return nil, err
	}
	to.restore(&snap)
	if from.doc != nil {
		root := from.doc.Root.Clone()
		for _, name := range copyStrippedElements {
			root.RemoveChildren(name)
		}
		to.doc = &xmltree.Document{Prolog: from.doc.Prolog, Root: root}
	}
	return to, nil
}

// ActiveSheet returns the index of the worksheet selected when the
// workbook opens.
func (wb *Workbook) ActiveSheet() int {
	return wb.activeTab
}

func (wb *Workbook) activeSheet() *Worksheet {
	if wb.activeTab >= 0 && wb.activeTab < len(wb.sheets) {
		return wb.sheets[wb.activeTab]
	}
	return nil
}

// SetActiveSheet provides a function to select the worksheet at the 0-based
// index when the workbook opens.
func (wb *Workbook) SetActiveSheet(index int) error {
	if index < 0 || index >= len(wb.sheets) {
		return newNoExistSheetError(strconv.Itoa(index))
	}
	if prev := wb.activeSheet(); prev != nil {
		prev.dirty = true
	}
	wb.activeTab = index
	wb.sheets[index].dirty = true
	wb.dirty = true
	return nil
}

// PivotCaches returns the pivot caches created in the model.
func (wb *Workbook) PivotCaches() []*PivotCache {
	return append([]*PivotCache(nil), wb.pivotCaches...)
}

// PivotTables returns the pivot tables created in the model.
func (wb *Workbook) PivotTables() []*PivotTable {
	return append([]*PivotTable(nil), wb.pivotTables...)
}

// PivotTable returns the pivot table with the given name, or nil.
func (wb *Workbook) PivotTable(name string) *PivotTable {
	for _, pt := range wb.pivotTables {
		if pt.name == name {
			return pt
		}
	}
	return nil
}

// registerCache gives a pivot cache its id and parts in the workbook.
func (wb *Workbook) registerCache(pc *PivotCache) {
	pc.wb = wb
	wb.cacheID++
	pc.id = wb.cacheID
	pc.index = wb.allocPartIndex(partPivotCache)
	pc.part = fmt.Sprintf("xl/pivotCache/pivotCacheDefinition%d.xml", pc.index)
	pc.recordsPart = fmt.Sprintf("xl/pivotCache/pivotCacheRecords%d.xml", pc.index)
	pc.recordsRelID = "rId1"
	pc.relID = wb.rels.add(SourceRelationshipPivotCache, relativeTarget(wb.part, pc.part))
	wb.pivotCaches = append(wb.pivotCaches, pc)
	wb.dirty = true
}

// CreatePivotTable provides a function to create a pivot table. The source
// range is read from its worksheet into a new pivot cache unless the
// options carry a cache to share, the target worksheet is created when it
// does not exist.
func (wb *Workbook) CreatePivotTable(opts PivotTableOptions) (*PivotTable, error) {
	targetSheet, target, err := parseSheetReference(opts.Target)
	if err != nil {
		return nil, err
	}
	pc := opts.Cache
	if pc == nil {
		sourceSheet, source, err := parseSheetReference(opts.Source)
		if err != nil {
			return nil, err
		}
		src, err := wb.Sheet(sourceSheet)
		if err != nil {
			return nil, err
		}
		pc = &PivotCache{sourceSheet: sourceSheet, sourceRef: source, refreshOnLoad: true, date1904: wb.date1904}
		headers, rows := src.sourceData(source)
		pc.BuildFromData(headers, rows)
	}
	if opts.RefreshOnLoad != nil {
		pc.refreshOnLoad = *opts.RefreshOnLoad
	}
	name := opts.Name
	if name == "" {
		name = fmt.Sprintf("PivotTable%d", wb.partSeq[partPivotTable]+1)
	}
	if wb.PivotTable(name) != nil {
		return nil, newPivotTableExistsError(name)
	}
	ws, ok := wb.sheetMap[targetSheet]
	if !ok {
		if ws, err = wb.AddSheet(targetSheet); err != nil {
			return nil, err
		}
	}
	if pc.wb != wb {
		wb.registerCache(pc)
	}
	n := wb.allocPartIndex(partPivotTable)
	pt := &PivotTable{
		wb:             wb,
		name:           name,
		index:          n - 1,
		cache:          pc,
		sheet:          ws,
		location:       target.Start,
		style:          opts.Style,
		rowGrandTotals: opts.RowGrandTotals == nil || *opts.RowGrandTotals,
		colGrandTotals: opts.ColGrandTotals == nil || *opts.ColGrandTotals,
		part:           fmt.Sprintf("xl/pivotTables/pivotTable%d.xml", n),
		cacheRelID:     "rId1",
	}
	if pt.style == "" {
		pt.style = "PivotStyleLight16"
	}
	pt.relID = ws.rels.add(SourceRelationshipPivotTable, relativeTarget(ws.part, pt.part))
	wb.pivotTables = append(wb.pivotTables, pt)
	wb.dirty = true
	return pt, nil
}
