// Copyright 2016 - 2025 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package sheetkit

import (
	"archive/zip"
	"bytes"
	"compress/flate"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"

	"github.com/richardlehane/mscfb"
)

// oleIdentifier is the signature of a compound file binary container, the
// wrapper of encrypted packages and of legacy binary workbooks.
var oleIdentifier = []byte{0xd0, 0xcf, 0x11, 0xe0, 0xa1, 0xb1, 0x1a, 0xe1}

// Package directly maps the parts of a zip package as a map of part path to
// content. Entry order of a loaded archive is kept so that saving writes
// the parts in the order they were read, new parts are appended.
type Package struct {
	files map[string][]byte
	order []string
}

// NewPackage returns an empty package.
func NewPackage() *Package {
	return &Package{files: make(map[string][]byte)}
}

// ReadPackage provides a function to unzip the given bytes into a package.
func ReadPackage(b []byte) (*Package, error) {
	if bytes.HasPrefix(b, oleIdentifier) {
		return nil, inspectCompoundFile(b)
	}
	zr, err := zip.NewReader(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWorkbookFileFormat, err)
	}
	p := NewPackage()
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		content, err := readZipFile(f)
		if err != nil {
			return nil, err
		}
		p.Set(f.Name, content)
	}
	return p, nil
}

// inspectCompoundFile tells encrypted packages apart from other compound
// files, neither of them can be opened.
func inspectCompoundFile(b []byte) error {
	doc, err := mscfb.New(bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWorkbookFileFormat, err)
	}
	for entry, err := doc.Next(); err == nil; entry, err = doc.Next() {
		switch entry.Name {
		case "EncryptionInfo", "EncryptedPackage":
			return ErrWorkbookEncrypted
		}
	}
	return ErrWorkbookFileFormat
}

func readZipFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, rc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// cleanPartName turns a part name into the key used in the map: no leading
// slash, forward slashes and no dot segments.
func cleanPartName(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	return strings.TrimPrefix(path.Clean("/"+name), "/")
}

// Get returns the content of a part.
func (p *Package) Get(name string) ([]byte, bool) {
	b, ok := p.files[cleanPartName(name)]
	return b, ok
}

// Text returns the content of a part as a string.
func (p *Package) Text(name string) (string, bool) {
	b, ok := p.Get(name)
	return string(b), ok
}

// Has reports whether the package contains the part.
func (p *Package) Has(name string) bool {
	_, ok := p.files[cleanPartName(name)]
	return ok
}

// Set stores the content of a part.
func (p *Package) Set(name string, content []byte) {
	name = cleanPartName(name)
	if _, ok := p.files[name]; !ok {
		p.order = append(p.order, name)
	}
	p.files[name] = content
}

// SetText stores the content of a part from a string.
func (p *Package) SetText(name, content string) {
	p.Set(name, []byte(content))
}

// Delete removes a part.
func (p *Package) Delete(name string) {
	name = cleanPartName(name)
	if _, ok := p.files[name]; !ok {
		return
	}
	delete(p.files, name)
	if i := inStrSlice(p.order, name); i >= 0 {
		p.order = append(p.order[:i], p.order[i+1:]...)
	}
}

// Paths returns the part names in package order.
func (p *Package) Paths() []string {
	return append([]string(nil), p.order...)
}

// PathsWithPrefix returns the sorted part names under the given directory.
func (p *Package) PathsWithPrefix(prefix string) []string {
	var list []string
	for _, name := range p.order {
		if strings.HasPrefix(name, prefix) {
			list = append(list, name)
		}
	}
	sort.Strings(list)
	return list
}

// Len returns the number of parts.
func (p *Package) Len() int {
	return len(p.files)
}

// Zip provides a function to write the package as a zip archive into w with
// the given deflate level.
func (p *Package) Zip(w io.Writer, level int) error {
	zw := zip.NewWriter(w)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, level)
	})
	for _, name := range p.zipOrder() {
		fi, err := zw.Create(name)
		if err != nil {
			_ = zw.Close()
			return err
		}
		if _, err = fi.Write(p.files[name]); err != nil {
			_ = zw.Close()
			return err
		}
	}
	return zw.Close()
}

// zipOrder puts the content types manifest first, as readers that stream
// the archive expect, and keeps the rest in package order.
func (p *Package) zipOrder() []string {
	list := make([]string, 0, len(p.order))
	if _, ok := p.files[defaultXMLPathContentTypes]; ok {
		list = append(list, defaultXMLPathContentTypes)
	}
	for _, name := range p.order {
		if name != defaultXMLPathContentTypes {
			list = append(list, name)
		}
	}
	return list
}

// Bytes zips the package into memory.
func (p *Package) Bytes(level int) ([]byte, error) {
	var buf bytes.Buffer
	if err := p.Zip(&buf, level); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Clone returns a package with the same parts. Part contents are shared,
// they are replaced and never modified in place.
func (p *Package) Clone() *Package {
	c := &Package{files: make(map[string][]byte, len(p.files)), order: append([]string(nil), p.order...)}
	for name, content := range p.files {
		c.files[name] = content
	}
	return c
}
