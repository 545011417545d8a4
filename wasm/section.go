// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wasm

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"io/ioutil"

	"github.com/willf/bitset"

	"github.com/wasmlab/emshim/wasm/leb128"
)

// Section is a generic WASM section interface.
type Section interface {
	// SectionID returns a section ID for WASM encoding. Should be unique across types.
	SectionID() SectionID
	// GetRawSection Returns an embedded RawSection pointer to populate generic fields.
	GetRawSection() *RawSection
	// ReadPayload reads a section payload, assuming the size was already read, and reader is limited to it.
	ReadPayload(r io.Reader) error
}

// SectionID is a 1-byte code that encodes the section code of both known and custom sections.
type SectionID uint8

const (
	SectionIDCustom   SectionID = 0
	SectionIDType     SectionID = 1
	SectionIDImport   SectionID = 2
	SectionIDFunction SectionID = 3
	SectionIDTable    SectionID = 4
	SectionIDMemory   SectionID = 5
	SectionIDGlobal   SectionID = 6
	SectionIDExport   SectionID = 7
	SectionIDStart    SectionID = 8
	SectionIDElement  SectionID = 9
	SectionIDCode     SectionID = 10
	SectionIDData     SectionID = 11
)

func (s SectionID) String() string {
	n, ok := map[SectionID]string{
		SectionIDCustom:   "custom",
		SectionIDType:     "type",
		SectionIDImport:   "import",
		SectionIDFunction: "function",
		SectionIDTable:    "table",
		SectionIDMemory:   "memory",
		SectionIDGlobal:   "global",
		SectionIDExport:   "export",
		SectionIDStart:    "start",
		SectionIDElement:  "element",
		SectionIDCode:     "code",
		SectionIDData:     "data",
	}[s]
	if !ok {
		return "unknown"
	}
	return n
}

// RawSection is a declared section in a WASM module. Sections the shim does
// not consume are retained as RawSections only.
type RawSection struct {
	ID    SectionID
	Bytes []byte
}

func (s *RawSection) SectionID() SectionID {
	return s.ID
}

func (s *RawSection) GetRawSection() *RawSection {
	return s
}

func (s *RawSection) ReadPayload(r io.Reader) error {
	data, err := ioutil.ReadAll(r)
	if err != nil {
		return err
	}
	s.Bytes = data
	return nil
}

type InvalidSectionIDError SectionID

func (e InvalidSectionIDError) Error() string {
	return fmt.Sprintf("wasm: malformed section id %d", uint8(e))
}

type InvalidExternalError uint8

func (e InvalidExternalError) Error() string {
	return fmt.Sprintf("wasm: invalid external_kind value %d", uint8(e))
}

type DuplicateSectionError SectionID

func (e DuplicateSectionError) Error() string {
	return fmt.Sprintf("wasm: section %s occurs more than once", SectionID(e).String())
}

type MissingSectionError SectionID

func (e MissingSectionError) Error() string {
	return fmt.Sprintf("wasm: missing section %s", SectionID(e).String())
}

type sectionsReader struct {
	lastSecOrder uint8          // previous non-custom section id
	seen         *bitset.BitSet // non-custom section ids read so far
	m            *Module
}

func newSectionsReader(m *Module) *sectionsReader {
	return &sectionsReader{
		seen: bitset.New(uint(SectionIDData) + 1),
		m:    m,
	}
}

func (sr *sectionsReader) readSections(r *bufio.Reader) error {
	for {
		done, err := sr.readSection(r)
		switch {
		case err != nil:
			return err
		case done:
			return nil
		}
	}
}

// reads a valid section from r. The first return value is true if and only if
// the module has been completely read.
func (sr *sectionsReader) readSection(r *bufio.Reader) (bool, error) {
	m := sr.m

	id, err := r.ReadByte()
	if err == io.EOF {
		return true, nil
	} else if err != nil {
		return false, err
	}
	if id > uint8(SectionIDData) {
		return false, InvalidSectionIDError(id)
	}
	if id != uint8(SectionIDCustom) {
		if sr.seen.Test(uint(id)) {
			return false, DuplicateSectionError(id)
		}
		if id < sr.lastSecOrder {
			return false, fmt.Errorf("wasm: sections must occur in the prescribed order")
		}
		sr.seen.Set(uint(id))
		sr.lastSecOrder = id
	}

	payloadDataLen, err := leb128.ReadVarUint32(r)
	if err != nil {
		return false, err
	}

	payload := make([]byte, payloadDataLen)
	if _, err := io.ReadFull(r, payload); err != nil {
		return false, err
	}

	var sec Section
	switch SectionID(id) {
	case SectionIDCustom:
		cs := &SectionCustom{}
		m.Customs = append(m.Customs, cs)
		sec = cs
	case SectionIDType:
		m.Types = &SectionTypes{}
		sec = m.Types
	case SectionIDImport:
		m.Import = &SectionImports{}
		sec = m.Import
	case SectionIDExport:
		m.Export = &SectionExports{}
		sec = m.Export
	default:
		sec = &RawSection{}
	}
	if err := sec.ReadPayload(bytes.NewReader(payload)); err != nil {
		return false, err
	}
	raw := sec.GetRawSection()
	raw.ID = SectionID(id)
	raw.Bytes = payload
	m.Sections = append(m.Sections, sec)
	return false, nil
}

var _ Section = (*SectionCustom)(nil)

type SectionCustom struct {
	RawSection
	Name string
	Data []byte
}

func (s *SectionCustom) SectionID() SectionID {
	return SectionIDCustom
}

func (s *SectionCustom) ReadPayload(r io.Reader) error {
	var err error
	s.Name, err = readUTF8StringUint(r)
	if err != nil {
		return err
	}
	data, err := ioutil.ReadAll(r)
	if err != nil {
		return err
	}
	s.Data = data
	return nil
}

var _ Section = (*SectionTypes)(nil)

// SectionTypes declares all function signatures that will be used in a module.
type SectionTypes struct {
	RawSection
	Entries []FunctionSig
}

func (*SectionTypes) SectionID() SectionID {
	return SectionIDType
}

func (s *SectionTypes) ReadPayload(r io.Reader) error {
	count, err := leb128.ReadVarUint32(r)
	if err != nil {
		return err
	}

	s.Entries = make([]FunctionSig, 0, getInitialCap(count))
	for i := uint32(0); i < count; i++ {
		var sig FunctionSig
		if err := sig.UnmarshalWASM(r); err != nil {
			return err
		}
		s.Entries = append(s.Entries, sig)
	}
	return nil
}

var _ Section = (*SectionImports)(nil)

// SectionImports declares all imports that will be used in the module.
type SectionImports struct {
	RawSection
	Entries []ImportEntry
}

func (*SectionImports) SectionID() SectionID {
	return SectionIDImport
}

func (s *SectionImports) ReadPayload(r io.Reader) error {
	count, err := leb128.ReadVarUint32(r)
	if err != nil {
		return err
	}

	s.Entries = make([]ImportEntry, 0, getInitialCap(count))
	for i := uint32(0); i < count; i++ {
		var entry ImportEntry
		if err := entry.UnmarshalWASM(r); err != nil {
			return err
		}
		s.Entries = append(s.Entries, entry)
	}
	return nil
}

// ExportEntry represents an exported entry by the module.
type ExportEntry struct {
	FieldName string
	Kind      External
	Index     uint32
}

func (e *ExportEntry) UnmarshalWASM(r io.Reader) error {
	var err error
	if e.FieldName, err = readUTF8StringUint(r); err != nil {
		return err
	}
	if err = e.Kind.UnmarshalWASM(r); err != nil {
		return err
	}
	e.Index, err = leb128.ReadVarUint32(r)
	return err
}

var _ Section = (*SectionExports)(nil)

// SectionExports declares the export section of a module.
type SectionExports struct {
	RawSection
	Entries []ExportEntry
	Names   map[string]ExportEntry
}

func (*SectionExports) SectionID() SectionID {
	return SectionIDExport
}

type DuplicateExportError string

func (e DuplicateExportError) Error() string {
	return fmt.Sprintf("wasm: duplicate export entry %q", string(e))
}

func (s *SectionExports) ReadPayload(r io.Reader) error {
	count, err := leb128.ReadVarUint32(r)
	if err != nil {
		return err
	}

	s.Entries = make([]ExportEntry, 0, getInitialCap(count))
	s.Names = make(map[string]ExportEntry, getInitialCap(count))
	for i := uint32(0); i < count; i++ {
		var entry ExportEntry
		if err := entry.UnmarshalWASM(r); err != nil {
			return err
		}
		if _, ok := s.Names[entry.FieldName]; ok {
			return DuplicateExportError(entry.FieldName)
		}
		s.Entries = append(s.Entries, entry)
		s.Names[entry.FieldName] = entry
	}
	return nil
}

// Caps the initial capacity used for count-prefixed allocations so that a
// corrupt count cannot force a huge allocation before decoding fails.
func getInitialCap(count uint32) uint32 {
	const maxInitialCap = 1024
	if count > maxInitialCap {
		return maxInitialCap
	}
	return count
}
