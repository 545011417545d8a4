// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package wasm models the parts of a binary WebAssembly module that the
// Emscripten compatibility shim consumes: the module header, the import and
// export surfaces, and function signatures. Sections the shim never reads
// are retained as raw bytes.
package wasm

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

var ErrInvalidMagic = errors.New("magic header not detected")

const (
	Magic   uint32 = 0x6d736100
	Version uint32 = 0x1
)

// Module represents a parsed WebAssembly module:
// http://webassembly.org/docs/modules/
type Module struct {
	Version  uint32
	Sections []Section

	Types   *SectionTypes
	Import  *SectionImports
	Export  *SectionExports
	Customs []*SectionCustom
}

// Custom returns a custom section with a specific name, if it exists.
func (m *Module) Custom(name string) *SectionCustom {
	for _, s := range m.Customs {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// ImportedFunctions returns the (module, field) name pairs of every function
// the module imports, in import order.
func (m *Module) ImportedFunctions() []ImportEntry {
	if m.Import == nil {
		return nil
	}
	var funcs []ImportEntry
	for _, entry := range m.Import.Entries {
		if _, ok := entry.Type.(FuncImport); ok {
			funcs = append(funcs, entry)
		}
	}
	return funcs
}

// ExportsFunction reports whether the module exports a function under any of
// the given names.
func (m *Module) ExportsFunction(names ...string) bool {
	if m.Export == nil {
		return false
	}
	for _, name := range names {
		if e, ok := m.Export.Names[name]; ok && e.Kind == ExternalFunction {
			return true
		}
	}
	return false
}

// DecodeModule decodes a WASM module.
func DecodeModule(r io.Reader) (*Module, error) {
	reader := bufio.NewReader(r)
	m := &Module{}
	magic, err := readU32(reader)
	if err != nil {
		return nil, err
	}
	if magic != Magic {
		return nil, ErrInvalidMagic
	}
	if m.Version, err = readU32(reader); err != nil {
		return nil, err
	}
	if m.Version != Version {
		return nil, errors.New("unknown binary version")
	}

	if err := newSectionsReader(m).readSections(reader); err != nil {
		return nil, err
	}

	return m, nil
}

// MustDecode decodes a WASM module and panics on failure.
func MustDecode(r io.Reader) *Module {
	m, err := DecodeModule(r)
	if err != nil {
		panic(fmt.Errorf("decoding module: %w", err))
	}
	return m
}

func readU32(r io.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}
