// Copyright 2020 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wasm_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wasmlab/emshim/wasm"
	"github.com/wasmlab/emshim/wasm/leb128"
)

func header() []byte {
	return []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}
}

func section(id wasm.SectionID, payload []byte) []byte {
	var buf bytes.Buffer
	buf.WriteByte(byte(id))
	leb128.WriteVarUint32(&buf, uint32(len(payload)))
	buf.Write(payload)
	return buf.Bytes()
}

func u32(v uint32) []byte {
	var buf bytes.Buffer
	leb128.WriteVarUint32(&buf, v)
	return buf.Bytes()
}

func name(s string) []byte {
	return append(u32(uint32(len(s))), s...)
}

func cat(chunks ...[]byte) []byte {
	var buf bytes.Buffer
	for _, c := range chunks {
		buf.Write(c)
	}
	return buf.Bytes()
}

// (type (func (param i32 i32 i32) (result i32)))
func typeSection() []byte {
	return section(wasm.SectionIDType, cat(
		u32(1),
		[]byte{0x60},
		u32(3), []byte{0x7f, 0x7f, 0x7f},
		u32(1), []byte{0x7f},
	))
}

func funcImport(module, field string, typeIndex uint32) []byte {
	return cat(name(module), name(field), []byte{0x00}, u32(typeIndex))
}

func TestDecodeModule(t *testing.T) {
	binary := cat(
		header(),
		typeSection(),
		section(wasm.SectionIDImport, cat(
			u32(2),
			funcImport("env", "_emscripten_memcpy_big", 0),
			funcImport("wasi_unstable", "fd_write", 0),
		)),
		section(wasm.SectionIDMemory, cat(u32(1), u32(0), u32(1))),
		section(wasm.SectionIDExport, cat(
			u32(2),
			cat(name("_malloc"), []byte{0x00}, u32(0)),
			cat(name("memory"), []byte{0x02}, u32(0)),
		)),
		section(wasm.SectionIDCustom, cat(name("producers"), []byte{0x01, 0x02, 0x03})),
	)

	m, err := wasm.DecodeModule(bytes.NewReader(binary))
	require.NoError(t, err)

	require.NotNil(t, m.Types)
	require.Len(t, m.Types.Entries, 1)
	assert.Equal(t, "(i32, i32, i32) -> (i32)", m.Types.Entries[0].String())

	require.NotNil(t, m.Import)
	require.Len(t, m.Import.Entries, 2)
	assert.Equal(t, "env", m.Import.Entries[0].ModuleName)
	assert.Equal(t, "_emscripten_memcpy_big", m.Import.Entries[0].FieldName)
	assert.Equal(t, wasm.ExternalFunction, m.Import.Entries[0].Type.Kind())
	assert.Equal(t, "fd_write", m.Import.Entries[1].FieldName)

	assert.Len(t, m.ImportedFunctions(), 2)

	assert.True(t, m.ExportsFunction("_malloc"))
	assert.True(t, m.ExportsFunction("_malloc", "malloc"))
	assert.False(t, m.ExportsFunction("stackAlloc"))
	// "memory" is exported, but not as a function.
	assert.False(t, m.ExportsFunction("memory"))

	custom := m.Custom("producers")
	require.NotNil(t, custom)
	assert.Equal(t, []byte{0x01, 0x02, 0x03}, custom.Data)
	assert.Nil(t, m.Custom("name"))

	// The memory section is retained raw.
	var raw *wasm.RawSection
	for _, s := range m.Sections {
		if s.SectionID() == wasm.SectionIDMemory {
			raw = s.GetRawSection()
		}
	}
	require.NotNil(t, raw)
	assert.NotEmpty(t, raw.Bytes)
}

func TestDecodeModuleBadMagic(t *testing.T) {
	_, err := wasm.DecodeModule(bytes.NewReader([]byte{0x00, 0x61, 0x73, 0x00, 0x01, 0x00, 0x00, 0x00}))
	assert.Equal(t, wasm.ErrInvalidMagic, err)
}

func TestDecodeModuleDuplicateSection(t *testing.T) {
	binary := cat(header(), typeSection(), typeSection())
	_, err := wasm.DecodeModule(bytes.NewReader(binary))
	var dup wasm.DuplicateSectionError
	require.Error(t, err)
	assert.ErrorAs(t, err, &dup)
	assert.Equal(t, wasm.SectionIDType, wasm.SectionID(dup))
}

func TestDecodeModuleOutOfOrderSection(t *testing.T) {
	binary := cat(
		header(),
		section(wasm.SectionIDExport, u32(0)),
		typeSection(),
	)
	_, err := wasm.DecodeModule(bytes.NewReader(binary))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "prescribed order")
}

func TestDecodeModuleInvalidSectionID(t *testing.T) {
	binary := cat(header(), section(wasm.SectionID(13), nil))
	_, err := wasm.DecodeModule(bytes.NewReader(binary))
	var invalid wasm.InvalidSectionIDError
	require.Error(t, err)
	assert.ErrorAs(t, err, &invalid)
}

func TestDecodeModuleCustomSectionsMayRepeat(t *testing.T) {
	binary := cat(
		header(),
		section(wasm.SectionIDCustom, cat(name("a"), []byte{0x01})),
		typeSection(),
		section(wasm.SectionIDCustom, cat(name("b"), []byte{0x02})),
	)
	m, err := wasm.DecodeModule(bytes.NewReader(binary))
	require.NoError(t, err)
	assert.Len(t, m.Customs, 2)
}

func TestFunctionSigEquals(t *testing.T) {
	i32 := wasm.ValueTypeI32
	a := wasm.FunctionSig{Form: wasm.FunctionSigForm, ParamTypes: []wasm.ValueType{i32}, ReturnTypes: []wasm.ValueType{i32}}
	b := wasm.FunctionSig{Form: wasm.FunctionSigForm, ParamTypes: []wasm.ValueType{i32}, ReturnTypes: []wasm.ValueType{i32}}
	c := wasm.FunctionSig{Form: wasm.FunctionSigForm, ParamTypes: []wasm.ValueType{i32, i32}}

	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
}
