package emscripten_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wasmlab/emshim/emscripten"
	"github.com/wasmlab/emshim/wasm"
)

func importModule(entries ...wasm.ImportEntry) *wasm.Module {
	return &wasm.Module{Import: &wasm.SectionImports{Entries: entries}}
}

func TestIsEmscriptenModule(t *testing.T) {
	m := importModule(wasm.ImportEntry{
		ModuleName: "env",
		FieldName:  "_emscripten_memcpy_big",
		Type:       wasm.FuncImport{},
	})
	assert.True(t, emscripten.IsEmscriptenModule(m))
}

func TestIsEmscriptenModuleFalse(t *testing.T) {
	m := importModule(wasm.ImportEntry{
		ModuleName: "wasi_unstable",
		FieldName:  "fd_write",
		Type:       wasm.FuncImport{},
	})
	assert.False(t, emscripten.IsEmscriptenModule(m))
}

func TestIsEmscriptenModuleEmptyImports(t *testing.T) {
	assert.False(t, emscripten.IsEmscriptenModule(importModule()))
	assert.False(t, emscripten.IsEmscriptenModule(&wasm.Module{}))
	assert.False(t, emscripten.IsEmscriptenModule(nil))
}

func TestIsEmscriptenModuleRequiresBothNames(t *testing.T) {
	// The field name alone is not enough; the source module must be "env".
	m := importModule(wasm.ImportEntry{
		ModuleName: "other",
		FieldName:  "_emscripten_memcpy_big",
		Type:       wasm.FuncImport{},
	})
	assert.False(t, emscripten.IsEmscriptenModule(m))
}

func TestIsEmscriptenModuleIgnoresNonFunctionImports(t *testing.T) {
	m := importModule(wasm.ImportEntry{
		ModuleName: "env",
		FieldName:  "_emscripten_memcpy_big",
		Type:       wasm.GlobalVarImport{},
	})
	assert.False(t, emscripten.IsEmscriptenModule(m))
}
