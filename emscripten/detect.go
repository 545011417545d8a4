// Package emscripten implements the host-to-guest memory marshaling layer
// used by the Emscripten compatibility shim: detection of Emscripten-generated
// modules, primitives that copy host values into guest linear memory using the
// guest's expected binary layout, and a bridge to the guest's own exported
// allocators.
//
// No operation in this package is safe to invoke concurrently against the same
// instance: guest memory and the guest's allocator state are shared mutable
// resources, and the calling runtime is responsible for serializing all
// guest-memory-touching calls per instance.
package emscripten

import (
	"github.com/wasmlab/emshim/wasm"
)

const (
	importModuleEnv = "env"

	// Emscripten-generated modules reliably import this helper; its presence
	// is a cheap structural fingerprint that the module was produced by the
	// Emscripten toolchain.
	importMemcpyBig = "_emscripten_memcpy_big"
)

// IsEmscriptenModule reports whether the given module was produced by the
// Emscripten toolchain, judged by its imported-function list.
func IsEmscriptenModule(m *wasm.Module) bool {
	if m == nil || m.Import == nil {
		return false
	}
	for _, entry := range m.Import.Entries {
		if _, ok := entry.Type.(wasm.FuncImport); !ok {
			continue
		}
		if entry.ModuleName == importModuleEnv && entry.FieldName == importMemcpyBig {
			return true
		}
	}
	return false
}
