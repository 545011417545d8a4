// Package exec provides the live-instance surface the Emscripten shim
// marshals against: linear memories with bounds-checked range views, a
// function call interface, and an instance carrying an export table and
// optionally attached runtime data.
package exec

import (
	"fmt"
)

// An ExportNotFoundError is returned by GetFunction if an export could not be found.
type ExportNotFoundError struct {
	ModuleName string
	FieldName  string
}

func (e *ExportNotFoundError) Error() string {
	return fmt.Sprintf("wasm: couldn't find export with name %s in module %s", e.FieldName, e.ModuleName)
}

type InvalidMemoryIndexError uint32

func (e InvalidMemoryIndexError) Error() string {
	return fmt.Sprintf("wasm: invalid memory index %d", uint32(e))
}

// RuntimeData carries references to guest-exported allocation entry points.
// It is attached to an instance after instantiation, typically by the
// emscripten shim once the module has been confirmed Emscripten-compatible.
type RuntimeData struct {
	// Malloc is the guest's heap allocator export: (byte count) -> offset.
	// A returned offset of 0 is the guest's "allocation failed" sentinel.
	Malloc Function
	// StackAlloc is the guest's stack allocator export: (byte count) -> offset.
	StackAlloc Function
}

// An Instance is a live guest program: one or more linear memories plus a
// table of exported callable entry points. The instance owns its memories;
// callers borrow them for the duration of a call and must not retain views
// across calls that may grow memory.
type Instance struct {
	name    string
	mems    []*Memory
	exports map[string]Function

	runtimeData *RuntimeData
}

// NewInstance creates an instance with the given memories and exported functions.
func NewInstance(name string, mems []*Memory, exports map[string]Function) *Instance {
	if exports == nil {
		exports = map[string]Function{}
	}
	return &Instance{
		name:    name,
		mems:    mems,
		exports: exports,
	}
}

// Name returns the name of this instance.
func (i *Instance) Name() string {
	return i.name
}

// GetFunction returns the exported function with the given name. If the function does not exist,
// this function returns an error.
func (i *Instance) GetFunction(name string) (Function, error) {
	if f, ok := i.exports[name]; ok {
		return f, nil
	}
	return nil, &ExportNotFoundError{ModuleName: i.name, FieldName: name}
}

// GetMemory returns the linear memory with the given index.
func (i *Instance) GetMemory(index uint32) (*Memory, error) {
	if index >= uint32(len(i.mems)) {
		return nil, InvalidMemoryIndexError(index)
	}
	return i.mems[index], nil
}

// Range resolves a guest offset in the indexed memory to a bounds-checked
// view of length bytes. The memory's bounds checking is authoritative;
// out-of-bounds requests fail with TrapOutOfBoundsMemoryAccess.
func (i *Instance) Range(index, offset, length uint32) ([]byte, error) {
	mem, err := i.GetMemory(index)
	if err != nil {
		return nil, err
	}
	return mem.Range(offset, length)
}

// SetRuntimeData attaches the guest's allocation entry points to the instance.
func (i *Instance) SetRuntimeData(data *RuntimeData) {
	i.runtimeData = data
}

// RuntimeData returns the attached runtime data, or nil if none has been attached.
func (i *Instance) RuntimeData() *RuntimeData {
	return i.runtimeData
}
