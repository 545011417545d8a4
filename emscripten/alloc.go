package emscripten

import (
	"go.uber.org/zap"

	"github.com/wasmlab/emshim/exec"
)

// Export names under which Emscripten-generated modules expose their
// allocation entry points. Older toolchains prefix exports with an
// underscore; newer ones do not.
var (
	mallocExports     = []string{"_malloc", "malloc"}
	stackAllocExports = []string{"_stackAlloc", "stackAlloc"}
)

// Attach resolves the instance's exported allocation entry points and attaches
// them as runtime data. It must be called once, after the module has been
// confirmed Emscripten-compatible, before any allocator bridge operation.
func Attach(inst *exec.Instance) error {
	malloc, err := resolveExport(inst, mallocExports)
	if err != nil {
		return err
	}
	stackAlloc, err := resolveExport(inst, stackAllocExports)
	if err != nil {
		return err
	}

	inst.SetRuntimeData(&exec.RuntimeData{
		Malloc:     malloc,
		StackAlloc: stackAlloc,
	})
	logger.Debug("attached emscripten runtime data", zap.String("instance", inst.Name()))
	return nil
}

// MustAttach is like Attach but panics on failure.
func MustAttach(inst *exec.Instance) {
	if err := Attach(inst); err != nil {
		panic(err)
	}
}

func resolveExport(inst *exec.Instance, names []string) (exec.Function, error) {
	var err error
	for _, name := range names {
		var f exec.Function
		if f, err = inst.GetFunction(name); err == nil {
			return f, nil
		}
	}
	return nil, err
}

// runtimeData returns the instance's attached runtime data, panicking if none
// has been attached. Silently returning a spurious offset would let the guest
// read garbage; this condition must fail loudly instead.
func runtimeData(inst *exec.Instance, export string) *exec.RuntimeData {
	data := inst.RuntimeData()
	if data == nil {
		panic(&MissingRuntimeDataError{Export: export})
	}
	return data
}

// ReserveHeap invokes the guest's heap allocator export with the requested
// byte count and returns the resulting guest offset. The guest owns its heap
// layout; the host only asks it to carve out space. A returned offset of 0 is
// the guest's "allocation failed" sentinel and is passed through unchanged.
//
// ReserveHeap panics if the instance has no attached runtime data.
func ReserveHeap(byteCount uint32, inst *exec.Instance) uint32 {
	data := runtimeData(inst, "malloc")
	return uint32(data.Malloc.Call(uint64(byteCount))[0])
}

// ReserveStack invokes the guest's stack allocator export with
// count*elemSize bytes and resolves the returned offset to a bounds-checked
// view over exactly that many bytes.
//
// ReserveStack panics if the instance has no attached runtime data.
func ReserveStack(count, elemSize uint32, inst *exec.Instance) (uint32, []byte, error) {
	data := runtimeData(inst, "stackAlloc")
	size := count * elemSize
	offset := uint32(data.StackAlloc.Call(uint64(size))[0])
	view, err := inst.Range(0, offset, size)
	if err != nil {
		return 0, nil, err
	}
	return offset, view, nil
}
