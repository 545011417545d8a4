package emscripten

import (
	"github.com/wasmlab/emshim/exec"
	"github.com/wasmlab/emshim/wasm"
)

func sig(params, returns []wasm.ValueType) wasm.FunctionSig {
	return wasm.FunctionSig{
		Form:        wasm.FunctionSigForm,
		ParamTypes:  params,
		ReturnTypes: returns,
	}
}

// EnvExports returns host implementations for the "env" imports this layer
// can service itself. The full syscall surface is the runtime's concern; only
// the memory helpers Emscripten links unconditionally live here.
func EnvExports(inst *exec.Instance) map[string]exec.Function {
	i32 := wasm.ValueTypeI32
	return map[string]exec.Function{
		// memcpy for regions large enough that the guest prefers a host call
		// over its own loop. Emscripten only calls this for disjoint regions.
		importMemcpyBig: exec.NewGoFunction(sig([]wasm.ValueType{i32, i32, i32}, []wasm.ValueType{i32}),
			func(args ...uint64) []uint64 {
				dest, src, num := uint32(args[0]), uint32(args[1]), uint32(args[2])
				from, err := inst.Range(0, src, num)
				if err != nil {
					panic(err)
				}
				if _, err := WriteRaw(from, dest, num, inst); err != nil {
					panic(err)
				}
				return []uint64{uint64(dest)}
			}),
		"abort": exec.NewGoFunction(sig([]wasm.ValueType{i32}, nil),
			func(args ...uint64) []uint64 {
				panic(exec.TrapUnreachable)
			}),
	}
}
