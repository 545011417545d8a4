package exec

import (
	"github.com/wasmlab/emshim/wasm"
)

// Function represents a function exported by a WASM module.
type Function interface {
	// GetSignature returns this function's signature.
	GetSignature() wasm.FunctionSig
	// Call calls the function with the given arguments. If the number of arguments does not match the
	// number of parameters in this function's signature, this method may panic. Traps are surfaced as
	// panics of type Trap.
	Call(args ...uint64) []uint64
}

// A GoFunction adapts a Go closure to the Function interface.
type GoFunction struct {
	sig wasm.FunctionSig
	fn  func(args ...uint64) []uint64
}

// NewGoFunction creates a Function with the given signature backed by fn.
func NewGoFunction(sig wasm.FunctionSig, fn func(args ...uint64) []uint64) *GoFunction {
	return &GoFunction{sig: sig, fn: fn}
}

func (f *GoFunction) GetSignature() wasm.FunctionSig {
	return f.sig
}

func (f *GoFunction) Call(args ...uint64) []uint64 {
	return f.fn(args...)
}
