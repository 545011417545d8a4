package emscripten

import (
	"bytes"
	"unicode/utf8"

	"github.com/wasmlab/emshim/exec"
)

// WriteRaw copies length bytes from src into memory 0 at the given guest
// offset. The caller guarantees that length does not exceed len(src); bounds
// checking of the destination range is delegated to the instance and its
// failure is propagated unchanged. Returns the offset for chaining.
func WriteRaw(src []byte, offset, length uint32, inst *exec.Instance) (uint32, error) {
	dest, err := inst.Range(0, offset, length)
	if err != nil {
		return 0, err
	}
	copy(dest, src[:length])
	return offset, nil
}

// CopyCString copies a null-terminated host string into guest memory,
// reserving len+1 bytes from the guest's heap allocator and writing the
// string's bytes followed by an explicit terminating zero. It returns the
// offset of the new region.
//
// cstr must contain a NUL terminator; scanning stops at the first one. A host
// value with no terminator is undefined input and a caller contract violation
// (the whole slice is then taken as the string, bounded by its length).
// Strings that are not valid UTF-8 fail with a *DecodingError before any
// allocation or write.
//
// CopyCString panics if the instance has no attached runtime data.
func CopyCString(inst *exec.Instance, cstr []byte) (uint32, error) {
	n := bytes.IndexByte(cstr, 0)
	if n < 0 {
		n = len(cstr)
	}
	s := cstr[:n]
	if err := validText(s); err != nil {
		return 0, err
	}

	offset := ReserveHeap(uint32(n)+1, inst)
	dest, err := inst.Range(0, offset, uint32(n)+1)
	if err != nil {
		return 0, err
	}
	copy(dest, s)
	dest[n] = 0
	return offset, nil
}

// CopyStringOnStack copies an already-sized host string into guest memory
// reserved from the guest's stack allocator, appending the terminating zero
// itself. It returns the offset and the bounded view over the written
// len(s)+1 bytes for immediate reuse by the caller.
//
// CopyStringOnStack panics if the instance has no attached runtime data.
func CopyStringOnStack(s string, inst *exec.Instance) (uint32, []byte, error) {
	offset, view, err := ReserveStack(uint32(len(s))+1, 1, inst)
	if err != nil {
		return 0, nil, err
	}
	copy(view, s)
	view[len(s)] = 0
	return offset, view, nil
}

func validText(s []byte) error {
	if utf8.Valid(s) {
		return nil
	}
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRune(s[i:])
		if r == utf8.RuneError && size == 1 {
			return &DecodingError{Index: i}
		}
		i += size
	}
	return &DecodingError{Index: len(s)}
}
