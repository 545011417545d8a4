package emscripten

import (
	"errors"
	"fmt"
)

// A DecodingError indicates that a host string was not valid UTF-8. No guest
// memory is written when this error is returned.
type DecodingError struct {
	// Index is the byte index of the first invalid sequence.
	Index int
}

func (e *DecodingError) Error() string {
	return fmt.Sprintf("emscripten: host string is not valid UTF-8 at byte %d", e.Index)
}

// A MissingRuntimeDataError is the panic value raised when an allocator bridge
// operation is invoked on an instance without attached runtime data. This is a
// programming-contract violation: the module was never confirmed to be
// Emscripten-compatible, and continuing would hand garbage offsets to the guest.
type MissingRuntimeDataError struct {
	// Export names the allocation entry point that was required.
	Export string
}

func (e *MissingRuntimeDataError) Error() string {
	return fmt.Sprintf("emscripten: instance has no attached runtime data (required export %q)", e.Export)
}

// ErrNoTerminator is returned when a host C-string array has no reachable nil
// terminator within the bounded scan limit.
var ErrNoTerminator = errors.New("emscripten: C string array has no terminator")
