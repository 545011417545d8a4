package emscripten

import (
	"encoding/binary"

	"go.uber.org/zap"

	"github.com/wasmlab/emshim/exec"
)

// MaxCStringArrayLen bounds the terminator scan over a host C-string array so
// that malformed input cannot force an unbounded read.
const MaxCStringArrayLen = 1 << 16

// The offset array the guest receives holds 32-bit guest pointers.
const guestPtrSize = 4

// CopyCStringArray marshals a nil-terminated host array of C strings into
// guest memory: each string is copied to the guest heap via CopyCString, then
// an array of the resulting guest offsets, itself zero-terminated, is written
// to a freshly reserved heap region. It returns the offset of the array.
//
// Counting stops at the first nil entry and never reads past it. An array
// with no terminator reachable within MaxCStringArrayLen entries fails with
// ErrNoTerminator.
//
// CopyCStringArray panics if the instance has no attached runtime data.
func CopyCStringArray(inst *exec.Instance, cstrs [][]byte) (uint32, error) {
	count := 0
	for {
		if count >= len(cstrs) || count >= MaxCStringArrayLen {
			return 0, ErrNoTerminator
		}
		if cstrs[count] == nil {
			break
		}
		count++
	}
	logger.Debug("copying C string array", zap.Int("count", count))

	offsets := make([]uint32, count)
	for i := 0; i < count; i++ {
		offset, err := CopyCString(inst, cstrs[i])
		if err != nil {
			return 0, err
		}
		offsets[i] = offset
	}

	size := uint32(count+1) * guestPtrSize
	array := ReserveHeap(size, inst)
	buf, err := inst.Range(0, array, size)
	if err != nil {
		return 0, err
	}
	for i, offset := range offsets {
		binary.LittleEndian.PutUint32(buf[i*guestPtrSize:], offset)
	}
	binary.LittleEndian.PutUint32(buf[count*guestPtrSize:], 0)
	return array, nil
}
