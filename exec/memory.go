package exec

import (
	"encoding/binary"
	"fmt"
)

// PageSize is the size of a linear memory page in bytes.
const PageSize = 65536

var ErrLimitExceeded = fmt.Errorf("memory limit exceeded")

// Memory is a WASM linear memory.
type Memory struct {
	min, max uint32
	bytes    []byte
}

// NewMemory creates a new linear memory with the given limits.
func NewMemory(min, max uint32) Memory {
	return Memory{
		min:   min,
		max:   max,
		bytes: make([]byte, min*PageSize),
	}
}

// Limits returns the minimum and maximum size of the memory in pages.
func (m *Memory) Limits() (min, max uint32) {
	return m.min, m.max
}

// Size returns the current size of the memory in pages.
func (m *Memory) Size() uint32 {
	return uint32(len(m.bytes) / PageSize)
}

// Grow grows the memory by the given number of pages. It returns the old size of the memory in pages and an error if
// growing the memory by the requested amount would exceed the memory's maximum size.
func (m *Memory) Grow(pages uint32) (uint32, error) {
	currentSize := m.Size()
	newSize := currentSize + pages
	if newSize > m.max || newSize > 65536 {
		return currentSize, ErrLimitExceeded
	}
	newBytes := make([]byte, int(newSize*PageSize))
	copy(newBytes, m.bytes)
	m.bytes = newBytes
	return currentSize, nil
}

// Bytes returns the memory's bytes.
func (m *Memory) Bytes() []byte {
	return m.bytes
}

// Range resolves the given offset to a bounds-checked view of length bytes.
// The view is only valid until the next call to Grow. Requests that extend
// past the memory's current size fail with TrapOutOfBoundsMemoryAccess.
func (m *Memory) Range(offset, length uint32) ([]byte, error) {
	end := uint64(offset) + uint64(length)
	if end > uint64(len(m.bytes)) {
		return nil, TrapOutOfBoundsMemoryAccess
	}
	return m.bytes[offset:end:end], nil
}

// ByteAt returns the byte stored at the given offset.
func (m *Memory) ByteAt(offset uint32) byte {
	return m.bytes[offset]
}

// PutByteAt writes the given byte to the given offset.
func (m *Memory) PutByteAt(v byte, offset uint32) {
	m.bytes[offset] = v
}

// Uint32At returns the uint32 stored at the given offset.
func (m *Memory) Uint32At(offset uint32) uint32 {
	return binary.LittleEndian.Uint32(m.bytes[offset:])
}

// PutUint32At writes the given uint32 to the given offset.
func (m *Memory) PutUint32At(v uint32, offset uint32) {
	binary.LittleEndian.PutUint32(m.bytes[offset:], v)
}

// Uint64At returns the uint64 stored at the given offset.
func (m *Memory) Uint64At(offset uint32) uint64 {
	return binary.LittleEndian.Uint64(m.bytes[offset:])
}

// PutUint64At writes the given uint64 to the given offset.
func (m *Memory) PutUint64At(v uint64, offset uint32) {
	binary.LittleEndian.PutUint64(m.bytes[offset:], v)
}
