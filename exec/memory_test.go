package exec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRange(t *testing.T) {
	m := NewMemory(1, 2)

	view, err := m.Range(16, 8)
	require.NoError(t, err)
	assert.Len(t, view, 8)

	copy(view, "abcdefgh")
	assert.Equal(t, byte('a'), m.ByteAt(16))
	assert.Equal(t, byte('h'), m.ByteAt(23))

	// A view is capped at its requested length.
	assert.Equal(t, 8, cap(view))
}

func TestMemoryRangeOutOfBounds(t *testing.T) {
	m := NewMemory(1, 2)

	_, err := m.Range(PageSize-4, 8)
	assert.Equal(t, TrapOutOfBoundsMemoryAccess, err)

	// The last in-bounds range is fine.
	_, err = m.Range(PageSize-8, 8)
	assert.NoError(t, err)

	// Offset arithmetic must not wrap.
	_, err = m.Range(1<<32-1, 1<<32-1)
	assert.Equal(t, TrapOutOfBoundsMemoryAccess, err)
}

func TestMemoryGrow(t *testing.T) {
	m := NewMemory(1, 2)
	assert.Equal(t, uint32(1), m.Size())

	old, err := m.Grow(1)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), old)
	assert.Equal(t, uint32(2), m.Size())

	_, err = m.Grow(1)
	assert.Equal(t, ErrLimitExceeded, err)
}

func TestMemoryAccessors(t *testing.T) {
	m := NewMemory(1, 1)

	m.PutUint32At(0xdeadbeef, 4)
	assert.Equal(t, uint32(0xdeadbeef), m.Uint32At(4))
	// Little-endian byte order.
	assert.Equal(t, byte(0xef), m.ByteAt(4))

	m.PutUint64At(0x0123456789abcdef, 8)
	assert.Equal(t, uint64(0x0123456789abcdef), m.Uint64At(8))
}
