package emscripten_test

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wasmlab/emshim/emscripten"
)

func TestCopyCStringArray(t *testing.T) {
	alloc := newTestAllocator()
	inst := newTestInstance(t, alloc)

	array, err := emscripten.CopyCStringArray(inst, [][]byte{
		[]byte("foo\x00"),
		[]byte("bar\x00"),
		nil,
	})
	require.NoError(t, err)

	// One heap reservation per string plus one for the offset array.
	assert.Equal(t, 3, alloc.heapCalls)

	buf, err := inst.Range(0, array, 12)
	require.NoError(t, err)

	assert.Equal(t, uint32(0), binary.LittleEndian.Uint32(buf[8:]), "offset array is zero-terminated")

	for i, want := range []string{"foo", "bar"} {
		offset := binary.LittleEndian.Uint32(buf[i*4:])
		view, err := inst.Range(0, offset, 4)
		require.NoError(t, err)
		assert.Equal(t, want+"\x00", string(view))
	}
}

func TestCopyCStringArrayEmpty(t *testing.T) {
	alloc := newTestAllocator()
	inst := newTestInstance(t, alloc)

	array, err := emscripten.CopyCStringArray(inst, [][]byte{nil})
	require.NoError(t, err)
	assert.Equal(t, 1, alloc.heapCalls)

	buf, err := inst.Range(0, array, 4)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), binary.LittleEndian.Uint32(buf))
}

func TestCopyCStringArrayNoTerminator(t *testing.T) {
	inst := newTestInstance(t, newTestAllocator())

	_, err := emscripten.CopyCStringArray(inst, [][]byte{[]byte("foo\x00")})
	assert.Equal(t, emscripten.ErrNoTerminator, err)
}

func TestCopyCStringArrayPropagatesDecodingError(t *testing.T) {
	inst := newTestInstance(t, newTestAllocator())

	_, err := emscripten.CopyCStringArray(inst, [][]byte{
		[]byte("ok\x00"),
		{0xff, 0x00},
		nil,
	})
	var decodeErr *emscripten.DecodingError
	assert.ErrorAs(t, err, &decodeErr)
}
