package emscripten_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wasmlab/emshim/emscripten"
	"github.com/wasmlab/emshim/exec"
)

func TestEnvMemcpyBig(t *testing.T) {
	inst := newTestInstance(t, newTestAllocator())
	exports := emscripten.EnvExports(inst)

	memcpy := exports["_emscripten_memcpy_big"]
	require.NotNil(t, memcpy)

	src, err := inst.Range(0, 64, 4)
	require.NoError(t, err)
	copy(src, "data")

	ret := memcpy.Call(256, 64, 4)
	assert.Equal(t, []uint64{256}, ret)

	dest, err := inst.Range(0, 256, 4)
	require.NoError(t, err)
	assert.Equal(t, []byte("data"), dest)
}

func TestEnvMemcpyBigOutOfBounds(t *testing.T) {
	inst := newTestInstance(t, newTestAllocator())
	memcpy := emscripten.EnvExports(inst)["_emscripten_memcpy_big"]

	assert.PanicsWithValue(t, exec.TrapOutOfBoundsMemoryAccess, func() {
		memcpy.Call(0, uint64(exec.PageSize), 4)
	})
}

func TestEnvAbort(t *testing.T) {
	inst := newTestInstance(t, newTestAllocator())
	abort := emscripten.EnvExports(inst)["abort"]
	require.NotNil(t, abort)

	assert.PanicsWithValue(t, exec.TrapUnreachable, func() {
		abort.Call(0)
	})
}
