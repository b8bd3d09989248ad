package gui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundUpPow2(t *testing.T) {
	for in, want := range map[int]int{0: 1, 1: 1, 2: 2, 3: 4, 20: 32, 1024: 1024, 1025: 2048} {
		assert.Equal(t, want, roundUpPow2(in), "roundUpPow2(%d)", in)
	}
}

func TestFrameRingSlots(t *testing.T) {
	gpu := &fakeGPU{}
	r := newFrameRing(gpu, 0, 16, 8)
	require.Len(t, r.slots, 1)

	a, err := r.acquire(10, 4)
	require.NoError(t, err)
	b, err := r.acquire(10, 4)
	require.NoError(t, err)
	assert.Same(t, a, b, "a single slot is reused every frame")
	assert.Len(t, gpu.buffers, 2)
	assert.Equal(t, 16, a.vertex.Cap())
	assert.Equal(t, 8, a.index.Cap())

	r.destroy()
	assert.Equal(t, []string{"indexBuffer", "vertexBuffer"}, gpu.destroyed)
	r.destroy()
	assert.Len(t, gpu.destroyed, 2)
}
