package gui

import (
	"fmt"
	"math/bits"

	units "github.com/docker/go-units"
)

// frameBuffers are the vertex and index buffers of one frame in flight.
type frameBuffers struct {
	vertex Buffer
	index  Buffer
}

// frameRing keeps one frameBuffers per frame in flight. A slot is only
// rewritten once the host has waited for the frame that last used it, so
// growing a slot may release its old buffers right away.
type frameRing struct {
	gpu       GPU
	slots     []frameBuffers
	next      uint64
	minVertex int
	minIndex  int
}

func newFrameRing(gpu GPU, frames, minVertex, minIndex int) *frameRing {
	if frames < 1 {
		frames = 1
	}
	return &frameRing{
		gpu:       gpu,
		slots:     make([]frameBuffers, frames),
		minVertex: minVertex,
		minIndex:  minIndex,
	}
}

// acquire returns the buffers of the next slot, grown to hold at least the
// given number of bytes. Buffers never shrink.
func (r *frameRing) acquire(vertexBytes, indexBytes int) (*frameBuffers, error) {
	slot := int(r.next % uint64(len(r.slots)))
	r.next++

	fb := &r.slots[slot]
	var err error
	fb.vertex, err = r.grow(fb.vertex, max(vertexBytes, r.minVertex), VertexBufferUsage, slot)
	if err != nil {
		return nil, err
	}
	fb.index, err = r.grow(fb.index, max(indexBytes, r.minIndex), IndexBufferUsage, slot)
	if err != nil {
		return nil, err
	}
	return fb, nil
}

func (r *frameRing) grow(b Buffer, need int, usage BufferUsage, slot int) (Buffer, error) {
	if b != nil && b.Cap() >= need {
		return b, nil
	}
	size := roundUpPow2(need)
	nb, err := r.gpu.NewBuffer(size, usage)
	if err != nil {
		return b, fmt.Errorf("unable to allocate %s buffer of %s: %w", usage, units.BytesSize(float64(size)), err)
	}
	if b != nil {
		Logger().Debug("growing frame buffer",
			"usage", usage.String(),
			"slot", slot,
			"from", units.BytesSize(float64(b.Cap())),
			"to", units.BytesSize(float64(size)))
		b.Destroy()
	}
	return nb, nil
}

func (r *frameRing) destroy() {
	for i := range r.slots {
		if r.slots[i].index != nil {
			r.slots[i].index.Destroy()
		}
		if r.slots[i].vertex != nil {
			r.slots[i].vertex.Destroy()
		}
		r.slots[i] = frameBuffers{}
	}
}

func roundUpPow2(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}
