package vkbackend

import (
	"testing"

	"github.com/celer/vkgui/gui"
	"github.com/stretchr/testify/assert"
	vk "github.com/vulkan-go/vulkan"
)

func TestVertexLayoutDescriptions(t *testing.T) {
	l := vertexLayout(gui.DefaultVertexLayout)

	b := l.GetBindingDescription()
	assert.Equal(t, uint32(0), b.Binding)
	assert.Equal(t, uint32(20), b.Stride)
	assert.Equal(t, vk.VertexInputRateVertex, b.InputRate)

	attrs := l.GetAttributeDescriptions()
	if assert.Len(t, attrs, 3) {
		assert.Equal(t, uint32(0), attrs[0].Offset)
		assert.Equal(t, uint32(8), attrs[1].Offset)
		assert.Equal(t, uint32(16), attrs[2].Offset)
		assert.Equal(t, vk.FormatR32g32Sfloat, attrs[0].Format)
		assert.Equal(t, vk.FormatR32g32Sfloat, attrs[1].Format)
		assert.Equal(t, vk.FormatR8g8b8a8Unorm, attrs[2].Format)
		for i, a := range attrs {
			assert.Equal(t, uint32(i), a.Location)
		}
	}
}

func TestIndexType(t *testing.T) {
	assert.Equal(t, vk.IndexTypeUint16, indexType(gui.IndexUint16))
	assert.Equal(t, vk.IndexTypeUint32, indexType(gui.IndexUint32))
	assert.Equal(t, vk.IndexTypeUint16, indexType(gui.DefaultVertexLayout.IndexType()))
}

func TestBufferUsage(t *testing.T) {
	assert.Equal(t, vk.BufferUsageVertexBufferBit, bufferUsage(gui.VertexBufferUsage))
	assert.Equal(t, vk.BufferUsageIndexBufferBit, bufferUsage(gui.IndexBufferUsage))
}

func TestScissor(t *testing.T) {
	tests := []struct {
		name string
		r    gui.Rect[int32]
		x, y int32
		w, h uint32
	}{
		{"inside", gui.Rect[int32]{MinX: 10, MinY: 20, MaxX: 110, MaxY: 70}, 10, 20, 100, 50},
		{"negative origin", gui.Rect[int32]{MinX: -5, MinY: -10, MaxX: 20, MaxY: 30}, 0, 0, 20, 30},
		{"empty", gui.Rect[int32]{MinX: 10, MinY: 10, MaxX: 10, MaxY: 40}, 10, 10, 0, 0},
		{"offscreen", gui.Rect[int32]{MinX: -20, MinY: 0, MaxX: -10, MaxY: 40}, 0, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y, w, h := scissor(tt.r)
			assert.Equal(t, tt.x, x)
			assert.Equal(t, tt.y, y)
			assert.Equal(t, tt.w, w)
			assert.Equal(t, tt.h, h)
		})
	}
}
