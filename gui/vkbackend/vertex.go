package vkbackend

import (
	"github.com/celer/vkgui/gui"
	vk "github.com/vulkan-go/vulkan"
)

// vertexLayout reads gui vertices: a float32 position, a float32 texture
// coordinate and a normalized RGBA8 color.
type vertexLayout gui.VertexLayout

func (l vertexLayout) GetBindingDescription() vk.VertexInputBindingDescription {
	return vk.VertexInputBindingDescription{
		Binding:   0,
		Stride:    uint32(l.Stride),
		InputRate: vk.VertexInputRateVertex,
	}
}

func (l vertexLayout) GetAttributeDescriptions() []vk.VertexInputAttributeDescription {
	return []vk.VertexInputAttributeDescription{
		{Location: 0, Binding: 0, Format: vk.FormatR32g32Sfloat, Offset: uint32(l.PosOffset)},
		{Location: 1, Binding: 0, Format: vk.FormatR32g32Sfloat, Offset: uint32(l.UVOffset)},
		{Location: 2, Binding: 0, Format: vk.FormatR8g8b8a8Unorm, Offset: uint32(l.ColorOffset)},
	}
}

func indexType(t gui.IndexType) vk.IndexType {
	if t == gui.IndexUint32 {
		return vk.IndexTypeUint32
	}
	return vk.IndexTypeUint16
}

func bufferUsage(u gui.BufferUsage) vk.BufferUsageFlagBits {
	if u == gui.IndexBufferUsage {
		return vk.BufferUsageIndexBufferBit
	}
	return vk.BufferUsageVertexBufferBit
}

// scissor clamps r to non negative coordinates.
func scissor(r gui.Rect[int32]) (x, y int32, width, height uint32) {
	x, y = max(r.MinX, 0), max(r.MinY, 0)
	if r.MaxX <= x || r.MaxY <= y {
		return x, y, 0, 0
	}
	return x, y, uint32(r.MaxX - x), uint32(r.MaxY - y)
}
