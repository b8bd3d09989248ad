package vkg

import (
	vk "github.com/vulkan-go/vulkan"
)

// Destroyer is implemented by every object owning native resources.
type Destroyer interface {
	Destroy()
}

// VertexDescriptor describes how a vertex buffer is read by a pipeline.
type VertexDescriptor interface {
	GetBindingDescription() vk.VertexInputBindingDescription
	GetAttributeDescriptions() []vk.VertexInputAttributeDescription
}

// IGraphicsPipelineConfig produces the create info of a graphics pipeline.
type IGraphicsPipelineConfig interface {
	Destroyer
	VKGraphicsPipelineCreateInfo(extent vk.Extent2D) (vk.GraphicsPipelineCreateInfo, error)
}

// IndexSource is index data along with the width of its indices.
type IndexSource interface {
	Bytes() []byte
	IndexType() vk.IndexType
}

// VertexSource is vertex data which knows its own layout.
type VertexSource interface {
	VertexDescriptor
	Bytes() []byte
}
