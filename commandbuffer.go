package vkg

import (
	"unsafe"

	vk "github.com/vulkan-go/vulkan"
)

// CommandBuffer describes a sequence of commands that will be executed
// upon being sent to a device queue. Not all vulkan commands are wrapped,
// VK gives access to the native handle for the others.
type CommandBuffer struct {
	VKCommandBuffer vk.CommandBuffer
}

// Reset this command buffer
func (c *CommandBuffer) Reset() error {
	return vk.Error(vk.ResetCommandBuffer(c.VKCommandBuffer, 0))
}

// VK returns the native command buffer
func (c *CommandBuffer) VK() vk.CommandBuffer {
	return c.VKCommandBuffer
}

// Begin capturing work for this command buffer
func (c *CommandBuffer) Begin() error {
	beginInfo := vk.CommandBufferBeginInfo{SType: vk.StructureTypeCommandBufferBeginInfo}
	return vk.Error(vk.BeginCommandBuffer(c.VKCommandBuffer, &beginInfo))
}

// BeginOneTime begins capturing work which will be submitted once.
func (c *CommandBuffer) BeginOneTime() error {
	beginInfo := vk.CommandBufferBeginInfo{
		SType: vk.StructureTypeCommandBufferBeginInfo,
		Flags: vk.CommandBufferUsageFlags(vk.CommandBufferUsageOneTimeSubmitBit),
	}
	return vk.Error(vk.BeginCommandBuffer(c.VKCommandBuffer, &beginInfo))
}

// End describing work for this command buffer
func (c *CommandBuffer) End() error {
	return vk.Error(vk.EndCommandBuffer(c.VKCommandBuffer))
}

// CmdBeginRenderPass begins renderPass on framebuffer with inline contents.
func (c *CommandBuffer) CmdBeginRenderPass(renderPass vk.RenderPass, framebuffer vk.Framebuffer, extent vk.Extent2D, clearValues []vk.ClearValue) {
	info := vk.RenderPassBeginInfo{
		SType:       vk.StructureTypeRenderPassBeginInfo,
		RenderPass:  renderPass,
		Framebuffer: framebuffer,
		RenderArea: vk.Rect2D{
			Offset: vk.Offset2D{X: 0, Y: 0},
			Extent: extent,
		},
		ClearValueCount: uint32(len(clearValues)),
		PClearValues:    clearValues,
	}
	vk.CmdBeginRenderPass(c.VKCommandBuffer, &info, vk.SubpassContentsInline)
}

func (c *CommandBuffer) CmdEndRenderPass() {
	vk.CmdEndRenderPass(c.VKCommandBuffer)
}

func (c *CommandBuffer) CmdBindGraphicsPipeline(p *GraphicsPipeline) {
	vk.CmdBindPipeline(c.VKCommandBuffer, vk.PipelineBindPointGraphics, p.VKPipeline)
}

func (c *CommandBuffer) CmdBindDescriptorSets(bindPoint vk.PipelineBindPoint, layout *PipelineLayout, firstSet int, descriptorSets ...*DescriptorSet) {
	sets := make([]vk.DescriptorSet, len(descriptorSets))
	for i := range descriptorSets {
		sets[i] = descriptorSets[i].VKDescriptorSet
	}
	vk.CmdBindDescriptorSets(c.VKCommandBuffer, bindPoint,
		layout.VKPipelineLayout, uint32(firstSet), uint32(len(sets)), sets, 0, nil)
}

// CmdPushConstants copies data into the push constant range at offset.
func (c *CommandBuffer) CmdPushConstants(layout *PipelineLayout, stages vk.ShaderStageFlagBits, offset int, data []byte) {
	if len(data) == 0 {
		return
	}
	vk.CmdPushConstants(c.VKCommandBuffer, layout.VKPipelineLayout, vk.ShaderStageFlags(stages),
		uint32(offset), uint32(len(data)), unsafe.Pointer(&data[0]))
}

// CmdSetViewport sets a viewport covering [0, width] x [0, height] with the
// full depth range.
func (c *CommandBuffer) CmdSetViewport(width, height float32) {
	vk.CmdSetViewport(c.VKCommandBuffer, 0, 1, []vk.Viewport{{
		Width:    width,
		Height:   height,
		MinDepth: 0,
		MaxDepth: 1,
	}})
}

func (c *CommandBuffer) CmdSetScissor(x, y int32, width, height uint32) {
	vk.CmdSetScissor(c.VKCommandBuffer, 0, 1, []vk.Rect2D{{
		Offset: vk.Offset2D{X: x, Y: y},
		Extent: vk.Extent2D{Width: width, Height: height},
	}})
}

func (c *CommandBuffer) CmdBindVertexBuffer(b *Buffer, offset int) {
	vk.CmdBindVertexBuffers(c.VKCommandBuffer, 0, 1, []vk.Buffer{b.VKBuffer}, []vk.DeviceSize{vk.DeviceSize(offset)})
}

func (c *CommandBuffer) CmdBindIndexBuffer(b *Buffer, offset int, indexType vk.IndexType) {
	vk.CmdBindIndexBuffer(c.VKCommandBuffer, b.VKBuffer, vk.DeviceSize(offset), indexType)
}

func (c *CommandBuffer) CmdDrawIndexed(indexCount, firstIndex, vertexOffset int) {
	vk.CmdDrawIndexed(c.VKCommandBuffer, uint32(indexCount), 1, uint32(firstIndex), int32(vertexOffset), 0)
}

// CmdClearDepth clears the depth attachment of the current subpass over
// the given extent.
func (c *CommandBuffer) CmdClearDepth(extent vk.Extent2D, depth float32) {
	var value vk.ClearValue
	value.SetDepthStencil(depth, 0)
	vk.CmdClearAttachments(c.VKCommandBuffer, 1, []vk.ClearAttachment{{
		AspectMask: vk.ImageAspectFlags(vk.ImageAspectDepthBit),
		ClearValue: value,
	}}, 1, []vk.ClearRect{{
		Rect:       vk.Rect2D{Extent: extent},
		LayerCount: 1,
	}})
}
