package vkbackend

import (
	vkg "github.com/celer/vkgui"
	"github.com/celer/vkgui/gui"
	vk "github.com/vulkan-go/vulkan"
)

// CmdBuffer records gui draws into a vkg command buffer. Handles must have
// been created by this backend, any other type panics.
type CmdBuffer struct {
	cb *vkg.CommandBuffer
}

func NewCmdBuffer(cb *vkg.CommandBuffer) *CmdBuffer {
	return &CmdBuffer{cb: cb}
}

func (c *CmdBuffer) BindPipeline(p gui.Pipeline) {
	c.cb.CmdBindGraphicsPipeline(p.(*Pipeline).pipeline)
}

func (c *CmdBuffer) BindTexture(p gui.Pipeline, t gui.Texture) {
	c.cb.CmdBindDescriptorSets(vk.PipelineBindPointGraphics, p.(*Pipeline).layout(), 0, t.(*Texture).set)
}

func (c *CmdBuffer) PushConstants(p gui.Pipeline, data []byte) {
	c.cb.CmdPushConstants(p.(*Pipeline).layout(), vk.ShaderStageVertexBit, 0, data)
}

func (c *CmdBuffer) SetViewport(width, height float32) {
	c.cb.CmdSetViewport(width, height)
}

func (c *CmdBuffer) SetScissor(r gui.Rect[int32]) {
	c.cb.CmdSetScissor(scissor(r))
}

func (c *CmdBuffer) BindVertexBuffer(b gui.Buffer, offset int) {
	c.cb.CmdBindVertexBuffer(&b.(*Buffer).res.Buffer, offset)
}

func (c *CmdBuffer) BindIndexBuffer(b gui.Buffer, offset int, t gui.IndexType) {
	c.cb.CmdBindIndexBuffer(&b.(*Buffer).res.Buffer, offset, indexType(t))
}

func (c *CmdBuffer) DrawIndexed(indexCount, firstIndex, vertexOffset int) {
	c.cb.CmdDrawIndexed(indexCount, firstIndex, vertexOffset)
}
