package gui

import "image"

// Destroyer is implemented by every GPU object the bridge owns.
type Destroyer interface {
	Destroy()
}

// TextureID identifies a texture in the draw-command stream.
type TextureID uintptr

// DescriptorPool hands out the descriptor set of the font texture.
type DescriptorPool interface {
	Destroyer
}

// CommandPool provides command buffers for one-shot uploads.
type CommandPool interface {
	Destroyer
}

// Texture is a sampled image bound through its own descriptor set.
type Texture interface {
	Destroyer
	ID() TextureID
}

// Pipeline is the overlay graphics pipeline: alpha blending, no depth test,
// dynamic viewport and scissor, and a projection push constant.
type Pipeline interface {
	Destroyer
}

// BufferUsage says how a Buffer will be bound.
type BufferUsage int

const (
	VertexBufferUsage BufferUsage = iota
	IndexBufferUsage
)

func (u BufferUsage) String() string {
	if u == IndexBufferUsage {
		return "index"
	}
	return "vertex"
}

// Buffer is host visible memory the device reads vertices or indices from.
type Buffer interface {
	Destroyer
	// Bytes is the mapped memory, len(Bytes()) == Cap().
	Bytes() []byte
	Cap() int
	// Flush makes host writes visible to the device.
	Flush() error
}

// IndexType is the width of one index.
type IndexType int

const (
	IndexUint16 IndexType = iota
	IndexUint32
)

// GPU creates the objects the bridge owns. Every object is created on the
// window's logical device.
type GPU interface {
	// NewDescriptorPool creates a pool for sets descriptor sets holding in
	// total samplers combined image samplers.
	NewDescriptorPool(sets, samplers int) (DescriptorPool, error)
	// NewCommandPool creates a pool on the window's graphics queue family.
	NewCommandPool() (CommandPool, error)
	// NewFontTexture uploads atlas to a device local image and blocks until
	// the transfer has completed. The descriptor set is allocated from pool.
	NewFontTexture(cmds CommandPool, pool DescriptorPool, atlas *image.RGBA) (Texture, error)
	NewPipeline(layout VertexLayout) (Pipeline, error)
	NewBuffer(size int, usage BufferUsage) (Buffer, error)
	// WaitIdle blocks until the device has finished all submitted work.
	WaitIdle() error
}

// CmdBuffer is a command buffer inside an active render pass.
type CmdBuffer interface {
	BindPipeline(p Pipeline)
	BindTexture(p Pipeline, t Texture)
	PushConstants(p Pipeline, data []byte)
	SetViewport(width, height float32)
	SetScissor(r Rect[int32])
	BindVertexBuffer(b Buffer, offset int)
	BindIndexBuffer(b Buffer, offset int, t IndexType)
	DrawIndexed(indexCount, firstIndex, vertexOffset int)
}

// Window is the presentation surface the bridge is bound to.
type Window interface {
	// GPU returns the device of the window, or nil if there is none.
	GPU() GPU
	// Size is the window size in screen coordinates.
	Size() (width, height int)
	// Extent is the framebuffer size in pixels.
	Extent() (width, height int)
	// FramesInFlight is the number of frames the host may have submitted
	// and not yet waited on.
	FramesInFlight() int
}

// FrameInput describes the frame about to be built.
type FrameInput struct {
	DisplaySize      Vec2
	FramebufferScale Vec2
	DeltaTime        float32
}

// Frontend is the immediate-mode GUI library.
type Frontend interface {
	// FontAtlas rasterizes the default font atlas.
	FontAtlas() (*image.RGBA, error)
	// SetFontTexture tells the library which id refers to the atlas.
	SetFontTexture(id TextureID)
	Layout() VertexLayout
	NewFrame(in FrameInput)
	// ShowDemoWindow declares the built-in demonstration window. The library
	// may clear *open when the window is closed.
	ShowDemoWindow(open *bool)
	// Render ends the frame and returns its draw-command stream. The stream
	// is only valid until the next NewFrame.
	Render() *DrawData
	// WantCapture reports whether the GUI of the last frame wants the mouse
	// and the keyboard for itself.
	WantCapture() (mouse, keyboard bool)
	Destroy()
}
