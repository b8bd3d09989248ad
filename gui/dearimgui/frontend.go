package dearimgui

import (
	"errors"
	"image"
	"unsafe"

	"github.com/celer/vkgui/gui"
	"github.com/inkyblackness/imgui-go/v4"
)

// ErrDestroyed is returned by FontAtlas once the frontend is destroyed.
var ErrDestroyed = errors.New("dearimgui: frontend destroyed")

// Frontend is a gui.Frontend over its own Dear ImGui context.
type Frontend struct {
	context *imgui.Context
	io      imgui.IO
	input   *InputHandler
	frame   gui.FrameInput
	data    gui.DrawData
}

// New creates a Dear ImGui context and makes it current. No ini file is
// written.
func New() *Frontend {
	context := imgui.CreateContext(nil)
	io := imgui.CurrentIO()
	io.SetIniFilename("")
	return &Frontend{context: context, io: io}
}

// IO returns the input state of the context.
func (f *Frontend) IO() imgui.IO {
	return f.io
}

func (f *Frontend) FontAtlas() (*image.RGBA, error) {
	if f.context == nil {
		return nil, ErrDestroyed
	}
	tex := f.io.Fonts().TextureDataRGBA32()
	if tex == nil || tex.Pixels == nil || tex.Width <= 0 || tex.Height <= 0 {
		return nil, errors.New("dearimgui: font atlas has no pixels")
	}
	img := image.NewRGBA(image.Rect(0, 0, tex.Width, tex.Height))
	copy(img.Pix, unsafe.Slice((*byte)(tex.Pixels), tex.Width*tex.Height*4))
	return img, nil
}

func (f *Frontend) SetFontTexture(id gui.TextureID) {
	f.io.Fonts().SetTextureID(imgui.TextureID(id))
}

func (f *Frontend) Layout() gui.VertexLayout {
	stride, pos, uv, col := imgui.VertexBufferLayout()
	return gui.VertexLayout{
		Stride:      stride,
		PosOffset:   pos,
		UVOffset:    uv,
		ColorOffset: col,
		IndexSize:   imgui.IndexBufferLayout(),
	}
}

func (f *Frontend) NewFrame(in gui.FrameInput) {
	if f.context == nil {
		return
	}
	if err := f.context.SetCurrent(); err != nil {
		gui.Logger().Error("unable to make imgui context current", "error", err)
		return
	}
	f.frame = in
	f.io.SetDisplaySize(imgui.Vec2{X: in.DisplaySize.X, Y: in.DisplaySize.Y})
	f.io.SetDisplayFrameBufferScale(imgui.Vec2{X: in.FramebufferScale.X, Y: in.FramebufferScale.Y})
	if in.DeltaTime > 0 {
		f.io.SetDeltaTime(in.DeltaTime)
	}
	if f.input != nil {
		f.input.update()
	}
	imgui.NewFrame()
}

func (f *Frontend) ShowDemoWindow(open *bool) {
	imgui.ShowDemoWindow(open)
}

// Render ends the frame. The vertex and index bytes of the returned stream
// alias memory owned by the context.
func (f *Frontend) Render() *gui.DrawData {
	if f.context == nil {
		return nil
	}
	imgui.Render()
	return f.convert(imgui.RenderedDrawData())
}

func (f *Frontend) convert(dd imgui.DrawData) *gui.DrawData {
	f.data.Lists = f.data.Lists[:0]
	if !dd.Valid() {
		return &f.data
	}
	// imgui draws the main viewport, its draw data starts at the viewport origin
	pos := imgui.MainViewport().Pos()
	f.data.DisplayPos = gui.Vec2{X: pos.X, Y: pos.Y}
	f.data.DisplaySize = f.frame.DisplaySize
	f.data.FramebufferScale = f.frame.FramebufferScale

	for _, list := range dd.CommandLists() {
		vptr, vsize := list.VertexBuffer()
		iptr, isize := list.IndexBuffer()
		dl := gui.DrawList{
			Vertices: bytesOf(vptr, vsize),
			Indices:  bytesOf(iptr, isize),
		}
		for _, cmd := range list.Commands() {
			dl.Commands = append(dl.Commands, drawCmd(cmd, list))
		}
		f.data.Lists = append(f.data.Lists, dl)
	}
	return &f.data
}

func drawCmd(cmd imgui.DrawCommand, list imgui.DrawList) gui.DrawCmd {
	if cmd.HasUserCallback() {
		return gui.DrawCmd{Callback: func() { cmd.CallUserCallback(list) }}
	}
	clip := cmd.ClipRect()
	return gui.DrawCmd{
		ClipRect:     gui.Rect[float32]{MinX: clip.X, MinY: clip.Y, MaxX: clip.Z, MaxY: clip.W},
		Texture:      gui.TextureID(cmd.TextureID()),
		ElementCount: cmd.ElementCount(),
	}
}

func bytesOf(ptr unsafe.Pointer, size int) []byte {
	if ptr == nil || size <= 0 {
		return nil
	}
	return unsafe.Slice((*byte)(ptr), size)
}

func (f *Frontend) WantCapture() (mouse, keyboard bool) {
	if f.context == nil {
		return false, false
	}
	return f.io.WantCaptureMouse(), f.io.WantCaptureKeyboard()
}

// Destroy destroys the context. It may be called more than once.
func (f *Frontend) Destroy() {
	if f.context == nil {
		return
	}
	f.context.Destroy()
	f.context = nil
	f.input = nil
	f.data = gui.DrawData{}
}
