package gui

import (
	"fmt"
	"unsafe"

	units "github.com/docker/go-units"
	lin "github.com/xlab/linmath"
)

const defaultDeltaTime = float32(1.0 / 60.0)

// FrameStats describes the last recorded frame.
type FrameStats struct {
	Lists       int
	Commands    int
	Draws       int
	Skipped     int
	Callbacks   int
	VertexBytes int
	IndexBytes  int
}

// Render builds one GUI frame: it begins the frame for the window's current
// size, calls the render callback once, declares the demo window if shown
// and ends the frame. The returned stream is valid until the next frame.
func (b *Bridge) Render() (*DrawData, error) {
	if b.destroyed || b.pipeline == nil {
		return nil, ErrNotInitialized
	}
	if b.state == recording {
		return nil, ErrRecording
	}
	b.state = recording
	defer func() { b.state = idle }()

	return b.render(), nil
}

func (b *Bridge) render() *DrawData {
	b.frontend.NewFrame(b.frameInput())
	if b.callback != nil {
		b.callback()
	}
	if b.showDemo {
		b.frontend.ShowDemoWindow(&b.showDemo)
	}
	return b.frontend.Render()
}

func (b *Bridge) frameInput() FrameInput {
	now := b.now()
	dt := defaultDeltaTime
	if !b.lastFrame.IsZero() {
		if d := float32(now.Sub(b.lastFrame).Seconds()); d > 0 {
			dt = d
		}
	}
	b.lastFrame = now

	w, h := b.window.Size()
	fw, fh := b.window.Extent()
	in := FrameInput{
		DisplaySize:      Vec2{X: float32(w), Y: float32(h)},
		FramebufferScale: Vec2{X: 1, Y: 1},
		DeltaTime:        dt,
	}
	if w > 0 && h > 0 {
		in.FramebufferScale = Vec2{X: float32(fw) / float32(w), Y: float32(fh) / float32(h)}
	}
	return in
}

// Record builds the GUI frame and records its draws into cb, which must be
// inside the render pass the bridge's pipeline was created for. Batches are
// recorded in stream order. Batches without indices or whose clip rectangle
// misses the framebuffer are skipped. A stream without indices records
// nothing but still runs its callbacks.
//
// Record must not be entered again while it runs, for example from the
// render callback.
func (b *Bridge) Record(cb CmdBuffer) error {
	if b.destroyed || b.pipeline == nil {
		return ErrNotInitialized
	}
	if b.state == recording {
		return ErrRecording
	}
	b.state = recording
	defer func() { b.state = idle }()

	return b.record(cb, b.render())
}

func (b *Bridge) record(cb CmdBuffer, data *DrawData) error {
	stats := FrameStats{}
	defer func() { b.stats = stats }()

	if data == nil {
		return nil
	}
	if data.ElementCount() == 0 {
		// nothing to draw, but callbacks still run in stream order
		for _, list := range data.Lists {
			for _, cmd := range list.Commands {
				if cmd.Callback != nil {
					cmd.Callback()
					stats.Callbacks++
				}
			}
		}
		return nil
	}
	stats.Lists = len(data.Lists)
	stats.Commands = data.CommandCount()
	stats.VertexBytes, stats.IndexBytes = data.Sizes()

	fb, err := b.frames.acquire(stats.VertexBytes, stats.IndexBytes)
	if err != nil {
		return err
	}
	if err := upload(fb, data); err != nil {
		return err
	}

	width, height := b.window.Extent()
	bound := false
	var current Texture

	vertexBase, indexBase := 0, 0
	for _, list := range data.Lists {
		offset := 0
		for _, cmd := range list.Commands {
			first := offset
			offset += cmd.ElementCount

			if cmd.Callback != nil {
				cmd.Callback()
				stats.Callbacks++
				// the callback may have changed any state
				bound = false
				continue
			}
			if cmd.ElementCount == 0 {
				stats.Skipped++
				continue
			}
			scissor, ok := framebufferScissor(cmd.ClipRect, data.DisplayPos, data.FramebufferScale, width, height)
			if !ok {
				stats.Skipped++
				continue
			}
			tex, ok := b.textures[cmd.Texture]
			if !ok {
				return fmt.Errorf("%w: %d", ErrUnknownTexture, cmd.Texture)
			}

			if !bound {
				b.bindState(cb, fb, data, width, height)
				bound = true
				current = nil
			}
			if tex != current {
				cb.BindTexture(b.pipeline, tex)
				current = tex
			}
			cb.SetScissor(scissor)
			cb.DrawIndexed(cmd.ElementCount, indexBase+first, vertexBase)
			stats.Draws++
		}
		vertexBase += len(list.Vertices) / b.layout.Stride
		indexBase += len(list.Indices) / b.layout.IndexSize
	}

	Logger().Debug("gui frame recorded",
		"draws", stats.Draws,
		"skipped", stats.Skipped,
		"vertices", units.BytesSize(float64(stats.VertexBytes)),
		"indices", units.BytesSize(float64(stats.IndexBytes)))
	return nil
}

func (b *Bridge) bindState(cb CmdBuffer, fb *frameBuffers, data *DrawData, width, height int) {
	cb.BindPipeline(b.pipeline)
	cb.SetViewport(float32(width), float32(height))
	proj := projection(data.DisplayPos, data.DisplaySize)
	cb.PushConstants(b.pipeline, projectionBytes(&proj))
	cb.BindVertexBuffer(fb.vertex, 0)
	cb.BindIndexBuffer(fb.index, 0, b.layout.IndexType())
}

// upload copies all lists back to back into the frame's buffers.
func upload(fb *frameBuffers, data *DrawData) error {
	vdst, idst := fb.vertex.Bytes(), fb.index.Bytes()
	vo, io := 0, 0
	for _, l := range data.Lists {
		vo += copy(vdst[vo:], l.Vertices)
		io += copy(idst[io:], l.Indices)
	}
	if err := fb.vertex.Flush(); err != nil {
		return fmt.Errorf("unable to flush vertex buffer: %w", err)
	}
	if err := fb.index.Flush(); err != nil {
		return fmt.Errorf("unable to flush index buffer: %w", err)
	}
	return nil
}

// projection maps the display rectangle to clip space with y pointing down,
// so the top left corner of the display lands on (-1, -1).
func projection(pos, size Vec2) lin.Mat4x4 {
	var m lin.Mat4x4
	m.Ortho(pos.X, pos.X+size.X, pos.Y, pos.Y+size.Y, -1, 1)
	return m
}

func projectionBytes(m *lin.Mat4x4) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(&m[0][0])), int(unsafe.Sizeof(*m)))
}

// LastFrameStats returns statistics of the last Record call.
func (b *Bridge) LastFrameStats() FrameStats {
	return b.stats
}
