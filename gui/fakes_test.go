package gui

import (
	"errors"
	"fmt"
	"image"
)

type fakeObject struct {
	name      string
	gpu       *fakeGPU
	destroyed int
}

func (o *fakeObject) Destroy() {
	o.destroyed++
	o.gpu.destroyed = append(o.gpu.destroyed, o.name)
}

type fakeTexture struct {
	fakeObject
	id TextureID
}

func (t *fakeTexture) ID() TextureID { return t.id }

type fakeBuffer struct {
	fakeObject
	data    []byte
	flushes int
}

func (b *fakeBuffer) Bytes() []byte { return b.data }
func (b *fakeBuffer) Cap() int      { return len(b.data) }
func (b *fakeBuffer) Flush() error {
	b.flushes++
	return nil
}

type fakeGPU struct {
	descriptorPools int
	commandPools    int
	fontUploads     int
	pipelines       int
	buffers         []*fakeBuffer
	waitIdle        int
	destroyed       []string

	failOn   string
	panicOn  string
	waitErr  error
	nextID   TextureID
	lastFont *image.RGBA
}

var errFake = errors.New("fake failure")

func (g *fakeGPU) fail(op string) error {
	if g.panicOn == op {
		panic(op)
	}
	if g.failOn == op {
		return errFake
	}
	return nil
}

func (g *fakeGPU) NewDescriptorPool(sets, samplers int) (DescriptorPool, error) {
	if err := g.fail("descriptorPool"); err != nil {
		return nil, err
	}
	g.descriptorPools++
	return &fakeObject{name: "descriptorPool", gpu: g}, nil
}

func (g *fakeGPU) NewCommandPool() (CommandPool, error) {
	if err := g.fail("commandPool"); err != nil {
		return nil, err
	}
	g.commandPools++
	return &fakeObject{name: "commandPool", gpu: g}, nil
}

func (g *fakeGPU) NewFontTexture(cmds CommandPool, pool DescriptorPool, atlas *image.RGBA) (Texture, error) {
	if err := g.fail("font"); err != nil {
		return nil, err
	}
	g.fontUploads++
	g.lastFont = atlas
	g.nextID++
	return &fakeTexture{fakeObject: fakeObject{name: "font", gpu: g}, id: g.nextID}, nil
}

func (g *fakeGPU) NewPipeline(layout VertexLayout) (Pipeline, error) {
	if err := g.fail("pipeline"); err != nil {
		return nil, err
	}
	g.pipelines++
	return &fakeObject{name: "pipeline", gpu: g}, nil
}

func (g *fakeGPU) NewBuffer(size int, usage BufferUsage) (Buffer, error) {
	if err := g.fail("buffer"); err != nil {
		return nil, err
	}
	b := &fakeBuffer{fakeObject: fakeObject{name: usage.String() + "Buffer", gpu: g}, data: make([]byte, size)}
	g.buffers = append(g.buffers, b)
	return b, nil
}

func (g *fakeGPU) WaitIdle() error {
	if g.panicOn == "waitIdle" {
		panic("waitIdle")
	}
	g.waitIdle++
	return g.waitErr
}

type fakeWindow struct {
	gpu           GPU
	width, height int
	scale         int
	frames        int
}

func newFakeWindow(gpu GPU) *fakeWindow {
	return &fakeWindow{gpu: gpu, width: 800, height: 600, scale: 1, frames: 2}
}

func (w *fakeWindow) GPU() GPU            { return w.gpu }
func (w *fakeWindow) Size() (int, int)    { return w.width, w.height }
func (w *fakeWindow) Extent() (int, int)  { return w.width * w.scale, w.height * w.scale }
func (w *fakeWindow) FramesInFlight() int { return w.frames }

// fakeFrontend emits the stream queued in next, or an empty stream. The
// demo window adds a single batch when declared.
type fakeFrontend struct {
	atlasErr  error
	fontID    TextureID
	frames    []FrameInput
	demoCalls int
	demo      bool
	next      *DrawData
	destroyed int
	mouse     bool
	keyboard  bool
}

func (f *fakeFrontend) FontAtlas() (*image.RGBA, error) {
	if f.atlasErr != nil {
		return nil, f.atlasErr
	}
	return image.NewRGBA(image.Rect(0, 0, 512, 64)), nil
}

func (f *fakeFrontend) SetFontTexture(id TextureID) { f.fontID = id }
func (f *fakeFrontend) Layout() VertexLayout        { return DefaultVertexLayout }
func (f *fakeFrontend) Destroy()                    { f.destroyed++ }
func (f *fakeFrontend) WantCapture() (bool, bool)   { return f.mouse, f.keyboard }

func (f *fakeFrontend) NewFrame(in FrameInput) {
	f.frames = append(f.frames, in)
	f.demo = false
}

func (f *fakeFrontend) ShowDemoWindow(open *bool) {
	f.demoCalls++
	f.demo = true
}

func (f *fakeFrontend) Render() *DrawData {
	in := f.frames[len(f.frames)-1]
	data := &DrawData{DisplaySize: in.DisplaySize, FramebufferScale: in.FramebufferScale}
	if f.next != nil {
		data = f.next
		f.next = nil
	}
	if f.demo {
		data.Lists = append(data.Lists, quadList(f.fontID, Rect[float32]{MinX: 10, MinY: 10, MaxX: 200, MaxY: 100}))
	}
	return data
}

// quadList builds a list of one textured quad.
func quadList(tex TextureID, clips ...Rect[float32]) DrawList {
	l := DrawList{
		Vertices: make([]byte, 4*DefaultVertexLayout.Stride),
		Indices:  make([]byte, 6*len(clips)*DefaultVertexLayout.IndexSize),
	}
	for _, c := range clips {
		l.Commands = append(l.Commands, DrawCmd{ClipRect: c, Texture: tex, ElementCount: 6})
	}
	return l
}

type fakeCmd struct {
	ops       []string
	scissors  []Rect[int32]
	draws     [][3]int
	push      []byte
	textures  []TextureID
	viewports [][2]float32
	vertex    Buffer
}

func (c *fakeCmd) BindPipeline(p Pipeline) { c.ops = append(c.ops, "pipeline") }

func (c *fakeCmd) BindTexture(p Pipeline, t Texture) {
	c.ops = append(c.ops, "texture")
	c.textures = append(c.textures, t.ID())
}

func (c *fakeCmd) PushConstants(p Pipeline, data []byte) {
	c.ops = append(c.ops, "push")
	c.push = append([]byte(nil), data...)
}

func (c *fakeCmd) SetViewport(w, h float32) {
	c.ops = append(c.ops, "viewport")
	c.viewports = append(c.viewports, [2]float32{w, h})
}

func (c *fakeCmd) SetScissor(r Rect[int32]) {
	c.ops = append(c.ops, "scissor")
	c.scissors = append(c.scissors, r)
}

func (c *fakeCmd) BindVertexBuffer(b Buffer, offset int) {
	c.ops = append(c.ops, "vertex")
	c.vertex = b
}

func (c *fakeCmd) BindIndexBuffer(b Buffer, offset int, t IndexType) {
	c.ops = append(c.ops, "index")
}

func (c *fakeCmd) DrawIndexed(count, first, vertexOffset int) {
	c.ops = append(c.ops, "draw")
	c.draws = append(c.draws, [3]int{count, first, vertexOffset})
}

func (c *fakeCmd) count(op string) int {
	n := 0
	for _, o := range c.ops {
		if o == op {
			n++
		}
	}
	return n
}

func (c *fakeCmd) String() string {
	return fmt.Sprint(c.ops)
}
