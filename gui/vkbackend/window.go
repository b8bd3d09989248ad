package vkbackend

import (
	vkg "github.com/celer/vkgui"
	"github.com/celer/vkgui/gui"
	units "github.com/docker/go-units"
)

const (
	// DefaultShaderDir holds gui.vert.spv and gui.frag.spv, relative to the
	// working directory.
	DefaultShaderDir = "gui/vkbackend/shaders"
	// DefaultBufferPoolSize is the size of the host visible memory the
	// vertex and index buffers are allocated from.
	DefaultBufferPoolSize = 8 * units.MiB
)

type options struct {
	shaderDir      string
	bufferPoolSize uint64
	samplerCache   int
}

// Option configures a Window.
type Option func(*options)

// WithShaderDir sets the directory the compiled gui shaders are loaded from.
func WithShaderDir(dir string) Option {
	return func(o *options) { o.shaderDir = dir }
}

// WithBufferPoolSize sets the size of each host visible buffer pool. A new
// pool is allocated whenever the current ones are full.
func WithBufferPoolSize(size uint64) Option {
	return func(o *options) { o.bufferPoolSize = size }
}

// Window is the gui.Window of a vkg.GraphicsApp. It must be created after
// the app has been prepared to draw, the gui pipeline is built against the
// app's render pass.
type Window struct {
	app  *vkg.GraphicsApp
	opts options
	gpu  *GPU
}

func NewWindow(app *vkg.GraphicsApp, opts ...Option) *Window {
	o := options{
		shaderDir:      DefaultShaderDir,
		bufferPoolSize: DefaultBufferPoolSize,
		samplerCache:   8,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Window{app: app, opts: o}
}

// GPU returns the device of the app, or nil before the app is initialized.
func (w *Window) GPU() gui.GPU {
	if w.app == nil || w.app.Device == nil {
		return nil
	}
	if w.gpu == nil {
		w.gpu = newGPU(w.app, w.opts)
	}
	return w.gpu
}

func (w *Window) Size() (width, height int) {
	if w.app == nil || w.app.Window == nil {
		return 0, 0
	}
	return w.app.Window.GetSize()
}

func (w *Window) Extent() (width, height int) {
	if w.app == nil {
		return 0, 0
	}
	e := w.app.SwapchainExtent()
	return int(e.Width), int(e.Height)
}

func (w *Window) FramesInFlight() int {
	if w.app == nil {
		return vkg.DefaultFramesInFlight
	}
	return w.app.NumFramesInFlight()
}

// Destroy releases the objects shared by everything the GPU created. It
// must be called after the bridge has been destroyed and before the app.
func (w *Window) Destroy() {
	if w.gpu != nil {
		w.gpu.destroy()
		w.gpu = nil
	}
}
