package gui

import (
	"fmt"
	"time"
)

type recorderState int

const (
	idle recorderState = iota
	recording
)

// Bridge draws an immediate-mode GUI into a render pass. It is bound to a
// single window and its device for its whole life.
type Bridge struct {
	window   Window
	gpu      GPU
	frontend Frontend
	layout   VertexLayout
	cfg      Config
	now      func() time.Time

	descriptorPool DescriptorPool
	commandPool    CommandPool
	font           Texture
	pipeline       Pipeline
	frames         *frameRing
	textures       map[TextureID]Texture

	callback func()
	showDemo bool

	state     recorderState
	lastFrame time.Time
	stats     FrameStats
	destroyed bool
}

// New creates a bridge for win and acquires its GPU resources: descriptor
// pool, command pool, font texture and pipeline, in that order. The font
// upload blocks until the device has finished it.
//
// The bridge takes ownership of fe and destroys it in Destroy. If New fails,
// every resource acquired so far is released and fe is left to the caller.
func New(win Window, fe Frontend, opts ...Option) (*Bridge, error) {
	if win == nil {
		return nil, ErrNilWindow
	}
	if fe == nil {
		return nil, ErrNilFrontend
	}
	gpu := win.GPU()
	if gpu == nil {
		return nil, ErrNilDevice
	}

	b := &Bridge{
		window:   win,
		gpu:      gpu,
		frontend: fe,
		layout:   fe.Layout(),
		cfg:      DefaultConfig(),
		now:      time.Now,
		textures: make(map[TextureID]Texture),
	}
	for _, opt := range opts {
		opt(b)
	}
	if err := b.cfg.Validate(); err != nil {
		return nil, err
	}
	b.showDemo = b.cfg.ShowDemoWindow

	if err := b.initialize(); err != nil {
		b.release()
		return nil, err
	}
	if err := b.uploadFonts(); err != nil {
		b.release()
		return nil, err
	}
	if err := b.createPipeline(); err != nil {
		b.release()
		return nil, err
	}

	Logger().Info("gui bridge created", "frames", len(b.frames.slots))
	return b, nil
}

func (b *Bridge) initialize() error {
	var err error
	b.descriptorPool, err = b.gpu.NewDescriptorPool(1, 1)
	if err != nil {
		return fmt.Errorf("unable to create descriptor pool: %w", err)
	}
	b.commandPool, err = b.gpu.NewCommandPool()
	if err != nil {
		return fmt.Errorf("unable to create command pool: %w", err)
	}
	return nil
}

func (b *Bridge) uploadFonts() error {
	if b.font != nil {
		return ErrFontsUploaded
	}
	atlas, err := b.frontend.FontAtlas()
	if err != nil {
		return fmt.Errorf("unable to build font atlas: %w", err)
	}
	font, err := b.gpu.NewFontTexture(b.commandPool, b.descriptorPool, atlas)
	if err != nil {
		return fmt.Errorf("unable to upload font atlas: %w", err)
	}
	b.font = font
	b.textures[font.ID()] = font
	b.frontend.SetFontTexture(font.ID())

	Logger().Info("font atlas uploaded",
		"width", atlas.Bounds().Dx(),
		"height", atlas.Bounds().Dy())
	return nil
}

func (b *Bridge) createPipeline() error {
	var err error
	b.pipeline, err = b.gpu.NewPipeline(b.layout)
	if err != nil {
		return fmt.Errorf("unable to create gui pipeline: %w", err)
	}

	vsize, _ := b.cfg.vertexBufferSize()
	isize, _ := b.cfg.indexBufferSize()
	// fewer slots than frames in flight would rewrite buffers the GPU may
	// still be reading
	frames := max(b.cfg.FramesInFlight, b.window.FramesInFlight())
	b.frames = newFrameRing(b.gpu, frames, vsize, isize)
	return nil
}

// release destroys owned resources in reverse order of acquisition.
func (b *Bridge) release() {
	if b.frames != nil {
		b.frames.destroy()
		b.frames = nil
	}
	if b.pipeline != nil {
		b.pipeline.Destroy()
		b.pipeline = nil
	}
	if b.font != nil {
		delete(b.textures, b.font.ID())
		b.font.Destroy()
		b.font = nil
	}
	if b.commandPool != nil {
		b.commandPool.Destroy()
		b.commandPool = nil
	}
	if b.descriptorPool != nil {
		b.descriptorPool.Destroy()
		b.descriptorPool = nil
	}
}

// Destroy waits for the device to finish outstanding work and releases all
// resources. It never panics and may be called more than once; failures are
// logged.
func (b *Bridge) Destroy() {
	if b == nil || b.destroyed {
		return
	}
	b.destroyed = true

	defer func() {
		if r := recover(); r != nil {
			Logger().Error("gui bridge teardown panicked", "panic", r)
		}
	}()

	if err := b.gpu.WaitIdle(); err != nil {
		Logger().Error("unable to wait for device before teardown", "error", err)
	}
	b.release()
	if b.frontend != nil {
		b.frontend.Destroy()
		b.frontend = nil
	}
	Logger().Info("gui bridge destroyed")
}

// SetRenderCallback sets the function declaring the widgets of each frame.
// A nil callback produces frames with only the demo window, if shown.
func (b *Bridge) SetRenderCallback(fn func()) {
	b.callback = fn
}

// SetShowDemoWindow shows or hides the built-in demo window from the next
// frame on.
func (b *Bridge) SetShowDemoWindow(show bool) {
	b.showDemo = show
}

// ShowDemoWindow reports whether the demo window is shown.
func (b *Bridge) ShowDemoWindow() bool {
	return b.showDemo
}

// FontTexture returns the id of the font atlas texture.
func (b *Bridge) FontTexture() TextureID {
	if b.font == nil {
		return 0
	}
	return b.font.ID()
}

// WantCapture reports whether the GUI wants the mouse and the keyboard,
// in which case the host should not forward them to its scene.
func (b *Bridge) WantCapture() (mouse, keyboard bool) {
	if b.destroyed || b.frontend == nil {
		return false, false
	}
	return b.frontend.WantCapture()
}
