package vkbackend

import (
	"errors"
	"fmt"
	"image"
	"path/filepath"

	vkg "github.com/celer/vkgui"
	"github.com/celer/vkgui/gui"
	units "github.com/docker/go-units"
	vk "github.com/vulkan-go/vulkan"
)

const (
	// font atlases are small, the margin covers alignment and the probe
	// image of the pool
	fontPoolMargin = 64 * units.KiB
	projectionSize = 64
)

// GPU implements gui.GPU on the device of a vkg.GraphicsApp.
type GPU struct {
	app  *vkg.GraphicsApp
	opts options

	setLayout   *vkg.DescriptorSetLayout
	samplers    *samplerCache
	bufferPools []*vkg.BufferResourcePool
	nextID      gui.TextureID
}

func newGPU(app *vkg.GraphicsApp, opts options) *GPU {
	return &GPU{app: app, opts: opts, nextID: 1}
}

func (g *GPU) device() *vkg.Device {
	return g.app.Device
}

// descriptorSetLayout is the layout of every texture set: one combined
// image sampler read by the fragment stage.
func (g *GPU) descriptorSetLayout() (*vkg.DescriptorSetLayout, error) {
	if g.setLayout != nil {
		return g.setLayout, nil
	}
	dsl := g.device().NewDescriptorSetLayout()
	dsl.AddBinding(0, vk.DescriptorTypeCombinedImageSampler, vk.ShaderStageFragmentBit, 1)
	if _, err := g.device().CreateDescriptorSetLayout(dsl); err != nil {
		return nil, fmt.Errorf("unable to create descriptor set layout: %w", err)
	}
	g.setLayout = dsl
	return dsl, nil
}

func (g *GPU) sampler(opts vkg.SamplerOptions) (*vkg.Sampler, error) {
	if g.samplers == nil {
		cache, err := newSamplerCache(g.opts.samplerCache, g.device().CreateSampler, (*vkg.Sampler).Destroy)
		if err != nil {
			return nil, err
		}
		g.samplers = cache
	}
	return g.samplers.Get(opts)
}

type DescriptorPool struct {
	pool *vkg.DescriptorPool
}

func (d *DescriptorPool) Destroy() {
	if d.pool != nil {
		d.pool.Destroy()
		d.pool = nil
	}
}

func (g *GPU) NewDescriptorPool(sets, samplers int) (gui.DescriptorPool, error) {
	pool := g.device().NewDescriptorPool()
	pool.AddPoolSize(vk.DescriptorTypeCombinedImageSampler, samplers)
	if _, err := g.device().CreateDescriptorPool(pool, sets); err != nil {
		return nil, err
	}
	return &DescriptorPool{pool: pool}, nil
}

type CommandPool struct {
	pool *vkg.CommandPool
}

func (c *CommandPool) Destroy() {
	if c.pool != nil {
		c.pool.Destroy()
		c.pool = nil
	}
}

func (g *GPU) NewCommandPool() (gui.CommandPool, error) {
	pool, err := g.device().CreateCommandPool(g.app.GraphicsQueue.QueueFamily)
	if err != nil {
		return nil, err
	}
	return &CommandPool{pool: pool}, nil
}

// Texture is a sampled RGBA image with its own descriptor set. The image
// lives in a pool of its own.
type Texture struct {
	id   gui.TextureID
	pool *vkg.ImageResourcePool
	view *vkg.ImageView
	set  *vkg.DescriptorSet
}

func (t *Texture) ID() gui.TextureID {
	return t.id
}

func (t *Texture) Destroy() {
	if t.set != nil {
		t.set.Destroy()
		t.set = nil
	}
	if t.view != nil {
		t.view.Destroy()
		t.view = nil
	}
	if t.pool != nil {
		t.pool.Destroy()
		t.pool = nil
	}
}

func (g *GPU) NewFontTexture(cmds gui.CommandPool, pool gui.DescriptorPool, atlas *image.RGBA) (gui.Texture, error) {
	cp, ok := cmds.(*CommandPool)
	if !ok {
		return nil, fmt.Errorf("command pool of type %T was not created by this backend", cmds)
	}
	dp, ok := pool.(*DescriptorPool)
	if !ok {
		return nil, fmt.Errorf("descriptor pool of type %T was not created by this backend", pool)
	}

	rm := g.app.ResourceManager
	if _, err := rm.EnsureStagingPool(); err != nil {
		return nil, fmt.Errorf("unable to allocate staging pool: %w", err)
	}

	t := &Texture{id: g.nextID}
	var err error
	defer func() {
		if err != nil {
			t.Destroy()
		}
	}()

	b := atlas.Bounds()
	size := uint64(b.Dx()*b.Dy()*4) + fontPoolMargin
	name := fmt.Sprintf("gui-texture-%d", t.id)
	t.pool, err = rm.AllocateDeviceTexturePool(name, size)
	if err != nil {
		return nil, err
	}

	cb, err := cp.pool.AllocateBuffer(vk.CommandBufferLevelPrimary)
	if err != nil {
		return nil, err
	}
	defer cp.pool.FreeBuffer(cb)

	img, err := t.pool.StageTextureFromImage(atlas, cb, g.app.GraphicsQueue)
	if err != nil {
		return nil, err
	}
	t.view, err = img.CreateImageView()
	if err != nil {
		return nil, err
	}
	sampler, err := g.sampler(vkg.LinearClampSampler)
	if err != nil {
		return nil, err
	}
	dsl, err := g.descriptorSetLayout()
	if err != nil {
		return nil, err
	}
	t.set, err = dp.pool.Allocate(dsl)
	if err != nil {
		return nil, err
	}
	t.set.AddCombinedImageSampler(0, vk.ImageLayoutShaderReadOnlyOptimal, t.view.VKImageView, sampler.VKSampler)
	t.set.Write()

	g.nextID++
	gui.Logger().Info("texture uploaded", "id", t.id, "size", units.BytesSize(float64(img.Size)))
	return t, nil
}

// Pipeline is the gui pipeline along with the config owning its layout.
type Pipeline struct {
	pipeline *vkg.GraphicsPipeline
	config   *vkg.GraphicsPipelineConfig
}

func (p *Pipeline) layout() *vkg.PipelineLayout {
	return p.config.GetPipelineLayout()
}

func (p *Pipeline) Destroy() {
	if p.pipeline != nil {
		p.pipeline.Destroy()
		p.pipeline = nil
	}
	if p.config != nil {
		p.config.Destroy()
		p.config = nil
	}
}

// PipelineConfig describes the gui pipeline for layout: alpha blending, no
// culling, no depth and a projection matrix pushed to the vertex stage.
func (g *GPU) PipelineConfig(layout gui.VertexLayout) (*vkg.GraphicsPipelineConfig, error) {
	dsl, err := g.descriptorSetLayout()
	if err != nil {
		return nil, err
	}
	cfg := g.device().CreateGraphicsPipelineConfig()
	cfg.AddVertexDescriptor(vertexLayout(layout)).
		AddDescriptorSetLayout(dsl).
		AddPushConstantRange(vk.ShaderStageVertexBit, 0, projectionSize).
		AddBlendAttachment(vkg.AlphaBlendAttachment()).
		SetCullMode(vk.CullModeNone).
		SetDepth(false, false)

	stages := []struct {
		file  string
		stage vk.ShaderStageFlagBits
	}{
		{"gui.vert.spv", vk.ShaderStageVertexBit},
		{"gui.frag.spv", vk.ShaderStageFragmentBit},
	}
	for _, s := range stages {
		if err := cfg.AddShaderStageFromFile(filepath.Join(g.opts.shaderDir, s.file), "main", s.stage); err != nil {
			cfg.Destroy()
			return nil, err
		}
	}
	if _, err := cfg.CreatePipelineLayout(); err != nil {
		cfg.Destroy()
		return nil, err
	}
	return cfg, nil
}

func (g *GPU) NewPipeline(layout gui.VertexLayout) (gui.Pipeline, error) {
	if g.app.VKRenderPass == vk.NullRenderPass {
		return nil, vkg.ErrNotPrepared
	}
	cfg, err := g.PipelineConfig(layout)
	if err != nil {
		return nil, err
	}
	gp, err := g.device().CreateGraphicsPipeline(g.app.PipelineCache, g.app.VKRenderPass, g.app.SwapchainExtent(), cfg)
	if err != nil {
		cfg.Destroy()
		return nil, err
	}
	return &Pipeline{pipeline: gp, config: cfg}, nil
}

// Buffer is host visible and mapped for its whole life.
type Buffer struct {
	res *vkg.BufferResource
}

func (b *Buffer) Bytes() []byte {
	return b.res.Bytes()
}

func (b *Buffer) Cap() int {
	return int(b.res.Size)
}

func (b *Buffer) Flush() error {
	return b.res.Flush()
}

func (b *Buffer) Destroy() {
	if b.res != nil {
		b.res.Destroy()
		b.res = nil
	}
}

func (g *GPU) NewBuffer(size int, usage gui.BufferUsage) (gui.Buffer, error) {
	for _, pool := range g.bufferPools {
		res, err := pool.AllocateBuffer(uint64(size), bufferUsage(usage))
		if err == nil {
			return &Buffer{res: res}, nil
		}
		if !errors.Is(err, vkg.ErrPoolExhausted) {
			return nil, err
		}
	}

	pool, err := g.newBufferPool(uint64(size))
	if err != nil {
		return nil, err
	}
	res, err := pool.AllocateBuffer(uint64(size), bufferUsage(usage))
	if err != nil {
		return nil, err
	}
	return &Buffer{res: res}, nil
}

// newBufferPool adds a pool holding at least size bytes. Vertex and index
// buffers share pools.
func (g *GPU) newBufferPool(size uint64) (*vkg.BufferResourcePool, error) {
	// room for alignment and the probe buffer of the pool
	size = max(size*2, g.opts.bufferPoolSize)
	name := fmt.Sprintf("gui-buffers-%d", len(g.bufferPools))
	pool, err := g.app.ResourceManager.AllocateHostVertexAndIndexBufferPool(name, size)
	if err != nil {
		return nil, fmt.Errorf("unable to allocate buffer pool: %w", err)
	}
	g.bufferPools = append(g.bufferPools, pool)
	gui.Logger().Info("buffer pool allocated", "name", name, "size", units.BytesSize(float64(size)))
	return pool, nil
}

func (g *GPU) WaitIdle() error {
	return g.device().WaitIdle()
}

func (g *GPU) destroy() {
	for _, pool := range g.bufferPools {
		pool.Destroy()
	}
	g.bufferPools = nil
	if g.samplers != nil {
		g.samplers.Purge()
		g.samplers = nil
	}
	if g.setLayout != nil {
		g.setLayout.Destroy()
		g.setLayout = nil
	}
}
