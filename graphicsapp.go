package vkg

import (
	"errors"
	"fmt"
	"slices"

	"github.com/vulkan-go/glfw/v3.3/glfw"
	vk "github.com/vulkan-go/vulkan"
)

// DefaultFramesInFlight is the number of frames the host may record ahead
// of the device when GraphicsApp.FramesInFlight is not set.
const DefaultFramesInFlight = 2

// frameSync holds the objects owned by one frame in flight
type frameSync struct {
	cmd            *CommandBuffer
	imageAvailable vk.Semaphore
	renderFinished vk.Semaphore
	inFlight       vk.Fence
}

// GraphicsApp owns the instance, device, swapchain and render pass of a
// windowed Vulkan program and drives its frame loop.
//
// Each frame is recorded into a single primary command buffer: the render pass is
// begun with the clear values, the Graph is recorded node by node and the pass is ended.
//
// Up to NumFramesInFlight frames are recorded ahead of the GPU, each guarded
// by its own fence and semaphore pair.
type GraphicsApp struct {
	Instance *Instance
	App      *App

	Window    *glfw.Window
	VKSurface vk.Surface

	Device         *Device
	PhysicalDevice *PhysicalDevice

	GraphicsPipelineConfigs map[string]IGraphicsPipelineConfig

	// Generated from GraphicsPipelineConfigs by PrepareToDraw
	GraphicsPipelines map[string]*GraphicsPipeline

	ResourceManager *ResourceManager

	GraphicsQueue *Queue
	PresentQueue  *Queue
	PipelineCache *PipelineCache

	GraphicsCommandPool *CommandPool

	// FramesInFlight is the number of frames recorded ahead of the device,
	// defaults to DefaultFramesInFlight. It must be set before PrepareToDraw.
	FramesInFlight int
	// VSync selects FIFO presentation
	VSync bool

	ClearColor [4]float32
	ClearDepth float32

	// Graph is recorded inside the render pass every frame
	Graph *RenderGraph

	frames     []frameSync
	frameIndex int

	screenExtent vk.Extent2D

	Swapchain           *Swapchain
	SwapchainImages     []*Image
	SwapchainImageViews []*ImageView
	DepthImage          *ImageResource
	DepthImageView      *ImageView
	Framebuffers        []vk.Framebuffer

	resized  bool
	prepared bool

	VKRenderPass vk.RenderPass

	// ConfigureRenderPass is a call back which can be supplied to
	// allow for customization of the render pass
	ConfigureRenderPass func(renderPass *vk.RenderPassCreateInfo)
}

// NewGraphicsApp creates a new graphics app with the given name and version
func NewGraphicsApp(name string, version Version) (*GraphicsApp, error) {
	return &GraphicsApp{
		App:            &App{Name: name, Version: version},
		FramesInFlight: DefaultFramesInFlight,
		ClearDepth:     1.0,
		Graph:          NewRenderGraph(),
	}, nil
}

// PhysicalDevices returns a list of physical devices
func (p *GraphicsApp) PhysicalDevices() ([]*PhysicalDevice, error) {
	if p.Instance == nil {
		return nil, errors.New("platform hasn't been initialized yet")
	}
	return p.Instance.PhysicalDevices()
}

// EnableLayer enables a specific layer if it is supported
func (p *GraphicsApp) EnableLayer(layer string) error {
	return p.App.EnableLayer(layer)
}

// CreateGraphicsPipelineConfig creates a graphic pipeline configuration for customization
func (p *GraphicsApp) CreateGraphicsPipelineConfig() *GraphicsPipelineConfig {
	return p.Device.CreateGraphicsPipelineConfig()
}

// AddGraphicsPipelineConfig adds this graphic pipeline config back into the app,
// the pipeline is created by PrepareToDraw and the config destroyed with the app
func (p *GraphicsApp) AddGraphicsPipelineConfig(name string, config IGraphicsPipelineConfig) {
	if p.GraphicsPipelineConfigs == nil {
		p.GraphicsPipelineConfigs = make(map[string]IGraphicsPipelineConfig)
	}
	p.GraphicsPipelineConfigs[name] = config
}

// GraphicsPipeline returns the pipeline created for the named config
func (p *GraphicsApp) GraphicsPipeline(name string) *GraphicsPipeline {
	return p.GraphicsPipelines[name]
}

// EnableExtension enables a specific extension if it is supported
func (p *GraphicsApp) EnableExtension(extension string) error {
	supportedExtensions, err := SupportedExtensions()
	if err != nil {
		return err
	}
	for _, e := range supportedExtensions {
		if extension == e {
			p.App.EnableExtension(extension)
			return nil
		}
	}
	return fmt.Errorf("extension '%s' is not supported", extension)
}

// EnableDebugging enables the validation layer, it must be called before Init
func (p *GraphicsApp) EnableDebugging() error {
	if p.Instance != nil {
		return errors.New("debugging must be enabled prior to initialization")
	}
	return p.App.EnableDebugging()
}

// NumFramesInFlight returns the effective number of frames in flight
func (p *GraphicsApp) NumFramesInFlight() int {
	if p.FramesInFlight < 1 {
		return DefaultFramesInFlight
	}
	return p.FramesInFlight
}

// Init creates the instance, picks a device able to present to the window and
// creates the queues, command pool and resource manager
func (p *GraphicsApp) Init() error {
	var err error

	p.Instance, err = p.App.CreateInstance()
	if err != nil {
		return err
	}

	if slices.Contains(p.App.EnabledExtensions, "VK_EXT_debug_report") {
		if err := p.Instance.UseDefaultDebugCallback(); err != nil {
			Logger().Warn("unable to install debug callback", "error", err)
		}
	}

	if p.Window != nil && p.VKSurface == vk.NullSurface {
		surface, err := p.Window.CreateWindowSurface(p.Instance.VKInstance, nil)
		if err != nil {
			return fmt.Errorf("unable to create window surface: %w", err)
		}
		p.VKSurface = vk.SurfaceFromPointer(surface)
	}

	physicalDevices, err := p.Instance.PhysicalDevices()
	if err != nil {
		return fmt.Errorf("error getting devices: %w", err)
	}

	pdevice, err := PickPhysicalDevice(physicalDevices, p.VKSurface)
	if err != nil {
		return err
	}

	queues, err := pdevice.QueueFamilies()
	if err != nil {
		return fmt.Errorf("unable to load device queue families: %w", err)
	}

	var enabledExtensions []string
	if p.Window != nil {
		enabledExtensions = []string{"VK_KHR_swapchain"}
	}

	gqueues := queues.FilterGraphicsAndPresent(p.VKSurface)
	ldevice, err := pdevice.CreateLogicalDeviceWithOptions(gqueues, &CreateDeviceOptions{
		EnabledExtensions: enabledExtensions,
	})
	if err != nil {
		return fmt.Errorf("unable to create device: %w", err)
	}

	p.Device = ldevice
	p.PhysicalDevice = pdevice

	queue := ldevice.GetQueue(gqueues[0])
	p.GraphicsQueue = queue
	p.PresentQueue = queue

	p.GraphicsCommandPool, err = p.Device.CreateCommandPool(p.GraphicsQueue.QueueFamily)
	if err != nil {
		return err
	}

	p.ResourceManager = p.Device.CreateResourceManager()

	return nil
}

// SetWindow sets the GLFW window for the graphics app
func (p *GraphicsApp) SetWindow(window *glfw.Window) error {
	if p.Instance != nil {
		return errors.New("window must be set prior to initialization")
	}

	p.Window = window

	for _, ext := range p.Window.GetRequiredInstanceExtensions() {
		if err := p.EnableExtension(ext); err != nil {
			return fmt.Errorf("extension '%s' required to enable glfw is not supported by vulkan: %w", ext, err)
		}
	}

	p.refreshScreenExtent()

	return nil
}

// PrepareToDraw creates the swapchain, render pass, pipelines, framebuffers and the
// objects of every frame in flight. It must be called after Init.
func (p *GraphicsApp) PrepareToDraw() error {
	if err := p.prepareToDraw(); err != nil {
		return err
	}
	p.prepared = true
	return nil
}

func (p *GraphicsApp) prepareToDraw() error {
	if err := p.createSwapchainAndImages(nil); err != nil {
		return err
	}
	if err := p.createRenderer(); err != nil {
		return err
	}

	var err error
	p.PipelineCache, err = p.Device.CreatePipelineCache()
	if err != nil {
		return err
	}
	if err := p.createGraphicsPipelines(); err != nil {
		return err
	}
	if err := p.createDepthImage(); err != nil {
		return err
	}
	if err := p.createFramebuffers(); err != nil {
		return err
	}
	if err := p.createFrames(); err != nil {
		return err
	}

	p.frameIndex = 0
	return nil
}

// resize rebuilds the swapchain and everything sized after it. The render
// pass and pipelines are kept since viewport and scissor are dynamic.
func (p *GraphicsApp) resize() error {
	if err := p.Device.WaitIdle(); err != nil {
		return err
	}

	p.refreshScreenExtent()
	if p.screenExtent.Width == 0 || p.screenExtent.Height == 0 {
		// minimized, keep the old swapchain until we have a size again
		return nil
	}

	p.destroyFramebuffers()
	p.destroyDepthImage()
	for _, view := range p.SwapchainImageViews {
		view.Destroy()
	}
	p.SwapchainImageViews = nil

	old := p.Swapchain
	err := p.createSwapchainAndImages(old)
	old.Destroy()
	if err != nil {
		return err
	}
	if err := p.createDepthImage(); err != nil {
		return err
	}
	if err := p.createFramebuffers(); err != nil {
		return err
	}

	p.resized = false
	Logger().Debug("swapchain resized", "width", p.Swapchain.Extent.Width, "height", p.Swapchain.Extent.Height)
	return nil
}

// Resize is used to signal that we need to resize
func (p *GraphicsApp) Resize() {
	p.refreshScreenExtent()
	p.resized = true
}

// DrawFrame records the Graph for the next frame in flight, submits it and
// presents the result. It only blocks when the device is more than
// NumFramesInFlight frames behind. When the Graph fails to record, a frame
// with only the clears is presented instead and the error is returned, so
// the next call can proceed.
func (p *GraphicsApp) DrawFrame() error {
	if !p.prepared {
		return ErrNotPrepared
	}
	if p.resized {
		return p.resize()
	}
	if p.screenExtent.Width == 0 || p.screenExtent.Height == 0 {
		return nil
	}

	f := &p.frames[p.frameIndex]

	if err := p.Device.waitForFences(true, vk.MaxUint64, f.inFlight); err != nil {
		return err
	}

	var imageIndex uint32
	res := vk.AcquireNextImage(p.Device.VKDevice, p.Swapchain.VKSwapchain, vk.MaxUint64, f.imageAvailable, vk.NullFence, &imageIndex)
	if res == vk.ErrorOutOfDate {
		return p.resize()
	}
	if res != vk.Suboptimal {
		if err := vk.Error(res); err != nil {
			return fmt.Errorf("unable to acquire swapchain image: %w", err)
		}
	}

	var graph Command
	if p.Graph != nil {
		graph = p.Graph
	}
	fb := p.Framebuffers[imageIndex]
	recorded, recErr := recordOrClear(func(graph Command) error {
		return p.recordFrame(f.cmd, fb, graph)
	}, graph)

	// the fence is reset only once work that signals it is submitted
	if err := p.Device.resetFences(f.inFlight); err != nil {
		return errors.Join(recErr, err)
	}

	if !recorded {
		// nothing to execute, still consume the acquire semaphore and
		// signal the fence so the slot can be reused
		release := []vk.SubmitInfo{{
			SType:              vk.StructureTypeSubmitInfo,
			WaitSemaphoreCount: 1,
			PWaitSemaphores:    []vk.Semaphore{f.imageAvailable},
			PWaitDstStageMask:  []vk.PipelineStageFlags{vk.PipelineStageFlags(vk.PipelineStageBottomOfPipeBit)},
		}}
		if err := vk.Error(vk.QueueSubmit(p.GraphicsQueue.VKQueue, 1, release, f.inFlight)); err != nil {
			return errors.Join(recErr, err)
		}
		return recErr
	}

	submitInfo := []vk.SubmitInfo{{
		SType:                vk.StructureTypeSubmitInfo,
		WaitSemaphoreCount:   1,
		PWaitSemaphores:      []vk.Semaphore{f.imageAvailable},
		PWaitDstStageMask:    []vk.PipelineStageFlags{vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit)},
		CommandBufferCount:   1,
		PCommandBuffers:      []vk.CommandBuffer{f.cmd.VKCommandBuffer},
		SignalSemaphoreCount: 1,
		PSignalSemaphores:    []vk.Semaphore{f.renderFinished},
	}}
	if err := vk.Error(vk.QueueSubmit(p.GraphicsQueue.VKQueue, 1, submitInfo, f.inFlight)); err != nil {
		return fmt.Errorf("unable to submit frame: %w", err)
	}

	presentInfo := vk.PresentInfo{
		SType:              vk.StructureTypePresentInfo,
		WaitSemaphoreCount: 1,
		PWaitSemaphores:    []vk.Semaphore{f.renderFinished},
		SwapchainCount:     1,
		PSwapchains:        []vk.Swapchain{p.Swapchain.VKSwapchain},
		PImageIndices:      []uint32{imageIndex},
	}

	p.frameIndex = (p.frameIndex + 1) % len(p.frames)

	res = vk.QueuePresent(p.PresentQueue.VKQueue, &presentInfo)
	var err error
	if res == vk.ErrorOutOfDate || res == vk.Suboptimal || p.resized {
		err = p.resize()
	} else {
		err = vk.Error(res)
	}
	return errors.Join(recErr, err)
}

// recordOrClear records graph through record. When that fails it records the
// frame again without a graph, leaving only the clears of the render pass,
// so the acquired image can still be submitted and presented. recorded is
// false when not even that worked.
func recordOrClear(record func(graph Command) error, graph Command) (recorded bool, err error) {
	err = record(graph)
	if err == nil {
		return true, nil
	}
	if cerr := record(nil); cerr != nil {
		return false, errors.Join(err, cerr)
	}
	return true, err
}

func (p *GraphicsApp) recordFrame(cmd *CommandBuffer, framebuffer vk.Framebuffer, graph Command) error {
	if err := cmd.Reset(); err != nil {
		return err
	}
	if err := cmd.BeginOneTime(); err != nil {
		return err
	}

	clearValues := make([]vk.ClearValue, 2)
	clearValues[0].SetColor(p.ClearColor[:])
	clearValues[1].SetDepthStencil(p.ClearDepth, 0)

	cmd.CmdBeginRenderPass(p.VKRenderPass, framebuffer, p.Swapchain.Extent, clearValues)
	var err error
	if graph != nil {
		err = graph.Record(cmd)
	}
	cmd.CmdEndRenderPass()
	if err != nil {
		cmd.End()
		return err
	}
	return cmd.End()
}

func (p *GraphicsApp) createGraphicsPipelines() error {
	p.GraphicsPipelines = make(map[string]*GraphicsPipeline)
	if len(p.GraphicsPipelineConfigs) == 0 {
		return nil
	}

	names := make([]string, 0, len(p.GraphicsPipelineConfigs))
	configs := make([]IGraphicsPipelineConfig, 0, len(p.GraphicsPipelineConfigs))
	for name, c := range p.GraphicsPipelineConfigs {
		names = append(names, name)
		configs = append(configs, c)
	}

	pipelines, err := p.Device.CreateGraphicsPipelines(p.PipelineCache, p.VKRenderPass, p.GetScreenExtent(), configs...)
	if err != nil {
		return err
	}
	for i, name := range names {
		p.GraphicsPipelines[name] = pipelines[i]
	}
	return nil
}

func (p *GraphicsApp) destroyGraphicsPipelines() {
	for _, g := range p.GraphicsPipelines {
		g.Destroy()
	}
	p.GraphicsPipelines = nil
}

func (p *GraphicsApp) refreshScreenExtent() {
	if p.Window != nil {
		width, height := p.Window.GetFramebufferSize()
		p.screenExtent = vk.Extent2D{Width: uint32(width), Height: uint32(height)}
	}
}

// GetScreenExtent gets the current framebuffer size of the window
func (p *GraphicsApp) GetScreenExtent() vk.Extent2D {
	return p.screenExtent
}

// SwapchainExtent is the size of the images being rendered to
func (p *GraphicsApp) SwapchainExtent() vk.Extent2D {
	if p.Swapchain == nil {
		return p.screenExtent
	}
	return p.Swapchain.Extent
}

// Destroy tears down the graphics application
func (p *GraphicsApp) Destroy() {
	if p.Device != nil {
		if err := p.Device.WaitIdle(); err != nil {
			Logger().Error("unable to wait for device", "error", err)
		}
	}

	if p.prepared {
		p.destroyFrames()
		p.destroyFramebuffers()
		p.destroyDepthImage()
		p.destroyGraphicsPipelines()
		p.PipelineCache.Destroy()
		p.destroyRenderer()
		p.destroySwapchainAndImages()
		p.prepared = false
	}

	for _, g := range p.GraphicsPipelineConfigs {
		g.Destroy()
	}
	p.GraphicsPipelineConfigs = nil

	if p.ResourceManager != nil {
		p.ResourceManager.Destroy()
	}
	if p.GraphicsCommandPool != nil {
		p.GraphicsCommandPool.Destroy()
	}
	if p.VKSurface != vk.NullSurface {
		vk.DestroySurface(p.Instance.VKInstance, p.VKSurface, nil)
		p.VKSurface = vk.NullSurface
	}
	if p.Device != nil {
		p.Device.Destroy()
	}
	if p.Instance != nil {
		p.Instance.Destroy()
	}
}

// VKRenderPassCreateInfo describes the default single subpass render pass
// with a color and a depth attachment. ConfigureRenderPass may amend it.
func (p *GraphicsApp) VKRenderPassCreateInfo() vk.RenderPassCreateInfo {
	attachmentDescriptions := []vk.AttachmentDescription{{
		Format:         p.Swapchain.Format,
		Samples:        vk.SampleCount1Bit,
		LoadOp:         vk.AttachmentLoadOpClear,
		StoreOp:        vk.AttachmentStoreOpStore,
		StencilLoadOp:  vk.AttachmentLoadOpDontCare,
		StencilStoreOp: vk.AttachmentStoreOpDontCare,
		InitialLayout:  vk.ImageLayoutUndefined,
		FinalLayout:    vk.ImageLayoutPresentSrc,
	}, {
		Format:         vk.FormatD32Sfloat,
		Samples:        vk.SampleCount1Bit,
		LoadOp:         vk.AttachmentLoadOpClear,
		StoreOp:        vk.AttachmentStoreOpDontCare,
		StencilLoadOp:  vk.AttachmentLoadOpDontCare,
		StencilStoreOp: vk.AttachmentStoreOpDontCare,
		InitialLayout:  vk.ImageLayoutUndefined,
		FinalLayout:    vk.ImageLayoutDepthStencilAttachmentOptimal,
	}}

	depthAttachmentRef := vk.AttachmentReference{
		Attachment: 1,
		Layout:     vk.ImageLayoutDepthStencilAttachmentOptimal,
	}

	colorAttachments := []vk.AttachmentReference{{
		Attachment: 0,
		Layout:     vk.ImageLayoutColorAttachmentOptimal,
	}}

	subpassDescriptions := []vk.SubpassDescription{{
		PipelineBindPoint:       vk.PipelineBindPointGraphics,
		ColorAttachmentCount:    1,
		PColorAttachments:       colorAttachments,
		PDepthStencilAttachment: &depthAttachmentRef,
	}}

	dependency := vk.SubpassDependency{
		SrcSubpass:    vk.SubpassExternal,
		DstSubpass:    0,
		SrcStageMask:  vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit | vk.PipelineStageEarlyFragmentTestsBit),
		SrcAccessMask: 0,
		DstStageMask:  vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit | vk.PipelineStageEarlyFragmentTestsBit),
		DstAccessMask: vk.AccessFlags(vk.AccessColorAttachmentWriteBit | vk.AccessDepthStencilAttachmentWriteBit),
	}

	return vk.RenderPassCreateInfo{
		SType:           vk.StructureTypeRenderPassCreateInfo,
		AttachmentCount: uint32(len(attachmentDescriptions)),
		PAttachments:    attachmentDescriptions,
		SubpassCount:    1,
		PSubpasses:      subpassDescriptions,
		DependencyCount: 1,
		PDependencies:   []vk.SubpassDependency{dependency},
	}
}

func (p *GraphicsApp) createRenderer() error {
	renderPassCreateInfo := p.VKRenderPassCreateInfo()

	if p.ConfigureRenderPass != nil {
		p.ConfigureRenderPass(&renderPassCreateInfo)
	}

	var renderPass vk.RenderPass
	if err := vk.Error(vk.CreateRenderPass(p.Device.VKDevice, &renderPassCreateInfo, nil, &renderPass)); err != nil {
		return fmt.Errorf("unable to create render pass: %w", err)
	}
	p.VKRenderPass = renderPass
	return nil
}

func (p *GraphicsApp) destroyRenderer() {
	vk.DestroyRenderPass(p.Device.VKDevice, p.VKRenderPass, nil)
	p.VKRenderPass = vk.NullRenderPass
}

func (p *GraphicsApp) createSwapchainAndImages(old *Swapchain) error {
	swapchain, err := p.Device.CreateSwapchain(p.VKSurface, p.GraphicsQueue, p.PresentQueue, &CreateSwapchainOptions{
		OldSwapchain: old,
		ActualSize:   p.GetScreenExtent(),
		VSync:        p.VSync,
	})
	if err != nil {
		return err
	}
	p.Swapchain = swapchain

	images, err := swapchain.GetImages()
	if err != nil {
		return err
	}
	p.SwapchainImages = images

	p.SwapchainImageViews = make([]*ImageView, 0, len(images))
	for _, image := range images {
		view, err := image.CreateImageView()
		if err != nil {
			return err
		}
		p.SwapchainImageViews = append(p.SwapchainImageViews, view)
	}
	return nil
}

func (p *GraphicsApp) destroySwapchainAndImages() {
	for _, view := range p.SwapchainImageViews {
		view.Destroy()
	}
	p.SwapchainImageViews = nil
	// swapchain images are owned by the swapchain
	p.SwapchainImages = nil
	p.Swapchain.Destroy()
}

func (p *GraphicsApp) createDepthImage() error {
	var err error
	p.DepthImage, err = p.ResourceManager.NewImageResourceWithOptions(p.Swapchain.Extent, vk.FormatD32Sfloat, vk.ImageTilingOptimal, vk.ImageUsageDepthStencilAttachmentBit, vk.SharingModeExclusive, vk.MemoryPropertyDeviceLocalBit)
	if err != nil {
		return fmt.Errorf("unable to create depth image: %w", err)
	}

	p.DepthImageView, err = p.DepthImage.CreateImageViewWithAspectMask(vk.ImageAspectDepthBit)
	return err
}

func (p *GraphicsApp) destroyDepthImage() {
	if p.DepthImageView != nil {
		p.DepthImageView.Destroy()
		p.DepthImageView = nil
	}
	if p.DepthImage != nil {
		p.DepthImage.Destroy()
		p.DepthImage = nil
	}
}

func (p *GraphicsApp) createFramebuffers() error {
	p.Framebuffers = make([]vk.Framebuffer, len(p.SwapchainImageViews))
	for i, view := range p.SwapchainImageViews {
		attachments := []vk.ImageView{
			view.VKImageView,
			p.DepthImageView.VKImageView,
		}
		fbCreateInfo := vk.FramebufferCreateInfo{
			SType:           vk.StructureTypeFramebufferCreateInfo,
			RenderPass:      p.VKRenderPass,
			Layers:          1,
			AttachmentCount: uint32(len(attachments)),
			PAttachments:    attachments,
			Width:           p.Swapchain.Extent.Width,
			Height:          p.Swapchain.Extent.Height,
		}
		if err := vk.Error(vk.CreateFramebuffer(p.Device.VKDevice, &fbCreateInfo, nil, &p.Framebuffers[i])); err != nil {
			return err
		}
	}
	return nil
}

func (p *GraphicsApp) destroyFramebuffers() {
	for i := range p.Framebuffers {
		vk.DestroyFramebuffer(p.Device.VKDevice, p.Framebuffers[i], nil)
	}
	p.Framebuffers = nil
}

func (p *GraphicsApp) createFrames() error {
	n := p.NumFramesInFlight()
	cmds, err := p.GraphicsCommandPool.AllocateBuffers(vk.CommandBufferLevelPrimary, n)
	if err != nil {
		return err
	}

	p.frames = make([]frameSync, n)
	for i := range p.frames {
		f := &p.frames[i]
		f.cmd = cmds[i]
		if f.imageAvailable, err = p.Device.VKCreateSemaphore(); err != nil {
			return err
		}
		if f.renderFinished, err = p.Device.VKCreateSemaphore(); err != nil {
			return err
		}
		// signaled so the first wait on every frame returns at once
		if f.inFlight, err = p.Device.VKCreateFence(true); err != nil {
			return err
		}
	}
	Logger().Debug("frames in flight created", "frames", n)
	return nil
}

func (p *GraphicsApp) destroyFrames() {
	for _, f := range p.frames {
		if f.cmd != nil {
			p.GraphicsCommandPool.FreeBuffer(f.cmd)
		}
		p.Device.VKDestroySemaphore(f.imageAvailable)
		p.Device.VKDestroySemaphore(f.renderFinished)
		p.Device.VKDestroyFence(f.inFlight)
	}
	p.frames = nil
}
