package vkg

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

type Swapchain struct {
	Extent      vk.Extent2D
	Format      vk.Format
	Device      *Device
	VKSwapchain vk.Swapchain
}

func (s *Swapchain) Destroy() {
	vk.DestroySwapchain(s.Device.VKDevice, s.VKSwapchain, nil)
}

// GetImages returns the images of the swapchain, which remain owned by it.
func (s *Swapchain) GetImages() ([]*Image, error) {
	var imageCount uint32
	if err := vk.Error(vk.GetSwapchainImages(s.Device.VKDevice, s.VKSwapchain, &imageCount, nil)); err != nil {
		return nil, err
	}

	swapchainImages := make([]vk.Image, imageCount)
	if err := vk.Error(vk.GetSwapchainImages(s.Device.VKDevice, s.VKSwapchain, &imageCount, swapchainImages)); err != nil {
		return nil, err
	}

	ret := make([]*Image, imageCount)
	for i := range swapchainImages {
		ret[i] = &Image{Device: s.Device, VKImage: swapchainImages[i], VKFormat: s.Format}
	}
	return ret, nil
}

type CreateSwapchainOptions struct {
	OldSwapchain *Swapchain
	// ActualSize is the framebuffer size, used when the surface leaves the
	// extent up to the swapchain.
	ActualSize                vk.Extent2D
	DesiredNumSwapchainImages int
	// VSync selects FIFO presentation even when mailbox is available.
	VSync bool
}

// swapchainImageCount clamps desired to the surface limits, a max of 0
// meaning unlimited.
func swapchainImageCount(desired int, min, max uint32) int {
	if desired < int(min) {
		desired = int(min)
	}
	if max > 0 && desired > int(max) {
		desired = int(max)
	}
	return desired
}

// swapchainExtent picks the surface's current extent unless the surface
// reports 0xFFFFFFFF, in which case actual is clamped to the limits.
func swapchainExtent(current, min, max, actual vk.Extent2D) vk.Extent2D {
	if current.Width != vk.MaxUint32 {
		return current
	}
	clamp := func(v, lo, hi uint32) uint32 {
		if v < lo {
			return lo
		}
		if v > hi {
			return hi
		}
		return v
	}
	return vk.Extent2D{
		Width:  clamp(actual.Width, min.Width, max.Width),
		Height: clamp(actual.Height, min.Height, max.Height),
	}
}

func (p *Device) CreateSwapchain(surface vk.Surface, graphicsQueue, presentQueue *Queue, options *CreateSwapchainOptions) (*Swapchain, error) {
	if options == nil {
		options = &CreateSwapchainOptions{}
	}

	modes, err := p.PhysicalDevice.GetSurfacePresentModes(surface)
	if err != nil {
		return nil, err
	}

	presentMode := vk.PresentModeFifo
	if !options.VSync && modes.Has(vk.PresentModeMailbox) {
		presentMode = vk.PresentModeMailbox
	}

	formats, err := p.PhysicalDevice.GetSurfaceFormats(surface)
	if err != nil {
		return nil, err
	}
	if len(formats) == 0 {
		return nil, fmt.Errorf("surface reports no formats")
	}

	format, ok := formats.Find(func(f vk.SurfaceFormat) bool {
		return f.Format == vk.FormatB8g8r8a8Unorm
	})
	if !ok {
		format = formats[0]
		format.Deref()
	}

	caps, err := p.PhysicalDevice.GetSurfaceCapabilities(surface)
	if err != nil {
		return nil, err
	}

	swapchainSize := swapchainExtent(caps.CurrentExtent, caps.MinImageExtent, caps.MaxImageExtent, options.ActualSize)

	desired := options.DesiredNumSwapchainImages
	if desired == 0 {
		desired = int(caps.MinImageCount) + 1
	}
	imageCount := swapchainImageCount(desired, caps.MinImageCount, caps.MaxImageCount)

	createInfo := &vk.SwapchainCreateInfo{
		SType:            vk.StructureTypeSwapchainCreateInfo,
		Surface:          surface,
		MinImageCount:    uint32(imageCount),
		ImageFormat:      format.Format,
		ImageColorSpace:  format.ColorSpace,
		ImageExtent:      swapchainSize,
		PresentMode:      presentMode,
		ImageUsage:       vk.ImageUsageFlags(vk.ImageUsageColorAttachmentBit),
		ImageArrayLayers: 1,
		Clipped:          vk.True,
		PreTransform:     caps.CurrentTransform,
		CompositeAlpha:   vk.CompositeAlphaOpaqueBit,
		OldSwapchain:     vk.NullSwapchain,
		ImageSharingMode: vk.SharingModeExclusive,
	}

	if options.OldSwapchain != nil {
		createInfo.OldSwapchain = options.OldSwapchain.VKSwapchain
	}

	if graphicsQueue.QueueFamily.Index != presentQueue.QueueFamily.Index {
		createInfo.QueueFamilyIndexCount = 2
		createInfo.PQueueFamilyIndices = []uint32{uint32(graphicsQueue.QueueFamily.Index), uint32(presentQueue.QueueFamily.Index)}
		createInfo.ImageSharingMode = vk.SharingModeConcurrent
	}

	var swapchain vk.Swapchain
	if err := vk.Error(vk.CreateSwapchain(p.VKDevice, createInfo, nil, &swapchain)); err != nil {
		return nil, err
	}

	Logger().Debug("swapchain created",
		"width", swapchainSize.Width,
		"height", swapchainSize.Height,
		"images", imageCount,
		"mailbox", presentMode == vk.PresentModeMailbox)

	return &Swapchain{
		VKSwapchain: swapchain,
		Device:      p,
		Extent:      swapchainSize,
		Format:      format.Format,
	}, nil
}
