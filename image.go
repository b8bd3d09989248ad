package vkg

import (
	vk "github.com/vulkan-go/vulkan"
)

// Image is a 2D image. Swapchain images are owned by the swapchain and
// must not be destroyed.
type Image struct {
	Device   *Device
	VKImage  vk.Image
	VKFormat vk.Format
}

func (d *Device) CreateImageWithOptions(extent vk.Extent2D, format vk.Format, tiling vk.ImageTiling, usage vk.ImageUsageFlagBits) (*Image, error) {
	imageInfo := vk.ImageCreateInfo{
		SType:     vk.StructureTypeImageCreateInfo,
		ImageType: vk.ImageType2d,
		Extent: vk.Extent3D{
			Width:  extent.Width,
			Height: extent.Height,
			Depth:  1,
		},
		MipLevels:     1,
		ArrayLayers:   1,
		Format:        format,
		Tiling:        tiling,
		InitialLayout: vk.ImageLayoutUndefined,
		Usage:         vk.ImageUsageFlags(usage),
		Samples:       vk.SampleCount1Bit,
		SharingMode:   vk.SharingModeExclusive,
	}

	var image vk.Image
	if err := vk.Error(vk.CreateImage(d.VKDevice, &imageInfo, nil, &image)); err != nil {
		return nil, err
	}

	return &Image{Device: d, VKImage: image, VKFormat: format}, nil
}

func (i *Image) VKMemoryRequirements() vk.MemoryRequirements {
	var memRequirements vk.MemoryRequirements
	vk.GetImageMemoryRequirements(i.Device.VKDevice, i.VKImage, &memRequirements)
	memRequirements.Deref()
	return memRequirements
}

func (i *Image) Destroy() {
	if i.VKImage != vk.NullImage {
		vk.DestroyImage(i.Device.VKDevice, i.VKImage, nil)
		i.VKImage = vk.NullImage
	}
}

type ImageView struct {
	Device      *Device
	VKImageView vk.ImageView
}

func (i *ImageView) Destroy() {
	vk.DestroyImageView(i.Device.VKDevice, i.VKImageView, nil)
}

func (i *Image) CreateImageViewWithAspectMask(mask vk.ImageAspectFlagBits) (*ImageView, error) {
	createInfo := &vk.ImageViewCreateInfo{
		SType:    vk.StructureTypeImageViewCreateInfo,
		Image:    i.VKImage,
		ViewType: vk.ImageViewType2d,
		Format:   i.VKFormat,
		Components: vk.ComponentMapping{
			R: vk.ComponentSwizzleR,
			G: vk.ComponentSwizzleG,
			B: vk.ComponentSwizzleB,
			A: vk.ComponentSwizzleA,
		},
		SubresourceRange: vk.ImageSubresourceRange{
			AspectMask: vk.ImageAspectFlags(mask),
			LevelCount: 1,
			LayerCount: 1,
		},
	}

	var view vk.ImageView
	if err := vk.Error(vk.CreateImageView(i.Device.VKDevice, createInfo, nil, &view)); err != nil {
		return nil, err
	}

	return &ImageView{Device: i.Device, VKImageView: view}, nil
}

func (i *Image) CreateImageView() (*ImageView, error) {
	return i.CreateImageViewWithAspectMask(vk.ImageAspectColorBit)
}
