package vkg

import (
	"errors"
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

// ImageResource is an image bound to a range of an image pool, or to its
// own memory when created with NewImageResourceWithOptions.
type ImageResource struct {
	Image
	Size            uint64
	Extent          vk.Extent2D
	ResourcePool    *ImageResourcePool
	Allocation      *Allocation
	StagingResource *BufferResource
	// IndividualPool is set when this resource owns its pool
	IndividualPool bool
}

// NewImageResourceWithOptions creates an image resource with its own
// exclusive memory, as used for depth buffers.
func (r *ResourceManager) NewImageResourceWithOptions(extent vk.Extent2D, format vk.Format, tiling vk.ImageTiling, usage vk.ImageUsageFlagBits, sharing vk.SharingMode, mprops vk.MemoryPropertyFlagBits) (*ImageResource, error) {
	img, err := r.Device.CreateImageWithOptions(extent, format, tiling, usage)
	if err != nil {
		return nil, err
	}

	mr := img.VKMemoryRequirements()

	memory, err := r.Device.Allocate(int(mr.Size), mr.MemoryTypeBits, mprops)
	if err != nil {
		img.Destroy()
		return nil, err
	}

	err = vk.Error(vk.BindImageMemory(r.Device.VKDevice, img.VKImage, memory.VKDeviceMemory, 0))
	if err != nil {
		memory.Destroy()
		img.Destroy()
		return nil, err
	}

	pool := &ImageResourcePool{
		Device:           r.Device,
		Usage:            usage,
		MemoryProperties: mprops,
		Sharing:          sharing,
		Size:             uint64(mr.Size),
		Memory:           memory,
	}

	return &ImageResource{
		Image:          *img,
		Size:           uint64(mr.Size),
		Extent:         extent,
		ResourcePool:   pool,
		IndividualPool: true,
	}, nil
}

// RequiresStaging indicates that this image lives in device memory and
// must be filled through a staging buffer.
func (r *ImageResource) RequiresStaging() bool {
	return r.ResourcePool.NeedsStaging
}

// AllocateStagingResource allocates a host visible buffer large enough to
// hold this image from the staging pool, which the program must create.
// Once allocated it must be explicitly freed.
func (r *ImageResource) AllocateStagingResource() error {
	if !r.ResourcePool.NeedsStaging {
		return fmt.Errorf("resource does not require staging")
	}
	stagingPool := r.ResourcePool.ResourceManager.GetStagingPool()
	if stagingPool == nil {
		return ErrNoStagingPool
	}
	var err error
	r.StagingResource, err = stagingPool.AllocateBuffer(r.Size, vk.BufferUsageTransferSrcBit)
	return err
}

// FreeStagingResource frees the staging buffer of this resource
func (r *ImageResource) FreeStagingResource() {
	if r.StagingResource != nil {
		r.StagingResource.Free()
		r.StagingResource = nil
	}
}

func (r *ImageResource) String() string {
	return fmt.Sprintf("{Image: %dx%d Size: %d}", r.Extent.Width, r.Extent.Height, r.Size)
}

func (r *ImageResource) Destroy() {
	r.Free()
}

// Free this resource and its associated resources
func (r *ImageResource) Free() {
	r.FreeStagingResource()
	if r.IndividualPool && r.ResourcePool != nil {
		r.ResourcePool.Destroy()
		r.ResourcePool = nil
	} else if r.Allocation != nil && r.ResourcePool.Allocator != nil {
		r.ResourcePool.Allocator.Free(r.Allocation)
		r.Allocation = nil
	}
	r.Image.Destroy()
}

// CmdStageImageResource copies the staging buffer of img into the image,
// which must be in TransferDstOptimal layout.
func (c *CommandBuffer) CmdStageImageResource(img *ImageResource) error {
	if img.StagingResource == nil {
		return errors.New("no staging resource has been allocated")
	}
	vk.CmdCopyBufferToImage(c.VK(), img.StagingResource.VKBuffer, img.VKImage, vk.ImageLayoutTransferDstOptimal, 1, []vk.BufferImageCopy{{
		ImageSubresource: vk.ImageSubresourceLayers{
			AspectMask: vk.ImageAspectFlags(vk.ImageAspectColorBit),
			LayerCount: 1,
		},
		ImageExtent: vk.Extent3D{
			Width: img.Extent.Width, Height: img.Extent.Height, Depth: 1,
		},
	}})
	return nil
}

// CmdTransitionImageLayout records a barrier moving img between the layouts
// used to upload a texture.
func (c *CommandBuffer) CmdTransitionImageLayout(img *ImageResource, oldLayout, newLayout vk.ImageLayout) error {
	barrier := vk.ImageMemoryBarrier{
		SType:               vk.StructureTypeImageMemoryBarrier,
		OldLayout:           oldLayout,
		NewLayout:           newLayout,
		SrcQueueFamilyIndex: vk.QueueFamilyIgnored,
		DstQueueFamilyIndex: vk.QueueFamilyIgnored,
		Image:               img.VKImage,
		SubresourceRange: vk.ImageSubresourceRange{
			AspectMask: vk.ImageAspectFlags(vk.ImageAspectColorBit),
			LevelCount: 1,
			LayerCount: 1,
		},
	}

	var sourceStage, destStage vk.PipelineStageFlagBits

	switch {
	case oldLayout == vk.ImageLayoutUndefined && newLayout == vk.ImageLayoutTransferDstOptimal:
		barrier.DstAccessMask = vk.AccessFlags(vk.AccessTransferWriteBit)
		sourceStage = vk.PipelineStageTopOfPipeBit
		destStage = vk.PipelineStageTransferBit
	case oldLayout == vk.ImageLayoutTransferDstOptimal && newLayout == vk.ImageLayoutShaderReadOnlyOptimal:
		barrier.SrcAccessMask = vk.AccessFlags(vk.AccessTransferWriteBit)
		barrier.DstAccessMask = vk.AccessFlags(vk.AccessShaderReadBit)
		sourceStage = vk.PipelineStageTransferBit
		destStage = vk.PipelineStageFragmentShaderBit
	default:
		return fmt.Errorf("unsupported layout transition %d -> %d", oldLayout, newLayout)
	}

	vk.CmdPipelineBarrier(c.VK(), vk.PipelineStageFlags(sourceStage), vk.PipelineStageFlags(destStage), 0, 0, nil, 0, nil, 1, []vk.ImageMemoryBarrier{barrier})
	return nil
}
