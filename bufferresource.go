package vkg

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

// BufferResource is a buffer, for example a vertex buffer, index buffer or
// UBO, bound to a range of a larger pool of device memory. Vulkan limits
// the number of memory allocations an application may make, so buffers are
// sub allocated from pools managed by the ResourceManager.
type BufferResource struct {
	Buffer
	ResourcePool    *BufferResourcePool
	Allocation      *Allocation
	StagingResource *BufferResource
}

// VKMappedMemoryRange covers the allocation of this buffer, see
// Device.FlushMappedRanges.
func (r *BufferResource) VKMappedMemoryRange() vk.MappedMemoryRange {
	return vk.MappedMemoryRange{
		SType:  vk.StructureTypeMappedMemoryRange,
		Memory: r.ResourcePool.Memory.VKDeviceMemory,
		Offset: vk.DeviceSize(r.Allocation.Offset),
		Size:   vk.DeviceSize(r.Allocation.Size),
	}
}

// RequiresStaging indicates that this buffer lives in device memory and
// must be filled through a staging buffer.
func (r *BufferResource) RequiresStaging() bool {
	return r.ResourcePool.NeedsStaging
}

func (r *BufferResource) String() string {
	return fmt.Sprintf("{Pool: %s Allocation: %s}", r.ResourcePool.Name, r.Allocation)
}

// AllocateStagingResource allocates a host visible buffer of the same size
// from the staging pool. It is released by FreeStagingResource or Free.
func (r *BufferResource) AllocateStagingResource() error {
	if !r.ResourcePool.NeedsStaging {
		return fmt.Errorf("resource does not require staging")
	}
	stagingPool := r.ResourcePool.ResourceManager.GetStagingPool()
	if stagingPool == nil {
		return ErrNoStagingPool
	}
	var err error
	r.StagingResource, err = stagingPool.AllocateBuffer(r.Buffer.Size, vk.BufferUsageTransferSrcBit)
	return err
}

// FreeStagingResource frees the staging buffer of this resource
func (r *BufferResource) FreeStagingResource() {
	if r.StagingResource != nil {
		r.StagingResource.Free()
		r.StagingResource = nil
	}
}

// Stage fills this device local buffer with data through a staging buffer.
// The copy is recorded into cmd, submitted to queue and waited for.
func (r *BufferResource) Stage(data []byte, cmd *CommandBuffer, queue *Queue) error {
	if uint64(len(data)) > r.Buffer.Size {
		return fmt.Errorf("%d bytes do not fit buffer %s", len(data), r)
	}
	if err := r.AllocateStagingResource(); err != nil {
		return err
	}
	defer r.FreeStagingResource()

	dst := r.StagingResource.Bytes()
	if dst == nil {
		return fmt.Errorf("staging buffer of %s is not mapped", r)
	}
	copy(dst, data)
	if err := r.StagingResource.Flush(); err != nil {
		return err
	}

	if err := cmd.BeginOneTime(); err != nil {
		return err
	}
	cmd.CmdCopyBufferFromStagedResource(r)
	if err := cmd.End(); err != nil {
		return err
	}

	f, err := r.Device.CreateFence()
	if err != nil {
		return err
	}
	defer f.Destroy()
	if err := queue.SubmitWithFence(f, cmd); err != nil {
		return err
	}
	return f.Wait()
}

// CmdCopyBufferFromStagedResource fills resource from its staging buffer.
func (c *CommandBuffer) CmdCopyBufferFromStagedResource(resource *BufferResource) {
	vk.CmdCopyBuffer(c.VK(), resource.StagingResource.VKBuffer, resource.VKBuffer, 1, []vk.BufferCopy{{
		SrcOffset: 0,
		DstOffset: 0,
		Size:      vk.DeviceSize(resource.Buffer.Size),
	}})
}

// Bytes returns the mapped memory of this buffer, or nil when the buffer
// lives in device memory or its pool is not mapped.
func (r *BufferResource) Bytes() []byte {
	if r.RequiresStaging() || r.Allocation == nil {
		return nil
	}
	return r.ResourcePool.Memory.Bytes(r.Allocation.Offset, r.Buffer.Size)
}

// Flush makes host writes visible to the device. It is a no-op on
// coherent memory.
func (r *BufferResource) Flush() error {
	if r.ResourcePool.Memory.Coherent {
		return nil
	}
	return r.Device.FlushMappedRanges(r)
}

func (r *BufferResource) Destroy() {
	r.Free()
}

// Free releases this resource, its staging buffer and its pool range
func (r *BufferResource) Free() {
	r.FreeStagingResource()
	if r.Allocation != nil && r.ResourcePool.Allocator != nil {
		r.ResourcePool.Allocator.Free(r.Allocation)
		r.Allocation = nil
	}
	r.Buffer.Destroy()
}
