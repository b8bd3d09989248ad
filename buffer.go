package vkg

import (
	vk "github.com/vulkan-go/vulkan"
)

// Buffer is a range of data bound to device memory and used by pipelines
// and command buffers, for example vertices or indices.
type Buffer struct {
	Device   *Device
	VKBuffer vk.Buffer
	Size     uint64
	Usage    vk.BufferUsageFlagBits
}

func (d *Device) CreateBufferWithOptions(sizeInBytes uint64, usage vk.BufferUsageFlagBits, sharing vk.SharingMode) (*Buffer, error) {
	info := vk.BufferCreateInfo{
		SType:       vk.StructureTypeBufferCreateInfo,
		Size:        vk.DeviceSize(sizeInBytes),
		Usage:       vk.BufferUsageFlags(usage),
		SharingMode: sharing,
	}

	var buffer vk.Buffer
	if err := vk.Error(vk.CreateBuffer(d.VKDevice, &info, nil, &buffer)); err != nil {
		return nil, err
	}
	return &Buffer{Device: d, VKBuffer: buffer, Size: sizeInBytes, Usage: usage}, nil
}

func (b *Buffer) VKMemoryRequirements() vk.MemoryRequirements {
	var memoryRequirements vk.MemoryRequirements
	vk.GetBufferMemoryRequirements(b.Device.VKDevice, b.VKBuffer, &memoryRequirements)
	memoryRequirements.Deref()
	return memoryRequirements
}

func (b *Buffer) Bind(memory *DeviceMemory, offset uint64) error {
	return vk.Error(vk.BindBufferMemory(b.Device.VKDevice, b.VKBuffer, memory.VKDeviceMemory, vk.DeviceSize(offset)))
}

func (b *Buffer) Destroy() {
	if b.VKBuffer != vk.NullBuffer {
		vk.DestroyBuffer(b.Device.VKDevice, b.VKBuffer, nil)
		b.VKBuffer = vk.NullBuffer
	}
}
