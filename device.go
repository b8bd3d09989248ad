package vkg

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

type Device struct {
	PhysicalDevice *PhysicalDevice
	VKDevice       vk.Device
}

func (d *Device) Destroy() {
	vk.DestroyDevice(d.VKDevice, nil)
}

func (d *Device) String() string {
	return fmt.Sprintf("{ PhysicalDevice: %s }", d.PhysicalDevice)
}

// WaitIdle blocks until the device has finished all submitted work.
func (d *Device) WaitIdle() error {
	return vk.Error(vk.DeviceWaitIdle(d.VKDevice))
}

func (d *Device) GetQueue(qf *QueueFamily) *Queue {
	var vkq vk.Queue
	vk.GetDeviceQueue(d.VKDevice, uint32(qf.Index), 0, &vkq)
	return &Queue{Device: d, QueueFamily: qf, VKQueue: vkq}
}

// MappedMemoryRange is implemented by resources living in host visible
// memory which may need an explicit flush.
type MappedMemoryRange interface {
	VKMappedMemoryRange() vk.MappedMemoryRange
}

// FlushMappedRanges makes host writes to the given ranges visible to the
// device.
func (d *Device) FlushMappedRanges(ranges ...MappedMemoryRange) error {
	if len(ranges) == 0 {
		return nil
	}
	r := make([]vk.MappedMemoryRange, len(ranges))
	for i := range ranges {
		r[i] = ranges[i].VKMappedMemoryRange()
	}
	return vk.Error(vk.FlushMappedMemoryRanges(d.VKDevice, uint32(len(r)), r))
}

// Allocate allocates device memory of a type matching memoryTypeBits and
// memoryProperties.
func (d *Device) Allocate(sizeInBytes int, memoryTypeBits uint32, memoryProperties vk.MemoryPropertyFlagBits) (*DeviceMemory, error) {
	typeIndex, err := d.PhysicalDevice.FindMemoryType(memoryTypeBits, memoryProperties)
	if err != nil {
		return nil, err
	}

	allocateInfo := vk.MemoryAllocateInfo{
		SType:           vk.StructureTypeMemoryAllocateInfo,
		AllocationSize:  vk.DeviceSize(sizeInBytes),
		MemoryTypeIndex: typeIndex,
	}

	var deviceMemory vk.DeviceMemory
	if err := vk.Error(vk.AllocateMemory(d.VKDevice, &allocateInfo, nil, &deviceMemory)); err != nil {
		return nil, fmt.Errorf("unable to allocate %d bytes: %w", sizeInBytes, err)
	}

	return &DeviceMemory{
		Device:         d,
		VKDeviceMemory: deviceMemory,
		Size:           uint64(sizeInBytes),
		Coherent:       d.PhysicalDevice.IsHostCoherent(typeIndex),
	}, nil
}
