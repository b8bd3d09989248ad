package vkg

import (
	"fmt"
	"unsafe"

	vk "github.com/vulkan-go/vulkan"
)

// DeviceMemory maps to Vulkan DeviceMemory and can either be memory on the
// host or on the device. Host visible memory is mapped at most once, Map
// returns the same pointer until Unmap.
type DeviceMemory struct {
	Device         *Device
	VKDeviceMemory vk.DeviceMemory
	Size           uint64
	// Coherent memory needs no explicit flush after host writes.
	Coherent bool
	Ptr      unsafe.Pointer
}

// IsMapped returns true if the memory is currently mapped
func (d *DeviceMemory) IsMapped() bool {
	return d.Ptr != nil
}

// Destroy unmaps and frees this memory
func (d *DeviceMemory) Destroy() {
	if d.IsMapped() {
		d.Unmap()
	}
	vk.FreeMemory(d.Device.VKDevice, d.VKDeviceMemory, nil)
}

// Map maps the entirety of this memory.
func (d *DeviceMemory) Map() (unsafe.Pointer, error) {
	if d.Ptr != nil {
		return d.Ptr, nil
	}
	var res unsafe.Pointer
	if err := vk.Error(vk.MapMemory(d.Device.VKDevice, d.VKDeviceMemory, 0, vk.DeviceSize(d.Size), 0, &res)); err != nil {
		return nil, fmt.Errorf("unable to map memory: %w", err)
	}
	d.Ptr = res
	return res, nil
}

// Bytes returns the mapped bytes in [offset, offset+size).
func (d *DeviceMemory) Bytes(offset, size uint64) []byte {
	if d.Ptr == nil || offset+size > d.Size {
		return nil
	}
	return ToBytes(unsafe.Add(d.Ptr, offset), int(size))
}

// Unmap this memory
func (d *DeviceMemory) Unmap() {
	vk.UnmapMemory(d.Device.VKDevice, d.VKDeviceMemory)
	d.Ptr = nil
}
