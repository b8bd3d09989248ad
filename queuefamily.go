package vkg

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

type QueueFamilySlice []*QueueFamily

func (ql QueueFamilySlice) Filter(f func(q *QueueFamily) bool) QueueFamilySlice {
	var ret QueueFamilySlice
	for _, q := range ql {
		if f(q) {
			ret = append(ret, q)
		}
	}
	return ret
}

func (ql QueueFamilySlice) FilterGraphics() QueueFamilySlice {
	return ql.Filter((*QueueFamily).IsGraphics)
}

func (ql QueueFamilySlice) FilterGraphicsAndPresent(surface vk.Surface) QueueFamilySlice {
	return ql.Filter(func(q *QueueFamily) bool {
		return q.IsGraphics() && q.SupportsPresent(surface)
	})
}

type QueueFamily struct {
	Index                   int
	PhysicalDevice          *PhysicalDevice
	VKQueueFamilyProperties vk.QueueFamilyProperties
}

func (q *QueueFamily) has(bit vk.QueueFlagBits) bool {
	return q.VKQueueFamilyProperties.QueueFlags&vk.QueueFlags(bit) != 0
}

func (q *QueueFamily) IsCompute() bool  { return q.has(vk.QueueComputeBit) }
func (q *QueueFamily) IsGraphics() bool { return q.has(vk.QueueGraphicsBit) }
func (q *QueueFamily) IsTransfer() bool { return q.has(vk.QueueTransferBit) }

// SupportsPresent reports whether the family can present to surface. A
// null surface is never supported.
func (q *QueueFamily) SupportsPresent(surface vk.Surface) bool {
	if surface == vk.NullSurface {
		return false
	}
	var supportsPresent vk.Bool32
	vk.GetPhysicalDeviceSurfaceSupport(q.PhysicalDevice.VKPhysicalDevice, uint32(q.Index), surface, &supportsPresent)
	return supportsPresent == vk.True
}

func (q *QueueFamily) String() string {
	return fmt.Sprintf("{ Index: %d Compute: %v Graphics: %v Transfer: %v }", q.Index, q.IsCompute(), q.IsGraphics(), q.IsTransfer())
}
