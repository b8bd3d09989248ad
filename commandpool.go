package vkg

import (
	vk "github.com/vulkan-go/vulkan"
)

type CommandPool struct {
	Device        *Device
	QueueFamily   *QueueFamily
	VKCommandPool vk.CommandPool
}

func (c *CommandPool) Destroy() {
	vk.DestroyCommandPool(c.Device.VKDevice, c.VKCommandPool, nil)
}

// AllocateBuffers allocates count command buffers of the given level.
func (c *CommandPool) AllocateBuffers(level vk.CommandBufferLevel, count int) ([]*CommandBuffer, error) {
	info := vk.CommandBufferAllocateInfo{
		SType:              vk.StructureTypeCommandBufferAllocateInfo,
		CommandPool:        c.VKCommandPool,
		Level:              level,
		CommandBufferCount: uint32(count),
	}

	cmdBuffers := make([]vk.CommandBuffer, count)
	if err := vk.Error(vk.AllocateCommandBuffers(c.Device.VKDevice, &info, cmdBuffers)); err != nil {
		return nil, err
	}

	ret := make([]*CommandBuffer, count)
	for i := range ret {
		ret[i] = &CommandBuffer{VKCommandBuffer: cmdBuffers[i]}
	}
	return ret, nil
}

func (c *CommandPool) AllocateBuffer(level vk.CommandBufferLevel) (*CommandBuffer, error) {
	ret, err := c.AllocateBuffers(level, 1)
	if err != nil {
		return nil, err
	}
	return ret[0], nil
}

func (c *CommandPool) FreeBuffers(bs []*CommandBuffer) {
	if len(bs) == 0 {
		return
	}
	vk.FreeCommandBuffers(c.Device.VKDevice, c.VKCommandPool, uint32(len(bs)), vkCommandBuffers(bs))
}

func (c *CommandPool) FreeBuffer(b *CommandBuffer) {
	c.FreeBuffers([]*CommandBuffer{b})
}

// CreateCommandPool creates a pool whose buffers may be reset individually.
func (d *Device) CreateCommandPool(q *QueueFamily) (*CommandPool, error) {
	info := vk.CommandPoolCreateInfo{
		SType:            vk.StructureTypeCommandPoolCreateInfo,
		Flags:            vk.CommandPoolCreateFlags(vk.CommandPoolCreateResetCommandBufferBit | vk.CommandPoolCreateTransientBit),
		QueueFamilyIndex: uint32(q.Index),
	}

	var commandPool vk.CommandPool
	if err := vk.Error(vk.CreateCommandPool(d.VKDevice, &info, nil, &commandPool)); err != nil {
		return nil, err
	}
	return &CommandPool{Device: d, QueueFamily: q, VKCommandPool: commandPool}, nil
}
