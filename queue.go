package vkg

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

type Queue struct {
	Device      *Device
	QueueFamily *QueueFamily
	VKQueue     vk.Queue
}

func vkCommandBuffers(buffers []*CommandBuffer) []vk.CommandBuffer {
	b := make([]vk.CommandBuffer, len(buffers))
	for i := range buffers {
		b[i] = buffers[i].VKCommandBuffer
	}
	return b
}

// SubmitWithFence submits buffers, signaling fence once they complete.
func (q *Queue) SubmitWithFence(fence *Fence, buffers ...*CommandBuffer) error {
	return q.submit(fence.VKFence, buffers)
}

func (q *Queue) submit(fence vk.Fence, buffers []*CommandBuffer) error {
	submitInfo := vk.SubmitInfo{
		SType:              vk.StructureTypeSubmitInfo,
		CommandBufferCount: uint32(len(buffers)),
		PCommandBuffers:    vkCommandBuffers(buffers),
	}
	if err := vk.Error(vk.QueueSubmit(q.VKQueue, 1, []vk.SubmitInfo{submitInfo}, fence)); err != nil {
		return fmt.Errorf("unable to submit %d command buffers: %w", len(buffers), err)
	}
	return nil
}

func (q *Queue) String() string {
	return fmt.Sprintf("{Device: %s QueueFamily: %s}", q.Device, q.QueueFamily)
}
