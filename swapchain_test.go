package vkg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	vk "github.com/vulkan-go/vulkan"
)

func TestSwapchainImageCount(t *testing.T) {
	assert.Equal(t, 3, swapchainImageCount(3, 2, 0))
	assert.Equal(t, 2, swapchainImageCount(1, 2, 8))
	assert.Equal(t, 3, swapchainImageCount(5, 2, 3))
}

func TestSwapchainExtent(t *testing.T) {
	min := vk.Extent2D{Width: 1, Height: 1}
	max := vk.Extent2D{Width: 4096, Height: 2048}

	current := vk.Extent2D{Width: 800, Height: 600}
	assert.Equal(t, current, swapchainExtent(current, min, max, vk.Extent2D{Width: 10, Height: 10}))

	undefined := vk.Extent2D{Width: vk.MaxUint32, Height: vk.MaxUint32}
	assert.Equal(t, vk.Extent2D{Width: 1024, Height: 768},
		swapchainExtent(undefined, min, max, vk.Extent2D{Width: 1024, Height: 768}))
	assert.Equal(t, vk.Extent2D{Width: 4096, Height: 1},
		swapchainExtent(undefined, min, max, vk.Extent2D{Width: 5000, Height: 0}))
}
