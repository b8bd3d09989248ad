package vkg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	vk "github.com/vulkan-go/vulkan"
)

func TestFindMemoryType(t *testing.T) {
	types := []vk.MemoryType{
		{PropertyFlags: vk.MemoryPropertyFlags(vk.MemoryPropertyDeviceLocalBit)},
		{PropertyFlags: vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit)},
		{PropertyFlags: vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit | vk.MemoryPropertyHostCoherentBit)},
	}
	coherent := vk.MemoryPropertyHostVisibleBit | vk.MemoryPropertyHostCoherentBit

	i, ok := findMemoryType(types, 0b111, coherent)
	assert.True(t, ok)
	assert.Equal(t, uint32(2), i)

	i, ok = findMemoryType(types, 0b111, vk.MemoryPropertyHostVisibleBit)
	assert.True(t, ok)
	assert.Equal(t, uint32(1), i)

	_, ok = findMemoryType(types, 0b011, coherent)
	assert.False(t, ok, "type 2 is excluded by the type bits")

	i, ok = findMemoryType(types, 0b001, vk.MemoryPropertyDeviceLocalBit)
	assert.True(t, ok)
	assert.Equal(t, uint32(0), i)
}

func TestPresentModes(t *testing.T) {
	modes := VKPresentModes{vk.PresentModeFifo, vk.PresentModeImmediate}
	assert.True(t, modes.Has(vk.PresentModeFifo))
	assert.False(t, modes.Has(vk.PresentModeMailbox))
}
