package vkg

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
)

func TestSafeStrings(t *testing.T) {
	in := []string{"", "VK_KHR_swapchain", "already\x00"}
	out := safeStrings(in)
	assert.Equal(t, []string{"\x00", "VK_KHR_swapchain\x00", "already\x00"}, out)
	assert.Equal(t, "VK_KHR_swapchain", in[1], "input is left untouched")
}

func TestToBytes(t *testing.T) {
	v := [4]uint16{1, 2, 3, 4}
	b := ToBytes(unsafe.Pointer(&v[0]), 8)
	assert.Len(t, b, 8)
	b[0] = 9
	assert.Equal(t, uint16(9), v[0]&0xff)
	assert.Nil(t, ToBytes(nil, 4))
}
