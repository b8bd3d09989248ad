package vkg

import (
	"unsafe"

	vk "github.com/vulkan-go/vulkan"
)

const end = "\x00"

// ToBytes returns the n bytes starting at ptr.
func ToBytes(ptr unsafe.Pointer, n int) []byte {
	if ptr == nil || n == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(ptr), n)
}

func safeString(s string) string {
	if len(s) == 0 || s[len(s)-1] != 0 {
		return s + end
	}
	return s
}

func safeStrings(list []string) []string {
	ret := make([]string, len(list))
	for i := range list {
		ret[i] = safeString(list[i])
	}
	return ret
}

func vkBool(b bool) vk.Bool32 {
	if b {
		return vk.True
	}
	return vk.False
}
