package vkg

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	vk "github.com/vulkan-go/vulkan"
)

func TestFenceTimeout(t *testing.T) {
	assert.Equal(t, uint64(vk.MaxUint64), fenceTimeout(0), "zero waits forever")
	assert.Equal(t, uint64(vk.MaxUint64), fenceTimeout(-time.Second))
	assert.Equal(t, uint64(1500000), fenceTimeout(1500*time.Microsecond))
}
