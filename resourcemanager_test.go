package vkg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	vk "github.com/vulkan-go/vulkan"
)

func TestNeedsStaging(t *testing.T) {
	assert.True(t, needsStaging(vk.MemoryPropertyDeviceLocalBit))
	assert.False(t, needsStaging(vk.MemoryPropertyHostVisibleBit|vk.MemoryPropertyHostCoherentBit))
	assert.False(t, needsStaging(vk.MemoryPropertyDeviceLocalBit|vk.MemoryPropertyHostVisibleBit))
}

type allocatedObject struct {
	a         IAllocator
	alloc     *Allocation
	destroyed int
}

func (o *allocatedObject) Destroy() {
	o.destroyed++
	o.a.Free(o.alloc)
}

func TestDestroyAllocations(t *testing.T) {
	a := &LinearAllocator{Size: 1024}

	objs := make([]*allocatedObject, 3)
	for i := range objs {
		alloc := a.Allocate(100, 16)
		objs[i] = &allocatedObject{a: a, alloc: alloc}
		alloc.Object = objs[i]
	}
	// an allocation without an owner is simply freed
	a.Allocate(10, 1)

	destroyAllocations(a)

	for _, o := range objs {
		assert.Equal(t, 1, o.destroyed)
	}
	assert.Empty(t, a.Allocations())
	assert.Zero(t, a.Used())
}

func TestEnsureStagingPoolKeepsExisting(t *testing.T) {
	staging := &BufferResourcePool{Name: StagingPoolName}
	r := &ResourceManager{bufferPools: map[string]*BufferResourcePool{StagingPoolName: staging}}

	p, err := r.EnsureStagingPool()
	assert.NoError(t, err)
	assert.Same(t, staging, p)
}

func TestStageRejectsOversizedData(t *testing.T) {
	r := &BufferResource{
		Buffer:       Buffer{Size: 16},
		ResourcePool: &BufferResourcePool{Name: "cube", NeedsStaging: true},
		Allocation:   &Allocation{Size: 16},
	}
	err := r.Stage(make([]byte, 32), nil, nil)
	assert.ErrorContains(t, err, "do not fit")
	assert.Nil(t, r.StagingResource)
}
