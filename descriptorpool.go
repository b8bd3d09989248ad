package vkg

import (
	vk "github.com/vulkan-go/vulkan"
)

// DescriptorPool owns the descriptor sets allocated from it.
type DescriptorPool struct {
	Device               *Device
	VKDescriptorPool     vk.DescriptorPool
	VKDescriptorPoolSize []vk.DescriptorPoolSize
}

func (d *Device) NewDescriptorPool() *DescriptorPool {
	return &DescriptorPool{Device: d}
}

// AddPoolSize informs the descriptor pool how many of a certain descriptor type it will contain
func (d *DescriptorPool) AddPoolSize(dtype vk.DescriptorType, count int) *DescriptorPool {
	d.VKDescriptorPoolSize = append(d.VKDescriptorPoolSize, vk.DescriptorPoolSize{
		Type:            dtype,
		DescriptorCount: uint32(count),
	})
	return d
}

// CreateDescriptorPool creates the native pool for at most maxSets sets.
// Sets may be freed individually.
func (d *Device) CreateDescriptorPool(pool *DescriptorPool, maxSets int) (*DescriptorPool, error) {
	info := vk.DescriptorPoolCreateInfo{
		SType:         vk.StructureTypeDescriptorPoolCreateInfo,
		MaxSets:       uint32(maxSets),
		Flags:         vk.DescriptorPoolCreateFlags(vk.DescriptorPoolCreateFreeDescriptorSetBit),
		PoolSizeCount: uint32(len(pool.VKDescriptorPoolSize)),
		PPoolSizes:    pool.VKDescriptorPoolSize,
	}

	var descriptorPool vk.DescriptorPool
	if err := vk.Error(vk.CreateDescriptorPool(d.VKDevice, &info, nil, &descriptorPool)); err != nil {
		return nil, err
	}

	pool.Device = d
	pool.VKDescriptorPool = descriptorPool
	return pool, nil
}

// Allocate allocates one descriptor set with the given layout.
func (d *DescriptorPool) Allocate(layout *DescriptorSetLayout) (*DescriptorSet, error) {
	info := vk.DescriptorSetAllocateInfo{
		SType:              vk.StructureTypeDescriptorSetAllocateInfo,
		DescriptorPool:     d.VKDescriptorPool,
		DescriptorSetCount: 1,
		PSetLayouts:        []vk.DescriptorSetLayout{layout.VKDescriptorSetLayout},
	}

	var descriptorSet vk.DescriptorSet
	if err := vk.Error(vk.AllocateDescriptorSets(d.Device.VKDevice, &info, &descriptorSet)); err != nil {
		return nil, err
	}
	return &DescriptorSet{
		Device:          d.Device,
		DescriptorPool:  d,
		VKDescriptorSet: descriptorSet,
	}, nil
}

func (d *DescriptorPool) Free(ds *DescriptorSet) error {
	return vk.Error(vk.FreeDescriptorSets(d.Device.VKDevice, d.VKDescriptorPool, 1, &ds.VKDescriptorSet))
}

func (d *DescriptorPool) Destroy() {
	vk.DestroyDescriptorPool(d.Device.VKDevice, d.VKDescriptorPool, nil)
}
