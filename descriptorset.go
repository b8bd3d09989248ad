package vkg

import (
	vk "github.com/vulkan-go/vulkan"
)

// DescriptorSet is a binding of resources to a descriptor, per a specific
// DescriptorSetLayout. Writes are queued with the Add methods and applied
// by Write.
type DescriptorSet struct {
	Device          *Device
	DescriptorPool  *DescriptorPool
	VKDescriptorSet vk.DescriptorSet

	writes []vk.WriteDescriptorSet
}

// AddCombinedImageSampler binds an image view read through sampler.
func (du *DescriptorSet) AddCombinedImageSampler(dstBinding int, layout vk.ImageLayout, imageView vk.ImageView, sampler vk.Sampler) {
	du.writes = append(du.writes, vk.WriteDescriptorSet{
		SType:           vk.StructureTypeWriteDescriptorSet,
		DstBinding:      uint32(dstBinding),
		DescriptorCount: 1,
		DescriptorType:  vk.DescriptorTypeCombinedImageSampler,
		PImageInfo: []vk.DescriptorImageInfo{{
			Sampler:     sampler,
			ImageView:   imageView,
			ImageLayout: layout,
		}},
	})
}

// Write applies and clears the queued writes.
func (du *DescriptorSet) Write() {
	if len(du.writes) == 0 {
		return
	}
	for i := range du.writes {
		du.writes[i].DstSet = du.VKDescriptorSet
	}
	vk.UpdateDescriptorSets(du.Device.VKDevice, uint32(len(du.writes)), du.writes, 0, nil)
	du.writes = nil
}

// Destroy returns the set to its pool.
func (du *DescriptorSet) Destroy() {
	if du.DescriptorPool == nil {
		return
	}
	if err := du.DescriptorPool.Free(du); err != nil {
		Logger().Error("unable to free descriptor set", "error", err)
	}
	du.DescriptorPool = nil
}
