package vkg

import (
	vk "github.com/vulkan-go/vulkan"
)

// DescriptorSetLayout describes the layout of a descriptor set
type DescriptorSetLayout struct {
	Device                        *Device
	VKDescriptorSetLayout         vk.DescriptorSetLayout
	VKDescriptorSetLayoutBindings []vk.DescriptorSetLayoutBinding
}

func (d *Device) NewDescriptorSetLayout() *DescriptorSetLayout {
	return &DescriptorSetLayout{Device: d}
}

// AddBinding adds a binding of count descriptors visible to stages.
func (d *DescriptorSetLayout) AddBinding(binding int, dtype vk.DescriptorType, stages vk.ShaderStageFlagBits, count int) *DescriptorSetLayout {
	d.VKDescriptorSetLayoutBindings = append(d.VKDescriptorSetLayoutBindings, vk.DescriptorSetLayoutBinding{
		Binding:         uint32(binding),
		DescriptorType:  dtype,
		DescriptorCount: uint32(count),
		StageFlags:      vk.ShaderStageFlags(stages),
	})
	return d
}

// Destroy destroys this descriptor set layout
func (d *DescriptorSetLayout) Destroy() {
	vk.DestroyDescriptorSetLayout(d.Device.VKDevice, d.VKDescriptorSetLayout, nil)
}

// CreateDescriptorSetLayout creates the native layout from its bindings
func (d *Device) CreateDescriptorSetLayout(layout *DescriptorSetLayout) (*DescriptorSetLayout, error) {
	info := vk.DescriptorSetLayoutCreateInfo{
		SType:        vk.StructureTypeDescriptorSetLayoutCreateInfo,
		BindingCount: uint32(len(layout.VKDescriptorSetLayoutBindings)),
		PBindings:    layout.VKDescriptorSetLayoutBindings,
	}

	var descriptorSetLayout vk.DescriptorSetLayout
	if err := vk.Error(vk.CreateDescriptorSetLayout(d.VKDevice, &info, nil, &descriptorSetLayout)); err != nil {
		return nil, err
	}

	layout.Device = d
	layout.VKDescriptorSetLayout = descriptorSetLayout
	return layout, nil
}
