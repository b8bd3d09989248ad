package vkg

import (
	vk "github.com/vulkan-go/vulkan"
)

type PipelineLayout struct {
	Device           *Device
	VKPipelineLayout vk.PipelineLayout
}

func (p *PipelineLayout) Destroy() {
	vk.DestroyPipelineLayout(p.Device.VKDevice, p.VKPipelineLayout, nil)
}

// PushConstantRange describes size bytes at offset readable by stages.
func PushConstantRange(stages vk.ShaderStageFlagBits, offset, size int) vk.PushConstantRange {
	return vk.PushConstantRange{
		StageFlags: vk.ShaderStageFlags(stages),
		Offset:     uint32(offset),
		Size:       uint32(size),
	}
}

func (d *Device) CreatePipelineLayoutWithPushConstants(descriptorSetLayouts []*DescriptorSetLayout, pushConstants []vk.PushConstantRange) (*PipelineLayout, error) {
	l := make([]vk.DescriptorSetLayout, len(descriptorSetLayouts))
	for i, dsl := range descriptorSetLayouts {
		l[i] = dsl.VKDescriptorSetLayout
	}

	pipelineLayoutCreateInfo := vk.PipelineLayoutCreateInfo{
		SType:                  vk.StructureTypePipelineLayoutCreateInfo,
		SetLayoutCount:         uint32(len(l)),
		PSetLayouts:            l,
		PushConstantRangeCount: uint32(len(pushConstants)),
		PPushConstantRanges:    pushConstants,
	}

	var pipelineLayout vk.PipelineLayout
	if err := vk.Error(vk.CreatePipelineLayout(d.VKDevice, &pipelineLayoutCreateInfo, nil, &pipelineLayout)); err != nil {
		return nil, err
	}

	return &PipelineLayout{Device: d, VKPipelineLayout: pipelineLayout}, nil
}

func (d *Device) CreatePipelineLayout(descriptorSetLayouts ...*DescriptorSetLayout) (*PipelineLayout, error) {
	return d.CreatePipelineLayoutWithPushConstants(descriptorSetLayouts, nil)
}
