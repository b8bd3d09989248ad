package vkg

import (
	"fmt"
	"os"
	"unsafe"

	vk "github.com/vulkan-go/vulkan"
)

type ShaderModule struct {
	Device         *Device
	Description    string
	VKShaderModule vk.ShaderModule
}

func (d *Device) LoadShaderModuleFromFile(file string) (*ShaderModule, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	m, err := d.LoadShaderModule(data)
	if err != nil {
		return nil, fmt.Errorf("shader %s: %w", file, err)
	}
	m.Description = file
	return m, nil
}

// LoadShaderModule creates a shader module from SPIR-V code.
func (d *Device) LoadShaderModule(code []byte) (*ShaderModule, error) {
	if len(code) == 0 || len(code)%4 != 0 {
		return nil, fmt.Errorf("invalid SPIR-V code of %d bytes", len(code))
	}
	var module vk.ShaderModule
	err := vk.Error(vk.CreateShaderModule(d.VKDevice, &vk.ShaderModuleCreateInfo{
		SType:    vk.StructureTypeShaderModuleCreateInfo,
		CodeSize: uint(len(code)),
		PCode:    sliceUint32(code),
	}, nil, &module))
	if err != nil {
		return nil, err
	}

	return &ShaderModule{Device: d, VKShaderModule: module}, nil
}

func (s *ShaderModule) VKPipelineShaderStageCreateInfo(stage vk.ShaderStageFlagBits, entryPoint string) vk.PipelineShaderStageCreateInfo {
	return vk.PipelineShaderStageCreateInfo{
		SType:  vk.StructureTypePipelineShaderStageCreateInfo,
		Stage:  stage,
		Module: s.VKShaderModule,
		PName:  safeString(entryPoint),
	}
}

func (s *ShaderModule) Destroy() {
	vk.DestroyShaderModule(s.Device.VKDevice, s.VKShaderModule, nil)
}

func sliceUint32(data []byte) []uint32 {
	return unsafe.Slice((*uint32)(unsafe.Pointer(&data[0])), len(data)/4)
}
