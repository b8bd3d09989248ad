package vkg

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

// SamplerOptions selects the filtering and addressing of a sampler. It is
// comparable and can be used as a cache key.
type SamplerOptions struct {
	MagFilter   vk.Filter
	MinFilter   vk.Filter
	AddressMode vk.SamplerAddressMode
	MipmapMode  vk.SamplerMipmapMode
}

// LinearClampSampler filters linearly and clamps to the edge, as font
// atlases want.
var LinearClampSampler = SamplerOptions{
	MagFilter:   vk.FilterLinear,
	MinFilter:   vk.FilterLinear,
	AddressMode: vk.SamplerAddressModeClampToEdge,
	MipmapMode:  vk.SamplerMipmapModeLinear,
}

func (o SamplerOptions) String() string {
	return fmt.Sprintf("{mag: %d min: %d address: %d mip: %d}", o.MagFilter, o.MinFilter, o.AddressMode, o.MipmapMode)
}

type Sampler struct {
	Device    *Device
	VKSampler vk.Sampler
	Options   SamplerOptions
}

func (d *Device) CreateSampler(opts SamplerOptions) (*Sampler, error) {
	info := vk.SamplerCreateInfo{
		SType:         vk.StructureTypeSamplerCreateInfo,
		MagFilter:     opts.MagFilter,
		MinFilter:     opts.MinFilter,
		MipmapMode:    opts.MipmapMode,
		AddressModeU:  opts.AddressMode,
		AddressModeV:  opts.AddressMode,
		AddressModeW:  opts.AddressMode,
		MaxAnisotropy: 1.0,
		CompareOp:     vk.CompareOpAlways,
		MinLod:        -1000,
		MaxLod:        1000,
		BorderColor:   vk.BorderColorFloatOpaqueWhite,
	}

	var sampler vk.Sampler
	if err := vk.Error(vk.CreateSampler(d.VKDevice, &info, nil, &sampler)); err != nil {
		return nil, fmt.Errorf("unable to create sampler %s: %w", opts, err)
	}
	return &Sampler{Device: d, VKSampler: sampler, Options: opts}, nil
}

func (s *Sampler) Destroy() {
	vk.DestroySampler(s.Device.VKDevice, s.VKSampler, nil)
}
