package vkg

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

type PipelineCache struct {
	Device          *Device
	VKPipelineCache vk.PipelineCache
}

func (d *Device) CreatePipelineCache() (*PipelineCache, error) {
	pipelineCacheCreate := vk.PipelineCacheCreateInfo{
		SType: vk.StructureTypePipelineCacheCreateInfo,
	}

	var pipelineCache vk.PipelineCache
	if err := vk.Error(vk.CreatePipelineCache(d.VKDevice, &pipelineCacheCreate, nil, &pipelineCache)); err != nil {
		return nil, err
	}

	return &PipelineCache{Device: d, VKPipelineCache: pipelineCache}, nil
}

func (p *PipelineCache) Destroy() {
	vk.DestroyPipelineCache(p.Device.VKDevice, p.VKPipelineCache, nil)
}

// GraphicsPipeline is a pipeline created for subpass 0 of a render pass.
// Layout is owned by the config the pipeline was created from.
type GraphicsPipeline struct {
	Device     *Device
	VKPipeline vk.Pipeline
	Layout     *PipelineLayout
}

func (p *GraphicsPipeline) Destroy() {
	if p.VKPipeline != vk.NullPipeline {
		vk.DestroyPipeline(p.Device.VKDevice, p.VKPipeline, nil)
		p.VKPipeline = vk.NullPipeline
	}
}

// LayoutProvider is implemented by pipeline configs which know their
// pipeline layout.
type LayoutProvider interface {
	GetPipelineLayout() *PipelineLayout
}

// CreateGraphicsPipeline builds the pipeline described by config for the
// given render pass. cache may be nil.
func (d *Device) CreateGraphicsPipeline(cache *PipelineCache, renderPass vk.RenderPass, extent vk.Extent2D, config IGraphicsPipelineConfig) (*GraphicsPipeline, error) {
	ps, err := d.CreateGraphicsPipelines(cache, renderPass, extent, config)
	if err != nil {
		return nil, err
	}
	return ps[0], nil
}

// CreateGraphicsPipelines builds one pipeline per config in a single call.
func (d *Device) CreateGraphicsPipelines(cache *PipelineCache, renderPass vk.RenderPass, extent vk.Extent2D, configs ...IGraphicsPipelineConfig) ([]*GraphicsPipeline, error) {
	if len(configs) == 0 {
		return nil, nil
	}

	infos := make([]vk.GraphicsPipelineCreateInfo, len(configs))
	for i, c := range configs {
		info, err := c.VKGraphicsPipelineCreateInfo(extent)
		if err != nil {
			return nil, err
		}
		info.RenderPass = renderPass
		infos[i] = info
	}

	var vkCache vk.PipelineCache
	if cache != nil {
		vkCache = cache.VKPipelineCache
	}

	pipelines := make([]vk.Pipeline, len(infos))
	err := vk.Error(vk.CreateGraphicsPipelines(d.VKDevice, vkCache, uint32(len(infos)), infos, nil, pipelines))
	if err != nil {
		return nil, fmt.Errorf("unable to create graphics pipelines: %w", err)
	}

	ret := make([]*GraphicsPipeline, len(pipelines))
	for i := range pipelines {
		ret[i] = &GraphicsPipeline{Device: d, VKPipeline: pipelines[i]}
		if lp, ok := configs[i].(LayoutProvider); ok {
			ret[i].Layout = lp.GetPipelineLayout()
		}
	}
	return ret, nil
}
