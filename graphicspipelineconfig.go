package vkg

import (
	vk "github.com/vulkan-go/vulkan"
)

// GraphicsPipelineConfig is a utility object to ease construction of graphics pipelines
type GraphicsPipelineConfig struct {
	Device               *Device
	ShaderStages         []vk.PipelineShaderStageCreateInfo
	DescriptorSetLayouts []*DescriptorSetLayout
	PushConstantRanges   []vk.PushConstantRange

	PipelineLayout *PipelineLayout

	// Called as the last step in config generation to allow for
	// additional configuration
	Configure func(config *vk.GraphicsPipelineCreateInfo)

	// PrimitiveTopology see https://www.khronos.org/registry/vulkan/specs/1.1-extensions/man/html/VkPrimitiveTopology.html
	// defaults to VK_PRIMITIVE_TOPOLOGY_TRIANGLE_LIST
	PrimitiveTopology vk.PrimitiveTopology

	// PrimitiveRestartEnable defaults to false
	PrimitiveRestartEnable bool

	// PolygonMode see https://www.khronos.org/registry/vulkan/specs/1.1-extensions/man/html/VkPolygonMode.html
	// defaults to VK_POLYGON_MODE_FILL
	PolygonMode vk.PolygonMode

	// LineWidth of rasterized lines, defaults to 1.0
	LineWidth float32

	// CullMode specifies which triangles will be culled. See https://www.khronos.org/registry/vulkan/specs/1.1/html/vkspec.html#VkCullModeFlagBits
	// Defaults to vk.CullModeBackBit
	CullMode vk.CullModeFlagBits

	// DynamicState specifies which part of the pipeline might be modified by the command buffer see
	// https://www.khronos.org/registry/vulkan/specs/1.1/html/vkspec.html#VkDynamicState
	// defaults to viewport and scissor, so pipelines survive a resize
	DynamicState []vk.DynamicState

	// FrontFace defaults to vk.FrontFaceCounterClockwise
	FrontFace vk.FrontFace

	// BlendAttachments, by default a single attachment without blending
	BlendAttachments []vk.PipelineColorBlendAttachmentState

	// DepthTestEnable defaults to true
	DepthTestEnable bool

	// DepthWriteEnable defaults to true
	DepthWriteEnable bool

	VertexInputBindingDescriptions   []vk.VertexInputBindingDescription
	VertexInputAttributeDescriptions []vk.VertexInputAttributeDescription

	toDestroy []Destroyer
}

// CreateGraphicsPipelineConfig creates a new config object
func (d *Device) CreateGraphicsPipelineConfig() *GraphicsPipelineConfig {
	return &GraphicsPipelineConfig{
		Device:            d,
		PrimitiveTopology: vk.PrimitiveTopologyTriangleList,
		PolygonMode:       vk.PolygonModeFill,
		LineWidth:         1.0,
		CullMode:          vk.CullModeBackBit,
		FrontFace:         vk.FrontFaceCounterClockwise,
		DynamicState:      []vk.DynamicState{vk.DynamicStateViewport, vk.DynamicStateScissor},
		DepthTestEnable:   true,
		DepthWriteEnable:  true,
	}
}

func (g *GraphicsPipelineConfig) manageDestroy(d Destroyer) {
	g.toDestroy = append(g.toDestroy, d)
}

// Destroy releases the shader modules loaded by the config and the pipeline
// layout created by CreatePipelineLayout.
func (g *GraphicsPipelineConfig) Destroy() {
	for i := len(g.toDestroy) - 1; i >= 0; i-- {
		g.toDestroy[i].Destroy()
	}
	g.toDestroy = nil
}

// AlphaBlendAttachment blends source over destination by source alpha.
func AlphaBlendAttachment() vk.PipelineColorBlendAttachmentState {
	return vk.PipelineColorBlendAttachmentState{
		BlendEnable:         vk.True,
		SrcColorBlendFactor: vk.BlendFactorSrcAlpha,
		DstColorBlendFactor: vk.BlendFactorOneMinusSrcAlpha,
		ColorBlendOp:        vk.BlendOpAdd,
		SrcAlphaBlendFactor: vk.BlendFactorOne,
		DstAlphaBlendFactor: vk.BlendFactorOneMinusSrcAlpha,
		AlphaBlendOp:        vk.BlendOpAdd,
		ColorWriteMask:      vk.ColorComponentFlags(vk.ColorComponentRBit | vk.ColorComponentGBit | vk.ColorComponentBBit | vk.ColorComponentABit),
	}
}

// AddBlendAttachment adds a new blend attachment
func (g *GraphicsPipelineConfig) AddBlendAttachment(ba vk.PipelineColorBlendAttachmentState) *GraphicsPipelineConfig {
	g.BlendAttachments = append(g.BlendAttachments, ba)
	return g
}

// SetCullMode sets the cull mode
func (g *GraphicsPipelineConfig) SetCullMode(mode vk.CullModeFlagBits) *GraphicsPipelineConfig {
	g.CullMode = mode
	return g
}

// SetDepth enables or disables depth testing and writing
func (g *GraphicsPipelineConfig) SetDepth(test, write bool) *GraphicsPipelineConfig {
	g.DepthTestEnable = test
	g.DepthWriteEnable = write
	return g
}

// SetDynamicState specifies which part of the pipeline may be changed with command buffer commands
func (g *GraphicsPipelineConfig) SetDynamicState(states ...vk.DynamicState) *GraphicsPipelineConfig {
	g.DynamicState = states
	return g
}

// AddShaderStageFromFile adds a shader from a specified file
func (g *GraphicsPipelineConfig) AddShaderStageFromFile(file, entryPoint string, stageType vk.ShaderStageFlagBits) error {
	shader, err := g.Device.LoadShaderModuleFromFile(file)
	if err != nil {
		return err
	}
	g.ShaderStages = append(g.ShaderStages, shader.VKPipelineShaderStageCreateInfo(stageType, entryPoint))
	g.manageDestroy(shader)
	return nil
}

// CreatePipelineLayout creates a layout from the descriptor set layouts and
// push constant ranges added so far. The layout is destroyed with the config.
func (g *GraphicsPipelineConfig) CreatePipelineLayout() (*PipelineLayout, error) {
	layout, err := g.Device.CreatePipelineLayoutWithPushConstants(g.DescriptorSetLayouts, g.PushConstantRanges)
	if err != nil {
		return nil, err
	}
	g.PipelineLayout = layout
	g.manageDestroy(layout)
	return layout, nil
}

func (g *GraphicsPipelineConfig) GetPipelineLayout() *PipelineLayout {
	return g.PipelineLayout
}

// AddVertexDescriptor adds vertex descriptors based off the specified interface
func (g *GraphicsPipelineConfig) AddVertexDescriptor(v VertexDescriptor) *GraphicsPipelineConfig {
	g.VertexInputBindingDescriptions = append(g.VertexInputBindingDescriptions, v.GetBindingDescription())
	g.VertexInputAttributeDescriptions = append(g.VertexInputAttributeDescriptions, v.GetAttributeDescriptions()...)
	return g
}

// AddDescriptorSetLayout adds a specific DescriptorSetLayout
func (g *GraphicsPipelineConfig) AddDescriptorSetLayout(d *DescriptorSetLayout) *GraphicsPipelineConfig {
	g.DescriptorSetLayouts = append(g.DescriptorSetLayouts, d)
	return g
}

// AddPushConstantRange adds a push constant range to the layout created by
// CreatePipelineLayout
func (g *GraphicsPipelineConfig) AddPushConstantRange(stages vk.ShaderStageFlagBits, offset, size int) *GraphicsPipelineConfig {
	g.PushConstantRanges = append(g.PushConstantRanges, PushConstantRange(stages, offset, size))
	return g
}

func (g *GraphicsPipelineConfig) hasDynamicState(s vk.DynamicState) bool {
	for _, d := range g.DynamicState {
		if d == s {
			return true
		}
	}
	return false
}

// VKGraphicsPipelineCreateInfo uses the provided config information to create a vk.GraphicsPipelineCreateInfo.
// The extent is only used for the viewport and scissor when those are not dynamic.
func (g *GraphicsPipelineConfig) VKGraphicsPipelineCreateInfo(extent vk.Extent2D) (vk.GraphicsPipelineCreateInfo, error) {
	vertexInputState := vk.PipelineVertexInputStateCreateInfo{
		SType:                           vk.StructureTypePipelineVertexInputStateCreateInfo,
		VertexBindingDescriptionCount:   uint32(len(g.VertexInputBindingDescriptions)),
		PVertexBindingDescriptions:      g.VertexInputBindingDescriptions,
		VertexAttributeDescriptionCount: uint32(len(g.VertexInputAttributeDescriptions)),
		PVertexAttributeDescriptions:    g.VertexInputAttributeDescriptions,
	}

	inputAssemblyState := vk.PipelineInputAssemblyStateCreateInfo{
		SType:                  vk.StructureTypePipelineInputAssemblyStateCreateInfo,
		Topology:               g.PrimitiveTopology,
		PrimitiveRestartEnable: vkBool(g.PrimitiveRestartEnable),
	}

	viewportState := vk.PipelineViewportStateCreateInfo{
		SType:         vk.StructureTypePipelineViewportStateCreateInfo,
		ViewportCount: 1,
		ScissorCount:  1,
	}
	if !g.hasDynamicState(vk.DynamicStateViewport) {
		viewportState.PViewports = []vk.Viewport{{
			Width:    float32(extent.Width),
			Height:   float32(extent.Height),
			MaxDepth: 1.0,
		}}
	}
	if !g.hasDynamicState(vk.DynamicStateScissor) {
		viewportState.PScissors = []vk.Rect2D{{Extent: extent}}
	}

	rasterState := vk.PipelineRasterizationStateCreateInfo{
		SType:                   vk.StructureTypePipelineRasterizationStateCreateInfo,
		DepthClampEnable:        vk.False,
		RasterizerDiscardEnable: vk.False,
		PolygonMode:             g.PolygonMode,
		LineWidth:               g.LineWidth,
		CullMode:                vk.CullModeFlags(g.CullMode),
		FrontFace:               g.FrontFace,
		DepthBiasEnable:         vk.False,
	}

	multisampleState := vk.PipelineMultisampleStateCreateInfo{
		SType:                vk.StructureTypePipelineMultisampleStateCreateInfo,
		SampleShadingEnable:  vk.False,
		RasterizationSamples: vk.SampleCount1Bit,
	}

	blendAttachments := g.BlendAttachments
	if len(blendAttachments) == 0 {
		blendAttachments = []vk.PipelineColorBlendAttachmentState{{
			ColorWriteMask: vk.ColorComponentFlags(vk.ColorComponentRBit | vk.ColorComponentGBit | vk.ColorComponentBBit | vk.ColorComponentABit),
			BlendEnable:    vk.False,
		}}
	}

	colorBlendState := vk.PipelineColorBlendStateCreateInfo{
		SType:           vk.StructureTypePipelineColorBlendStateCreateInfo,
		AttachmentCount: uint32(len(blendAttachments)),
		PAttachments:    blendAttachments,
	}

	dynamicState := vk.PipelineDynamicStateCreateInfo{
		SType:             vk.StructureTypePipelineDynamicStateCreateInfo,
		PDynamicStates:    g.DynamicState,
		DynamicStateCount: uint32(len(g.DynamicState)),
	}

	depthStencil := vk.PipelineDepthStencilStateCreateInfo{
		SType:                 vk.StructureTypePipelineDepthStencilStateCreateInfo,
		DepthTestEnable:       vkBool(g.DepthTestEnable),
		DepthWriteEnable:      vkBool(g.DepthWriteEnable),
		DepthCompareOp:        vk.CompareOpLess,
		DepthBoundsTestEnable: vk.False,
		MinDepthBounds:        0.0,
		MaxDepthBounds:        1.0,
		StencilTestEnable:     vk.False,
	}

	var pipelineLayout vk.PipelineLayout
	if g.PipelineLayout != nil {
		pipelineLayout = g.PipelineLayout.VKPipelineLayout
	}

	pipelineCreateInfo := vk.GraphicsPipelineCreateInfo{
		SType:               vk.StructureTypeGraphicsPipelineCreateInfo,
		StageCount:          uint32(len(g.ShaderStages)),
		PStages:             g.ShaderStages,
		PVertexInputState:   &vertexInputState,
		PInputAssemblyState: &inputAssemblyState,
		PDepthStencilState:  &depthStencil,
		PViewportState:      &viewportState,
		PRasterizationState: &rasterState,
		PMultisampleState:   &multisampleState,
		PColorBlendState:    &colorBlendState,
		PDynamicState:       &dynamicState,
		Layout:              pipelineLayout,
		Subpass:             0,
	}

	if g.Configure != nil {
		g.Configure(&pipelineCreateInfo)
	}

	return pipelineCreateInfo, nil
}
