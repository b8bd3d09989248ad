package vkg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	vk "github.com/vulkan-go/vulkan"
)

func TestGraphicsPipelineConfigDefaults(t *testing.T) {
	g := (&Device{}).CreateGraphicsPipelineConfig()

	info, err := g.VKGraphicsPipelineCreateInfo(vk.Extent2D{Width: 640, Height: 480})
	require.NoError(t, err)

	assert.Equal(t, uint32(2), info.PDynamicState.DynamicStateCount)
	assert.Nil(t, info.PViewportState.PViewports)
	assert.Nil(t, info.PViewportState.PScissors)
	assert.Equal(t, uint32(1), info.PViewportState.ViewportCount)
	assert.Equal(t, vk.Bool32(vk.True), info.PDepthStencilState.DepthTestEnable)
	assert.Equal(t, vk.CullModeFlags(vk.CullModeBackBit), info.PRasterizationState.CullMode)
	require.Len(t, info.PColorBlendState.PAttachments, 1)
	assert.Equal(t, vk.Bool32(vk.False), info.PColorBlendState.PAttachments[0].BlendEnable)
}

func TestGraphicsPipelineConfigStaticViewport(t *testing.T) {
	g := (&Device{}).CreateGraphicsPipelineConfig().SetDynamicState()

	info, err := g.VKGraphicsPipelineCreateInfo(vk.Extent2D{Width: 640, Height: 480})
	require.NoError(t, err)

	require.Len(t, info.PViewportState.PViewports, 1)
	assert.Equal(t, float32(640), info.PViewportState.PViewports[0].Width)
	assert.Equal(t, float32(480), info.PViewportState.PViewports[0].Height)
	require.Len(t, info.PViewportState.PScissors, 1)
	assert.Equal(t, uint32(640), info.PViewportState.PScissors[0].Extent.Width)
}

func TestGraphicsPipelineConfigOverlay(t *testing.T) {
	configured := false
	g := (&Device{}).CreateGraphicsPipelineConfig().
		SetCullMode(vk.CullModeNone).
		SetDepth(false, false).
		AddBlendAttachment(AlphaBlendAttachment()).
		AddPushConstantRange(vk.ShaderStageVertexBit, 0, 64)
	g.Configure = func(info *vk.GraphicsPipelineCreateInfo) {
		configured = true
		info.Subpass = 0
	}

	info, err := g.VKGraphicsPipelineCreateInfo(vk.Extent2D{Width: 1, Height: 1})
	require.NoError(t, err)

	assert.True(t, configured)
	assert.Equal(t, vk.Bool32(vk.False), info.PDepthStencilState.DepthTestEnable)
	assert.Equal(t, vk.Bool32(vk.False), info.PDepthStencilState.DepthWriteEnable)
	assert.Equal(t, vk.CullModeFlags(vk.CullModeNone), info.PRasterizationState.CullMode)
	require.Len(t, info.PColorBlendState.PAttachments, 1)
	blend := info.PColorBlendState.PAttachments[0]
	assert.Equal(t, vk.BlendFactorSrcAlpha, blend.SrcColorBlendFactor)
	assert.Equal(t, vk.BlendFactorOneMinusSrcAlpha, blend.DstColorBlendFactor)
	require.Len(t, g.PushConstantRanges, 1)
	assert.Equal(t, uint32(64), g.PushConstantRanges[0].Size)
}
