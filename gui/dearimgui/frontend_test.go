package dearimgui

import (
	"testing"

	"github.com/celer/vkgui/gui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func frameInput() gui.FrameInput {
	return gui.FrameInput{
		DisplaySize:      gui.Vec2{X: 800, Y: 600},
		FramebufferScale: gui.Vec2{X: 1, Y: 1},
		DeltaTime:        1.0 / 60.0,
	}
}

func TestLayout(t *testing.T) {
	f := New()
	defer f.Destroy()

	assert.Equal(t, gui.DefaultVertexLayout, f.Layout())
}

func TestFontAtlas(t *testing.T) {
	f := New()
	defer f.Destroy()

	atlas, err := f.FontAtlas()
	require.NoError(t, err)
	b := atlas.Bounds()
	assert.Positive(t, b.Dx())
	assert.Positive(t, b.Dy())
	assert.Len(t, atlas.Pix, b.Dx()*b.Dy()*4)

	opaque := false
	for i := 3; i < len(atlas.Pix); i += 4 {
		if atlas.Pix[i] != 0 {
			opaque = true
			break
		}
	}
	assert.True(t, opaque, "atlas has no glyph pixels")
}

func TestRenderDemoWindow(t *testing.T) {
	f := New()
	defer f.Destroy()

	_, err := f.FontAtlas()
	require.NoError(t, err)
	f.SetFontTexture(7)

	open := true
	f.NewFrame(frameInput())
	f.ShowDemoWindow(&open)
	data := f.Render()

	require.NotNil(t, data)
	assert.NotEmpty(t, data.Lists)
	assert.Positive(t, data.ElementCount())
	assert.Equal(t, gui.Vec2{X: 800, Y: 600}, data.DisplaySize)
	assert.Equal(t, gui.Vec2{X: 1, Y: 1}, data.FramebufferScale)
	assert.Equal(t, gui.Vec2{}, data.DisplayPos, "main viewport starts at the origin")

	layout := f.Layout()
	for _, list := range data.Lists {
		assert.Zero(t, len(list.Vertices)%layout.Stride)
		assert.Zero(t, len(list.Indices)%layout.IndexSize)
		for _, cmd := range list.Commands {
			if cmd.Callback == nil {
				assert.Equal(t, gui.TextureID(7), cmd.Texture)
			}
		}
	}
}

func TestRenderWithoutWidgets(t *testing.T) {
	f := New()
	defer f.Destroy()

	_, err := f.FontAtlas()
	require.NoError(t, err)

	f.NewFrame(frameInput())
	data := f.Render()
	require.NotNil(t, data)
	assert.Zero(t, data.ElementCount())

	mouse, keyboard := f.WantCapture()
	assert.False(t, mouse)
	assert.False(t, keyboard)
}

func TestDestroyTwice(t *testing.T) {
	f := New()
	f.Destroy()
	f.Destroy()

	_, err := f.FontAtlas()
	assert.ErrorIs(t, err, ErrDestroyed)
	assert.Nil(t, f.Render())

	mouse, keyboard := f.WantCapture()
	assert.False(t, mouse)
	assert.False(t, keyboard)
}
