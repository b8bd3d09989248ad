package dearimgui

import (
	"testing"

	"github.com/inkyblackness/imgui-go/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vulkan-go/glfw/v3.3/glfw"
)

type fakePointer struct {
	x, y    float64
	focused bool
	down    map[glfw.MouseButton]bool
	polls   int
}

func (p *fakePointer) GetCursorPos() (float64, float64) {
	p.polls++
	return p.x, p.y
}

func (p *fakePointer) GetMouseButton(b glfw.MouseButton) glfw.Action {
	if p.down[b] {
		return glfw.Press
	}
	return glfw.Release
}

func (p *fakePointer) GetAttrib(glfw.Hint) int {
	if p.focused {
		return 1
	}
	return 0
}

func TestKeyMapDistinct(t *testing.T) {
	seen := map[glfw.Key]bool{}
	for _, key := range keyMap {
		assert.False(t, seen[key], "key %d mapped twice", key)
		seen[key] = true
	}
	assert.Len(t, keyMap, 21)
}

func TestButtonIndex(t *testing.T) {
	i, ok := buttonIndex(glfw.MouseButton2)
	assert.True(t, ok)
	assert.Equal(t, 1, i)

	_, ok = buttonIndex(glfw.MouseButton5)
	assert.False(t, ok)
}

func TestInputHandlerPassesThroughWithoutCapture(t *testing.T) {
	f := New()
	defer f.Destroy()
	_, err := f.FontAtlas()
	require.NoError(t, err)

	p := &fakePointer{x: 10, y: 20, focused: true}
	h := NewInputHandler(f, p)

	f.NewFrame(frameInput())
	f.Render()
	assert.Equal(t, 1, p.polls)

	assert.False(t, h.KeyChange(glfw.KeyW, 0, glfw.Press, 0))
	assert.False(t, h.KeyChange(glfw.KeyW, 0, glfw.Release, 0))
	assert.False(t, h.MouseButtonChange(glfw.MouseButton1, glfw.Press, 0))
	assert.False(t, h.MouseScrollChange(0, 1))
	assert.False(t, h.CursorPosChange(5, 5))
	assert.False(t, h.CharChange('a'))
}

func TestInputHandlerUnfocused(t *testing.T) {
	f := New()
	defer f.Destroy()
	_, err := f.FontAtlas()
	require.NoError(t, err)

	p := &fakePointer{}
	NewInputHandler(f, p)

	f.NewFrame(frameInput())
	f.Render()
	assert.Zero(t, p.polls)
}

func TestButtonClickCountsOnce(t *testing.T) {
	f := New()
	defer f.Destroy()
	_, err := f.FontAtlas()
	require.NoError(t, err)

	p := &fakePointer{x: 100, y: 50, focused: true, down: map[glfw.MouseButton]bool{}}
	h := NewInputHandler(f, p)

	counter := 0
	frame := func(down bool) {
		p.down[glfw.MouseButton1] = down
		f.NewFrame(frameInput())
		imgui.SetNextWindowPos(imgui.Vec2{})
		imgui.SetNextWindowSize(imgui.Vec2{X: 200, Y: 100})
		imgui.BeginV("counter", nil, imgui.WindowFlagsNoTitleBar|imgui.WindowFlagsNoResize|imgui.WindowFlagsNoMove)
		// the button fills the window, so the pointer is always over it
		if imgui.ButtonV("count", imgui.Vec2{X: -1, Y: -1}) {
			counter++
		}
		imgui.End()
		f.Render()
	}

	for i := 0; i < 3; i++ {
		frame(false)
	}
	assert.Zero(t, counter)
	mouse, _ := f.WantCapture()
	require.True(t, mouse, "the pointer hovers the gui window")

	// held across frames, counted on release
	require.True(t, h.MouseButtonChange(glfw.MouseButton1, glfw.Press, 0))
	frame(true)
	frame(true)
	assert.Zero(t, counter)
	frame(false)
	assert.Equal(t, 1, counter)

	// longer than the double click time
	for i := 0; i < 30; i++ {
		frame(false)
	}
	assert.Equal(t, 1, counter, "no click, no change")

	// pressed and released between two frames
	require.True(t, h.MouseButtonChange(glfw.MouseButton1, glfw.Press, 0))
	require.True(t, h.MouseButtonChange(glfw.MouseButton1, glfw.Release, 0))
	frame(false)
	frame(false)
	assert.Equal(t, 2, counter)

	frame(false)
	assert.Equal(t, 2, counter)
}
