package gui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRectIntersect(t *testing.T) {
	a := RectXYWH(0, 0, 10, 10)
	assert.Equal(t, Rect[int]{5, 5, 10, 10}, a.Intersect(RectXYWH(5, 5, 10, 10)))
	assert.True(t, a.Intersect(RectXYWH(20, 0, 5, 5)).Empty())
	assert.Equal(t, 10, a.Width())
	assert.Equal(t, 10, a.Height())
}

func TestFramebufferScissor(t *testing.T) {
	tests := []struct {
		name  string
		clip  Rect[float32]
		pos   Vec2
		scale Vec2
		want  Rect[int32]
		ok    bool
	}{
		{"inside", Rect[float32]{0, 0, 100, 100}, Vec2{}, Vec2{1, 1}, Rect[int32]{0, 0, 100, 100}, true},
		{"clamped top left", Rect[float32]{-10, -20, 100, 50}, Vec2{}, Vec2{1, 1}, Rect[int32]{0, 0, 100, 50}, true},
		{"clamped bottom right", Rect[float32]{700, 500, 900, 700}, Vec2{}, Vec2{1, 1}, Rect[int32]{700, 500, 800, 600}, true},
		{"fractional", Rect[float32]{0.5, 1.5, 2.5, 3.25}, Vec2{}, Vec2{1, 1}, Rect[int32]{0, 1, 3, 4}, true},
		{"scaled", Rect[float32]{10, 20, 30, 40}, Vec2{}, Vec2{2, 2}, Rect[int32]{20, 40, 60, 80}, true},
		{"offset", Rect[float32]{110, 120, 130, 140}, Vec2{100, 100}, Vec2{1, 1}, Rect[int32]{10, 20, 30, 40}, true},
		{"right of framebuffer", Rect[float32]{800, 0, 900, 100}, Vec2{}, Vec2{1, 1}, Rect[int32]{}, false},
		{"above framebuffer", Rect[float32]{0, -100, 100, 0}, Vec2{}, Vec2{1, 1}, Rect[int32]{}, false},
		{"inverted", Rect[float32]{50, 50, 40, 60}, Vec2{}, Vec2{1, 1}, Rect[int32]{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := framebufferScissor(tt.clip, tt.pos, tt.scale, 800, 600)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
