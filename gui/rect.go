package gui

import (
	"github.com/chewxy/math32"
	"golang.org/x/exp/constraints"
)

type numeric interface {
	constraints.Integer | constraints.Float
}

// Vec2 is a 2D vector in display coordinates.
type Vec2 struct {
	X, Y float32
}

// Rect is an axis aligned rectangle spanning [Min, Max).
type Rect[T numeric] struct {
	MinX, MinY T
	MaxX, MaxY T
}

// RectXYWH builds a rectangle from its origin and size.
func RectXYWH[T numeric](x, y, w, h T) Rect[T] {
	return Rect[T]{MinX: x, MinY: y, MaxX: x + w, MaxY: y + h}
}

func (r Rect[T]) Width() T {
	return r.MaxX - r.MinX
}

func (r Rect[T]) Height() T {
	return r.MaxY - r.MinY
}

func (r Rect[T]) Empty() bool {
	return r.MaxX <= r.MinX || r.MaxY <= r.MinY
}

// Intersect returns the overlap of r and o, which may be empty.
func (r Rect[T]) Intersect(o Rect[T]) Rect[T] {
	return Rect[T]{
		MinX: max(r.MinX, o.MinX),
		MinY: max(r.MinY, o.MinY),
		MaxX: min(r.MaxX, o.MaxX),
		MaxY: min(r.MaxY, o.MaxY),
	}
}

// framebufferScissor maps a clip rectangle from display space into the
// framebuffer and clamps it to the framebuffer bounds. ok is false when
// nothing of the rectangle is left.
func framebufferScissor(clip Rect[float32], pos, scale Vec2, width, height int) (s Rect[int32], ok bool) {
	r := Rect[float32]{
		MinX: (clip.MinX - pos.X) * scale.X,
		MinY: (clip.MinY - pos.Y) * scale.Y,
		MaxX: (clip.MaxX - pos.X) * scale.X,
		MaxY: (clip.MaxY - pos.Y) * scale.Y,
	}
	r = r.Intersect(Rect[float32]{MaxX: float32(width), MaxY: float32(height)})
	if r.Empty() {
		return s, false
	}
	return Rect[int32]{
		MinX: int32(math32.Floor(r.MinX)),
		MinY: int32(math32.Floor(r.MinY)),
		MaxX: int32(math32.Ceil(r.MaxX)),
		MaxY: int32(math32.Ceil(r.MaxY)),
	}, true
}
