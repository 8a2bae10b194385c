// Package geom provides the pixel-aligned geometry used by the widget tree.
package geom

import "math"

// Vector is a 2D point or size.
type Vector struct {
	X, Y float64
}

// Add returns v + o.
func (v Vector) Add(o Vector) Vector {
	return Vector{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vector) Sub(o Vector) Vector {
	return Vector{X: v.X - o.X, Y: v.Y - o.Y}
}

// Rect is a positioned rectangle.
type Rect struct {
	Left, Top, Width, Height float64
}

// NewRect creates a rect from position and size.
func NewRect(left, top, width, height float64) Rect {
	return Rect{Left: left, Top: top, Width: width, Height: height}
}

// Position returns the rect's origin.
func (r Rect) Position() Vector {
	return Vector{X: r.Left, Y: r.Top}
}

// Size returns the rect's dimensions.
func (r Rect) Size() Vector {
	return Vector{X: r.Width, Y: r.Height}
}

// Right returns the exclusive right edge.
func (r Rect) Right() float64 {
	return r.Left + r.Width
}

// Bottom returns the exclusive bottom edge.
func (r Rect) Bottom() float64 {
	return r.Top + r.Height
}

// Empty reports whether the rect has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains returns true if the point is inside the rect.
// The left and top edges are inclusive, right and bottom exclusive.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.Left && x < r.Right() && y >= r.Top && y < r.Bottom()
}

// Intersects returns true if the two rects overlap.
func (r Rect) Intersects(o Rect) bool {
	if r.Empty() || o.Empty() {
		return false
	}
	return r.Left < o.Right() && r.Right() > o.Left &&
		r.Top < o.Bottom() && r.Bottom() > o.Top
}

// Union returns the smallest rect covering both. Empty rects are ignored.
func (r Rect) Union(o Rect) Rect {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	left := math.Min(r.Left, o.Left)
	top := math.Min(r.Top, o.Top)
	right := math.Max(r.Right(), o.Right())
	bottom := math.Max(r.Bottom(), o.Bottom())
	return Rect{Left: left, Top: top, Width: right - left, Height: bottom - top}
}

// Translate returns the rect moved by the offset.
func (r Rect) Translate(off Vector) Rect {
	r.Left += off.X
	r.Top += off.Y
	return r
}

// Inset returns a rect shrunk by the given amount on every side.
func (r Rect) Inset(n float64) Rect {
	return Rect{
		Left:   r.Left + n,
		Top:    r.Top + n,
		Width:  math.Max(0, r.Width-2*n),
		Height: math.Max(0, r.Height-2*n),
	}
}

// Round rounds half up to the nearest integer: floor(v + 0.5).
func Round(v float64) float64 {
	return math.Floor(v + 0.5)
}

// Align returns the rect with every component rounded to a whole pixel.
func (r Rect) Align() Rect {
	return Rect{
		Left:   Round(r.Left),
		Top:    Round(r.Top),
		Width:  Round(r.Width),
		Height: Round(r.Height),
	}
}

// Align returns the vector with both components rounded to a whole pixel.
func (v Vector) Align() Vector {
	return Vector{X: Round(v.X), Y: Round(v.Y)}
}

// Ints returns the rect components as integers. The rect should be aligned.
func (r Rect) Ints() (x, y, w, h int) {
	return int(r.Left), int(r.Top), int(r.Width), int(r.Height)
}
