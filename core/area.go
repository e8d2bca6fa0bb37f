package core

import "github.com/lixenwraith/honly-helper/vmath"

// Rect is an axis-aligned collision volume in level pixels
// X, Y is the top-left corner
type Rect struct {
	X, Y          float64
	Width, Height float64
}

func (r Rect) Left() float64   { return r.X }
func (r Rect) Top() float64    { return r.Y }
func (r Rect) Right() float64  { return r.X + r.Width }
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Center returns the midpoint of the rect
func (r Rect) Center() vmath.Vec2 {
	return vmath.Vec2{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Empty reports a degenerate rect
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains checks if point is within rect, edges inclusive
func (r Rect) Contains(p vmath.Vec2) bool {
	return p.X >= r.X && p.X <= r.Right() && p.Y >= r.Y && p.Y <= r.Bottom()
}

// Intersects checks overlap of two rects, touching edges count
func (r Rect) Intersects(o Rect) bool {
	return r.X <= o.Right() && o.X <= r.Right() && r.Y <= o.Bottom() && o.Y <= r.Bottom()
}

// SegmentBounds returns the smallest rect enclosing segment ab
func SegmentBounds(a, b vmath.Vec2) Rect {
	minX, maxX := a.X, b.X
	if minX > maxX {
		minX, maxX = maxX, minX
	}
	minY, maxY := a.Y, b.Y
	if minY > maxY {
		minY, maxY = maxY, minY
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
