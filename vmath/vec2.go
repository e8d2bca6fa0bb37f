package vmath

import (
	"math"
)

// Vec2 is a float64 2D vector in level pixel space
// Y grows downward, matching screen coordinates
type Vec2 struct {
	X, Y float64
}

// Common vectors
var (
	Zero  = Vec2{}
	UnitX = Vec2{X: 1}
	UnitY = Vec2{Y: 1}
	One   = Vec2{X: 1, Y: 1}
	Up    = Vec2{Y: -1}
)

func V2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

func (v Vec2) Neg() Vec2 {
	return Vec2{-v.X, -v.Y}
}

func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

func (v Vec2) LenSq() float64 {
	return v.X*v.X + v.Y*v.Y
}

func (v Vec2) Len() float64 {
	return math.Sqrt(v.LenSq())
}

// Angle returns the direction of v in radians, atan2(Y, X)
func (v Vec2) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// Rotate turns v by angle radians: x' = x·cos − y·sin, y' = x·sin + y·cos
func (v Vec2) Rotate(angle float64) Vec2 {
	sin, cos := math.Sincos(angle)
	return Vec2{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

// Normalize returns the unit vector of v, or Zero for a zero-length input
func (v Vec2) Normalize() Vec2 {
	return v.SafeNormalize(Zero)
}

// SafeNormalize returns the unit vector of v
// Zero-length (and non-finite) input resolves to fallback instead of NaN
func (v Vec2) SafeNormalize(fallback Vec2) Vec2 {
	mag := v.Len()
	if mag == 0 || math.IsNaN(mag) || math.IsInf(mag, 0) {
		return fallback
	}
	inv := 1.0 / mag
	return Vec2{v.X * inv, v.Y * inv}
}

// FromAngle returns the vector of the given length pointing along angle
func FromAngle(angle, length float64) Vec2 {
	return UnitX.Scale(length).Rotate(angle)
}

// Lerp interpolates between a and b, t unclamped
func Lerp(a, b Vec2, t float64) Vec2 {
	return Vec2{
		X: a.X + (b.X-a.X)*t,
		Y: a.Y + (b.Y-a.Y)*t,
	}
}

// Mid returns the midpoint of segment ab
func Mid(a, b Vec2) Vec2 {
	return Vec2{(a.X + b.X) / 2, (a.Y + b.Y) / 2}
}

// Dist returns Euclidean distance between a and b
func Dist(a, b Vec2) float64 {
	return b.Sub(a).Len()
}

// ApproxEqual reports component-wise equality within eps
func ApproxEqual(a, b Vec2, eps float64) bool {
	return math.Abs(a.X-b.X) <= eps && math.Abs(a.Y-b.Y) <= eps
}
