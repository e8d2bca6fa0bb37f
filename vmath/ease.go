package vmath

import "math"

// Easer maps linear progress [0,1] to eased progress
type Easer func(t float64) float64

// Linear is the identity curve
func Linear(t float64) float64 { return t }

// CubeIn accelerates from rest: t³
func CubeIn(t float64) float64 { return t * t * t }

// CubeOut decelerates to rest
func CubeOut(t float64) float64 {
	u := 1 - t
	return 1 - u*u*u
}

// SineInOut eases both ends
func SineInOut(t float64) float64 {
	return -(math.Cos(math.Pi*t) - 1) / 2
}

// Clamp01 restricts t to [0,1]
func Clamp01(t float64) float64 {
	switch {
	case t < 0:
		return 0
	case t > 1:
		return 1
	}
	return t
}

// Clamp restricts x to [lo,hi]
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
