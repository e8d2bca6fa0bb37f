package physics

import (
	"math"

	"github.com/lixenwraith/honly-helper/core"
	"github.com/lixenwraith/honly-helper/vmath"
)

// SegmentTest reports whether the swept segment from→to touches a collidable volume
type SegmentTest func(from, to vmath.Vec2) bool

// SegmentIntersectsRect checks segment ab against an axis-aligned rect (slab method)
// A zero-length segment degenerates to a point containment check
func SegmentIntersectsRect(a, b vmath.Vec2, r core.Rect) bool {
	tMin, tMax := 0.0, 1.0
	d := b.Sub(a)

	if !clipAxis(a.X, d.X, r.Left(), r.Right(), &tMin, &tMax) {
		return false
	}
	if !clipAxis(a.Y, d.Y, r.Top(), r.Bottom(), &tMin, &tMax) {
		return false
	}
	return true
}

// clipAxis narrows [tMin,tMax] to the parametric range inside slab [lo,hi]
func clipAxis(origin, delta, lo, hi float64, tMin, tMax *float64) bool {
	if delta == 0 {
		return origin >= lo && origin <= hi
	}

	inv := 1.0 / delta
	t1 := (lo - origin) * inv
	t2 := (hi - origin) * inv
	if t1 > t2 {
		t1, t2 = t2, t1
	}

	*tMin = math.Max(*tMin, t1)
	*tMax = math.Min(*tMax, t2)
	return *tMin <= *tMax
}

// SegmentEntry returns the parametric entry point of segment ab into r, ok=false on miss
// Used as the analytic reference for bisection precision
func SegmentEntry(a, b vmath.Vec2, r core.Rect) (vmath.Vec2, bool) {
	tMin, tMax := 0.0, 1.0
	d := b.Sub(a)
	if !clipAxis(a.X, d.X, r.Left(), r.Right(), &tMin, &tMax) {
		return vmath.Zero, false
	}
	if !clipAxis(a.Y, d.Y, r.Top(), r.Bottom(), &tMin, &tMax) {
		return vmath.Zero, false
	}
	return a.Add(d.Scale(tMin)), true
}

// BisectImpact localizes where the sweep miss→hit first enters a volume
// Each iteration tests the sub-segment from the miss endpoint to the midpoint:
// a collision moves the hit endpoint to the midpoint, otherwise the miss endpoint moves
// Runs exactly iterations steps with no early exit; returns the final hit endpoint
func BisectImpact(miss, hit vmath.Vec2, iterations int, collides SegmentTest) vmath.Vec2 {
	for i := 0; i < iterations; i++ {
		mid := vmath.Mid(miss, hit)
		if collides(miss, mid) {
			hit = mid
		} else {
			miss = mid
		}
	}
	return hit
}

// BisectionError bounds the distance between the returned impact and the true entry
// after n halvings of a sweep of the given length
func BisectionError(sweepLength float64, iterations int) float64 {
	return sweepLength / math.Pow(2, float64(iterations))
}
