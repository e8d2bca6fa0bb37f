package level

import (
	"time"

	"github.com/lixenwraith/honly-helper/host"
	"github.com/lixenwraith/honly-helper/parameter"
	"github.com/lixenwraith/honly-helper/vmath"
)

// Camera follows the actor and zooms toward screen-space focus points
// Position is the top-left of the unzoomed viewport in level pixels
type Camera struct {
	Pos   vmath.Vec2
	Zoom  float64
	Focus vmath.Vec2 // Screen-space point held fixed while zoomed

	bounds vmath.Vec2 // Level extent, camera is clamped inside
	tweens tweenSet
}

func NewCamera(levelWidth, levelHeight float64) *Camera {
	return &Camera{Zoom: 1, bounds: vmath.V2(levelWidth, levelHeight)}
}

func (c *Camera) Position() vmath.Vec2 { return c.Pos }

// ZoomTo eases zoom and focus toward the targets over d
func (c *Camera) ZoomTo(focus vmath.Vec2, zoom float64, d time.Duration) host.Task {
	c.tweens.cancel()
	fromZoom, fromFocus := c.Zoom, c.Focus
	if fromZoom == 1 {
		fromFocus = focus
	}
	return c.tweens.add(NewTween(d, vmath.SineInOut, func(t float64) {
		c.Zoom = fromZoom + (zoom-fromZoom)*t
		c.Focus = vmath.Lerp(fromFocus, focus, t)
	}))
}

// ZoomBack eases zoom back to 1 around the current focus
func (c *Camera) ZoomBack(d time.Duration) host.Task {
	return c.ZoomTo(c.Focus, 1, d)
}

// ResetZoom snaps to the unzoomed view, abandoning running tweens
func (c *Camera) ResetZoom() {
	c.tweens.cancel()
	c.Zoom = 1
	c.Focus = vmath.Zero
}

// Follow blends the viewport toward centering target, unless zoomed
func (c *Camera) Follow(target vmath.Vec2) {
	if !parameter.CameraEnabled || c.Zoom != 1 {
		return
	}
	goal := target.Sub(vmath.V2(parameter.ViewportWidth/2, parameter.ViewportHeight/2))
	goal.X = vmath.Clamp(goal.X, 0, max(0, c.bounds.X-parameter.ViewportWidth))
	goal.Y = vmath.Clamp(goal.Y, 0, max(0, c.bounds.Y-parameter.ViewportHeight))
	c.Pos = vmath.Lerp(c.Pos, goal, parameter.CameraFollowLerp)
}

// ToScreen maps a level point to zoomed screen space
func (c *Camera) ToScreen(p vmath.Vec2) vmath.Vec2 {
	s := p.Sub(c.Pos)
	return s.Sub(c.Focus).Scale(c.Zoom).Add(c.Focus)
}

// Update advances running zoom tweens
func (c *Camera) Update(dt time.Duration) {
	c.tweens.update(dt)
}

// Zooming reports a running tween
func (c *Camera) Zooming() bool { return len(c.tweens) > 0 }
