package level

import (
	"math"

	"github.com/lixenwraith/honly-helper/core"
	"github.com/lixenwraith/honly-helper/parameter"
	"github.com/lixenwraith/honly-helper/vmath"
)

// Solid is inert level geometry
type Solid struct {
	Rect core.Rect
}

func (s *Solid) Bounds() core.Rect { return s.Rect }

// FallingBlock drops once struck or stood on
type FallingBlock struct {
	Rect      core.Rect
	Triggered bool
	Speed     float64

	origin core.Rect
	level  *Level
}

func (b *FallingBlock) Bounds() core.Rect { return b.Rect }

// Trigger starts the fall; later triggers are ignored
func (b *FallingBlock) Trigger() {
	if b.Triggered {
		return
	}
	b.Triggered = true
	if b.level != nil {
		b.level.log.Debug("falling block triggered", "x", b.Rect.X, "y", b.Rect.Y)
	}
}

func (b *FallingBlock) reset() {
	b.Rect = b.origin
	b.Triggered = false
	b.Speed = 0
}

// update accelerates a triggered block until it leaves the level
func (b *FallingBlock) update(dt float64) {
	if !b.Triggered || b.level == nil {
		return
	}
	b.Speed = math.Min(b.Speed+parameter.FallingBlockGravity*dt, parameter.FallingBlockMaxSpeed)
	b.Rect.Y += b.Speed * dt
	if b.Rect.Top() > b.level.Bounds.Bottom() {
		b.level.index.Remove(b)
		return
	}
	b.level.index.Move(b)
}

// DashBlock shatters when struck
type DashBlock struct {
	Rect   core.Rect
	Broken bool

	level *Level
}

func (b *DashBlock) reset() { b.Broken = false }

func (b *DashBlock) Bounds() core.Rect { return b.Rect }

func (b *DashBlock) Removed() bool { return b.Broken }

// Break shatters the block, optionally with sound and debris thrown along dir
func (b *DashBlock) Break(at, dir vmath.Vec2, playSound, playDebris bool) {
	if b.Broken {
		return
	}
	b.Broken = true

	l := b.level
	if l == nil {
		return
	}
	l.index.Remove(b)
	if playSound && l.Audio != nil {
		l.Audio.Play(parameter.SoundDashBlockBreak, b.Rect.Center())
	}
	if playDebris {
		l.Particles.Burst(at, parameter.DashBlockDebrisCount, b.Rect.Width/2, dir.Angle())
	}
	l.log.Debug("dash block broken", "x", b.Rect.X, "y", b.Rect.Y)
}
