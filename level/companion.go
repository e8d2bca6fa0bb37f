package level

import (
	"github.com/lixenwraith/honly-helper/core"
	"github.com/lixenwraith/honly-helper/host"
	"github.com/lixenwraith/honly-helper/parameter"
	"github.com/lixenwraith/honly-helper/vmath"
)

// Companion is the floating character a cutscene spawns beside the actor
type Companion struct {
	Pos     vmath.Vec2
	Facing  core.Facing
	removed bool

	level *Level
	float *Tween
}

func (c *Companion) Position() vmath.Vec2     { return c.Pos }
func (c *Companion) SetFacing(f core.Facing)  { c.Facing = f }
func (c *Companion) Removed() bool            { return c.removed }
func (c *Companion) SetPosition(p vmath.Vec2) { c.stopFloat(); c.Pos = p }

// FloatTo eases the companion to p
func (c *Companion) FloatTo(p vmath.Vec2) host.Task {
	c.stopFloat()
	from := c.Pos
	c.float = c.level.tweens.add(NewTween(parameter.CompanionFloatDuration, vmath.SineInOut, func(t float64) {
		c.Pos = vmath.Lerp(from, p, t)
	}))
	return c.float
}

// Remove despawns the companion; repeated calls are no-ops
func (c *Companion) Remove() {
	if c.removed {
		return
	}
	c.stopFloat()
	c.removed = true
	c.level.removeCompanion(c)
}

func (c *Companion) stopFloat() {
	if c.float != nil {
		c.float.Cancel()
		c.float = nil
	}
}

// SpawnCompanion places a new companion in the level
func (l *Level) SpawnCompanion(at vmath.Vec2) host.Companion {
	c := &Companion{Pos: at, Facing: core.FacingRight, level: l}
	l.companions = append(l.companions, c)
	l.log.Debug("companion spawned", "x", at.X, "y", at.Y)
	return c
}

func (l *Level) removeCompanion(c *Companion) {
	for i, o := range l.companions {
		if o == c {
			l.companions = append(l.companions[:i], l.companions[i+1:]...)
			return
		}
	}
}

// Companions returns the companions currently in the level
func (l *Level) Companions() []*Companion { return l.companions }
