package component

import (
	"time"

	"github.com/lixenwraith/honly-helper/core"
	"github.com/lixenwraith/honly-helper/vmath"
)

// TurretComponent is a stationary bullet launcher
// Implements host.Source so projectiles can return to it on impact
type TurretComponent struct {
	ID       core.Entity
	Position vmath.Vec2    // Center point, bullets spawn here
	Interval time.Duration // Cooldown between shots
	Speed    float64       // Bullet speed, pixels per second
	Aim      bool          // Aim at the player each shot instead of using Angle
	Angle    float64       // Fixed launch angle in radians when Aim is false

	Cooldown time.Duration // Time until next shot
}

func (t *TurretComponent) Center() vmath.Vec2 { return t.Position }
