package level

import (
	"time"

	"github.com/lixenwraith/honly-helper/core"
	"github.com/lixenwraith/honly-helper/parameter"
	"github.com/lixenwraith/honly-helper/vmath"
)

// Player is the controlled actor and the turrets' target
// Pos is the bottom-center point of the hitbox
type Player struct {
	Pos      vmath.Vec2
	Spawn    vmath.Vec2
	Facing   core.Facing
	Dead     bool
	DeathDir vmath.Vec2

	locked  bool
	airTime time.Duration
	session *Session
}

func NewPlayer(spawn vmath.Vec2, session *Session) *Player {
	p := &Player{Spawn: spawn, session: session}
	p.Respawn()
	return p
}

// Respawn revives the player at its spawn point
func (p *Player) Respawn() {
	p.Pos = p.Spawn
	p.Facing = core.FacingRight
	p.Dead = false
	p.DeathDir = vmath.Zero
	p.locked = false
	p.airTime = 0
	p.SetResources(parameter.PlayerMaxDashes)
}

func (p *Player) Position() vmath.Vec2 { return p.Pos }

func (p *Player) Hitbox() core.Rect {
	return core.Rect{
		X:      p.Pos.X - parameter.PlayerHitboxWidth/2,
		Y:      p.Pos.Y - parameter.PlayerHitboxHeight,
		Width:  parameter.PlayerHitboxWidth,
		Height: parameter.PlayerHitboxHeight,
	}
}

func (p *Player) Center() vmath.Vec2 { return p.Hitbox().Center() }

// Die records the knockback direction; later hits on a dead player are ignored
func (p *Player) Die(dir vmath.Vec2) {
	if p.Dead {
		return
	}
	p.Dead = true
	p.DeathDir = dir
}

func (p *Player) OnSafeGround() bool { return !p.Dead && p.airTime <= 0 }

func (p *Player) LockControl()   { p.locked = true }
func (p *Player) UnlockControl() { p.locked = false }

// Locked reports whether input is ignored
func (p *Player) Locked() bool { return p.locked || p.Dead }

func (p *Player) SetFacing(f core.Facing) { p.Facing = f }

func (p *Player) Resources() int {
	if p.session == nil {
		return 0
	}
	return p.session.Dashes
}

func (p *Player) SetResources(n int) {
	if p.session != nil {
		p.session.Dashes = n
	}
}

// Move walks the player by dir (-1, 0, 1) for dt, clamped to bounds
func (p *Player) Move(dir float64, dt time.Duration, bounds core.Rect) {
	if p.Locked() || dir == 0 {
		return
	}
	if dir < 0 {
		p.Facing = core.FacingLeft
	} else {
		p.Facing = core.FacingRight
	}
	half := parameter.PlayerHitboxWidth / 2
	p.Pos.X = vmath.Clamp(p.Pos.X+dir*parameter.PlayerMoveSpeed*dt.Seconds(), bounds.Left()+half, bounds.Right()-half)
}

// Jump leaves safe ground for the jump air time
func (p *Player) Jump() {
	if p.Locked() || p.airTime > 0 {
		return
	}
	p.airTime = parameter.PlayerJumpAirTime
}

// Airborne reports the remaining jump air time
func (p *Player) Airborne() time.Duration { return p.airTime }

func (p *Player) update(dt time.Duration) {
	if p.airTime > 0 {
		p.airTime -= dt
	}
}
