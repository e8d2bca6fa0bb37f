// FILE: component/projectile.go
package component

import (
	"github.com/lixenwraith/honly-helper/host"
	"github.com/lixenwraith/honly-helper/parameter"
	"github.com/lixenwraith/honly-helper/vmath"
)

// ProjectilePhase represents lifecycle state
type ProjectilePhase uint8

const (
	ProjectilePhaseFlying      ProjectilePhase = iota // Linear motion, sweeps every tick
	ProjectilePhaseTerminalHit                        // Struck agent or obstacle, removed next tick
	ProjectilePhaseTerminalOOB                        // Left level bounds, removed this tick
	ProjectilePhaseRemoved                            // Slot released
)

// ProjectileHitKind records what a terminal hit struck
type ProjectileHitKind uint8

const (
	ProjectileHitNone ProjectileHitKind = iota
	ProjectileHitAgent
	ProjectileHitObstacle
)

// TrailCapacity is ring buffer size for trail rendering
const TrailCapacity = parameter.TracerLength

// ProjectileComponent holds bullet state (pure data)
type ProjectileComponent struct {
	Phase ProjectilePhase
	Hit   ProjectileHitKind

	Source host.Source // Launcher; rendered position snaps back here on impact
	Target host.Agent  // Tracked agent, decides nothing about velocity

	Position vmath.Vec2 // Rendered position
	Anchor   vmath.Vec2 // Sweep end, advanced by velocity each tick
	Velocity vmath.Vec2 // Set once at spawn
	Impact   vmath.Vec2 // Localized impact point when Phase == TerminalHit

	Whistle host.SoundHandle // Continuous flight sound, stopped on destroy

	// Trail ring buffer, TrailHead is the index of the most recent point
	Trail     [TrailCapacity]vmath.Vec2
	TrailHead int
}

// ResetTrail fills every trail slot with at
func (p *ProjectileComponent) ResetTrail(at vmath.Vec2) {
	for i := range p.Trail {
		p.Trail[i] = at
	}
	p.TrailHead = 0
}

// PushTrail records a new most-recent point, discarding the oldest
func (p *ProjectileComponent) PushTrail(at vmath.Vec2) {
	p.TrailHead = (p.TrailHead + TrailCapacity - 1) % TrailCapacity
	p.Trail[p.TrailHead] = at
}

// TrailPoints returns the trail most-recent-first
func (p *ProjectileComponent) TrailPoints() [TrailCapacity]vmath.Vec2 {
	var out [TrailCapacity]vmath.Vec2
	for i := 0; i < TrailCapacity; i++ {
		out[i] = p.Trail[(p.TrailHead+i)%TrailCapacity]
	}
	return out
}

// Terminal reports an absorbing phase
func (p *ProjectileComponent) Terminal() bool {
	return p.Phase == ProjectilePhaseTerminalHit || p.Phase == ProjectilePhaseTerminalOOB
}
