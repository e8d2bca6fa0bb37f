package event

import (
	"github.com/lixenwraith/honly-helper/core"
	"github.com/lixenwraith/honly-helper/host"
	"github.com/lixenwraith/honly-helper/vmath"
)

// MetaSystemCommandPayload enables or disables a system by name
type MetaSystemCommandPayload struct {
	SystemName string
	Enabled    bool
}

// ProjectileSpawnRequestPayload describes a bullet launch
type ProjectileSpawnRequestPayload struct {
	Source host.Source // Launcher, also the return point on impact
	Target host.Agent  // Tracked agent, may be nil
	Angle  float64     // Launch angle in radians from +X
	Speed  float64     // Pixels per second
}

// TerminalKind distinguishes how a projectile ended
type TerminalKind uint8

const (
	TerminalHitAgent TerminalKind = iota + 1
	TerminalHitObstacle
	TerminalOutOfBounds
)

// ProjectileTerminalPayload reports the terminal transition of a projectile
type ProjectileTerminalPayload struct {
	Kind   TerminalKind
	Impact vmath.Vec2 // Impact point, or last position for out-of-bounds
}

// TattleCancelPayload targets one trigger's session
type TattleCancelPayload struct {
	TriggerID core.Entity
}

// TattleLifecyclePayload describes a session boundary
type TattleLifecyclePayload struct {
	TriggerID core.Entity
	SessionID string
	DialogID  string
	Forced    bool // Ended through forced termination
}
