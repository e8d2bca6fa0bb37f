// Package host declares the capability surface the gameplay systems consume from the
// surrounding level: collision queries, audio, particles, save counters, camera,
// dialogue, companions and the controlled actor.
//
// Systems depend only on these interfaces. Package level provides a reference
// implementation used by the sandbox and integration tests.
package host

import (
	"time"

	"github.com/lixenwraith/honly-helper/core"
	"github.com/lixenwraith/honly-helper/vmath"
)

// Task is a host-driven operation a sequencer can suspend on
// Done is polled once per tick
type Task interface {
	Done() bool
}

// --- Collision ---

// Agent is a collidable actor in the agent category
type Agent interface {
	Hitbox() core.Rect
	Center() vmath.Vec2
	// Die defeats the agent, dir is the unit knockback direction
	Die(dir vmath.Vec2)
}

// Obstacle is a static collidable volume
type Obstacle interface {
	Bounds() core.Rect
}

// Triggerable obstacles activate when struck
type Triggerable interface {
	Trigger()
}

// Breakable obstacles shatter when struck
type Breakable interface {
	Break(at, dir vmath.Vec2, playSound, playDebris bool)
}

// CollisionScene answers swept queries for a moving point
type CollisionScene interface {
	// CollideAgent returns the first agent whose volume touches segment from→to
	CollideAgent(from, to vmath.Vec2) (Agent, bool)
	// CollideObstacle returns the first obstacle whose volume touches segment from→to
	CollideObstacle(from, to vmath.Vec2) (Obstacle, bool)
	// ObstacleAt returns an obstacle containing p
	ObstacleAt(p vmath.Vec2) (Obstacle, bool)
	// InBounds reports level containment
	InBounds(p vmath.Vec2) bool
}

// Source is a projectile launcher
type Source interface {
	Center() vmath.Vec2
}

// --- Audio & effects ---

// SoundHandle identifies a playing sound, 0 is none
type SoundHandle uint64

// Audio plays positional sound events
type Audio interface {
	Play(event string, at vmath.Vec2) SoundHandle
	Stop(h SoundHandle)
	SetPosition(h SoundHandle, at vmath.Vec2)
}

// Effects emits transient visuals
type Effects interface {
	// Burst emits count particles at p travelling along angle (radians)
	Burst(p vmath.Vec2, count int, spread, angle float64)
	// Displacement emits a shockwave ring at p
	Displacement(p vmath.Vec2)
}

// --- Cutscene collaborators ---

// Actor is the player-controlled character a cutscene takes over
type Actor interface {
	Position() vmath.Vec2
	Center() vmath.Vec2
	OnSafeGround() bool
	// LockControl removes normal input handling and forces a camera-follow recompute
	LockControl()
	UnlockControl()
	SetFacing(f core.Facing)
	// Resources is the borrowable resource count (dashes)
	Resources() int
	SetResources(n int)
}

// Button is an input binding with press latching
type Button interface {
	Pressed() bool
	ConsumePress()
}

// Camera zooms toward a screen-space focus point
type Camera interface {
	Position() vmath.Vec2
	ZoomTo(focus vmath.Vec2, zoom float64, d time.Duration) Task
	ZoomBack(d time.Duration) Task
}

// Dialogue displays text by id and completes when playback ends
type Dialogue interface {
	Say(id string) Task
	// Close dismisses the open line, completing its task
	Close()
}

// Companion is a transient visual character spawned by a cutscene
type Companion interface {
	Position() vmath.Vec2
	SetPosition(p vmath.Vec2)
	SetFacing(f core.Facing)
	FloatTo(p vmath.Vec2) Task
	Remove()
}

// CompanionSpawner creates companions in the level
type CompanionSpawner interface {
	SpawnCompanion(at vmath.Vec2) Companion
}

// Counters is the per-save persisted integer store
type Counters interface {
	Counter(key string) int
	SetCounter(key string, v int)
}

// Cutscenes registers the active scripted sequence with the level
// The level calls onSkip when the player forces termination
type Cutscenes interface {
	StartCutscene(onSkip func())
	EndCutscene()
}
