package parameter

import "time"

// Reference level host
const (
	// PlayerHitboxWidth and PlayerHitboxHeight size the actor's collision box, anchored at its feet
	PlayerHitboxWidth  = 8.0
	PlayerHitboxHeight = 11.0

	// PlayerMoveSpeed is the horizontal walk speed in pixels per second
	PlayerMoveSpeed = 90.0

	// PlayerJumpAirTime is how long a jump keeps the actor off safe ground
	PlayerJumpAirTime = 400 * time.Millisecond

	// PlayerMaxDashes is the actor's resource count outside of cutscenes
	PlayerMaxDashes = 1

	// TalkPressBuffer is how long an unconsumed talk press stays latched
	TalkPressBuffer = 80 * time.Millisecond
)

// Obstacles
const (
	// FallingBlockGravity accelerates a triggered falling block, pixels per second squared
	FallingBlockGravity = 450.0

	// FallingBlockMaxSpeed caps falling block descent
	FallingBlockMaxSpeed = 160.0

	// DashBlockDebrisCount is the particle count of a shattered dash block
	DashBlockDebrisCount = 8

	// IndexPadding inflates degenerate query boxes so zero-extent sweeps stay valid
	IndexPadding = 0.01
)

// Particles
const (
	// ParticleLifetime is how long a burst particle lives
	ParticleLifetime = 600 * time.Millisecond

	// ParticleSpeed is the initial burst particle speed in pixels per second
	ParticleSpeed = 40.0

	// DisplacementRingCount is the particle count of a displacement shockwave
	DisplacementRingCount = 12

	// DisplacementRingSpeed is the ring expansion speed in pixels per second
	DisplacementRingSpeed = 60.0
)
