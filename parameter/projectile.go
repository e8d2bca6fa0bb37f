package parameter

// Projectile motion and collision
const (
	// TracerLength is the number of buffered trail positions
	TracerLength = 3

	// ImpactBisectIterations is the fixed refinement depth for impact localization
	// 6 halvings keep the error under a pixel for sweeps up to 64px per tick
	ImpactBisectIterations = 6

	// ProjectileArenaCapacity is the number of concurrently live projectile slots
	ProjectileArenaCapacity = 128

	// ProjectileHitboxSize is the bullet's square hitbox edge in pixels
	ProjectileHitboxSize = 2.0
)

// Impact effects
const (
	// ImpactBurstCount is the number of dust particles emitted on obstacle impact
	ImpactBurstCount = 4

	// ImpactBurstSpread is the positional jitter of impact particles in pixels
	ImpactBurstSpread = 1.0
)

// Turret defaults
const (
	// TurretDefaultSpeed is the bullet speed in pixels per second when config omits it
	TurretDefaultSpeed = 180.0

	// TurretDefaultIntervalSeconds is the default cooldown between shots
	TurretDefaultIntervalSeconds = 1.5
)
