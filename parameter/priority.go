package parameter

// System Execution Priorities (lower runs first)
const (
	PriorityTurret     = 10 // Spawn requests queued before projectiles advance
	PriorityProjectile = 20
	PriorityTattle     = 30 // After projectiles, a killed actor never starts a cutscene this tick
	PriorityHost       = 40 // Level tweens (camera, companion, textbox) settle last
)
