package event

// EventType represents the type of game event
type EventType int

const (
	// === Engine Event ===

	// EventGameReset clears all live gameplay state
	// Trigger: Sandbox restart, level reload
	// Consumer: All systems | Payload: nil
	EventGameReset EventType = iota + 1

	// EventMetaSystemCommandRequest toggles a system on or off
	// Trigger: Debug console
	// Consumer: Named system | Payload: *MetaSystemCommandPayload
	EventMetaSystemCommandRequest

	// === Projectile Event ===

	// EventProjectileSpawnRequest launches a bullet from a source
	// Trigger: TurretSystem, host spawners
	// Consumer: ProjectileSystem | Payload: *ProjectileSpawnRequestPayload
	EventProjectileSpawnRequest

	// EventProjectileTerminal reports a bullet entering a terminal phase
	// Trigger: ProjectileSystem
	// Consumer: Sandbox HUD, telemetry | Payload: *ProjectileTerminalPayload
	EventProjectileTerminal

	// === Cutscene Event ===

	// EventTattleActivate starts a cutscene session on a trigger's sequencer
	// Trigger: TattleTrigger.TryActivate
	// Consumer: Sequencer FSM (not routed through the queue) | Payload: nil
	EventTattleActivate

	// EventTattleCancel forces termination of an active cutscene session
	// Trigger: Level cutscene skip, game reset
	// Consumer: TattleSystem | Payload: *TattleCancelPayload
	EventTattleCancel

	// EventTattleStarted reports session activation
	// Trigger: TattleSystem
	// Consumer: Telemetry | Payload: *TattleLifecyclePayload
	EventTattleStarted

	// EventTattleEnded reports session teardown, natural or forced
	// Trigger: TattleSystem
	// Consumer: Telemetry | Payload: *TattleLifecyclePayload
	EventTattleEnded
)

// GameEvent represents a single game event with metadata
type GameEvent struct {
	Type    EventType
	Payload any
	Frame   int64 // Tick number when the event was pushed
}

// Critical events survive queue overflow
func (t EventType) Critical() bool {
	return t == EventGameReset || t == EventTattleCancel
}

// String returns the event name for logs
func (t EventType) String() string {
	switch t {
	case EventGameReset:
		return "game_reset"
	case EventMetaSystemCommandRequest:
		return "meta_system_command"
	case EventProjectileSpawnRequest:
		return "projectile_spawn_request"
	case EventProjectileTerminal:
		return "projectile_terminal"
	case EventTattleActivate:
		return "tattle_activate"
	case EventTattleCancel:
		return "tattle_cancel"
	case EventTattleStarted:
		return "tattle_started"
	case EventTattleEnded:
		return "tattle_ended"
	default:
		return "unknown"
	}
}
