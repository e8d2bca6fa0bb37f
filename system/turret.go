package system

import (
	"github.com/lixenwraith/honly-helper/component"
	"github.com/lixenwraith/honly-helper/engine"
	"github.com/lixenwraith/honly-helper/event"
	"github.com/lixenwraith/honly-helper/parameter"
)

// TurretSystem fires bullets from stationary launchers on a cooldown
// Shots are queued as EventProjectileSpawnRequest for the ProjectileSystem
type TurretSystem struct {
	world   *engine.World
	turrets []*component.TurretComponent
	enabled bool
}

func NewTurretSystem(world *engine.World) *TurretSystem {
	s := &TurretSystem{world: world}
	s.Init()
	return s
}

func (s *TurretSystem) Init() {
	for _, t := range s.turrets {
		t.Cooldown = t.Interval
	}
	s.enabled = true
}

func (s *TurretSystem) Name() string { return "turret" }

func (s *TurretSystem) Priority() int { return parameter.PriorityTurret }

func (s *TurretSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventMetaSystemCommandRequest,
		event.EventGameReset,
	}
}

func (s *TurretSystem) HandleEvent(ev event.GameEvent) {
	switch ev.Type {
	case event.EventGameReset:
		s.Init()
	case event.EventMetaSystemCommandRequest:
		if payload, ok := ev.Payload.(*event.MetaSystemCommandPayload); ok {
			if payload.SystemName == s.Name() {
				s.enabled = payload.Enabled
			}
		}
	}
}

// AddTurret registers a launcher; its first shot waits one full interval
func (s *TurretSystem) AddTurret(t *component.TurretComponent) {
	if t.Speed <= 0 {
		t.Speed = parameter.TurretDefaultSpeed
	}
	t.Cooldown = t.Interval
	s.turrets = append(s.turrets, t)
}

// Turrets returns the registered launchers
func (s *TurretSystem) Turrets() []*component.TurretComponent {
	return s.turrets
}

func (s *TurretSystem) Update() {
	if !s.enabled {
		return
	}

	dt := s.world.Resources.Time.DeltaTime
	target := s.world.Resources.Host.Player

	for _, t := range s.turrets {
		if t.Interval <= 0 {
			continue
		}
		t.Cooldown -= dt
		if t.Cooldown > 0 {
			continue
		}
		t.Cooldown += t.Interval

		angle := t.Angle
		if t.Aim && target != nil {
			angle = target.Center().Sub(t.Position).Angle()
		}

		s.world.PushEvent(event.EventProjectileSpawnRequest, &event.ProjectileSpawnRequestPayload{
			Source: t,
			Target: target,
			Angle:  angle,
			Speed:  t.Speed,
		})
	}
}
