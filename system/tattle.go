package system

import (
	"github.com/lixenwraith/honly-helper/component"
	"github.com/lixenwraith/honly-helper/core"
	"github.com/lixenwraith/honly-helper/engine"
	"github.com/lixenwraith/honly-helper/event"
	"github.com/lixenwraith/honly-helper/parameter"
)

// TattleSystem owns the dialogue triggers and drives their cutscene sequencers
// An actor standing inside a trigger with a fresh talk press starts a session
// EventTattleCancel forces termination (TriggerID 0 targets every trigger)
type TattleSystem struct {
	world    *engine.World
	triggers []*TattleTrigger
	nextID   core.Entity
	enabled  bool
}

func NewTattleSystem(world *engine.World) *TattleSystem {
	s := &TattleSystem{world: world}
	s.Init()
	return s
}

func (s *TattleSystem) Init() {
	s.cancelAll()
	s.enabled = true
}

func (s *TattleSystem) Name() string { return "tattle" }

func (s *TattleSystem) Priority() int { return parameter.PriorityTattle }

func (s *TattleSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventTattleCancel,
		event.EventMetaSystemCommandRequest,
		event.EventGameReset,
	}
}

func (s *TattleSystem) HandleEvent(ev event.GameEvent) {
	switch ev.Type {
	case event.EventGameReset:
		s.Init()

	case event.EventMetaSystemCommandRequest:
		if payload, ok := ev.Payload.(*event.MetaSystemCommandPayload); ok {
			if payload.SystemName == s.Name() {
				s.enabled = payload.Enabled
			}
		}

	case event.EventTattleCancel:
		var target core.Entity
		if payload, ok := ev.Payload.(*event.TattleCancelPayload); ok {
			target = payload.TriggerID
		}
		if target == 0 {
			s.cancelAll()
			return
		}
		if t := s.Trigger(target); t != nil {
			t.Cancel()
		}
	}
}

// AddTrigger registers a dialogue trigger and reads its persisted counter
func (s *TattleSystem) AddTrigger(cfg component.TattleConfig) (*TattleTrigger, error) {
	s.nextID++
	t, err := NewTattleTrigger(s.world, s.nextID, cfg)
	if err != nil {
		s.nextID--
		return nil, err
	}
	s.triggers = append(s.triggers, t)
	return t, nil
}

// Trigger returns the trigger with the given id, nil if unknown
func (s *TattleSystem) Trigger(id core.Entity) *TattleTrigger {
	for _, t := range s.triggers {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// Triggers returns all registered triggers
func (s *TattleSystem) Triggers() []*TattleTrigger {
	return s.triggers
}

func (s *TattleSystem) Update() {
	if !s.enabled {
		return
	}

	dt := s.world.Resources.Time.DeltaTime
	actor := s.world.Resources.Host.Actor

	for _, t := range s.triggers {
		// Sessions started this tick begin stepping on the next
		t.Update(dt)

		if actor != nil && !t.Active() && t.Config.Area.Contains(actor.Center()) {
			t.TryActivate(actor)
		}
	}
}

func (s *TattleSystem) cancelAll() {
	for _, t := range s.triggers {
		t.Cancel()
	}
}
