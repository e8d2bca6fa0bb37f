package level

import (
	"github.com/lixenwraith/honly-helper/engine"
	"github.com/lixenwraith/honly-helper/event"
	"github.com/lixenwraith/honly-helper/parameter"
)

// HostSystem ticks the level after the gameplay systems have run
type HostSystem struct {
	world *engine.World
	level *Level
}

func NewHostSystem(world *engine.World, level *Level) *HostSystem {
	return &HostSystem{world: world, level: level}
}

func (s *HostSystem) Init() {}

func (s *HostSystem) Name() string { return "level" }

func (s *HostSystem) Priority() int { return parameter.PriorityHost }

func (s *HostSystem) EventTypes() []event.EventType {
	return []event.EventType{event.EventGameReset}
}

func (s *HostSystem) HandleEvent(ev event.GameEvent) {
	if ev.Type == event.EventGameReset {
		s.level.Reset()
	}
}

func (s *HostSystem) Update() {
	s.level.Update(s.world.Resources.Time.DeltaTime)
}
