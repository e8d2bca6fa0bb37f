package engine

import "github.com/lixenwraith/honly-helper/event"

// System is a per-tick gameplay processor
// Update runs once per tick in Priority order after pending events are dispatched
type System interface {
	Name() string
	Priority() int // Lower values run first

	// EventTypes returns the event types routed to HandleEvent
	EventTypes() []event.EventType
	HandleEvent(ev event.GameEvent)

	// Init resets the system to its freshly constructed state
	Init()
	Update()
}
