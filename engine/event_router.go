package engine

import "github.com/lixenwraith/honly-helper/event"

// EventRouter dispatches events to registered systems
//
// Architecture:
//   - Single-threaded dispatch (no concurrency issues with World mutation)
//   - Multiple systems can register for the same event type
//   - Systems are invoked in registration order
//   - All events consumed and dispatched before systems Update
type EventRouter struct {
	handlers map[event.EventType][]System
	queue    *event.EventQueue
}

// NewEventRouter creates a router attached to the given queue
func NewEventRouter(queue *event.EventQueue) *EventRouter {
	return &EventRouter{
		handlers: make(map[event.EventType][]System),
		queue:    queue,
	}
}

// Register adds a system for its declared event types
func (r *EventRouter) Register(s System) {
	for _, t := range s.EventTypes() {
		r.handlers[t] = append(r.handlers[t], s)
	}
}

// Subscribe registers a plain callback, used by the sandbox HUD and tests
func (r *EventRouter) Subscribe(t event.EventType, fn func(event.GameEvent)) {
	r.handlers[t] = append(r.handlers[t], funcHandler{types: []event.EventType{t}, fn: fn})
}

// DispatchAll consumes pending events and routes them in FIFO order
// Events pushed by handlers during dispatch are delivered in the same call
// Returns the number of events dispatched
func (r *EventRouter) DispatchAll(maxRounds int) int {
	total := 0
	for round := 0; round < maxRounds; round++ {
		events := r.queue.Consume()
		if len(events) == 0 {
			break
		}
		for _, ev := range events {
			for _, h := range r.handlers[ev.Type] {
				h.HandleEvent(ev)
			}
		}
		total += len(events)
	}
	return total
}

// funcHandler adapts a callback to the System contract for routing only
type funcHandler struct {
	types []event.EventType
	fn    func(event.GameEvent)
}

func (f funcHandler) Name() string                   { return "subscriber" }
func (f funcHandler) Priority() int                  { return 0 }
func (f funcHandler) EventTypes() []event.EventType  { return f.types }
func (f funcHandler) HandleEvent(ev event.GameEvent) { f.fn(ev) }
func (f funcHandler) Init()                          {}
func (f funcHandler) Update()                        {}
