package engine

import (
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/lixenwraith/honly-helper/event"
	"github.com/lixenwraith/honly-helper/parameter"
)

// dispatchRounds bounds cascaded event delivery within one tick
const dispatchRounds = 4

// World owns the systems, the event queue and shared resources
// All gameplay runs inside Tick on the caller's goroutine
type World struct {
	mu sync.RWMutex

	Resources Resource

	eventQueue *event.EventQueue
	router     *EventRouter
	systems    []System
}

// NewWorld creates a world bound to the given host surface
// A nil logger discards output
func NewWorld(h *HostResource, logger *slog.Logger) *World {
	if h == nil {
		h = &HostResource{}
	}
	if logger == nil {
		logger = DiscardLogger()
	}
	q := event.NewEventQueue(parameter.EventQueueSize)
	return &World{
		Resources: Resource{
			Time: &TimeResource{},
			Host: h,
			Log:  logger,
		},
		eventQueue: q,
		router:     NewEventRouter(q),
	}
}

// AddSystem registers a system for events and updates, keeping priority order
func (w *World) AddSystem(s System) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.systems = append(w.systems, s)
	sort.SliceStable(w.systems, func(i, j int) bool {
		return w.systems[i].Priority() < w.systems[j].Priority()
	})
	w.router.Register(s)
}

// Systems returns a copy of all registered systems
func (w *World) Systems() []System {
	w.mu.RLock()
	defer w.mu.RUnlock()
	result := make([]System, len(w.systems))
	copy(result, w.systems)
	return result
}

// Subscribe registers a callback for an event type
func (w *World) Subscribe(t event.EventType, fn func(event.GameEvent)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.router.Subscribe(t, fn)
}

// PushEvent queues an event for dispatch at the next tick boundary
// Safe to call from any goroutine
func (w *World) PushEvent(t event.EventType, payload any) {
	ok := w.eventQueue.Push(event.GameEvent{
		Type:    t,
		Payload: payload,
		Frame:   w.Resources.Time.FrameNumber,
	})
	if !ok {
		w.Resources.Log.Debug("event dropped, queue full", "type", t)
	}
}

// DispatchEvents delivers pending events without advancing time
func (w *World) DispatchEvents() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.router.DispatchAll(dispatchRounds)
}

// Tick advances the world by dt: events first, then every system in priority order
// Events pushed during Update are delivered at the start of the next tick
func (w *World) Tick(dt time.Duration) {
	if dt > parameter.MaxFrameDelta {
		dt = parameter.MaxFrameDelta
	}
	w.Resources.Time.Update(dt)

	w.DispatchEvents()

	for _, s := range w.Systems() {
		s.Update()
	}
}

// Reset broadcasts a game reset and delivers it immediately
func (w *World) Reset() {
	w.PushEvent(event.EventGameReset, nil)
	w.DispatchEvents()
}
