package event

import "sync"

// EventQueue buffers events between dispatch rounds
// Push is safe from any goroutine (tcell poller, tick loop); Consume belongs to the tick loop
//
// Overflow: the oldest droppable event makes room for the new one
// Reset and cancel events are never dropped, the queue grows past capacity to hold them
type EventQueue struct {
	mu       sync.Mutex
	events   []GameEvent
	capacity int
	dropped  uint64
}

// NewEventQueue creates a queue holding capacity droppable events, at least 1
func NewEventQueue(capacity int) *EventQueue {
	capacity = max(capacity, 1)
	return &EventQueue{
		events:   make([]GameEvent, 0, capacity),
		capacity: capacity,
	}
}

// Push appends ev, evicting the oldest droppable event when full
// Returns false when ev itself was dropped
func (q *EventQueue) Push(ev GameEvent) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.events) < q.capacity {
		q.events = append(q.events, ev)
		return true
	}

	for i := range q.events {
		if !q.events[i].Type.Critical() {
			q.events = append(q.events[:i], q.events[i+1:]...)
			q.events = append(q.events, ev)
			q.dropped++
			return true
		}
	}

	// Full of critical events
	if ev.Type.Critical() {
		q.events = append(q.events, ev)
		return true
	}
	q.dropped++
	return false
}

// Consume returns all pending events in FIFO order and empties the queue
func (q *EventQueue) Consume() []GameEvent {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.events) == 0 {
		return nil
	}
	out := q.events
	q.events = make([]GameEvent, 0, q.capacity)
	return out
}

// Len returns the pending event count
func (q *EventQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}

// Dropped returns how many events overflow has discarded
func (q *EventQueue) Dropped() uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.dropped
}
