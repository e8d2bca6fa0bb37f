package level

import (
	"sync"
	"time"
)

// Session is the per-save persisted state
type Session struct {
	mu       sync.RWMutex
	counters map[string]int

	Dashes int
}

func NewSession() *Session {
	return &Session{counters: make(map[string]int)}
}

// Counter returns the stored value, 0 when unset
func (s *Session) Counter(key string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.counters[key]
}

func (s *Session) SetCounter(key string, v int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counters[key] = v
}

// Counters returns a copy of all stored counters
func (s *Session) Counters() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]int, len(s.counters))
	for k, v := range s.counters {
		out[k] = v
	}
	return out
}

// Button latches a press until consumed or until the buffer window lapses
type Button struct {
	pressed bool
	age     time.Duration
	buffer  time.Duration
}

func NewButton(buffer time.Duration) *Button {
	return &Button{buffer: buffer}
}

// Press latches a new press
func (b *Button) Press() {
	b.pressed = true
	b.age = 0
}

func (b *Button) Pressed() bool { return b.pressed }

func (b *Button) ConsumePress() { b.pressed = false }

// Update expires a stale press
func (b *Button) Update(dt time.Duration) {
	if !b.pressed {
		return
	}
	b.age += dt
	if b.age > b.buffer {
		b.pressed = false
	}
}
