package audio

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/honly-helper/host"
	"github.com/lixenwraith/honly-helper/parameter"
	"github.com/lixenwraith/honly-helper/vmath"
)

const (
	sampleRate              = beep.SampleRate(parameter.AudioSampleRate)
	speakerBufferDurationMs = parameter.AudioBufferMs
)

// voice is one playing sound
type voice struct {
	ctrl    *beep.Ctrl
	pan     *effects.Pan
	looping bool
	done    atomic.Bool // Set from the speaker goroutine when a one-shot drains
}

// SoundManager plays positional sound events through a beep mixer
// Before Initialize, and after Cleanup, every operation is a silent no-op
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	voices      map[host.SoundHandle]*voice
	next        host.SoundHandle
	listener    vmath.Vec2
	volume      float64
	initialized bool
	speakerOn   bool // Mixer is attached to the speaker device
}

// NewSoundManager creates a new sound manager
func NewSoundManager() *SoundManager {
	return &SoundManager{
		mixer:  &beep.Mixer{},
		voices: make(map[host.SoundHandle]*voice),
		volume: 1,
	}
}

// Initialize opens the speaker and starts the mixer
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*speakerBufferDurationMs))
	if err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.speakerOn = true
	sm.initialized = true
	return nil
}

// attachDetached starts the manager without a device; the mixer is pulled by the caller
func (sm *SoundManager) attachDetached() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.initialized = true
}

// Cleanup stops all sounds and detaches from the speaker
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	sm.lock()
	for _, v := range sm.voices {
		v.ctrl.Paused = true
	}
	sm.mixer.Clear()
	sm.unlock()

	if sm.speakerOn {
		speaker.Clear()
	}
	sm.voices = make(map[host.SoundHandle]*voice)
	sm.initialized = false
	sm.speakerOn = false
}

// SetVolume sets the master gain applied to new sounds, 0 mutes
func (sm *SoundManager) SetVolume(v float64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.volume = vmath.Clamp(v, 0, 1)
}

// SetListener moves the point sounds are panned around
func (sm *SoundManager) SetListener(p vmath.Vec2) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.listener = p
}

// Play starts the sound for event at a level position
// Returns 0 when silent or when the event is unknown
func (sm *SoundManager) Play(event string, at vmath.Vec2) host.SoundHandle {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return 0
	}
	sm.prune()

	streamer, looping := GetSoundEffect(event, sampleRate)
	if streamer == nil {
		return 0
	}

	sm.next++
	h := sm.next
	v := &voice{looping: looping}
	v.pan = &effects.Pan{Streamer: newVolume(streamer, sm.volume), Pan: sm.panFor(at)}
	v.ctrl = &beep.Ctrl{Streamer: v.pan}

	var out beep.Streamer = v.ctrl
	if !looping {
		out = beep.Seq(v.ctrl, beep.Callback(func() { v.done.Store(true) }))
	}

	sm.voices[h] = v
	sm.lock()
	sm.mixer.Add(out)
	sm.unlock()
	return h
}

// Stop silences a sound; unknown or finished handles are ignored
func (sm *SoundManager) Stop(h host.SoundHandle) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	v, ok := sm.voices[h]
	if !ok {
		return
	}
	delete(sm.voices, h)

	sm.lock()
	v.ctrl.Paused = true
	v.ctrl.Streamer = nil // Drains the voice so the mixer drops it
	sm.unlock()
}

// SetPosition re-pans a playing sound
func (sm *SoundManager) SetPosition(h host.SoundHandle, at vmath.Vec2) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	v, ok := sm.voices[h]
	if !ok {
		return
	}
	pan := sm.panFor(at)
	sm.lock()
	v.pan.Pan = pan
	sm.unlock()
}

// Playing returns the number of tracked voices
func (sm *SoundManager) Playing() int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.prune()
	return len(sm.voices)
}

// panFor maps horizontal distance from the listener to [-1, 1]
func (sm *SoundManager) panFor(at vmath.Vec2) float64 {
	return vmath.Clamp((at.X-sm.listener.X)/(parameter.AudioPanRange/2), -1, 1)
}

// prune forgets drained one-shots
func (sm *SoundManager) prune() {
	for h, v := range sm.voices {
		if !v.looping && v.done.Load() {
			delete(sm.voices, h)
		}
	}
}

func (sm *SoundManager) lock() {
	if sm.speakerOn {
		speaker.Lock()
	}
}

func (sm *SoundManager) unlock() {
	if sm.speakerOn {
		speaker.Unlock()
	}
}
