package audio

import (
	"sync/atomic"

	"github.com/lixenwraith/honly-helper/host"
	"github.com/lixenwraith/honly-helper/service"
)

// AudioService wraps SoundManager as a Service
// Handles graceful degradation when no audio backend is available
type AudioService struct {
	manager  *SoundManager
	volume   float64
	disabled atomic.Bool
}

// NewService creates a new audio service
func NewService() *AudioService {
	return &AudioService{manager: NewSoundManager(), volume: 1}
}

// Name implements Service
func (s *AudioService) Name() string {
	return "audio"
}

// Dependencies implements Service
func (s *AudioService) Dependencies() []string {
	return nil
}

// Init implements Service
// args[0]: bool - enabled (default true)
// args[1]: float64 - master volume in [0, 1]
func (s *AudioService) Init(args ...any) error {
	if len(args) > 0 {
		if enabled, ok := args[0].(bool); ok && !enabled {
			s.disabled.Store(true)
		}
	}
	if len(args) > 1 {
		if vol, ok := args[1].(float64); ok {
			s.volume = vol
		}
	}
	s.manager.SetVolume(s.volume)
	return nil
}

// Start implements Service
// Opens the speaker; sets disabled on failure (no error returned)
func (s *AudioService) Start() error {
	if s.disabled.Load() {
		return nil
	}
	if err := s.manager.Initialize(); err != nil {
		s.disabled.Store(true)
	}
	return nil
}

// Stop implements Service
func (s *AudioService) Stop() error {
	s.manager.Cleanup()
	return nil
}

// Contribute implements service.ResourceContributor
// Publishes host.Audio if the speaker opened
func (s *AudioService) Contribute(publish service.ResourcePublisher) {
	if a := s.Audio(); a != nil {
		publish(a)
	}
}

// IsDisabled returns true if audio is unavailable
func (s *AudioService) IsDisabled() bool {
	return s.disabled.Load()
}

// Manager returns the underlying SoundManager (nil if disabled)
func (s *AudioService) Manager() *SoundManager {
	if s.disabled.Load() {
		return nil
	}
	return s.manager
}

// Audio returns the positional player for game systems, nil if disabled
func (s *AudioService) Audio() host.Audio {
	if s.disabled.Load() {
		return nil
	}
	return s.manager
}
