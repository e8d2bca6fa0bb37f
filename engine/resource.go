package engine

import (
	"io"
	"log/slog"
	"time"

	"github.com/lixenwraith/honly-helper/host"
)

// Resource holds singleton world resources, accessed via World.Resources
type Resource struct {
	Time *TimeResource
	Host *HostResource
	Log  *slog.Logger
}

// TimeResource wraps time data for systems
// It is updated by World.Tick at the start of a tick
type TimeResource struct {
	// DeltaTime is the duration since the last update
	DeltaTime time.Duration

	// Elapsed is the simulated time since world start
	Elapsed time.Duration

	// FrameNumber is the current tick count
	FrameNumber int64
}

// Update modifies TimeResource fields in-place
func (tr *TimeResource) Update(dt time.Duration) {
	tr.DeltaTime = dt
	tr.Elapsed += dt
	tr.FrameNumber++
}

// HostResource bundles the level capability surface
// Fields may be nil when a system that needs them is not registered
type HostResource struct {
	Scene     host.CollisionScene
	Audio     host.Audio
	Effects   host.Effects
	Camera    host.Camera
	Dialogue  host.Dialogue
	Spawner   host.CompanionSpawner
	Counters  host.Counters
	Cutscenes host.Cutscenes
	Talk      host.Button // Activation input for cutscene triggers
	Actor     host.Actor
	Player    host.Agent // Default target for turrets
}

// DiscardLogger returns a logger that drops all records
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
