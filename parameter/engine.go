package parameter

import "time"

// Game Loop & Engine Timing
const (
	// FrameUpdateInterval is the simulation tick interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// MaxFrameDelta caps a single tick's elapsed time after stalls
	MaxFrameDelta = 100 * time.Millisecond
)

// Event queue
const (
	// EventQueueSize is the number of droppable events held between dispatches
	EventQueueSize = 256
)
