package parameter

import "time"

// Cutscene camera framing
const (
	// TattleZoom is the camera zoom factor while the companion talks
	TattleZoom = 2.0

	// ViewportWidth and ViewportHeight are the unzoomed camera extents in pixels
	ViewportWidth  = 320.0
	ViewportHeight = 180.0

	// TattleZoomInDuration and TattleZoomOutDuration are camera tween lengths
	TattleZoomInDuration  = 750 * time.Millisecond
	TattleZoomOutDuration = 750 * time.Millisecond
)

// Camera focus offsets, relative to the actor
var (
	// TattleFocusOffsetX/Y is the point blended halfway with the actor position
	TattleFocusOffsetX = 24.0
	TattleFocusOffsetY = -24.0

	// TattleFocusLiftY raises the final focus point
	TattleFocusLiftY = -20.0
)

// Companion choreography
const (
	// CompanionSpawnOffsetX/Y places the companion beside the actor
	CompanionSpawnOffsetX = 24.0
	CompanionSpawnOffsetY = -12.0

	// CompanionFloatOffsetX/Y is the settle point relative to the spawn point
	CompanionFloatOffsetX = -1.0
	CompanionFloatOffsetY = -6.0

	// CompanionBurstLiftY lifts the spawn displacement burst above the spawn point
	CompanionBurstLiftY = -16.0

	// CompanionFloatDuration is the time the companion takes to settle
	CompanionFloatDuration = 400 * time.Millisecond

	// CompanionRejoinDuration is the eased merge-back length
	CompanionRejoinDuration = 250 * time.Millisecond

	// CompanionResourceGrant is the resource count the actor holds while the companion is out
	CompanionResourceGrant = 1
)

// Dialogue
const (
	// TextboxReadTime auto-closes a dialogue page when no confirm press arrives
	TextboxReadTime = 4 * time.Second

	// TextboxCharsPerSecond is the reveal rate used to lengthen read time for long pages
	TextboxCharsPerSecond = 30.0
)
