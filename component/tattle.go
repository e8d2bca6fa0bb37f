package component

import (
	"github.com/lixenwraith/honly-helper/core"
	"github.com/lixenwraith/honly-helper/host"
	"github.com/lixenwraith/honly-helper/vmath"
)

// TattleConfig is the authored data of a dialogue trigger
type TattleConfig struct {
	DialogFamily string    // Dialogue id prefix, e.g. "BaddyDialog_" shows "BaddyDialog_0", "BaddyDialog_1"...
	DialogAmount int       // Number of dialogues in the family
	Loops        bool      // Wrap to 0 after the last dialogue instead of repeating it
	Area         core.Rect // Trigger volume
}

// TattleSession holds the state of one activation (pure data)
// Zero value is an inactive session
type TattleSession struct {
	ID   string // Correlation id, assigned on activation
	Busy bool   // Guards re-entrant activation

	Actor host.Actor

	DialogIndex int    // Pre-advance index captured for this invocation
	DialogID    string // DialogFamily + DialogIndex

	CompanionPresent bool
	Companion        host.Companion
	ResourceBackup   int // Actor resources before the companion borrowed them

	Pending host.Task // Task the active step is suspended on

	Zoomed     bool // Camera zoomed in and not yet sent back
	DialogOpen bool // Dialogue line shown and not yet finished

	RejoinFrom     vmath.Vec2
	RejoinProgress float64

	Forced         bool // Ending through forced termination
	CutsceneClosed bool // Host cutscene already ended
}
