package system

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/lixenwraith/honly-helper/component"
	"github.com/lixenwraith/honly-helper/core"
	"github.com/lixenwraith/honly-helper/engine"
	"github.com/lixenwraith/honly-helper/engine/fsm"
	"github.com/lixenwraith/honly-helper/event"
	"github.com/lixenwraith/honly-helper/host"
	"github.com/lixenwraith/honly-helper/parameter"
	"github.com/lixenwraith/honly-helper/vmath"
)

// Sequencer states
// Every Active child inherits the cancel transition declared on Active
const (
	StateTattleRoot fsm.StateID = fsm.StateRoot + iota
	StateTattleIdle
	StateTattleActive
	StateTattleAdvance
	StateTattleAwaitGround
	StateTattleZoomIn
	StateTattleCompanionAppear
	StateTattleDialogue
	StateTattleRejoin
	StateTattleZoomOut
	StateTattleFinish
	StateTattleCleanup
)

// TattleSteps lists the sequence steps in execution order
var TattleSteps = []fsm.StateID{
	StateTattleAdvance,
	StateTattleAwaitGround,
	StateTattleZoomIn,
	StateTattleCompanionAppear,
	StateTattleDialogue,
	StateTattleRejoin,
	StateTattleZoomOut,
	StateTattleFinish,
}

// TattleTrigger is one dialogue trigger volume and its cutscene sequencer
// At most one session runs per trigger; distinct triggers run independently
type TattleTrigger struct {
	ID      core.Entity
	Config  component.TattleConfig
	Session component.TattleSession

	world   *engine.World
	machine *fsm.Machine[*TattleTrigger]
	dt      time.Duration

	counter int // Persisted dialogue counter as last read
}

// NewTattleTrigger builds a trigger and its sequencer
func NewTattleTrigger(world *engine.World, id core.Entity, cfg component.TattleConfig) (*TattleTrigger, error) {
	if cfg.DialogAmount < 1 {
		return nil, errors.Errorf("tattle trigger %d: dialog amount %d < 1", id, cfg.DialogAmount)
	}

	m, err := newTattleMachine()
	if err != nil {
		return nil, errors.Wrapf(err, "tattle trigger %d", id)
	}

	t := &TattleTrigger{
		ID:      id,
		Config:  cfg,
		world:   world,
		machine: m,
	}
	if counters := world.Resources.Host.Counters; counters != nil {
		t.counter = counters.Counter(cfg.DialogFamily)
	}
	if err := m.Init(t); err != nil {
		return nil, errors.Wrapf(err, "tattle trigger %d", id)
	}
	return t, nil
}

// newTattleMachine compiles the sequencer graph
func newTattleMachine() (*fsm.Machine[*TattleTrigger], error) {
	m := fsm.NewMachine[*TattleTrigger]()
	m.InitialStateID = StateTattleIdle

	m.AddState(StateTattleRoot, "Tattle", fsm.StateNone)
	m.AddState(StateTattleIdle, "Idle", StateTattleRoot)
	m.AddState(StateTattleActive, "Active", StateTattleRoot)

	m.AddState(StateTattleAdvance, "Advance", StateTattleActive).Enter(advanceDialog, nil)
	m.AddState(StateTattleAwaitGround, "AwaitGround", StateTattleActive)
	m.AddState(StateTattleZoomIn, "ZoomIn", StateTattleActive).Enter(zoomIn, nil)
	m.AddState(StateTattleCompanionAppear, "CompanionAppear", StateTattleActive).Enter(companionAppear, nil)
	m.AddState(StateTattleDialogue, "Dialogue", StateTattleActive).Enter(sayDialog, nil)
	m.AddState(StateTattleRejoin, "Rejoin", StateTattleActive).Enter(rejoinStart, nil).Tick(rejoinStep, nil)
	m.AddState(StateTattleZoomOut, "ZoomOut", StateTattleActive).Enter(zoomOut, nil)
	m.AddState(StateTattleFinish, "Finish", StateTattleActive).Enter(finish, nil)
	m.AddState(StateTattleCleanup, "Cleanup", StateTattleRoot).Enter(cleanup, nil)

	activate := fsm.Transition[*TattleTrigger]{TargetID: StateTattleAdvance, Event: event.EventTattleActivate}
	m.AddTransition(StateTattleIdle, activate)
	m.AddTransition(StateTattleCleanup, activate)
	m.AddTransition(StateTattleCleanup, fsm.Transition[*TattleTrigger]{TargetID: StateTattleIdle})

	m.AddTransition(StateTattleActive, fsm.Transition[*TattleTrigger]{
		TargetID: StateTattleCleanup,
		Event:    event.EventTattleCancel,
	})

	m.AddTransition(StateTattleAdvance, fsm.Transition[*TattleTrigger]{TargetID: StateTattleAwaitGround})
	m.AddTransition(StateTattleAwaitGround, fsm.Transition[*TattleTrigger]{TargetID: StateTattleZoomIn, Guard: actorGrounded})
	m.AddTransition(StateTattleZoomIn, fsm.Transition[*TattleTrigger]{TargetID: StateTattleCompanionAppear, Guard: pendingDone})
	m.AddTransition(StateTattleCompanionAppear, fsm.Transition[*TattleTrigger]{TargetID: StateTattleDialogue, Guard: pendingDone})
	m.AddTransition(StateTattleDialogue, fsm.Transition[*TattleTrigger]{TargetID: StateTattleRejoin, Guard: pendingDone})
	m.AddTransition(StateTattleRejoin, fsm.Transition[*TattleTrigger]{TargetID: StateTattleZoomOut, Guard: companionGone})
	m.AddTransition(StateTattleZoomOut, fsm.Transition[*TattleTrigger]{TargetID: StateTattleFinish, Guard: pendingDone})
	m.AddTransition(StateTattleFinish, fsm.Transition[*TattleTrigger]{TargetID: StateTattleCleanup})

	if err := m.CompilePaths(); err != nil {
		return nil, err
	}
	return m, nil
}

// TryActivate starts a session for actor
// No-op while a session is active or when the talk input was not freshly pressed
func (t *TattleTrigger) TryActivate(actor host.Actor) bool {
	if t.Session.Busy || actor == nil {
		return false
	}
	res := t.world.Resources.Host
	if res.Talk == nil || !res.Talk.Pressed() {
		return false
	}
	res.Talk.ConsumePress()

	t.Session = component.TattleSession{
		ID:             uuid.NewString(),
		Busy:           true,
		Actor:          actor,
		ResourceBackup: actor.Resources(),
	}

	actor.LockControl()
	actor.SetFacing(core.FacingRight)
	if res.Cutscenes != nil {
		res.Cutscenes.StartCutscene(t.onSkip)
	}

	t.machine.HandleEvent(t, event.EventTattleActivate)

	t.world.Resources.Log.Debug("tattle session started",
		"trigger", t.ID, "session", t.Session.ID, "dialog", t.Session.DialogID)
	t.world.PushEvent(event.EventTattleStarted, &event.TattleLifecyclePayload{
		TriggerID: t.ID,
		SessionID: t.Session.ID,
		DialogID:  t.Session.DialogID,
	})
	return true
}

// Cancel forces termination of the active session from any step
// Control is restored and a present companion merged back before return
func (t *TattleTrigger) Cancel() bool {
	if !t.Session.Busy {
		return false
	}
	t.Session.Forced = true
	t.world.Resources.Log.Debug("tattle session cancelled",
		"trigger", t.ID, "session", t.Session.ID, "step", t.machine.ActiveStateName(), "in_step", t.machine.TimeInState())
	return t.machine.HandleEvent(t, event.EventTattleCancel)
}

// onSkip is registered with the level; the level has already closed its cutscene
func (t *TattleTrigger) onSkip() {
	if !t.Session.Busy {
		return
	}
	// The level already reset its zoom and closed the textbox
	t.Session.CutsceneClosed = true
	t.Session.Zoomed = false
	t.Session.DialogOpen = false
	t.Cancel()
}

// Update advances the sequencer by dt
func (t *TattleTrigger) Update(dt time.Duration) {
	t.dt = dt
	t.machine.Update(t, dt)
}

// Active reports a running session
func (t *TattleTrigger) Active() bool { return t.Session.Busy }

// State returns the sequencer's current state
func (t *TattleTrigger) State() fsm.StateID { return t.machine.ActiveState() }

// StateName returns the sequencer's current state name
func (t *TattleTrigger) StateName() string { return t.machine.ActiveStateName() }

// DialogCounter returns the persisted counter as last read or written
func (t *TattleTrigger) DialogCounter() int { return t.counter }

// --- Guards ---

func actorGrounded(t *TattleTrigger) bool {
	return t.Session.Actor != nil && t.Session.Actor.OnSafeGround()
}

func pendingDone(t *TattleTrigger) bool {
	return t.Session.Pending == nil || t.Session.Pending.Done()
}

func companionGone(t *TattleTrigger) bool {
	return !t.Session.CompanionPresent
}

// --- Step actions ---

// advanceDialog captures this invocation's index, then persists the next one
func advanceDialog(t *TattleTrigger, _ any) {
	counters := t.world.Resources.Host.Counters
	if counters != nil {
		t.counter = counters.Counter(t.Config.DialogFamily)
	}

	shown, next := NextDialogIndex(t.counter, t.Config.DialogAmount, t.Config.Loops)
	t.counter = next
	if counters != nil {
		counters.SetCounter(t.Config.DialogFamily, next)
	}

	t.Session.DialogIndex = shown
	t.Session.DialogID = fmt.Sprintf("%s%d", t.Config.DialogFamily, shown)
}

// NextDialogIndex returns the index shown for a stored counter and the counter to persist
// The last index wraps to 0 when looping, otherwise repeats
// Stored values outside [0, amount-1] are clamped first
func NextDialogIndex(counter, amount int, loops bool) (shown, next int) {
	last := amount - 1
	if last < 0 {
		return 0, 0
	}
	shown = counter
	if shown < 0 {
		shown = 0
	}
	if shown > last {
		shown = last
	}

	if shown == last {
		if loops {
			return shown, 0
		}
		return shown, last
	}
	return shown, shown + 1
}

func zoomIn(t *TattleTrigger, _ any) {
	t.Session.Pending = nil
	camera := t.world.Resources.Host.Camera
	if camera == nil {
		return
	}
	focus := TattleFocus(t.Session.Actor.Position(), camera.Position(), parameter.TattleZoom)
	t.Session.Pending = camera.ZoomTo(focus, parameter.TattleZoom, parameter.TattleZoomInDuration)
	t.Session.Zoomed = true
}

// TattleFocus returns the screen-space zoom focus for an actor
// The focus sits between the actor and a point up and to its right, lifted,
// then shifted per axis so the zoomed viewport stays inside the unzoomed one
func TattleFocus(actor, camera vmath.Vec2, zoom float64) vmath.Vec2 {
	offset := vmath.V2(parameter.TattleFocusOffsetX, parameter.TattleFocusOffsetY)
	focus := vmath.Lerp(actor.Add(offset), actor, 0.5).
		Sub(camera).
		Add(vmath.V2(0, parameter.TattleFocusLiftY))

	halfW := 0.5 * (parameter.ViewportWidth / zoom)
	halfH := 0.5 * (parameter.ViewportHeight / zoom)

	top := focus.Y - halfH
	bottom := focus.Y + halfH - parameter.ViewportHeight
	left := focus.X - halfW
	right := focus.X + halfW - parameter.ViewportWidth

	if top < 0 {
		focus.Y -= top
	} else if bottom > 0 {
		focus.Y -= bottom
	}
	if left < 0 {
		focus.X -= left
	} else if right > 0 {
		focus.X -= right
	}
	return focus
}

// companionAppear lends the actor a resource and floats the companion in beside it
func companionAppear(t *TattleTrigger, _ any) {
	t.Session.Pending = nil
	res := t.world.Resources.Host
	actor := t.Session.Actor

	actor.SetResources(parameter.CompanionResourceGrant)

	if res.Spawner == nil {
		return
	}

	spawn := actor.Position().Add(vmath.V2(parameter.CompanionSpawnOffsetX, parameter.CompanionSpawnOffsetY))
	if res.Effects != nil {
		res.Effects.Displacement(spawn.Add(vmath.V2(0, parameter.CompanionBurstLiftY)))
	}

	c := res.Spawner.SpawnCompanion(spawn)
	t.Session.Companion = c
	t.Session.CompanionPresent = true

	if res.Audio != nil {
		res.Audio.Play(parameter.SoundCompanionSplit, spawn)
	}
	c.SetFacing(core.FacingLeft)
	t.Session.Pending = c.FloatTo(spawn.Add(vmath.V2(parameter.CompanionFloatOffsetX, parameter.CompanionFloatOffsetY)))
}

func sayDialog(t *TattleTrigger, _ any) {
	t.Session.Pending = nil
	if d := t.world.Resources.Host.Dialogue; d != nil {
		t.Session.Pending = d.Say(t.Session.DialogID)
		t.Session.DialogOpen = true
	}
}

func rejoinStart(t *TattleTrigger, _ any) {
	t.Session.Pending = nil
	t.Session.DialogOpen = false
	t.Session.RejoinProgress = 0
	c := t.Session.Companion
	if !t.Session.CompanionPresent || c == nil {
		return
	}
	if audio := t.world.Resources.Host.Audio; audio != nil {
		audio.Play(parameter.SoundCompanionJoin, c.Position())
	}
	c.SetFacing(core.FacingLeft)
	t.Session.RejoinFrom = c.Position()
}

// rejoinStep eases the companion into the actor, merging once progress reaches 1
func rejoinStep(t *TattleTrigger, _ any) {
	if !t.Session.CompanionPresent {
		return
	}
	if t.Session.RejoinProgress >= 1 {
		t.mergeCompanion(false)
		return
	}

	eased := vmath.CubeIn(t.Session.RejoinProgress)
	t.Session.Companion.SetPosition(vmath.Lerp(t.Session.RejoinFrom, t.Session.Actor.Position(), eased))
	t.Session.RejoinProgress += t.dt.Seconds() / parameter.CompanionRejoinDuration.Seconds()
}

// mergeCompanion returns the borrowed resources and removes the companion
// snap moves the companion onto the actor first, used when a merge is cut short
func (t *TattleTrigger) mergeCompanion(snap bool) {
	c := t.Session.Companion
	actor := t.Session.Actor
	res := t.world.Resources.Host

	if c != nil {
		if snap {
			if res.Audio != nil {
				res.Audio.Play(parameter.SoundCompanionJoin, c.Position())
			}
			c.SetPosition(actor.Position())
		}
		if res.Effects != nil {
			res.Effects.Displacement(actor.Center())
		}
		c.Remove()
	}
	actor.SetResources(t.Session.ResourceBackup)

	t.Session.Companion = nil
	t.Session.CompanionPresent = false
}

func zoomOut(t *TattleTrigger, _ any) {
	t.Session.Pending = nil
	t.Session.Zoomed = false
	if camera := t.world.Resources.Host.Camera; camera != nil {
		t.Session.Pending = camera.ZoomBack(parameter.TattleZoomOutDuration)
	}
}

func finish(t *TattleTrigger, _ any) {
	t.Session.Pending = nil
	if cs := t.world.Resources.Host.Cutscenes; cs != nil && !t.Session.CutsceneClosed {
		cs.EndCutscene()
	}
	t.Session.CutsceneClosed = true
}

// cleanup is the single teardown for natural and forced endings
func cleanup(t *TattleTrigger, _ any) {
	s := t.Session
	if !s.Busy {
		return
	}

	res := t.world.Resources.Host
	if s.DialogOpen && res.Dialogue != nil {
		res.Dialogue.Close()
	}
	if s.Zoomed && res.Camera != nil {
		res.Camera.ZoomBack(parameter.TattleZoomOutDuration)
	}
	if s.Actor != nil {
		s.Actor.UnlockControl()
		if s.CompanionPresent {
			t.mergeCompanion(true)
		}
	}
	if res.Cutscenes != nil && !s.CutsceneClosed {
		res.Cutscenes.EndCutscene()
	}

	t.world.Resources.Log.Debug("tattle session ended",
		"trigger", t.ID, "session", s.ID, "forced", s.Forced)
	t.world.PushEvent(event.EventTattleEnded, &event.TattleLifecyclePayload{
		TriggerID: t.ID,
		SessionID: s.ID,
		DialogID:  s.DialogID,
		Forced:    s.Forced,
	})

	t.Session = component.TattleSession{}
}
