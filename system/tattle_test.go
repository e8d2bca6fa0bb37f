package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/lixenwraith/honly-helper/component"
	"github.com/lixenwraith/honly-helper/core"
	"github.com/lixenwraith/honly-helper/engine"
	"github.com/lixenwraith/honly-helper/engine/fsm"
	"github.com/lixenwraith/honly-helper/event"
	"github.com/lixenwraith/honly-helper/parameter"
	"github.com/lixenwraith/honly-helper/vmath"
)

const testFamily = "BaddyDialog_"

type tattleHarness struct {
	world     *engine.World
	sys       *TattleSystem
	trig      *TattleTrigger
	actor     *fakeActor
	talk      *fakeButton
	camera    *fakeCamera
	dialogue  *fakeDialogue
	spawner   *fakeSpawner
	counters  fakeCounters
	cutscenes *fakeCutscenes
	audio     *fakeAudio
	effects   *fakeEffects
	events    *eventLog
}

func newTattleHarness(t *testing.T, amount int, loops bool) *tattleHarness {
	t.Helper()
	h := &tattleHarness{
		actor:     &fakeActor{pos: vmath.V2(100, 100), grounded: true, resources: 0},
		talk:      &fakeButton{},
		camera:    &fakeCamera{},
		dialogue:  &fakeDialogue{},
		spawner:   &fakeSpawner{},
		counters:  fakeCounters{},
		cutscenes: &fakeCutscenes{},
		audio:     &fakeAudio{},
		effects:   &fakeEffects{},
		events:    &eventLog{},
	}
	h.world = engine.NewWorld(&engine.HostResource{
		Audio:     h.audio,
		Effects:   h.effects,
		Camera:    h.camera,
		Dialogue:  h.dialogue,
		Spawner:   h.spawner,
		Counters:  h.counters,
		Cutscenes: h.cutscenes,
		Talk:      h.talk,
		Actor:     h.actor,
	}, nil)
	h.sys = NewTattleSystem(h.world)
	h.world.AddSystem(h.sys)
	h.events.subscribe(h.world, event.EventTattleStarted, event.EventTattleEnded)

	trig, err := h.sys.AddTrigger(component.TattleConfig{
		DialogFamily: testFamily,
		DialogAmount: amount,
		Loops:        loops,
		Area:         core.Rect{X: 50, Y: 50, Width: 100, Height: 100},
	})
	require.NoError(t, err)
	h.trig = trig
	return h
}

// activate presses talk and runs one tick, starting a session
func (h *tattleHarness) activate(t *testing.T) {
	t.Helper()
	h.talk.pressed = true
	h.world.Tick(testDT)
	require.True(t, h.trig.Active())
	require.Equal(t, StateTattleAdvance, h.trig.State())
}

// completeTasks finishes every host task issued so far
func (h *tattleHarness) completeTasks() {
	for _, task := range h.camera.tasks {
		task.done = true
	}
	for _, task := range h.dialogue.tasks {
		task.done = true
	}
	for _, c := range h.spawner.spawned {
		if c.floatTask != nil {
			c.floatTask.done = true
		}
	}
}

// driveTo ticks with every task completed until the sequencer reaches state
func (h *tattleHarness) driveTo(t *testing.T, state fsm.StateID) {
	t.Helper()
	for i := 0; i < 50; i++ {
		if h.trig.State() == state {
			return
		}
		h.completeTasks()
		h.world.Tick(testDT)
	}
	t.Fatalf("sequencer stuck in %s, wanted state %d", h.trig.StateName(), state)
}

func (h *tattleHarness) ended() []*event.TattleLifecyclePayload {
	h.world.DispatchEvents()
	var out []*event.TattleLifecyclePayload
	for _, ev := range h.events.ofType(event.EventTattleEnded) {
		out = append(out, ev.Payload.(*event.TattleLifecyclePayload))
	}
	return out
}

func TestNextDialogIndex_Sequence(t *testing.T) {
	run := func(loops bool) []int {
		counter := 0
		var shown []int
		for i := 0; i < 5; i++ {
			var s int
			s, counter = NextDialogIndex(counter, 3, loops)
			shown = append(shown, s)
		}
		return shown
	}

	assert.Equal(t, []int{0, 1, 2, 2, 2}, run(false))
	assert.Equal(t, []int{0, 1, 2, 0, 1}, run(true))
}

func TestNextDialogIndex_Property(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		amount := rapid.IntRange(1, 10).Draw(t, "amount")
		counter := rapid.IntRange(-5, 15).Draw(t, "counter")
		loops := rapid.Bool().Draw(t, "loops")

		shown, next := NextDialogIndex(counter, amount, loops)

		last := amount - 1
		assert.GreaterOrEqual(t, shown, 0)
		assert.LessOrEqual(t, shown, last)
		assert.GreaterOrEqual(t, next, 0)
		assert.LessOrEqual(t, next, last)

		switch {
		case shown < last:
			assert.Equal(t, shown+1, next)
		case loops:
			assert.Equal(t, 0, next)
		default:
			assert.Equal(t, last, next)
		}
		if counter >= 0 && counter <= last {
			assert.Equal(t, counter, shown)
		}
	})
}

func TestTattleFocus_Unclamped(t *testing.T) {
	f := TattleFocus(vmath.V2(100, 100), vmath.Zero, 2)
	assert.InDelta(t, 112, f.X, 1e-9)
	assert.InDelta(t, 68, f.Y, 1e-9)
}

func TestTattleFocus_ClampsToViewport(t *testing.T) {
	topLeft := TattleFocus(vmath.Zero, vmath.Zero, 2)
	assert.InDelta(t, 80, topLeft.X, 1e-9)
	assert.InDelta(t, 45, topLeft.Y, 1e-9)

	bottomRight := TattleFocus(vmath.V2(320, 180), vmath.Zero, 2)
	assert.InDelta(t, 240, bottomRight.X, 1e-9)
	assert.InDelta(t, 135, bottomRight.Y, 1e-9)
}

func TestTattleFocus_AlwaysKeepsZoomedViewInside(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		actor := vmath.V2(
			rapid.Float64Range(-500, 1000).Draw(t, "ax"),
			rapid.Float64Range(-500, 1000).Draw(t, "ay"),
		)
		camera := vmath.V2(
			rapid.Float64Range(0, 400).Draw(t, "cx"),
			rapid.Float64Range(0, 400).Draw(t, "cy"),
		)
		zoom := rapid.Float64Range(1, 4).Draw(t, "zoom")

		f := TattleFocus(actor, camera, zoom)

		halfW := parameter.ViewportWidth / zoom / 2
		halfH := parameter.ViewportHeight / zoom / 2
		assert.GreaterOrEqual(t, f.X, halfW-1e-9)
		assert.LessOrEqual(t, f.X, parameter.ViewportWidth-halfW+1e-9)
		assert.GreaterOrEqual(t, f.Y, halfH-1e-9)
		assert.LessOrEqual(t, f.Y, parameter.ViewportHeight-halfH+1e-9)
	})
}

func TestTattleTrigger_RejectsZeroDialogAmount(t *testing.T) {
	w := engine.NewWorld(nil, nil)
	_, err := NewTattleTrigger(w, 1, component.TattleConfig{DialogFamily: testFamily})
	assert.Error(t, err)

	sys := NewTattleSystem(w)
	_, err = sys.AddTrigger(component.TattleConfig{DialogAmount: 0})
	assert.Error(t, err)
	assert.Empty(t, sys.Triggers())
}

func TestTattleTrigger_ReadsPersistedCounter(t *testing.T) {
	counters := fakeCounters{testFamily: 2}
	w := engine.NewWorld(&engine.HostResource{Counters: counters}, nil)
	trig, err := NewTattleTrigger(w, 1, component.TattleConfig{DialogFamily: testFamily, DialogAmount: 3})
	require.NoError(t, err)
	assert.Equal(t, 2, trig.DialogCounter())
	assert.Equal(t, StateTattleIdle, trig.State())
}

func TestTattle_NaturalRun(t *testing.T) {
	h := newTattleHarness(t, 3, false)
	h.actor.resources = 2

	h.activate(t)
	assert.True(t, h.actor.locked)
	assert.Equal(t, core.FacingRight, h.actor.facing)
	assert.Equal(t, 1, h.cutscenes.started)
	assert.Equal(t, 1, h.talk.consumed)
	assert.Equal(t, testFamily+"0", h.trig.Session.DialogID)
	assert.Equal(t, 1, h.counters[testFamily], "counter persisted before the dialogue plays")

	h.world.Tick(testDT)
	assert.Equal(t, StateTattleAwaitGround, h.trig.State())

	h.world.Tick(testDT)
	require.Equal(t, StateTattleZoomIn, h.trig.State())
	require.Len(t, h.camera.zooms, 1)
	zoom := h.camera.zooms[0]
	assert.Equal(t, TattleFocus(h.actor.pos, h.camera.pos, parameter.TattleZoom), zoom.focus)
	assert.Equal(t, parameter.TattleZoom, zoom.zoom)
	assert.Equal(t, parameter.TattleZoomInDuration, zoom.d)

	// Suspended until the zoom finishes
	h.world.Tick(testDT)
	assert.Equal(t, StateTattleZoomIn, h.trig.State())
	h.camera.last().done = true
	h.world.Tick(testDT)
	require.Equal(t, StateTattleCompanionAppear, h.trig.State())

	spawn := vmath.V2(124, 88)
	require.Len(t, h.spawner.spawned, 1)
	companion := h.spawner.last()
	assert.Equal(t, spawn, h.spawner.at[0])
	assert.Equal(t, core.FacingLeft, companion.facing)
	assert.Equal(t, []vmath.Vec2{vmath.V2(123, 82)}, companion.floatTo)
	assert.Equal(t, parameter.CompanionResourceGrant, h.actor.resources)
	assert.Equal(t, []vmath.Vec2{vmath.V2(124, 72)}, h.effects.displacements)
	assert.Len(t, h.audio.played(parameter.SoundCompanionSplit), 1)

	companion.floatTask.done = true
	h.world.Tick(testDT)
	require.Equal(t, StateTattleDialogue, h.trig.State())
	assert.Equal(t, []string{testFamily + "0"}, h.dialogue.said)

	h.dialogue.last().done = true
	h.world.Tick(testDT)
	require.Equal(t, StateTattleRejoin, h.trig.State())
	assert.Len(t, h.audio.played(parameter.SoundCompanionJoin), 1)

	// 250ms merge at 100ms ticks: three eased moves, then the merge
	for i := 0; i < 3; i++ {
		h.world.Tick(testDT)
		assert.Equal(t, StateTattleRejoin, h.trig.State())
	}
	assert.Len(t, companion.moves, 3)
	assert.Zero(t, companion.removed)

	h.world.Tick(testDT)
	require.Equal(t, StateTattleZoomOut, h.trig.State())
	assert.Equal(t, 1, companion.removed)
	assert.Equal(t, 2, h.actor.resources, "borrowed resources returned")
	assert.Len(t, h.camera.zoomBacks, 1)

	h.camera.last().done = true
	h.world.Tick(testDT)
	require.Equal(t, StateTattleFinish, h.trig.State())
	assert.Equal(t, 1, h.cutscenes.ended)

	h.world.Tick(testDT)
	assert.Equal(t, StateTattleCleanup, h.trig.State())
	assert.False(t, h.trig.Active())
	assert.False(t, h.actor.locked)
	assert.Equal(t, 1, h.actor.unlocks)
	assert.Equal(t, 1, h.cutscenes.ended, "cutscene ended once")
	assert.Equal(t, 1, companion.removed)

	h.world.Tick(testDT)
	assert.Equal(t, StateTattleIdle, h.trig.State())

	ended := h.ended()
	require.Len(t, ended, 1)
	assert.False(t, ended[0].Forced)
	assert.Equal(t, testFamily+"0", ended[0].DialogID)
	assert.Equal(t, h.trig.ID, ended[0].TriggerID)
	assert.NotEmpty(t, ended[0].SessionID)
	assert.Len(t, h.events.ofType(event.EventTattleStarted), 1)
}

func TestTattle_ConsecutiveSessionsAdvanceDialog(t *testing.T) {
	h := newTattleHarness(t, 2, false)

	for i := 0; i < 3; i++ {
		h.activate(t)
		h.driveTo(t, StateTattleIdle)
	}

	assert.Equal(t, []string{testFamily + "0", testFamily + "1", testFamily + "1"}, h.dialogue.said)
	assert.Equal(t, 1, h.counters[testFamily])
}

func TestTattle_WaitsForGround(t *testing.T) {
	h := newTattleHarness(t, 1, false)
	h.actor.grounded = false

	h.activate(t)
	for i := 0; i < 10; i++ {
		h.world.Tick(testDT)
	}
	assert.Equal(t, StateTattleAwaitGround, h.trig.State())
	assert.Empty(t, h.camera.zooms)

	h.actor.grounded = true
	h.world.Tick(testDT)
	assert.Equal(t, StateTattleZoomIn, h.trig.State())
}

func TestTattle_CancelFromEveryStep(t *testing.T) {
	for _, step := range TattleSteps {
		h := newTattleHarness(t, 3, false)
		name := h.trig.machine.StateName(step)

		t.Run(name, func(t *testing.T) {
			h.actor.resources = 3
			h.activate(t)
			h.driveTo(t, step)

			spawned := len(h.spawner.spawned) > 0
			zoomed := len(h.camera.zooms) > 0
			talking := step == StateTattleDialogue

			require.True(t, h.trig.Cancel())

			assert.Equal(t, StateTattleCleanup, h.trig.State())
			assert.False(t, h.trig.Active())
			assert.Equal(t, component.TattleSession{}, h.trig.Session)
			assert.False(t, h.actor.locked)
			assert.Equal(t, 1, h.actor.unlocks)
			assert.Equal(t, 3, h.actor.resources)
			assert.Equal(t, 1, h.cutscenes.ended)
			if spawned {
				assert.Equal(t, 1, h.spawner.last().removed)
			}
			if zoomed {
				assert.Len(t, h.camera.zoomBacks, 1, "camera sent back exactly once")
			} else {
				assert.Empty(t, h.camera.zoomBacks)
			}
			if talking {
				assert.Equal(t, 1, h.dialogue.closes)
			} else {
				assert.Zero(t, h.dialogue.closes)
			}

			ended := h.ended()
			require.Len(t, ended, 1)
			assert.True(t, ended[0].Forced)

			assert.False(t, h.trig.Cancel(), "second cancel is a no-op")

			h.world.Tick(testDT)
			assert.Equal(t, StateTattleIdle, h.trig.State())
		})
	}
}

func TestTattle_CancelDuringRejoinSnapsCompanion(t *testing.T) {
	h := newTattleHarness(t, 1, false)
	h.activate(t)
	h.driveTo(t, StateTattleRejoin)
	h.world.Tick(testDT)

	companion := h.spawner.last()
	require.True(t, h.trig.Cancel())

	assert.Equal(t, h.actor.pos, companion.pos)
	assert.Equal(t, 1, companion.removed)
	assert.Len(t, h.audio.played(parameter.SoundCompanionJoin), 2)
}

func TestTattle_NoReactivationWhileBusy(t *testing.T) {
	h := newTattleHarness(t, 3, false)
	h.activate(t)
	h.driveTo(t, StateTattleDialogue)
	session := h.trig.Session.ID

	h.talk.pressed = true
	assert.False(t, h.trig.TryActivate(h.actor))
	assert.Equal(t, 1, h.talk.consumed)
	assert.Equal(t, session, h.trig.Session.ID)
	assert.Equal(t, 1, h.counters[testFamily])
	assert.Equal(t, 1, h.cutscenes.started)
}

func TestTattle_RequiresFreshPressInsideArea(t *testing.T) {
	h := newTattleHarness(t, 3, false)

	h.world.Tick(testDT)
	assert.False(t, h.trig.Active(), "no press")

	h.actor.pos = vmath.V2(400, 400)
	h.talk.pressed = true
	h.world.Tick(testDT)
	assert.False(t, h.trig.Active(), "outside the area")
	assert.Zero(t, h.talk.consumed)
}

func TestTattle_HostSkip(t *testing.T) {
	h := newTattleHarness(t, 3, false)
	h.activate(t)
	h.driveTo(t, StateTattleDialogue)

	h.cutscenes.skip()

	assert.False(t, h.trig.Active())
	assert.False(t, h.actor.locked)
	assert.Equal(t, 1, h.spawner.last().removed)
	assert.Zero(t, h.cutscenes.ended, "the level already closed its cutscene")
	assert.Empty(t, h.camera.zoomBacks, "the level already reset the zoom")
	assert.Zero(t, h.dialogue.closes)

	ended := h.ended()
	require.Len(t, ended, 1)
	assert.True(t, ended[0].Forced)
}

func TestTattle_CancelEvent(t *testing.T) {
	h := newTattleHarness(t, 3, false)
	h.activate(t)

	h.world.PushEvent(event.EventTattleCancel, &event.TattleCancelPayload{TriggerID: h.trig.ID + 1})
	h.world.DispatchEvents()
	assert.True(t, h.trig.Active(), "other trigger targeted")

	h.world.PushEvent(event.EventTattleCancel, &event.TattleCancelPayload{TriggerID: h.trig.ID})
	h.world.DispatchEvents()
	assert.False(t, h.trig.Active())
}

func TestTattle_GameResetCancels(t *testing.T) {
	h := newTattleHarness(t, 3, false)
	h.activate(t)
	h.driveTo(t, StateTattleCompanionAppear)

	h.world.Reset()

	assert.False(t, h.trig.Active())
	assert.False(t, h.actor.locked)
	assert.Equal(t, 1, h.spawner.last().removed)
}

func TestTattle_IndependentTriggers(t *testing.T) {
	h := newTattleHarness(t, 3, false)
	other, err := h.sys.AddTrigger(component.TattleConfig{
		DialogFamily: "Other_",
		DialogAmount: 1,
		Area:         core.Rect{X: 500, Y: 500, Width: 10, Height: 10},
	})
	require.NoError(t, err)
	assert.NotEqual(t, h.trig.ID, other.ID)
	assert.Same(t, other, h.sys.Trigger(other.ID))

	h.activate(t)
	assert.False(t, other.Active())
	assert.False(t, other.Cancel())
	assert.True(t, h.trig.Active())
}
