package fsm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/honly-helper/event"
)

const (
	stRoot StateID = StateRoot + iota
	stIdle
	stBusy
	stBusyA
	stBusyB
	stDone
)

const evGo event.EventType = 100
const evAbort event.EventType = 101

type recorder struct {
	log   []string
	ready bool
}

func rec(name string) ActionFunc[*recorder] {
	return func(r *recorder, _ any) { r.log = append(r.log, name) }
}

func buildMachine(t *testing.T) *Machine[*recorder] {
	t.Helper()
	m := NewMachine[*recorder]()
	m.InitialStateID = stIdle

	m.AddState(stRoot, "Root", StateNone).Enter(rec("+root"), nil)
	m.AddState(stIdle, "Idle", stRoot).Enter(rec("+idle"), nil).Exit(rec("-idle"), nil)
	m.AddState(stBusy, "Busy", stRoot).Enter(rec("+busy"), nil).Exit(rec("-busy"), nil)
	m.AddState(stBusyA, "BusyA", stBusy).Enter(rec("+a"), nil).Exit(rec("-a"), nil).Tick(rec("~a"), nil)
	m.AddState(stBusyB, "BusyB", stBusy).Enter(rec("+b"), nil).Exit(rec("-b"), nil)
	m.AddState(stDone, "Done", stRoot).Enter(rec("+done"), nil)

	m.AddTransition(stIdle, Transition[*recorder]{TargetID: stBusyA, Event: evGo})
	m.AddTransition(stBusyA, Transition[*recorder]{TargetID: stBusyB, Guard: func(r *recorder) bool { return r.ready }})
	m.AddTransition(stBusy, Transition[*recorder]{TargetID: stDone, Event: evAbort})

	require.NoError(t, m.CompilePaths())
	return m
}

func TestMachine_InitEntersRootToLeaf(t *testing.T) {
	m := buildMachine(t)
	r := &recorder{}
	require.NoError(t, m.Init(r))

	assert.Equal(t, []string{"+root", "+idle"}, r.log)
	assert.Equal(t, stIdle, m.ActiveState())
	assert.Equal(t, "Idle", m.ActiveStateName())
	assert.True(t, m.InState(stRoot))
}

func TestMachine_EventTransitionWalksThroughLCA(t *testing.T) {
	m := buildMachine(t)
	r := &recorder{}
	require.NoError(t, m.Init(r))
	r.log = nil

	assert.True(t, m.HandleEvent(r, evGo))
	assert.Equal(t, []string{"-idle", "+busy", "+a"}, r.log)
	assert.True(t, m.InState(stBusy))

	assert.False(t, m.HandleEvent(r, evGo), "no handler in BusyA or its parents")
}

func TestMachine_GuardedTickTransition(t *testing.T) {
	m := buildMachine(t)
	r := &recorder{}
	require.NoError(t, m.Init(r))
	m.HandleEvent(r, evGo)
	r.log = nil

	m.Update(r, 0)
	assert.Equal(t, stBusyA, m.ActiveState())
	assert.Equal(t, []string{"~a"}, r.log)

	r.ready = true
	r.log = nil
	m.Update(r, 0)
	assert.Equal(t, stBusyB, m.ActiveState())
	assert.Equal(t, []string{"~a", "-a", "+b"}, r.log, "siblings share the parent, which is not re-entered")
}

func TestMachine_EventBubblesToParent(t *testing.T) {
	m := buildMachine(t)
	r := &recorder{}
	require.NoError(t, m.Init(r))
	m.HandleEvent(r, evGo)
	r.log = nil

	assert.True(t, m.HandleEvent(r, evAbort))
	assert.Equal(t, stDone, m.ActiveState())
	assert.Equal(t, []string{"-a", "-busy", "+done"}, r.log)
}

func TestMachine_ReentrantTransitionPanics(t *testing.T) {
	m := NewMachine[*recorder]()
	m.InitialStateID = stIdle
	m.AddState(stRoot, "Root", StateNone)
	m.AddState(stIdle, "Idle", stRoot)
	m.AddState(stBusy, "Busy", stRoot).Enter(func(r *recorder, _ any) {
		m.HandleEvent(r, evAbort)
	}, nil)
	m.AddState(stDone, "Done", stRoot)
	m.AddTransition(stIdle, Transition[*recorder]{TargetID: stBusy, Event: evGo})
	m.AddTransition(stBusy, Transition[*recorder]{TargetID: stDone, Event: evAbort})
	require.NoError(t, m.CompilePaths())
	require.NoError(t, m.Init(&recorder{}))

	assert.Panics(t, func() { m.HandleEvent(&recorder{}, evGo) })
}

func TestMachine_CompilePathsErrors(t *testing.T) {
	t.Run("missing parent", func(t *testing.T) {
		m := NewMachine[*recorder]()
		m.AddState(stIdle, "Idle", stRoot)
		assert.Error(t, m.CompilePaths())
	})
	t.Run("missing target", func(t *testing.T) {
		m := NewMachine[*recorder]()
		m.AddState(stRoot, "Root", StateNone)
		m.AddTransition(stRoot, Transition[*recorder]{TargetID: stDone})
		assert.Error(t, m.CompilePaths())
	})
	t.Run("cycle", func(t *testing.T) {
		m := NewMachine[*recorder]()
		m.AddState(stBusyA, "A", stBusyB)
		m.AddState(stBusyB, "B", stBusyA)
		assert.Error(t, m.CompilePaths())
	})
	t.Run("uncompiled init", func(t *testing.T) {
		m := NewMachine[*recorder]()
		m.InitialStateID = stRoot
		m.AddState(stRoot, "Root", StateNone)
		assert.Error(t, m.Init(&recorder{}))
	})
}

func TestMachine_ResetReentersInitial(t *testing.T) {
	m := buildMachine(t)
	r := &recorder{}
	require.NoError(t, m.Init(r))
	m.HandleEvent(r, evGo)
	r.log = nil

	require.NoError(t, m.Reset(r))
	assert.Equal(t, []string{"-a", "-busy", "+root", "+idle"}, r.log)
	assert.Equal(t, stIdle, m.ActiveState())
}

func TestMachine_TimeInStateResetsOnTransition(t *testing.T) {
	m := buildMachine(t)
	r := &recorder{}
	require.NoError(t, m.Init(r))
	m.HandleEvent(r, evGo)
	assert.Zero(t, m.TimeInState())

	m.Update(r, 10*time.Millisecond)
	m.Update(r, 10*time.Millisecond)
	assert.Equal(t, 20*time.Millisecond, m.TimeInState())

	r.ready = true
	m.Update(r, 10*time.Millisecond)
	require.Equal(t, stBusyB, m.ActiveState())
	assert.Zero(t, m.TimeInState())
}
