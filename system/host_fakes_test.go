package system

import (
	"time"

	"github.com/lixenwraith/honly-helper/core"
	"github.com/lixenwraith/honly-helper/engine"
	"github.com/lixenwraith/honly-helper/event"
	"github.com/lixenwraith/honly-helper/host"
	"github.com/lixenwraith/honly-helper/physics"
	"github.com/lixenwraith/honly-helper/vmath"
)

// --- Collision ---

type fakeAgent struct {
	box   core.Rect
	died  int
	dirs  []vmath.Vec2
	alive bool
}

func newFakeAgent(r core.Rect) *fakeAgent { return &fakeAgent{box: r, alive: true} }

func (a *fakeAgent) Hitbox() core.Rect  { return a.box }
func (a *fakeAgent) Center() vmath.Vec2 { return a.box.Center() }
func (a *fakeAgent) Die(dir vmath.Vec2) {
	a.died++
	a.dirs = append(a.dirs, dir)
	a.alive = false
}

type fakeObstacle struct{ rect core.Rect }

func (o *fakeObstacle) Bounds() core.Rect { return o.rect }

// fakeBlock is triggerable and breakable
type fakeBlock struct {
	rect      core.Rect
	triggered int
	breaks    []breakCall
}

type breakCall struct {
	at, dir              vmath.Vec2
	playSound, playDebris bool
}

func (b *fakeBlock) Bounds() core.Rect { return b.rect }
func (b *fakeBlock) Trigger()          { b.triggered++ }
func (b *fakeBlock) Break(at, dir vmath.Vec2, playSound, playDebris bool) {
	b.breaks = append(b.breaks, breakCall{at, dir, playSound, playDebris})
}

type fakeScene struct {
	bounds    core.Rect
	agents    []*fakeAgent
	obstacles []host.Obstacle

	agentQueries    int
	obstacleQueries int
}

func (s *fakeScene) CollideAgent(from, to vmath.Vec2) (host.Agent, bool) {
	s.agentQueries++
	for _, a := range s.agents {
		if a.alive && physics.SegmentIntersectsRect(from, to, a.box) {
			return a, true
		}
	}
	return nil, false
}

func (s *fakeScene) CollideObstacle(from, to vmath.Vec2) (host.Obstacle, bool) {
	s.obstacleQueries++
	for _, o := range s.obstacles {
		if physics.SegmentIntersectsRect(from, to, o.Bounds()) {
			return o, true
		}
	}
	return nil, false
}

func (s *fakeScene) ObstacleAt(p vmath.Vec2) (host.Obstacle, bool) {
	for _, o := range s.obstacles {
		if o.Bounds().Contains(p) {
			return o, true
		}
	}
	return nil, false
}

func (s *fakeScene) InBounds(p vmath.Vec2) bool { return s.bounds.Contains(p) }

type fakeSource struct{ at vmath.Vec2 }

func (s fakeSource) Center() vmath.Vec2 { return s.at }

// --- Audio & effects ---

type playCall struct {
	event  string
	at     vmath.Vec2
	handle host.SoundHandle
}

type fakeAudio struct {
	next      host.SoundHandle
	plays     []playCall
	stops     []host.SoundHandle
	positions map[host.SoundHandle][]vmath.Vec2
}

func (a *fakeAudio) Play(name string, at vmath.Vec2) host.SoundHandle {
	a.next++
	a.plays = append(a.plays, playCall{name, at, a.next})
	return a.next
}

func (a *fakeAudio) Stop(h host.SoundHandle) { a.stops = append(a.stops, h) }

func (a *fakeAudio) SetPosition(h host.SoundHandle, at vmath.Vec2) {
	if a.positions == nil {
		a.positions = make(map[host.SoundHandle][]vmath.Vec2)
	}
	a.positions[h] = append(a.positions[h], at)
}

func (a *fakeAudio) played(name string) []playCall {
	var out []playCall
	for _, p := range a.plays {
		if p.event == name {
			out = append(out, p)
		}
	}
	return out
}

type burstCall struct {
	at            vmath.Vec2
	count         int
	spread, angle float64
}

type fakeEffects struct {
	bursts        []burstCall
	displacements []vmath.Vec2
}

func (e *fakeEffects) Burst(p vmath.Vec2, count int, spread, angle float64) {
	e.bursts = append(e.bursts, burstCall{p, count, spread, angle})
}

func (e *fakeEffects) Displacement(p vmath.Vec2) {
	e.displacements = append(e.displacements, p)
}

// --- Cutscene collaborators ---

type fakeTask struct{ done bool }

func (t *fakeTask) Done() bool { return t.done }

type fakeActor struct {
	pos       vmath.Vec2
	grounded  bool
	locked    bool
	locks     int
	unlocks   int
	facing    core.Facing
	resources int
}

func (a *fakeActor) Position() vmath.Vec2     { return a.pos }
func (a *fakeActor) Center() vmath.Vec2       { return a.pos.Add(vmath.V2(0, -5)) }
func (a *fakeActor) OnSafeGround() bool       { return a.grounded }
func (a *fakeActor) LockControl()             { a.locked = true; a.locks++ }
func (a *fakeActor) UnlockControl()           { a.locked = false; a.unlocks++ }
func (a *fakeActor) SetFacing(f core.Facing)  { a.facing = f }
func (a *fakeActor) Resources() int           { return a.resources }
func (a *fakeActor) SetResources(n int)       { a.resources = n }

type fakeButton struct {
	pressed  bool
	consumed int
}

func (b *fakeButton) Pressed() bool { return b.pressed }
func (b *fakeButton) ConsumePress() { b.pressed = false; b.consumed++ }

type zoomCall struct {
	focus vmath.Vec2
	zoom  float64
	d     time.Duration
}

type fakeCamera struct {
	pos       vmath.Vec2
	zooms     []zoomCall
	zoomBacks []time.Duration
	tasks     []*fakeTask
}

func (c *fakeCamera) Position() vmath.Vec2 { return c.pos }

func (c *fakeCamera) ZoomTo(focus vmath.Vec2, zoom float64, d time.Duration) host.Task {
	c.zooms = append(c.zooms, zoomCall{focus, zoom, d})
	t := &fakeTask{}
	c.tasks = append(c.tasks, t)
	return t
}

func (c *fakeCamera) ZoomBack(d time.Duration) host.Task {
	c.zoomBacks = append(c.zoomBacks, d)
	t := &fakeTask{}
	c.tasks = append(c.tasks, t)
	return t
}

func (c *fakeCamera) last() *fakeTask { return c.tasks[len(c.tasks)-1] }

type fakeDialogue struct {
	said   []string
	tasks  []*fakeTask
	closes int
}

func (d *fakeDialogue) Say(id string) host.Task {
	d.said = append(d.said, id)
	t := &fakeTask{}
	d.tasks = append(d.tasks, t)
	return t
}

func (d *fakeDialogue) Close() {
	d.closes++
	if len(d.tasks) > 0 {
		d.last().done = true
	}
}

func (d *fakeDialogue) last() *fakeTask { return d.tasks[len(d.tasks)-1] }

type fakeCompanion struct {
	pos       vmath.Vec2
	facing    core.Facing
	removed   int
	floatTo   []vmath.Vec2
	floatTask *fakeTask
	moves     []vmath.Vec2
}

func (c *fakeCompanion) Position() vmath.Vec2    { return c.pos }
func (c *fakeCompanion) SetFacing(f core.Facing) { c.facing = f }
func (c *fakeCompanion) Remove()                 { c.removed++ }
func (c *fakeCompanion) SetPosition(p vmath.Vec2) {
	c.pos = p
	c.moves = append(c.moves, p)
}

func (c *fakeCompanion) FloatTo(p vmath.Vec2) host.Task {
	c.floatTo = append(c.floatTo, p)
	c.floatTask = &fakeTask{}
	return c.floatTask
}

type fakeSpawner struct {
	spawned []*fakeCompanion
	at      []vmath.Vec2
}

func (s *fakeSpawner) SpawnCompanion(at vmath.Vec2) host.Companion {
	c := &fakeCompanion{pos: at}
	s.spawned = append(s.spawned, c)
	s.at = append(s.at, at)
	return c
}

func (s *fakeSpawner) last() *fakeCompanion { return s.spawned[len(s.spawned)-1] }

type fakeCounters map[string]int

func (c fakeCounters) Counter(key string) int       { return c[key] }
func (c fakeCounters) SetCounter(key string, v int) { c[key] = v }

type fakeCutscenes struct {
	started int
	ended   int
	onSkip  func()
	active  bool
}

func (c *fakeCutscenes) StartCutscene(onSkip func()) {
	c.started++
	c.onSkip = onSkip
	c.active = true
}

func (c *fakeCutscenes) EndCutscene() {
	c.ended++
	c.onSkip = nil
	c.active = false
}

// skip mirrors a level skip: close the cutscene, then run the callback
func (c *fakeCutscenes) skip() {
	cb := c.onSkip
	c.onSkip = nil
	c.active = false
	if cb != nil {
		cb()
	}
}

// --- World helpers ---

// eventLog collects dispatched events of the given types
type eventLog struct {
	events []event.GameEvent
}

func (l *eventLog) subscribe(w *engine.World, types ...event.EventType) {
	for _, t := range types {
		w.Subscribe(t, func(ev event.GameEvent) { l.events = append(l.events, ev) })
	}
}

func (l *eventLog) ofType(t event.EventType) []event.GameEvent {
	var out []event.GameEvent
	for _, ev := range l.events {
		if ev.Type == t {
			out = append(out, ev)
		}
	}
	return out
}
