// Package level is a self-contained reference host for the gameplay systems:
// a rectangular room with solids, falling and dash blocks, one player, a camera,
// a textbox and particles. It backs the sandbox and the integration tests.
package level

import (
	"log/slog"
	"math"
	"time"

	"github.com/lixenwraith/honly-helper/core"
	"github.com/lixenwraith/honly-helper/engine"
	"github.com/lixenwraith/honly-helper/host"
	"github.com/lixenwraith/honly-helper/parameter"
	"github.com/lixenwraith/honly-helper/physics"
	"github.com/lixenwraith/honly-helper/vmath"
)

// Level owns the room and implements the host capability surface
type Level struct {
	Bounds core.Rect

	Player    *Player
	Session   *Session
	Camera    *Camera
	Textbox   *Textbox
	Particles *Particles
	Talk      *Button
	Audio     host.Audio // nil plays nothing

	index      *ObstacleIndex
	obstacles  []host.Obstacle
	falling    []*FallingBlock
	dash       []*DashBlock
	companions []*Companion
	tweens     tweenSet

	cutscene bool
	onSkip   func()

	log *slog.Logger
}

// Options configures a new level
type Options struct {
	Bounds  core.Rect
	Spawn   vmath.Vec2
	Dialog  map[string]string
	Session *Session // nil starts a fresh session
	Audio   host.Audio
	Seed    uint64
	Log     *slog.Logger
}

func New(opts Options) *Level {
	if opts.Session == nil {
		opts.Session = NewSession()
	}
	if opts.Log == nil {
		opts.Log = engine.DiscardLogger()
	}
	return &Level{
		Bounds:    opts.Bounds,
		Player:    NewPlayer(opts.Spawn, opts.Session),
		Session:   opts.Session,
		Camera:    NewCamera(opts.Bounds.Width, opts.Bounds.Height),
		Textbox:   NewTextbox(opts.Dialog),
		Particles: NewParticles(opts.Seed),
		Talk:      NewButton(parameter.TalkPressBuffer),
		Audio:     opts.Audio,
		index:     NewObstacleIndex(),
		log:       opts.Log,
	}
}

// --- Construction ---

func (l *Level) AddSolid(r core.Rect) *Solid {
	s := &Solid{Rect: r}
	l.addObstacle(s)
	return s
}

func (l *Level) AddFallingBlock(r core.Rect) *FallingBlock {
	b := &FallingBlock{Rect: r, origin: r, level: l}
	l.falling = append(l.falling, b)
	l.addObstacle(b)
	return b
}

func (l *Level) AddDashBlock(r core.Rect) *DashBlock {
	b := &DashBlock{Rect: r, level: l}
	l.dash = append(l.dash, b)
	l.addObstacle(b)
	return b
}

func (l *Level) addObstacle(o host.Obstacle) {
	l.obstacles = append(l.obstacles, o)
	l.index.Insert(o)
}

// Obstacles returns every obstacle ever added, including broken or fallen ones
func (l *Level) Obstacles() []host.Obstacle { return l.obstacles }

// Host returns the capability bundle for a world
func (l *Level) Host() *engine.HostResource {
	return &engine.HostResource{
		Scene:     l,
		Audio:     l.Audio,
		Effects:   l.Particles,
		Camera:    l.Camera,
		Dialogue:  l.Textbox,
		Spawner:   l,
		Counters:  l.Session,
		Cutscenes: l,
		Talk:      l.Talk,
		Actor:     l.Player,
		Player:    l.Player,
	}
}

// --- host.CollisionScene ---

// sweepRect grows r by half the bullet hitbox so a point sweep models the hitbox
func sweepRect(r core.Rect) core.Rect {
	const half = parameter.ProjectileHitboxSize / 2
	return core.Rect{X: r.X - half, Y: r.Y - half, Width: r.Width + 2*half, Height: r.Height + 2*half}
}

// CollideAgent tests the living player against the sweep
func (l *Level) CollideAgent(from, to vmath.Vec2) (host.Agent, bool) {
	p := l.Player
	if p == nil || p.Dead {
		return nil, false
	}
	if physics.SegmentIntersectsRect(from, to, sweepRect(p.Hitbox())) {
		return p, true
	}
	return nil, false
}

// CollideObstacle returns the obstacle the sweep enters first
func (l *Level) CollideObstacle(from, to vmath.Vec2) (host.Obstacle, bool) {
	candidates := l.index.Query(sweepRect(core.SegmentBounds(from, to)))

	var (
		best     host.Obstacle
		bestDist = math.Inf(1)
	)
	for _, o := range candidates {
		entry, ok := physics.SegmentEntry(from, to, sweepRect(o.Bounds()))
		if !ok {
			continue
		}
		if d := vmath.Dist(from, entry); d < bestDist {
			best, bestDist = o, d
		}
	}
	return best, best != nil
}

// ObstacleAt returns an obstacle whose swept volume contains p
func (l *Level) ObstacleAt(p vmath.Vec2) (host.Obstacle, bool) {
	for _, o := range l.index.Query(sweepRect(core.Rect{X: p.X, Y: p.Y})) {
		if sweepRect(o.Bounds()).Contains(p) {
			return o, true
		}
	}
	return nil, false
}

func (l *Level) InBounds(p vmath.Vec2) bool { return l.Bounds.Contains(p) }

// --- host.Cutscenes ---

// StartCutscene marks a scripted sequence active; onSkip runs if the player skips it
func (l *Level) StartCutscene(onSkip func()) {
	l.cutscene = true
	l.onSkip = onSkip
}

// EndCutscene clears the active sequence without invoking its skip callback
func (l *Level) EndCutscene() {
	l.cutscene = false
	l.onSkip = nil
}

// InCutscene reports an active sequence
func (l *Level) InCutscene() bool { return l.cutscene }

// SkipCutscene ends the active sequence, resets the zoom and runs its skip callback
func (l *Level) SkipCutscene() bool {
	if !l.cutscene {
		return false
	}
	cb := l.onSkip
	l.cutscene = false
	l.onSkip = nil

	l.Camera.ResetZoom()
	l.Textbox.Close()
	l.log.Debug("cutscene skipped")
	if cb != nil {
		cb()
	}
	return true
}

// --- Simulation ---

// Update advances the room by dt
func (l *Level) Update(dt time.Duration) {
	secs := dt.Seconds()

	l.Player.update(dt)
	l.Talk.Update(dt)
	l.tweens.update(dt)
	l.Camera.Update(dt)
	l.Textbox.Update(dt)
	for _, b := range l.falling {
		b.update(secs)
	}
	l.Particles.Update(dt)
	l.Camera.Follow(l.Player.Center())
}

// Reset restores the room to its authored state
// A running cutscene is skipped so its owner can clean up
func (l *Level) Reset() {
	l.SkipCutscene()

	for _, c := range append([]*Companion(nil), l.companions...) {
		c.Remove()
	}
	l.tweens.cancel()
	l.Camera.ResetZoom()
	l.Textbox.Close()
	l.Particles.Clear()

	for _, b := range l.falling {
		b.reset()
		l.index.Insert(b)
	}
	for _, b := range l.dash {
		b.reset()
		l.index.Insert(b)
	}
	l.Player.Respawn()
}
