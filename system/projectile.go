package system

import (
	"github.com/lixenwraith/honly-helper/component"
	"github.com/lixenwraith/honly-helper/engine"
	"github.com/lixenwraith/honly-helper/event"
	"github.com/lixenwraith/honly-helper/host"
	"github.com/lixenwraith/honly-helper/parameter"
	"github.com/lixenwraith/honly-helper/physics"
	"github.com/lixenwraith/honly-helper/vmath"
)

// ProjectileSpawn describes a bullet launch
type ProjectileSpawn struct {
	Source host.Source
	Target host.Agent
	Angle  float64 // Radians from +X, rotation x' = x·cos − y·sin
	Speed  float64 // Pixels per second
}

// ProjectileSystem moves ballistic bullets and resolves their collisions
// Each tick a bullet sweeps from its rendered position to its advanced anchor,
// tests agents then obstacles, and bisects the sweep to place the impact
// Spawned via EventProjectileSpawnRequest or Spawn
type ProjectileSystem struct {
	world   *engine.World
	arena   *ProjectileArena
	enabled bool

	scratch []Handle
}

func NewProjectileSystem(world *engine.World) *ProjectileSystem {
	s := &ProjectileSystem{
		world: world,
		arena: NewProjectileArena(parameter.ProjectileArenaCapacity),
	}
	s.Init()
	return s
}

func (s *ProjectileSystem) Init() {
	s.destroyAll()
	s.enabled = true
}

func (s *ProjectileSystem) Name() string { return "projectile" }

func (s *ProjectileSystem) Priority() int { return parameter.PriorityProjectile }

func (s *ProjectileSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventProjectileSpawnRequest,
		event.EventMetaSystemCommandRequest,
		event.EventGameReset,
	}
}

func (s *ProjectileSystem) HandleEvent(ev event.GameEvent) {
	if ev.Type == event.EventGameReset {
		s.Init()
		return
	}
	if ev.Type == event.EventMetaSystemCommandRequest {
		if payload, ok := ev.Payload.(*event.MetaSystemCommandPayload); ok {
			if payload.SystemName == s.Name() {
				s.enabled = payload.Enabled
			}
		}
		return
	}
	if !s.enabled {
		return
	}
	if ev.Type == event.EventProjectileSpawnRequest {
		if p, ok := ev.Payload.(*event.ProjectileSpawnRequestPayload); ok {
			s.Spawn(ProjectileSpawn{
				Source: p.Source,
				Target: p.Target,
				Angle:  p.Angle,
				Speed:  p.Speed,
			})
		}
	}
}

// Spawn launches a bullet from req.Source
// Returns the zero Handle when the source is nil or the arena is exhausted
func (s *ProjectileSystem) Spawn(req ProjectileSpawn) Handle {
	if req.Source == nil {
		return Handle{}
	}

	h, p, ok := s.arena.Acquire()
	if !ok {
		s.world.Resources.Log.Debug("projectile arena exhausted", "capacity", s.arena.Capacity())
		return Handle{}
	}

	origin := req.Source.Center()
	p.Phase = component.ProjectilePhaseFlying
	p.Source = req.Source
	p.Target = req.Target
	p.Position = origin
	p.Anchor = origin
	p.Velocity = LaunchVelocity(req.Speed, req.Angle)
	p.ResetTrail(origin)

	if audio := s.world.Resources.Host.Audio; audio != nil {
		p.Whistle = audio.Play(parameter.SoundBulletWhistle, origin)
	}
	return h
}

// LaunchVelocity composes the base +X speed with the launch rotation
func LaunchVelocity(speed, angle float64) vmath.Vec2 {
	v := vmath.UnitX.Scale(speed)
	if angle != 0 {
		v = v.Rotate(angle)
	}
	return v
}

func (s *ProjectileSystem) Update() {
	if !s.enabled {
		return
	}

	dt := s.world.Resources.Time.DeltaTime.Seconds()

	s.scratch = s.arena.Handles(s.scratch[:0])
	for _, h := range s.scratch {
		p, ok := s.arena.Get(h)
		if !ok {
			continue
		}
		s.step(h, p, dt)
	}
}

// step advances one bullet by dt seconds
func (s *ProjectileSystem) step(h Handle, p *component.ProjectileComponent, dt float64) {
	// A hit lingers one tick so the impact trail is rendered, then goes
	if p.Phase == component.ProjectilePhaseTerminalHit {
		s.Destroy(h)
		return
	}

	res := s.world.Resources.Host
	scene := res.Scene

	from := p.Position
	to := p.Anchor.Add(p.Velocity.Scale(dt))
	p.Anchor = to

	if scene != nil {
		if agent, ok := scene.CollideAgent(from, to); ok {
			impact := physics.BisectImpact(from, to, parameter.ImpactBisectIterations, agentSweep(scene))
			s.strikeAgent(p, agent, impact)
			s.enterHit(p, component.ProjectileHitAgent, impact)
			s.updateWhistle(p)
			return
		}

		if obstacle, ok := scene.CollideObstacle(from, to); ok {
			impact := physics.BisectImpact(from, to, parameter.ImpactBisectIterations, obstacleSweep(scene))
			s.strikeObstacle(p, obstacle, impact)
			s.enterHit(p, component.ProjectileHitObstacle, impact)
			s.updateWhistle(p)
			return
		}
	}

	// Simple linear motion
	p.PushTrail(p.Anchor)
	p.Position = p.Anchor

	if scene != nil && !scene.InBounds(p.Position) {
		p.Phase = component.ProjectilePhaseTerminalOOB
		s.world.PushEvent(event.EventProjectileTerminal, &event.ProjectileTerminalPayload{
			Kind:   event.TerminalOutOfBounds,
			Impact: p.Position,
		})
		s.Destroy(h)
		return
	}

	s.updateWhistle(p)
}

// enterHit records the impact and snaps the rendered position back to the launcher
func (s *ProjectileSystem) enterHit(p *component.ProjectileComponent, kind component.ProjectileHitKind, impact vmath.Vec2) {
	p.Phase = component.ProjectilePhaseTerminalHit
	p.Hit = kind
	p.Impact = impact
	p.PushTrail(impact)
	p.Position = p.Source.Center()

	terminal := event.TerminalHitObstacle
	if kind == component.ProjectileHitAgent {
		terminal = event.TerminalHitAgent
	}
	s.world.PushEvent(event.EventProjectileTerminal, &event.ProjectileTerminalPayload{
		Kind:   terminal,
		Impact: impact,
	})
}

// strikeAgent defeats the struck agent, knocked outward from the impact
func (s *ProjectileSystem) strikeAgent(p *component.ProjectileComponent, agent host.Agent, impact vmath.Vec2) {
	if p.Phase == component.ProjectilePhaseRemoved {
		return
	}
	if agent == nil {
		agent = p.Target
	}
	if agent == nil {
		return
	}
	agent.Die(KnockbackDirection(impact, agent.Center()))
}

// KnockbackDirection is the unit vector from impact to the agent center
// Coincident points resolve to vmath.Up
func KnockbackDirection(impact, center vmath.Vec2) vmath.Vec2 {
	return center.Sub(impact).SafeNormalize(vmath.Up)
}

// strikeObstacle emits impact feedback and invokes obstacle capabilities
func (s *ProjectileSystem) strikeObstacle(p *component.ProjectileComponent, swept host.Obstacle, impact vmath.Vec2) {
	res := s.world.Resources.Host

	if res.Effects != nil {
		res.Effects.Burst(impact, parameter.ImpactBurstCount, parameter.ImpactBurstSpread, p.Velocity.Neg().Angle())
	}
	if res.Audio != nil {
		res.Audio.Play(parameter.SoundBulletImpact, impact)
	}

	struck := swept
	if at, ok := res.Scene.ObstacleAt(impact); ok {
		struck = at
	}
	if t, ok := struck.(host.Triggerable); ok {
		t.Trigger()
	}
	if b, ok := struck.(host.Breakable); ok {
		b.Break(impact, p.Velocity, true, true)
	}
}

func (s *ProjectileSystem) updateWhistle(p *component.ProjectileComponent) {
	if audio := s.world.Resources.Host.Audio; audio != nil && p.Whistle != 0 {
		audio.SetPosition(p.Whistle, p.Position)
	}
}

// Destroy stops the bullet's sound and releases its slot
// Returns false if h is already destroyed, so repeated calls are no-ops
func (s *ProjectileSystem) Destroy(h Handle) bool {
	p, ok := s.arena.Get(h)
	if !ok {
		return false
	}
	if audio := s.world.Resources.Host.Audio; audio != nil && p.Whistle != 0 {
		audio.Stop(p.Whistle)
	}
	p.Phase = component.ProjectilePhaseRemoved
	p.Whistle = 0
	return s.arena.Release(h)
}

// Get returns a snapshot of a live projectile
func (s *ProjectileSystem) Get(h Handle) (component.ProjectileComponent, bool) {
	p, ok := s.arena.Get(h)
	if !ok {
		return component.ProjectileComponent{}, false
	}
	return *p, true
}

// Trail returns the trail of a live projectile, most recent first
func (s *ProjectileSystem) Trail(h Handle) ([component.TrailCapacity]vmath.Vec2, bool) {
	p, ok := s.arena.Get(h)
	if !ok {
		return [component.TrailCapacity]vmath.Vec2{}, false
	}
	return p.TrailPoints(), true
}

// Each visits a snapshot of every live projectile
func (s *ProjectileSystem) Each(fn func(h Handle, p component.ProjectileComponent)) {
	for _, h := range s.arena.Handles(nil) {
		if p, ok := s.arena.Get(h); ok {
			fn(h, *p)
		}
	}
}

// Live returns the number of in-flight projectiles
func (s *ProjectileSystem) Live() int { return s.arena.Live() }

func (s *ProjectileSystem) destroyAll() {
	for _, h := range s.arena.Handles(nil) {
		s.Destroy(h)
	}
}

func agentSweep(scene host.CollisionScene) physics.SegmentTest {
	return func(from, to vmath.Vec2) bool {
		_, ok := scene.CollideAgent(from, to)
		return ok
	}
}

func obstacleSweep(scene host.CollisionScene) physics.SegmentTest {
	return func(from, to vmath.Vec2) bool {
		_, ok := scene.CollideObstacle(from, to)
		return ok
	}
}
