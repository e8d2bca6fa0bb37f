package level

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/lixenwraith/honly-helper/parameter"
	"github.com/lixenwraith/honly-helper/vmath"
)

// Particle is a short-lived visual point
type Particle struct {
	Position vmath.Vec2
	Velocity vmath.Vec2
	Life     time.Duration
}

// Particles implements host.Effects with a flat particle pool
type Particles struct {
	live []Particle
	rng  *rand.Rand
}

func NewParticles(seed uint64) *Particles {
	return &Particles{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Burst emits count particles jittered by spread around p, moving along angle
func (ps *Particles) Burst(p vmath.Vec2, count int, spread, angle float64) {
	for i := 0; i < count; i++ {
		jitter := vmath.V2(ps.rng.Float64()*2-1, ps.rng.Float64()*2-1).Scale(spread)
		heading := angle + (ps.rng.Float64()-0.5)*math.Pi/4
		ps.live = append(ps.live, Particle{
			Position: p.Add(jitter),
			Velocity: vmath.FromAngle(heading, parameter.ParticleSpeed),
			Life:     parameter.ParticleLifetime,
		})
	}
}

// Displacement emits an expanding ring at p
func (ps *Particles) Displacement(p vmath.Vec2) {
	step := 2 * math.Pi / parameter.DisplacementRingCount
	for i := 0; i < parameter.DisplacementRingCount; i++ {
		ps.live = append(ps.live, Particle{
			Position: p,
			Velocity: vmath.FromAngle(float64(i)*step, parameter.DisplacementRingSpeed),
			Life:     parameter.ParticleLifetime,
		})
	}
}

// Update moves particles and drops expired ones
func (ps *Particles) Update(dt time.Duration) {
	secs := dt.Seconds()
	live := ps.live[:0]
	for _, p := range ps.live {
		p.Life -= dt
		if p.Life <= 0 {
			continue
		}
		p.Position = p.Position.Add(p.Velocity.Scale(secs))
		live = append(live, p)
	}
	ps.live = live
}

// Each visits every live particle
func (ps *Particles) Each(fn func(p Particle)) {
	for _, p := range ps.live {
		fn(p)
	}
}

// Len returns the live particle count
func (ps *Particles) Len() int { return len(ps.live) }

// Clear drops all particles
func (ps *Particles) Clear() { ps.live = ps.live[:0] }
