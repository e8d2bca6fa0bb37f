package config

import (
	"log/slog"
	"time"

	"github.com/pkg/errors"

	"github.com/lixenwraith/honly-helper/component"
	"github.com/lixenwraith/honly-helper/core"
	"github.com/lixenwraith/honly-helper/engine"
	"github.com/lixenwraith/honly-helper/host"
	"github.com/lixenwraith/honly-helper/level"
	"github.com/lixenwraith/honly-helper/system"
	"github.com/lixenwraith/honly-helper/vmath"
)

// Assembly is a playable room: the level host, its world and the gameplay systems
type Assembly struct {
	Level       *level.Level
	World       *engine.World
	Projectiles *system.ProjectileSystem
	Turrets     *system.TurretSystem
	Tattles     *system.TattleSystem
}

// BuildOptions carries runtime collaborators
type BuildOptions struct {
	Audio   host.Audio // nil runs silent
	Session *level.Session
	Seed    uint64
	Log     *slog.Logger
}

// Build instantiates the document into a running world
func (f *File) Build(opts BuildOptions) (*Assembly, error) {
	if opts.Log == nil {
		opts.Log = engine.DiscardLogger()
	}

	lvl := level.New(level.Options{
		Bounds:  core.Rect{Width: f.Level.Width, Height: f.Level.Height},
		Spawn:   vmath.V2(f.Player.X, f.Player.Y),
		Dialog:  f.Dialog,
		Session: opts.Session,
		Audio:   opts.Audio,
		Seed:    opts.Seed,
		Log:     opts.Log,
	})
	if f.Player.Dashes != nil {
		lvl.Player.SetResources(*f.Player.Dashes)
	}

	for _, r := range f.Solids {
		lvl.AddSolid(r.Rect())
	}
	for _, r := range f.FallingBlocks {
		lvl.AddFallingBlock(r.Rect())
	}
	for _, r := range f.DashBlocks {
		lvl.AddDashBlock(r.Rect())
	}

	world := engine.NewWorld(lvl.Host(), opts.Log)
	a := &Assembly{
		Level:       lvl,
		World:       world,
		Projectiles: system.NewProjectileSystem(world),
		Turrets:     system.NewTurretSystem(world),
		Tattles:     system.NewTattleSystem(world),
	}

	for i, t := range f.Turrets {
		a.Turrets.AddTurret(&component.TurretComponent{
			ID:       core.Entity(i + 1),
			Position: vmath.V2(t.X, t.Y),
			Interval: seconds(t.Interval),
			Speed:    t.Speed,
			Aim:      t.Aim,
			Angle:    t.AngleRadians(),
		})
	}

	for i, t := range f.Tattles {
		_, err := a.Tattles.AddTrigger(component.TattleConfig{
			DialogFamily: t.GothDialogID,
			DialogAmount: t.DialogAmount,
			Loops:        t.Loops,
			Area:         t.Rect(),
		})
		if err != nil {
			return nil, errors.Wrapf(err, "tattle[%d]", i)
		}
	}

	world.AddSystem(a.Turrets)
	world.AddSystem(a.Projectiles)
	world.AddSystem(a.Tattles)
	world.AddSystem(level.NewHostSystem(world, lvl))

	opts.Log.Debug("level built",
		"solids", len(f.Solids), "turrets", len(f.Turrets), "tattles", len(f.Tattles))
	return a, nil
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
