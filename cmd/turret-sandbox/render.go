package main

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/honly-helper/component"
	"github.com/lixenwraith/honly-helper/config"
	"github.com/lixenwraith/honly-helper/host"
	"github.com/lixenwraith/honly-helper/level"
	"github.com/lixenwraith/honly-helper/system"
	"github.com/lixenwraith/honly-helper/vmath"
)

// Level pixels per terminal cell
const (
	cellWidth  = 4.0
	cellHeight = 8.0
)

// --- Visual Constants ---
var (
	styleBg        = tcell.StyleDefault.Background(tcell.NewRGBColor(26, 27, 38))
	styleSolid     = styleBg.Foreground(tcell.NewRGBColor(90, 90, 110))
	styleFalling   = styleBg.Foreground(tcell.NewRGBColor(220, 180, 60))
	styleDash      = styleBg.Foreground(tcell.NewRGBColor(160, 110, 70))
	styleTurret    = styleBg.Foreground(tcell.NewRGBColor(255, 70, 70)).Bold(true)
	styleTrail     = styleBg.Foreground(tcell.NewRGBColor(255, 160, 50))
	styleBullet    = styleBg.Foreground(tcell.NewRGBColor(255, 230, 120)).Bold(true)
	stylePlayer    = styleBg.Foreground(tcell.NewRGBColor(0, 255, 255)).Bold(true)
	styleDead      = styleBg.Foreground(tcell.NewRGBColor(255, 0, 80)).Bold(true)
	styleCompanion = styleBg.Foreground(tcell.NewRGBColor(200, 80, 255)).Bold(true)
	styleParticle  = styleBg.Foreground(tcell.NewRGBColor(140, 140, 160))
	styleTrigger   = styleBg.Foreground(tcell.NewRGBColor(60, 70, 100))
	styleText      = styleBg.Foreground(tcell.NewRGBColor(220, 220, 220))
	styleDim       = styleBg.Foreground(tcell.NewRGBColor(120, 120, 140))
)

// renderer draws an assembly onto a tcell screen
type renderer struct {
	screen tcell.Screen
	a      *config.Assembly
}

// cell maps a level point through the camera to a terminal cell
func (r *renderer) cell(p vmath.Vec2) (int, int) {
	s := r.a.Level.Camera.ToScreen(p)
	return int(math.Floor(s.X / cellWidth)), int(math.Floor(s.Y / cellHeight))
}

func (r *renderer) set(x, y int, ch rune, style tcell.Style) {
	w, h := r.screen.Size()
	if x < 0 || y < 0 || x >= w || y >= h-3 {
		return
	}
	r.screen.SetContent(x, y, ch, nil, style)
}

func (r *renderer) draw(paused bool) {
	r.screen.Fill(' ', styleBg)

	lvl := r.a.Level
	r.drawTriggers()
	for _, o := range lvl.Obstacles() {
		r.drawObstacle(o)
	}
	for _, t := range r.a.Turrets.Turrets() {
		x, y := r.cell(t.Position)
		r.set(x, y, 'T', styleTurret)
	}

	lvl.Particles.Each(func(p level.Particle) {
		x, y := r.cell(p.Position)
		r.set(x, y, '.', styleParticle)
	})

	r.a.Projectiles.Each(func(_ system.Handle, p component.ProjectileComponent) {
		r.drawTrail(p)
	})

	for _, c := range lvl.Companions() {
		x, y := r.cell(c.Pos)
		r.set(x, y-1, 'B', styleCompanion)
	}

	pl := lvl.Player
	x, y := r.cell(pl.Position())
	if pl.Dead {
		r.set(x, y-1, 'x', styleDead)
	} else {
		r.set(x, y-1, '@', stylePlayer)
	}

	r.drawDialog()
	r.drawStatus(paused)
	r.screen.Show()
}

func (r *renderer) drawTriggers() {
	for _, t := range r.a.Tattles.Triggers() {
		a := t.Config.Area
		x0, y0 := r.cell(vmath.V2(a.Left(), a.Top()))
		x1, y1 := r.cell(vmath.V2(a.Right(), a.Bottom()))
		for x := x0; x <= x1; x++ {
			r.set(x, y0, '·', styleTrigger)
			r.set(x, y1, '·', styleTrigger)
		}
		for y := y0; y <= y1; y++ {
			r.set(x0, y, '·', styleTrigger)
			r.set(x1, y, '·', styleTrigger)
		}
	}
}

func (r *renderer) drawObstacle(o host.Obstacle) {
	ch, style := '█', styleSolid
	switch b := o.(type) {
	case *level.FallingBlock:
		ch, style = '▓', styleFalling
	case *level.DashBlock:
		if b.Broken {
			return
		}
		ch, style = '▒', styleDash
	}

	rect := o.Bounds()
	x0, y0 := r.cell(vmath.V2(rect.Left(), rect.Top()))
	x1, y1 := r.cell(vmath.V2(rect.Right()-0.01, rect.Bottom()-0.01))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			r.set(x, y, ch, style)
		}
	}
}

// drawTrail links consecutive trail points, most recent point as the head
func (r *renderer) drawTrail(p component.ProjectileComponent) {
	pts := p.TrailPoints()
	for i := len(pts) - 1; i > 0; i-- {
		ax, ay := r.cell(pts[i])
		bx, by := r.cell(pts[i-1])
		r.line(ax, ay, bx, by, '∙', styleTrail)
	}
	hx, hy := r.cell(pts[0])
	r.set(hx, hy, '•', styleBullet)
}

// line draws with Bresenham's algorithm
func (r *renderer) line(x0, y0, x1, y1 int, ch rune, style tcell.Style) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		r.set(x0, y0, ch, style)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func (r *renderer) drawDialog() {
	id, text, open := r.a.Level.Textbox.Visible()
	if !open {
		return
	}
	_, h := r.screen.Size()
	r.text(1, h-3, fmt.Sprintf("[%s] %s", id, text), styleText)
}

func (r *renderer) drawStatus(paused bool) {
	_, h := r.screen.Size()
	lvl := r.a.Level

	state := "idle"
	for _, t := range r.a.Tattles.Triggers() {
		if t.Active() {
			state = t.StateName()
		}
	}
	status := fmt.Sprintf("bullets %d | dashes %d | cutscene %s | zoom %.2f",
		r.a.Projectiles.Live(), lvl.Player.Resources(), state, lvl.Camera.Zoom)
	if paused {
		status += " | PAUSED"
	}
	r.text(1, h-2, status, styleDim)
	r.text(1, h-1, "←/→ move  Space jump  t talk  Enter confirm  c skip  m turrets  r reset  p pause  Esc quit", styleDim)
}

func (r *renderer) text(x, y int, s string, style tcell.Style) {
	for _, ch := range s {
		r.screen.SetContent(x, y, ch, nil, style)
		x++
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
