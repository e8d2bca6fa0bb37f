package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/honly-helper/audio"
	"github.com/lixenwraith/honly-helper/config"
	"github.com/lixenwraith/honly-helper/event"
	"github.com/lixenwraith/honly-helper/host"
	"github.com/lixenwraith/honly-helper/parameter"
	"github.com/lixenwraith/honly-helper/service"
	"github.com/lixenwraith/honly-helper/vmath"
)

// walkStep is how long one key press walks the player
const walkStep = 100 * time.Millisecond

func main() {
	env := config.LoadEnv()

	debug := flag.Bool("debug", env.Debug, "write debug logs to logs/turret-sandbox.log")
	levelPath := flag.String("level", env.LevelPath, "level TOML file (built-in level when empty)")
	mute := flag.Bool("mute", !env.Audio, "disable audio")
	flag.Parse()

	logFile, logger := setupLogging(*debug)
	if logFile != nil {
		defer logFile.Close()
	}

	doc, err := loadLevel(*levelPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// 1. Services
	hub := service.NewHub()
	audioSvc := audio.NewService()
	if err := hub.Register(audioSvc); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := hub.InitAll(map[string][]any{audioSvc.Name(): {!*mute, env.Volume}}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := hub.StartAll(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer hub.StopAll()

	var sound host.Audio
	hub.Contribute(func(resource any) {
		if a, ok := resource.(host.Audio); ok {
			sound = a
		}
	})
	if audioSvc.IsDisabled() {
		logger.Debug("audio disabled")
	}

	// 2. World
	a, err := doc.Build(config.BuildOptions{
		Audio: sound,
		Seed:  uint64(time.Now().UnixNano()),
		Log:   logger,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// 3. Terminal
	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer screen.Fini()
	screen.HideCursor()

	r := &renderer{screen: screen, a: a}
	sb := &sandbox{a: a, turretsOn: true}

	eventCh := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			eventCh <- ev
		}
	}()

	dt := time.Second / time.Duration(env.TickRate)
	ticker := time.NewTicker(dt)
	defer ticker.Stop()

	// 4. Main Loop
	running := true
	for running {
		select {
		case ev := <-eventCh:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
			case *tcell.EventKey:
				running = sb.handleKey(ev)
			}

		case <-ticker.C:
			if !sb.paused {
				a.World.Tick(dt)
			}
			if m := audioSvc.Manager(); m != nil {
				cam := a.Level.Camera.Position()
				m.SetListener(cam.Add(vmath.V2(parameter.ViewportWidth/2, parameter.ViewportHeight/2)))
			}
			r.draw(sb.paused)
		}
	}
	logger.Debug("sandbox exit", "frames", a.World.Resources.Time.FrameNumber)
}

func loadLevel(path string) (*config.File, error) {
	if path == "" {
		return config.Default()
	}
	return config.Load(path)
}

// sandbox holds interactive toggles
type sandbox struct {
	a         *config.Assembly
	paused    bool
	turretsOn bool
}

// handleKey applies one key press, returning false to quit
func (sb *sandbox) handleKey(ev *tcell.EventKey) bool {
	lvl := sb.a.Level
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyLeft:
		lvl.Player.Move(-1, walkStep, lvl.Bounds)
	case tcell.KeyRight:
		lvl.Player.Move(1, walkStep, lvl.Bounds)
	case tcell.KeyEnter:
		lvl.Textbox.Confirm()
	case tcell.KeyRune:
		switch ev.Rune() {
		case ' ':
			lvl.Player.Jump()
		case 't':
			lvl.Talk.Press()
		case 'c':
			lvl.SkipCutscene()
		case 'r':
			sb.a.World.Reset()
			sb.turretsOn = true
		case 'p':
			sb.paused = !sb.paused
		case 'm':
			sb.turretsOn = !sb.turretsOn
			sb.a.World.PushEvent(event.EventMetaSystemCommandRequest, &event.MetaSystemCommandPayload{
				SystemName: sb.a.Turrets.Name(),
				Enabled:    sb.turretsOn,
			})
		}
	}
	return true
}
