// Package config loads sandbox levels from TOML and runtime switches from the environment
package config

import (
	"bytes"
	_ "embed"
	"io"
	"math"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"

	"github.com/lixenwraith/honly-helper/core"
)

//go:embed default.toml
var defaultLevel []byte

// File is a level document
type File struct {
	Level         LevelConfig       `toml:"level"`
	Player        PlayerConfig      `toml:"player"`
	Solids        []RectConfig      `toml:"solid"`
	FallingBlocks []RectConfig      `toml:"falling_block"`
	DashBlocks    []RectConfig      `toml:"dash_block"`
	Turrets       []TurretConfig    `toml:"turret"`
	Tattles       []TattleConfig    `toml:"tattle"`
	Dialog        map[string]string `toml:"dialog"`
}

// LevelConfig is the room extent; the origin is the top-left corner
type LevelConfig struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

// PlayerConfig places the actor's feet
type PlayerConfig struct {
	X      float64 `toml:"x"`
	Y      float64 `toml:"y"`
	Dashes *int    `toml:"dashes"`
}

// RectConfig is an axis-aligned volume
type RectConfig struct {
	X      float64 `toml:"x"`
	Y      float64 `toml:"y"`
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

func (r RectConfig) Rect() core.Rect {
	return core.Rect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
}

// TurretConfig is a stationary launcher
// Angle is in degrees clockwise on screen from +X, ignored when Aim is set
type TurretConfig struct {
	X        float64  `toml:"x"`
	Y        float64  `toml:"y"`
	Interval float64  `toml:"interval"` // Seconds between shots
	Speed    float64  `toml:"speed"`    // Pixels per second
	Angle    *float64 `toml:"angle"`
	Aim      bool     `toml:"aim"`
}

// AngleRadians converts the authored angle; unset is 0
func (t TurretConfig) AngleRadians() float64 {
	if t.Angle == nil {
		return 0
	}
	return *t.Angle * math.Pi / 180
}

// TattleConfig is a dialogue trigger volume
type TattleConfig struct {
	GothDialogID string  `toml:"goth_dialog_id"`
	DialogAmount int     `toml:"dialog_amount"`
	Loops        bool    `toml:"loops"`
	X            float64 `toml:"x"`
	Y            float64 `toml:"y"`
	Width        float64 `toml:"width"`
	Height       float64 `toml:"height"`
}

func (t TattleConfig) Rect() core.Rect {
	return core.Rect{X: t.X, Y: t.Y, Width: t.Width, Height: t.Height}
}

// Default returns the built-in level
func Default() (*File, error) {
	f, err := Parse(bytes.NewReader(defaultLevel))
	if err != nil {
		return nil, errors.Wrap(err, "built-in level")
	}
	return f, nil
}

// Load reads and validates a level file
func Load(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open level")
	}
	defer fh.Close()

	f, err := Parse(fh)
	if err != nil {
		return nil, errors.Wrapf(err, "level %s", path)
	}
	return f, nil
}

// Parse decodes a level document, rejecting unknown fields, then validates it
func Parse(r io.Reader) (*File, error) {
	var f File
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, errors.Errorf("unknown fields:\n%s", strict.String())
		}
		return nil, errors.Wrap(err, "decode")
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks the document; errors name the offending entry
func (f *File) Validate() error {
	if (core.Rect{Width: f.Level.Width, Height: f.Level.Height}).Empty() {
		return errors.Errorf("level: bounds %gx%g must be positive", f.Level.Width, f.Level.Height)
	}
	if f.Player.Dashes != nil && *f.Player.Dashes < 0 {
		return errors.Errorf("player: dashes %d < 0", *f.Player.Dashes)
	}

	for _, group := range []struct {
		name  string
		rects []RectConfig
	}{
		{"solid", f.Solids},
		{"falling_block", f.FallingBlocks},
		{"dash_block", f.DashBlocks},
	} {
		for i, r := range group.rects {
			if r.Rect().Empty() {
				return errors.Errorf("%s[%d]: size %gx%g must be positive", group.name, i, r.Width, r.Height)
			}
		}
	}

	for i, t := range f.Turrets {
		if t.Interval <= 0 {
			return errors.Errorf("turret[%d]: interval %g must be positive", i, t.Interval)
		}
		if t.Speed <= 0 {
			return errors.Errorf("turret[%d]: speed %g must be positive", i, t.Speed)
		}
	}

	for i, t := range f.Tattles {
		if t.GothDialogID == "" {
			return errors.Errorf("tattle[%d]: goth_dialog_id is empty", i)
		}
		if t.DialogAmount < 1 {
			return errors.Errorf("tattle[%d]: dialog_amount %d < 1", i, t.DialogAmount)
		}
		if t.Rect().Empty() {
			return errors.Errorf("tattle[%d]: size %gx%g must be positive", i, t.Width, t.Height)
		}
	}
	return nil
}
