// Package config loads the TOML tuning file that sets display and
// transition defaults. Everything in it is optional; absent fields
// fall back to the package defaults, so an empty or missing file is a
// valid configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/glyphsign/glyphsign/pkg/transition"
)

// ErrUnknownKind is returned by [Display.Kind] when the configured
// transition kind name is not recognized.
var ErrUnknownKind = errors.New("unknown transition kind")

// Config is the full tuning surface of a display.
type Config struct {
	Display    Display    `toml:"display"`
	Transition Transition `toml:"transition"`
}

// Display selects playback behavior that is not part of plan
// generation itself.
type Display struct {
	// DefaultKind is the transition kind used when a glyph change
	// does not name one: immediate, random, writing or overwrite.
	DefaultKind string `toml:"default_kind"`

	// Effect optionally names a restyle effect applied to segments
	// as they switch: pulse, color-cycle, fade or power-on.
	Effect string `toml:"effect"`
}

// Kind resolves the configured default transition kind. An empty
// name means immediate.
func (d Display) Kind() (transition.Kind, error) {
	if d.DefaultKind == "" {
		return transition.KindImmediate, nil
	}
	for _, name := range transition.KindNames() {
		if name == d.DefaultKind {
			return transition.ParseKind(d.DefaultKind), nil
		}
	}
	return transition.KindImmediate, fmt.Errorf("%w: %q", ErrUnknownKind, d.DefaultKind)
}

// Transition carries the plan generation tunables in file-friendly
// units. Wandering and Density are pointers because zero is a legal
// value for both; an explicit 0.0 in the file must stay
// distinguishable from an absent key.
type Transition struct {
	Steps     int      `toml:"steps"`
	FrameMS   int64    `toml:"frame_ms"`
	Wandering *float64 `toml:"wandering"`
	Density   *float64 `toml:"density"`
}

// Engine converts the file form into a validated engine config.
// Absent keys take the package defaults; present keys are used as
// written, including zero.
func (t Transition) Engine() (transition.Config, error) {
	cfg := transition.Config{
		Steps:         t.Steps,
		FrameDuration: time.Duration(t.FrameMS) * time.Millisecond,
		Wandering:     transition.DefaultWandering,
		Density:       transition.DefaultDensity,
	}
	if t.Wandering != nil {
		cfg.Wandering = *t.Wandering
	}
	if t.Density != nil {
		cfg.Density = *t.Density
	}
	if err := cfg.ValidateAndSetDefaults(); err != nil {
		return transition.Config{}, err
	}
	return cfg, nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Display: Display{DefaultKind: transition.KindRandom.String()},
	}
}

// Load reads a TOML config file. A missing file is not an error; the
// defaults are returned instead.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if _, err := cfg.Display.Kind(); err != nil {
		return nil, err
	}
	if _, err := cfg.Transition.Engine(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}
