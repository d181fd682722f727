package transition

import (
	"errors"
	"time"
)

var (
	// ErrInvalidSteps is returned by [Config.ValidateAndSetDefaults]
	// when Steps is negative. Zero means "use the default".
	ErrInvalidSteps = errors.New("steps must not be negative")

	// ErrInvalidFrameDuration is returned by
	// [Config.ValidateAndSetDefaults] when FrameDuration is negative.
	ErrInvalidFrameDuration = errors.New("frame duration must not be negative")

	// ErrInvalidWandering is returned by
	// [Config.ValidateAndSetDefaults] when Wandering is outside [0, 1].
	ErrInvalidWandering = errors.New("wandering must be between 0 and 1")

	// ErrInvalidDensity is returned by [Config.ValidateAndSetDefaults]
	// when Density is outside [0, 1].
	ErrInvalidDensity = errors.New("density must be between 0 and 1")
)

// Package defaults. ValidateAndSetDefaults fills zero Steps and
// FrameDuration; DefaultWandering and DefaultDensity are for callers
// that know the field was left unset, since zero is a legal value for
// both.
const (
	DefaultSteps         = 10
	DefaultFrameDuration = 50 * time.Millisecond
	DefaultWandering     = 0.5
	DefaultDensity       = 0.3
)

// Config tunes randomized plan generation and playback pacing.
//
// Wandering is the per-draw acceptance probability: low values make
// the plan grow patiently outward from anchors, high values scatter
// changes across the display. Density caps the fraction of all
// pending changes a single step may carry.
type Config struct {
	// Steps is the target number of steps in a randomized plan.
	Steps int

	// FrameDuration is the playback interval between steps.
	FrameDuration time.Duration

	// Wandering is the acceptance probability of each random draw,
	// in [0, 1]. Zero still makes progress; draws are force-accepted
	// after a bounded number of rejections.
	Wandering float64

	// Density caps each step at ceil(pending * Density) changes,
	// in [0, 1].
	Density float64

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// ValidateAndSetDefaults checks ranges and fills a zero Steps or
// FrameDuration with the package defaults. Wandering and Density are
// kept as given; a display that wants the defaults sets them from
// [DefaultWandering] and [DefaultDensity] before validating. This
// method is idempotent.
func (c *Config) ValidateAndSetDefaults() error {
	if c.validated {
		return nil
	}
	if c.Steps < 0 {
		return ErrInvalidSteps
	}
	if c.FrameDuration < 0 {
		return ErrInvalidFrameDuration
	}
	if c.Wandering < 0 || c.Wandering > 1 {
		return ErrInvalidWandering
	}
	if c.Density < 0 || c.Density > 1 {
		return ErrInvalidDensity
	}

	if c.Steps == 0 {
		c.Steps = DefaultSteps
	}
	if c.FrameDuration == 0 {
		c.FrameDuration = DefaultFrameDuration
	}
	c.validated = true
	return nil
}
