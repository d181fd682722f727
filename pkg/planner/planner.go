// Package planner runs the full load → graph → plan flow behind the
// CLI: read a project file, build its segment connectivity graph, and
// generate a transition plan, caching both artifacts by content hash.
package planner

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/glyphsign/glyphsign/pkg/grid"
	"github.com/glyphsign/glyphsign/pkg/segmentgraph"
	"github.com/glyphsign/glyphsign/pkg/transition"
)

var (
	// ErrNoProject is returned when options lack a project path.
	ErrNoProject = errors.New("project path is required")

	// ErrUnknownGlyph is returned when the requested glyph is not
	// defined in the project.
	ErrUnknownGlyph = errors.New("unknown glyph")
)

// Options configures one planner run.
type Options struct {
	// ProjectPath is the layout and glyph JSON file to load.
	ProjectPath string

	// Glyph names the target glyph in the project's glyph set.
	// Takes precedence over Target.
	Glyph string

	// Target is an explicit target segment set, used when Glyph is
	// empty. An empty target plans a blanking transition.
	Target []string

	// Current is the currently lit segment set. Empty means the
	// display is dark.
	Current []string

	// Kind selects the plan animation.
	Kind transition.Kind

	// Config tunes plan generation. A zero Steps or FrameDuration
	// takes its default; Wandering and Density are used as given.
	Config transition.Config

	// Seed drives randomized generation. The same seed and inputs
	// reproduce the same plan.
	Seed uint64

	// ConnectionThreshold overrides the graph builder's endpoint
	// tolerance when positive.
	ConnectionThreshold float64

	// Refresh bypasses cache reads. Results are still written back.
	Refresh bool

	// Logger overrides the runner's logger for this run.
	Logger *log.Logger

	validated bool
}

// ValidateAndSetDefaults checks options and fills defaults in place.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.ProjectPath == "" {
		return ErrNoProject
	}
	if err := o.Config.ValidateAndSetDefaults(); err != nil {
		return fmt.Errorf("transition config: %w", err)
	}
	o.validated = true
	return nil
}

// Stats describes what one run did and how long the stages took.
type Stats struct {
	SegmentCount int
	EdgeCount    int
	StepCount    int
	ChangeCount  int
	GraphTime    time.Duration
	PlanTime     time.Duration
}

// CacheInfo reports which stages were served from cache.
type CacheInfo struct {
	GraphHit bool
	PlanHit  bool
}

// Result is the output of one planner run.
type Result struct {
	Project    *grid.Project
	Graph      *segmentgraph.Graph
	Plan       transition.Plan
	LayoutHash string
	GraphHash  string
	Stats      Stats
	CacheInfo  CacheInfo
}
