// Package pkg provides the core libraries for glyphsign segmented
// display planning.
//
// # Overview
//
// Glyphsign works with tiled segmented displays: fixed layouts of
// line and arc segments that show glyphs by lighting segment subsets.
// The pkg directory is organized along the data flow:
//
//  1. [geometry] - Primitives (lines, arcs, circles) and shape classification
//  2. [grid] - Tiled layouts, segments, glyph sets, and the project codec
//  3. [segmentgraph] - Connectivity between segments sharing endpoints
//  4. [transition] - Plan generation and the playback cursor
//  5. [strokeorder] - Deterministic pen ordering for writing animations
//  6. [display] - A running display instance tying the above together
//  7. [planner] - Orchestration with caching, used by the CLI
//
// # Architecture
//
// The typical data flow through glyphsign:
//
//	Project JSON (layout + glyphs)
//	         ↓
//	    [grid] package (tiles, segments, glyph sets)
//	         ↓
//	    [segmentgraph] package (endpoint connectivity)
//	         ↓
//	    [transition] / [strokeorder] packages (plan generation)
//	         ↓
//	    [display] package (frame-by-frame playback)
//
// # Quick Start
//
// Load a project and generate a transition plan:
//
//	import (
//	    "github.com/glyphsign/glyphsign/pkg/grid"
//	    "github.com/glyphsign/glyphsign/pkg/segmentgraph"
//	    "github.com/glyphsign/glyphsign/pkg/strokeorder"
//	    "github.com/glyphsign/glyphsign/pkg/transition"
//	)
//
//	// 1. Load the layout and glyph library
//	project, _ := grid.ReadProjectFile("project.json")
//
//	// 2. Build the connectivity graph
//	graph := segmentgraph.Build(project.Grid, segmentgraph.Options{})
//
//	// 3. Generate a plan from dark to the "A" glyph
//	target, _ := project.Glyphs.Active("A")
//	engine := transition.NewEngine(transition.Config{}, 42)
//	order := strokeorder.New(project.Grid, graph).Order
//	plan := engine.Generate(transition.KindWriting, graph, nil, target, order)
//
//	// 4. Play it back
//	t := transition.New(transition.KindWriting, plan, 50*time.Millisecond)
//	for !t.Complete() {
//	    if t.Tick(frameDelta) {
//	        updates, _ := t.Advance()
//	        // apply updates.On / updates.Off
//	    }
//	}
//
// # Supporting Packages
//
// [cache] - Pluggable caching for built graphs and generated plans
// (file, Redis, and null backends).
//
// [config] - TOML tuning file for transition and display defaults.
//
// [observability] - Hook interfaces for instrumenting graph builds,
// plan generation, and cache traffic without backend dependencies.
//
// [render] - Graphviz export of segment graphs for layout debugging.
//
// [buildinfo] - Build-time version information set via ldflags.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/transition/  # Specific package
//	go test -run Example       # Examples only
//
// [geometry]: https://pkg.go.dev/github.com/glyphsign/glyphsign/pkg/geometry
// [grid]: https://pkg.go.dev/github.com/glyphsign/glyphsign/pkg/grid
// [segmentgraph]: https://pkg.go.dev/github.com/glyphsign/glyphsign/pkg/segmentgraph
// [transition]: https://pkg.go.dev/github.com/glyphsign/glyphsign/pkg/transition
// [strokeorder]: https://pkg.go.dev/github.com/glyphsign/glyphsign/pkg/strokeorder
// [display]: https://pkg.go.dev/github.com/glyphsign/glyphsign/pkg/display
// [planner]: https://pkg.go.dev/github.com/glyphsign/glyphsign/pkg/planner
// [cache]: https://pkg.go.dev/github.com/glyphsign/glyphsign/pkg/cache
// [config]: https://pkg.go.dev/github.com/glyphsign/glyphsign/pkg/config
// [observability]: https://pkg.go.dev/github.com/glyphsign/glyphsign/pkg/observability
// [render]: https://pkg.go.dev/github.com/glyphsign/glyphsign/pkg/render
// [buildinfo]: https://pkg.go.dev/github.com/glyphsign/glyphsign/pkg/buildinfo
package pkg
