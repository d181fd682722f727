package planner

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/glyphsign/glyphsign/pkg/cache"
	"github.com/glyphsign/glyphsign/pkg/grid"
	"github.com/glyphsign/glyphsign/pkg/observability"
	"github.com/glyphsign/glyphsign/pkg/segmentgraph"
	"github.com/glyphsign/glyphsign/pkg/strokeorder"
	"github.com/glyphsign/glyphsign/pkg/transition"
)

// Runner executes planner runs with caching. It is stateless except
// for the cache and logger; multiple goroutines can share one Runner
// with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// A nil keyer uses the DefaultKeyer; a nil cache disables caching.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → graph → plan flow with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	logger := r.logger(opts)

	raw, err := os.ReadFile(opts.ProjectPath)
	if err != nil {
		return nil, fmt.Errorf("read project: %w", err)
	}
	project, err := grid.ReadProject(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parse project %s: %w", opts.ProjectPath, err)
	}

	result := &Result{
		Project:    project,
		LayoutHash: cache.Hash(raw),
	}
	result.Stats.SegmentCount = project.Grid.Len()

	current := toSet(opts.Current)
	target, targetIDs, err := resolveTarget(project, opts)
	if err != nil {
		return nil, err
	}

	graphStart := time.Now()
	graph, graphHit, err := r.BuildGraphWithCacheInfo(ctx, project.Grid, result.LayoutHash, opts)
	if err != nil {
		return nil, fmt.Errorf("build graph: %w", err)
	}
	result.Graph = graph
	result.Stats.GraphTime = time.Since(graphStart)
	result.Stats.EdgeCount = graph.EdgeCount()
	result.CacheInfo.GraphHit = graphHit

	if graphData, err := segmentgraph.MarshalGraph(graph); err == nil {
		result.GraphHash = cache.Hash(graphData)
	}

	logger.Info("built segment graph",
		"segments", project.Grid.Len(),
		"edges", graph.EdgeCount(),
		"cached", graphHit,
		"duration", result.Stats.GraphTime)

	planStart := time.Now()
	plan, planHit, err := r.GeneratePlanWithCacheInfo(ctx, project, graph, result.GraphHash, current, target, targetIDs, opts)
	if err != nil {
		return nil, fmt.Errorf("generate plan: %w", err)
	}
	result.Plan = plan
	result.Stats.PlanTime = time.Since(planStart)
	result.Stats.StepCount = len(plan)
	result.Stats.ChangeCount = countChanges(plan)
	result.CacheInfo.PlanHit = planHit

	logger.Info("generated plan",
		"kind", opts.Kind,
		"steps", len(plan),
		"changes", result.Stats.ChangeCount,
		"cached", planHit,
		"duration", result.Stats.PlanTime)

	return result, nil
}

// BuildGraphWithCacheInfo builds the segment graph with caching and
// reports whether it was served from cache.
func (r *Runner) BuildGraphWithCacheInfo(ctx context.Context, g *grid.Grid, layoutHash string, opts Options) (*segmentgraph.Graph, bool, error) {
	key := r.Keyer.GraphKey(layoutHash)

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			if cached, err := segmentgraph.ReadGraph(bytes.NewReader(data)); err == nil {
				observability.Cache().OnCacheHit(ctx, "graph")
				return cached, true, nil
			}
			// Corrupt entry; fall through to rebuild.
		}
		observability.Cache().OnCacheMiss(ctx, "graph")
	}

	observability.Planner().OnGraphBuildStart(ctx, g.Len())
	start := time.Now()
	graph := segmentgraph.Build(g, segmentgraph.Options{
		ConnectionThreshold: opts.ConnectionThreshold,
	})
	observability.Planner().OnGraphBuildComplete(ctx, g.Len(), graph.EdgeCount(), time.Since(start), nil)

	if data, err := segmentgraph.MarshalGraph(graph); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.TTLGraph); err == nil {
			observability.Cache().OnCacheSet(ctx, "graph", len(data))
		}
	}
	return graph, false, nil
}

// GeneratePlanWithCacheInfo generates a transition plan with caching
// and reports whether it was served from cache.
func (r *Runner) GeneratePlanWithCacheInfo(ctx context.Context, project *grid.Project, graph *segmentgraph.Graph, graphHash string, current map[string]struct{}, target map[string]struct{}, targetIDs []string, opts Options) (transition.Plan, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	key := r.Keyer.PlanKey(graphHash, cache.PlanKeyOpts{
		Current:   slices.Sorted(slices.Values(opts.Current)),
		Target:    targetIDs,
		Kind:      opts.Kind.String(),
		Seed:      opts.Seed,
		Steps:     opts.Config.Steps,
		Wandering: opts.Config.Wandering,
		Density:   opts.Config.Density,
	})

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			if cached, err := transition.ReadPlan(bytes.NewReader(data)); err == nil {
				observability.Cache().OnCacheHit(ctx, "plan")
				return cached.Plan, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "plan")
	}

	observability.Planner().OnPlanStart(ctx, opts.Kind.String(), symmetricDifference(current, target))
	start := time.Now()
	engine := transition.NewEngine(opts.Config, opts.Seed)
	order := strokeorder.New(project.Grid, graph).Order
	plan := engine.Generate(opts.Kind, graph, current, target, order)
	observability.Planner().OnPlanComplete(ctx, opts.Kind.String(), len(plan), time.Since(start), nil)

	file := &transition.PlanFile{
		Kind:          opts.Kind,
		FrameDuration: opts.Config.FrameDuration.Milliseconds(),
		Plan:          plan,
	}
	if data, err := transition.MarshalPlan(file); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.TTLPlan); err == nil {
			observability.Cache().OnCacheSet(ctx, "plan", len(data))
		}
	}
	return plan, false, nil
}

// Close releases resources held by the runner, primarily the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) logger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}

// resolveTarget returns the target set and its sorted ID list.
func resolveTarget(project *grid.Project, opts Options) (map[string]struct{}, []string, error) {
	if opts.Glyph != "" {
		set, ok := project.Glyphs.Active(opts.Glyph)
		if !ok {
			return nil, nil, fmt.Errorf("%w: %q", ErrUnknownGlyph, opts.Glyph)
		}
		ids := make([]string, 0, len(set))
		for id := range set {
			ids = append(ids, id)
		}
		slices.Sort(ids)
		return set, ids, nil
	}
	return toSet(opts.Target), slices.Sorted(slices.Values(opts.Target)), nil
}

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func countChanges(plan transition.Plan) int {
	n := 0
	for _, step := range plan {
		n += len(step)
	}
	return n
}

func symmetricDifference(current, target map[string]struct{}) int {
	n := 0
	for id := range current {
		if _, ok := target[id]; !ok {
			n++
		}
	}
	for id := range target {
		if _, ok := current[id]; !ok {
			n++
		}
	}
	return n
}
