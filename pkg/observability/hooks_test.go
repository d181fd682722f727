package observability

import (
	"context"
	"testing"
	"time"
)

type recordingPlannerHooks struct {
	NoopPlannerHooks
	graphStarts int
	planStarts  int
}

func (h *recordingPlannerHooks) OnGraphBuildStart(context.Context, int) { h.graphStarts++ }
func (h *recordingPlannerHooks) OnPlanStart(context.Context, string, int) {
	h.planStarts++
}

type recordingCacheHooks struct {
	NoopCacheHooks
	hits, misses int
}

func (h *recordingCacheHooks) OnCacheHit(context.Context, string)  { h.hits++ }
func (h *recordingCacheHooks) OnCacheMiss(context.Context, string) { h.misses++ }

func TestDefaultHooksAreNoop(t *testing.T) {
	Reset()
	ctx := context.Background()

	// Must not panic.
	Planner().OnGraphBuildStart(ctx, 10)
	Planner().OnGraphBuildComplete(ctx, 10, 12, time.Millisecond, nil)
	Planner().OnPlanStart(ctx, "random", 5)
	Planner().OnPlanComplete(ctx, "random", 3, time.Millisecond, nil)
	Cache().OnCacheHit(ctx, "plan")
	Cache().OnCacheMiss(ctx, "graph")
	Cache().OnCacheSet(ctx, "plan", 128)
}

func TestSetAndResetHooks(t *testing.T) {
	t.Cleanup(Reset)
	ctx := context.Background()

	planner := &recordingPlannerHooks{}
	cache := &recordingCacheHooks{}
	SetPlannerHooks(planner)
	SetCacheHooks(cache)

	Planner().OnGraphBuildStart(ctx, 1)
	Planner().OnPlanStart(ctx, "writing", 2)
	Cache().OnCacheHit(ctx, "plan")
	Cache().OnCacheMiss(ctx, "plan")

	if planner.graphStarts != 1 || planner.planStarts != 1 {
		t.Errorf("planner hooks recorded %d/%d, want 1/1", planner.graphStarts, planner.planStarts)
	}
	if cache.hits != 1 || cache.misses != 1 {
		t.Errorf("cache hooks recorded %d/%d, want 1/1", cache.hits, cache.misses)
	}

	Reset()
	Cache().OnCacheHit(ctx, "plan")
	if cache.hits != 1 {
		t.Error("Reset did not restore no-op cache hooks")
	}
}

func TestSetNilHooksKeepsCurrent(t *testing.T) {
	t.Cleanup(Reset)

	planner := &recordingPlannerHooks{}
	SetPlannerHooks(planner)
	SetPlannerHooks(nil)

	Planner().OnGraphBuildStart(context.Background(), 1)
	if planner.graphStarts != 1 {
		t.Error("SetPlannerHooks(nil) replaced registered hooks")
	}
}
