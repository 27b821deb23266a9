package observability

import (
	"context"
	"testing"
	"time"
)

type countingPipelineHooks struct {
	NoopPipelineHooks
	planStarts int
	renders    int
}

func (h *countingPipelineHooks) OnPlanStart(ctx context.Context, kind string, slots int) {
	h.planStarts++
}

func (h *countingPipelineHooks) OnRenderComplete(ctx context.Context, kind, format string, size int, d time.Duration, err error) {
	h.renders++
}

type countingCacheHooks struct {
	NoopCacheHooks
	hits int
}

func (h *countingCacheHooks) OnCacheHit(ctx context.Context, keyType string) {
	h.hits++
}

func TestHookRegistration(t *testing.T) {
	defer Reset()
	ctx := context.Background()

	ph := &countingPipelineHooks{}
	SetPipelineHooks(ph)
	Pipeline().OnPlanStart(ctx, "template", 40)
	Pipeline().OnRenderComplete(ctx, "template", "svg", 1024, time.Millisecond, nil)
	if ph.planStarts != 1 || ph.renders != 1 {
		t.Errorf("pipeline hooks not invoked: starts=%d renders=%d", ph.planStarts, ph.renders)
	}

	ch := &countingCacheHooks{}
	SetCacheHooks(ch)
	Cache().OnCacheHit(ctx, "plan")
	if ch.hits != 1 {
		t.Errorf("cache hooks not invoked: hits=%d", ch.hits)
	}
}

func TestSetNilKeepsCurrent(t *testing.T) {
	defer Reset()

	ph := &countingPipelineHooks{}
	SetPipelineHooks(ph)
	SetPipelineHooks(nil)
	Pipeline().OnPlanStart(context.Background(), "template", 40)
	if ph.planStarts != 1 {
		t.Error("nil registration should keep existing hooks")
	}
}

func TestReset(t *testing.T) {
	ph := &countingPipelineHooks{}
	SetPipelineHooks(ph)
	Reset()
	Pipeline().OnPlanStart(context.Background(), "template", 40)
	if ph.planStarts != 0 {
		t.Error("Reset should restore no-op hooks")
	}
}
