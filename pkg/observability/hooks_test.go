package observability

import (
	"context"
	"testing"
	"time"
)

type recordingPipelineHooks struct {
	NoopPipelineHooks
	parsed  []string
	layouts int
}

func (h *recordingPipelineHooks) OnParseComplete(_ context.Context, language, filename string, _ int, _ time.Duration, _ error) {
	h.parsed = append(h.parsed, language+":"+filename)
}

func (h *recordingPipelineHooks) OnLayoutStart(context.Context, int) {
	h.layouts++
}

type countingCacheHooks struct {
	hits, misses, sets int
}

func (h *countingCacheHooks) OnCacheHit(context.Context, string)      { h.hits++ }
func (h *countingCacheHooks) OnCacheMiss(context.Context, string)     { h.misses++ }
func (h *countingCacheHooks) OnCacheSet(context.Context, string, int) { h.sets++ }

func TestDefaultHooksAreNoop(t *testing.T) {
	Reset()
	ctx := context.Background()

	// Must not panic.
	Pipeline().OnParseStart(ctx, "go", "input.go")
	Pipeline().OnParseComplete(ctx, "go", "input.go", 3, time.Millisecond, nil)
	Pipeline().OnBuildComplete(ctx, 7, 7, time.Millisecond, nil)
	Pipeline().OnLayoutStart(ctx, 7)
	Pipeline().OnLayoutComplete(ctx, time.Millisecond, nil)
	Pipeline().OnRenderStart(ctx, []string{"svg"})
	Pipeline().OnRenderComplete(ctx, []string{"svg"}, time.Millisecond, nil)
	Cache().OnCacheHit(ctx, "layout")
	Cache().OnCacheMiss(ctx, "layout")
	Cache().OnCacheSet(ctx, "layout", 10)
}

func TestSetPipelineHooks(t *testing.T) {
	t.Cleanup(Reset)

	h := &recordingPipelineHooks{}
	SetPipelineHooks(h)

	ctx := context.Background()
	Pipeline().OnParseComplete(ctx, "hcl", "flow.hcl", 3, time.Millisecond, nil)
	Pipeline().OnLayoutStart(ctx, 5)

	if len(h.parsed) != 1 || h.parsed[0] != "hcl:flow.hcl" {
		t.Errorf("parsed = %v", h.parsed)
	}
	if h.layouts != 1 {
		t.Errorf("layouts = %d, want 1", h.layouts)
	}
}

func TestSetCacheHooks(t *testing.T) {
	t.Cleanup(Reset)

	h := &countingCacheHooks{}
	SetCacheHooks(h)

	ctx := context.Background()
	Cache().OnCacheHit(ctx, "artifact")
	Cache().OnCacheMiss(ctx, "artifact")
	Cache().OnCacheMiss(ctx, "layout")
	Cache().OnCacheSet(ctx, "layout", 42)

	if h.hits != 1 || h.misses != 2 || h.sets != 1 {
		t.Errorf("counts = %d/%d/%d, want 1/2/1", h.hits, h.misses, h.sets)
	}
}

func TestSetNilKeepsCurrent(t *testing.T) {
	t.Cleanup(Reset)

	h := &countingCacheHooks{}
	SetCacheHooks(h)
	SetCacheHooks(nil)
	SetPipelineHooks(nil)

	if Cache() != CacheHooks(h) {
		t.Error("SetCacheHooks(nil) replaced registered hooks")
	}
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("SetPipelineHooks(nil) replaced default hooks")
	}
}

func TestReset(t *testing.T) {
	SetCacheHooks(&countingCacheHooks{})
	Reset()
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Reset() did not restore no-op cache hooks")
	}
}
