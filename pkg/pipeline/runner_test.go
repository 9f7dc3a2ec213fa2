package pipeline

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/exprflow/pkg/cache"
	"github.com/matzehuels/exprflow/pkg/depgraph"
	apperrors "github.com/matzehuels/exprflow/pkg/errors"
	"github.com/matzehuels/exprflow/pkg/graph"
	"github.com/matzehuels/exprflow/pkg/observability"
	"github.com/matzehuels/exprflow/pkg/render"
	"github.com/matzehuels/exprflow/pkg/render/diagram"
)

const sample = "a = 1\nb = a + 2\nc = b * a\n"

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func newTestRunner(t *testing.T) (*Runner, *cache.MemoryCache) {
	t.Helper()
	mc, err := cache.NewMemoryCache(64)
	if err != nil {
		t.Fatalf("NewMemoryCache: %v", err)
	}
	return NewRunner(mc, nil, quietLogger()), mc
}

func TestNewRunnerDefaults(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	if r.Cache == nil || r.Keyer == nil || r.Logger == nil {
		t.Errorf("NewRunner(nil, nil, nil) = %+v, want defaults", r)
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestExecute(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	result, err := r.Execute(context.Background(), Options{Source: sample})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.Program == nil || result.Program.Len() != 3 {
		t.Errorf("Program = %+v, want 3 statements", result.Program)
	}
	if got := strings.Join(result.Graph.Table.Keys(), "|"); got != "1|a|2|a + 2|b|b * a|c" {
		t.Errorf("keys = %s", got)
	}
	want := Stats{StmtCount: 3, NodeCount: 7, EdgeCount: 7, FinalCount: 1}
	got := result.Stats
	if got.StmtCount != want.StmtCount || got.NodeCount != want.NodeCount ||
		got.EdgeCount != want.EdgeCount || got.FinalCount != want.FinalCount {
		t.Errorf("Stats = %+v, want counts %+v", got, want)
	}
	if len(result.Layout.Nodes) != 7 {
		t.Errorf("layout nodes = %d, want 7", len(result.Layout.Nodes))
	}

	svg := result.Artifacts[FormatSVG]
	if !bytes.HasPrefix(svg, []byte("<svg")) {
		t.Errorf("svg artifact does not start with <svg: %q", svg[:min(len(svg), 40)])
	}
	if n := bytes.Count(svg, []byte("<rect")); n != 7 {
		t.Errorf("svg has %d rects, want 7", n)
	}
	if result.CacheInfo.LayoutHit || result.CacheInfo.RenderHit {
		t.Errorf("CacheInfo = %+v, want no hits with NullCache", result.CacheInfo)
	}
}

func TestExecuteFormats(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	result, err := r.Execute(context.Background(), Options{
		Source:   "y = x + x\n",
		Formats:  []string{FormatJSON, FormatDOT},
		Detailed: true,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if _, ok := result.Artifacts[FormatSVG]; ok {
		t.Error("svg rendered although not requested")
	}

	doc, err := graph.UnmarshalDocument(result.Artifacts[FormatJSON])
	if err != nil {
		t.Fatalf("json artifact: %v", err)
	}
	if doc.Language != "go" || len(doc.Graph.Nodes) != 3 || len(doc.Layout.Edges) != 2 {
		t.Errorf("document = %+v", doc)
	}

	dot := string(result.Artifacts[FormatDOT])
	if !strings.HasPrefix(dot, "digraph") {
		t.Errorf("dot artifact = %q", dot)
	}
	if !strings.Contains(dot, "role: final") {
		t.Errorf("detailed labels missing from dot:\n%s", dot)
	}
}

func TestExecuteHCL(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	result, err := r.Execute(context.Background(), Options{
		Source:   sample,
		Filename: "flow.hcl",
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got := strings.Join(result.Graph.Table.Keys(), "|"); got != "1|a|2|a + 2|b|b * a|c" {
		t.Errorf("keys = %s", got)
	}
}

func TestExecuteCache(t *testing.T) {
	r, mc := newTestRunner(t)
	ctx := context.Background()
	opts := Options{Source: sample, Formats: []string{FormatSVG, FormatDOT}}

	first, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("first Execute: %v", err)
	}
	if first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Errorf("first run CacheInfo = %+v, want misses", first.CacheInfo)
	}

	second, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}
	if !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run CacheInfo = %+v, want hits", second.CacheInfo)
	}
	if second.Program != nil {
		t.Error("Program should be nil when parsing was skipped")
	}
	if !bytes.Equal(first.Artifacts[FormatSVG], second.Artifacts[FormatSVG]) {
		t.Error("cached svg differs from rendered svg")
	}
	if second.Stats.NodeCount != 7 || !second.Graph.Finals.Contains("c") {
		t.Errorf("graph rebuilt from cache: stats %+v, finals %v", second.Stats, second.Graph.Finals.Keys())
	}
	if hits, _ := mc.Stats(); hits != 3 {
		t.Errorf("cache hits = %d, want 3 (layout + 2 artifacts)", hits)
	}
}

func TestExecuteCacheStyleChange(t *testing.T) {
	r, _ := newTestRunner(t)
	ctx := context.Background()

	if _, err := r.Execute(ctx, Options{Source: sample}); err != nil {
		t.Fatal(err)
	}

	style := diagram.DefaultStyle()
	style.FinalFill = "#ff0000"
	result, err := r.Execute(ctx, Options{Source: sample, Style: style})
	if err != nil {
		t.Fatal(err)
	}
	if !result.CacheInfo.LayoutHit {
		t.Error("style change should reuse the layout")
	}
	if result.CacheInfo.RenderHit {
		t.Error("style change must re-render")
	}
	if !bytes.Contains(result.Artifacts[FormatSVG], []byte("#ff0000")) {
		t.Error("new style not applied")
	}
}

func TestExecuteRefresh(t *testing.T) {
	r, mc := newTestRunner(t)
	ctx := context.Background()

	if _, err := r.Execute(ctx, Options{Source: sample}); err != nil {
		t.Fatal(err)
	}
	result, err := r.Execute(ctx, Options{Source: sample, Refresh: true})
	if err != nil {
		t.Fatal(err)
	}
	if result.CacheInfo.LayoutHit || result.CacheInfo.RenderHit {
		t.Errorf("CacheInfo = %+v, want no hits on refresh", result.CacheInfo)
	}
	if hits, _ := mc.Stats(); hits != 0 {
		t.Errorf("cache hits = %d, want 0", hits)
	}
}

func TestExecuteErrors(t *testing.T) {
	tests := []struct {
		name     string
		opts     Options
		code     apperrors.Code
		sentinel error
	}{
		{
			name:     "redefinition",
			opts:     Options{Source: "a = 1\na = 2\n"},
			code:     apperrors.ErrCodeDuplicateDefinition,
			sentinel: depgraph.ErrDuplicateDefinition,
		},
		{
			name:     "call of call",
			opts:     Options{Source: "(f())()\n"},
			code:     apperrors.ErrCodeUnsupportedConstruct,
			sentinel: depgraph.ErrUnsupportedConstruct,
		},
		{
			name: "syntax",
			opts: Options{Source: "a = = 1\n"},
			code: apperrors.ErrCodeInvalidSyntax,
		},
		{
			name: "invalid format",
			opts: Options{Source: "a = 1", Formats: []string{"bmp"}},
			code: apperrors.ErrCodeInvalidFormat,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRunner(nil, nil, quietLogger())
			_, err := r.Execute(context.Background(), tt.opts)
			if err == nil {
				t.Fatal("expected error")
			}
			if !apperrors.Is(err, tt.code) {
				t.Errorf("code = %s, want %s (%v)", apperrors.GetCode(err), tt.code, err)
			}
			if tt.sentinel != nil && !errors.Is(err, tt.sentinel) {
				t.Errorf("errors.Is(%v, %v) = false", err, tt.sentinel)
			}
		})
	}
}

func TestExecuteCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewRunner(nil, nil, quietLogger())
	_, err := r.Execute(ctx, Options{Source: sample})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	mu     sync.Mutex
	events []string
}

func (h *recordingHooks) record(e string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, e)
}

func (h *recordingHooks) OnParseStart(context.Context, string, string) { h.record("parse") }
func (h *recordingHooks) OnBuildComplete(_ context.Context, _, _ int, _ time.Duration, err error) {
	if err != nil {
		h.record("build-error")
		return
	}
	h.record("build")
}
func (h *recordingHooks) OnLayoutStart(context.Context, int)      { h.record("layout") }
func (h *recordingHooks) OnRenderStart(context.Context, []string) { h.record("render") }

func TestExecuteHooks(t *testing.T) {
	t.Cleanup(observability.Reset)
	h := &recordingHooks{}
	observability.SetPipelineHooks(h)

	r := NewRunner(nil, nil, quietLogger())
	if _, err := r.Execute(context.Background(), Options{Source: sample}); err != nil {
		t.Fatal(err)
	}
	if got := strings.Join(h.events, ","); got != "parse,build,layout,render" {
		t.Errorf("events = %s", got)
	}

	h.events = nil
	if _, err := r.Execute(context.Background(), Options{Source: "a = 1\na = 2\n"}); err == nil {
		t.Fatal("expected error")
	}
	if got := strings.Join(h.events, ","); got != "parse,build-error" {
		t.Errorf("events on error = %s", got)
	}
}

func TestRenderRaster(t *testing.T) {
	if !render.Available() {
		t.Skip("rsvg-convert not installed")
	}
	r := NewRunner(nil, nil, quietLogger())
	result, err := r.Execute(context.Background(), Options{
		Source:  sample,
		Formats: []string{FormatPNG, FormatPDF},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !bytes.HasPrefix(result.Artifacts[FormatPNG], []byte("\x89PNG")) {
		t.Error("png artifact lacks PNG signature")
	}
	if !bytes.HasPrefix(result.Artifacts[FormatPDF], []byte("%PDF")) {
		t.Error("pdf artifact lacks PDF header")
	}
}
