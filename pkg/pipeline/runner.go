package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/exprflow/pkg/cache"
	"github.com/matzehuels/exprflow/pkg/graph"
	"github.com/matzehuels/exprflow/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
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

// Execute runs the complete parse → build → layout → render pipeline with
// caching. Stage errors are wrapped with %w, so errors.Is still matches the
// depgraph sentinels and apperrors.Is the error codes.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}
	layoutKey := r.Keyer.LayoutKey(cache.Hash([]byte(opts.Source)), opts.LayoutKeyOpts())

	doc, hit := r.cachedDocument(ctx, layoutKey, opts)
	if hit {
		g, err := graph.ToDepGraph(doc.Graph)
		if err != nil {
			return nil, fmt.Errorf("cached graph: %w", err)
		}
		result.Graph = g
		result.Layout = doc.Layout
		result.CacheInfo.LayoutHit = true
		r.Logger.Debug("layout from cache", "key", layoutKey)
	} else {
		var err error
		if doc, err = r.compute(ctx, opts, result); err != nil {
			return nil, err
		}
		if !opts.Refresh {
			if data, err := graph.MarshalDocument(doc); err == nil {
				r.cacheSet(ctx, "layout", layoutKey, data, cache.LayoutTTL)
			}
		}
	}
	result.Stats.NodeCount = result.Graph.Table.Len()
	result.Stats.EdgeCount = result.Graph.EdgeCount()
	result.Stats.FinalCount = result.Graph.Finals.Len()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, layoutKey, doc, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// compute runs parse, build and layout, filling in result as it goes.
func (r *Runner) compute(ctx context.Context, opts Options, result *Result) (graph.Document, error) {
	parseStart := time.Now()
	prog, err := Parse(ctx, opts)
	if err != nil {
		return graph.Document{}, fmt.Errorf("parse: %w", err)
	}
	result.Program = prog
	result.Stats.StmtCount = prog.Len()
	result.Stats.ParseTime = time.Since(parseStart)

	buildStart := time.Now()
	g, err := Build(ctx, prog)
	if err != nil {
		return graph.Document{}, fmt.Errorf("build: %w", err)
	}
	result.Graph = g
	result.Stats.BuildTime = time.Since(buildStart)

	r.Logger.Info("built dependency graph",
		"statements", prog.Len(),
		"nodes", g.Table.Len(),
		"edges", g.EdgeCount(),
		"finals", g.Finals.Len(),
		"duration", result.Stats.ParseTime+result.Stats.BuildTime)

	layoutStart := time.Now()
	l, err := ComputeLayout(ctx, g, opts.Layout)
	if err != nil {
		return graph.Document{}, fmt.Errorf("layout: %w", err)
	}
	result.Layout = l
	result.Stats.LayoutTime = time.Since(layoutStart)

	r.Logger.Info("computed layout",
		"nodes", len(l.Nodes),
		"edges", len(l.Edges),
		"height", l.Height,
		"duration", result.Stats.LayoutTime)

	return graph.NewDocument(opts.Language, g, l), nil
}

func (r *Runner) cachedDocument(ctx context.Context, key string, opts Options) (graph.Document, bool) {
	if opts.Refresh {
		return graph.Document{}, false
	}
	data, ok := r.cacheGet(ctx, "layout", key)
	if !ok {
		return graph.Document{}, false
	}
	doc, err := graph.UnmarshalDocument(data)
	if err != nil {
		// Stale or corrupt entry: recompute.
		r.Logger.Debug("discarding cached layout", "key", key, "error", err)
		return graph.Document{}, false
	}
	return doc, true
}

// RenderWithCacheInfo renders every format of opts, reusing cached
// artifacts of the layout identified by layoutKey, and reports whether all
// of them came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, layoutKey string, doc graph.Document, opts Options) (map[string][]byte, bool, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string

	for _, format := range opts.Formats {
		if !opts.Refresh {
			key := r.Keyer.ArtifactKey(layoutKey, opts.ArtifactKeyOpts(format))
			if data, ok := r.cacheGet(ctx, "artifact", key); ok {
				artifacts[format] = data
				continue
			}
		}
		missing = append(missing, format)
	}

	if len(missing) == 0 {
		return artifacts, true, nil
	}

	renderOpts := opts
	renderOpts.Formats = missing
	rendered, err := Render(ctx, doc, renderOpts)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		artifacts[format] = data
		if !opts.Refresh {
			key := r.Keyer.ArtifactKey(layoutKey, opts.ArtifactKeyOpts(format))
			r.cacheSet(ctx, "artifact", key, data, cache.ArtifactTTL)
		}
	}

	return artifacts, false, nil
}

func (r *Runner) cacheGet(ctx context.Context, keyType, key string) ([]byte, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, keyType)
	return data, true
}

func (r *Runner) cacheSet(ctx context.Context, keyType, key string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Debug("cache write failed", "key", key, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
