package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/algexeno/cistercian/pkg/cache"
	"github.com/algexeno/cistercian/pkg/expr"
	"github.com/algexeno/cistercian/pkg/glyph"
	"github.com/algexeno/cistercian/pkg/observability"
	"github.com/algexeno/cistercian/pkg/playback"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it so that rendered files are cached the same way.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
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

// Execute runs the complete build → flatten → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Build
	e, d, buildTime, err := r.Build(ctx, opts.Expression)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	result.Expression = e
	result.Text = e.String()
	result.Shape = d
	result.Stats.Depth = expr.Depth(e)
	result.Stats.NodeCount = glyph.Size(d)
	result.Stats.BuildTime = buildTime

	r.Logger.Debug("built shape tree",
		"expression", result.Text,
		"depth", result.Stats.Depth,
		"nodes", result.Stats.NodeCount,
		"duration", buildTime)

	// Stage 2: Flatten
	strokes, extent, flattenTime := r.Flatten(ctx, d, opts)
	result.Strokes = strokes
	result.Extent = extent
	result.StrokesHash = StrokesHash(strokes, extent)
	result.Stats.StrokeCount = len(strokes)
	result.Stats.Duration = playback.Duration(strokes)
	result.Stats.FlattenTime = flattenTime

	r.Logger.Debug("flattened strokes",
		"strokes", len(strokes),
		"extent", extent,
		"layout", opts.Layout,
		"duration", flattenTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, result, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"expression", result.Text,
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Build parses and builds one expression, reporting to the pipeline hooks.
func (r *Runner) Build(ctx context.Context, text string) (expr.Expr, glyph.Draw, time.Duration, error) {
	hooks := observability.Pipeline()
	hooks.OnBuildStart(ctx, text)

	start := time.Now()
	e, d, err := Build(text)
	elapsed := time.Since(start)

	nodes := 0
	if d != nil {
		nodes = glyph.Size(d)
	}
	hooks.OnBuildComplete(ctx, text, nodes, elapsed, err)
	return e, d, elapsed, err
}

// Flatten flattens a shape tree, reporting to the pipeline hooks.
func (r *Runner) Flatten(ctx context.Context, d glyph.Draw, opts Options) ([]glyph.Stroke, float64, time.Duration) {
	start := time.Now()
	strokes, extent := Flatten(d, opts)
	elapsed := time.Since(start)
	observability.Pipeline().OnFlatten(ctx, len(strokes), extent, elapsed)
	return strokes, extent, elapsed
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
// res must carry Strokes, Extent, StrokesHash and Text.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, res *Result, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	hash := res.StrokesHash
	if hash == "" {
		hash = StrokesHash(res.Strokes, res.Extent)
	}
	cacheHooks := observability.Cache()

	// Try to get all formats from cache
	allCached := !opts.Refresh
	artifacts := make(map[string][]byte)

	if allCached {
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format, res.Text))
			data, hit, err := r.Cache.Get(ctx, cacheKey)
			if err != nil || !hit {
				if err != nil {
					r.Logger.Warn("cache read failed", "format", format, "error", err)
				}
				cacheHooks.OnCacheMiss(ctx, "artifact")
				allCached = false
				break
			}
			cacheHooks.OnCacheHit(ctx, "artifact")
			artifacts[format] = data
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		return artifacts, true, nil // All artifacts from cache
	}

	// Render all formats
	pipelineHooks := observability.Pipeline()
	pipelineHooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	rendered, err := Render(res.Strokes, res.Extent, res.Text, opts)
	pipelineHooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format, res.Text))
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact); err != nil {
			r.Logger.Warn("cache write failed", "format", format, "error", err)
			continue
		}
		cacheHooks.OnCacheSet(ctx, "artifact", len(data))
	}

	return rendered, false, nil // Cache miss
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
