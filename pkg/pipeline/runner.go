package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/spanviz/pkg/cache"
	"github.com/matzehuels/spanviz/pkg/httputil"
	"github.com/matzehuels/spanviz/pkg/observability"
	"github.com/matzehuels/spanviz/pkg/render/scene"
	"github.com/matzehuels/spanviz/pkg/trace"
	"github.com/matzehuels/spanviz/pkg/trace/tree"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server can use this to avoid duplicating caching logic.
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

// Execute runs the complete fetch → build → scene → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		RunID:     uuid.NewString(),
		Artifacts: make(map[string][]byte),
	}
	r.Logger.Debug("pipeline run", "id", result.RunID, "source", opts.Source)

	// Stage 1: Fetch
	fetchStart := time.Now()
	observability.Pipeline().OnFetchStart(ctx, opts.Source)
	data, fetchHit, err := r.FetchWithCacheInfo(ctx, opts)
	observability.Pipeline().OnFetchComplete(ctx, opts.Source, len(data), time.Since(fetchStart), err)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	result.TraceHash = cache.Hash(data)
	result.Stats.FetchTime = time.Since(fetchStart)
	result.CacheInfo.FetchHit = fetchHit

	r.Logger.Info("fetched trace",
		"source", opts.Source,
		"bytes", len(data),
		"duration", result.Stats.FetchTime)

	// Stage 2: Build (never cached - validation must run on every input)
	buildStart := time.Now()
	observability.Pipeline().OnBuildStart(ctx, opts.Source)
	idx, root, err := BuildTrace(data)
	buildTime := time.Since(buildStart)
	if err != nil {
		observability.Pipeline().OnBuildComplete(ctx, opts.Source, 0, buildTime, err)
		return nil, fmt.Errorf("build: %w", err)
	}
	observability.Pipeline().OnBuildComplete(ctx, opts.Source, idx.Len(), buildTime, nil)
	result.Index = idx
	result.Tree = root
	result.Stats.BuildTime = buildTime
	result.Stats.SpanCount = idx.Len()
	result.Stats.LeafCount = len(root.Leaves())

	r.Logger.Info("built tree",
		"spans", result.Stats.SpanCount,
		"leaves", result.Stats.LeafCount,
		"duration", result.Stats.BuildTime)

	// Stage 3: Scene
	sceneStart := time.Now()
	observability.Pipeline().OnSceneStart(ctx, result.Stats.LeafCount)
	sc, sceneHit, err := r.GenerateSceneWithCacheInfo(ctx, result.TraceHash, root, opts)
	observability.Pipeline().OnSceneComplete(ctx, time.Since(sceneStart), err)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	result.Scene = sc
	result.Stats.SceneTime = time.Since(sceneStart)
	result.CacheInfo.SceneHit = sceneHit

	r.Logger.Info("computed scene",
		"rects", len(sc.Rects),
		"segments", len(sc.Segments),
		"duration", result.Stats.SceneTime)

	// Stage 4: Render
	renderStart := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, sc, root, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(renderStart), err)
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

// FetchWithCacheInfo loads the trace payload with caching and returns cache hit info.
//
// Only remote sources are cached; local files are read fresh so edits
// show up immediately.
func (r *Runner) FetchWithCacheInfo(ctx context.Context, opts Options) ([]byte, bool, error) {
	if err := opts.ValidateForFetch(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	if !httputil.IsURL(opts.Source) {
		data, err := Fetch(ctx, opts)
		return data, false, err
	}

	cacheKey := r.Keyer.TraceKey(opts.Source)

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "trace")
			return data, true, nil // Cache hit
		}
		observability.Cache().OnCacheMiss(ctx, "trace")
	}

	// Fetch
	data, err := Fetch(ctx, opts)
	if err != nil {
		return nil, false, err
	}

	// Cache the result
	if !opts.Refresh {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLTrace)
		observability.Cache().OnCacheSet(ctx, "trace", len(data))
	}

	return data, false, nil // Cache miss
}

// Fetch is a convenience wrapper that calls FetchWithCacheInfo and discards the cache hit info.
func (r *Runner) Fetch(ctx context.Context, opts Options) ([]byte, error) {
	data, _, err := r.FetchWithCacheInfo(ctx, opts)
	return data, err
}

// GenerateSceneWithCacheInfo computes the scene with caching and returns cache hit info.
func (r *Runner) GenerateSceneWithCacheInfo(ctx context.Context, traceHash string, root *tree.Node, opts Options) (scene.Scene, bool, error) {
	opts.SetSceneDefaults()
	r.applyLogger(&opts)

	cacheKey := r.Keyer.SceneKey(traceHash, opts.SceneKeyOpts())

	// Try cache first
	if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
		cached, err := scene.UnmarshalScene(data)
		if err == nil {
			observability.Cache().OnCacheHit(ctx, "scene")
			return cached, true, nil // Cache hit
		}
		// If deserialization fails, fall through to recompute
	}
	observability.Cache().OnCacheMiss(ctx, "scene")

	// Compute scene
	sc := GenerateScene(root, opts)

	// Cache the result
	if data, err := scene.MarshalScene(sc); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLScene)
		observability.Cache().OnCacheSet(ctx, "scene", len(data))
	}

	return sc, false, nil // Cache miss
}

// GenerateScene is a convenience wrapper that calls GenerateSceneWithCacheInfo and discards the cache hit info.
func (r *Runner) GenerateScene(ctx context.Context, traceHash string, root *tree.Node, opts Options) (scene.Scene, error) {
	sc, _, err := r.GenerateSceneWithCacheInfo(ctx, traceHash, root, opts)
	return sc, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, sc scene.Scene, root *tree.Node, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	// Compute cache key from scene data
	sceneData, err := scene.MarshalScene(sc)
	if err != nil {
		return nil, false, fmt.Errorf("serialize scene for cache key: %w", err)
	}
	cacheKeyHash := cache.Hash(sceneData)

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(cacheKeyHash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "artifact")
			artifacts[format] = data
		} else {
			observability.Cache().OnCacheMiss(ctx, "artifact")
			allCached = false
			break
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		return artifacts, true, nil // All artifacts from cache
	}

	// Render all formats
	rendered, err := RenderArtifacts(sc, root, opts)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(cacheKeyHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	return rendered, false, nil // Cache miss
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, sc scene.Scene, root *tree.Node, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, sc, root, opts)
	return artifacts, err
}

// Build decodes and validates a trace, returning the span index and
// composition tree. Exposed on the Runner for symmetry with the other
// stages; it never touches the cache.
func (r *Runner) Build(_ context.Context, data []byte) (*trace.Index, *tree.Node, error) {
	return BuildTrace(data)
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
