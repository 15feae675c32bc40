package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/glasspiral/glasspiral/pkg/cache"
	"github.com/glasspiral/glasspiral/pkg/errors"
	"github.com/glasspiral/glasspiral/pkg/observability"
	"github.com/glasspiral/glasspiral/pkg/scene"
	"github.com/glasspiral/glasspiral/pkg/trace"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
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

// Execute runs the complete parse → place → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid options")
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Parse
	parseStart := time.Now()
	source := opts.TracePath
	if source == "" {
		source = "text"
	}
	observability.Pipeline().OnParseStart(ctx, source)
	steps, text, err := ParseTrace(opts)
	observability.Pipeline().OnParseComplete(ctx, source, len(steps), time.Since(parseStart), err)
	if err != nil {
		return nil, err
	}
	result.Steps = steps
	result.TraceHash = cache.Hash([]byte(text))
	result.Stats.ParseTime = time.Since(parseStart)
	result.Stats.StepCount = len(steps)

	r.Logger.Info("parsed trace",
		"steps", len(steps),
		"duration", result.Stats.ParseTime)

	// Stage 2: Place
	placeStart := time.Now()
	observability.Pipeline().OnPlaceStart(ctx, len(steps))
	sc, sceneHit, err := r.PlaceWithCacheInfo(ctx, steps, result.TraceHash, opts)
	observability.Pipeline().OnPlaceComplete(ctx, len(steps), time.Since(placeStart), err)
	if err != nil {
		return nil, err
	}
	result.Scene = sc
	result.Stats.PlaceTime = time.Since(placeStart)
	result.CacheInfo.SceneHit = sceneHit

	r.Logger.Info("placed scene",
		"buildings", len(sc.Buildings),
		"seed", sc.Seed,
		"duration", result.Stats.PlaceTime)

	// Stage 3: Render
	renderStart := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, steps, sc, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(renderStart), err)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Parse reads and splits the trace without caching. Parsing is a linear
// string split, so a cache layer would cost more than it saves.
func (r *Runner) Parse(_ context.Context, opts Options) (trace.Trace, error) {
	if err := opts.ValidateForParse(); err != nil {
		return nil, err
	}
	steps, _, err := ParseTrace(opts)
	return steps, err
}

// PlaceWithCacheInfo builds the scene with caching and returns cache hit info.
// traceHash must be the content hash of the raw trace text.
func (r *Runner) PlaceWithCacheInfo(ctx context.Context, steps trace.Trace, traceHash string, opts Options) (scene.Scene, bool, error) {
	opts.SetPlaceDefaults()
	r.applyLogger(&opts)

	cacheKey := r.Keyer.SceneKey(traceHash, opts.SceneKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if cached, err := scene.UnmarshalScene(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "scene")
				return cached, true, nil
			}
			// Corrupt entry, fall through to recompute.
		}
		observability.Cache().OnCacheMiss(ctx, "scene")
	}

	sc := PlaceScene(steps, opts)

	if data, err := scene.MarshalScene(sc); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLScene)
		observability.Cache().OnCacheSet(ctx, "scene", len(data))
	}

	return sc, false, nil
}

// Place is a convenience wrapper that calls PlaceWithCacheInfo and discards the cache hit info.
func (r *Runner) Place(ctx context.Context, steps trace.Trace, traceHash string, opts Options) (scene.Scene, error) {
	sc, _, err := r.PlaceWithCacheInfo(ctx, steps, traceHash, opts)
	return sc, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, steps trace.Trace, sc scene.Scene, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	sceneData, err := scene.MarshalScene(sc)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "serialize scene for cache key")
	}
	sceneHash := cache.Hash(sceneData)

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(sceneHash, opts.ArtifactKeyOpts(format))
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
		return artifacts, true, nil
	}

	// Render all formats
	rendered, err := RenderScene(steps, sc, opts)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(sceneHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, steps trace.Trace, sc scene.Scene, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, steps, sc, opts)
	return artifacts, err
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
