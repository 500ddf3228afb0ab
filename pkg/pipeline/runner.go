package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/qchip/pkg/cache"
	"github.com/matzehuels/qchip/pkg/chip3d"
	"github.com/matzehuels/qchip/pkg/errors"
	"github.com/matzehuels/qchip/pkg/layout"
	"github.com/matzehuels/qchip/pkg/observability"
)

// Cache key types reported to observability hooks.
const (
	keyTypeLayout   = "layout"
	keyTypeArtifact = "artifact"
	keyTypeScene    = "scene"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
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

// Execute runs layout, then 2D rendering and 3D scene export for whichever
// formats were requested.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Layout
	layoutStart := time.Now()
	l, layoutHit, err := r.LayoutWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Layout = l
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.Sites = len(l.Qubits)
	result.Stats.Couplers = len(l.Couplers)
	result.Stats.Shapes = len(l.Shapes)
	result.CacheInfo.LayoutHit = layoutHit
	if data, err := layout.MarshalLayout(l); err == nil {
		result.LayoutHash = cache.Hash(data)
	}

	r.Logger.Info("computed layout",
		"sites", result.Stats.Sites,
		"couplers", result.Stats.Couplers,
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	flat, scene := SplitFormats(opts.Formats)

	// Stage 2: Render
	if len(flat) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		renderStart := time.Now()
		artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, l, opts)
		if err != nil {
			return nil, err
		}
		for f, data := range artifacts {
			result.Artifacts[f] = data
		}
		result.Stats.RenderTime = time.Since(renderStart)
		result.CacheInfo.RenderHit = renderHit

		r.Logger.Info("rendered outputs",
			"formats", flat,
			"cached", renderHit,
			"duration", result.Stats.RenderTime)
	}

	// Stage 3: Scene
	if len(scene) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		sceneStart := time.Now()
		artifacts, sceneHit, err := r.SceneWithCacheInfo(ctx, opts)
		if err != nil {
			return nil, err
		}
		for f, data := range artifacts {
			result.Artifacts[f] = data
		}
		result.Stats.SceneTime = time.Since(sceneStart)
		result.CacheInfo.SceneHit = sceneHit

		r.Logger.Info("exported scene",
			"formats", scene,
			"cached", sceneHit,
			"duration", result.Stats.SceneTime)
	}

	return result, nil
}

// =============================================================================
// Layout
// =============================================================================

// LayoutWithCacheInfo places the lattice with caching and returns cache hit info.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, opts Options) (layout.Layout, bool, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return layout.Layout{}, false, err
	}

	cfg := opts.ChipConfig()
	cfgHash, err := cache.HashJSON(cfg)
	if err != nil {
		return layout.Layout{}, false, errors.Wrap(errors.ErrCodeInternal, err, "hash chip config")
	}
	cacheKey := r.Keyer.LayoutKey(cfgHash, opts.LayoutKeyOpts())

	if !opts.Refresh {
		if data, ok := r.lookup(ctx, cacheKey, keyTypeLayout); ok {
			if cached, err := layout.UnmarshalLayout(data); err == nil {
				return cached, true, nil
			}
			// undecodable entry: recompute and overwrite
		}
	}

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, cfg.Lattice.Rows, cfg.Lattice.Cols)
	start := time.Now()
	l, err := GenerateLayout(opts)
	hooks.OnLayoutComplete(ctx, len(l.Qubits), len(l.Couplers), time.Since(start), err)
	if err != nil {
		return layout.Layout{}, false, err
	}

	if data, err := layout.MarshalLayout(l); err == nil {
		r.store(ctx, cacheKey, keyTypeLayout, data, cache.TTLLayout)
	}
	return l, false, nil
}

// Layout is a convenience wrapper that calls LayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) Layout(ctx context.Context, opts Options) (layout.Layout, error) {
	l, _, err := r.LayoutWithCacheInfo(ctx, opts)
	return l, err
}

// =============================================================================
// Render
// =============================================================================

// RenderWithCacheInfo generates 2D artifacts with caching and returns cache hit info.
// The hit flag is true only when every requested format came from cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l layout.Layout, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	layoutData, err := layout.MarshalLayout(l)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "serialize layout for cache key")
	}
	layoutHash := cache.Hash(layoutData)
	flat, _ := SplitFormats(opts.Formats)

	artifacts := make(map[string][]byte)
	if !opts.Refresh {
		for _, format := range flat {
			data, ok := r.lookup(ctx, r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format)), keyTypeArtifact)
			if !ok {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(flat) {
			return artifacts, true, nil
		}
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, flat)
	start := time.Now()
	rendered, err := Render(l, opts)
	hooks.OnRenderComplete(ctx, flat, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		r.store(ctx, r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format)), keyTypeArtifact, data, cache.TTLArtifact)
	}
	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, l layout.Layout, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, l, opts)
	return artifacts, err
}

// =============================================================================
// Scene
// =============================================================================

// SceneWithCacheInfo exports the 3D scene formats in opts.Formats with
// caching. The scene is only built when at least one format misses.
func (r *Runner) SceneWithCacheInfo(ctx context.Context, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	cfgHash, err := cache.HashJSON(opts.ChipConfig())
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "hash chip config")
	}
	_, formats := SplitFormats(opts.Formats)

	artifacts := make(map[string][]byte)
	if !opts.Refresh {
		for _, format := range formats {
			data, ok := r.lookup(ctx, r.Keyer.SceneKey(cfgHash, opts.SceneKeyOpts(format)), keyTypeScene)
			if !ok {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(formats) {
			return artifacts, true, nil
		}
	}

	s, err := r.Scene(ctx, opts)
	if err != nil {
		return nil, false, err
	}
	out, err := RenderScene(s, formats, opts.Name)
	if err != nil {
		return nil, false, err
	}
	for format, data := range out {
		r.store(ctx, r.Keyer.SceneKey(cfgHash, opts.SceneKeyOpts(format)), keyTypeScene, data, cache.TTLScene)
	}
	return out, false, nil
}

// Scene builds the 3D scene without caching. Used by callers that need the
// meshes themselves rather than serialized artifacts.
func (r *Runner) Scene(ctx context.Context, opts Options) (*chip3d.Scene, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	cfg := opts.ChipConfig()

	hooks := observability.Pipeline()
	hooks.OnSceneStart(ctx, cfg.Lattice.Rows, cfg.Lattice.Cols)
	start := time.Now()
	s, err := GenerateScene(opts)
	objects := 0
	if s != nil {
		objects = len(s.Objects)
	}
	hooks.OnSceneComplete(ctx, objects, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	st := s.Stats()
	r.Logger.Debug("built scene", "objects", st.Objects, "vertices", st.Vertices, "faces", st.Faces)
	return s, nil
}

// =============================================================================
// Helpers
// =============================================================================

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// lookup reads a cache entry, treating backend errors as misses.
func (r *Runner) lookup(ctx context.Context, key, keyType string) ([]byte, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Debug("cache read failed", "type", keyType, "error", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, keyType)
	return data, true
}

// store writes a cache entry. Failures are logged and otherwise ignored.
func (r *Runner) store(ctx context.Context, key, keyType string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Debug("cache write failed", "type", keyType, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}
