package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/panelview/pkg/cache"
	"github.com/matzehuels/panelview/pkg/errors"
	"github.com/matzehuels/panelview/pkg/observability"
	"github.com/matzehuels/panelview/pkg/preview/layout"
	"github.com/matzehuels/panelview/pkg/state"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL is the expiry of stored artifacts. Zero means cache.TTLArtifact.
	TTL time.Duration
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
		TTL:    cache.TTLArtifact,
	}
}

// Execute runs the complete decode → layout → render pipeline with caching.
//
// A payload that cannot be decoded fails with INVALID_PAYLOAD wrapping the
// *state.DecodeError. In strict mode a non-positive panel size fails with
// INVALID_DIMENSIONS.
func (r *Runner) Execute(ctx context.Context, payload []byte, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{}
	result.Stats.PayloadSize = len(payload)

	// Stage 1: Decode
	decodeStart := time.Now()
	cfg, err := r.Decode(ctx, payload, opts)
	if err != nil {
		return nil, err
	}
	result.Config = cfg
	result.Stats.DecodeTime = time.Since(decodeStart)
	result.Stats.HoleCount = len(cfg.Holes)

	if canonical, err := state.Encode(cfg); err == nil {
		result.StateHash = cache.Hash(canonical)
	}

	opts.Logger.Debug("decoded state",
		"holes", len(cfg.Holes),
		"zoom", cfg.ZoomMode,
		"duration", result.Stats.DecodeTime)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 2: Layout
	layoutStart := time.Now()
	l := r.Layout(ctx, cfg, opts)
	result.Layout = l
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.ClampedCount = l.ClampedCount()

	opts.Logger.Debug("computed layout",
		"scale", l.Frame.Scale,
		"clamped", result.Stats.ClampedCount,
		"duration", result.Stats.LayoutTime)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, hits, err := r.RenderWithCacheInfo(ctx, result.StateHash, l, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.Hits = hits
	result.CacheInfo.RenderHit = len(hits) == len(opts.Formats)

	opts.Logger.Info("rendered preview",
		"formats", opts.Formats,
		"holes", result.Stats.HoleCount,
		"cached", len(hits),
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Decode parses payload and, in strict mode, validates the panel size.
func (r *Runner) Decode(ctx context.Context, payload []byte, opts Options) (state.Config, error) {
	hooks := observability.Pipeline()
	hooks.OnDecodeStart(ctx, len(payload))
	start := time.Now()

	cfg, err := state.Decode(payload)
	if err != nil {
		hooks.OnDecodeComplete(ctx, 0, time.Since(start), err)
		return state.Config{}, errors.Wrap(errors.ErrCodeInvalidPayload, err, "decode state")
	}
	if opts.Strict {
		if err := cfg.Validate(); err != nil {
			hooks.OnDecodeComplete(ctx, len(cfg.Holes), time.Since(start), err)
			return state.Config{}, err
		}
	}
	hooks.OnDecodeComplete(ctx, len(cfg.Holes), time.Since(start), nil)
	return cfg, nil
}

// Layout resolves the geometry for cfg. It never fails.
func (r *Runner) Layout(ctx context.Context, cfg state.Config, opts Options) layout.Layout {
	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, len(cfg.Holes))
	start := time.Now()

	l := layout.Build(cfg, opts.LayoutOptions()...)

	hooks.OnLayoutComplete(ctx, l.ClampedCount(), time.Since(start))
	return l
}

// RenderWithCacheInfo renders every requested format, serving what it can
// from the cache. It returns the formats that were cache hits. An empty
// stateHash disables caching.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, stateHash string, l layout.Layout, opts Options) (map[string][]byte, []string, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, nil, err
	}

	hooks := observability.Pipeline()
	cacheHooks := observability.Cache()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	artifacts := make(map[string][]byte, len(opts.Formats))
	var hits []string

	for _, format := range opts.Formats {
		key := ""
		if stateHash != "" {
			key = r.Keyer.ArtifactKey(stateHash, opts.ArtifactKeyOpts(format))
		}

		if key != "" && !opts.Refresh {
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil {
				opts.Logger.Warn("cache read failed", "format", format, "err", err)
			}
			if err == nil && hit {
				cacheHooks.OnCacheHit(ctx, format)
				artifacts[format] = data
				hits = append(hits, format)
				continue
			}
			cacheHooks.OnCacheMiss(ctx, format)
		}

		data, err := RenderFormat(ctx, l, format, opts)
		if err != nil {
			hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
			return nil, nil, err
		}
		artifacts[format] = data

		if key != "" {
			if err := r.Cache.Set(ctx, key, data, r.ttl()); err != nil {
				opts.Logger.Warn("cache write failed", "format", format, "err", err)
			} else {
				cacheHooks.OnCacheSet(ctx, format, len(data))
			}
		}
	}

	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)
	return artifacts, hits, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) ttl() time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return cache.TTLArtifact
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
