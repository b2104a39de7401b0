package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/crossflow/pkg/cache"
	"github.com/matzehuels/crossflow/pkg/crossflow"
	"github.com/matzehuels/crossflow/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
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

// Execute runs the complete build → export pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		Totals: crossflow.ComputeTotals(opts.Counts, opts.Config.Resolve().MaxWidth),
	}

	// Stage 1: Build
	buildStart := time.Now()
	opt, buildHit, err := r.BuildWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	result.Option = opt
	result.Stats.BuildTime = time.Since(buildStart)
	result.CacheInfo.BuildHit = buildHit
	if g := opt.Graph(); g != nil {
		result.Stats.NodeCount = len(g.Data)
		result.Stats.LinkCount = len(g.Links)
	}
	result.OptionHash, _ = cache.HashJSON(opt)

	r.Logger.Info("built option",
		"nodes", result.Stats.NodeCount,
		"links", result.Stats.LinkCount,
		"cached", buildHit,
		"duration", result.Stats.BuildTime)

	// Stage 2: Export
	exportStart := time.Now()
	artifacts, exportHit, err := r.ExportWithCacheInfo(ctx, opt, opts)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.ExportTime = time.Since(exportStart)
	result.CacheInfo.ExportHit = exportHit

	r.Logger.Info("exported option",
		"formats", opts.Formats,
		"cached", exportHit,
		"duration", result.Stats.ExportTime)

	return result, nil
}

// BuildWithCacheInfo builds the option with caching and returns cache hit info.
//
// Counts that cannot be hashed (NaN or infinite values are not valid JSON)
// bypass the cache and are built directly.
func (r *Runner) BuildWithCacheInfo(ctx context.Context, opts Options) (crossflow.Option, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForBuild(); err != nil {
		return crossflow.Option{}, false, err
	}

	cfg := opts.Config.WithDefaults()
	hooks := observability.Pipeline()

	cacheKey, keyErr := r.optionKey(opts.Counts, cfg)
	if keyErr != nil {
		opts.Logger.Debug("option not cacheable", "err", keyErr)
	}

	if keyErr == nil && !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached crossflow.Option
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, "option")
				return cached, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "option")
	}

	start := time.Now()
	hooks.OnBuildStart(ctx, cacheKey)
	opt := crossflow.Build(opts.Counts, cfg)
	g := opt.Graph()
	hooks.OnBuildComplete(ctx, cacheKey, len(g.Data), len(g.Links), time.Since(start), nil)

	if keyErr == nil {
		if data, err := json.Marshal(opt); err == nil {
			if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLOption); err == nil {
				observability.Cache().OnCacheSet(ctx, "option", len(data))
			}
		}
	}

	return opt, false, nil
}

// Build is a convenience wrapper that calls BuildWithCacheInfo and discards the cache hit info.
func (r *Runner) Build(ctx context.Context, opts Options) (crossflow.Option, error) {
	opt, _, err := r.BuildWithCacheInfo(ctx, opts)
	return opt, err
}

// ExportWithCacheInfo exports opt with caching and returns cache hit info.
// The hit is reported only when every requested format came from cache.
func (r *Runner) ExportWithCacheInfo(ctx context.Context, opt crossflow.Option, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForExport(); err != nil {
		return nil, false, err
	}

	optionHash, err := cache.HashJSON(opt)
	if err != nil {
		return nil, false, fmt.Errorf("hash option for cache key: %w", err)
	}
	artifactKey := func(format string) string {
		if format == FormatDOT && opts.DOTLabels {
			format += "+labels"
		}
		return r.Keyer.ArtifactKey(optionHash, format)
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	if !opts.Refresh {
		for _, format := range opts.Formats {
			data, hit, err := r.Cache.Get(ctx, artifactKey(format))
			if err != nil || !hit {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return artifacts, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	hooks := observability.Pipeline()
	start := time.Now()
	hooks.OnExportStart(ctx, opts.Formats)
	exported, err := Export(ctx, opt, opts)
	hooks.OnExportComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range exported {
		if err := r.Cache.Set(ctx, artifactKey(format), data, cache.TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}

	return exported, false, nil
}

// Export is a convenience wrapper that calls ExportWithCacheInfo and discards the cache hit info.
func (r *Runner) Export(ctx context.Context, opt crossflow.Option, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.ExportWithCacheInfo(ctx, opt, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) optionKey(c crossflow.Crossroad, cfg crossflow.Config) (string, error) {
	countsHash, err := cache.HashJSON(c)
	if err != nil {
		return "", err
	}
	configHash, err := cache.HashJSON(cfg)
	if err != nil {
		return "", err
	}
	return r.Keyer.OptionKey(countsHash, configHash), nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
