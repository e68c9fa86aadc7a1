package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/wordladder/pkg/cache"
	werrors "github.com/matzehuels/wordladder/pkg/errors"
	"github.com/matzehuels/wordladder/pkg/graph"
	"github.com/matzehuels/wordladder/pkg/observability"
	"github.com/matzehuels/wordladder/pkg/search"
	"github.com/matzehuels/wordladder/pkg/wordgraph"
)

// cacheKeyType labels edge-list cache events for observability hooks.
const cacheKeyType = "edges"

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

// Execute runs the complete load → search → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	g, hash, hit, err := r.loadGraph(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Graph = g
	result.WordsHash = hash
	result.CacheInfo.GraphHit = hit
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.WordCount = g.Len()
	result.Stats.EdgeCount = g.EdgeCount()

	r.Logger.Info("loaded graph",
		"words", g.Len(),
		"edges", g.EdgeCount(),
		"cached", hit,
		"duration", result.Stats.LoadTime)

	// Stage 2: Search
	searchStart := time.Now()
	eng := search.NewEngine(g, opts.EngineOptions())
	res, err := eng.FindWordPath(ctx, opts.From, opts.To)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	result.Search = res
	result.Snapshot = eng.Snapshot()
	result.Stats.SearchTime = time.Since(searchStart)

	r.Logger.Info("searched",
		"status", res.Status,
		"expanded", res.Expanded,
		"duration", result.Stats.SearchTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, err := Render(ctx, g, result.Snapshot, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LoadGraphWithCacheInfo builds the graph for opts.WordFile, serving it from
// the cache when the file content has been seen before. It reports whether
// the cache was hit.
func (r *Runner) LoadGraphWithCacheInfo(ctx context.Context, opts Options) (*wordgraph.Graph, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLoad(); err != nil {
		return nil, false, err
	}
	g, _, hit, err := r.loadGraph(ctx, opts)
	return g, hit, err
}

// LoadGraph is a convenience wrapper that calls LoadGraphWithCacheInfo and discards the cache hit info.
func (r *Runner) LoadGraph(ctx context.Context, opts Options) (*wordgraph.Graph, error) {
	g, _, err := r.LoadGraphWithCacheInfo(ctx, opts)
	return g, err
}

func (r *Runner) loadGraph(ctx context.Context, opts Options) (*wordgraph.Graph, string, bool, error) {
	words, err := os.ReadFile(opts.WordFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", false, werrors.Wrap(werrors.ErrCodeFileNotFound, err, "open %s", opts.WordFile)
		}
		return nil, "", false, fmt.Errorf("read %s: %w", opts.WordFile, err)
	}

	hash := cache.Hash(words)
	key := r.Keyer.EdgesKey(hash, cache.EdgesKeyOpts{})
	hooks := observability.Cache()

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil {
			r.Logger.Warn("cache read failed", "error", err)
		}
		if hit {
			g, err := graph.UnmarshalGraph(data)
			if err == nil {
				hooks.OnCacheHit(ctx, cacheKeyType)
				return g, hash, true, nil
			}
			// Stale or corrupt entry; rebuild and overwrite it
			r.Logger.Debug("discarding cached graph", "error", err)
		}
		hooks.OnCacheMiss(ctx, cacheKeyType)
	}

	g, err := Load(ctx, words, opts)
	if err != nil {
		return nil, "", false, err
	}

	if data, err := graph.MarshalGraph(g); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.TTLEdges); err != nil {
			r.Logger.Warn("cache write failed", "error", err)
		} else {
			hooks.OnCacheSet(ctx, cacheKeyType, len(data))
		}
	}

	return g, hash, false, nil
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
