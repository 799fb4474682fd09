package pipeline

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/quadart/pkg/cache"
	"github.com/matzehuels/quadart/pkg/errors"
	"github.com/matzehuels/quadart/pkg/history"
	"github.com/matzehuels/quadart/pkg/httputil"
	"github.com/matzehuels/quadart/pkg/imgio"
	"github.com/matzehuels/quadart/pkg/observability"
	"github.com/matzehuels/quadart/pkg/quadtree"
)

// Runner encapsulates pipeline execution with caching and history.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for its backends - it doesn't store
// pipeline results. Multiple goroutines can safely use the same Runner
// with different options.
type Runner struct {
	Cache   cache.Cache
	Keyer   cache.Keyer
	Logger  *log.Logger
	History history.Store     // nil disables history
	Fetcher *httputil.Fetcher // used by Load for URLs
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
		Cache:   c,
		Keyer:   keyer,
		Logger:  logger,
		Fetcher: httputil.NewFetcher(),
	}
}

// cachedArtifact is the cache entry for a rendered artifact.
type cachedArtifact struct {
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Leaves    int    `json:"leaves"`
	MaxDepth  int    `json:"max_depth"`
	Truncated bool   `json:"truncated,omitempty"`
	Artifact  []byte `json:"artifact"`
}

// Execute runs the complete decode → decompose → render pipeline with
// caching, then records the run in history.
func (r *Runner) Execute(ctx context.Context, input []byte, opts Options) (*Result, error) {
	start := time.Now()
	r.applyLogger(&opts)
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	result := &Result{
		Format:      opts.Format,
		ContentType: ContentType(opts.Format),
		InputHash:   cache.Hash(input),
	}
	key := r.Keyer.ArtifactKey(result.InputHash, opts.ArtifactKeyOpts())

	if !opts.Refresh {
		if cached, ok := r.lookup(ctx, key); ok {
			result.Artifact = cached.Artifact
			result.Width, result.Height = cached.Width, cached.Height
			result.Leaves = cached.Leaves
			result.MaxDepth = cached.MaxDepth
			result.Truncated = cached.Truncated
			result.CacheHit = true
			result.Stats.TotalTime = time.Since(start)
			opts.Logger.Info("using cached artifact", "format", opts.Format, "leaves", result.Leaves)
			r.record(ctx, opts, result)
			return result, nil
		}
	}

	if err := r.run(ctx, input, opts, result); err != nil {
		return nil, err
	}
	result.Stats.TotalTime = time.Since(start)

	r.store(ctx, key, result)
	r.record(ctx, opts, result)
	return result, nil
}

func (r *Runner) run(ctx context.Context, input []byte, opts Options, result *Result) error {
	hooks := observability.Pipeline()

	// Stage 1: Decode
	hooks.OnDecodeStart(ctx, len(input))
	t := time.Now()
	src, err := Decode(input, opts.MaxSide)
	result.Stats.DecodeTime = time.Since(t)
	if err != nil {
		hooks.OnDecodeComplete(ctx, 0, 0, result.Stats.DecodeTime, err)
		return err
	}
	result.Width, result.Height = src.Width(), src.Height()
	hooks.OnDecodeComplete(ctx, result.Width, result.Height, result.Stats.DecodeTime, nil)

	// Stage 2: Decompose
	hooks.OnDecomposeStart(ctx, result.Width, result.Height)
	t = time.Now()
	dec, err := Decompose(ctx, src, opts, opts.Logger)
	result.Stats.DecomposeTime = time.Since(t)
	if err != nil {
		hooks.OnDecomposeComplete(ctx, 0, false, result.Stats.DecomposeTime, err)
		return err
	}
	result.Decomposition = dec
	result.Leaves = len(dec.Leaves)
	result.MaxDepth = dec.MaxDepth
	result.Truncated = dec.Truncated
	hooks.OnDecomposeComplete(ctx, result.Leaves, dec.Truncated, result.Stats.DecomposeTime, nil)

	opts.Logger.Info("decomposed image",
		"width", result.Width,
		"height", result.Height,
		"leaves", result.Leaves,
		"max_depth", result.MaxDepth,
		"duration", result.Stats.DecomposeTime)

	// Stage 3: Render
	hooks.OnRenderStart(ctx, opts.Format)
	t = time.Now()
	artifact, err := Render(dec, result.Width, result.Height, opts)
	result.Stats.RenderTime = time.Since(t)
	hooks.OnRenderComplete(ctx, opts.Format, len(artifact), result.Stats.RenderTime, err)
	if err != nil {
		return err
	}
	result.Artifact = artifact

	opts.Logger.Info("rendered output",
		"format", opts.Format,
		"bytes", len(artifact),
		"duration", result.Stats.RenderTime)
	return nil
}

// Inspect decodes and decomposes input without rendering, caching, or
// recording history.
func (r *Runner) Inspect(ctx context.Context, input []byte, opts Options) (*quadtree.Result, *imgio.Source, error) {
	r.applyLogger(&opts)
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return nil, nil, err
	}
	src, err := Decode(input, opts.MaxSide)
	if err != nil {
		return nil, nil, err
	}
	res, err := Decompose(ctx, src, opts, opts.Logger)
	if err != nil {
		return nil, nil, err
	}
	return res, src, nil
}

// Load reads input from a local path or, for http(s) URLs, downloads it
// through the source cache.
func (r *Runner) Load(ctx context.Context, input string) ([]byte, error) {
	if !errors.IsURL(input) {
		data, err := os.ReadFile(input)
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", input)
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidSource, err, "read %s", input)
		}
		return data, nil
	}

	key := r.Keyer.SourceKey(input)
	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, "source")
		return data, nil
	}
	observability.Cache().OnCacheMiss(ctx, "source")

	fetcher := r.Fetcher
	if fetcher == nil {
		fetcher = httputil.NewFetcher()
	}
	data, err := fetcher.Fetch(ctx, input)
	if err != nil {
		return nil, err
	}
	if err := r.Cache.Set(ctx, key, data, cache.SourceTTL); err != nil {
		r.Logger.Warn("cache source failed", "url", input, "error", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "source", len(data))
	}
	return data, nil
}

func (r *Runner) lookup(ctx context.Context, key string) (cachedArtifact, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache lookup failed", "error", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, "artifact")
		return cachedArtifact{}, false
	}
	var entry cachedArtifact
	if err := json.Unmarshal(data, &entry); err != nil || len(entry.Artifact) == 0 {
		observability.Cache().OnCacheMiss(ctx, "artifact")
		return cachedArtifact{}, false
	}
	observability.Cache().OnCacheHit(ctx, "artifact")
	return entry, true
}

func (r *Runner) store(ctx context.Context, key string, result *Result) {
	data, err := json.Marshal(cachedArtifact{
		Width:     result.Width,
		Height:    result.Height,
		Leaves:    result.Leaves,
		MaxDepth:  result.MaxDepth,
		Truncated: result.Truncated,
		Artifact:  result.Artifact,
	})
	if err != nil {
		return
	}
	err = cache.RetryWithBackoff(ctx, func() error {
		return r.Cache.Set(ctx, key, data, cache.ArtifactTTL)
	})
	if err != nil {
		r.Logger.Warn("cache store failed", "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, "artifact", len(data))
}

func (r *Runner) record(ctx context.Context, opts Options, result *Result) {
	if r.History == nil {
		return
	}
	cfg, _ := opts.DecomposeConfig()
	rec := history.NewRecord()
	rec.Source = opts.Source
	rec.InputHash = result.InputHash
	rec.Width, rec.Height = result.Width, result.Height
	rec.Format = result.Format
	rec.Config = cfg
	rec.Leaves = result.Leaves
	rec.Truncated = result.Truncated
	rec.CacheHit = result.CacheHit
	rec.Duration = result.Stats.TotalTime
	if err := r.History.Add(ctx, rec); err != nil {
		r.Logger.Warn("record history failed", "error", err)
	}
}

// Close releases resources held by the runner.
func (r *Runner) Close() error {
	var err error
	if r.Cache != nil {
		err = r.Cache.Close()
	}
	if r.History != nil {
		if herr := r.History.Close(); err == nil {
			err = herr
		}
	}
	return err
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
