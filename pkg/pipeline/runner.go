package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/jverhoef/cardrail/pkg/cache"
	"github.com/jverhoef/cardrail/pkg/card"
	"github.com/jverhoef/cardrail/pkg/content"
	"github.com/jverhoef/cardrail/pkg/errors"
	"github.com/jverhoef/cardrail/pkg/layout"
	"github.com/jverhoef/cardrail/pkg/render/contentmap"
	"github.com/jverhoef/cardrail/pkg/render/wall"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
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
// If cache is nil, a NopCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNopCache()
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

// Execute runs the complete load → layout → snapshot → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Load
	loadStart := time.Now()
	records, loadHit, err := r.LoadWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Records = records
	result.Stats.LoadTime = time.Since(loadStart)
	result.CacheInfo.LoadHit = loadHit

	cards := content.Cards(records, opts.Logger)
	result.Stats.CardCount = len(cards)
	result.Stats.CategoryCount = len(card.Categories(cards))
	result.ContentHash = layout.ContentHash(cards)

	r.Logger.Info("loaded content",
		"cards", len(cards),
		"categories", result.Stats.CategoryCount,
		"source", opts.Source.ID(),
		"duration", result.Stats.LoadTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	l, layoutHit, err := r.ComputeLayoutWithCacheInfo(ctx, cards, opts)
	if err != nil {
		return nil, err
	}
	result.Layout = l
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"positions", len(l.Positions),
		"container_width", l.ContainerWidth,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Snapshot (pure math, never cached)
	if err := opts.ValidateForSnapshot(); err != nil {
		return nil, err
	}
	result.Snapshot = BuildSnapshot(records, cards, l, opts)

	// Stage 4: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, result, cards, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"viz", opts.Viz,
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LoadWithCacheInfo fetches records with caching and returns cache hit info.
func (r *Runner) LoadWithCacheInfo(ctx context.Context, opts Options) ([]content.Record, bool, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	cacheKey := r.Keyer.ContentKey(opts.Source.ID())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var records []content.Record
			if err := json.Unmarshal(data, &records); err == nil {
				return records, true, nil // Cache hit
			}
		}
	}

	records, err := opts.Source.List(ctx)
	if err != nil {
		return nil, false, err
	}

	if data, err := json.Marshal(records); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLContent)
	}

	return records, false, nil // Cache miss
}

// Load is a convenience wrapper that discards the cache hit info.
func (r *Runner) Load(ctx context.Context, opts Options) ([]content.Record, error) {
	records, _, err := r.LoadWithCacheInfo(ctx, opts)
	return records, err
}

// ComputeLayoutWithCacheInfo computes a layout with caching and returns
// cache hit info.
func (r *Runner) ComputeLayoutWithCacheInfo(ctx context.Context, cards []card.Card, opts Options) (*layout.Layout, bool, error) {
	opts.SetLayoutDefaults()

	contentHash := layout.ContentHash(cards)
	cacheKey := r.Keyer.LayoutKey(contentHash, opts.ViewportWidth)

	if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
		var cached layout.Layout
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, true, nil // Cache hit
		}
		// If deserialization fails, fall through to recompute
	}

	l := layout.Compute(cards, opts.ViewportWidth)

	if data, err := json.Marshal(l); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout)
	}

	return l, false, nil // Cache miss
}

// ComputeLayout is a convenience wrapper that discards the cache hit info.
func (r *Runner) ComputeLayout(ctx context.Context, cards []card.Card, opts Options) (*layout.Layout, error) {
	l, _, err := r.ComputeLayoutWithCacheInfo(ctx, cards, opts)
	return l, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit
// info. Wall artifacts key off the layout hash, map artifacts off the
// content hash — the map never depends on positions.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, res *Result, cards []card.Card, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	keyHash, err := r.renderKeyHash(res, opts)
	if err != nil {
		return nil, false, err
	}

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)
	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(keyHash, artifactFormat(opts, format))
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			artifacts[format] = data
		} else {
			allCached = false
			break
		}
	}
	if allCached && len(artifacts) == len(opts.Formats) {
		return artifacts, true, nil // All artifacts from cache
	}

	rendered, err := r.render(ctx, res, cards, opts)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(keyHash, artifactFormat(opts, format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
	}

	return rendered, false, nil // Cache miss
}

func (r *Runner) render(ctx context.Context, res *Result, cards []card.Card, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))

	if opts.IsMap() {
		dot := contentmap.ToDOT(res.Records, contentmap.Options{Detailed: opts.Detailed})
		for _, format := range opts.Formats {
			var data []byte
			var err error
			switch format {
			case FormatDOT:
				data = []byte(dot)
			case FormatSVG:
				data, err = contentmap.RenderSVG(ctx, dot)
			case FormatPNG:
				data, err = contentmap.RenderPNG(ctx, dot)
			case FormatJSON:
				data, err = json.MarshalIndent(res.Records, "", "  ")
			default:
				return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported map format: %s", format)
			}
			if err != nil {
				return nil, err
			}
			artifacts[format] = data
		}
		return artifacts, nil
	}

	svgOpts := buildWallOptions(res, cards, opts)
	for _, format := range opts.Formats {
		var data []byte
		var err error
		switch format {
		case FormatSVG:
			data = wall.RenderSVG(*res.Layout, svgOpts...)
		case FormatJSON:
			data, err = json.MarshalIndent(struct {
				Layout   *layout.Layout `json:"layout"`
				Snapshot Snapshot       `json:"snapshot"`
			}{res.Layout, res.Snapshot}, "", "  ")
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported wall format: %s", format)
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "render %s", format)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// renderKeyHash derives the artifact cache key hash for the current options.
func (r *Runner) renderKeyHash(res *Result, opts Options) (string, error) {
	if opts.IsMap() {
		return res.ContentHash, nil
	}
	data, err := json.Marshal(res.Layout)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "serialize layout for cache key")
	}
	return cache.Hash(data), nil
}

// artifactFormat qualifies a format with everything else that changes the
// artifact bytes, so distinct renders never collide in the cache.
func artifactFormat(opts Options, format string) string {
	return fmt.Sprintf("%s.%s.p%g.d%t.f%t", opts.Viz, format, opts.Progress, opts.Detailed, opts.ShowFrame)
}

// buildWallOptions builds wall SVG rendering options.
func buildWallOptions(res *Result, cards []card.Card, opts Options) []wall.SVGOption {
	titles := make(map[string]string, len(res.Records))
	for i, c := range cards {
		if i < len(res.Records) && res.Records[i].Title != "" {
			titles[c.ID] = res.Records[i].Title
		}
	}

	svgOpts := []wall.SVGOption{
		wall.WithCards(cards),
		wall.WithTitles(titles),
	}
	if opts.Progress > 0 {
		svgOpts = append(svgOpts,
			wall.WithState(res.Snapshot.State),
			wall.WithActiveCategory(res.Snapshot.ActiveCategory))
	}
	if opts.ShowFrame {
		svgOpts = append(svgOpts, wall.WithViewportFrame())
	}
	return svgOpts
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
