// Package pipeline provides the core load → layout → snapshot → render
// pipeline for cardrail.
//
// The CLI and the HTTP API both drive the same Runner, so caching behavior
// and defaults live here exactly once.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Load: fetch portfolio records from a content source (manifest file,
//     MongoDB collection, or an in-memory source) in sandwich order
//  2. Layout: pack the cards into the two-row wall for a viewport width
//  3. Snapshot: evaluate the scroll transform, scroll-spy, and parallax at
//     one progress value
//  4. Render: generate output artifacts (wall SVG, content-map SVG/PNG/DOT,
//     layout JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Manifest:      "portfolio.toml",
//	    ViewportWidth: 1440,
//	    Progress:      0.5,
//	    Formats:       []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/jverhoef/cardrail/pkg/content"
	"github.com/jverhoef/cardrail/pkg/errors"
	"github.com/jverhoef/cardrail/pkg/layout"
	"github.com/jverhoef/cardrail/pkg/scroll"
)

// Format constants for output artifacts.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// Visualization types.
const (
	// VizWall renders the laid-out card wall, optionally mid-scroll.
	VizWall = "wall"

	// VizMap renders the category overview diagram via Graphviz.
	VizMap = "map"
)

// DefaultViz is the default visualization type.
const DefaultViz = VizWall

// ValidFormats is the set of supported formats per visualization type.
// The wall has no rasterizer, so PNG is a map-only format; DOT is the
// map's intermediate representation and only meaningful there.
var ValidFormats = map[string]map[string]bool{
	VizWall: {FormatSVG: true, FormatJSON: true},
	VizMap:  {FormatSVG: true, FormatPNG: true, FormatDOT: true, FormatJSON: true},
}

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options
	Manifest string `json:"manifest,omitempty"`
	Refresh  bool   `json:"refresh,omitempty"`

	// Layout options
	ViewportWidth float64 `json:"viewport_width,omitempty"`

	// Snapshot options
	Progress     float64       `json:"progress,omitempty"`
	Phases       scroll.Phases `json:"phases,omitempty"`
	BookendScale float64       `json:"bookend_scale,omitempty"`

	// Render options
	Viz       string   `json:"viz,omitempty"`
	Formats   []string `json:"formats,omitempty"`
	Detailed  bool     `json:"detailed,omitempty"`
	ShowFrame bool     `json:"show_frame,omitempty"`

	// Runtime options (not serialized)
	Source content.Source `json:"-"`
	Logger *log.Logger    `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Records are the loaded portfolio records in sandwich order.
	Records []content.Record

	// ContentHash is the content hash of the converted cards.
	ContentHash string

	// Layout contains the computed wall layout.
	Layout *layout.Layout

	// Snapshot is the visual state at the requested progress.
	Snapshot Snapshot

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	CardCount     int
	CategoryCount int
	LoadTime      time.Duration
	LayoutTime    time.Duration
	RenderTime    time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LoadHit   bool // whether records came from cache
	LayoutHit bool // whether the layout came from cache
	RenderHit bool // whether all artifacts came from cache
}

// ValidateFormat checks that a format is valid for the visualization type.
func ValidateFormat(viz, format string) error {
	if !ValidFormats[viz][format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format %q for %s visualization", format, viz)
	}
	return nil
}

// ValidateViz checks that a visualization type is valid.
func ValidateViz(viz string) error {
	if _, ok := ValidFormats[viz]; !ok {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid viz: %q (must be one of: wall, map)", viz)
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. Idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	o.SetLayoutDefaults()
	o.SetSnapshotDefaults()
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks required fields for loading content.
func (o *Options) ValidateForLoad() error {
	if o.Source == nil && o.Manifest == "" {
		return errors.New(errors.ErrCodeInvalidInput, "manifest or source is required")
	}
	if o.Source == nil {
		o.Source = content.NewFileSource(o.Manifest)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetLayoutDefaults sets defaults for layout computation. An unset or
// invalid viewport width is left to the layout engine, which substitutes
// its own default.
func (o *Options) SetLayoutDefaults() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetSnapshotDefaults sets defaults for the snapshot stage.
func (o *Options) SetSnapshotDefaults() {
	if o.Phases == (scroll.Phases{}) {
		o.Phases = scroll.DefaultPhases
	}
	if o.BookendScale == 0 {
		o.BookendScale = scroll.DefaultBookendScale
	}
}

// ValidateForSnapshot validates snapshot options. Progress outside [0, 1]
// is an input error here; the transform itself clamps silently because a
// browser scroll handler must never fail.
func (o *Options) ValidateForSnapshot() error {
	o.SetSnapshotDefaults()
	if err := o.Phases.Validate(); err != nil {
		return err
	}
	if math.IsNaN(o.Progress) || o.Progress < 0 || o.Progress > 1 {
		return errors.New(errors.ErrCodeInvalidProgress,
			"progress must be in [0, 1], got %g", o.Progress)
	}
	return nil
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	if o.Viz == "" {
		o.Viz = DefaultViz
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if err := ValidateViz(o.Viz); err != nil {
		return err
	}
	for _, f := range o.Formats {
		if err := ValidateFormat(o.Viz, f); err != nil {
			return err
		}
	}
	return nil
}

// IsWall returns true if this is a wall visualization.
func (o *Options) IsWall() bool {
	return o.Viz == "" || o.Viz == VizWall
}

// IsMap returns true if this is a content-map visualization.
func (o *Options) IsMap() bool {
	return o.Viz == VizMap
}
