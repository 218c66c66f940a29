package pipeline

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/jverhoef/cardrail/pkg/cache"
	"github.com/jverhoef/cardrail/pkg/content"
	"github.com/jverhoef/cardrail/pkg/errors"
)

func discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func sk(v float64) *float64 { return &v }

func portfolio() []content.Record {
	return []content.Record{
		{ID: "intro", Kind: "lead", Size: "2x2", Title: "Hello"},
		{ID: "p1", Kind: "body", Size: "1x1", Category: "design", SortKey: sk(1), ImageWidth: 800, ImageHeight: 400},
		{ID: "p2", Kind: "body", Size: "1x1", Category: "design", SortKey: sk(2)},
		{ID: "w1", Kind: "body", Size: "2x1", Category: "web"},
		{ID: "outro", Kind: "trail", Size: "2x2", Title: "Contact"},
	}
}

func testOptions() Options {
	return Options{
		Source:        content.NewStatic("portfolio", portfolio()),
		ViewportWidth: 1440,
		Logger:        discard(),
	}
}

func TestExecute_WallDefaults(t *testing.T) {
	r := NewRunner(cache.NewMemoryCache(), nil, discard())
	defer r.Close()

	res, err := r.Execute(context.Background(), testOptions())
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	if res.Stats.CardCount != 5 {
		t.Errorf("card count = %d, want 5", res.Stats.CardCount)
	}
	if res.Stats.CategoryCount != 2 {
		t.Errorf("category count = %d, want 2", res.Stats.CategoryCount)
	}
	if res.ContentHash == "" {
		t.Error("content hash should be set")
	}
	if res.Layout == nil || len(res.Layout.Positions) != 5 {
		t.Fatalf("layout positions = %v, want 5", res.Layout)
	}

	svg, ok := res.Artifacts[FormatSVG]
	if !ok {
		t.Fatal("default format should be svg")
	}
	if !strings.HasPrefix(string(svg), "<svg") {
		t.Error("svg artifact is not an SVG document")
	}
}

func TestExecute_CacheHitsOnSecondRun(t *testing.T) {
	r := NewRunner(cache.NewMemoryCache(), nil, discard())
	defer r.Close()

	ctx := context.Background()
	first, err := r.Execute(ctx, testOptions())
	if err != nil {
		t.Fatalf("first Execute() error: %v", err)
	}
	if first.CacheInfo.LoadHit || first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Errorf("first run should miss everywhere: %+v", first.CacheInfo)
	}

	second, err := r.Execute(ctx, testOptions())
	if err != nil {
		t.Fatalf("second Execute() error: %v", err)
	}
	if !second.CacheInfo.LoadHit || !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run should hit everywhere: %+v", second.CacheInfo)
	}
	if second.ContentHash != first.ContentHash {
		t.Error("content hash must be stable across runs")
	}
}

func TestExecute_RefreshBypassesLoadCache(t *testing.T) {
	r := NewRunner(cache.NewMemoryCache(), nil, discard())
	defer r.Close()

	ctx := context.Background()
	if _, err := r.Execute(ctx, testOptions()); err != nil {
		t.Fatal(err)
	}

	opts := testOptions()
	opts.Refresh = true
	res, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if res.CacheInfo.LoadHit {
		t.Error("refresh run must not hit the load cache")
	}
}

func TestExecute_SnapshotMidScroll(t *testing.T) {
	r := NewRunner(nil, nil, discard())

	opts := testOptions()
	opts.Progress = 0.5
	res, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}

	snap := res.Snapshot
	if snap.State.Progress != 0.5 {
		t.Errorf("snapshot progress = %g", snap.State.Progress)
	}
	if snap.State.ContentOpacity != 1 {
		t.Errorf("mid-scroll opacity = %g, want 1", snap.State.ContentOpacity)
	}
	if snap.ActiveCategory == "" {
		t.Error("mid-scroll should always have an active category")
	}
	if got := len(snap.Categories); got != 3 { // all + 2 categories
		t.Errorf("categories = %v, want 3 entries", snap.Categories)
	}
	if len(snap.Cards) != 5 {
		t.Fatalf("card views = %d, want 5", len(snap.Cards))
	}

	for _, v := range snap.Cards {
		switch v.CardID {
		case "p1":
			if v.Parallax.Inert() {
				t.Error("p1 has image dimensions, parallax should be live")
			}
			if !v.Parallax.Horizontal {
				t.Error("p1's wide image on a square card should pan horizontally")
			}
		case "p2":
			if !v.Parallax.Inert() {
				t.Error("p2 has no image dimensions, parallax must be inert")
			}
		case "intro":
			if v.Scale != 1 {
				t.Errorf("intro scale mid-horizontal = %g, want 1", v.Scale)
			}
		}
	}
}

func TestExecute_MapDOT(t *testing.T) {
	r := NewRunner(nil, nil, discard())

	opts := testOptions()
	opts.Viz = VizMap
	opts.Formats = []string{FormatDOT}
	res, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}

	dot := string(res.Artifacts[FormatDOT])
	if !strings.Contains(dot, "digraph wall") {
		t.Error("map artifact should be a DOT digraph")
	}
	if !strings.Contains(dot, `label="design"`) {
		t.Error("map artifact should cluster by category")
	}
}

func TestOptions_Validation(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Options)
		wantCode errors.Code
	}{
		{"no source or manifest", func(o *Options) { o.Source = nil }, errors.ErrCodeInvalidInput},
		{"bad viz", func(o *Options) { o.Viz = "tower" }, errors.ErrCodeInvalidFormat},
		{"png for wall", func(o *Options) { o.Formats = []string{FormatPNG} }, errors.ErrCodeInvalidFormat},
		{"dot for wall", func(o *Options) { o.Formats = []string{FormatDOT} }, errors.ErrCodeInvalidFormat},
		{"progress above 1", func(o *Options) { o.Progress = 1.5 }, errors.ErrCodeInvalidProgress},
		{"negative progress", func(o *Options) { o.Progress = -0.1 }, errors.ErrCodeInvalidProgress},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRunner(nil, nil, discard())
			opts := testOptions()
			tt.mutate(&opts)
			_, err := r.Execute(context.Background(), opts)
			if !errors.Is(err, tt.wantCode) {
				t.Fatalf("want %s, got %v", tt.wantCode, err)
			}
		})
	}
}

func TestValidateAndSetDefaults_Idempotent(t *testing.T) {
	opts := testOptions()
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	viz, formats := opts.Viz, opts.Formats
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if opts.Viz != viz || len(opts.Formats) != len(formats) {
		t.Error("second validation changed options")
	}
}
