package scroll

import (
	"io"
	"math"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/jverhoef/cardrail/pkg/card"
	"github.com/jverhoef/cardrail/pkg/layout"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func wallCards() []card.Card {
	return []card.Card{
		{ID: "intro", Kind: card.KindLead, Size: card.Size2x2},
		{ID: "d1", Kind: card.KindBody, Size: card.Size1x1, Category: "design", SortKey: 1},
		{ID: "d2", Kind: card.KindBody, Size: card.Size1x1, Category: "design", SortKey: 2},
		{ID: "d3", Kind: card.KindBody, Size: card.Size2x1, Category: "design", SortKey: 3},
		{ID: "c1", Kind: card.KindBody, Size: card.Size2x2, Category: "code", SortKey: 1},
		{ID: "p1", Kind: card.KindBody, Size: card.Size1x2, Category: "photo", SortKey: 1},
		{ID: "p2", Kind: card.KindBody, Size: card.Size1x1, Category: "photo", SortKey: 2},
		{ID: "outro", Kind: card.KindTrail, Size: card.Size2x2},
	}
}

func wallSpy(t *testing.T, viewport float64) (*Spy, *layout.Layout) {
	t.Helper()
	l := layout.Compute(wallCards(), viewport)
	return NewSpy(l, DefaultPhases, quietLogger()), l
}

func TestActiveCategoryBeforeFirstAnchor(t *testing.T) {
	spy, _ := wallSpy(t, 1920)
	if got := spy.ActiveCategory(0); got != CategoryAll {
		t.Errorf("ActiveCategory(0) = %q, want %q", got, CategoryAll)
	}
}

func TestActiveCategoryByTranslation(t *testing.T) {
	spy, l := wallSpy(t, 1920)

	// Translate so each anchor sits exactly under the screen center; the
	// left-edge-crossing rule picks that category.
	for _, a := range l.Anchors {
		tx := l.ViewportWidth/2 - a.CenterX
		if got := spy.ActiveCategory(tx); got != a.Category {
			t.Errorf("centered on %q anchor, ActiveCategory = %q", a.Category, got)
		}
	}
}

func TestActiveCategoryPicksLastCrossed(t *testing.T) {
	spy, l := wallSpy(t, 1920)

	// Far past the end, every anchor has crossed: the last category wins.
	if got := spy.ActiveCategory(-l.ContainerWidth); got != "photo" {
		t.Errorf("ActiveCategory(end) = %q, want photo", got)
	}
}

func TestJumpToRoundTrip(t *testing.T) {
	spy, l := wallSpy(t, 1920)
	tr := NewTransform(DefaultPhases, l.ContainerWidth, l.ViewportWidth)

	for _, a := range l.Anchors {
		jump, ok := spy.JumpTo(a.Category, 10000)
		if !ok {
			t.Fatalf("JumpTo(%q) unexpectedly refused", a.Category)
		}

		// Feed the progress back through the transform and detector.
		state := tr.At(jump.Progress)
		got := spy.ActiveCategory(state.TranslateX)
		if got != a.Category {
			// One-card-width tolerance: accept if the detected anchor is
			// within a card width of the target.
			anchor, _ := l.AnchorFor(a.Category)
			detected, _ := l.AnchorFor(got)
			if math.Abs(detected.Left-anchor.Left) > l.Config.ColumnWidth+l.Config.Gap {
				t.Errorf("round trip for %q detected %q (tx=%g)", a.Category, got, state.TranslateX)
			}
		}

		if math.Abs(state.TranslateX-jump.TranslateX) > 1e-6 {
			t.Errorf("transform at jump progress: tx=%g, want %g", state.TranslateX, jump.TranslateX)
		}
	}
}

func TestJumpToAll(t *testing.T) {
	spy, _ := wallSpy(t, 1920)
	jump, ok := spy.JumpTo(CategoryAll, 10000)
	if !ok {
		t.Fatal("JumpTo(all) must always succeed")
	}
	if jump.ScrollTop != 0 || jump.Progress != 0 {
		t.Errorf("JumpTo(all) = %+v, want zero target", jump)
	}
}

func TestJumpToMissingCategory(t *testing.T) {
	spy, _ := wallSpy(t, 1920)
	if _, ok := spy.JumpTo("sculpture", 10000); ok {
		t.Error("JumpTo for a missing category must be a no-op")
	}
}

func TestJumpToNoOverflow(t *testing.T) {
	// Lead and trail only: the wall fits ultra-wide viewports, maxScroll is
	// zero, and navigation has nowhere to go.
	cards := []card.Card{
		{ID: "intro", Kind: card.KindLead, Size: card.Size2x2},
		{ID: "outro", Kind: card.KindTrail, Size: card.Size2x2},
	}
	l := layout.Compute(cards, 10000)
	if ms := MaxScroll(l.ContainerWidth, l.ViewportWidth); ms != 0 {
		t.Fatalf("maxScroll = %g, want 0 for lead+trail on a wide viewport", ms)
	}

	spy := NewSpy(l, DefaultPhases, quietLogger())
	if _, ok := spy.JumpTo("design", 10000); ok {
		t.Error("JumpTo must be a no-op when there is nothing to scroll")
	}
}

func TestJumpProgressWithinHorizontalPhase(t *testing.T) {
	spy, _ := wallSpy(t, 1280)
	jump, ok := spy.JumpTo("photo", 10000)
	if !ok {
		t.Fatal("JumpTo(photo) refused")
	}
	if jump.Progress < DefaultPhases.IntroScaleEnd || jump.Progress > DefaultPhases.OutroScaleStart {
		t.Errorf("jump progress %g outside Horizontal phase [%g, %g]",
			jump.Progress, DefaultPhases.IntroScaleEnd, DefaultPhases.OutroScaleStart)
	}
	if jump.ScrollTop != jump.Progress*10000 {
		t.Errorf("ScrollTop = %g, want progress × height = %g", jump.ScrollTop, jump.Progress*10000)
	}
}

func TestSpyCategories(t *testing.T) {
	spy, _ := wallSpy(t, 1920)
	got := spy.Categories()
	want := []string{CategoryAll, "design", "code", "photo"}
	if len(got) != len(want) {
		t.Fatalf("Categories() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Categories()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
