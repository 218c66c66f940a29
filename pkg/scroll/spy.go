package scroll

import (
	"math"

	"github.com/charmbracelet/log"

	"github.com/jverhoef/cardrail/pkg/layout"
)

// CategoryAll is the sentinel active category before the first anchor has
// crossed the screen center.
const CategoryAll = "all"

// Jump is the navigation target for a category click. The host commits the
// scroll; the engine only computes where to go.
type Jump struct {
	Category   string  `json:"category"`
	Progress   float64 `json:"progress"`
	TranslateX float64 `json:"translate_x"`
	ScrollTop  float64 `json:"scroll_top"`
}

// Spy performs both directions of the scroll/category mapping: detection
// (current translation → active category) and navigation (category → target
// progress). It holds read-only derived data and is rebuilt with the layout.
type Spy struct {
	anchors   []layout.Anchor // canonical category order, ascending Left
	viewport  float64
	maxScroll float64
	phases    Phases
	logger    *log.Logger
}

// NewSpy builds a spy over a computed layout. A nil logger uses the default.
func NewSpy(l *layout.Layout, phases Phases, logger *log.Logger) *Spy {
	if logger == nil {
		logger = log.Default()
	}
	return &Spy{
		anchors:   l.Anchors,
		viewport:  l.ViewportWidth,
		maxScroll: MaxScroll(l.ContainerWidth, l.ViewportWidth),
		phases:    phases,
		logger:    logger,
	}
}

// ActiveCategory detects the category under the viewport's horizontal
// center at the given translation. It returns the last category (in
// canonical order) whose anchor's left edge is at or before the center,
// or CategoryAll when none has crossed yet. Runs on every scroll update:
// O(categories), no allocation.
func (s *Spy) ActiveCategory(translateX float64) string {
	centerContentX := s.viewport/2 - translateX

	active := CategoryAll
	for i := range s.anchors {
		if s.anchors[i].Left <= centerContentX {
			active = s.anchors[i].Category
		}
	}
	return active
}

// JumpTo computes the scroll target that centers a category's anchor card.
// scrollableHeight is the host's scrollable container height in px.
//
// Reverse navigation is a no-op (ok=false) when there is no overflow to
// scroll or the category has no anchor — stale navigation data must never
// crash, so both cases log a diagnostic and return ok=false.
func (s *Spy) JumpTo(category string, scrollableHeight float64) (Jump, bool) {
	if category == CategoryAll {
		return Jump{Category: CategoryAll, Progress: 0, TranslateX: 0, ScrollTop: 0}, true
	}

	if s.maxScroll == 0 || math.IsNaN(s.maxScroll) || math.IsInf(s.maxScroll, 0) {
		s.logger.Debug("jump skipped: nothing to scroll", "category", category, "max_scroll", s.maxScroll)
		return Jump{}, false
	}

	anchor, ok := s.anchorFor(category)
	if !ok {
		s.logger.Warn("jump skipped: no anchor for category", "category", category)
		return Jump{}, false
	}

	// Desired translation centers the anchor, clamped to the pannable range.
	tx := s.viewport/2 - anchor.CenterX
	if tx < s.maxScroll {
		tx = s.maxScroll
	}
	if tx > 0 {
		tx = 0
	}

	// Invert the Horizontal-phase linear map to recover progress.
	hStart := s.phases.IntroScaleEnd
	hEnd := s.phases.OutroScaleStart
	progress := hStart + math.Abs(tx/s.maxScroll)*(hEnd-hStart)

	return Jump{
		Category:   category,
		Progress:   progress,
		TranslateX: tx,
		ScrollTop:  progress * scrollableHeight,
	}, true
}

// Categories returns the canonical category order, CategoryAll first.
func (s *Spy) Categories() []string {
	out := make([]string, 0, len(s.anchors)+1)
	out = append(out, CategoryAll)
	for i := range s.anchors {
		out = append(out, s.anchors[i].Category)
	}
	return out
}

func (s *Spy) anchorFor(category string) (layout.Anchor, bool) {
	for i := range s.anchors {
		if s.anchors[i].Category == category {
			return s.anchors[i], true
		}
	}
	return layout.Anchor{}, false
}
