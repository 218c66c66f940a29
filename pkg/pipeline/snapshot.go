package pipeline

import (
	"github.com/jverhoef/cardrail/pkg/card"
	"github.com/jverhoef/cardrail/pkg/content"
	"github.com/jverhoef/cardrail/pkg/layout"
	"github.com/jverhoef/cardrail/pkg/parallax"
	"github.com/jverhoef/cardrail/pkg/scroll"
)

// Snapshot is the complete visual state of the wall at one progress value:
// the scroll transform output, the scroll-spy's active category, and the
// per-card view including parallax offsets. It is what a frontend would
// apply on a scroll tick, evaluated server-side.
type Snapshot struct {
	State          scroll.State `json:"state"`
	ActiveCategory string       `json:"active_category"`
	Categories     []string     `json:"categories"`
	Cards          []CardView   `json:"cards"`
}

// CardView is one card's resolved visual state within a snapshot.
type CardView struct {
	CardID   string          `json:"card_id"`
	Title    string          `json:"title,omitempty"`
	Position layout.Position `json:"position"`

	// Scale is 1 for body cards; bookends carry the intro/outro scale.
	Scale float64 `json:"scale"`

	// Opacity is 1 for bookends; body cards carry the content opacity.
	Opacity float64 `json:"opacity"`

	Parallax       parallax.Geometry `json:"parallax"`
	ParallaxOffset float64           `json:"parallax_offset"`
}

// BuildSnapshot evaluates the wall at a progress value. cards must be the
// converted records, index-aligned (conversion can mint IDs, so records are
// never re-converted here); the layout must be the one computed from cards.
func BuildSnapshot(records []content.Record, cards []card.Card, l *layout.Layout, opts Options) Snapshot {
	tr := scroll.Transform{
		Phases:       opts.Phases,
		MaxScroll:    scroll.MaxScroll(l.ContainerWidth, l.ViewportWidth),
		BookendScale: opts.BookendScale,
	}
	state := tr.At(opts.Progress)

	spy := scroll.NewSpy(l, opts.Phases, opts.Logger)

	snap := Snapshot{
		State:          state,
		ActiveCategory: spy.ActiveCategory(state.TranslateX),
		Categories:     spy.Categories(),
		Cards:          make([]CardView, 0, len(cards)),
	}

	viewportCenter := l.ViewportWidth / 2
	for i, c := range cards {
		var r content.Record
		if i < len(records) {
			r = records[i]
		}
		pos, ok := l.PositionFor(c.ID)
		if !ok {
			continue
		}

		view := CardView{
			CardID:   c.ID,
			Title:    r.Title,
			Position: pos,
			Scale:    1,
			Opacity:  1,
		}
		switch c.Kind {
		case card.KindLead:
			view.Scale = state.IntroScale
		case card.KindTrail:
			view.Scale = state.OutroScale
		default:
			view.Opacity = state.ContentOpacity
		}

		if r.ImageWidth > 0 && r.ImageHeight > 0 {
			view.Parallax = parallax.ComputeGeometry(r.ImageWidth, r.ImageHeight, pos.Width, pos.Height)
			// The card's on-screen center is its layout center plus the pan.
			view.ParallaxOffset = parallax.Offset(pos.CenterX+state.TranslateX, viewportCenter, pos.Width, view.Parallax)
		}

		snap.Cards = append(snap.Cards, view)
	}

	return snap
}
