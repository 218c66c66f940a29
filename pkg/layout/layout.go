// Package layout turns an ordered card list and a viewport width into
// absolute pixel positions on the two-row wall.
//
// Compute is a pure function: identical inputs yield identical outputs, so
// results can be memoized keyed on (cards, viewportWidth) — see [Memo]. The
// computation packs cards left to right with the column-major first-fit
// packer from pkg/grid, then converts grid cells to pixels.
//
// Padding is asymmetric: the left padding centers the lead card in the first
// viewport, the right padding centers the trail card in the final viewport.
// The wall therefore starts and ends on a full-bleed bookend regardless of
// how the body cards pack.
package layout

import (
	"math"

	"github.com/jverhoef/cardrail/pkg/card"
	"github.com/jverhoef/cardrail/pkg/grid"
)

// Position is the computed rectangle for one card.
// CenterX = Left + Width/2, kept precomputed for the scroll-spy hot path.
type Position struct {
	CardID  string  `json:"card_id" bson:"card_id"`
	Top     float64 `json:"top" bson:"top"`
	Left    float64 `json:"left" bson:"left"`
	Width   float64 `json:"width" bson:"width"`
	Height  float64 `json:"height" bson:"height"`
	CenterX float64 `json:"center_x" bson:"center_x"`

	// Grid cell backing the rectangle, kept for overlap auditing.
	Row  int `json:"row" bson:"row"`
	Col  int `json:"col" bson:"col"`
	Rows int `json:"rows" bson:"rows"`
	Cols int `json:"cols" bson:"cols"`
}

// Right returns the right edge of the rectangle.
func (p Position) Right() float64 { return p.Left + p.Width }

// Anchor is a category's representative position: the first body card of
// that category in input order (which the caller sorts by sort key). It is
// both the active-state detection reference and the navigation jump target.
type Anchor struct {
	Category string  `json:"category" bson:"category"`
	Left     float64 `json:"left" bson:"left"`
	CenterX  float64 `json:"center_x" bson:"center_x"`
}

// Layout is the full output of one layout pass.
type Layout struct {
	Positions      []Position `json:"positions" bson:"positions"`
	Anchors        []Anchor   `json:"anchors" bson:"anchors"` // canonical category order
	ContainerWidth float64    `json:"container_width" bson:"container_width"`
	ContentHeight  float64    `json:"content_height" bson:"content_height"`
	ViewportWidth  float64    `json:"viewport_width" bson:"viewport_width"`
	Config         Config     `json:"config" bson:"config"`
}

// AnchorFor returns the anchor for a category, if present.
func (l *Layout) AnchorFor(category string) (Anchor, bool) {
	for _, a := range l.Anchors {
		if a.Category == category {
			return a, true
		}
	}
	return Anchor{}, false
}

// PositionFor returns the position of a card by ID, if present.
func (l *Layout) PositionFor(cardID string) (Position, bool) {
	for _, p := range l.Positions {
		if p.CardID == cardID {
			return p, true
		}
	}
	return Position{}, false
}

// Compute lays out cards for a viewport width. It never fails: an empty
// input yields a zero-valued Layout, malformed card sizes are normalized to
// 1×1, and invalid viewport widths fall back to the desktop default.
func Compute(cards []card.Card, viewportWidth float64) *Layout {
	cfg := ConfigFor(viewportWidth)
	if viewportWidth <= 0 || math.IsNaN(viewportWidth) || math.IsInf(viewportWidth, 0) {
		viewportWidth = DefaultViewportWidth
	}

	l := &Layout{
		ViewportWidth: viewportWidth,
		Config:        cfg,
	}
	if len(cards) == 0 {
		return l
	}

	leftPad, rightPad := bookendPadding(cards, cfg, viewportWidth)

	g := grid.New(WallRows)
	l.Positions = make([]Position, 0, len(cards))
	anchored := make(map[string]bool, 8)

	for _, c := range cards {
		size := c.Size.Normalize()
		row, col := g.Place(size.Rows, size.Cols)

		pos := Position{
			CardID: c.ID,
			Top:    float64(row) * (cfg.RowHeight + cfg.Gap),
			Left:   leftPad + float64(col)*(cfg.ColumnWidth+cfg.Gap),
			Width:  cfg.SpanWidth(size.Cols),
			Height: cfg.SpanHeight(size.Rows),
			Row:    row,
			Col:    col,
			Rows:   size.Rows,
			Cols:   size.Cols,
		}
		pos.CenterX = pos.Left + pos.Width/2
		l.Positions = append(l.Positions, pos)

		// First-seen body card of each category becomes its anchor.
		// Cards without a category are simply excluded from tracking.
		if c.HasCategory() && !anchored[c.Category] {
			anchored[c.Category] = true
			l.Anchors = append(l.Anchors, Anchor{
				Category: c.Category,
				Left:     pos.Left,
				CenterX:  pos.CenterX,
			})
		}
	}

	var maxRight float64
	for _, p := range l.Positions {
		if r := p.Right(); r > maxRight {
			maxRight = r
		}
	}
	l.ContainerWidth = maxRight + rightPad

	// The grid is always exactly two rows tall, so content height is fixed
	// by the bookend span rather than by what happened to be placed.
	l.ContentHeight = cfg.SpanHeight(WallRows)

	return l
}

// bookendPadding derives the asymmetric horizontal padding that centers the
// lead card in the first viewport and the trail card in the final one.
// Missing bookends fall back to the minimum padding.
func bookendPadding(cards []card.Card, cfg Config, viewportWidth float64) (left, right float64) {
	left, right = cfg.MinPadding, cfg.MinPadding

	for _, c := range cards {
		switch c.Kind {
		case card.KindLead:
			if pad := (viewportWidth - cfg.SpanWidth(c.Size.Normalize().Cols)) / 2; pad > left {
				left = pad
			}
		case card.KindTrail:
			if pad := (viewportWidth - cfg.SpanWidth(c.Size.Normalize().Cols)) / 2; pad > right {
				right = pad
			}
		}
	}
	return left, right
}
