// Package card defines the unit of layout for the card wall.
//
// A Card is immutable during a layout computation and is rebuilt wholesale
// whenever the content list or viewport width changes. Cards arrive in
// "sandwich order": one lead card first, body cards grouped by category and
// ordered by sort key, one trail card last. The layout engine trusts this
// order; [CheckSandwichOrder] exists so callers can validate their feeds.
package card

import (
	"fmt"
	"math"
	"strings"

	"github.com/jverhoef/cardrail/pkg/errors"
)

// Kind classifies a card's role in the wall.
type Kind string

// Card kinds.
const (
	// KindLead is the intro bookend card, rendered full-bleed at the start.
	KindLead Kind = "lead"

	// KindBody is a regular content card belonging to a category.
	KindBody Kind = "body"

	// KindTrail is the outro bookend card, rendered full-bleed at the end.
	KindTrail Kind = "trail"
)

// ParseKind parses a kind string. Unknown values return an INVALID_CARD error.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(s)) {
	case KindLead:
		return KindLead, nil
	case KindBody:
		return KindBody, nil
	case KindTrail:
		return KindTrail, nil
	}
	return "", errors.New(errors.ErrCodeInvalidCard, "unknown card kind: %q", s)
}

// Size is a card's grid span in rows × columns.
type Size struct {
	Rows int
	Cols int
}

// Named sizes. The wall supports exactly these four spans.
var (
	Size1x1 = Size{Rows: 1, Cols: 1}
	Size1x2 = Size{Rows: 1, Cols: 2}
	Size2x1 = Size{Rows: 2, Cols: 1}
	Size2x2 = Size{Rows: 2, Cols: 2}
)

// IsValid reports whether s is one of the four supported spans.
func (s Size) IsValid() bool {
	return (s.Rows == 1 || s.Rows == 2) && (s.Cols == 1 || s.Cols == 2)
}

// Normalize returns s if valid, otherwise the 1×1 safe default.
// A malformed content record must not break the whole page.
func (s Size) Normalize() Size {
	if s.IsValid() {
		return s
	}
	return Size1x1
}

// String returns the "RxC" form, e.g. "2x1".
func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Rows, s.Cols)
}

// ParseSize parses the "RxC" form ("1x1", "1x2", "2x1", "2x2").
// Unknown values return an INVALID_CARD error; callers that prefer recovery
// over failure should fall back to Size1x1.
func ParseSize(s string) (Size, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1x1":
		return Size1x1, nil
	case "1x2":
		return Size1x2, nil
	case "2x1":
		return Size2x1, nil
	case "2x2":
		return Size2x2, nil
	}
	return Size{}, errors.New(errors.ErrCodeInvalidCard, "unknown card size: %q", s)
}

// NoSortKey is the sort key of cards that declared none. They sort last.
func NoSortKey() float64 { return math.Inf(1) }

// Card is the unit of layout. It is an in-memory type; the serialized
// content record lives in pkg/content. SortKey is +Inf when the record
// declared none, which keeps keyless cards after keyed ones.
type Card struct {
	ID       string
	Kind     Kind
	Size     Size
	Category string
	SortKey  float64
}

// HasCategory reports whether the card participates in category anchoring.
// Only body cards with a non-empty category do; others are excluded silently.
func (c Card) HasCategory() bool {
	return c.Kind == KindBody && c.Category != ""
}

// Categories returns the distinct categories of body cards in first-seen order.
// This is the canonical category order used by the scroll-spy.
func Categories(cards []Card) []string {
	seen := make(map[string]bool, 8)
	var out []string
	for _, c := range cards {
		if !c.HasCategory() || seen[c.Category] {
			continue
		}
		seen[c.Category] = true
		out = append(out, c.Category)
	}
	return out
}

// CheckSandwichOrder validates the lead-first / body-grouped / trail-last
// contract. It reports the first violation found, or nil. The layout engine
// does not call this; it trusts input order per the external interface.
func CheckSandwichOrder(cards []Card) error {
	if len(cards) == 0 {
		return nil
	}

	seenTrail := false
	lastCategory := ""
	closedCategories := make(map[string]bool)
	lastSortKey := math.Inf(-1)

	for i, c := range cards {
		switch c.Kind {
		case KindLead:
			if i != 0 {
				return errors.New(errors.ErrCodeInvalidInput, "lead card %q at index %d, want 0", c.ID, i)
			}
		case KindTrail:
			seenTrail = true
		case KindBody:
			if seenTrail {
				return errors.New(errors.ErrCodeInvalidInput, "body card %q after trail", c.ID)
			}
			if c.Category != lastCategory {
				if closedCategories[c.Category] {
					return errors.New(errors.ErrCodeInvalidInput, "category %q split across groups", c.Category)
				}
				if lastCategory != "" {
					closedCategories[lastCategory] = true
				}
				lastCategory = c.Category
				lastSortKey = math.Inf(-1)
			}
			if c.SortKey < lastSortKey {
				return errors.New(errors.ErrCodeInvalidInput,
					"card %q sort key %g out of order within category %q", c.ID, c.SortKey, c.Category)
			}
			lastSortKey = c.SortKey
		default:
			return errors.New(errors.ErrCodeInvalidCard, "card %q has unknown kind %q", c.ID, c.Kind)
		}
	}
	return nil
}
