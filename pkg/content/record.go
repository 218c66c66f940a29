// Package content supplies the card wall's input: a list of content records
// in sandwich order (lead first, body cards grouped by category and ordered
// by sort key, trail last).
//
// The layout engine consumes records as plain data. Sources are external
// collaborators behind the [Source] interface; this package ships a file
// source (JSON or TOML manifests) for the CLI and a MongoDB source for the
// server. Both emit records already sorted into sandwich order.
package content

import (
	"context"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/jverhoef/cardrail/pkg/card"
)

// Record is the serialized content card as stored and transported.
type Record struct {
	ID       string   `json:"id,omitempty" bson:"id,omitempty" toml:"id"`
	Kind     string   `json:"kind" bson:"kind" toml:"kind"`
	Size     string   `json:"size" bson:"size" toml:"size"`
	Category string   `json:"category,omitempty" bson:"category,omitempty" toml:"category"`
	SortKey  *float64 `json:"sort_key,omitempty" bson:"sort_key,omitempty" toml:"sort_key"`

	// Presentation metadata passed through to the renderer.
	Title       string  `json:"title,omitempty" bson:"title,omitempty" toml:"title"`
	ImageURL    string  `json:"image_url,omitempty" bson:"image_url,omitempty" toml:"image_url"`
	ImageWidth  float64 `json:"image_width,omitempty" bson:"image_width,omitempty" toml:"image_width"`
	ImageHeight float64 `json:"image_height,omitempty" bson:"image_height,omitempty" toml:"image_height"`
}

// Source lists content records for the wall.
type Source interface {
	// List returns records in sandwich order.
	List(ctx context.Context) ([]Record, error)

	// ID identifies the source for cache keys (a path, a collection URI).
	ID() string
}

// Card converts a record to the layout engine's card type, recovering from
// malformed data with safe defaults: unknown kinds become body cards,
// unknown sizes become 1×1, absent sort keys sort last, and a missing ID is
// replaced so every position stays addressable. One bad record must never
// break the page, so nothing here returns an error.
func (r Record) Card(logger *log.Logger) card.Card {
	if logger == nil {
		logger = log.Default()
	}

	kind, err := card.ParseKind(r.Kind)
	if err != nil {
		logger.Debug("record has unknown kind, treating as body", "id", r.ID, "kind", r.Kind)
		kind = card.KindBody
	}

	size, err := card.ParseSize(r.Size)
	if err != nil {
		logger.Debug("record has unknown size, treating as 1x1", "id", r.ID, "size", r.Size)
		size = card.Size1x1
	}

	sortKey := card.NoSortKey()
	if r.SortKey != nil {
		sortKey = *r.SortKey
	}

	id := r.ID
	if id == "" {
		id = uuid.NewString()
	}

	return card.Card{
		ID:       id,
		Kind:     kind,
		Size:     size,
		Category: r.Category,
		SortKey:  sortKey,
	}
}

// Cards converts a record list wholesale.
func Cards(records []Record, logger *log.Logger) []card.Card {
	out := make([]card.Card, 0, len(records))
	for _, r := range records {
		out = append(out, r.Card(logger))
	}
	return out
}

// SortSandwich sorts records in place into sandwich order: lead first,
// body cards grouped by category (first-seen order preserved) and ordered
// by sort key within each group, trail last. Sources whose storage cannot
// guarantee order (e.g. hand-edited manifests) call this before returning.
// The sort is stable so equal sort keys keep their original order.
func SortSandwich(records []Record) {
	categoryRank := make(map[string]int, 8)
	for _, r := range records {
		if r.Kind == string(card.KindBody) {
			if _, ok := categoryRank[r.Category]; !ok {
				categoryRank[r.Category] = len(categoryRank)
			}
		}
	}

	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if ka, kb := kindRank(a.Kind), kindRank(b.Kind); ka != kb {
			return ka < kb
		}
		if a.Kind != string(card.KindBody) {
			return false // bookends keep their relative order
		}
		if ra, rb := categoryRank[a.Category], categoryRank[b.Category]; ra != rb {
			return ra < rb
		}
		return sortKeyOf(a) < sortKeyOf(b)
	})
}

func kindRank(kind string) int {
	switch card.Kind(kind) {
	case card.KindLead:
		return 0
	case card.KindTrail:
		return 2
	default:
		return 1
	}
}

func sortKeyOf(r Record) float64 {
	if r.SortKey == nil {
		return card.NoSortKey()
	}
	return *r.SortKey
}
