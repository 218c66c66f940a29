package layout

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"

	"github.com/jverhoef/cardrail/pkg/card"
)

// DefaultMemoSize bounds the memo cache. Layout recomputes only on content
// or viewport changes, so a handful of entries covers resize debouncing.
const DefaultMemoSize = 16

// Memo is an explicit, caller-owned memoization cache for Compute, keyed on
// (cards, viewportWidth). It replaces module-level singleton caches: the
// owner decides its lifetime and bounds. Safe for concurrent use.
type Memo struct {
	mu      sync.Mutex
	max     int
	entries map[string]*Layout
	order   []string // insertion order for eviction
}

// NewMemo creates a memo cache holding at most max layouts.
// max values below 1 use DefaultMemoSize.
func NewMemo(max int) *Memo {
	if max < 1 {
		max = DefaultMemoSize
	}
	return &Memo{
		max:     max,
		entries: make(map[string]*Layout, max),
	}
}

// Compute returns the memoized layout for (cards, viewportWidth), computing
// and storing it on a miss. The returned Layout is shared: treat it as
// read-only derived data.
func (m *Memo) Compute(cards []card.Card, viewportWidth float64) *Layout {
	key := Key(cards, viewportWidth)

	m.mu.Lock()
	if l, ok := m.entries[key]; ok {
		m.mu.Unlock()
		return l
	}
	m.mu.Unlock()

	l := Compute(cards, viewportWidth)

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[key]; !ok {
		if len(m.order) >= m.max {
			oldest := m.order[0]
			m.order = m.order[1:]
			delete(m.entries, oldest)
		}
		m.entries[key] = l
		m.order = append(m.order, key)
	}
	return l
}

// Len returns the number of memoized layouts.
func (m *Memo) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Key derives the memo key for (cards, viewportWidth). The key includes
// both inputs; two identical card lists at different widths never collide.
func Key(cards []card.Card, viewportWidth float64) string {
	return fmt.Sprintf("%s:%g", ContentHash(cards), viewportWidth)
}

// ContentHash returns the hash of the card list alone, used as the content
// component of cache keys elsewhere. Fields are written to the hash directly
// so sort keys of ±Inf (absent keys) hash cleanly.
func ContentHash(cards []card.Card) string {
	h := sha256.New()
	for _, c := range cards {
		fmt.Fprintf(h, "%s\x00%s\x00%dx%d\x00%s\x00%g\n",
			c.ID, c.Kind, c.Size.Rows, c.Size.Cols, c.Category, c.SortKey)
	}
	return hex.EncodeToString(h.Sum(nil))
}
