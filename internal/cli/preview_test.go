package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jverhoef/cardrail/pkg/card"
	"github.com/jverhoef/cardrail/pkg/layout"
	"github.com/jverhoef/cardrail/pkg/scroll"
)

func previewFixture() previewModel {
	cards := []card.Card{
		{ID: "intro", Kind: card.KindLead, Size: card.Size2x2},
		{ID: "p1", Kind: card.KindBody, Size: card.Size1x1, Category: "design"},
		{ID: "w1", Kind: card.KindBody, Size: card.Size1x1, Category: "web"},
		{ID: "outro", Kind: card.KindTrail, Size: card.Size2x2},
	}
	l := layout.Compute(cards, 800)
	return newPreviewModel(l, scroll.DefaultPhases, scroll.DefaultBookendScale, 10000)
}

func keyMsg(s string) tea.KeyMsg {
	if len(s) == 1 {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	switch s {
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{}
}

func TestPreviewScrub(t *testing.T) {
	m := previewFixture()

	next, _ := m.Update(keyMsg("right"))
	m = next.(previewModel)
	if m.progress != scrubStep {
		t.Errorf("progress after right = %g, want %g", m.progress, scrubStep)
	}

	next, _ = m.Update(keyMsg("left"))
	m = next.(previewModel)
	if m.progress != 0 {
		t.Errorf("progress after left = %g, want 0", m.progress)
	}

	// Clamped at the low end.
	next, _ = m.Update(keyMsg("left"))
	m = next.(previewModel)
	if m.progress != 0 {
		t.Errorf("progress must not go below 0, got %g", m.progress)
	}
}

func TestPreviewJumpKey(t *testing.T) {
	m := previewFixture()

	// First tab cycles to the first real category and jumps into the
	// horizontal phase.
	next, _ := m.Update(keyMsg("tab"))
	m = next.(previewModel)
	phases := scroll.DefaultPhases
	if m.progress < phases.IntroScaleEnd || m.progress > phases.OutroScaleStart {
		t.Errorf("progress after jump = %g, want within horizontal phase", m.progress)
	}
}

func TestPreviewQuit(t *testing.T) {
	m := previewFixture()
	_, cmd := m.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatal("q should quit")
	}
}

func TestPreviewView(t *testing.T) {
	m := previewFixture()
	view := m.View()

	for _, want := range []string{"Scroll Preview", "progress", "phase", "translateX", "all", "design", "web"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestRenderScrubBar(t *testing.T) {
	bar := renderScrubBar(0, scroll.DefaultPhases)
	if !strings.Contains(bar, "●") {
		t.Error("scrub bar missing cursor")
	}
	if !strings.Contains(bar, "┊") {
		t.Error("scrub bar missing phase boundaries")
	}
}
