package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/jverhoef/cardrail/pkg/content"
	"github.com/jverhoef/cardrail/pkg/layout"
	"github.com/jverhoef/cardrail/pkg/pipeline"
	"github.com/jverhoef/cardrail/pkg/scroll"
)

// previewCommand creates the preview command: an interactive terminal
// scrubber over the scroll sequence.
func (c *CLI) previewCommand() *cobra.Command {
	var viewport float64

	cmd := &cobra.Command{
		Use:   "preview [manifest]",
		Short: "Scrub through the scroll sequence in the terminal",
		Long: `Scrub through the scroll sequence in the terminal.

The preview shows the transform output (pan, bookend scales, opacity), the
active category, and the jump targets at any progress value. Use ←/→ to
scrub, tab to cycle categories (jumping to each one's target), and q to
quit.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			manifest := ""
			if len(args) > 0 {
				manifest = args[0]
			}
			return c.runPreview(cmd.Context(), manifest, viewport)
		},
	}

	cmd.Flags().Float64VarP(&viewport, "viewport", "w", 0, "viewport width in px")
	return cmd
}

func (c *CLI) runPreview(ctx context.Context, manifest string, viewport float64) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if viewport == 0 {
		viewport = cfg.Wall.DefaultViewportWidth
	}

	source, closeSource, err := c.newSource(ctx, cfg, manifest)
	if err != nil {
		return err
	}
	defer closeSource()

	runner := pipeline.NewRunner(nil, nil, c.Logger)
	opts := pipeline.Options{
		Source:        source,
		ViewportWidth: viewport,
		Phases:        cfg.Phases,
		BookendScale:  cfg.Wall.BookendScale,
		Logger:        c.Logger,
	}

	records, err := runner.Load(ctx, opts)
	if err != nil {
		return err
	}
	cards := content.Cards(records, c.Logger)
	l, err := runner.ComputeLayout(ctx, cards, opts)
	if err != nil {
		return err
	}

	model := newPreviewModel(l, cfg.Phases, cfg.Wall.BookendScale, cfg.Server.ScrollableHeight)
	_, err = tea.NewProgram(model, tea.WithContext(ctx)).Run()
	return err
}

// =============================================================================
// previewModel - Scroll Sequence Scrubber
// =============================================================================

const (
	scrubStep     = 0.01
	scrubStepBig  = 0.10
	scrubBarWidth = 50
)

type previewModel struct {
	layout     *layout.Layout
	transform  scroll.Transform
	spy        *scroll.Spy
	height     float64 // scrollable height for jump targets
	progress   float64
	categories []string
	catCursor  int
}

func newPreviewModel(l *layout.Layout, phases scroll.Phases, bookendScale, scrollableHeight float64) previewModel {
	spy := scroll.NewSpy(l, phases, nil)
	return previewModel{
		layout: l,
		transform: scroll.Transform{
			Phases:       phases,
			MaxScroll:    scroll.MaxScroll(l.ContainerWidth, l.ViewportWidth),
			BookendScale: bookendScale,
		},
		spy:        spy,
		height:     scrollableHeight,
		categories: spy.Categories(),
	}
}

func (m previewModel) Init() tea.Cmd {
	return nil
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "left", "h":
		m.progress = clampProgress(m.progress - scrubStep)
	case "right", "l":
		m.progress = clampProgress(m.progress + scrubStep)
	case "shift+left", "H":
		m.progress = clampProgress(m.progress - scrubStepBig)
	case "shift+right", "L":
		m.progress = clampProgress(m.progress + scrubStepBig)
	case "home", "0":
		m.progress = 0
	case "end", "1":
		m.progress = 1
	case "tab":
		m.catCursor = (m.catCursor + 1) % len(m.categories)
		if jump, ok := m.spy.JumpTo(m.categories[m.catCursor], m.height); ok {
			m.progress = jump.Progress
		}
	}
	return m, nil
}

func (m previewModel) View() string {
	state := m.transform.At(m.progress)
	active := m.spy.ActiveCategory(state.TranslateX)

	var b strings.Builder
	b.WriteString(StyleTitle.Render("Scroll Preview"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("←/→ scrub  shift speeds up  tab jump category  q quit"))
	b.WriteString("\n\n")

	b.WriteString(renderScrubBar(m.progress, m.transform.Phases))
	b.WriteString("\n\n")

	rows := []struct{ k, v string }{
		{"progress", fmt.Sprintf("%.3f", state.Progress)},
		{"phase", string(state.Phase)},
		{"translateX", fmt.Sprintf("%.1f px (of %.1f)", state.TranslateX, m.transform.MaxScroll)},
		{"intro scale", fmt.Sprintf("%.3f", state.IntroScale)},
		{"outro scale", fmt.Sprintf("%.3f", state.OutroScale)},
		{"opacity", fmt.Sprintf("%.3f", state.ContentOpacity)},
		{"container", fmt.Sprintf("%.0f px wall / %.0f px viewport", m.layout.ContainerWidth, m.layout.ViewportWidth)},
	}
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(14)
	for _, row := range rows {
		b.WriteString(keyStyle.Render(row.k) + StyleValue.Render(row.v) + "\n")
	}
	b.WriteString("\n")

	for _, cat := range m.categories {
		marker := "  "
		line := cat
		if jump, ok := m.spy.JumpTo(cat, m.height); ok && cat != scroll.CategoryAll {
			line += StyleDim.Render(fmt.Sprintf("  @ %.3f (scrollTop %.0f)", jump.Progress, jump.ScrollTop))
		}
		if cat == active {
			marker = StyleHighlight.Render("▸ ")
			line = StyleHighlight.Render(cat) + strings.TrimPrefix(line, cat)
		}
		b.WriteString(marker + line + "\n")
	}

	return b.String()
}

// renderScrubBar draws the progress bar with phase boundaries marked.
func renderScrubBar(progress float64, phases scroll.Phases) string {
	cells := make([]rune, scrubBarWidth)
	for i := range cells {
		cells[i] = '─'
	}
	for _, boundary := range []float64{phases.IntroPauseEnd, phases.IntroScaleEnd, phases.OutroScaleStart, phases.OutroPauseStart} {
		if i := int(boundary * scrubBarWidth); i >= 0 && i < scrubBarWidth {
			cells[i] = '┊'
		}
	}
	cursor := int(progress * (scrubBarWidth - 1))
	cells[cursor] = '●'
	return "[" + StyleHighlight.Render(string(cells[:cursor+1])) + string(cells[cursor+1:]) + "]"
}

func clampProgress(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
