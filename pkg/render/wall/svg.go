package wall

import (
	"bytes"
	"fmt"

	"github.com/jverhoef/cardrail/pkg/card"
	"github.com/jverhoef/cardrail/pkg/layout"
	"github.com/jverhoef/cardrail/pkg/scroll"
)

// categoryPalette is cycled through in canonical anchor order. Uncategorized
// and bookend cards use the neutral fills below.
var categoryPalette = []string{
	"#4C7DBF", "#C25B4E", "#5B9E6F", "#B08C3E", "#7A5EA8", "#3E9FA8",
}

const (
	bookendFill = "#2B2B2B"
	neutralFill = "#8A8A8A"
	frameStroke = "#D04545"
)

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	cards      map[string]card.Card
	titles     map[string]string
	state      *scroll.State
	active     string
	showFrame  bool
	showLabels bool
}

// WithCards supplies the source cards so the renderer can color by category
// and scale bookends. Without it every card gets the neutral fill.
func WithCards(cards []card.Card) SVGOption {
	return func(r *svgRenderer) {
		r.cards = make(map[string]card.Card, len(cards))
		for _, c := range cards {
			r.cards[c.ID] = c
		}
	}
}

// WithTitles supplies display titles keyed by card ID.
func WithTitles(titles map[string]string) SVGOption {
	return func(r *svgRenderer) { r.titles = titles }
}

// WithState draws the wall mid-scroll: translated, bookends scaled, body
// opacity applied.
func WithState(s scroll.State) SVGOption {
	return func(r *svgRenderer) { r.state = &s }
}

// WithActiveCategory outlines the cards of the named category.
func WithActiveCategory(category string) SVGOption {
	return func(r *svgRenderer) { r.active = category }
}

// WithViewportFrame overlays the viewport bounds on the container.
func WithViewportFrame() SVGOption { return func(r *svgRenderer) { r.showFrame = true } }

// WithoutLabels suppresses the card labels.
func WithoutLabels() SVGOption { return func(r *svgRenderer) { r.showLabels = false } }

// RenderSVG renders a computed layout as a standalone SVG document.
func RenderSVG(l layout.Layout, opts ...SVGOption) []byte {
	r := svgRenderer{showLabels: true}
	for _, opt := range opts {
		opt(&r)
	}

	fills := categoryFills(l)
	tx := 0.0
	if r.state != nil {
		tx = r.state.TranslateX
	}

	// The document is viewport-sized when a state is applied (what the user
	// sees), container-sized otherwise (the whole wall).
	docWidth := l.ContainerWidth
	if r.state != nil {
		docWidth = l.ViewportWidth
	}
	docHeight := l.ContentHeight + 2*l.Config.MinPadding

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		docWidth, docHeight, docWidth, docHeight)
	fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="#F4F1EA"/>`+"\n")

	fmt.Fprintf(&buf, `  <g transform="translate(%.2f, %.1f)">`+"\n", tx, l.Config.MinPadding)
	for _, p := range l.Positions {
		r.renderCard(&buf, p, fills)
	}
	buf.WriteString("  </g>\n")

	if r.showFrame && r.state == nil {
		fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%.1f" height="%.1f" fill="none" stroke="%s" stroke-width="2" stroke-dasharray="8 4"/>`+"\n",
			l.ViewportWidth, docHeight, frameStroke)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r *svgRenderer) renderCard(buf *bytes.Buffer, p layout.Position, fills map[string]string) {
	c, known := r.cards[p.CardID]

	fill := neutralFill
	opacity := 1.0
	scale := 1.0
	if known {
		switch c.Kind {
		case card.KindLead, card.KindTrail:
			fill = bookendFill
			if r.state != nil {
				if c.Kind == card.KindLead {
					scale = r.state.IntroScale
				} else {
					scale = r.state.OutroScale
				}
			}
		default:
			if f, ok := fills[c.Category]; ok {
				fill = f
			}
			if r.state != nil {
				opacity = r.state.ContentOpacity
			}
		}
	}

	attrs := fmt.Sprintf(`x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="6" fill="%s"`,
		p.Left, p.Top, p.Width, p.Height, fill)
	if opacity < 1 {
		attrs += fmt.Sprintf(` fill-opacity="%.3f"`, opacity)
	}
	if known && r.active != "" && c.Category == r.active {
		attrs += fmt.Sprintf(` stroke="%s" stroke-width="3"`, frameStroke)
	}

	if scale != 1 {
		// Scale around the card center, like transform-origin: center.
		cy := p.Top + p.Height/2
		fmt.Fprintf(buf, `    <g transform="translate(%.2f, %.2f) scale(%.4f) translate(%.2f, %.2f)">`+"\n",
			p.CenterX, cy, scale, -p.CenterX, -cy)
		fmt.Fprintf(buf, "      <rect %s/>\n", attrs)
		buf.WriteString("    </g>\n")
	} else {
		fmt.Fprintf(buf, "    <rect %s/>\n", attrs)
	}

	if r.showLabels && opacity > 0.05 && scale == 1 {
		label := p.CardID
		if t, ok := r.titles[p.CardID]; ok && t != "" {
			label = t
		}
		fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" font-family="sans-serif" font-size="13" fill="#FFFFFF" text-anchor="middle" fill-opacity="%.3f">%s</text>`+"\n",
			p.CenterX, p.Top+p.Height/2+4, opacity, escape(label))
	}
}

// categoryFills assigns palette colors in canonical anchor order so colors
// are stable across viewport widths.
func categoryFills(l layout.Layout) map[string]string {
	fills := make(map[string]string, len(l.Anchors))
	for i, a := range l.Anchors {
		fills[a.Category] = categoryPalette[i%len(categoryPalette)]
	}
	return fills
}

func escape(s string) string {
	var buf bytes.Buffer
	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}
