// Package contentmap renders a portfolio manifest as a category overview
// diagram: the lead card at the top, one cluster per category in canonical
// order, and the trail card at the bottom. It is a curation aid, not part of
// the scroll pipeline — the diagram shows what the wall will contain before
// any layout runs.
package contentmap

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/jverhoef/cardrail/pkg/card"
	"github.com/jverhoef/cardrail/pkg/content"
	"github.com/jverhoef/cardrail/pkg/errors"
)

// Options configures the content-map diagram.
type Options struct {
	// Detailed includes size and sort key in node labels.
	// When false, only the title (or ID) is shown.
	Detailed bool
}

// ToDOT converts portfolio records to Graphviz DOT format. The resulting
// string can be rendered with [RenderSVG] or [RenderPNG].
func ToDOT(records []content.Record, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph wall {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("\n")

	var lead, trail *content.Record
	byCategory := make(map[string][]content.Record)
	var order []string
	for i := range records {
		r := records[i]
		switch r.Kind {
		case string(card.KindLead):
			lead = &records[i]
		case string(card.KindTrail):
			trail = &records[i]
		default:
			if r.Category == "" {
				continue
			}
			if _, seen := byCategory[r.Category]; !seen {
				order = append(order, r.Category)
			}
			byCategory[r.Category] = append(byCategory[r.Category], r)
		}
	}

	if lead != nil {
		fmt.Fprintf(&buf, "  %q [%s];\n", lead.ID, strings.Join(bookendAttrs(*lead, opts), ", "))
	}
	for i, cat := range order {
		fmt.Fprintf(&buf, "  subgraph cluster_%d {\n", i)
		fmt.Fprintf(&buf, "    label=%q;\n", cat)
		buf.WriteString("    style=rounded;\n")
		buf.WriteString("    color=grey;\n")
		for _, r := range byCategory[cat] {
			fmt.Fprintf(&buf, "    %q [label=%q];\n", r.ID, fmtLabel(r, opts.Detailed))
		}
		buf.WriteString("  }\n")
	}
	if trail != nil {
		fmt.Fprintf(&buf, "  %q [%s];\n", trail.ID, strings.Join(bookendAttrs(*trail, opts), ", "))
	}

	// Chain lead → first card of each category → trail so ranks follow the
	// wall's reading order.
	buf.WriteString("\n")
	prev := ""
	if lead != nil {
		prev = lead.ID
	}
	for _, cat := range order {
		first := byCategory[cat][0].ID
		if prev != "" {
			fmt.Fprintf(&buf, "  %q -> %q;\n", prev, first)
		}
		prev = first
	}
	if trail != nil && prev != "" {
		fmt.Fprintf(&buf, "  %q -> %q;\n", prev, trail.ID)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(r content.Record, detailed bool) string {
	label := r.Title
	if label == "" {
		label = r.ID
	}
	if !detailed {
		return label
	}
	parts := []string{fmt.Sprintf("size: %s", r.Size)}
	if r.SortKey != nil {
		parts = append(parts, fmt.Sprintf("sort: %g", *r.SortKey))
	}
	return label + "\n" + strings.Join(parts, "\n")
}

func bookendAttrs(r content.Record, opts Options) []string {
	return []string{
		fmt.Sprintf("label=%q", fmtLabel(r, opts.Detailed)),
		"style=\"rounded,filled\"",
		"fillcolor=black",
		"fontcolor=white",
	}
}

// RenderSVG renders a DOT diagram to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.SVG)
}

// RenderPNG renders a DOT diagram to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.PNG)
}

func render(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parse DOT")
	}
	defer func() { _ = g.Close() }()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render %s", format)
	}
	return buf.Bytes(), nil
}
