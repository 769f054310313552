// Package schemagraph renders a template's structure as a diagram:
// template -> slides -> slots, with dashed edges from slots to the data
// keys they bind. Useful for reviewing a schema before wiring a data
// pipeline to it.
package schemagraph

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/deckmason/deckmason/pkg/schema"
)

// Options configures diagram rendering.
type Options struct {
	// DataKeys includes data-key nodes and their binding edges.
	// When false, the diagram stops at the slot level.
	DataKeys bool
}

// ToDOT converts a template to Graphviz DOT format. The resulting DOT
// string can be rendered with [RenderSVG] or [RenderPNG].
func ToDOT(t *schema.Template, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph schema {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12, margin=\"0.15,0.08\"];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.25;\n")
	buf.WriteString("\n")

	fmt.Fprintf(&buf, "  %q [label=%q, fillcolor=%q, fontcolor=white, style=filled];\n",
		"template", t.Name, t.Design.DarkBlue)

	for i := range t.Slides {
		slide := &t.Slides[i]
		slideID := "slide:" + slide.Name
		fmt.Fprintf(&buf, "  %q [label=%q, fillcolor=%q];\n",
			slideID, slideLabel(slide), slideFill(slide, t.Design))
		fmt.Fprintf(&buf, "  %q -> %q;\n", "template", slideID)

		for j := range slide.Slots {
			slot := &slide.Slots[j]
			slotID := fmt.Sprintf("slot:%s.%s", slide.Name, slot.Name)
			fmt.Fprintf(&buf, "  %q [label=%q];\n", slotID, slotLabel(slot))
			fmt.Fprintf(&buf, "  %q -> %q;\n", slideID, slotID)

			if opts.DataKeys {
				keys := slot.Keys()
				sort.Strings(keys)
				for _, key := range keys {
					keyID := "key:" + key
					fmt.Fprintf(&buf, "  %q [label=%q, shape=note, style=filled, fillcolor=lightyellow, fontsize=10];\n",
						keyID, key)
					fmt.Fprintf(&buf, "  %q -> %q [style=dashed, arrowhead=open];\n", slotID, keyID)
				}
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func slideLabel(s *schema.Slide) string {
	title := s.Title
	if title == "" {
		title = s.Name
	}
	return fmt.Sprintf("%d: %s\n(%s)", s.Index, title, s.Kind)
}

func slideFill(s *schema.Slide, d schema.DesignSystem) string {
	if s.Kind == schema.SlideDivider {
		return d.DividerBG
	}
	return "white"
}

func slotLabel(s *schema.Slot) string {
	parts := []string{s.Name, string(s.Kind)}
	if s.ChartKind != "" {
		parts = append(parts, string(s.ChartKind))
	}
	if len(s.Columns) > 0 {
		parts = append(parts, fmt.Sprintf("%d columns", len(s.Columns)))
	}
	return strings.Join(parts, "\n")
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	return renderFormat(dot, graphviz.SVG)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(dot string) ([]byte, error) {
	return renderFormat(dot, graphviz.PNG)
}

func renderFormat(dot string, f graphviz.Format) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, f, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
