// Package render exports segment connectivity graphs as Graphviz
// diagrams for layout debugging: every segment becomes a node placed
// at its pen-entry position, every connection an edge. The output is
// the quickest way to see whether a layout's joints actually line up.
package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/glyphsign/glyphsign/pkg/grid"
	"github.com/glyphsign/glyphsign/pkg/segmentgraph"
)

// Options configures graph rendering.
type Options struct {
	// Detailed includes kind and tile coordinates in node labels.
	// When false, only the segment ID is shown.
	Detailed bool

	// Positioned pins nodes to their world coordinates instead of
	// letting Graphviz lay them out. Render positioned graphs with
	// the neato engine.
	Positioned bool
}

// ToDOT converts a segment graph to Graphviz DOT format. The
// resulting DOT string can be rendered using [RenderSVG] or
// [RenderPNG]. Isolated segments are included so gaps in a layout
// show up as unconnected nodes.
func ToDOT(g *grid.Grid, graph *segmentgraph.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("graph segments {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12];\n")
	buf.WriteString("\n")

	for _, id := range g.SegmentIDs() {
		seg, _ := g.Segment(id)
		attrs := []string{fmt.Sprintf("label=%q", fmtLabel(seg, opts.Detailed))}
		if opts.Positioned {
			p := seg.StartPoint()
			// Graphviz Y grows upward; flip to keep the diagram
			// matching the display.
			attrs = append(attrs, fmt.Sprintf("pos=\"%.2f,%.2f!\"", p.X, -p.Y))
		}
		if graph.Degree(id) == 0 {
			attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", id, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, id := range graph.IDs() {
		for _, c := range graph.Neighbors(id) {
			if c.To < id {
				// Each undirected edge once.
				continue
			}
			fmt.Fprintf(&buf, "  %q -- %q [label=\"(%.0f,%.0f)\", fontsize=9];\n", id, c.To, c.At.X, c.At.Y)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(seg *grid.Segment, detailed bool) string {
	if !detailed {
		return seg.ID
	}
	return fmt.Sprintf("%s\n%s\ntile %d,%d", seg.ID, seg.Kind, seg.Tile.Col, seg.Tile.Row)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	return renderFormat(ctx, dot, graphviz.SVG)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return renderFormat(ctx, dot, graphviz.PNG)
}

func renderFormat(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
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
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
