// Package render converts circuit graphs to Graphviz DOT and SVG.
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering, so no external graphviz installation is required.
package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/mlindgren/wirecut/pkg/graph"
	"github.com/mlindgren/wirecut/pkg/graphio"
)

// Options configures DOT generation.
type Options struct {
	// Detailed includes order numbers and wire lists in node labels.
	// When false, only the node label is shown.
	Detailed bool
}

// ToDOT converts a circuit graph to Graphviz DOT format.
// The resulting DOT string can be rendered with [SVG].
//
// Cut markers are drawn with dashed red outlines; sink/source boundary
// pairs (created by the transform package) get grey fill so rewritten
// regions stand out. Edges are labeled with their wire.
func ToDOT(g *graph.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph circuit {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [fontsize=11];\n")
	buf.WriteString("\n")

	// Serialize first: graphio orders nodes deterministically.
	gj := graphio.FromGraph(g)

	for _, n := range gj.Nodes {
		label := fmtLabel(n, opts.Detailed)
		attrs := fmtAttrs(n, label)
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range gj.Edges {
		fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", e.From, e.To, e.Wire)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n graphio.Node, detailed bool) string {
	label := n.Label
	if label == "" {
		label = n.Kind
	}
	if !detailed {
		return label
	}

	parts := []string{fmt.Sprintf("order: %d", n.Order)}
	if len(n.Wires) > 0 {
		parts = append(parts, "wires: "+strings.Join(n.Wires, ","))
	}
	return label + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(n graphio.Node, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	switch n.Kind {
	case graphio.KindCut:
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "color=red", "fillcolor=mistyrose")
	case graphio.KindSink, graphio.KindSource:
		attrs = append(attrs, "style=\"rounded,filled\"", "fillcolor=lightgrey")
	case graphio.KindMeasurement:
		attrs = append(attrs, "shape=ellipse")
	}
	return attrs
}

// SVG renders a DOT graph to SVG using Graphviz.
func SVG(ctx context.Context, dot string) ([]byte, error) {
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
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
