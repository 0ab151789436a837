package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/pkgdeps/pkg/lockfile"
)

// DOT converts traces to Graphviz DOT format. Each dependent points at the
// package it depends on, ending at the traced target. Peer edges are dashed
// and optional edges dotted.
//
// Nodes are identified by name@version, so the same resolved instance reached
// through several chains, or from several traces, is drawn once.
func DOT(traces ...*lockfile.Trace) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=BT;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	seenNode := make(map[string]bool)
	for _, tr := range traces {
		if !seenNode[tr.Target] {
			seenNode[tr.Target] = true
			fmt.Fprintf(&buf, "  %q [fillcolor=lightblue];\n", tr.Target)
		}
	}
	for _, tr := range traces {
		for _, n := range tr.Nodes {
			id := n.String()
			if seenNode[id] {
				continue
			}
			seenNode[id] = true
			fmt.Fprintf(&buf, "  %q [label=%q];\n", id, label(n.Name, n.Version))
		}
	}

	buf.WriteString("\n")
	seenEdge := make(map[string]bool)
	for _, tr := range traces {
		for _, n := range tr.Nodes {
			to := tr.Target
			if n.Parent != nil {
				to = n.Parent.String()
			}
			edge := fmt.Sprintf("  %q -> %q%s;\n", n.String(), to, edgeAttrs(n.Type))
			if seenEdge[edge] {
				continue
			}
			seenEdge[edge] = true
			buf.WriteString(edge)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func edgeAttrs(t lockfile.DependencyType) string {
	switch t {
	case lockfile.Peer:
		return " [style=dashed, label=\"peer\"]"
	case lockfile.Optional:
		return " [style=dotted, label=\"optional\"]"
	default:
		return ""
	}
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
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-based svg header with one that
// scales to its container.
func normalizeViewBox(svg []byte) []byte {
	m := viewBoxRe.FindSubmatch(svg)
	if m == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(m[3]), 64)
	h, _ := strconv.ParseFloat(string(m[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(header))
}
