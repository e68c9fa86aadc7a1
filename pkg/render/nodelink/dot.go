package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/wordladder/pkg/search"
	"github.com/matzehuels/wordladder/pkg/wordgraph"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Full draws the whole graph, with untouched vertices and undiscovered
	// edges greyed out. When false only the explored subgraph is drawn.
	Full bool

	// Detailed appends the vertex id to each label.
	Detailed bool
}

// Fill colours per display state.
var stateFill = map[search.DisplayState]string{
	search.Unvisited: "white",
	search.Frontier:  "#fde68a",
	search.Current:   "#f87171",
	search.Visited:   "#93c5fd",
}

const (
	pathColor   = "#b91c1c"
	mutedColor  = "#d1d5db"
	normalColor = "#4b5563"
)

// ToDOT converts the explored part of g, as captured by snap, to Graphviz
// DOT source. Output is deterministic: vertices appear in active order (or
// id order with Options.Full) and edges in discovery order.
func ToDOT(g *wordgraph.Graph, snap search.Snapshot, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontname=\"monospace\", fontsize=18, margin=\"0.15,0.05\"];\n")
	buf.WriteString("  edge [color=\"" + normalColor + "\"];\n")
	buf.WriteString("\n")

	vertices := snap.Active()
	if opts.Full {
		vertices = make([]int, g.Len())
		for i := range vertices {
			vertices[i] = i
		}
	}
	for _, v := range vertices {
		if !g.Valid(v) {
			continue
		}
		fmt.Fprintf(&buf, "  n%d [%s];\n", v, nodeAttrs(g, snap, v, opts))
	}

	buf.WriteString("\n")
	onPath := pathEdges(snap.Path)
	discovered := make(map[int]bool, len(snap.Discovered))
	for _, id := range snap.Discovered {
		discovered[id] = true
		e := g.Edge(id)
		fmt.Fprintf(&buf, "  n%d -- n%d%s;\n", e.A, e.B, edgeAttrs(e, onPath))
	}
	if opts.Full {
		for id, e := range g.Edges() {
			if !discovered[id] {
				fmt.Fprintf(&buf, "  n%d -- n%d [color=%q, style=dashed];\n", e.A, e.B, mutedColor)
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(g *wordgraph.Graph, snap search.Snapshot, v int, opts Options) string {
	label := g.Word(v)
	if opts.Detailed {
		label = fmt.Sprintf("%s\n#%d", label, v)
	}

	state := snap.State(v)
	attrs := fmt.Sprintf("label=%q, fillcolor=%q", label, stateFill[state])
	if state == search.Unvisited {
		attrs += fmt.Sprintf(", color=%q, fontcolor=%q", mutedColor, mutedColor)
	}
	if v == snap.Start || v == snap.Goal {
		attrs += ", penwidth=3"
	}
	return attrs
}

func edgeAttrs(e wordgraph.Edge, onPath map[wordgraph.Edge]bool) string {
	if onPath[e] {
		return fmt.Sprintf(" [color=%q, penwidth=3]", pathColor)
	}
	return ""
}

// pathEdges returns the edges joining consecutive path vertices, normalized
// to A > B.
func pathEdges(path []int) map[wordgraph.Edge]bool {
	out := make(map[wordgraph.Edge]bool, len(path))
	for i := 1; i < len(path); i++ {
		a, b := path[i-1], path[i]
		if a < b {
			a, b = b, a
		}
		out[wordgraph.Edge{A: a, B: b}] = true
	}
	return out
}

// RenderSVG renders DOT source to SVG using the embedded Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
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

// normalizeViewBox rewrites the root element so the SVG scales to its
// container.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
