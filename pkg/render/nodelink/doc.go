// Package nodelink renders the part of a word graph a search has explored as
// a node-link diagram.
//
// # Overview
//
// The diagram shows every vertex the search has touched (visited, queued or
// current) joined by the edges it discovered. Vertices are coloured by their
// display state and the edges of a found path are drawn heavier, so a
// finished search reads as a ladder through a cloud of explored words.
//
// # Usage
//
// Convert a snapshot to DOT, then render to SVG:
//
//	dot := nodelink.ToDOT(g, eng.Snapshot(), nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # Options
//
// The [Options] struct controls diagram generation:
//
//   - Full: include untouched vertices and undiscovered edges, greyed out
//   - Detailed: add vertex ids to labels
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering, so no Graphviz installation is required.
package nodelink
