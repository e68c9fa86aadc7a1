package graph

import (
	"fmt"

	werrors "github.com/matzehuels/wordladder/pkg/errors"
	"github.com/matzehuels/wordladder/pkg/wordgraph"
)

// =============================================================================
// Graph - Word Graph Serialization
// =============================================================================

// Graph is the canonical serialization format for word graphs.
type Graph struct {
	WordLength int    `json:"word_length"`
	Nodes      []Node `json:"nodes"`
	Edges      []Edge `json:"edges"`
}

// Node is a serialized vertex.
type Node struct {
	ID   int    `json:"id"`
	Word string `json:"word"`
}

// Edge is a serialized edge. A is always the larger vertex id.
type Edge struct {
	A int `json:"a"`
	B int `json:"b"`
}

// FromWordGraph converts a word graph to its serialized form.
func FromWordGraph(g *wordgraph.Graph) Graph {
	out := Graph{
		WordLength: g.WordLength(),
		Nodes:      make([]Node, g.Len()),
		Edges:      make([]Edge, g.EdgeCount()),
	}
	for i, v := range g.Vertices() {
		out.Nodes[i] = Node{ID: i, Word: v.Word}
	}
	for i, e := range g.Edges() {
		out.Edges[i] = Edge{A: e.A, B: e.B}
	}
	return out
}

// ToWordGraph validates a serialized graph and rebuilds the word graph.
// Structural problems (ids out of order, a wrong word length) fail with
// INVALID_FORMAT; edges that do not join one-letter neighbours fail with
// PRECONDITION_FAILED from [wordgraph.New].
func ToWordGraph(data Graph) (*wordgraph.Graph, error) {
	vertices := make([]wordgraph.Vertex, len(data.Nodes))
	for i, n := range data.Nodes {
		if n.ID != i {
			return nil, werrors.New(werrors.ErrCodeInvalidFormat, "node %d has id %d, want %d", i, n.ID, i)
		}
		if l := len([]rune(n.Word)); data.WordLength != 0 && l != data.WordLength {
			return nil, werrors.New(werrors.ErrCodeInvalidFormat,
				"node %d word %q has length %d, want %d", i, n.Word, l, data.WordLength)
		}
		vertices[i] = wordgraph.Vertex{Word: n.Word}
	}

	edges := make([]wordgraph.Edge, len(data.Edges))
	for i, e := range data.Edges {
		edges[i] = wordgraph.Edge{A: e.A, B: e.B}
	}

	g, err := wordgraph.New(vertices, edges)
	if err != nil {
		return nil, fmt.Errorf("rebuild graph: %w", err)
	}
	return g, nil
}
