package graph

import (
	"github.com/matzehuels/wordladder/pkg/search"
	"github.com/matzehuels/wordladder/pkg/wordgraph"
)

// =============================================================================
// Exploration - Search State Serialization
// =============================================================================

// Exploration is a search snapshot expressed in words.
type Exploration struct {
	Status     string     `json:"status"`
	Generation uint64     `json:"generation"`
	From       string     `json:"from,omitempty"`
	To         string     `json:"to,omitempty"`
	Current    string     `json:"current,omitempty"`
	Visited    []string   `json:"visited"`
	Frontier   []string   `json:"frontier"`
	Discovered []WordEdge `json:"discovered"`
	Path       []string   `json:"path,omitempty"`
	Expanded   int        `json:"expanded"`
}

// WordEdge is an edge named by its endpoint words.
type WordEdge struct {
	A string `json:"a"`
	B string `json:"b"`
}

// FromSnapshot converts an engine snapshot over g into an Exploration.
func FromSnapshot(g *wordgraph.Graph, snap search.Snapshot) Exploration {
	word := func(id int) string {
		if !g.Valid(id) {
			return ""
		}
		return g.Word(id)
	}

	exp := Exploration{
		Status:     snap.Status.String(),
		Generation: snap.Generation,
		From:       word(snap.Start),
		To:         word(snap.Goal),
		Current:    word(snap.Current),
		Visited:    g.Words(snap.Visited),
		Frontier:   make([]string, len(snap.Frontier)),
		Discovered: make([]WordEdge, len(snap.Discovered)),
		Expanded:   snap.Expanded,
	}
	for i, fe := range snap.Frontier {
		exp.Frontier[i] = g.Word(fe.Vertex)
	}
	for i, id := range snap.Discovered {
		e := g.Edge(id)
		exp.Discovered[i] = WordEdge{A: g.Word(e.A), B: g.Word(e.B)}
	}
	if snap.Path != nil {
		exp.Path = g.Words(snap.Path)
	}
	return exp
}
