package wordgraph

import (
	"context"
	"io"
	"os"
	"slices"

	werrors "github.com/matzehuels/wordladder/pkg/errors"
)

// Graph is an immutable word-ladder graph. The zero value is an empty graph.
// A Graph is safe for concurrent use once constructed.
type Graph struct {
	vertices []Vertex
	edges    []Edge
	incident [][]int        // vertex -> edge ids, ascending
	index    map[string]int // word -> first vertex with that word
	wordLen  int
}

// Build loads vertices from r and computes the full edge set. It returns no
// graph at all on failure.
func Build(ctx context.Context, r io.Reader, opts Options) (*Graph, error) {
	opts.setDefaults()

	vertices, err := LoadVertices(r, opts)
	if err != nil {
		return nil, err
	}
	edges, err := BuildEdges(ctx, vertices, opts)
	if err != nil {
		return nil, err
	}
	return assemble(vertices, edges), nil
}

// BuildFile opens path and builds a graph from it with [Build].
func BuildFile(ctx context.Context, path string, opts Options) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, werrors.Wrap(werrors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, err
	}
	defer f.Close()
	return Build(ctx, f, opts)
}

// New assembles a graph from vertices and a precomputed edge list, such as
// one read back from a cache. Every edge is checked: endpoints must be in
// range and distinct, each unordered pair may appear once, and the two words
// must differ in exactly one position. Edges must be ordered as
// [BuildEdges] orders them.
func New(vertices []Vertex, edges []Edge) (*Graph, error) {
	words, _, err := wordRunes(vertices)
	if err != nil {
		return nil, err
	}

	n := len(vertices)
	for k, e := range edges {
		if e.A < 0 || e.A >= n || e.B < 0 || e.B >= n {
			return nil, werrors.Precondition("edge %d (%s) references a vertex outside [0, %d)", k, e, n)
		}
		if e.A <= e.B {
			return nil, werrors.Precondition("edge %d (%s) must have A > B", k, e)
		}
		if k > 0 && compareEdges(edges[k-1], e) >= 0 {
			return nil, werrors.Precondition("edge %d (%s) is duplicated or out of order", k, e)
		}
		if !adjacent(words[e.A], words[e.B]) {
			return nil, werrors.Precondition("edge %d joins %q and %q, which do not differ by one letter",
				k, vertices[e.A].Word, vertices[e.B].Word)
		}
	}

	return assemble(slices.Clone(vertices), slices.Clone(edges)), nil
}

func compareEdges(x, y Edge) int {
	if x.A != y.A {
		return x.A - y.A
	}
	return x.B - y.B
}

func assemble(vertices []Vertex, edges []Edge) *Graph {
	g := &Graph{
		vertices: vertices,
		edges:    edges,
		incident: make([][]int, len(vertices)),
		index:    make(map[string]int, len(vertices)),
	}
	if len(vertices) > 0 {
		g.wordLen = len([]rune(vertices[0].Word))
	}
	for i, v := range vertices {
		if _, ok := g.index[v.Word]; !ok {
			g.index[v.Word] = i
		}
	}
	for id, e := range edges {
		g.incident[e.A] = append(g.incident[e.A], id)
		g.incident[e.B] = append(g.incident[e.B], id)
	}
	return g
}

// Len returns the number of vertices.
func (g *Graph) Len() int { return len(g.vertices) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// WordLength returns the common length, in characters, of every word.
// It is 0 for an empty graph.
func (g *Graph) WordLength() int { return g.wordLen }

// Vertex returns vertex i. It panics if i is out of range.
func (g *Graph) Vertex(i int) Vertex { return g.vertices[i] }

// Word returns the word of vertex i. It panics if i is out of range.
func (g *Graph) Word(i int) string { return g.vertices[i].Word }

// Edge returns edge i. It panics if i is out of range.
func (g *Graph) Edge(i int) Edge { return g.edges[i] }

// Vertices returns a copy of the vertex list in id order.
func (g *Graph) Vertices() []Vertex { return slices.Clone(g.vertices) }

// Edges returns a copy of the edge list in edge-id order.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// Valid reports whether v is a vertex id of g.
func (g *Graph) Valid(v int) bool { return v >= 0 && v < len(g.vertices) }

// IndexForWord returns the id of the first vertex holding word, or
// [NotFound].
func (g *Graph) IndexForWord(word string) int {
	if i, ok := g.index[word]; ok {
		return i
	}
	return NotFound
}

// Incident returns the ids of the edges touching v, in edge-list order.
// This is the order a linear scan of the edge list would find them in.
// The returned slice must not be modified.
func (g *Graph) Incident(v int) []int { return g.incident[v] }

// Words maps a sequence of vertex ids to their words.
func (g *Graph) Words(ids []int) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = g.vertices[id].Word
	}
	return out
}
