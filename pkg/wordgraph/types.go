package wordgraph

import "fmt"

// NotFound is returned by [Graph.IndexForWord] for words outside the
// vocabulary. It is never a valid vertex id.
const NotFound = -1

// Vertex is a word in the graph. Its id is its position in the load order.
type Vertex struct {
	Word string
}

// Edge joins two vertices whose words differ in exactly one position.
// A is the larger index and B the smaller; A != B always holds.
type Edge struct {
	A int
	B int
}

// Other returns the endpoint of e opposite v. The result is undefined when v
// is not an endpoint of e.
func (e Edge) Other(v int) int {
	if e.A == v {
		return e.B
	}
	return e.A
}

// Has reports whether v is an endpoint of e.
func (e Edge) Has(v int) bool { return e.A == v || e.B == v }

func (e Edge) String() string { return fmt.Sprintf("%d-%d", e.A, e.B) }
