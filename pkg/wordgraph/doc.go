// Package wordgraph builds the word-ladder graph: vertices are words of one
// fixed length and edges join words that differ in exactly one position.
//
// # Overview
//
// A [Graph] is built once from a line-oriented word list and is immutable
// afterwards, so it can be shared freely between goroutines. Vertex identity
// is the load index: the n-th word read becomes vertex n and keeps that id for
// the lifetime of the graph.
//
// # Building
//
// [LoadVertices] parses the word list, [BuildEdges] compares every unordered
// pair of words, and [Build] does both:
//
//	g, err := wordgraph.Build(ctx, f, wordgraph.Options{Logger: logger})
//	if err != nil {
//	    return err
//	}
//	id := g.IndexForWord("fled")
//
// Edge construction is O(n²) in the number of words. For vocabularies in the
// tens of thousands this dominates start-up time, so [BuildEdges] logs
// progress every 5% of rows and can spread rows over a bounded worker pool.
// The resulting edge list is identical to the serial algorithm regardless of
// the worker count.
//
// # Edge Order
//
// Edges are ordered by their larger endpoint, then by their smaller endpoint:
// for every i, all pairs (i, j) with j < i come before any pair (i+1, j). The
// search engine discovers neighbours in this order, which makes traversal
// deterministic for a fixed input file. [Graph.Incident] exposes the
// per-vertex edge lists in the same order.
//
// # Failures
//
// Unparseable lines fail with a MALFORMED_INPUT error and words of differing
// lengths fail with PRECONDITION_FAILED (see pkg/errors). No partial graph is
// ever returned.
package wordgraph
