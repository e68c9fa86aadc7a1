// Package graph provides serialization types for word graphs and search
// explorations.
//
// This package defines the canonical wire format for wordladder's data, used
// for JSON files, API responses and the edge-list cache.
//
// # Architecture
//
// The package sits at the serialization boundary between internal
// representations and external formats:
//
//   - [Graph], [Exploration]: Serialization types (this package)
//   - pkg/wordgraph.Graph: Internal immutable graph
//   - pkg/search.Snapshot: Internal engine state
//
// Use [FromWordGraph]/[ToWordGraph] and [FromSnapshot] to convert between
// them.
//
// # Graph Serialization
//
// Graphs use a node-link JSON format. Node ids are vertex ids and must be
// dense and in order; edges are listed in edge-id order:
//
//	{
//	  "word_length": 4,
//	  "nodes": [{"id": 0, "word": "fled"}, {"id": 1, "word": "fred"}],
//	  "edges": [{"a": 1, "b": 0}]
//	}
//
// Common operations:
//
//	g, _ := graph.ReadGraphFile("words.json")   // File → wordgraph.Graph
//	graph.WriteGraphFile(g, "output.json")      // wordgraph.Graph → File
//	data, _ := graph.MarshalGraph(g)            // wordgraph.Graph → []byte
//
// Reading always validates: every edge must join two words that differ in
// exactly one letter, and a malformed document fails with INVALID_FORMAT.
//
// # Exploration Serialization
//
// [Exploration] is a word-level rendering of a search snapshot, as served by
// the HTTP API:
//
//	exp := graph.FromSnapshot(g, eng.Snapshot())
//
// # Concurrency
//
// All functions are safe for concurrent use.
package graph
