// Package pkg provides the libraries behind wordladder.
//
// # Overview
//
// wordladder finds shortest word ladders: sequences of equal-length words in
// which consecutive words differ in exactly one letter. The pkg directory is
// organized into these areas:
//
//  1. [wordgraph] - Word graph construction (vertices, one-letter edges)
//  2. [search] - Breadth-first search engine with a concurrent read surface
//  3. [graph] - JSON serialization of graphs and search snapshots
//  4. [render/nodelink] - DOT and SVG drawings of explored subgraphs
//  5. [cache] - Edge-list caching (filesystem, Redis)
//  6. [pipeline] - Orchestration (load → search → render)
//  7. [api] - HTTP API over one word graph
//  8. [observability] - Hooks and Prometheus metrics
//
// # Architecture
//
// The typical data flow:
//
//	word list (id<TAB>word per line)
//	         ↓
//	    [wordgraph] LoadVertices + BuildEdges (cached by content hash)
//	         ↓
//	    [search] Engine.FindPath, read live via Snapshot / Subscribe
//	         ↓
//	    terminal view, HTTP JSON, DOT/SVG
//
// # Quick Start
//
//	g, _ := wordgraph.BuildFile(ctx, "words4.tsv", wordgraph.Options{})
//	engine := search.NewEngine(g, search.Options{})
//	res, _ := engine.FindWordPath(ctx, "fled", "tint")
//	fmt.Println(res.Words) // [fled feed teed tend tent tint]
//
// The engine's state may be read from other goroutines while FindPath runs:
//
//	go func() {
//	    for range time.Tick(50 * time.Millisecond) {
//	        snap := engine.Snapshot()
//	        draw(snap.Active(), snap.Current)
//	    }
//	}()
package pkg
