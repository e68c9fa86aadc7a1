package pipeline

import (
	"bytes"
	"context"
	"time"

	"github.com/matzehuels/wordladder/pkg/observability"
	"github.com/matzehuels/wordladder/pkg/wordgraph"
)

// Load parses a word list and builds its graph, reporting the build to the
// registered observability hooks.
func Load(ctx context.Context, words []byte, opts Options) (*wordgraph.Graph, error) {
	gopts := opts.GraphOptions()

	vertices, err := wordgraph.LoadVertices(bytes.NewReader(words), gopts)
	if err != nil {
		return nil, err
	}

	hooks := observability.Build()
	hooks.OnBuildStart(ctx, len(vertices))
	start := time.Now()

	edges, err := wordgraph.BuildEdges(ctx, vertices, gopts)
	if err != nil {
		hooks.OnBuildComplete(ctx, len(vertices), 0, time.Since(start), err)
		return nil, err
	}
	g, err := wordgraph.New(vertices, edges)
	hooks.OnBuildComplete(ctx, len(vertices), len(edges), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return g, nil
}
