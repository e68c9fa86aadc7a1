package pipeline

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/matzehuels/wordladder/pkg/graph"
	"github.com/matzehuels/wordladder/pkg/render/nodelink"
	"github.com/matzehuels/wordladder/pkg/search"
	"github.com/matzehuels/wordladder/pkg/wordgraph"
)

// Render generates output artifacts in the requested formats from a search
// snapshot over g.
func Render(ctx context.Context, g *wordgraph.Graph, snap search.Snapshot, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	dotOpts := nodelink.Options{Full: opts.Full, Detailed: opts.Detailed}
	var dot string
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatDOT, FormatSVG:
			if dot == "" {
				dot = nodelink.ToDOT(g, snap, dotOpts)
			}
			if format == FormatDOT {
				data = []byte(dot)
			} else {
				data, err = nodelink.RenderSVG(ctx, dot)
			}
		case FormatJSON:
			data, err = json.MarshalIndent(graph.FromSnapshot(g, snap), "", "  ")
		case FormatGraph:
			data, err = graph.MarshalGraph(g)
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}
