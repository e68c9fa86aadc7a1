package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	werrors "github.com/matzehuels/wordladder/pkg/errors"
	"github.com/matzehuels/wordladder/pkg/graph"
	"github.com/matzehuels/wordladder/pkg/pipeline"
	"github.com/matzehuels/wordladder/pkg/search"
)

// exportCommand creates the export command for rendering a saved graph.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		detailed   bool
	)

	cmd := &cobra.Command{
		Use:   "export [graph.json]",
		Short: "Render a word graph to DOT or SVG",
		Long: `Render a word graph to DOT or SVG.

The export command takes a graph.json file (produced by 'build') and draws
every word and edge. Large vocabularies produce very large drawings; use
'path --format' to draw only the part a search explored.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats := parseFormats(formatsStr)
			for _, f := range formats {
				if f != pipeline.FormatDOT && f != pipeline.FormatSVG {
					return werrors.New(werrors.ErrCodeInvalidInput, "invalid export format: %q (must be dot or svg)", f)
				}
			}
			return c.runExport(cmd.Context(), args[0], formats, output, detailed)
		},
	}

	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot (comma-separated)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "label words with their vertex ids")

	return cmd
}

func (c *CLI) runExport(ctx context.Context, input string, formats []string, output string, detailed bool) error {
	g, err := graph.ReadGraphFile(input)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", input, err)
	}
	c.Logger.Debug("loaded graph", "words", g.Len(), "edges", g.EdgeCount())

	opts := pipeline.Options{
		Formats:  formats,
		Full:     true,
		Detailed: detailed,
		Logger:   c.Logger,
	}

	spinner := newSpinnerWithContext(ctx, "Rendering graph...")
	spinner.Start()

	idle := search.NewEngine(g, search.Options{Logger: c.Logger}).Snapshot()
	artifacts, err := pipeline.Render(ctx, g, idle, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return fmt.Errorf("render: %w", err)
	}
	spinner.Stop()

	base := strings.TrimSuffix(input, filepath.Ext(input))
	base = strings.TrimSuffix(base, ".graph")
	paths, err := writeArtifacts(artifacts, opts.Formats, output, base)
	if err != nil {
		return err
	}

	printSuccess("Export complete")
	for _, p := range paths {
		printFile(p)
	}
	printDetail("%d words · %d edges", g.Len(), g.EdgeCount())
	return nil
}
