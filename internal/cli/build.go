package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wordladder/pkg/graph"
	"github.com/matzehuels/wordladder/pkg/pipeline"
)

// buildCommand creates the build command for constructing a word graph.
func (c *CLI) buildCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		workers int
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "build [words.tsv]",
		Short: "Build the word graph for a word list",
		Long: `Build the word graph for a word list.

The word list has one entry per line; the word is the second tab-separated
field. All words must have the same length. Two words are joined by an edge
when they differ in exactly one position.

Edge construction compares every pair of words, so the result is cached by
the content hash of the word list. Use --refresh to rebuild anyway.

The graph is written as JSON (default: <input>.graph.json) and can be
rendered with 'export'.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.pipelineOptions(wordFileArg(args))
			opts.Refresh = refresh
			if workers > 0 {
				opts.Workers = workers
			}
			return c.runBuild(cmd.Context(), opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.graph.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "rebuild even if the graph is cached")
	cmd.Flags().IntVarP(&workers, "workers", "j", 0, "parallel workers for edge construction (default: one per CPU)")

	return cmd
}

// runBuild loads the graph and writes it as JSON.
func (c *CLI) runBuild(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, "Building word graph...")
	spinner.Start()

	g, cacheHit, err := runner.LoadGraphWithCacheInfo(ctx, opts)
	if err != nil {
		spinner.StopWithError("Build failed")
		return fmt.Errorf("build graph: %w", err)
	}
	spinner.Stop()
	prog.done("Built word graph")

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		outputPath = strings.TrimSuffix(opts.WordFile, filepath.Ext(opts.WordFile)) + ".graph.json"
	}
	if err := graph.WriteGraphFile(g, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Graph complete")
	printFile(outputPath)
	printStats(g.Len(), g.EdgeCount(), cacheHit)
	printNewline()
	printNextStep("Render", appName+" export "+outputPath)

	return nil
}
