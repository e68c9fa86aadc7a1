package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wordladder/pkg/pipeline"
	"github.com/matzehuels/wordladder/pkg/search"
)

// pathCommand creates the path command for one-shot searches.
func (c *CLI) pathCommand() *cobra.Command {
	var (
		wordFile   string
		formatsStr string
		output     string
		noCache    bool
		full       bool
		detailed   bool
	)

	cmd := &cobra.Command{
		Use:   "path FROM TO",
		Short: "Find a shortest word ladder",
		Long: `Find a shortest word ladder between two words.

The search is breadth-first, so the ladder has the fewest possible steps.
With --format or --output the explored part of the graph is also rendered:
visited words, the remaining frontier, every edge examined and the ladder
itself.`,
		Example: `  wordladder path -w words4.tsv fled tint
  wordladder path -w words4.tsv fled tint -f svg,json -o fled-tint`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.pipelineOptions(wordFile)
			opts.From, opts.To = args[0], args[1]
			opts.Formats = parseFormats(formatsStr)
			opts.Full = full
			opts.Detailed = detailed
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runPath(cmd.Context(), opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&wordFile, "words", "w", "", "word list (default: word_file from config)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot, json, graph (comma-separated)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&full, "full", false, "draw every word, not only the explored ones")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "label words with their vertex ids")

	return cmd
}

// runPath searches and prints the ladder; artifacts are rendered only when
// requested.
func (c *CLI) runPath(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	render := output != "" || len(opts.Formats) > 0

	var (
		res       search.WordResult
		words     int
		edges     int
		cacheHit  bool
		artifacts map[string][]byte
	)
	if render {
		result, err := runner.Execute(ctx, opts)
		if err != nil {
			return err
		}
		res, artifacts = result.Search, result.Artifacts
		words, edges, cacheHit = result.Stats.WordCount, result.Stats.EdgeCount, result.CacheInfo.GraphHit
	} else {
		if err := opts.ValidateForSearch(); err != nil {
			return err
		}
		g, hit, err := runner.LoadGraphWithCacheInfo(ctx, opts)
		if err != nil {
			return fmt.Errorf("load: %w", err)
		}
		res, err = search.NewEngine(g, opts.EngineOptions()).FindWordPath(ctx, opts.From, opts.To)
		if err != nil {
			return fmt.Errorf("search: %w", err)
		}
		words, edges, cacheHit = g.Len(), g.EdgeCount(), hit
	}

	printLadder(res, opts.From, opts.To)
	printStats(words, edges, cacheHit)

	if !render {
		return nil
	}
	paths, err := writeArtifacts(artifacts, opts.Formats, output, opts.From+"-"+opts.To)
	if err != nil {
		return err
	}
	printNewline()
	for _, p := range paths {
		printFile(p)
	}
	return nil
}

// printLadder prints the outcome of a word-level search.
func printLadder(res search.WordResult, from, to string) {
	switch {
	case res.Missing != "":
		printWarning("%q is not in the word list", res.Missing)
		return
	case res.Found():
		steps := len(res.Words) - 1
		printSuccess("%s %s %s in %d %s", from, iconArrow, to, steps, plural(steps, "step", "steps"))
		printDetail("%s", strings.Join(res.Words, " "+iconArrow+" "))
	default:
		printWarning("No ladder from %s to %s", from, to)
	}
	printDetail("expanded %d words, examined %d edges", res.Expanded, res.Discovered)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// writeArtifacts writes rendered outputs and returns the written paths. A
// single format goes to output verbatim; several formats share output (or
// fallback) as a base path with the format as extension.
func writeArtifacts(artifacts map[string][]byte, formats []string, output, fallback string) ([]string, error) {
	if len(formats) == 0 {
		formats = []string{pipeline.FormatSVG}
	}

	var paths []string
	for _, format := range formats {
		data, ok := artifacts[format]
		if !ok {
			continue
		}
		path := artifactPath(format, output, fallback, len(formats) == 1)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func artifactPath(format, output, fallback string, single bool) string {
	if single && output != "" {
		return output
	}
	base := output
	if base == "" {
		base = fallback
	}
	if ext := filepath.Ext(base); pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		base = strings.TrimSuffix(base, ext)
	}
	return base + "." + extension(format)
}

func extension(format string) string {
	if format == pipeline.FormatGraph {
		return "graph.json"
	}
	return format
}
