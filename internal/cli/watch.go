package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	werrors "github.com/matzehuels/wordladder/pkg/errors"
	"github.com/matzehuels/wordladder/pkg/pipeline"
	"github.com/matzehuels/wordladder/pkg/search"
	"github.com/matzehuels/wordladder/pkg/wordgraph"
)

// watchCommand creates the watch command, which draws a paced search live.
func (c *CLI) watchCommand() *cobra.Command {
	var (
		wordFile   string
		noCache    bool
		exitOnDone bool
		stepDelay  time.Duration
		edgeDelay  time.Duration
		refresh    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch FROM TO",
		Short: "Watch a ladder search as it runs",
		Long: `Watch a ladder search as it runs.

The search is slowed down so each step can be followed: words waiting in the
frontier, the word being expanded, words already visited and the edges
examined so far. When the goal is reached the ladder is highlighted.

Press q to quit.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if !flags.Changed("step-delay") {
				stepDelay = c.cfg.Search.StepDelay
			}
			if !flags.Changed("edge-delay") {
				edgeDelay = c.cfg.Search.EdgeDelay
			}
			if !flags.Changed("refresh") {
				refresh = c.cfg.TUI.Refresh
			}

			opts := c.pipelineOptions(wordFile)
			opts.From, opts.To = args[0], args[1]
			opts.StepDelay, opts.EdgeDelay = stepDelay, edgeDelay
			if err := opts.ValidateForSearch(); err != nil {
				return err
			}
			if refresh <= 0 {
				return werrors.New(werrors.ErrCodeInvalidInput, "refresh must be positive")
			}
			return c.runWatch(cmd.Context(), opts, refresh, exitOnDone, noCache)
		},
	}

	cmd.Flags().StringVarP(&wordFile, "words", "w", "", "word list (default: word_file from config)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&exitOnDone, "exit", false, "exit as soon as the search ends")
	cmd.Flags().DurationVar(&stepDelay, "step-delay", 0, "pause after each expanded word (default: search.step_delay from config)")
	cmd.Flags().DurationVar(&edgeDelay, "edge-delay", 0, "pause after each examined edge (default: search.edge_delay from config)")
	cmd.Flags().DurationVar(&refresh, "refresh", 0, "redraw interval (default: tui.refresh from config)")

	return cmd
}

// runWatch loads the graph, then hands the terminal to the watch model
// until the user quits.
func (c *CLI) runWatch(ctx context.Context, opts pipeline.Options, refresh time.Duration, exitOnDone, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Loading word graph...")
	spinner.Start()
	g, err := runner.LoadGraph(ctx, opts)
	if err != nil {
		spinner.StopWithError("Load failed")
		return fmt.Errorf("load: %w", err)
	}
	spinner.Stop()

	from, to := opts.From, opts.To
	for _, w := range []string{from, to} {
		if g.IndexForWord(w) == wordgraph.NotFound {
			printWarning("%q is not in the word list", w)
			return nil
		}
	}

	// The alternate screen owns the terminal; engine logs would tear it.
	engineOpts := opts.EngineOptions()
	engineOpts.Logger = log.New(io.Discard)
	engine := search.NewEngine(g, engineOpts)
	model := newWatchModel(ctx, engine, from, to, refresh)
	model.exitOnDone = exitOnDone

	p := tea.NewProgram(model, tea.WithAltScreen())
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			p.Quit()
		case <-stop:
		}
	}()

	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	m := final.(watchModel)
	if !m.finished {
		printInfo("Search stopped")
		return nil
	}
	if m.err != nil && !errors.Is(m.err, context.Canceled) {
		return m.err
	}
	printLadder(m.result, from, to)
	return nil
}
