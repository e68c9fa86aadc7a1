package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/matzehuels/wordladder/pkg/api"
	"github.com/matzehuels/wordladder/pkg/observability"
	"github.com/matzehuels/wordladder/pkg/search"
)

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		wordFile string
		addr     string
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve word-ladder searches over HTTP",
		Long: `Serve word-ladder searches over HTTP.

The word graph is built (or loaded from cache) once at startup. Endpoints:

  GET    /path?from=&to=   shortest ladder plus the explored graph
  POST   /runs             start a paced search, returns its id
  GET    /runs/{id}        live state of a search
  DELETE /runs/{id}        cancel a search
  GET    /healthz          liveness
  GET    /metrics          Prometheus metrics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.cfg.Server.Addr
			}
			return c.runServe(cmd.Context(), wordFile, addr, noCache)
		},
	}

	cmd.Flags().StringVarP(&wordFile, "words", "w", "", "word list (default: word_file from config)")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: server.addr from config)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, wordFile, addr string, noCache bool) error {
	hooks := observability.NewPrometheusHooks(prometheus.DefaultRegisterer)
	observability.SetBuildHooks(hooks)
	observability.SetSearchHooks(hooks)
	observability.SetCacheHooks(hooks)
	observability.SetHTTPHooks(hooks)

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	g, cacheHit, err := runner.LoadGraphWithCacheInfo(ctx, c.pipelineOptions(wordFile))
	if err != nil {
		return fmt.Errorf("load graph: %w", err)
	}

	srv := api.New(g, api.Options{
		Search: search.Options{
			StepDelay: c.cfg.Search.StepDelay,
			EdgeDelay: c.cfg.Search.EdgeDelay,
			Logger:    c.Logger,
		},
		MaxRuns:  c.cfg.Server.MaxRuns,
		RunTTL:   c.cfg.Server.RunTTL,
		Gatherer: prometheus.DefaultGatherer,
		Logger:   c.Logger,
	})

	printSuccess("Serving word graph")
	printStats(g.Len(), g.EdgeCount(), cacheHit)
	printKeyValue("address", "http://"+addr)
	printKeyValue("step delay", c.cfg.Search.StepDelay.String())
	printKeyValue("run ttl", c.cfg.Server.RunTTL.Round(time.Second).String())
	printNewline()

	if err := srv.ListenAndServe(ctx, addr); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}
