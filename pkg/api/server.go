// Package api serves word-ladder searches over HTTP.
//
// Routes:
//
//	GET    /path?from=&to=   search synchronously, return the exploration
//	POST   /runs             start a paced search in the background
//	GET    /runs/{id}        live exploration of a run
//	DELETE /runs/{id}        cancel a run
//	GET    /healthz          liveness
//	GET    /metrics          Prometheus metrics
//
// Each run owns its own [search.Engine], so runs never block one another.
// GET /runs/{id} reads the engine through [search.Engine.Snapshot] while the
// search is still mutating it.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/wordladder/pkg/search"
	"github.com/matzehuels/wordladder/pkg/wordgraph"
)

const shutdownTimeout = 5 * time.Second

// Options configures a [Server].
type Options struct {
	// Search paces background runs. GET /path always runs unpaced.
	Search search.Options

	MaxRuns int           // runs kept at once; default 64
	RunTTL  time.Duration // how long finished runs stay readable; default 1h

	// Gatherer backs /metrics; nil means prometheus.DefaultGatherer.
	Gatherer prometheus.Gatherer

	Logger *log.Logger
}

// Server exposes one immutable word graph over HTTP.
type Server struct {
	graph  *wordgraph.Graph
	opts   Options
	logger *log.Logger
	runs   *registry
	router chi.Router

	// Parent of every run context; cancelled by Close.
	runCtx    context.Context
	cancelRun context.CancelFunc
}

// New creates a Server for g.
func New(g *wordgraph.Graph, opts Options) *Server {
	if opts.MaxRuns <= 0 {
		opts.MaxRuns = 64
	}
	if opts.RunTTL <= 0 {
		opts.RunTTL = time.Hour
	}
	if opts.Gatherer == nil {
		opts.Gatherer = prometheus.DefaultGatherer
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Search.Logger == nil {
		opts.Search.Logger = opts.Logger
	}

	s := &Server{
		graph:  g,
		opts:   opts,
		logger: opts.Logger,
		runs:   newRegistry(opts.MaxRuns, opts.RunTTL),
	}
	s.runCtx, s.cancelRun = context.WithCancel(context.Background())
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.Recoverer)
	r.Use(s.instrument)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok\n"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.opts.Gatherer, promhttp.HandlerOpts{}))

	r.Get("/path", s.handlePath)
	r.Route("/runs", func(r chi.Router) {
		r.Post("/", s.handleStartRun)
		r.Get("/{id}", s.handleGetRun)
		r.Delete("/{id}", s.handleCancelRun)
	})
	return r
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// Close cancels every running search. The server stays usable for reads.
func (s *Server) Close() {
	s.cancelRun()
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully and cancels outstanding runs.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr, "words", s.graph.Len())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		s.Close()
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	s.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
