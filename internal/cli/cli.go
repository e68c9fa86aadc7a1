// Package cli implements the wordladder command-line interface.
//
// Commands:
//   - build: load a word list and build (or fetch from cache) its edge list
//   - path: find a shortest ladder and optionally render the explored graph
//   - watch: run a paced search and draw it live in the terminal
//   - export: render a saved graph to DOT or SVG
//   - serve: expose searches over HTTP
//   - cache, config, completion: housekeeping
//
// Configuration comes from $XDG_CONFIG_HOME/wordladder/config.toml (or
// --config); flags override file values.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/wordladder/internal/config"
	"github.com/matzehuels/wordladder/pkg/buildinfo"
	"github.com/matzehuels/wordladder/pkg/cache"
	"github.com/matzehuels/wordladder/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "wordladder"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	cfg        config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		cfg:    config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Wordladder finds shortest word ladders and shows the search live",
		Long:         `Wordladder builds a graph of equal-length words joined when they differ in one letter, then finds shortest ladders between two words with a breadth-first search you can watch as it runs.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/wordladder/config.toml)")

	root.AddCommand(c.buildCommand())
	root.AddCommand(c.pathCommand())
	root.AddCommand(c.watchCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.cfg = cfg
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	backend, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	var keyer cache.Keyer
	if ns := c.cfg.Cache.Namespace; ns != "" {
		keyer = cache.NewScopedKeyer(nil, ns)
	}
	return pipeline.NewRunner(backend, keyer, c.Logger), nil
}

func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch c.cfg.Cache.Backend {
	case config.BackendNone:
		return cache.NewNullCache(), nil
	case config.BackendRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     c.cfg.Cache.Redis.Addr,
			Password: c.cfg.Cache.Redis.Password,
			DB:       c.cfg.Cache.Redis.DB,
		})
		if err != nil {
			return nil, fmt.Errorf("connect cache: %w", err)
		}
		return rc, nil
	default:
		dir, err := c.cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	}
}

// pipelineOptions seeds load options from the configuration. Searches run
// unpaced unless the caller sets delays.
func (c *CLI) pipelineOptions(wordFile string) pipeline.Options {
	if wordFile == "" {
		wordFile = c.cfg.WordFile
	}
	return pipeline.Options{
		WordFile: wordFile,
		Workers:  c.cfg.Workers,
		Logger:   c.Logger,
	}
}

// wordFileArg returns the optional positional word-file argument.
func wordFileArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the file cache directory: the configured one, else the
// XDG standard location (~/.cache/wordladder/).
func (c *CLI) cacheDir() (string, error) {
	if c.cfg.Cache.Dir != "" {
		return c.cfg.Cache.Dir, nil
	}
	return defaultCacheDir()
}

func defaultCacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
// An empty string yields nil so callers can apply their own default.
func parseFormats(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
