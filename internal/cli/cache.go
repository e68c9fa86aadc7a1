package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wordladder/internal/config"
	"github.com/matzehuels/wordladder/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the word graph cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached word graphs",
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := c.newCache(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer backend.Close()

			clearer, ok := backend.(cache.Clearer)
			if !ok {
				printInfo("Cache is disabled")
				return nil
			}
			count, err := clearer.Clear(cmd.Context())
			if err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
			if count == 0 {
				printInfo("Cache is empty")
				return nil
			}

			printSuccess("Cleared %d cached %s", count, plural(count, "entry", "entries"))
			printDetail("%s", c.cacheLocation())
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where cached graphs are stored",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(c.cacheLocation())
			return nil
		},
	}
}

// cacheLocation describes the configured backend: a directory for the file
// cache, a redis URL otherwise.
func (c *CLI) cacheLocation() string {
	switch c.cfg.Cache.Backend {
	case config.BackendRedis:
		return fmt.Sprintf("redis://%s/%d", c.cfg.Cache.Redis.Addr, c.cfg.Cache.Redis.DB)
	case config.BackendNone:
		return "(disabled)"
	}
	dir, err := c.cacheDir()
	if err != nil {
		return "(unavailable)"
	}
	return dir
}
