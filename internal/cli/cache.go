package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/algexeno/cistercian/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the render cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached renders",
		Long:  "Remove all cached renders from the file cache. Redis and MongoDB entries expire on their own.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.Config.Cache
			if cfg.Backend != "" && cfg.Backend != cache.BackendFile {
				printWarning(cmd.OutOrStdout(), "Cache backend is %s; only the file cache can be cleared", cfg.Backend)
				return nil
			}
			if cfg.Dir == "" {
				printInfo(cmd.OutOrStdout(), "Cache is disabled")
				return nil
			}

			fc, err := cache.NewFileCache(cfg.Dir)
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			count, err := fc.Clear()
			if err != nil {
				return err
			}

			printSuccess(cmd.OutOrStdout(), "Cleared %d cached entries", count)
			printDetail(cmd.OutOrStdout(), "Directory: %s", fc.Dir())
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.Config.Cache
			switch cfg.Backend {
			case "", cache.BackendFile:
				fmt.Fprintln(cmd.OutOrStdout(), cfg.Dir)
			case cache.BackendRedis:
				fmt.Fprintln(cmd.OutOrStdout(), "redis://"+cfg.RedisAddr)
			default:
				fmt.Fprintln(cmd.OutOrStdout(), cfg.Backend)
			}
			return nil
		},
	}
}
