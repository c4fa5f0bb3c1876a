package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wikigraph/pkg/cache"
	"github.com/matzehuels/wikigraph/pkg/config"
)

// clearer is implemented by caches that can drop all their entries.
type clearer interface {
	Clear(ctx context.Context) (int, error)
}

// newCache opens the configured report cache: Redis when an address is
// set, the file cache otherwise. noCache disables caching entirely.
func newCache(ctx context.Context, cfg config.Cache, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache("disabled by --no-cache"), nil
	}
	if cfg.RedisAddr != "" {
		rc, err := cache.NewRedisCache(ctx, cfg.RedisAddr, cfg.RedisDB)
		if err != nil {
			return nil, err
		}
		return rc, nil
	}
	dir, err := cfg.CacheDir()
	if err != nil {
		return cache.NewNullCache(fmt.Sprintf("no cache directory: %v", err)), nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, err
	}
	return fc, nil
}

// cacheLocation describes where newCache stores entries.
func cacheLocation(cfg config.Cache) (string, error) {
	if cfg.RedisAddr != "" {
		return fmt.Sprintf("redis://%s/%d", cfg.RedisAddr, cfg.RedisDB), nil
	}
	return cfg.CacheDir()
}

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the statistics report cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached statistics reports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := newCache(ctx, c.Config.Cache, false)
			if err != nil {
				return err
			}
			defer store.Close()

			if reason, off := cache.Disabled(store); off {
				printInfo("Cache is disabled: %s", reason)
				return nil
			}
			cl, ok := store.(clearer)
			if !ok {
				printInfo("Cache cannot be cleared")
				return nil
			}
			count, err := cl.Clear(ctx)
			if err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}

			loc, _ := cacheLocation(c.Config.Cache)
			printSuccess("Cleared %d cached entries", count)
			printDetail("Location: %s", loc)
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := cacheLocation(c.Config.Cache)
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(out, loc)
			return nil
		},
	}
}
