package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/quadart/pkg/cache"
)

func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or empty the local artifact cache",
		Long: `The local cache holds rendered artifacts and images fetched from URLs,
zstd-compressed, under $XDG_CACHE_HOME/quadart. A Redis cache configured
through cache.redis_url is not touched by these commands; its entries
expire on their own.`,
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "clear",
			Short: "Delete every cached entry",
			Args:  cobra.NoArgs,
			RunE:  c.runCacheClear,
		},
		&cobra.Command{
			Use:   "info",
			Short: "Show the cache location and size",
			Args:  cobra.NoArgs,
			RunE:  c.runCacheInfo,
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print the cache directory",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				dir, err := cacheDir()
				if err != nil {
					return err
				}
				fmt.Fprintln(stdout, dir)
				return nil
			},
		},
	)
	return cmd
}

func openFileCache() (*cache.FileCache, error) {
	dir, err := cacheDir()
	if err != nil {
		return nil, err
	}
	return cache.NewFileCache(dir)
}

func (c *CLI) runCacheClear(cmd *cobra.Command, args []string) error {
	fc, err := openFileCache()
	if err != nil {
		return err
	}
	n, err := fc.Clear()
	if err != nil {
		return err
	}
	if n == 0 {
		printInfo("Cache is already empty")
		return nil
	}
	printSuccess("Removed %d cached entries", n)
	printDetail("%s", fc.Dir())
	if c.config.Cache.RedisURL != "" {
		printDetail("Redis at %s was left untouched", c.config.Cache.RedisURL)
	}
	return nil
}

func (c *CLI) runCacheInfo(cmd *cobra.Command, args []string) error {
	fc, err := openFileCache()
	if err != nil {
		return err
	}
	n, size, err := fc.Usage()
	if err != nil {
		return err
	}
	printKeyValue("Directory", fc.Dir())
	printKeyValue("Entries", fmt.Sprintf("%d", n))
	printKeyValue("Size", formatBytes(size))
	if c.config.Cache.RedisURL != "" {
		printKeyValue("Redis", c.config.Cache.RedisURL)
	}
	return nil
}

// formatBytes renders n with a binary unit, e.g. "1.5 MiB".
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
