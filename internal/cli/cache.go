package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/brandkit/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the raster cache",
		Long: `Rasterized logos are cached by content hash, so unchanged SVGs are not
rendered again. The cache lives in ~/.cache/brandkit unless ` + cacheEnv + `
names another directory, a redis:// URL, or "none".`,
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached rasters",
		RunE: func(cmd *cobra.Command, args []string) error {
			ch, err := newCache(false)
			if err != nil {
				return err
			}
			defer ch.Close()

			fc, ok := ch.(*cache.FileCache)
			if !ok {
				printInfo("Cache backend does not support clearing; entries expire after %s", cache.DefaultTTL)
				return nil
			}

			if _, err := os.Stat(fc.Dir()); os.IsNotExist(err) {
				printInfo("Cache is empty")
				return nil
			}

			count, err := fc.Clear()
			if err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}

			printSuccess("Cleared %d cached entries", count)
			printDetail("Directory: %s", fc.Dir())
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache location",
		RunE: func(cmd *cobra.Command, args []string) error {
			if loc, ok := os.LookupEnv(cacheEnv); ok {
				fmt.Fprintln(stdout, loc)
				return nil
			}
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(stdout, dir)
			return nil
		},
	}
}
