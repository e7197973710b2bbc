package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/archlens/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the icon cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	var ef engineFlags

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear all cached icons",
		Long: `Clear cached icon payloads. By default the local file cache is cleared;
pass --cache redis or --cache mongo to clear a shared backend instead.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ef.backend != cache.BackendFile {
				return clearBackend(ctx, ef)
			}

			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			dir = filepath.Join(dir, iconCacheSubdir)
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				printInfo("Cache is empty")
				return nil
			}

			fc, err := cache.NewFileCache(dir)
			if err != nil {
				return err
			}
			count, err := fc.ClearCount(ctx)
			if err != nil {
				return err
			}
			printSuccess("Cleared %d cached icons", count)
			printDetail("Directory: %s", dir)
			return nil
		},
	}

	cmd.Flags().StringVar(&ef.backend, "cache", cache.BackendFile, "backend to clear: "+strings.Join(cache.Backends, ", "))
	cmd.Flags().StringVar(&ef.redisURL, "redis-url", os.Getenv("ARCHLENS_REDIS_URL"), "redis URL for --cache redis")
	cmd.Flags().StringVar(&ef.mongoURI, "mongo-uri", os.Getenv("ARCHLENS_MONGO_URI"), "mongo URI for --cache mongo")
	return cmd
}

func clearBackend(ctx context.Context, ef engineFlags) error {
	store, err := openCache(ctx, ef, 0)
	if err != nil {
		return err
	}
	defer store.Close()

	n, err := store.Len(ctx)
	if err != nil {
		return err
	}
	if err := store.Clear(ctx); err != nil {
		return err
	}
	printSuccess("Cleared %d cached icons", n)
	printDetail("Backend: %s", ef.backend)
	return nil
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Println(dir)
			return nil
		},
	}
}
