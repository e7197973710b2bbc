// Package cli implements the archlens command-line interface.
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

	"github.com/matzehuels/archlens/pkg/buildinfo"
	"github.com/matzehuels/archlens/pkg/cache"
	"github.com/matzehuels/archlens/pkg/icons"
	"github.com/matzehuels/archlens/pkg/optimize"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "archlens"

	// iconCacheSubdir holds file-backed icon payloads inside the cache dir.
	iconCacheSubdir = "icons"
)

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
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Archlens keeps large architecture diagrams fast to render",
		Long:         `Archlens decides which parts of a large architecture diagram are worth drawing for the current viewport, at what level of detail, and which icons still need to be loaded.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.optimizeCommand())
	root.AddCommand(c.exploreCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Engine Factory
// =============================================================================

// engineFlags are the flags shared by every command that builds an engine.
type engineFlags struct {
	configPath string
	backend    string
	redisURL   string
	mongoURI   string
	iconsDir   string
	iconURL    string
}

func (f *engineFlags) register(cmd *cobra.Command, defaultBackend string) {
	cmd.Flags().StringVarP(&f.configPath, "config", "c", "", "engine config file (.toml or .yaml)")
	cmd.Flags().StringVar(&f.backend, "cache", defaultBackend, "icon cache backend: "+strings.Join(cache.Backends, ", "))
	cmd.Flags().StringVar(&f.redisURL, "redis-url", os.Getenv("ARCHLENS_REDIS_URL"), "redis URL for --cache redis")
	cmd.Flags().StringVar(&f.mongoURI, "mongo-uri", os.Getenv("ARCHLENS_MONGO_URI"), "mongo URI for --cache mongo")
	cmd.Flags().StringVar(&f.iconsDir, "icons-dir", "", "load icons from this directory")
	cmd.Flags().StringVar(&f.iconURL, "icon-url", "", "load icons over HTTP from this base URL")
	cmd.MarkFlagsMutuallyExclusive("icons-dir", "icon-url")
	_ = cmd.RegisterFlagCompletionFunc("cache", completeBackends)
	_ = cmd.MarkFlagDirname("icons-dir")
}

// newEngine loads the configuration and wires cache and fetcher for it.
// The caller owns the engine and must Close it.
func (c *CLI) newEngine(ctx context.Context, f engineFlags) (*optimize.Engine, error) {
	logger := loggerFromContext(ctx)

	cfg := optimize.DefaultConfig()
	if f.configPath != "" {
		loaded, err := optimize.LoadConfig(f.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
		logger.Debug("loaded config", "path", f.configPath)
	}
	if f.iconURL != "" {
		cfg.Icons.BaseURL = f.iconURL
	}

	store, err := openCache(ctx, f, cfg.Cache.Capacity)
	if err != nil {
		return nil, err
	}

	var fetcher icons.Fetcher
	switch {
	case f.iconsDir != "":
		fetcher = icons.NewDirFetcher(f.iconsDir)
	case cfg.Icons.BaseURL != "":
		fetcher = icons.NewHTTPFetcher(nil, map[string]string{"User-Agent": buildinfo.UserAgent()}, component(logger, componentFetcher))
	}
	return optimize.NewEngine(cfg, store, nil, fetcher, component(logger, componentEngine)), nil
}

func openCache(ctx context.Context, f engineFlags, capacity int) (cache.Cache, error) {
	opts := cache.Options{
		Backend:  f.backend,
		Capacity: capacity,
		RedisURL: f.redisURL,
		MongoURI: f.mongoURI,
		Prefix:   cache.DefaultRedisPrefix,
	}
	if f.backend == cache.BackendFile {
		dir, err := cacheDir()
		if err != nil {
			loggerFromContext(ctx).Warn("no cache directory, icons will not be cached", "err", err)
			return cache.NewNullCache(), nil
		}
		opts.Dir = filepath.Join(dir, iconCacheSubdir)
	}
	store, err := cache.Open(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("open %s cache: %w", f.backend, err)
	}
	return store, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/archlens/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
