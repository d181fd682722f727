// Package cli implements the glyphsign command-line interface.
//
// The main commands are:
//   - graph: build the segment connectivity graph and export diagrams
//   - plan: generate a transition plan between glyphs
//   - play: run a display instance interactively in the terminal
//   - glyphs: list and validate a project's glyph definitions
//   - cache: manage the local plan cache
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/glyphsign/glyphsign/pkg/buildinfo"
	"github.com/glyphsign/glyphsign/pkg/cache"
	"github.com/glyphsign/glyphsign/pkg/planner"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "glyphsign"

// redisEnv names the environment variable carrying a redis:// URL.
// When set, the plan cache is shared through Redis instead of the
// local filesystem.
const redisEnv = "GLYPHSIGN_REDIS_URL"

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
		Use:          "glyphsign",
		Short:        "Glyphsign plans transitions for tiled segment displays",
		Long:         `Glyphsign works with tiled segmented-display layouts: it builds the connectivity graph between segments, generates animated transition plans between glyphs, and plays them back in the terminal.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.graphCommand())
	root.AddCommand(c.planCommand())
	root.AddCommand(c.playCommand())
	root.AddCommand(c.glyphsCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a planner runner for CLI use. Keys on a shared
// Redis server are scoped by app name so other tools can use the same
// instance.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*planner.Runner, error) {
	store, err := newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	var keyer cache.Keyer
	if os.Getenv(redisEnv) != "" {
		keyer = cache.NewScopedKeyer(cache.NewDefaultKeyer(), appName+":")
	}
	return planner.NewRunner(store, keyer, loggerFromContext(ctx)), nil
}

func newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if url := os.Getenv(redisEnv); url != "" {
		return cache.NewRedisCacheFromURL(ctx, url)
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/glyphsign/).
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
