// Package cli implements the glasspiral command-line interface.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/glasspiral/glasspiral/pkg/buildinfo"
	"github.com/glasspiral/glasspiral/pkg/cache"
	"github.com/glasspiral/glasspiral/pkg/config"
	"github.com/glasspiral/glasspiral/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "glasspiral"

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
	Config config.Config
}

// New creates a new CLI instance with a default logger. Configuration
// is read from the XDG config file; a missing or broken file falls back
// to defaults with a warning.
func New(w io.Writer, level log.Level) *CLI {
	logger := newLogger(w, level)

	cfg, err := config.Load()
	if err != nil {
		logger.Warn("ignoring broken config file", "err", err)
		cfg = config.Default()
	}

	return &CLI{
		Logger: logger,
		Config: cfg,
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
		Short:        "Glasspiral renders execution traces as stained-glass spirals",
		Long:         `Glasspiral is a CLI tool that turns static execution traces into 3D stained-glass spiral scenes: every trace step becomes a colored glass building placed on a descending spiral.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.parseCommand())
	root.AddCommand(c.placeCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.visualizeCommand())
	root.AddCommand(c.stepsCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cache, err := c.newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, nil, c.Logger), nil
}

func (c *CLI) newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir := c.Config.Cache.Dir
	if dir == "" {
		var err error
		if dir, err = cacheDir(); err != nil {
			return cache.NewNullCache(), nil
		}
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/glasspiral/).
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

// =============================================================================
// Options Helpers
// =============================================================================

// pipelineOptions seeds pipeline options from the loaded config. Flags
// layer on top of these values.
func (c *CLI) pipelineOptions() pipeline.Options {
	return pipeline.Options{
		Spiral:   c.Config.SpiralParams(),
		Seed:     c.Config.Spiral.Seed,
		Formats:  c.Config.Render.Formats,
		Title:    c.Config.Render.Title,
		Profiles: c.Config.ProfileTable(),
	}
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string, fallback []string) []string {
	if s == "" {
		if len(fallback) > 0 {
			return fallback
		}
		return []string{pipeline.FormatHTML}
	}
	return strings.Split(s, ",")
}
