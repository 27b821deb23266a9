// Package cli implements the diskforge command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/diskforge/diskforge/pkg/buildinfo"
	"github.com/diskforge/diskforge/pkg/cache"
	"github.com/diskforge/diskforge/pkg/pipeline"
)

const (
	// appName is the application name used for directories and display.
	appName = "diskforge"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "diskforge",
		Short:        "Diskforge generates encoder disk fabrication templates",
		Long:         `Diskforge computes slot geometry for rotary encoder disks and generates printable fabrication templates, cutting sequence diagrams, sensor placement diagrams, and step-by-step instruction guides.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			ctx := withLogger(cmd.Context(), c.Logger)
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.templateCommand())
	root.AddCommand(c.guideCommand())
	root.AddCommand(c.kitCommand())
	root.AddCommand(c.presetsCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cache, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, nil, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// newServerCache returns the cache backend for the preview server:
// Redis when a URL is given, the file cache otherwise.
func newServerCache(ctx context.Context, redisURL string) (cache.Cache, error) {
	if redisURL != "" {
		return cache.NewRedisCache(ctx, redisURL)
	}
	return newCache(false)
}

// cacheDir returns the cache directory using XDG standard (~/.cache/diskforge/).
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

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}

// parseGuideFormats parses a comma-separated guide format string.
func parseGuideFormats(s string) []string {
	if s == "" {
		return []string{pipeline.GuideMarkdown}
	}
	return strings.Split(s, ",")
}
