// Package cli implements the cardrail command-line interface.
//
// This package provides commands for laying out portfolio card walls,
// rendering them as SVG or category maps, previewing the scroll sequence in
// the terminal, serving the layout API over HTTP, and managing the local
// cache. The CLI is built using cobra and supports verbose logging via the
// charmbracelet/log library.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/jverhoef/cardrail/pkg/buildinfo"
	"github.com/jverhoef/cardrail/pkg/cache"
	"github.com/jverhoef/cardrail/pkg/config"
	"github.com/jverhoef/cardrail/pkg/content"
	"github.com/jverhoef/cardrail/pkg/errors"
	"github.com/jverhoef/cardrail/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "cardrail"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger     *log.Logger
	ConfigPath string
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
		Use:          appName,
		Short:        "Cardrail lays out portfolio card walls for scroll-driven pages",
		Long:         `Cardrail packs portfolio cards into a horizontal two-row wall, computes the scroll choreography (pan, bookend scaling, category spy, parallax), and renders or serves the result.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.ConfigPath, "config", "", "config file (TOML)")

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig loads the configured or default configuration.
func (c *CLI) loadConfig() (config.Config, error) {
	return config.Load(c.ConfigPath)
}

// newRunner creates a pipeline runner for CLI use. Redis is a shared
// backend, so its keys are namespaced under the app name; the local
// backends own their whole key space.
func (c *CLI) newRunner(cfg config.Config, noCache bool) (*pipeline.Runner, error) {
	store, err := c.newCache(cfg, noCache)
	if err != nil {
		return nil, err
	}
	var keyer cache.Keyer
	if !noCache && cfg.Cache.Kind == "redis" {
		keyer = cache.NewScopedKeyer(nil, appName+":")
	}
	return pipeline.NewRunner(store, keyer, c.Logger), nil
}

func (c *CLI) newCache(cfg config.Config, noCache bool) (cache.Cache, error) {
	if noCache || cfg.Cache.Kind == "none" {
		return cache.NewNopCache(), nil
	}
	switch cfg.Cache.Kind {
	case "memory":
		return cache.NewMemoryCache(), nil
	case "redis":
		return cache.NewRedisCache(context.Background(), cache.RedisConfig{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		})
	case "file":
		dir := cfg.Cache.Dir
		if dir == "" {
			var err error
			if dir, err = cacheDir(); err != nil {
				return cache.NewNopCache(), nil
			}
		}
		return cache.NewFileCache(dir)
	default:
		return cache.NewNopCache(), nil
	}
}

// newSource resolves the content source: an explicit manifest argument wins,
// then the configured MongoDB collection, then the configured manifest.
func (c *CLI) newSource(ctx context.Context, cfg config.Config, manifestArg string) (content.Source, func(), error) {
	if manifestArg != "" {
		return content.NewFileSource(manifestArg), func() {}, nil
	}
	if cfg.Content.MongoURI != "" {
		src, err := content.NewMongoSource(ctx, content.MongoConfig{
			URI:        cfg.Content.MongoURI,
			Database:   cfg.Content.MongoDatabase,
			Collection: cfg.Content.MongoCollection,
		})
		if err != nil {
			return nil, nil, err
		}
		return src, func() { _ = src.Close(ctx) }, nil
	}
	if cfg.Content.Manifest != "" {
		return content.NewFileSource(cfg.Content.Manifest), func() {}, nil
	}
	return nil, nil, errors.New(errors.ErrCodeInvalidInput,
		"no content source: pass a manifest argument or configure [content]")
}

// cacheDir returns the cache directory using XDG standard (~/.cache/cardrail/).
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
