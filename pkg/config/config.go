// Package config loads the cardrail configuration from a TOML file.
//
// Every command runs without a config file: [Default] returns the built-in
// configuration and Load merges the file over it. Validation is strict —
// misconfigured phase boundaries are a startup failure, not something to
// patch at runtime.
package config

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/jverhoef/cardrail/pkg/errors"
	"github.com/jverhoef/cardrail/pkg/scroll"
)

// Config is the top-level configuration.
type Config struct {
	Wall    Wall          `toml:"wall"`
	Phases  scroll.Phases `toml:"phases"`
	Server  Server        `toml:"server"`
	Cache   CacheConfig   `toml:"cache"`
	Content Content       `toml:"content"`
}

// Wall holds presentation settings for the scroll sequence.
type Wall struct {
	// BookendScale is the full-bleed scale of the lead/trail cards.
	BookendScale float64 `toml:"bookend_scale"`

	// DefaultViewportWidth is used when a caller provides none.
	DefaultViewportWidth float64 `toml:"default_viewport_width"`
}

// Server configures the HTTP API.
type Server struct {
	Addr string `toml:"addr"`

	// ScrollableHeight is the host page's scrollable container height in
	// px, used to convert jump progress into a scrollTop value.
	ScrollableHeight float64 `toml:"scrollable_height"`
}

// CacheConfig selects and configures a cache backend.
type CacheConfig struct {
	// Kind is one of "memory", "file", "redis", "none".
	Kind string `toml:"kind"`

	// Dir is the file backend's directory. Empty uses the XDG cache dir.
	Dir string `toml:"dir"`

	// Redis backend settings.
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
}

// Content selects a content source.
type Content struct {
	// Manifest is a JSON/TOML manifest path (the CLI default).
	Manifest string `toml:"manifest"`

	// Mongo settings; a non-empty URI selects the MongoDB source.
	MongoURI        string `toml:"mongo_uri"`
	MongoDatabase   string `toml:"mongo_database"`
	MongoCollection string `toml:"mongo_collection"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Wall: Wall{
			BookendScale:         scroll.DefaultBookendScale,
			DefaultViewportWidth: 1920,
		},
		Phases: scroll.DefaultPhases,
		Server: Server{
			Addr:             ":8380",
			ScrollableHeight: 10000,
		},
		Cache: CacheConfig{
			Kind: "memory",
		},
		Content: Content{
			MongoDatabase:   "cardrail",
			MongoCollection: "cards",
		},
	}
}

// Load reads path over the defaults and validates the result. An empty path
// returns the validated defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Config{}, errors.Wrap(errors.ErrCodeConfig, err, "parse config %s", path)
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate asserts configuration invariants. Phase boundary order is the
// critical one: it is checked here, at startup, never at render time.
func (c Config) Validate() error {
	if err := c.Phases.Validate(); err != nil {
		return err
	}
	if c.Wall.BookendScale <= 1 {
		return errors.New(errors.ErrCodeConfig, "wall.bookend_scale must be > 1, got %g", c.Wall.BookendScale)
	}
	if c.Wall.DefaultViewportWidth <= 0 {
		return errors.New(errors.ErrCodeConfig, "wall.default_viewport_width must be > 0, got %g", c.Wall.DefaultViewportWidth)
	}
	switch c.Cache.Kind {
	case "", "memory", "file", "redis", "none":
	default:
		return errors.New(errors.ErrCodeConfig, "cache.kind %q is not one of memory/file/redis/none", c.Cache.Kind)
	}
	if c.Cache.Kind == "redis" && c.Cache.RedisAddr == "" {
		return errors.New(errors.ErrCodeConfig, "cache.kind=redis requires cache.redis_addr")
	}
	if c.Server.ScrollableHeight <= 0 {
		return errors.New(errors.ErrCodeConfig, "server.scrollable_height must be > 0, got %g", c.Server.ScrollableHeight)
	}
	return nil
}
