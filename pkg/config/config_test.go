package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jverhoef/cardrail/pkg/errors"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default() should validate: %v", err)
	}
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}
	if cfg.Wall.DefaultViewportWidth != 1920 {
		t.Errorf("default viewport = %g, want 1920", cfg.Wall.DefaultViewportWidth)
	}
	if cfg.Cache.Kind != "memory" {
		t.Errorf("default cache kind = %q, want memory", cfg.Cache.Kind)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cardrail.toml")
	data := `
[wall]
bookend_scale = 3.0

[phases]
intro_pause_end = 0.1
intro_scale_end = 0.25
outro_scale_start = 0.75
outro_pause_start = 0.9

[server]
addr = ":9000"

[cache]
kind = "redis"
redis_addr = "localhost:6379"

[content]
manifest = "cards.toml"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Wall.BookendScale != 3.0 {
		t.Errorf("bookend scale = %g, want 3.0", cfg.Wall.BookendScale)
	}
	if cfg.Phases.IntroScaleEnd != 0.25 {
		t.Errorf("intro scale end = %g, want 0.25", cfg.Phases.IntroScaleEnd)
	}
	if cfg.Server.Addr != ":9000" {
		t.Errorf("addr = %q, want :9000", cfg.Server.Addr)
	}
	if cfg.Cache.Kind != "redis" || cfg.Cache.RedisAddr != "localhost:6379" {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	if cfg.Content.Manifest != "cards.toml" {
		t.Errorf("manifest = %q", cfg.Content.Manifest)
	}
	// Unset fields keep their defaults.
	if cfg.Server.ScrollableHeight != 10000 {
		t.Errorf("scrollable height = %g, want default 10000", cfg.Server.ScrollableHeight)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Fatalf("want FILE_NOT_FOUND, got %v", err)
	}
}

func TestLoadRejectsBadPhaseOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cardrail.toml")
	data := `
[phases]
intro_pause_end = 0.5
intro_scale_end = 0.2
outro_scale_start = 0.8
outro_pause_start = 0.95
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path)
	if !errors.Is(err, errors.ErrCodeConfigPhaseOrder) {
		t.Fatalf("want CONFIG_PHASE_ORDER, got %v", err)
	}
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bookend scale at 1", func(c *Config) { c.Wall.BookendScale = 1 }},
		{"zero viewport", func(c *Config) { c.Wall.DefaultViewportWidth = 0 }},
		{"unknown cache kind", func(c *Config) { c.Cache.Kind = "disk" }},
		{"redis without addr", func(c *Config) { c.Cache.Kind = "redis" }},
		{"zero scrollable height", func(c *Config) { c.Server.ScrollableHeight = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, errors.ErrCodeConfig) {
				t.Fatalf("want CONFIG_ERROR, got %v", err)
			}
		})
	}
}
