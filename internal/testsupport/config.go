package testsupport

import (
	"path/filepath"
	"testing"

	"phono/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// Content, template, and static directories are created; output is left to
// the builder.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Site.Title = "Test Site"
	cfg.Site.Description = "A site under test"
	cfg.Site.BaseURL = "https://example.com"
	cfg.Site.Author = "Test Author"
	cfg.Paths.ContentDir = filepath.Join(base, "content")
	cfg.Paths.TemplatesDir = filepath.Join(base, "templates")
	cfg.Paths.StaticDir = filepath.Join(base, "static")
	cfg.Paths.OutputDir = filepath.Join(base, "public")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Media.CachePath = filepath.Join(base, "media.db")

	for _, dir := range []string{cfg.Paths.ContentDir, cfg.Paths.TemplatesDir, cfg.Paths.StaticDir} {
		MkdirAll(t, dir)
	}

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithMediaDisabled turns off derived-media generation on the test config.
func WithMediaDisabled() ConfigOption {
	return func(c *config.Config) {
		c.Media.Enabled = false
	}
}
