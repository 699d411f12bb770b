package testsupport

import (
	"path/filepath"
	"testing"

	"galley/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.AssetsDir = filepath.Join(base, "assets")
	cfgVal.Paths.UploadsDir = filepath.Join(base, "assets", "uploads")
	cfgVal.Paths.PublicDir = filepath.Join(base, "public")
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.ManifestPath = filepath.Join(base, "assets", "manifest.json")

	cfg := &cfgVal
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithNtfyTopic points notifications at the given topic URL.
func WithNtfyTopic(topic string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Notifications.NtfyTopic = topic
	}
}

// WithCategories toggles the per-category import switches.
func WithCategories(reports, marketing, covers, landingPages bool) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Imports.Reports = reports
		cfg.Imports.Marketing = marketing
		cfg.Imports.Covers = covers
		cfg.Imports.LandingPages = landingPages
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.AssetsDir)
}
