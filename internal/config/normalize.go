package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeServing()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.AssetsDir, err = expandPath(c.Paths.AssetsDir); err != nil {
		return fmt.Errorf("paths.assets_dir: %w", err)
	}
	if c.Paths.PublicDir, err = expandPath(c.Paths.PublicDir); err != nil {
		return fmt.Errorf("paths.public_dir: %w", err)
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}

	// Uploads and manifest default to locations inside the asset tree.
	if strings.TrimSpace(c.Paths.UploadsDir) == "" {
		c.Paths.UploadsDir = filepath.Join(c.Paths.AssetsDir, "uploads")
	} else if c.Paths.UploadsDir, err = expandPath(c.Paths.UploadsDir); err != nil {
		return fmt.Errorf("paths.uploads_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.ManifestPath) == "" {
		c.Paths.ManifestPath = filepath.Join(c.Paths.AssetsDir, "manifest.json")
	} else if c.Paths.ManifestPath, err = expandPath(c.Paths.ManifestPath); err != nil {
		return fmt.Errorf("paths.manifest_path: %w", err)
	}
	return nil
}

func (c *Config) normalizeServing() {
	c.Serving.PublicBasePath = normalizeBasePath(c.Serving.PublicBasePath, defaultPublicBasePath)
	c.Serving.APIBasePath = normalizeBasePath(c.Serving.APIBasePath, defaultAPIBasePath)
}

func normalizeBasePath(value, fallback string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback
	}
	if !strings.HasPrefix(value, "/") {
		value = "/" + value
	}
	return strings.TrimRight(value, "/")
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
