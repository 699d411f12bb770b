// Package config loads, normalizes, and validates Galley configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and centralizes every knob the CLI and import
// engine need: the source asset tree, the uploads area, the servable public
// tree, URL base paths, category toggles, and notification settings.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
