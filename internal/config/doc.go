// Package config loads, normalizes, and validates phono configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files from either ./phono.toml or
// ~/.config/phono/config.toml. The Config type centralizes every knob the CLI
// and builder need: site identity, directory layout, derived-media settings,
// feed limits, and logging options.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
