// Package config loads, normalizes, and validates mediapress configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and resolves the "auto" video platform from
// the host so the encoding engine always receives an explicit value.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths and clear validation errors.
package config
