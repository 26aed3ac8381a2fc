// Package config loads, normalizes, and validates autopost configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks for
// secrets (WP_URL, WP_USER, WP_APP_PASSWORD, GOOGLE_ACCESS_TOKEN), including
// values sourced from a .env file in the working directory.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical column indexes, and clear validation errors.
package config
