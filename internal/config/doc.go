// Package config loads, normalizes, and validates the subclean TOML
// configuration. Path fields are tilde-expanded and made absolute during
// Load; callers receive a ready-to-use Config.
package config
