// Package config loads, normalizes, and validates the TOML configuration
// shared by the snapname daemon and CLI.
package config
