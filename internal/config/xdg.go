// Package config provides XDG path helpers.
package config

import (
	"os"
	"path/filepath"
)

const appName = "readaloud"

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// XDGDataHome returns the XDG data home or a default fallback.
func XDGDataHome() string {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".local", "share")
}

// DefaultBankPath returns the default path for the SQLite sentence bank.
func DefaultBankPath() string {
	if v := os.Getenv("READALOUD_BANK"); v != "" {
		return v
	}
	return filepath.Join(XDGDataHome(), appName, "bank.db")
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	if v := os.Getenv("READALOUD_CONFIG"); v != "" {
		return v
	}
	return filepath.Join(XDGConfigHome(), appName, "config.toml")
}
