package config

import (
	"os"
	"path/filepath"
)

// XDGConfigHome returns $XDG_CONFIG_HOME or the ~/.config fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config")
}

// XDGDataHome returns $XDG_DATA_HOME or the ~/.local/share fallback.
func XDGDataHome() string {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "share")
}

// DefaultConfigPath returns the default location of config.yaml.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), "carpick", "config.yaml")
}

// appDataDir returns the carpick directory under the XDG data home.
func appDataDir() string {
	return filepath.Join(XDGDataHome(), "carpick")
}
