package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "wpdb"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/wpdb by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// CacheDir returns the directory path for cache files.
// Returns ~/.cache/wpdb by default.
func CacheDir(homeDir string) string {
	return filepath.Join(homeDir, ".cache", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/wpdb/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/wpdb/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// VocabFilePath returns the full path to the vocab.yaml file.
// Returns ~/.config/wpdb/vocab.yaml by default.
func VocabFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "vocab.yaml")
}
