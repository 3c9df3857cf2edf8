package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "sdmins"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/sdmins by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// DataDir returns the directory path for application data such as the
// run-history archive. Returns ~/.local/share/sdmins by default.
func DataDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/sdmins/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(DataDir(homeDir), "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/sdmins/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// ArchiveFilePath returns the full path to the run-history database.
// Returns ~/.local/share/sdmins/runs.db by default.
func ArchiveFilePath(homeDir string) string {
	return filepath.Join(DataDir(homeDir), "runs.db")
}
