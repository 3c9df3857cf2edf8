// Package ioconfig provides I/O operations for loading configuration from
// files, environment variables and flags. This is an impure package that
// handles file system operations.
package ioconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sdmtools/sdmins/pkg/config"
	"github.com/spf13/viper"
)

// LoadResult contains the loaded configuration and metadata about the
// source.
type LoadResult struct {
	Config     *config.Config
	SourcePath string // Path to config file used, or empty if using defaults
	Source     string // "file", "defaults", or "defaults+env"
}

// Load reads configuration from a YAML file and returns a Config with
// source info. If configPath is empty, the default location
// (~/.config/sdmins/config.yaml) is tried.
//
// Precedence: flags > SDMINS_* env vars > config file > defaults.
func Load(configPath string) (*LoadResult, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	v.SetEnvPrefix("SDMINS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set defaults BEFORE reading config so viper knows which keys to
	// check for env vars even without a config file.
	defaults := config.New()
	v.SetDefault("datasets.metrics", defaults.Datasets.Metrics)
	v.SetDefault("datasets.publications", defaults.Datasets.Publications)
	v.SetDefault("datasets.scores", defaults.Datasets.Scores)
	v.SetDefault("run.month", defaults.Run.Month)
	v.SetDefault("run.year", defaults.Run.Year)
	v.SetDefault("run.output_dir", defaults.Run.OutputDir)
	v.SetDefault("audit.percentage_tolerance", defaults.Audit.PercentageTolerance)
	v.SetDefault("audit.high_severity_threshold", defaults.Audit.HighSeverityThreshold)
	v.SetDefault("oracle.provider", defaults.Oracle.Provider)
	v.SetDefault("oracle.model", defaults.Oracle.Model)
	v.SetDefault("oracle.api_key", defaults.Oracle.APIKey)
	v.SetDefault("oracle.timeout", defaults.Oracle.Timeout)
	v.SetDefault("oracle.max_attempts", defaults.Oracle.MaxAttempts)
	v.SetDefault("oracle.retry_delay", defaults.Oracle.RetryDelay)
	v.SetDefault("archive.enabled", defaults.Archive.Enabled)
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.format", defaults.Log.Format)
	v.SetDefault("log.destination", defaults.Log.Destination)
	v.SetDefault("jobs_number", defaults.JobsNumber)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		defaultPath, err := GetDefaultConfigPath()
		if err == nil {
			if _, statErr := os.Stat(defaultPath); statErr == nil {
				v.SetConfigFile(defaultPath)
			}
		}
	}

	configFileRead := false
	usedConfigPath := ""

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if configPath != "" {
				return nil, ConfigLoadError(configPath,
					fmt.Errorf("config file not found: %s", configPath))
			}
		} else if os.IsNotExist(err) {
			// SetConfigFile bypasses ConfigFileNotFoundError; an absent
			// default file still means defaults + env vars.
			if configPath != "" {
				return nil, ConfigLoadError(configPath, err)
			}
		} else {
			return nil, ConfigLoadError(v.ConfigFileUsed(), err)
		}
	} else {
		configFileRead = true
		usedConfigPath = v.ConfigFileUsed()
	}

	cfg := config.New()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, ConfigLoadError(usedConfigPath, err)
	}

	// Round-trip through options so invalid values fall back to defaults
	// with warnings instead of corrupting the config.
	validated := config.New()
	validated.Update(cfg.ToOptions())

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, ConfigLoadError("", err)
	}
	validated.HomeDir = homeDir

	res := &LoadResult{Config: validated}
	switch {
	case configFileRead:
		res.Source = "file"
		res.SourcePath = usedConfigPath
	case hasEnvOverrides():
		res.Source = "defaults+env"
	default:
		res.Source = "defaults"
	}
	return res, nil
}

// hasEnvOverrides reports whether any SDMINS_* environment variable is
// set.
func hasEnvOverrides() bool {
	for _, kv := range os.Environ() {
		if strings.HasPrefix(kv, "SDMINS_") {
			return true
		}
	}
	return false
}

// GetConfigDir returns the configuration directory for sdmins.
// The SDMINS_CONFIG_DIR environment variable overrides the default
// (used by tests to avoid touching the real config).
func GetConfigDir() (string, error) {
	if dir := os.Getenv("SDMINS_CONFIG_DIR"); dir != "" {
		return dir, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return config.ConfigDir(homeDir), nil
}

// GetDefaultConfigPath returns the full path to the default config file.
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.yaml"), nil
}
