package ioconfig

import (
	"os"
	"path/filepath"

	"github.com/sdmtools/sdmins/pkg/config"
	"github.com/sdmtools/sdmins/pkg/templates"
	"gopkg.in/yaml.v3"
)

// GenerateDefaultConfig creates a documented default config file at the
// default location. Returns the path where the file was created.
// Does NOT overwrite an existing file.
func GenerateDefaultConfig() (string, error) {
	configPath, err := GetDefaultConfigPath()
	if err != nil {
		return "", ConfigGenerateError("", err)
	}

	if _, err := os.Stat(configPath); err == nil {
		return "", ConfigGenerateError(configPath,
			os.ErrExist)
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", ConfigGenerateError(configDir, err)
	}

	if err := os.WriteFile(
		configPath, []byte(templates.ConfigYAML), 0644,
	); err != nil {
		return "", ConfigGenerateError(configPath, err)
	}

	return configPath, nil
}

// ConfigFileExists checks if a config file exists at the default location.
func ConfigFileExists() (bool, error) {
	configPath, err := GetDefaultConfigPath()
	if err != nil {
		return false, err
	}

	_, err = os.Stat(configPath)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// ValidateGeneratedConfig reads a generated config file and checks it is
// parseable YAML for the Config shape. Used by tests to ensure the
// embedded template stays valid.
func ValidateGeneratedConfig(configPath string) error {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return ConfigLoadError(configPath, err)
	}

	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return ConfigLoadError(configPath, err)
	}

	return nil
}
