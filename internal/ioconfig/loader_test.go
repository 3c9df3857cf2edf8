package ioconfig_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sdmtools/sdmins/internal/ioconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTempConfigDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("SDMINS_CONFIG_DIR", dir)
	return dir
}

func TestLoadDefaults(t *testing.T) {
	setupTempConfigDir(t)

	res, err := ioconfig.Load("")
	require.NoError(t, err)
	require.NotNil(t, res.Config)

	assert.Equal(t, "defaults", res.Source)
	assert.Equal(t, "agosto", res.Config.Run.Month)
	assert.Equal(t, "gemini", res.Config.Oracle.Provider)
	assert.NotEmpty(t, res.Config.HomeDir)
}

func TestLoadFromFile(t *testing.T) {
	dir := setupTempConfigDir(t)

	cfgYAML := `
run:
  month: julio
  year: 2026
oracle:
  provider: stub
audit:
  percentage_tolerance: 2.5
`
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(cfgYAML), 0644))

	res, err := ioconfig.Load("")
	require.NoError(t, err)

	assert.Equal(t, "file", res.Source)
	assert.Equal(t, path, res.SourcePath)
	assert.Equal(t, "julio", res.Config.Run.Month)
	assert.Equal(t, 2026, res.Config.Run.Year)
	assert.Equal(t, "stub", res.Config.Oracle.Provider)
	assert.InDelta(t, 2.5, res.Config.Audit.PercentageTolerance, 1e-9)
	// Untouched values keep defaults.
	assert.Equal(t, 3, res.Config.Oracle.MaxAttempts)
}

func TestLoadExplicitMissingFile(t *testing.T) {
	setupTempConfigDir(t)

	_, err := ioconfig.Load("/nonexistent/config.yaml")
	assert.Error(t, err)
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	dir := setupTempConfigDir(t)

	cfgYAML := `
oracle:
  provider: openai
log:
  level: chatty
`
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(cfgYAML), 0644))

	res, err := ioconfig.Load("")
	require.NoError(t, err)

	// Unknown enum values are rejected with warnings, defaults survive.
	assert.Equal(t, "gemini", res.Config.Oracle.Provider)
	assert.Equal(t, "info", res.Config.Log.Level)
}

func TestGenerateDefaultConfig(t *testing.T) {
	dir := setupTempConfigDir(t)

	path, err := ioconfig.GenerateDefaultConfig()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.yaml"), path)

	require.NoError(t, ioconfig.ValidateGeneratedConfig(path))

	exists, err := ioconfig.ConfigFileExists()
	require.NoError(t, err)
	assert.True(t, exists)

	// Second generation refuses to overwrite.
	_, err = ioconfig.GenerateDefaultConfig()
	assert.Error(t, err)
}
