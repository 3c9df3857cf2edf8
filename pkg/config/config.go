// Package config provides configuration management for sdmins.
//
// This package has no I/O dependencies (no file operations, no network
// calls). Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
//
// # Environment Variables
//
// Use SDMINS_ prefix with underscores for nesting:
//
//	SDMINS_DATASETS_METRICS=/data/metrics.json
//	SDMINS_ORACLE_MODEL=gemini-2.5-flash
//	SDMINS_AUDIT_PERCENTAGE_TOLERANCE=3.0
//	SDMINS_LOG_LEVEL=info
package config

import (
	"runtime"
)

// Config represents the complete sdmins configuration.
type Config struct {
	// Datasets locates the three preprocessed source files.
	Datasets DatasetsConfig `mapstructure:"datasets" yaml:"datasets"`

	// Run holds the reporting period and output location.
	Run RunConfig `mapstructure:"run" yaml:"run"`

	// Audit holds the fact-checking thresholds.
	Audit AuditConfig `mapstructure:"audit" yaml:"audit"`

	// Oracle configures the language-model backend used for
	// insight generation.
	Oracle OracleConfig `mapstructure:"oracle" yaml:"oracle"`

	// Archive configures the local run-history store.
	Archive ArchiveConfig `mapstructure:"archive" yaml:"archive"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of concurrent per-campus workers.
	// Default value is set according to the number of available threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config, archive and logs directories reside.
	// It is set by the CLI during init, there is no default value for it.
	HomeDir string `mapstructure:"-" yaml:"-"`
}

// DatasetsConfig contains paths to the three preprocessed source datasets.
type DatasetsConfig struct {
	// Metrics is the path to the per-campus metrics JSON document
	// (current month and previous-year month values).
	Metrics string `mapstructure:"metrics" yaml:"metrics"`

	// Publications is the path to the top-publications dataset, one JSON
	// object per line, one line per campus.
	Publications string `mapstructure:"publications" yaml:"publications"`

	// Scores is the path to the per-campus performance scores JSON
	// document (category labels plus underlying numeric scores).
	Scores string `mapstructure:"scores" yaml:"scores"`
}

// RunConfig contains the reporting period and output settings.
type RunConfig struct {
	// Month is the reporting month name used in generated prose,
	// e.g. "agosto".
	Month string `mapstructure:"month" yaml:"month"`

	// Year is the reporting year.
	Year int `mapstructure:"year" yaml:"year"`

	// OutputDir is the directory where the three report files are written.
	OutputDir string `mapstructure:"output_dir" yaml:"output_dir"`
}

// AuditConfig contains fact-checking thresholds. Both values are percentage
// points, compared against the absolute difference between a stated
// percentage and the locally recomputed one.
type AuditConfig struct {
	// PercentageTolerance is the maximum allowed difference before a
	// stated percentage is flagged as a percentage_error.
	PercentageTolerance float64 `mapstructure:"percentage_tolerance" yaml:"percentage_tolerance"`

	// HighSeverityThreshold escalates a percentage_error from medium to
	// high severity when the difference exceeds it.
	HighSeverityThreshold float64 `mapstructure:"high_severity_threshold" yaml:"high_severity_threshold"`
}

// OracleConfig configures the language-model backend.
type OracleConfig struct {
	// Provider selects the backend. Valid values: "gemini", "stub".
	// The stub produces deterministic canned insights and needs no
	// network access or API key.
	Provider string `mapstructure:"provider" yaml:"provider"`

	// Model is the model name passed to the provider.
	Model string `mapstructure:"model" yaml:"model"`

	// APIKey authenticates remote providers. If empty, the GEMINI_API_KEY
	// environment variable is used.
	APIKey string `mapstructure:"api_key" yaml:"api_key"`

	// Timeout is the per-call timeout in seconds.
	Timeout int `mapstructure:"timeout" yaml:"timeout"`

	// MaxAttempts bounds retries when the oracle violates its output
	// contract (malformed or missing structured output).
	MaxAttempts int `mapstructure:"max_attempts" yaml:"max_attempts"`

	// RetryDelay is the initial delay between attempts in seconds,
	// doubled after each failed attempt.
	RetryDelay int `mapstructure:"retry_delay" yaml:"retry_delay"`
}

// ArchiveConfig configures the local sqlite run-history store.
type ArchiveConfig struct {
	// Enabled turns run-history recording on or off.
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Datasets: DatasetsConfig{
			Metrics:      "metrics_estructurado.json",
			Publications: "publicaciones_top8.jsonl",
			Scores:       "sdm_estructurado.json",
		},
		Run: RunConfig{
			Month:     "agosto",
			Year:      2025,
			OutputDir: ".",
		},
		Audit: AuditConfig{
			PercentageTolerance:   3.0,
			HighSeverityThreshold: 5.0,
		},
		Oracle: OracleConfig{
			Provider:    "gemini",
			Model:       "gemini-2.5-flash",
			Timeout:     120,
			MaxAttempts: 3,
			RetryDelay:  2,
		},
		Archive: ArchiveConfig{
			Enabled: true,
		},
		Log: LogConfig{
			Format:      "tint",
			Level:       "info",
			Destination: "stdout",
		},
		JobsNumber: runtime.NumCPU(),
	}

	return res
}
