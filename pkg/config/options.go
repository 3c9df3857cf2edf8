package config

import (
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptDatasetsMetrics sets the path to the metrics dataset.
func OptDatasetsMetrics(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Datasets Metrics", s) {
			c.Datasets.Metrics = s
		}
	}
}

// OptDatasetsPublications sets the path to the publications dataset.
func OptDatasetsPublications(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Datasets Publications", s) {
			c.Datasets.Publications = s
		}
	}
}

// OptDatasetsScores sets the path to the scores dataset.
func OptDatasetsScores(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Datasets Scores", s) {
			c.Datasets.Scores = s
		}
	}
}

// OptRunMonth sets the reporting month name.
func OptRunMonth(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	return func(c *Config) {
		if isValidString("Run Month", s) {
			c.Run.Month = s
		}
	}
}

// OptRunYear sets the reporting year.
func OptRunYear(i int) Option {
	return func(c *Config) {
		if isValidInt("Run Year", i) {
			c.Run.Year = i
		}
	}
}

// OptRunOutputDir sets the directory for report files.
func OptRunOutputDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Run OutputDir", s) {
			c.Run.OutputDir = s
		}
	}
}

// OptAuditPercentageTolerance sets the percentage-points tolerance before a
// stated percentage is flagged.
func OptAuditPercentageTolerance(f float64) Option {
	return func(c *Config) {
		if isValidFloat("Audit PercentageTolerance", f) {
			c.Audit.PercentageTolerance = f
		}
	}
}

// OptAuditHighSeverityThreshold sets the escalation threshold in
// percentage points.
func OptAuditHighSeverityThreshold(f float64) Option {
	return func(c *Config) {
		if isValidFloat("Audit HighSeverityThreshold", f) {
			c.Audit.HighSeverityThreshold = f
		}
	}
}

// OptOracleProvider sets the oracle backend.
// Valid values: "gemini", "stub".
func OptOracleProvider(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	return func(c *Config) {
		if isValidEnum("Oracle.Provider", s) {
			c.Oracle.Provider = s
		}
	}
}

// OptOracleModel sets the model name for the oracle provider.
func OptOracleModel(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Oracle Model", s) {
			c.Oracle.Model = s
		}
	}
}

// OptOracleAPIKey sets the API key for remote oracle providers.
func OptOracleAPIKey(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		// Empty key is allowed, GEMINI_API_KEY env var is the fallback.
		if s != "" {
			c.Oracle.APIKey = s
		}
	}
}

// OptOracleTimeout sets the per-call timeout in seconds.
func OptOracleTimeout(i int) Option {
	return func(c *Config) {
		if isValidInt("Oracle Timeout", i) {
			c.Oracle.Timeout = i
		}
	}
}

// OptOracleMaxAttempts bounds the retries on oracle contract violations.
func OptOracleMaxAttempts(i int) Option {
	return func(c *Config) {
		if isValidInt("Oracle MaxAttempts", i) {
			c.Oracle.MaxAttempts = i
		}
	}
}

// OptOracleRetryDelay sets the initial retry delay in seconds.
func OptOracleRetryDelay(i int) Option {
	return func(c *Config) {
		if isValidInt("Oracle RetryDelay", i) {
			c.Oracle.RetryDelay = i
		}
	}
}

// OptArchiveEnabled turns run-history recording on or off.
func OptArchiveEnabled(b bool) Option {
	return func(c *Config) {
		c.Archive.Enabled = b
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text", "tint".
func OptLogFormat(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stdout", "stderr".
func OptLogDestination(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptJobsNumber sets the number of concurrent per-campus workers.
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("Jobs Number", i) {
			c.JobsNumber = i
		}
	}
}
