package config

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/gnames/gn"
)

// Update applies a slice of Option functions to the Config.
// This is the only way to modify a Config after creation.
// Invalid options are rejected with warnings - config remains in valid state.
func (c *Config) Update(opts []Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// ToOptions converts the Config to a slice of Option functions.
// Only includes persistent fields appropriate for config.yaml.
// Excludes runtime-only fields (HomeDir).
// Used for round-tripping config.yaml ↔ Config conversions.
func (c *Config) ToOptions() []Option {
	var res []Option

	if s := c.Datasets.Metrics; s != "" {
		res = append(res, OptDatasetsMetrics(s))
	}
	if s := c.Datasets.Publications; s != "" {
		res = append(res, OptDatasetsPublications(s))
	}
	if s := c.Datasets.Scores; s != "" {
		res = append(res, OptDatasetsScores(s))
	}

	if s := c.Run.Month; s != "" {
		res = append(res, OptRunMonth(s))
	}
	if i := c.Run.Year; i > 0 {
		res = append(res, OptRunYear(i))
	}
	if s := c.Run.OutputDir; s != "" {
		res = append(res, OptRunOutputDir(s))
	}

	if f := c.Audit.PercentageTolerance; f > 0 {
		res = append(res, OptAuditPercentageTolerance(f))
	}
	if f := c.Audit.HighSeverityThreshold; f > 0 {
		res = append(res, OptAuditHighSeverityThreshold(f))
	}

	if s := c.Oracle.Provider; s != "" {
		res = append(res, OptOracleProvider(s))
	}
	if s := c.Oracle.Model; s != "" {
		res = append(res, OptOracleModel(s))
	}
	if s := c.Oracle.APIKey; s != "" {
		res = append(res, OptOracleAPIKey(s))
	}
	if i := c.Oracle.Timeout; i > 0 {
		res = append(res, OptOracleTimeout(i))
	}
	if i := c.Oracle.MaxAttempts; i > 0 {
		res = append(res, OptOracleMaxAttempts(i))
	}
	if i := c.Oracle.RetryDelay; i > 0 {
		res = append(res, OptOracleRetryDelay(i))
	}

	res = append(res, OptArchiveEnabled(c.Archive.Enabled))

	if s := c.Log.Format; s != "" {
		res = append(res, OptLogFormat(s))
	}
	if s := c.Log.Level; s != "" {
		res = append(res, OptLogLevel(s))
	}
	if s := c.Log.Destination; s != "" {
		res = append(res, OptLogDestination(s))
	}

	if i := c.JobsNumber; i > 0 {
		res = append(res, OptJobsNumber(i))
	}
	return res
}

func isValidString(name, s string) bool {
	res := s != ""
	if !res {
		gn.Warn("<em>%s</em> cannot be empty, ignoring", name)
	}
	return res
}

func isValidInt(name string, i int) bool {
	res := i > 0
	if !res {
		gn.Warn("<em>%s</em> has to be positive number, ignoring %d", name, i)
	}
	return res
}

func isValidFloat(name string, f float64) bool {
	res := f > 0
	if !res {
		gn.Warn("<em>%s</em> has to be positive, ignoring %v", name, f)
	}
	return res
}

func isValidEnum(name, val string) bool {
	s := struct{}{}
	data := map[string]map[string]struct{}{
		"Oracle.Provider": {"gemini": s, "stub": s},
		"Log.Level":       {"debug": s, "info": s, "warn": s, "error": s},
		"Log.Format":      {"json": s, "text": s, "tint": s},
		"Log.Destination": {"file": s, "stdout": s, "stderr": s},
	}
	vals := slices.Sorted(maps.Keys(data[name]))
	var lines []string
	for _, v := range vals {
		line := fmt.Sprintf("  * %s", v)
		lines = append(lines, line)
	}
	if _, ok := data[name][val]; ok {
		return true
	}
	gn.Warn(
		"<em>%s</em> does not support '%s' as a value. "+
			"Valid values are: \n%s\nIgnoring...",
		[]string{name, val, strings.Join(lines, "\n")},
	)
	return false
}
