// Package ioreport persists the three stage reports as JSON documents
// and reads them back for stages that run separately.
package ioreport

import (
	"os"
	"path/filepath"

	"github.com/gnames/gnfmt"
	"github.com/sdmtools/sdmins/pkg/report"
)

// Report file names inside the output directory.
const (
	FileValidation = "validation_report.json"
	FileInsights   = "insights_report.json"
	FileQuality    = "quality_report.json"
)

// WriteValidation writes the stage-1 report into dir.
func WriteValidation(dir string, v *report.Validation) (string, error) {
	return write(dir, FileValidation, v)
}

// WriteInsights writes the stage-2 report into dir.
func WriteInsights(dir string, v *report.Insights) (string, error) {
	return write(dir, FileInsights, v)
}

// WriteQuality writes the stage-3 report into dir.
func WriteQuality(dir string, v *report.Quality) (string, error) {
	return write(dir, FileQuality, v)
}

func write(dir, name string, v any) (string, error) {
	enc := gnfmt.GNjson{Pretty: true}
	data, err := enc.Encode(v)
	if err != nil {
		return "", EncodeError(name, err)
	}

	if err = os.MkdirAll(dir, 0755); err != nil {
		return "", WriteError(dir, err)
	}
	path := filepath.Join(dir, name)
	if err = os.WriteFile(path, data, 0644); err != nil {
		return "", WriteError(path, err)
	}
	return path, nil
}

// ReadInsights loads a previously written stage-2 report. The audit
// command uses it to run over insights produced by an earlier
// synthesis.
func ReadInsights(path string) (*report.Insights, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ReadError(path, err)
	}

	var res report.Insights
	enc := gnfmt.GNjson{}
	if err = enc.Decode(data, &res); err != nil {
		return nil, ReadError(path, err)
	}
	return &res, nil
}

// ReadValidation loads a previously written stage-1 report.
func ReadValidation(path string) (*report.Validation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ReadError(path, err)
	}

	var res report.Validation
	enc := gnfmt.GNjson{}
	if err = enc.Decode(data, &res); err != nil {
		return nil, ReadError(path, err)
	}
	return &res, nil
}
