package iodata

import (
	"errors"
	"fmt"

	"github.com/gnames/gn"
	"github.com/sdmtools/sdmins/pkg/errcode"
)

var errEmptyDataset = errors.New("dataset contains no records")

// MetricsReadError creates an error for when the metrics dataset cannot
// be read or parsed.
func MetricsReadError(path string, err error) error {
	msg := `Cannot read metrics dataset

<em>File:</em> %s

<em>Possible causes:</em>
  - File does not exist or is empty
  - Not a JSON document with a 'regions' list

<em>How to fix:</em>
  1. Check the file: <em>ls -l %s</em>
  2. Re-run the metrics preprocessing step
  3. Point <em>datasets.metrics</em> at the correct file`

	vars := []any{path, path}

	return &gn.Error{
		Code: errcode.DataMetricsReadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to read metrics dataset: %w", err),
	}
}

// PublicationsReadError creates an error for when the publications
// dataset cannot be read or a line cannot be parsed. Line 0 means the
// failure was not line-specific.
func PublicationsReadError(path string, line int, err error) error {
	msg := `Cannot read publications dataset

<em>File:</em> %s (line %d)

<em>Possible causes:</em>
  - File does not exist or is empty
  - A line is not a self-contained JSON object
  - The file is a JSON array instead of one object per line

<em>How to fix:</em>
  1. Check the file: <em>ls -l %s</em>
  2. Re-run the publications preprocessing step
  3. Point <em>datasets.publications</em> at the correct file`

	vars := []any{path, line, path}

	return &gn.Error{
		Code: errcode.DataPublicationsReadError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf(
			"failed to read publications dataset (line %d): %w", line, err),
	}
}

// ScoresReadError creates an error for when the scores dataset cannot be
// read or parsed.
func ScoresReadError(path string, err error) error {
	msg := `Cannot read scores dataset

<em>File:</em> %s

<em>Possible causes:</em>
  - File does not exist or is empty
  - Not a JSON document with a 'campuses' list

<em>How to fix:</em>
  1. Check the file: <em>ls -l %s</em>
  2. Re-run the scores preprocessing step
  3. Point <em>datasets.scores</em> at the correct file`

	vars := []any{path, path}

	return &gn.Error{
		Code: errcode.DataScoresReadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to read scores dataset: %w", err),
	}
}

// UnknownIdentifierError creates an error for a campus ID or category
// word outside the closed sets.
func UnknownIdentifierError(err error) error {
	msg := `Source data contains an unknown identifier

<em>Detail:</em> %v

Campus IDs and category words are closed sets; an unrecognized value
means the preprocessing step produced malformed data.`

	vars := []any{err}

	return &gn.Error{
		Code: errcode.DataUnknownCampusError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("closed-set violation: %w", err),
	}
}
