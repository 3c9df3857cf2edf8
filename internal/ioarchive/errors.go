package ioarchive

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/sdmtools/sdmins/pkg/errcode"
)

// OpenError creates an error for a run-history database that cannot be
// opened or initialized.
func OpenError(path string, err error) error {
	msg := `Cannot open run history database <em>%s</em>

<em>Detail:</em> %v

<em>How to fix:</em>
  1. Check that the data directory is writable
  2. Remove the file if it is corrupted; the history is rebuilt empty`

	vars := []any{path, err}

	return &gn.Error{
		Code: errcode.ArchiveOpenError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot open archive %s: %w", path, err),
	}
}

// WriteError creates an error for a run that cannot be recorded.
func WriteError(path string, err error) error {
	msg := `Cannot record run in <em>%s</em>

<em>Detail:</em> %v`

	vars := []any{path, err}

	return &gn.Error{
		Code: errcode.ArchiveWriteError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot record run in %s: %w", path, err),
	}
}

// QueryError creates an error for a run history that cannot be listed.
func QueryError(path string, err error) error {
	msg := `Cannot read run history from <em>%s</em>

<em>Detail:</em> %v`

	vars := []any{path, err}

	return &gn.Error{
		Code: errcode.ArchiveQueryError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot read run history %s: %w", path, err),
	}
}
