package ioreport

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/sdmtools/sdmins/pkg/errcode"
)

// EncodeError creates an error for a report that cannot be serialized.
func EncodeError(name string, err error) error {
	msg := `Cannot encode report <em>%s</em>

<em>Detail:</em> %v`

	vars := []any{name, err}

	return &gn.Error{
		Code: errcode.ReportEncodeError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot encode %s: %w", name, err),
	}
}

// WriteError creates an error for a report file that cannot be written.
func WriteError(path string, err error) error {
	msg := `Cannot write report file <em>%s</em>

<em>Detail:</em> %v

<em>How to fix:</em>
  1. Check that the output directory is writable
  2. Set <em>run.output_dir</em> to a writable location`

	vars := []any{path, err}

	return &gn.Error{
		Code: errcode.ReportWriteError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot write %s: %w", path, err),
	}
}

// ReadError creates an error for a report file that cannot be read or
// parsed.
func ReadError(path string, err error) error {
	msg := `Cannot read report file <em>%s</em>

<em>Detail:</em> %v

<em>How to fix:</em>
  1. Run <em>sdmins insights</em> first to produce the report
  2. Check that the file is the unmodified pipeline output`

	vars := []any{path, err}

	return &gn.Error{
		Code: errcode.ReportReadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot read %s: %w", path, err),
	}
}
