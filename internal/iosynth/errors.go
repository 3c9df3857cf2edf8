package iosynth

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/sdmtools/sdmins/pkg/campus"
	"github.com/sdmtools/sdmins/pkg/errcode"
)

// NoCompleteCampusesError creates an error for a validation report with
// no complete campus to synthesize from.
func NoCompleteCampusesError() error {
	msg := `No campus has complete data

<em>How to fix:</em>
  1. Inspect validation_report.json for the missing datasets
  2. Re-run the preprocessing steps for the missing sources`

	return &gn.Error{
		Code: errcode.SynthNoCompleteCampusesError,
		Msg:  msg,
		Err:  fmt.Errorf("no complete campuses to synthesize"),
	}
}

// OracleError creates an error for a campus whose oracle retries are
// exhausted.
func OracleError(id campus.ID, err error) error {
	msg := `Insight generation failed for campus <em>%s</em>

<em>Detail:</em> %v

<em>Possible causes:</em>
  - The oracle provider is unreachable or rate-limited
  - The model keeps returning malformed structured output

<em>How to fix:</em>
  1. Check connectivity and the API key
  2. Raise <em>oracle.max_attempts</em> or <em>oracle.timeout</em>
  3. Use <em>oracle.provider: stub</em> to verify the rest of the pipeline`

	vars := []any{id, err}

	return &gn.Error{
		Code: errcode.SynthOracleError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("campus %s: oracle failed: %w", id, err),
	}
}

// ContractError creates an error for an insight count that does not
// match the number of complete campuses.
func ContractError(got, want int) error {
	msg := `Oracle produced <em>%d</em> insights for <em>%d</em> complete campuses

Fewer insights than complete campuses is a contract violation and is
never accepted as done.`

	vars := []any{got, want}

	return &gn.Error{
		Code: errcode.SynthContractError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("oracle contract violation: %d of %d insights", got, want),
	}
}

// CanceledError creates an error for an aborted synthesis run. The
// partial report accompanying it carries incomplete_run in its metadata.
func CanceledError(got, want int) error {
	msg := `Insight synthesis was aborted after <em>%d</em> of <em>%d</em> campuses

The partial report is flagged <em>incomplete_run</em> and must not be
treated as final.`

	vars := []any{got, want}

	return &gn.Error{
		Code: errcode.SynthCanceledError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("synthesis aborted: %d of %d campuses done", got, want),
	}
}
