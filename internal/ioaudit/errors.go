package ioaudit

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/sdmtools/sdmins/pkg/errcode"
)

// CanceledError creates an error for an aborted audit run.
func CanceledError(got, want int) error {
	msg := `Quality audit was aborted after <em>%d</em> of <em>%d</em> insights

Re-run <em>sdmins audit</em> to produce a complete quality report.`

	vars := []any{got, want}

	return &gn.Error{
		Code: errcode.AuditCanceledError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("audit aborted: %d of %d insights checked", got, want),
	}
}
