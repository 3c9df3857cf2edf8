package iooracle

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/sdmtools/sdmins/pkg/errcode"
)

// APIKeyError creates an error for a missing API key.
func APIKeyError() error {
	msg := `No API key for the oracle provider

<em>How to fix:</em>
  1. Set the <em>GEMINI_API_KEY</em> environment variable, or
  2. Set <em>oracle.api_key</em> in config.yaml, or
  3. Use <em>oracle.provider: stub</em> for offline runs`

	return &gn.Error{
		Code: errcode.OracleAPIKeyError,
		Msg:  msg,
		Err:  fmt.Errorf("oracle api key is not set"),
	}
}

// ClientError creates an error for a failed oracle client call.
func ClientError(err error) error {
	msg := "Oracle call failed: <em>%v</em>"
	vars := []any{err}

	return &gn.Error{
		Code: errcode.OracleClientError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("oracle client: %w", err),
	}
}

// EmptyReplyError creates an error for an empty oracle reply.
func EmptyReplyError(model string) error {
	msg := "Oracle <em>%s</em> returned an empty reply"
	vars := []any{model}

	return &gn.Error{
		Code: errcode.OracleEmptyReplyError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("empty reply from %s", model),
	}
}
