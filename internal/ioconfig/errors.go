package ioconfig

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/sdmtools/sdmins/pkg/errcode"
)

// ConfigLoadError creates an error for when the configuration cannot be
// loaded or parsed.
func ConfigLoadError(path string, err error) error {
	msg := `Cannot load configuration

<em>Configuration file:</em> %s

<em>Possible causes:</em>
  - File does not exist
  - Invalid YAML format
  - Permission denied

<em>How to fix:</em>
  1. Check if file exists: <em>ls -l %s</em>
  2. Validate YAML syntax
  3. Remove the file to regenerate defaults on next run`

	vars := []any{path, path}

	return &gn.Error{
		Code: errcode.ConfigLoadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to load config: %w", err),
	}
}

// ConfigGenerateError creates an error for when the default config file
// cannot be created.
func ConfigGenerateError(path string, err error) error {
	msg := "Cannot generate default config at <em>%s</em>"
	vars := []any{path}

	return &gn.Error{
		Code: errcode.ConfigGenerateError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to generate config: %w", err),
	}
}
