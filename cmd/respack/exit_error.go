// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"respack-cli/pkg/types"
)

// ExitError carries the process exit code a failed command resolved to.
// RunE handlers return it instead of calling os.Exit, so fang still prints
// the error and Execute maps the code afterwards. Resolution failures use
// ExitNotFound; everything else is ExitFailure.
type ExitError struct {
	Code types.ExitCode
	Err  error
}

// Error returns the wrapped error's message, or a generic one for a bare code.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

// Unwrap exposes the wrapped error to errors.Is and errors.As.
func (e *ExitError) Unwrap() error {
	return e.Err
}
