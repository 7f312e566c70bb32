package cmd

import (
	"errors"

	"github.com/omodtool/cli/internal/descriptor"
)

// ExitError wraps an error with an exit code.
type ExitError struct {
	Err  error
	Code int

	// Printed marks that the command layer already printed the error.
	Printed bool
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the wrapped error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given error and exit code.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{Err: err, Code: code}
}

// ExitCodeFromError determines the appropriate exit code for an error.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Check for ExitError first
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	// Map descriptor error kinds to exit codes
	var (
		inputErr      *descriptor.InputError
		archiveErr    *descriptor.ArchiveError
		missingErr    *descriptor.MissingDescriptorError
		formatErr     *descriptor.FormatError
		validationErr *descriptor.ValidationError
	)
	switch {
	case errors.As(err, &validationErr):
		return ExitValidationError
	case errors.As(err, &formatErr):
		return ExitFormatError
	case errors.As(err, &archiveErr):
		return ExitArchiveError
	case errors.As(err, &missingErr):
		return ExitNotFound
	case errors.As(err, &inputErr):
		return ExitNotFound
	default:
		return ExitGeneralError
	}
}
