// Package cmd provides CLI command implementations.
package cmd

// Exit codes for the omod CLI.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError = 1

	// ExitValidationError indicates the descriptor failed validation.
	ExitValidationError = 2

	// ExitFormatError indicates the descriptor is not well-formed XML.
	ExitFormatError = 3

	// ExitArchiveError indicates the module archive could not be read.
	ExitArchiveError = 4

	// ExitNotFound indicates the artifact or its descriptor entry was not found.
	ExitNotFound = 5
)

// ExitCodeName returns the name of the exit code.
func ExitCodeName(code int) string {
	switch code {
	case ExitSuccess:
		return "Success"
	case ExitGeneralError:
		return "General Error"
	case ExitValidationError:
		return "Validation Error"
	case ExitFormatError:
		return "Format Error"
	case ExitArchiveError:
		return "Archive Error"
	case ExitNotFound:
		return "Not Found"
	default:
		return "Unknown"
	}
}
