package descriptor

import "fmt"

// InputError indicates the module artifact handed to the parser is unusable
// before any I/O happens: a missing path, a wrong file extension, or a
// stream that could not be staged to disk.
type InputError struct {
	// Path is the offending artifact path; empty when the artifact was a
	// stream.
	Path string

	// Message describes what was wrong with the input.
	Message string

	// Cause is the underlying error, if any.
	Cause error
}

func (e *InputError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return e.Message
}

func (e *InputError) Unwrap() error {
	return e.Cause
}

// ArchiveError indicates the module archive could not be opened or the
// descriptor entry could not be streamed out of it.
type ArchiveError struct {
	// Artifact is the archive filename.
	Artifact string

	// Message describes which archive operation failed.
	Message string

	// Cause is the underlying I/O error.
	Cause error
}

func (e *ArchiveError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Artifact, e.Message, e.Cause)
}

func (e *ArchiveError) Unwrap() error {
	return e.Cause
}

// MissingDescriptorError indicates the archive opened fine but contains no
// config.xml entry.
type MissingDescriptorError struct {
	// Artifact is the archive filename.
	Artifact string

	// Message is the localized description.
	Message string
}

func (e *MissingDescriptorError) Error() string {
	return fmt.Sprintf("%s: %s", e.Artifact, e.Message)
}

// FormatError indicates the descriptor entry is not well-formed XML.
type FormatError struct {
	// Artifact is the archive filename.
	Artifact string

	// Message is the localized description.
	Message string

	// Cause is the underlying XML parse error.
	Cause error
}

func (e *FormatError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Artifact, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Artifact, e.Message)
}

func (e *FormatError) Unwrap() error {
	return e.Cause
}

// ValidationError indicates the descriptor is well-formed XML but violates
// a structural or content rule: an unsupported config version, a required
// field left blank, or a malformed conditionalResources block.
type ValidationError struct {
	// Artifact is the archive filename.
	Artifact string

	// Message enumerates the valid set or names the violating value.
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Artifact, e.Message)
}
