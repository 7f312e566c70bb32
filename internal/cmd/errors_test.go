package cmd

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omodtool/cli/internal/descriptor"
)

func TestExitError(t *testing.T) {
	inner := errors.New("boom")
	exitErr := NewExitError(inner, ExitArchiveError)

	assert.Equal(t, "boom", exitErr.Error())
	assert.Equal(t, ExitArchiveError, exitErr.Code)
	assert.ErrorIs(t, exitErr, inner)
}

func TestExitCodeFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"plain error", errors.New("boom"), ExitGeneralError},
		{"validation", &descriptor.ValidationError{Artifact: "a.omod", Message: "bad"}, ExitValidationError},
		{"format", &descriptor.FormatError{Artifact: "a.omod", Message: "bad"}, ExitFormatError},
		{"archive", &descriptor.ArchiveError{Artifact: "a.omod", Message: "bad"}, ExitArchiveError},
		{"missing descriptor", &descriptor.MissingDescriptorError{Artifact: "a.omod", Message: "bad"}, ExitNotFound},
		{"input", &descriptor.InputError{Message: "bad"}, ExitNotFound},
		{"explicit exit error wins", NewExitError(errors.New("boom"), ExitFormatError), ExitFormatError},
		{
			"wrapped descriptor error",
			fmt.Errorf("parsing: %w", &descriptor.ValidationError{Artifact: "a.omod", Message: "bad"}),
			ExitValidationError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCodeFromError(tt.err))
		})
	}
}

func TestExitCodeName(t *testing.T) {
	assert.Equal(t, "Success", ExitCodeName(ExitSuccess))
	assert.Equal(t, "Validation Error", ExitCodeName(ExitValidationError))
	assert.Equal(t, "Not Found", ExitCodeName(ExitNotFound))
	assert.Equal(t, "Unknown", ExitCodeName(42))
}

func TestExitCodesAreDistinct(t *testing.T) {
	codes := []int{ExitSuccess, ExitGeneralError, ExitValidationError, ExitFormatError, ExitArchiveError, ExitNotFound}
	seen := make(map[int]bool)
	for _, c := range codes {
		require.False(t, seen[c], "duplicate exit code %d", c)
		seen[c] = true
	}
}
