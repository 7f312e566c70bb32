package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/omodtool/cli/internal/descriptor"
	"github.com/omodtool/cli/internal/output"
)

// NewValidateCmd creates the validate command.
func NewValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <file.omod>",
		Short: "Validate a module archive's descriptor",
		Long: `Validate parses a packaged module archive and reports whether its
config.xml descriptor is valid.

Skipped entries (malformed advice, extension, privilege, or globalProperty
elements) are reported as warnings and do not fail validation. Exit codes
distinguish validation failures from archive and format errors.`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}
	return cmd
}

func runValidate(cmd *cobra.Command, args []string) error {
	parser, err := descriptor.New(args[0], descriptor.WithLogger(output.Logger))
	if err != nil {
		output.Error("invalid module artifact", "error", err)
		return &ExitError{Err: err, Code: ExitCodeFromError(err), Printed: true}
	}

	desc, warnings, err := parser.ParseDetailed()
	if err != nil {
		output.Error("descriptor is invalid", "artifact", args[0], "error", err)
		return &ExitError{Err: err, Code: ExitCodeFromError(err), Printed: true}
	}

	for _, w := range warnings {
		output.Warn("skipped descriptor entry", "element", w.Element, "reason", w.Reason)
	}

	output.Println(output.FormatCheckmark(fmt.Sprintf("%s %s is valid (config version %s)",
		desc.ID, desc.Version, desc.ConfigVersion)))
	return nil
}
