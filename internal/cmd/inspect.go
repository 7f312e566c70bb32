package cmd

import (
	"github.com/spf13/cobra"

	"github.com/omodtool/cli/internal/cmdutil"
	"github.com/omodtool/cli/internal/descriptor"
	"github.com/omodtool/cli/internal/output"
)

// NewInspectCmd creates the inspect command.
func NewInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file.omod>",
		Short: "Show a module's parsed descriptor",
		Long: `Inspect parses a packaged module archive and prints the descriptor.

The default summary format shows identity, version constraints, and
declared extension counts. Use -o json or -o yaml for the full descriptor.`,
		Args: cobra.ExactArgs(1),
		RunE: runInspect,
	}
}

func runInspect(cmd *cobra.Command, args []string) error {
	parser, err := descriptor.New(args[0], descriptor.WithLogger(output.Logger))
	if err != nil {
		return NewExitError(err, ExitCodeFromError(err))
	}

	desc, err := parser.Parse()
	if err != nil {
		return NewExitError(err, ExitCodeFromError(err))
	}

	if err := cmdutil.RenderDescriptor(desc, resolveOutputFormat()); err != nil {
		return NewExitError(err, ExitGeneralError)
	}
	return nil
}
