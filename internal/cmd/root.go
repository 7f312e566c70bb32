package cmd

import (
	"github.com/spf13/cobra"

	"github.com/omodtool/cli/internal/config"
	"github.com/omodtool/cli/internal/output"
	"github.com/omodtool/cli/internal/version"
)

var (
	// Global flags
	configFlag       string
	outputFormatFlag string
	verboseFlag      bool
	timestampsFlag   bool

	// Loaded configuration (set during PersistentPreRunE)
	loadedConfig *config.Config
)

// NewRootCmd creates the root command for the omod CLI.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "omod",
		Short:         "Inspect and validate packaged module archives",
		Long: `omod parses packaged module archives (.omod files) and validates their
config.xml descriptors.

It provides commands to:
  - Inspect a module's parsed descriptor
  - Validate a module archive
  - Manage CLI configuration`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initializeGlobals(cmd)
		},
	}

	// Add global flags
	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Path to config file (env: OMOD_CONFIG)")
	rootCmd.PersistentFlags().StringVarP(&outputFormatFlag, "output", "o", "", "Output format: summary, json, yaml (env: OMOD_OUTPUT)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&timestampsFlag, "timestamps", false, "Show timestamps in log output")

	// Add subcommands
	rootCmd.AddCommand(NewInspectCmd())
	rootCmd.AddCommand(NewValidateCmd())
	rootCmd.AddCommand(NewConfigCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// initializeGlobals loads configuration and sets up logging.
func initializeGlobals(cmd *cobra.Command) error {
	cfg, err := config.NewLoader().LoadWithDefaults(configFlag)
	if err != nil {
		output.Debug("config load error", "error", err)
		// Don't fail here - commands work with defaults alone
		cfg = config.DefaultConfig()
	}
	loadedConfig = cfg

	// Build LogConfig with precedence: flag > config > default
	logCfg := output.LogConfig{
		Verbose: verboseFlag,
	}
	if cmd.Flags().Changed("timestamps") {
		logCfg.Timestamps = output.BoolPtr(timestampsFlag)
	} else if cfg.Log.Timestamps != nil {
		logCfg.Timestamps = cfg.Log.Timestamps
	}
	output.SetupLogging(logCfg)

	info := version.GetInfo()
	output.Debug("omod CLI started", "version", info.Version)

	return nil
}

// resolveOutputFormat applies precedence: flag > config > default.
func resolveOutputFormat() output.OutputFormat {
	if outputFormatFlag != "" {
		return output.ParseOutputFormat(outputFormatFlag)
	}
	if loadedConfig != nil && loadedConfig.Output != "" {
		return output.ParseOutputFormat(loadedConfig.Output)
	}
	return output.FormatSummary
}
