package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/omodtool/cli/internal/config"
	"github.com/omodtool/cli/internal/output"
)

// NewConfigCmd creates the config command group.
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
	}
	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigViewCmd())
	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		Long:  `Init writes a config file with default values to ~/.omod/config.yaml.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.GetConfigFile()
			if err != nil {
				return err
			}

			if !force {
				exists, err := config.ConfigFileExists(path)
				if err != nil {
					return err
				}
				if exists {
					return fmt.Errorf("config file already exists at %s (use --force to overwrite)", path)
				}
			}

			if err := config.EnsureHomeDir(); err != nil {
				return fmt.Errorf("creating config directory: %w", err)
			}

			data, err := yaml.Marshal(config.DefaultConfig())
			if err != nil {
				return fmt.Errorf("marshaling default config: %w", err)
			}
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return fmt.Errorf("writing config file: %w", err)
			}

			output.Println(output.FormatCheckmark("wrote " + path))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	return cmd
}

func newConfigViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "Show the resolved configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := yaml.Marshal(loadedConfig)
			if err != nil {
				return fmt.Errorf("marshaling config: %w", err)
			}
			output.Print(string(data))
			return nil
		},
	}
}
