package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/dashboard/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Generate or validate configuration files",
		Long: `Manage dashboard configuration files.

Subcommands:
  init     - Generate a default configuration file
  validate - Validate an existing configuration file

Examples:
  dashboard config init -o dashboard.yaml
  dashboard config validate -f dashboard.yaml`,
	}

	var output string
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Default().SaveToFile(output); err != nil {
				return fmt.Errorf("save config: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "✓ Created default configuration: %s\n", output)
			fmt.Fprintln(out, "\nEdit the file and run with:")
			fmt.Fprintf(out, "  dashboard serve --config %s\n", output)
			return nil
		},
	}
	initCmd.Flags().StringVarP(&output, "output", "o", "dashboard.yaml", "output config file path")

	var path string
	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadFromFile(path)
			if err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "✓ Configuration valid: %s\n", path)
			fmt.Fprintf(out, "  Backend: %s (timeout %s)\n", cfg.Backend.URL, cfg.Backend.Timeout)
			fmt.Fprintf(out, "  Listen: %s\n", cfg.ListenAddr())
			fmt.Fprintf(out, "  Poll: %s\n", cfg.Poll.Interval)
			return nil
		},
	}
	validateCmd.Flags().StringVarP(&path, "file", "f", "", "path to config file (required)")
	_ = validateCmd.MarkFlagRequired("file")

	cmd.AddCommand(initCmd, validateCmd)
	return cmd
}
