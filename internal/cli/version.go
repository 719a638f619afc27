package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Set by -ldflags at release time.
var version = "dev"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		// Skip config loading.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "dashboard version %s\n", version)
		},
	}
}
