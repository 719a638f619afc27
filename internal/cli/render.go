package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/dashboard/dashboard"
	"github.com/rustyeddy/dashboard/view"
)

func newRenderCmd(rc *RootConfig) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Query every report once and write the page",
		Long: `Refresh every panel once and write the rendered HTML page.

Panels whose report fails are written with their fault.

Example:
  dashboard render -o status.html`,
		RunE: func(cmd *cobra.Command, args []string) error {
			d := rc.newDashboard()
			if err := d.Refresh(cmd.Context()); err != nil {
				rc.Log.Warn().Err(err).Msg("some panels failed")
			}

			var w io.Writer = cmd.OutOrStdout()
			if output != "" && output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("create output: %w", err)
				}
				defer f.Close()
				w = f
			}

			l := dashboard.Layout(dashboard.LayoutOptions{})
			return view.Render(w, l, d.Document().Snapshot())
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}
