package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/dashboard/dashboard"
	"github.com/rustyeddy/dashboard/report"
	"github.com/rustyeddy/dashboard/view"
)

func newRollCmd(rc *RootConfig) *cobra.Command {
	var confirmed bool

	cmd := &cobra.Command{
		Use:   "roll <instrument> <state>",
		Short: "Change an instrument's roll state",
		Long: `Send a roll state command and print the reply.

A Roll_Adjusted command without --confirmed only previews the adjusted
prices. Valid states: ` + strings.Join(report.RollStates(), ", ") + `

Example:
  dashboard roll EDOLLAR Roll_Adjusted
  dashboard roll EDOLLAR Roll_Adjusted --confirmed`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := report.ParseRollState(args[1])
			if err != nil {
				return err
			}
			rollCmd := report.RollCommand{Instrument: args[0], State: st, Confirmed: confirmed}

			d := rc.newDashboard()
			if st != report.StateRollAdjusted || confirmed {
				// Fill the status table so a state change has a row to patch.
				if err := d.UpdateRolls(cmd.Context()); err != nil {
					rc.Log.Warn().Err(err).Msg("could not load roll status")
				}
			}

			kind, err := d.Roll(cmd.Context(), rollCmd)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "reply: %s\n", kind)

			doc := d.Document()
			switch kind {
			case report.KindPreviewSingle, report.KindPreviewMultiple:
				fmt.Fprintln(out, doc.Section(dashboard.SectionRollPrices).Title)
				if kind == report.KindPreviewSingle {
					printRows(cmd, []string{"Date", "Current", "New"}, doc.Rows(dashboard.TableRollPricesSingle))
				}
				printRows(cmd, []string{"Date", "Carry contract", "Carry", "New carry", "Price contract", "Price",
					"New price", "Forward contract", "Forward", "New forward"}, doc.Rows(dashboard.TableRollPricesMulti))
				fmt.Fprintf(out, "re-run with --confirmed to roll %s\n", rollCmd.Instrument)
			case report.KindRollAdjusted, report.KindStatePatch:
				for _, r := range doc.Rows(dashboard.TableRollsStatus) {
					if r.ID == dashboard.RollRowID(rollCmd.Instrument) {
						printRows(cmd, []string{"Instrument", "State", "Roll", "Carry", "Price", "Allowed"}, []view.Row{r})
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&confirmed, "confirmed", false, "confirm an adjusted price roll")
	return cmd
}

func printRows(cmd *cobra.Command, columns []string, rows []view.Row) {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(columns, "\t"))
	for _, r := range rows {
		cells := make([]string, len(r.Cells))
		for i, c := range r.Cells {
			switch {
			case len(c.Buttons) > 0:
				states := make([]string, len(c.Buttons))
				for j, b := range c.Buttons {
					states[j] = b.State
				}
				cells[i] = strings.Join(states, ",")
			case len(c.Lines) > 0:
				cells[i] = strings.Join(c.Lines, " ")
			default:
				cells[i] = c.Text
			}
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	tw.Flush()
}
