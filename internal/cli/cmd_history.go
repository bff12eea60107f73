package cli

import (
	"fmt"

	"github.com/alexanderramin/calplan/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newHistoryCmd(app *App) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent generation attempts",
		RunE: func(cmd *cobra.Command, args []string) error {
			runs, err := app.Planner.History(cmd.Context(), limit)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatHistory(runs, app.Planner.Now().In(app.location())))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of runs to show")
	return cmd
}
