package cli

import (
	"fmt"

	"github.com/alexanderramin/calplan/internal/calendar"
	"github.com/alexanderramin/calplan/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newAuditCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "audit",
		Short: "Report overlaps and moved or missing commitments in the calendar",
		Long: `Compare the generated calendar with the fixed meetings of the context.
The report is informational; the calendar is left as generated.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := app.Planner.Load(cmd.Context())
			if err != nil {
				return err
			}
			batch, err := st.RequireBatch()
			if err != nil {
				return err
			}
			report := calendar.Audit(batch.Events, st.Context, app.location())
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatAudit(report))
			return nil
		},
	}
}
