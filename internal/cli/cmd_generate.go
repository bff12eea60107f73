package cli

import (
	"fmt"

	"github.com/alexanderramin/calplan/internal/calendar"
	"github.com/alexanderramin/calplan/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newGenerateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Generate a calendar from the saved context and constraints",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := app.Planner.Load(ctx)
			if err != nil {
				return err
			}
			if _, err := st.RequireContext(); err != nil {
				return err
			}
			if _, err := st.RequireConstraints(); err != nil {
				return err
			}

			err = app.spin(cmd.ErrOrStderr(), "Generating calendar…", func() error {
				st, err = app.Planner.Regenerate(ctx, st)
				return err
			})
			if err != nil {
				return err
			}

			batch, _ := st.RequireBatch()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s Generated %d events %s\n", formatter.StyleGreen.Render("✔"),
				len(batch.Events), formatter.Dim("(batch "+batch.ID+")"))

			report := calendar.Audit(batch.Events, st.Context, app.location())
			if !report.Clean() {
				fmt.Fprintf(out, "%s %s\n", formatter.StyleYellow.Render("!"),
					formatter.Dim("The model's schedule has issues; see calplan audit."))
			}
			fmt.Fprintln(out, formatter.Dim("Next: calplan view"))
			return nil
		},
	}
}
