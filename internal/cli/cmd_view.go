package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/calplan/internal/calendar"
	"github.com/alexanderramin/calplan/internal/cli/formatter"
	"github.com/alexanderramin/calplan/internal/domain"
	"github.com/spf13/cobra"
)

func newViewCmd(app *App) *cobra.Command {
	var weekFlag string
	var grid, static bool
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Show the generated calendar week by week",
		Long: `Show the generated calendar. On a terminal this opens the week grid;
otherwise, or with --static, the week is printed once.

The week shown defaults to the next one starting on a Monday.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := app.Planner.Load(ctx)
			if err != nil {
				return err
			}
			batch, err := st.RequireBatch()
			if err != nil {
				return err
			}

			loc := app.location()
			week := calendar.DefaultWeek(app.Planner.Now().In(loc))
			if weekFlag != "" {
				day, err := time.ParseInLocation(domain.DateLayout, weekFlag, loc)
				if err != nil {
					return &domain.ValidationError{Field: "week", Message: "use YYYY-MM-DD"}
				}
				week = calendar.WeekOf(day)
			}

			if app.interactive() && !static {
				m := newAppModel(ctx, app, st, startCalendar)
				m.state.Week = week
				return app.runProgram(m)
			}

			placed, errs := calendar.ParseEvents(batch.Events, loc)
			out := cmd.OutOrStdout()
			if grid {
				fmt.Fprintln(out, formatter.Bold(week.Label()))
				fmt.Fprint(out, formatter.RenderWeek(formatter.WeekGrid{
					Week:     week,
					Events:   placed,
					Hours:    calendar.HourRangeFor(st.Constraints),
					Today:    app.Planner.Now().In(loc),
					Selected: -1,
				}))
			} else {
				fmt.Fprint(out, formatter.FormatAgenda(week, placed))
			}
			if len(errs) > 0 {
				fmt.Fprintln(out, formatter.StyleYellow.Render(fmt.Sprintf("%d events could not be read; see calplan audit", len(errs))))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&weekFlag, "week", "", "show the week containing this date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&grid, "grid", false, "print the hour grid instead of the agenda")
	cmd.Flags().BoolVar(&static, "static", false, "print once even on a terminal")
	return cmd
}
