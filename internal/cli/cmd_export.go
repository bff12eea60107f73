package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/alexanderramin/calplan/internal/calendar"
	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the generated calendar as iCalendar (.ics)",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := app.Planner.Load(cmd.Context())
			if err != nil {
				return err
			}
			batch, err := st.RequireBatch()
			if err != nil {
				return err
			}

			ics, errs := calendar.ExportICS(batch, app.location())
			for _, e := range errs {
				fmt.Fprintln(cmd.ErrOrStderr(), "skipped:", e)
			}

			var w io.Writer = cmd.OutOrStdout()
			if output != "" && output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("creating %s: %w", output, err)
				}
				defer f.Close()
				w = f
			}
			if _, err := io.WriteString(w, ics); err != nil {
				return fmt.Errorf("writing calendar: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to this file instead of stdout")
	return cmd
}
