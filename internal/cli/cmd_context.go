package cli

import (
	"fmt"

	"github.com/alexanderramin/calplan/internal/cli/formatter"
	"github.com/alexanderramin/calplan/internal/planning"
	"github.com/spf13/cobra"
)

func newContextCmd(app *App) *cobra.Command {
	var show bool
	cmd := &cobra.Command{
		Use:   "context",
		Short: "Generate a new professional context (discards the current calendar)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			st, err := app.Planner.Load(ctx)
			if err != nil {
				return err
			}

			if !show {
				err = app.spin(cmd.ErrOrStderr(), "Generating professional context…", func() error {
					st, err = app.Planner.NewContext(ctx, st)
					return err
				})
				if err != nil {
					return err
				}
			}

			pc, err := st.RequireContext()
			if err != nil {
				return err
			}
			fmt.Fprint(out, formatter.FormatContext(pc, app.location()))
			for _, w := range planning.CheckContext(pc, app.Planner.Now()) {
				fmt.Fprintln(out, formatter.StyleYellow.Render("! ")+w)
			}
			if !show {
				fmt.Fprintln(out, "\n"+formatter.Dim("Next: calplan constraints"))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&show, "show", false, "print the saved context without generating")
	return cmd
}
