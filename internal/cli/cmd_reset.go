package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/calplan/internal/cli/formatter"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func newResetCmd(app *App) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Forget the saved context, constraints and calendar",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				if !app.interactive() {
					return errors.New("refusing to reset without --yes")
				}
				confirm := false
				err := huh.NewForm(huh.NewGroup(
					huh.NewConfirm().
						Title("Forget the saved context, constraints and calendar?").
						Affirmative("Reset").
						Negative("Keep").
						Value(&confirm),
				)).WithTheme(calplanHuhTheme()).WithShowHelp(false).Run()
				if err != nil || !confirm {
					fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Nothing changed."))
					return nil
				}
			}
			if err := app.Planner.Reset(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.StyleGreen.Render("✔")+" Session cleared. Start again with `calplan context`.")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}
