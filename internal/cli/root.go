package cli

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/alexanderramin/calplan/internal/cli/formatter"
	"github.com/alexanderramin/calplan/internal/httpapi"
	"github.com/alexanderramin/calplan/internal/planning"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// App holds what the commands need: the planning flow, the raw generators
// for the HTTP API, and terminal facts.
type App struct {
	Planner   *planning.Planner
	Contexts  planning.ContextGenerator
	Calendars planning.CalendarGenerator
	// Model answers the /health reachability check of serve. Optional.
	Model     httpapi.ModelChecker
	Logger    *slog.Logger

	// Loc is the zone generated timestamps are read in.
	Loc *time.Location
	// HTTPAddr is the default listen address for serve.
	HTTPAddr string

	// IsInteractive reports whether stdin is a terminal. Nil means no.
	IsInteractive func() bool
	// RunProgram runs a TUI model. Tests replace it; nil uses bubbletea.
	RunProgram func(m tea.Model) error
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) logger() *slog.Logger {
	if a.Logger == nil {
		return slog.Default()
	}
	return a.Logger
}

func (a *App) location() *time.Location {
	if a.Loc == nil {
		return time.Local
	}
	return a.Loc
}

func (a *App) runProgram(m tea.Model) error {
	if a.RunProgram != nil {
		return a.RunProgram(m)
	}
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

var startSpinner = formatter.StartSpinner

// spin shows a spinner on out while fn runs, when the terminal is
// interactive.
func (a *App) spin(out io.Writer, message string, fn func() error) error {
	if !a.interactive() {
		return fn()
	}
	stop := startSpinner(out, message)
	defer stop()
	return fn()
}

// NewRootCmd creates the top-level "calplan" command. Without arguments it
// opens the guided TUI on an interactive terminal.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "calplan",
		Short:         "Plan a week of meetings around your objectives",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return cmd.Help()
			}
			st, err := app.Planner.Load(cmd.Context())
			if err != nil {
				return err
			}
			return app.runProgram(newAppModel(cmd.Context(), app, st, startGuided))
		},
	}

	root.AddCommand(
		newContextCmd(app),
		newConstraintsCmd(app),
		newGenerateCmd(app),
		newViewCmd(app),
		newExportCmd(app),
		newAuditCmd(app),
		newHistoryCmd(app),
		newServeCmd(app),
		newResetCmd(app),
	)
	return root
}

// Execute runs the root command and rewrites session and generation
// failures into actionable messages.
func Execute(ctx context.Context, app *App, args []string) error {
	root := NewRootCmd(app)
	root.SetArgs(args)
	return userError(root.ExecuteContext(ctx))
}
