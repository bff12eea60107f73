package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/alexanderramin/calplan/internal/httpapi"
	"github.com/spf13/cobra"
)

func newServeCmd(app *App) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the context and calendar generation API over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := httpapi.NewServer(httpapi.Config{
				Contexts:  app.Contexts,
				Calendars: app.Calendars,
				Model:     app.Model,
				Logger:    app.logger(),
			})
			return httpapi.Run(ctx, addr, srv.Handler(), app.logger())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from CALPLAN_HTTP_ADDR)")
	cmd.PreRun = func(cmd *cobra.Command, args []string) {
		if addr == "" {
			addr = app.HTTPAddr
		}
		if addr == "" {
			addr = "127.0.0.1:8080"
		}
	}
	return cmd
}
