package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/studyloop/studyloop/internal/httpapi"
)

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the studyloop REST API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			api := &httpapi.API{
				Users:     app.Users,
				Sessions:  app.Sessions,
				Todos:     app.Todos,
				Analytics: app.Analytics,
				Insights:  app.Insights,
				Settings:  app.Config.Pomodoro,
				Logger:    app.Logger,
			}

			srv, err := httpapi.Start(ctx, api, addr)
			if err != nil {
				return err
			}
			cmd.Printf("studyloop API listening on %s\n", srv.BaseURL())

			<-ctx.Done()
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (defaults to STUDYLOOP_ADDR)")
	cmd.PreRun = func(cmd *cobra.Command, args []string) {
		if addr == "" {
			addr = app.Config.Addr
		}
	}

	return cmd
}
