package cli

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/studyloop/studyloop/internal/config"
	"github.com/studyloop/studyloop/internal/service"
)

// Version is stamped at build time via -ldflags.
var Version = "dev"

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Users     service.UserService
	Sessions  service.SessionService
	Todos     service.TodoService
	Analytics service.AnalyticsService
	Insights  service.InsightService

	Config config.Config
	Logger *slog.Logger

	// IsInteractive reports whether stdin is an interactive terminal,
	// gating huh forms and the timer TUI.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "studyloop" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:     "studyloop",
		Short:   "Pomodoro study sessions, todos and study analytics",
		Version: Version,
	}

	root.AddCommand(
		newServeCmd(app),
		newTimerCmd(app),
		newSessionsCmd(app),
		newTodoCmd(app),
		newStatsCmd(app),
		newUserCmd(app),
	)

	return root
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}
