package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/studyloop/studyloop/internal/cli"
	"github.com/studyloop/studyloop/internal/config"
	"github.com/studyloop/studyloop/internal/db"
	"github.com/studyloop/studyloop/internal/repository"
	"github.com/studyloop/studyloop/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.LoadConfig()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel(cfg.LogLevel),
	}))
	observer := service.NewSlogUseCaseObserver(logger)

	// Open database
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	userRepo := repository.NewSQLiteUserRepo(database)
	sessionRepo := repository.NewSQLiteSessionRepo(database)
	todoRepo := repository.NewSQLiteTodoRepo(database)
	analyticsRepo := repository.NewSQLiteAnalyticsRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	app := &cli.App{
		Users:     service.NewUserService(userRepo, uow, observer),
		Sessions:  service.NewSessionService(sessionRepo, uow, observer),
		Todos:     service.NewTodoService(todoRepo, uow, observer),
		Analytics: service.NewAnalyticsService(analyticsRepo),
		Insights:  service.NewInsightService(sessionRepo, todoRepo, observer),

		Config: cfg,
		Logger: logger,
	}

	// Detect interactive terminal for forms and the timer TUI.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	// Execute root command
	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}

func logLevel(name string) slog.Level {
	switch name {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
