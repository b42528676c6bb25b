package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/studyloop/studyloop/internal/config"
	"github.com/studyloop/studyloop/internal/domain"
	"github.com/studyloop/studyloop/internal/repository"
	"github.com/studyloop/studyloop/internal/service"
	"github.com/studyloop/studyloop/internal/testutil"
)

// testApp builds a fully wired App over an in-memory database, with a
// registered owner for commands to run under.
func testApp(t *testing.T) (*App, *domain.User) {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)

	userRepo := repository.NewSQLiteUserRepo(database)
	sessionRepo := repository.NewSQLiteSessionRepo(database)
	todoRepo := repository.NewSQLiteTodoRepo(database)
	analyticsRepo := repository.NewSQLiteAnalyticsRepo(database)

	app := &App{
		Users:     service.NewUserService(userRepo, uow),
		Sessions:  service.NewSessionService(sessionRepo, uow),
		Todos:     service.NewTodoService(todoRepo, uow),
		Analytics: service.NewAnalyticsService(analyticsRepo),
		Insights:  service.NewInsightService(sessionRepo, todoRepo),
		Config:    config.DefaultConfig(),
	}

	owner, err := app.Users.Register(context.Background(), "tester")
	require.NoError(t, err)
	return app, owner
}
