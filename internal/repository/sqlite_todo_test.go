package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studyloop/studyloop/internal/domain"
	"github.com/studyloop/studyloop/internal/repository"
	"github.com/studyloop/studyloop/internal/testutil"
)

func TestSQLiteTodoRepo_CreateAndGet(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteTodoRepo(database)
	ctx := context.Background()

	owner := createUser(t, database, "alice")
	todo := testutil.NewTestTodo(owner.ID, "read chapter 4",
		testutil.WithDescription("pages 80-110"))
	require.NoError(t, repo.Create(ctx, todo))

	got, err := repo.GetByID(ctx, owner.ID, todo.ID)
	require.NoError(t, err)
	assert.Equal(t, "read chapter 4", got.Title)
	assert.Equal(t, "pages 80-110", got.Description)
	assert.Equal(t, domain.TodoPending, got.Status)
	assert.Nil(t, got.CompletedAt)

	t.Run("lookups are owner scoped", func(t *testing.T) {
		other := createUser(t, database, "bob")
		_, err := repo.GetByID(ctx, other.ID, todo.ID)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestSQLiteTodoRepo_ListByOwner(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteTodoRepo(database)
	ctx := context.Background()

	owner := createUser(t, database, "alice")
	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	titles := []string{"oldest", "middle", "newest"}
	for i, title := range titles {
		todo := testutil.NewTestTodo(owner.ID, title,
			testutil.WithCreatedAt(base.Add(time.Duration(i)*time.Hour)))
		require.NoError(t, repo.Create(ctx, todo))
	}

	got, err := repo.ListByOwner(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "newest", got[0].Title)
	assert.Equal(t, "oldest", got[2].Title)
}

func TestSQLiteTodoRepo_Update(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteTodoRepo(database)
	ctx := context.Background()

	owner := createUser(t, database, "alice")
	todo := testutil.NewTestTodo(owner.ID, "revise notes")
	require.NoError(t, repo.Create(ctx, todo))

	doneAt := time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)
	require.True(t, todo.SetCompleted(true, doneAt))
	require.NoError(t, repo.Update(ctx, todo))

	got, err := repo.GetByID(ctx, owner.ID, todo.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TodoCompleted, got.Status)
	require.NotNil(t, got.CompletedAt)
	assert.True(t, got.CompletedAt.Equal(doneAt))

	t.Run("unknown todo yields ErrNotFound", func(t *testing.T) {
		missing := testutil.NewTestTodo(owner.ID, "ghost")
		assert.ErrorIs(t, repo.Update(ctx, missing), repository.ErrNotFound)
	})
}

func TestSQLiteTodoRepo_Delete(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteTodoRepo(database)
	ctx := context.Background()

	owner := createUser(t, database, "alice")
	todo := testutil.NewTestTodo(owner.ID, "throwaway")
	require.NoError(t, repo.Create(ctx, todo))

	require.NoError(t, repo.Delete(ctx, owner.ID, todo.ID))

	_, err := repo.GetByID(ctx, owner.ID, todo.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	t.Run("deleting twice yields ErrNotFound", func(t *testing.T) {
		assert.ErrorIs(t, repo.Delete(ctx, owner.ID, todo.ID), repository.ErrNotFound)
	})
}

func TestSQLiteTodoRepo_CountByStatus(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteTodoRepo(database)
	ctx := context.Background()

	owner := createUser(t, database, "alice")

	t.Run("empty store counts zero", func(t *testing.T) {
		completed, total, err := repo.CountByStatus(ctx, owner.ID)
		require.NoError(t, err)
		assert.Zero(t, completed)
		assert.Zero(t, total)
	})

	doneAt := time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, testutil.NewTestTodo(owner.ID, "a")))
	require.NoError(t, repo.Create(ctx, testutil.NewTestTodo(owner.ID, "b",
		testutil.WithCompletedAt(doneAt))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestTodo(owner.ID, "c",
		testutil.WithCompletedAt(doneAt))))

	completed, total, err := repo.CountByStatus(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, completed)
	assert.Equal(t, 3, total)
}
