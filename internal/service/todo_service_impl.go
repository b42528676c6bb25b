package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/studyloop/studyloop/internal/db"
	"github.com/studyloop/studyloop/internal/domain"
	"github.com/studyloop/studyloop/internal/repository"
)

type todoService struct {
	todos repository.TodoRepo
	uow   db.UnitOfWork
	obs   UseCaseObserver
}

func NewTodoService(todos repository.TodoRepo, uow db.UnitOfWork, observers ...UseCaseObserver) TodoService {
	return &todoService{todos: todos, uow: uow, obs: useCaseObserverOrNoop(observers)}
}

func (s *todoService) Create(ctx context.Context, ownerID, title, description string) (t *domain.Todo, err error) {
	defer observe(ctx, s.obs, "todo.create", time.Now(), &err, map[string]any{"owner": ownerID})

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("todo title must not be empty: %w", ErrValidation)
	}

	t = &domain.Todo{
		ID:          uuid.New().String(),
		OwnerID:     ownerID,
		Title:       title,
		Description: strings.TrimSpace(description),
		Status:      domain.TodoPending,
		CreatedAt:   time.Now().UTC(),
	}
	if err = classifyStorageErr(s.todos.Create(ctx, t)); err != nil {
		return nil, err
	}
	return t, nil
}

// Toggle flips completion state. Completing a todo folds into the owner's
// aggregate inside the same transaction; un-completing does not decrement
// the completed-tasks counter, which is a lifetime count.
func (s *todoService) Toggle(ctx context.Context, ownerID, id string, completed bool) (t *domain.Todo, err error) {
	defer observe(ctx, s.obs, "todo.toggle", time.Now(), &err, map[string]any{"owner": ownerID, "completed": completed})

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTodos := repository.NewSQLiteTodoRepo(tx)
		txAnalytics := repository.NewSQLiteAnalyticsRepo(tx)

		cur, err := txTodos.GetByID(ctx, ownerID, id)
		if err != nil {
			return err
		}
		becameCompleted := cur.SetCompleted(completed, time.Now().UTC())
		if err := txTodos.Update(ctx, cur); err != nil {
			return err
		}
		if becameCompleted {
			if err := txAnalytics.ApplyTaskCompleted(ctx, ownerID); err != nil {
				return err
			}
		}
		t = cur
		return nil
	})
	if err != nil {
		return nil, classifyStorageErr(err)
	}
	return t, nil
}

func (s *todoService) Delete(ctx context.Context, ownerID, id string) (err error) {
	defer observe(ctx, s.obs, "todo.delete", time.Now(), &err, map[string]any{"owner": ownerID})
	err = classifyStorageErr(s.todos.Delete(ctx, ownerID, id))
	return err
}

func (s *todoService) List(ctx context.Context, ownerID string) ([]*domain.Todo, error) {
	return s.todos.ListByOwner(ctx, ownerID)
}
