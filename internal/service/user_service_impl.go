package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/studyloop/studyloop/internal/db"
	"github.com/studyloop/studyloop/internal/domain"
	"github.com/studyloop/studyloop/internal/repository"
)

type userService struct {
	users repository.UserRepo
	uow   db.UnitOfWork
	obs   UseCaseObserver
}

func NewUserService(users repository.UserRepo, uow db.UnitOfWork, observers ...UseCaseObserver) UserService {
	return &userService{users: users, uow: uow, obs: useCaseObserverOrNoop(observers)}
}

// Register creates a user together with their zeroed analytics row in one
// transaction, so the aggregate always exists by the time it is first read.
func (s *userService) Register(ctx context.Context, name string) (u *domain.User, err error) {
	defer observe(ctx, s.obs, "user.register", time.Now(), &err, map[string]any{"name": name})

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("user name must not be empty: %w", ErrValidation)
	}

	u = &domain.User{
		ID:        uuid.New().String(),
		Name:      name,
		Token:     uuid.New().String(),
		CreatedAt: time.Now().UTC(),
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txUsers := repository.NewSQLiteUserRepo(tx)
		txAnalytics := repository.NewSQLiteAnalyticsRepo(tx)

		if err := txUsers.Create(ctx, u); err != nil {
			return err
		}
		return txAnalytics.EnsureRow(ctx, u.ID)
	})
	if err != nil {
		return nil, classifyStorageErr(err)
	}
	return u, nil
}

func (s *userService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, fmt.Errorf("missing token: %w", ErrUnauthorized)
	}
	u, err := s.users.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("unknown token: %w", ErrUnauthorized)
		}
		return nil, err
	}
	return u, nil
}

func (s *userService) GetOrCreate(ctx context.Context, name string) (*domain.User, error) {
	u, err := s.users.GetByName(ctx, strings.TrimSpace(name))
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	return s.Register(ctx, name)
}
