package repository

import (
	"context"
	"time"

	"github.com/studyloop/studyloop/internal/domain"
)

type UserRepo interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByName(ctx context.Context, name string) (*domain.User, error)
	GetByToken(ctx context.Context, token string) (*domain.User, error)
}

type SessionRepo interface {
	Create(ctx context.Context, s *domain.StudySession) error
	GetByID(ctx context.Context, ownerID, id string) (*domain.StudySession, error)
	GetOpen(ctx context.Context, ownerID string) (*domain.StudySession, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.StudySession, error)
	ListClosedSince(ctx context.Context, ownerID string, since time.Time) ([]*domain.StudySession, error)
	Update(ctx context.Context, s *domain.StudySession) error
}

type TodoRepo interface {
	Create(ctx context.Context, t *domain.Todo) error
	GetByID(ctx context.Context, ownerID, id string) (*domain.Todo, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Todo, error)
	Update(ctx context.Context, t *domain.Todo) error
	Delete(ctx context.Context, ownerID, id string) error
	CountByStatus(ctx context.Context, ownerID string) (completed, total int, err error)
}

type AnalyticsRepo interface {
	Get(ctx context.Context, ownerID string) (*domain.Aggregate, error)
	EnsureRow(ctx context.Context, ownerID string) error
	ApplySessionClosed(ctx context.Context, ownerID, subject string, minutes int) error
	ApplyTaskCompleted(ctx context.Context, ownerID string) error
}
