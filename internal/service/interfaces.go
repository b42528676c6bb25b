package service

import (
	"context"
	"time"

	"github.com/studyloop/studyloop/internal/contract"
	"github.com/studyloop/studyloop/internal/domain"
)

type UserService interface {
	Register(ctx context.Context, name string) (*domain.User, error)
	Authenticate(ctx context.Context, token string) (*domain.User, error)
	// GetOrCreate resolves a user by name, registering them on first use.
	// Local CLI commands run under such a named owner.
	GetOrCreate(ctx context.Context, name string) (*domain.User, error)
}

type SessionService interface {
	Start(ctx context.Context, ownerID, name, subject string) (*domain.StudySession, error)
	Active(ctx context.Context, ownerID string) (*domain.StudySession, error)
	List(ctx context.Context, ownerID string) ([]*domain.StudySession, error)
	// CompletePhase adds finished work minutes to an open session.
	CompletePhase(ctx context.Context, ownerID, id string, minutes int) (*domain.StudySession, error)
	// Close finalizes the session and folds it into the owner's aggregate
	// as a single transactional unit.
	Close(ctx context.Context, ownerID, id string, minutes int) (*domain.StudySession, error)
	// Resume recovers the remaining work-phase time of the active session
	// after a restart, given the configured work duration.
	Resume(ctx context.Context, ownerID string, work time.Duration) (*domain.StudySession, time.Duration, error)
}

type TodoService interface {
	Create(ctx context.Context, ownerID, title, description string) (*domain.Todo, error)
	Toggle(ctx context.Context, ownerID, id string, completed bool) (*domain.Todo, error)
	Delete(ctx context.Context, ownerID, id string) error
	List(ctx context.Context, ownerID string) ([]*domain.Todo, error)
}

type AnalyticsService interface {
	Get(ctx context.Context, ownerID string) (*domain.Aggregate, error)
}

// InsightService produces display-ready, time-bucketed views. All methods
// honor a soft-failure contract: storage errors degrade to complete,
// zero-filled structures instead of propagating.
type InsightService interface {
	DailyStudyHours(ctx context.Context, ownerID string, rng domain.RangeKind) []contract.DailyBucket
	TaskCompletionSplit(ctx context.Context, ownerID string) contract.CompletionSplit
	StreakCalendar(ctx context.Context, ownerID string, days int) contract.StreakReport
}
