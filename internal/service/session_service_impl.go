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
	"github.com/studyloop/studyloop/internal/pomodoro"
	"github.com/studyloop/studyloop/internal/repository"
)

type sessionService struct {
	sessions repository.SessionRepo
	uow      db.UnitOfWork
	obs      UseCaseObserver
}

func NewSessionService(sessions repository.SessionRepo, uow db.UnitOfWork, observers ...UseCaseObserver) SessionService {
	return &sessionService{sessions: sessions, uow: uow, obs: useCaseObserverOrNoop(observers)}
}

func (s *sessionService) Start(ctx context.Context, ownerID, name, subject string) (sess *domain.StudySession, err error) {
	defer observe(ctx, s.obs, "session.start", time.Now(), &err, map[string]any{"owner": ownerID})

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("session name must not be empty: %w", ErrValidation)
	}

	if _, err := s.sessions.GetOpen(ctx, ownerID); err == nil {
		return nil, fmt.Errorf("a session is already open: %w", ErrValidation)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, classifyStorageErr(err)
	}

	now := time.Now().UTC()
	sess = &domain.StudySession{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		Name:      name,
		Subject:   strings.TrimSpace(subject),
		StartedAt: now,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err = classifyStorageErr(s.sessions.Create(ctx, sess)); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *sessionService) Active(ctx context.Context, ownerID string) (*domain.StudySession, error) {
	return s.sessions.GetOpen(ctx, ownerID)
}

func (s *sessionService) List(ctx context.Context, ownerID string) ([]*domain.StudySession, error) {
	return s.sessions.ListByOwner(ctx, ownerID)
}

func (s *sessionService) CompletePhase(ctx context.Context, ownerID, id string, minutes int) (sess *domain.StudySession, err error) {
	defer observe(ctx, s.obs, "session.complete_phase", time.Now(), &err, map[string]any{"owner": ownerID, "minutes": minutes})

	if minutes < 0 {
		return nil, fmt.Errorf("minutes must be non-negative: %w", ErrValidation)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSessions := repository.NewSQLiteSessionRepo(tx)

		cur, err := txSessions.GetByID(ctx, ownerID, id)
		if err != nil {
			return err
		}
		if err := cur.ApplyWorkMinutes(minutes, time.Now().UTC()); err != nil {
			return fmt.Errorf("%s: %w", err, ErrValidation)
		}
		if err := txSessions.Update(ctx, cur); err != nil {
			return err
		}
		sess = cur
		return nil
	})
	if err != nil {
		return nil, classifyStorageErr(err)
	}
	return sess, nil
}

// Close finalizes the session and folds it into the owner's aggregate inside
// one transaction: no reader observes a closed session with a stale aggregate.
func (s *sessionService) Close(ctx context.Context, ownerID, id string, minutes int) (sess *domain.StudySession, err error) {
	defer observe(ctx, s.obs, "session.close", time.Now(), &err, map[string]any{"owner": ownerID, "minutes": minutes})

	if minutes < 0 {
		return nil, fmt.Errorf("minutes must be non-negative: %w", ErrValidation)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSessions := repository.NewSQLiteSessionRepo(tx)
		txAnalytics := repository.NewSQLiteAnalyticsRepo(tx)

		cur, err := txSessions.GetByID(ctx, ownerID, id)
		if err != nil {
			return err
		}
		if err := cur.Close(minutes, time.Now().UTC()); err != nil {
			return fmt.Errorf("%s: %w", err, ErrValidation)
		}
		if err := txSessions.Update(ctx, cur); err != nil {
			return err
		}
		if err := txAnalytics.ApplySessionClosed(ctx, ownerID, cur.Subject, cur.DurationMin); err != nil {
			return err
		}
		sess = cur
		return nil
	})
	if err != nil {
		return nil, classifyStorageErr(err)
	}
	return sess, nil
}

// Resume reconciles the active session's countdown from its persisted start
// time. A session that cannot be reconciled (clock skew, corrupt start time)
// surfaces pomodoro.ErrInvalidSessionState so the caller can prompt the user
// to end or restart it.
func (s *sessionService) Resume(ctx context.Context, ownerID string, work time.Duration) (*domain.StudySession, time.Duration, error) {
	sess, err := s.sessions.GetOpen(ctx, ownerID)
	if err != nil {
		return nil, 0, err
	}
	remaining, err := pomodoro.Reconcile(sess.StartedAt, time.Now().UTC(), work)
	if err != nil {
		return sess, 0, err
	}
	return sess, remaining, nil
}
