package testutil

import (
	"time"

	"github.com/google/uuid"
	"github.com/studyloop/studyloop/internal/domain"
)

// User fixtures

func NewTestUser(name string) *domain.User {
	return &domain.User{
		ID:        uuid.New().String(),
		Name:      name,
		Token:     uuid.New().String(),
		CreatedAt: time.Now().UTC(),
	}
}

// Session options

type SessionOption func(*domain.StudySession)

func WithSubject(subject string) SessionOption {
	return func(s *domain.StudySession) {
		s.Subject = subject
	}
}

func WithStartedAt(t time.Time) SessionOption {
	return func(s *domain.StudySession) {
		s.StartedAt = t
	}
}

func WithEndedAt(t time.Time) SessionOption {
	return func(s *domain.StudySession) {
		ended := t
		s.EndedAt = &ended
	}
}

func WithDuration(minutes int) SessionOption {
	return func(s *domain.StudySession) {
		s.DurationMin = minutes
	}
}

func NewTestSession(ownerID, name string, opts ...SessionOption) *domain.StudySession {
	now := time.Now().UTC()
	s := &domain.StudySession{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		Name:      name,
		StartedAt: now,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Todo options

type TodoOption func(*domain.Todo)

func WithDescription(desc string) TodoOption {
	return func(t *domain.Todo) {
		t.Description = desc
	}
}

func WithCreatedAt(at time.Time) TodoOption {
	return func(t *domain.Todo) {
		t.CreatedAt = at
	}
}

func WithCompletedAt(at time.Time) TodoOption {
	return func(t *domain.Todo) {
		done := at
		t.Status = domain.TodoCompleted
		t.CompletedAt = &done
	}
}

func NewTestTodo(ownerID, title string, opts ...TodoOption) *domain.Todo {
	t := &domain.Todo{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		Title:     title,
		Status:    domain.TodoPending,
		CreatedAt: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}
