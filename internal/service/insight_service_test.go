package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studyloop/studyloop/internal/contract"
	"github.com/studyloop/studyloop/internal/domain"
	"github.com/studyloop/studyloop/internal/repository"
	"github.com/studyloop/studyloop/internal/testutil"
)

// insightNow is the fixed reference instant for insight tests.
var insightNow = time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

func newInsightServiceAt(sessions repository.SessionRepo, todos repository.TodoRepo) *insightService {
	return &insightService{
		sessions: sessions,
		todos:    todos,
		obs:      NoopUseCaseObserver{},
		now:      func() time.Time { return insightNow },
	}
}

// closeSessionAt seeds a closed session whose end time falls at the given instant.
func closeSessionAt(t *testing.T, sessions repository.SessionRepo, ownerID string, endedAt time.Time, minutes int) {
	t.Helper()
	sess := testutil.NewTestSession(ownerID, "focus",
		testutil.WithSubject("math"),
		testutil.WithStartedAt(endedAt.Add(-time.Duration(minutes)*time.Minute)),
		testutil.WithEndedAt(endedAt),
		testutil.WithDuration(minutes),
	)
	require.NoError(t, sessions.Create(context.Background(), sess))
}

func TestInsightService_DailyStudyHours(t *testing.T) {
	users, sessions, todos, _, uow := setupRepos(t)
	svc := newInsightServiceAt(sessions, todos)
	ctx := context.Background()

	owner := registerOwner(t, users, uow, "alice")

	t.Run("empty history yields a complete zero-filled week", func(t *testing.T) {
		buckets := svc.DailyStudyHours(ctx, owner.ID, domain.RangeWeek)
		require.Len(t, buckets, 7)
		assert.Equal(t, "2026-03-04", buckets[0].Day)
		assert.Equal(t, "2026-03-10", buckets[6].Day)
		for _, b := range buckets {
			assert.Zero(t, b.Hours)
			assert.Zero(t, b.SessionCount)
		}
	})

	// Today: two sessions, 90 minutes total. Three days ago: 30 minutes.
	// Ten days ago: outside the weekly window.
	closeSessionAt(t, sessions, owner.ID, insightNow.Add(-2*time.Hour), 60)
	closeSessionAt(t, sessions, owner.ID, insightNow.Add(-time.Hour), 30)
	closeSessionAt(t, sessions, owner.ID, insightNow.AddDate(0, 0, -3), 30)
	closeSessionAt(t, sessions, owner.ID, insightNow.AddDate(0, 0, -10), 240)

	buckets := svc.DailyStudyHours(ctx, owner.ID, domain.RangeWeek)
	require.Len(t, buckets, 7)

	today := buckets[6]
	assert.Equal(t, "2026-03-10", today.Day)
	assert.Equal(t, 1.5, today.Hours)
	assert.Equal(t, 2, today.SessionCount)

	threeDaysAgo := buckets[3]
	assert.Equal(t, "2026-03-07", threeDaysAgo.Day)
	assert.Equal(t, 0.5, threeDaysAgo.Hours)
	assert.Equal(t, 1, threeDaysAgo.SessionCount)

	t.Run("buckets are chronological", func(t *testing.T) {
		for i := 1; i < len(buckets); i++ {
			assert.Less(t, buckets[i-1].Day, buckets[i].Day)
		}
	})

	t.Run("monthly range widens the window", func(t *testing.T) {
		buckets := svc.DailyStudyHours(ctx, owner.ID, domain.RangeMonth)
		require.Len(t, buckets, 30)
		assert.Equal(t, 4.0, buckets[19].Hours, "the ten-day-old session is inside the monthly window")
	})
}

func TestInsightService_DailyStudyHours_SoftFailure(t *testing.T) {
	_, _, todos, _, _ := setupRepos(t)
	svc := newInsightServiceAt(failingSessionRepo{}, todos)

	buckets := svc.DailyStudyHours(context.Background(), "owner", domain.RangeWeek)
	require.Len(t, buckets, 7)
	assert.Equal(t, "2026-03-04", buckets[0].Day)
	assert.Equal(t, "2026-03-10", buckets[6].Day)
	for _, b := range buckets {
		assert.Zero(t, b.Hours)
		assert.Zero(t, b.SessionCount)
	}
}

func TestInsightService_TaskCompletionSplit(t *testing.T) {
	users, sessions, todos, _, uow := setupRepos(t)
	svc := newInsightServiceAt(sessions, todos)
	todoSvc := NewTodoService(todos, uow)
	ctx := context.Background()

	owner := registerOwner(t, users, uow, "alice")

	t.Run("no todos means all pending", func(t *testing.T) {
		split := svc.TaskCompletionSplit(ctx, owner.ID)
		assert.Equal(t, contract.CompletionSplit{CompletedPercent: 0, PendingPercent: 100}, split)
	})

	var ids []string
	for _, title := range []string{"a", "b", "c"} {
		todo, err := todoSvc.Create(ctx, owner.ID, title, "")
		require.NoError(t, err)
		ids = append(ids, todo.ID)
	}
	_, err := todoSvc.Toggle(ctx, owner.ID, ids[0], true)
	require.NoError(t, err)

	split := svc.TaskCompletionSplit(ctx, owner.ID)
	assert.Equal(t, 33, split.CompletedPercent)
	assert.Equal(t, 67, split.PendingPercent)
	assert.Equal(t, 100, split.CompletedPercent+split.PendingPercent)

	t.Run("storage failure degrades to all pending", func(t *testing.T) {
		svc := newInsightServiceAt(sessions, failingTodoRepo{})
		split := svc.TaskCompletionSplit(ctx, owner.ID)
		assert.Equal(t, contract.CompletionSplit{CompletedPercent: 0, PendingPercent: 100}, split)
	})
}

func TestInsightService_StreakCalendar(t *testing.T) {
	users, sessions, todos, _, uow := setupRepos(t)
	svc := newInsightServiceAt(sessions, todos)
	ctx := context.Background()

	owner := registerOwner(t, users, uow, "alice")

	// Studied today, yesterday, and four days ago. The gap two days ago
	// limits the streak to 2.
	closeSessionAt(t, sessions, owner.ID, insightNow.Add(-time.Hour), 30)
	closeSessionAt(t, sessions, owner.ID, insightNow.AddDate(0, 0, -1), 30)
	closeSessionAt(t, sessions, owner.ID, insightNow.AddDate(0, 0, -4), 30)

	report := svc.StreakCalendar(ctx, owner.ID, 7)
	require.Len(t, report.Days, 7)
	assert.Equal(t, 2, report.Streak)
	assert.True(t, report.Days[6].Studied)
	assert.True(t, report.Days[5].Studied)
	assert.False(t, report.Days[4].Studied)
	assert.True(t, report.Days[2].Studied)

	t.Run("non-positive day count falls back to 30", func(t *testing.T) {
		report := svc.StreakCalendar(ctx, owner.ID, 0)
		assert.Len(t, report.Days, 30)
	})

	t.Run("storage failure degrades to an empty calendar", func(t *testing.T) {
		svc := newInsightServiceAt(failingSessionRepo{}, todos)
		report := svc.StreakCalendar(ctx, owner.ID, 7)
		require.Len(t, report.Days, 7)
		assert.Zero(t, report.Streak)
	})
}

func TestStreakLength(t *testing.T) {
	day := func(studied bool) contract.StreakDay { return contract.StreakDay{Studied: studied} }

	assert.Equal(t, 0, StreakLength(nil))
	assert.Equal(t, 0, StreakLength([]contract.StreakDay{day(true), day(false)}))
	assert.Equal(t, 1, StreakLength([]contract.StreakDay{day(false), day(true)}))
	assert.Equal(t, 3, StreakLength([]contract.StreakDay{day(false), day(true), day(true), day(true)}))
}

var errStorage = errors.New("storage offline")

// failingSessionRepo simulates a storage outage for the soft-failure contract.
type failingSessionRepo struct{}

func (failingSessionRepo) Create(context.Context, *domain.StudySession) error { return errStorage }
func (failingSessionRepo) GetByID(context.Context, string, string) (*domain.StudySession, error) {
	return nil, errStorage
}
func (failingSessionRepo) GetOpen(context.Context, string) (*domain.StudySession, error) {
	return nil, errStorage
}
func (failingSessionRepo) ListByOwner(context.Context, string) ([]*domain.StudySession, error) {
	return nil, errStorage
}
func (failingSessionRepo) ListClosedSince(context.Context, string, time.Time) ([]*domain.StudySession, error) {
	return nil, errStorage
}
func (failingSessionRepo) Update(context.Context, *domain.StudySession) error { return errStorage }

type failingTodoRepo struct{}

func (failingTodoRepo) Create(context.Context, *domain.Todo) error { return errStorage }
func (failingTodoRepo) GetByID(context.Context, string, string) (*domain.Todo, error) {
	return nil, errStorage
}
func (failingTodoRepo) ListByOwner(context.Context, string) ([]*domain.Todo, error) {
	return nil, errStorage
}
func (failingTodoRepo) Update(context.Context, *domain.Todo) error          { return errStorage }
func (failingTodoRepo) Delete(context.Context, string, string) error        { return errStorage }
func (failingTodoRepo) CountByStatus(context.Context, string) (int, int, error) {
	return 0, 0, errStorage
}
