package service

import (
	"context"
	"math"
	"time"

	"github.com/studyloop/studyloop/internal/contract"
	"github.com/studyloop/studyloop/internal/domain"
	"github.com/studyloop/studyloop/internal/repository"
)

const dayLayout = "2006-01-02"

// insightService derives time-bucketed views from raw session and todo
// history. It never mutates stored aggregates, and it never propagates
// storage failures: a failed fetch degrades to a zero-filled structure so
// the display layer always receives a complete result.
type insightService struct {
	sessions repository.SessionRepo
	todos    repository.TodoRepo
	obs      UseCaseObserver
	now      func() time.Time
}

func NewInsightService(sessions repository.SessionRepo, todos repository.TodoRepo, observers ...UseCaseObserver) InsightService {
	return &insightService{
		sessions: sessions,
		todos:    todos,
		obs:      useCaseObserverOrNoop(observers),
		now:      time.Now,
	}
}

// DailyStudyHours buckets closed sessions by local calendar day over the
// trailing range. The result always has exactly rng.Days() entries in
// chronological order ending today, padding empty days with zeroes.
func (s *insightService) DailyStudyHours(ctx context.Context, ownerID string, rng domain.RangeKind) []contract.DailyBucket {
	n := rng.Days()
	today := startOfDay(s.now())
	windowStart := today.AddDate(0, 0, -(n - 1))

	buckets := make([]contract.DailyBucket, n)
	index := make(map[string]int, n)
	for i := range buckets {
		day := windowStart.AddDate(0, 0, i).Format(dayLayout)
		buckets[i] = contract.DailyBucket{Day: day}
		index[day] = i
	}

	sessions, err := s.sessions.ListClosedSince(ctx, ownerID, windowStart)
	if err != nil {
		observe(ctx, s.obs, "insight.daily_hours", s.now(), &err, map[string]any{"owner": ownerID})
		return buckets
	}

	minutes := make([]int, n)
	for _, sess := range sessions {
		if sess.EndedAt == nil {
			continue
		}
		day := sess.EndedAt.In(today.Location()).Format(dayLayout)
		i, ok := index[day]
		if !ok {
			continue
		}
		minutes[i] += sess.DurationMin
		buckets[i].SessionCount++
	}
	for i := range buckets {
		buckets[i].Hours = roundTenth(float64(minutes[i]) / 60)
	}
	return buckets
}

// TaskCompletionSplit returns completed/pending percentages over all of the
// owner's todos. With no todos (or on a failed fetch) the split is {0, 100}.
func (s *insightService) TaskCompletionSplit(ctx context.Context, ownerID string) contract.CompletionSplit {
	completed, total, err := s.todos.CountByStatus(ctx, ownerID)
	if err != nil {
		observe(ctx, s.obs, "insight.completion_split", s.now(), &err, map[string]any{"owner": ownerID})
		return contract.CompletionSplit{CompletedPercent: 0, PendingPercent: 100}
	}
	if total == 0 {
		return contract.CompletionSplit{CompletedPercent: 0, PendingPercent: 100}
	}
	completedPct := int(math.Round(float64(completed) / float64(total) * 100))
	return contract.CompletionSplit{
		CompletedPercent: completedPct,
		PendingPercent:   100 - completedPct,
	}
}

// StreakCalendar marks each of the trailing days on which any session was
// completed, and folds the streak count backward from today, stopping at the
// first day without a completed session.
func (s *insightService) StreakCalendar(ctx context.Context, ownerID string, days int) contract.StreakReport {
	if days <= 0 {
		days = 30
	}
	today := startOfDay(s.now())
	windowStart := today.AddDate(0, 0, -(days - 1))

	report := contract.StreakReport{Days: make([]contract.StreakDay, days)}
	for i := range report.Days {
		report.Days[i] = contract.StreakDay{
			Date: windowStart.AddDate(0, 0, i).Format(dayLayout),
		}
	}

	sessions, err := s.sessions.ListClosedSince(ctx, ownerID, windowStart)
	if err != nil {
		observe(ctx, s.obs, "insight.streak", s.now(), &err, map[string]any{"owner": ownerID})
		return report
	}

	studied := make(map[string]bool, len(sessions))
	for _, sess := range sessions {
		if sess.EndedAt == nil {
			continue
		}
		studied[sess.EndedAt.In(today.Location()).Format(dayLayout)] = true
	}
	for i := range report.Days {
		report.Days[i].Studied = studied[report.Days[i].Date]
	}
	report.Streak = StreakLength(report.Days)
	return report
}

// StreakLength counts consecutive studied days from the end of the calendar.
func StreakLength(days []contract.StreakDay) int {
	streak := 0
	for i := len(days) - 1; i >= 0; i-- {
		if !days[i].Studied {
			break
		}
		streak++
	}
	return streak
}

// startOfDay truncates t to its local calendar-day boundary.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
