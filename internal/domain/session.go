package domain

import (
	"fmt"
	"time"
)

// StudySession is a bounded study period tracked by the Pomodoro timer.
// DurationMin accumulates completed work minutes while the session is open;
// once EndedAt is set the session is closed and the duration is final.
type StudySession struct {
	ID          string
	OwnerID     string
	Name        string
	Subject     string
	StartedAt   time.Time
	EndedAt     *time.Time
	DurationMin int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Open reports whether the session has not been ended yet.
func (s *StudySession) Open() bool {
	return s.EndedAt == nil
}

// ApplyWorkMinutes adds completed work minutes to an open session.
// Duration is monotonically non-decreasing, so negative deltas are rejected.
func (s *StudySession) ApplyWorkMinutes(minutes int, now time.Time) error {
	if !s.Open() {
		return fmt.Errorf("session %s is already closed", s.ID)
	}
	if minutes < 0 {
		return fmt.Errorf("work minutes must be non-negative, got %d", minutes)
	}
	s.DurationMin += minutes
	s.UpdatedAt = now
	return nil
}

// Close finalizes the session, adding any last work minutes and stamping EndedAt.
func (s *StudySession) Close(minutes int, now time.Time) error {
	if err := s.ApplyWorkMinutes(minutes, now); err != nil {
		return err
	}
	ended := now
	s.EndedAt = &ended
	return nil
}
