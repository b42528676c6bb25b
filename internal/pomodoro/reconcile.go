package pomodoro

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidSessionState indicates a persisted session whose timer state
// cannot be reconstructed (clock skew or a corrupted start time). Callers
// should prompt the user to end or restart the session.
var ErrInvalidSessionState = errors.New("invalid session state")

// Reconcile recovers the remaining time of a work phase after a restart,
// given only the session's persisted start time. Elapsed time is floored to
// whole minutes; when the configured work duration has fully elapsed the
// remaining time is 0 and the caller should treat the phase as expired.
//
// Reconcile assumes the session has been in its first work phase since
// startedAt. It does not reconstruct work/break cycles that elapsed while
// the process was down.
func Reconcile(startedAt, now time.Time, work time.Duration) (time.Duration, error) {
	if work <= 0 {
		return 0, fmt.Errorf("work duration %v: %w", work, ErrInvalidSessionState)
	}
	if startedAt.IsZero() {
		return 0, fmt.Errorf("missing start time: %w", ErrInvalidSessionState)
	}
	if startedAt.After(now) {
		return 0, fmt.Errorf("start time %s is in the future: %w",
			startedAt.Format(time.RFC3339), ErrInvalidSessionState)
	}

	elapsedMin := int(now.Sub(startedAt) / time.Minute)
	remaining := work - time.Duration(elapsedMin)*time.Minute
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}
