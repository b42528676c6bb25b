package pomodoro

import "time"

type Phase string

const (
	PhaseWork       Phase = "work"
	PhaseShortBreak Phase = "short-break"
	PhaseLongBreak  Phase = "long-break"
)

// LongBreakEvery is the number of completed work phases between long breaks.
const LongBreakEvery = 4

// Settings holds the configured duration of each phase.
type Settings struct {
	Work       time.Duration
	ShortBreak time.Duration
	LongBreak  time.Duration
}

// DefaultSettings returns the classic 25/5/15 Pomodoro configuration.
func DefaultSettings() Settings {
	return Settings{
		Work:       25 * time.Minute,
		ShortBreak: 5 * time.Minute,
		LongBreak:  15 * time.Minute,
	}
}

// Duration returns the configured duration for the given phase.
func (s Settings) Duration(p Phase) time.Duration {
	switch p {
	case PhaseShortBreak:
		return s.ShortBreak
	case PhaseLongBreak:
		return s.LongBreak
	default:
		return s.Work
	}
}

// NextPhase advances the phase state machine after the current phase
// completes. Completing a work phase increments the cycle counter and leads
// into a long break every LongBreakEvery-th cycle, otherwise a short break.
// Completing any break leads back to work with the counter unchanged.
func NextPhase(current Phase, cycleCount int) (Phase, int) {
	if current != PhaseWork {
		return PhaseWork, cycleCount
	}
	cycleCount++
	if cycleCount%LongBreakEvery == 0 {
		return PhaseLongBreak, cycleCount
	}
	return PhaseShortBreak, cycleCount
}

// Progress returns the elapsed fraction of a phase, clamped to [0, 1].
// It drives the countdown display and must never go out of bounds even
// when remaining drifts past the configured total.
func Progress(total, remaining time.Duration) float64 {
	if total <= 0 {
		return 0
	}
	p := float64(total-remaining) / float64(total)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
