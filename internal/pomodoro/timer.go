package pomodoro

import (
	"sync"
	"time"
)

// State is a snapshot of a running timer.
type State struct {
	Phase     Phase
	Cycle     int
	Remaining time.Duration
	Running   bool
}

// TickHandler receives a state snapshot after every tick.
type TickHandler func(State)

// PhaseEndHandler is called when a phase runs down to zero, with the phase
// that just completed and the cycle count after the transition.
type PhaseEndHandler func(completed Phase, cycle int)

// TimerOption configures a Timer.
type TimerOption func(*Timer)

// WithInterval overrides the one-second tick interval (used by tests).
func WithInterval(d time.Duration) TimerOption {
	return func(t *Timer) { t.interval = d }
}

// WithRemaining positions the first work phase at a reconciled remaining
// time, as produced by Reconcile. Values outside [0, work] are ignored.
func WithRemaining(d time.Duration) TimerOption {
	return func(t *Timer) {
		if d >= 0 && d <= t.settings.Work {
			t.remaining = d
		}
	}
}

// WithTickHandler registers a handler invoked after each tick.
func WithTickHandler(h TickHandler) TimerOption {
	return func(t *Timer) { t.onTick = h }
}

// WithPhaseEndHandler registers a handler invoked on phase completion.
func WithPhaseEndHandler(h PhaseEndHandler) TimerOption {
	return func(t *Timer) { t.onPhaseEnd = h }
}

// Timer drives a Pomodoro countdown with a periodic tick. The tick loop is
// the only thing that mutates remaining time; Start, Pause and Reset are
// synchronous transitions that arm or cancel it. Start and Pause are
// idempotent, so at most one tick goroutine is ever active per timer.
type Timer struct {
	mu        sync.Mutex
	settings  Settings
	phase     Phase
	cycle     int
	remaining time.Duration
	running   bool
	stop      chan struct{}

	interval   time.Duration
	onTick     TickHandler
	onPhaseEnd PhaseEndHandler
}

// NewTimer creates a timer positioned at the start of the first work phase.
func NewTimer(settings Settings, opts ...TimerOption) *Timer {
	t := &Timer{
		settings:  settings,
		phase:     PhaseWork,
		remaining: settings.Work,
		interval:  time.Second,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// State returns a snapshot of the current timer state.
func (t *Timer) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshotLocked()
}

func (t *Timer) snapshotLocked() State {
	return State{
		Phase:     t.phase,
		Cycle:     t.cycle,
		Remaining: t.remaining,
		Running:   t.running,
	}
}

// Start arms the tick loop. Calling Start on a running timer is a no-op.
func (t *Timer) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.running {
		return
	}
	t.running = true
	t.stop = make(chan struct{})
	go t.loop(t.stop)
}

// Pause cancels the tick loop, keeping the remaining time. Calling Pause on
// a stopped timer is a no-op.
func (t *Timer) Pause() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pauseLocked()
}

func (t *Timer) pauseLocked() {
	if !t.running {
		return
	}
	t.running = false
	close(t.stop)
	t.stop = nil
}

// Reset stops the timer and rewinds it to the start of the first work phase.
func (t *Timer) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pauseLocked()
	t.phase = PhaseWork
	t.cycle = 0
	t.remaining = t.settings.Work
}

func (t *Timer) loop(stop chan struct{}) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			t.Tick()
		}
	}
}

// Tick advances the countdown by one interval. When the current phase runs
// out it chains into the next phase per NextPhase and notifies the phase-end
// handler. Ticks on a paused timer are ignored.
func (t *Timer) Tick() {
	t.mu.Lock()
	if !t.running {
		t.mu.Unlock()
		return
	}

	t.remaining -= t.interval
	var (
		completed  Phase
		phaseEnded bool
	)
	if t.remaining <= 0 {
		completed = t.phase
		phaseEnded = true
		t.phase, t.cycle = NextPhase(t.phase, t.cycle)
		t.remaining = t.settings.Duration(t.phase)
	}
	snap := t.snapshotLocked()
	cycle := t.cycle
	onTick, onPhaseEnd := t.onTick, t.onPhaseEnd
	t.mu.Unlock()

	// Handlers run outside the lock so they may call back into the timer.
	if phaseEnded && onPhaseEnd != nil {
		onPhaseEnd(completed, cycle)
	}
	if onTick != nil {
		onTick(snap)
	}
}
