package cli

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studyloop/studyloop/internal/pomodoro"
	"github.com/studyloop/studyloop/internal/service"
)

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestTimerModel(t *testing.T) (timerModel, *App) {
	t.Helper()
	app, owner := testApp(t)
	sess, err := app.Sessions.Start(context.Background(), owner.ID, "deep focus", "math")
	require.NoError(t, err)
	m := newTimerModel(app, owner.ID, sess, app.Config.Pomodoro.Work)
	t.Cleanup(m.timer.Pause)
	return m, app
}

func TestTimerModel_InitialView(t *testing.T) {
	m, _ := newTestTimerModel(t)

	view := m.View()
	assert.Contains(t, view, "deep focus")
	assert.Contains(t, view, "math")
	assert.Contains(t, view, "WORK")
	assert.Contains(t, view, "25:00")
	assert.Contains(t, view, "paused")
}

func TestTimerModel_SpaceTogglesRunning(t *testing.T) {
	m, _ := newTestTimerModel(t)

	next, _ := m.Update(keyMsg(" "))
	m = next.(timerModel)
	assert.True(t, m.state.Running)
	assert.NotContains(t, m.View(), "paused")

	next, _ = m.Update(keyMsg(" "))
	m = next.(timerModel)
	assert.False(t, m.state.Running)
}

func TestTimerModel_TickUpdatesCountdown(t *testing.T) {
	m, _ := newTestTimerModel(t)

	st := m.state
	st.Remaining = 24*time.Minute + 59*time.Second
	next, cmd := m.Update(tickMsg(st))
	m = next.(timerModel)

	assert.NotNil(t, cmd, "tick must re-arm the event wait")
	assert.Contains(t, m.View(), "24:59")
}

func TestTimerModel_WorkPhaseEndPersists(t *testing.T) {
	m, app := newTestTimerModel(t)

	next, cmd := m.Update(phaseEndMsg{phase: pomodoro.PhaseWork, cycle: 1})
	m = next.(timerModel)
	require.NotNil(t, cmd)

	// Drain the batched commands; one of them performs the persist.
	var persisted persistedMsg
	found := drainCmd(t, cmd, func(msg tea.Msg) bool {
		p, ok := msg.(persistedMsg)
		if ok {
			persisted = p
		}
		return ok
	})
	require.True(t, found, "expected a persistedMsg from the phase-end command")
	assert.Equal(t, 25, persisted.minutes)

	next, _ = m.Update(persisted)
	m = next.(timerModel)
	assert.Contains(t, m.View(), "25m")

	sess, err := app.Sessions.Active(context.Background(), m.ownerID)
	require.NoError(t, err)
	assert.Equal(t, 25, sess.DurationMin)
}

func TestTimerModel_BreakPhaseEndDoesNotPersist(t *testing.T) {
	m, app := newTestTimerModel(t)

	next, cmd := m.Update(phaseEndMsg{phase: pomodoro.PhaseShortBreak, cycle: 1})
	m = next.(timerModel)
	require.NotNil(t, cmd)

	found := drainCmd(t, cmd, func(msg tea.Msg) bool {
		_, ok := msg.(persistedMsg)
		return ok
	})
	assert.False(t, found)

	sess, err := app.Sessions.Active(context.Background(), m.ownerID)
	require.NoError(t, err)
	assert.Zero(t, sess.DurationMin)
}

func TestTimerModel_QuitClosesSession(t *testing.T) {
	m, app := newTestTimerModel(t)

	next, cmd := m.Update(keyMsg("q"))
	m = next.(timerModel)
	require.NotNil(t, cmd)
	assert.True(t, m.quitting)
	require.NoError(t, m.err)
	assert.Contains(t, m.View(), "Session ended")

	// The open session is gone and the aggregate has absorbed it.
	_, err := app.Sessions.Active(context.Background(), m.ownerID)
	assert.Error(t, err)

	agg, err := app.Analytics.Get(context.Background(), m.ownerID)
	require.NoError(t, err)
	assert.Equal(t, 1, agg.TotalSessions)
}

func TestTimerModel_PersistErrQuits(t *testing.T) {
	m, _ := newTestTimerModel(t)

	next, _ := m.Update(persistErrMsg{err: assert.AnError})
	m = next.(timerModel)
	assert.True(t, m.quitting)
	assert.Contains(t, m.View(), "error")
}

// TestTimerModel_LatePersistAfterQuit covers the in-flight persist losing the
// race against quit: once the session is closed, a phase persist fails on the
// closed session, and that failure must not turn a clean close into an error.
func TestTimerModel_LatePersistAfterQuit(t *testing.T) {
	m, app := newTestTimerModel(t)

	// The phase-end persist is issued but not yet delivered when q closes
	// the session.
	_, cmd := m.Update(phaseEndMsg{phase: pomodoro.PhaseWork, cycle: 1})
	require.NotNil(t, cmd)

	next, _ := m.Update(keyMsg("q"))
	m = next.(timerModel)
	require.True(t, m.quitting)
	require.NoError(t, m.err)

	// Running the stale persist now fails against the closed session.
	var late persistErrMsg
	found := drainCmd(t, cmd, func(msg tea.Msg) bool {
		p, ok := msg.(persistErrMsg)
		if ok {
			late = p
		}
		return ok
	})
	require.True(t, found, "expected the late persist to fail")
	require.ErrorIs(t, late.err, service.ErrValidation)

	next, _ = m.Update(late)
	m = next.(timerModel)
	assert.NoError(t, m.err)
	assert.Contains(t, m.View(), "Session ended")

	// The close still folded into the aggregate exactly once.
	agg, err := app.Analytics.Get(context.Background(), m.ownerID)
	require.NoError(t, err)
	assert.Equal(t, 1, agg.TotalSessions)
}

func TestTimerModel_ResetRewindsToWork(t *testing.T) {
	m, _ := newTestTimerModel(t)

	st := m.state
	st.Phase = pomodoro.PhaseShortBreak
	st.Remaining = time.Minute
	next, _ := m.Update(tickMsg(st))
	m = next.(timerModel)

	next, _ = m.Update(keyMsg("r"))
	m = next.(timerModel)
	assert.Equal(t, pomodoro.PhaseWork, m.state.Phase)
	assert.Equal(t, m.app.Config.Pomodoro.Work, m.state.Remaining)
}

// drainCmd runs a command tree to completion, reporting whether any produced
// message satisfies the predicate. Batches are unwrapped recursively; the
// event-wait command is skipped because nothing feeds the channel in tests.
func drainCmd(t *testing.T, cmd tea.Cmd, match func(tea.Msg) bool) bool {
	t.Helper()
	if cmd == nil {
		return false
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	var msg tea.Msg
	select {
	case msg = <-done:
	case <-time.After(time.Second):
		// Blocked on the event channel.
		return false
	}
	if msg == nil {
		return false
	}
	if batch, ok := msg.(tea.BatchMsg); ok {
		found := false
		for _, c := range batch {
			if drainCmd(t, c, match) {
				found = true
			}
		}
		return found
	}
	return match(msg)
}
