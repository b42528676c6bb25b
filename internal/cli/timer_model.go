package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/studyloop/studyloop/internal/cli/formatter"
	"github.com/studyloop/studyloop/internal/domain"
	"github.com/studyloop/studyloop/internal/pomodoro"
	"github.com/studyloop/studyloop/internal/service"
)

type timerKeyMap struct {
	StartPause key.Binding
	Reset      key.Binding
	Quit       key.Binding
}

func defaultTimerKeyMap() timerKeyMap {
	return timerKeyMap{
		StartPause: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "start/pause"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "end session"),
		),
	}
}

// Messages pushed from the timer's handlers into the bubbletea loop.
type (
	tickMsg     pomodoro.State
	phaseEndMsg struct {
		phase pomodoro.Phase
		cycle int
	}
	persistErrMsg struct{ err error }
	persistedMsg  struct{ minutes int }
)

// timerModel renders the Pomodoro countdown for one study session. The
// pomodoro.Timer drives the tick; its handlers feed this model through an
// event channel so the TUI and any future headless driver share one engine.
type timerModel struct {
	app     *App
	ownerID string
	session *domain.StudySession

	timer  *pomodoro.Timer
	events chan tea.Msg
	state  pomodoro.State
	keys   timerKeyMap

	persistedMin int
	err          error
	quitting     bool
}

func newTimerModel(app *App, ownerID string, sess *domain.StudySession, remaining time.Duration) timerModel {
	events := make(chan tea.Msg, 64)
	timer := pomodoro.NewTimer(app.Config.Pomodoro,
		pomodoro.WithRemaining(remaining),
		pomodoro.WithTickHandler(func(st pomodoro.State) {
			select {
			case events <- tickMsg(st):
			default:
			}
		}),
		pomodoro.WithPhaseEndHandler(func(p pomodoro.Phase, cycle int) {
			events <- phaseEndMsg{phase: p, cycle: cycle}
		}),
	)

	return timerModel{
		app:          app,
		ownerID:      ownerID,
		session:      sess,
		timer:        timer,
		events:       events,
		state:        timer.State(),
		keys:         defaultTimerKeyMap(),
		persistedMin: sess.DurationMin,
	}
}

func (m timerModel) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		return <-m.events
	}
}

func (m timerModel) Init() tea.Cmd {
	m.timer.Start()
	return m.waitForEvent()
}

func (m timerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tickMsg:
		m.state = pomodoro.State(msg)
		return m, m.waitForEvent()

	case phaseEndMsg:
		var cmd tea.Cmd
		if msg.phase == pomodoro.PhaseWork {
			cmd = m.persistWorkPhase()
		}
		return m, tea.Batch(cmd, m.waitForEvent())

	case persistedMsg:
		m.persistedMin = msg.minutes
		return m, nil

	case persistErrMsg:
		// A phase persist still in flight when the user quits can lose the
		// race against Close and fail on the already-closed session.
		if m.quitting && errors.Is(msg.err, service.ErrValidation) {
			return m, nil
		}
		m.err = msg.err
		m.quitting = true
		m.timer.Pause()
		return m, tea.Quit

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.StartPause):
			if m.state.Running {
				m.timer.Pause()
			} else {
				m.timer.Start()
			}
			m.state = m.timer.State()
			return m, nil

		case key.Matches(msg, m.keys.Reset):
			m.timer.Reset()
			m.state = m.timer.State()
			return m, nil

		case key.Matches(msg, m.keys.Quit):
			m.timer.Pause()
			m.quitting = true
			m.err = m.closeSession()
			return m, tea.Quit
		}
	}

	return m, nil
}

// persistWorkPhase records a completed work phase against the session.
func (m timerModel) persistWorkPhase() tea.Cmd {
	app, ownerID, id := m.app, m.ownerID, m.session.ID
	minutes := int(app.Config.Pomodoro.Work / time.Minute)
	return func() tea.Msg {
		sess, err := app.Sessions.CompletePhase(context.Background(), ownerID, id, minutes)
		if err != nil {
			return persistErrMsg{err: err}
		}
		return persistedMsg{minutes: sess.DurationMin}
	}
}

// closeSession finalizes the session, counting the elapsed part of an
// unfinished work phase toward the final duration.
func (m timerModel) closeSession() error {
	partial := 0
	if m.state.Phase == pomodoro.PhaseWork {
		elapsed := m.app.Config.Pomodoro.Work - m.state.Remaining
		partial = int(elapsed / time.Minute)
	}
	_, err := m.app.Sessions.Close(context.Background(), m.ownerID, m.session.ID, partial)
	return err
}

func (m timerModel) View() string {
	if m.quitting {
		if m.err != nil {
			return formatter.StyleRed.Render("error: "+m.err.Error()) + "\n"
		}
		return fmt.Sprintf("Session ended. %s of focused work logged.\n",
			formatter.Minutes(m.persistedMin))
	}

	total := m.app.Config.Pomodoro.Duration(m.state.Phase)
	progress := pomodoro.Progress(total, m.state.Remaining)

	header := formatter.StyleBold.Render(m.session.Name)
	if m.session.Subject != "" {
		header += formatter.StyleDim.Render(" · " + m.session.Subject)
	}

	phase := formatter.PhaseColor(m.state.Phase).Bold(true).Render(formatter.PhaseLabel(m.state.Phase))
	countdown := formatter.StyleFg.Render(formatter.Countdown(m.state.Remaining))
	if !m.state.Running {
		countdown += formatter.StyleYellow.Render("  paused")
	}

	var cycles strings.Builder
	for i := 0; i < pomodoro.LongBreakEvery; i++ {
		if i < m.state.Cycle%pomodoro.LongBreakEvery {
			cycles.WriteString(formatter.StyleGreen.Render("●"))
		} else {
			cycles.WriteString(formatter.StyleDim.Render("○"))
		}
		cycles.WriteString(" ")
	}

	help := formatter.StyleDim.Render("space start/pause · r reset · q end session")

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		phase+"  "+cycles.String(),
		countdown,
		formatter.RenderProgress(progress, 30),
		"",
		formatter.StyleDim.Render(fmt.Sprintf("logged %s", formatter.Minutes(m.persistedMin))),
		help,
	) + "\n"
}
