package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/studyloop/studyloop/internal/domain"
	"github.com/studyloop/studyloop/internal/pomodoro"
	"github.com/studyloop/studyloop/internal/repository"

	tea "github.com/charmbracelet/bubbletea"
)

func newTimerCmd(app *App) *cobra.Command {
	var name, subject string
	var end bool

	cmd := &cobra.Command{
		Use:   "timer",
		Short: "Run the Pomodoro timer",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			owner, err := resolveOwner(ctx, app)
			if err != nil {
				return err
			}
			if end {
				return endActiveSession(ctx, app, owner.ID)
			}

			sess, remaining, err := resumeOrStart(ctx, app, owner.ID, &name, &subject)
			if err != nil {
				return err
			}

			if !app.interactive() {
				return fmt.Errorf("the timer needs an interactive terminal; use 'studyloop timer --end' to close the session")
			}

			m := newTimerModel(app, owner.ID, sess, remaining)
			p := tea.NewProgram(m)
			final, err := p.Run()
			if err != nil {
				return err
			}
			if tm, ok := final.(timerModel); ok && tm.err != nil {
				return tm.err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Session name (asked interactively when omitted)")
	cmd.Flags().StringVar(&subject, "subject", "", "Session subject")
	cmd.Flags().BoolVar(&end, "end", false, "End the active session without opening the timer")

	return cmd
}

// resumeOrStart reconciles the active session or starts a fresh one.
// An unreconcilable session is surfaced with a hint to end it.
func resumeOrStart(ctx context.Context, app *App, ownerID string, name, subject *string) (*domain.StudySession, time.Duration, error) {
	sess, remaining, err := app.Sessions.Resume(ctx, ownerID, app.Config.Pomodoro.Work)
	if err == nil {
		return sess, remaining, nil
	}
	if errors.Is(err, pomodoro.ErrInvalidSessionState) {
		return nil, 0, fmt.Errorf("active session cannot be resumed (%v); run 'studyloop timer --end' and start again", err)
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, 0, err
	}

	if *name == "" {
		if !app.interactive() {
			return nil, 0, fmt.Errorf("--name is required outside an interactive terminal")
		}
		if err := sessionForm(name, subject).Run(); err != nil {
			return nil, 0, err
		}
	}
	sess, err = app.Sessions.Start(ctx, ownerID, *name, *subject)
	if err != nil {
		return nil, 0, err
	}
	return sess, app.Config.Pomodoro.Work, nil
}

func endActiveSession(ctx context.Context, app *App, ownerID string) error {
	sess, err := app.Sessions.Active(ctx, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			fmt.Println("No active session.")
			return nil
		}
		return err
	}
	closed, err := app.Sessions.Close(ctx, ownerID, sess.ID, 0)
	if err != nil {
		return err
	}
	fmt.Printf("Ended %s after %d minutes.\n", closed.Name, closed.DurationMin)
	return nil
}
