package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/studyloop/studyloop/internal/cli/formatter"
)

func newSessionsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "sessions",
		Short: "List study sessions, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			owner, err := resolveOwner(ctx, app)
			if err != nil {
				return err
			}
			sessions, err := app.Sessions.List(ctx, owner.ID)
			if err != nil {
				return err
			}
			if len(sessions) == 0 {
				fmt.Println(formatter.StyleDim.Render("No sessions yet."))
				return nil
			}
			for _, s := range sessions {
				state := formatter.StyleGreen.Render("open")
				if !s.Open() {
					state = formatter.StyleDim.Render("closed")
				}
				subject := s.Subject
				if subject == "" {
					subject = "general"
				}
				fmt.Printf("%s  %-20s %-12s %8s  %s\n",
					formatter.StyleDim.Render(s.StartedAt.Local().Format(time.DateOnly)),
					s.Name,
					formatter.StyleBlue.Render(subject),
					formatter.Minutes(s.DurationMin),
					state,
				)
			}
			return nil
		},
	}
}
