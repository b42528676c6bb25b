package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/studyloop/studyloop/internal/cli/formatter"
	"github.com/studyloop/studyloop/internal/domain"
)

func newStatsCmd(app *App) *cobra.Command {
	var rng string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show study analytics",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			owner, err := resolveOwner(ctx, app)
			if err != nil {
				return err
			}
			if !domain.ValidRangeKinds[rng] {
				return fmt.Errorf("unknown range %q (want week, month or year)", rng)
			}

			agg, err := app.Analytics.Get(ctx, owner.ID)
			if err != nil {
				return err
			}

			fmt.Println(formatter.StyleHeader.Render("Totals"))
			fmt.Printf("  Sessions:        %d\n", agg.TotalSessions)
			fmt.Printf("  Study time:      %s\n", formatter.Minutes(agg.TotalStudyMin))
			fmt.Printf("  Completed tasks: %d\n", agg.TotalCompletedTasks)

			if len(agg.Subjects) > 0 {
				fmt.Println(formatter.StyleHeader.Render("Subjects"))
				subjects := make([]string, 0, len(agg.Subjects))
				for s := range agg.Subjects {
					subjects = append(subjects, s)
				}
				sort.Slice(subjects, func(i, j int) bool {
					return agg.Subjects[subjects[i]] > agg.Subjects[subjects[j]]
				})
				for _, s := range subjects {
					share := 0.0
					if agg.TotalStudyMin > 0 {
						share = float64(agg.Subjects[s]) / float64(agg.TotalStudyMin)
					}
					fmt.Printf("  %-16s %s %s\n", s,
						formatter.RenderProgress(share, 20),
						formatter.Minutes(agg.Subjects[s]))
				}
			}

			fmt.Println(formatter.StyleHeader.Render("Daily hours (" + rng + ")"))
			buckets := app.Insights.DailyStudyHours(ctx, owner.ID, domain.RangeKind(rng))
			maxHours := 0.1
			for _, b := range buckets {
				if b.Hours > maxHours {
					maxHours = b.Hours
				}
			}
			for _, b := range buckets {
				bar := int(b.Hours / maxHours * 24)
				fmt.Printf("  %s %s %.1fh\n", formatter.StyleDim.Render(b.Day),
					formatter.StyleBlue.Render(strings.Repeat("▇", bar)), b.Hours)
			}

			split := app.Insights.TaskCompletionSplit(ctx, owner.ID)
			fmt.Println(formatter.StyleHeader.Render("Tasks"))
			fmt.Printf("  Completed: %d%%  Pending: %d%%\n", split.CompletedPercent, split.PendingPercent)

			streak := app.Insights.StreakCalendar(ctx, owner.ID, 30)
			fmt.Println(formatter.StyleHeader.Render("Streak"))
			var dots strings.Builder
			for _, d := range streak.Days {
				if d.Studied {
					dots.WriteString(formatter.StyleGreen.Render("●"))
				} else {
					dots.WriteString(formatter.StyleDim.Render("·"))
				}
			}
			fmt.Printf("  %s\n  %d day streak\n", dots.String(), streak.Streak)

			return nil
		},
	}

	cmd.Flags().StringVar(&rng, "range", "week", "Daily-hours range: week, month or year")

	return cmd
}
