package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/studyloop/studyloop/internal/domain"
)

func newUserCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage users and API tokens",
	}

	cmd.AddCommand(newUserCreateCmd(app))

	return cmd
}

func newUserCreateCmd(app *App) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user and print their API token",
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := app.Users.Register(cmd.Context(), name)
			if err != nil {
				return err
			}
			fmt.Printf("Created user %s (%s)\nToken: %s\n", u.Name, u.ID, u.Token)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "User name")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

// resolveOwner returns the local CLI owner, creating them on first use.
func resolveOwner(ctx context.Context, app *App) (*domain.User, error) {
	return app.Users.GetOrCreate(ctx, app.Config.Owner)
}
