package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/studyloop/studyloop/internal/cli/formatter"
)

func newTodoCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "todo",
		Short: "Manage the todo list",
	}

	cmd.AddCommand(
		newTodoAddCmd(app),
		newTodoListCmd(app),
		newTodoDoneCmd(app),
		newTodoRemoveCmd(app),
	)

	return cmd
}

func newTodoAddCmd(app *App) *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a todo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			owner, err := resolveOwner(ctx, app)
			if err != nil {
				return err
			}
			t, err := app.Todos.Create(ctx, owner.ID, args[0], description)
			if err != nil {
				return err
			}
			fmt.Printf("Added %s (%s)\n", t.Title, shortID(t.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "Optional description")

	return cmd
}

func newTodoListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List todos, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			owner, err := resolveOwner(ctx, app)
			if err != nil {
				return err
			}
			todos, err := app.Todos.List(ctx, owner.ID)
			if err != nil {
				return err
			}
			if len(todos) == 0 {
				fmt.Println(formatter.StyleDim.Render("No todos yet."))
				return nil
			}
			for _, t := range todos {
				mark := formatter.StyleDim.Render("[ ]")
				title := t.Title
				if t.Completed() {
					mark = formatter.StyleGreen.Render("[x]")
					title = formatter.StyleDim.Render(title)
				}
				fmt.Printf("%s %s %s\n", mark, formatter.StyleDim.Render(shortID(t.ID)), title)
			}
			return nil
		},
	}
}

func newTodoDoneCmd(app *App) *cobra.Command {
	var undo bool

	cmd := &cobra.Command{
		Use:   "done <id>",
		Short: "Mark a todo completed (or pending again with --undo)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			owner, err := resolveOwner(ctx, app)
			if err != nil {
				return err
			}
			id, err := resolveTodoID(ctx, app, owner.ID, args[0])
			if err != nil {
				return err
			}
			t, err := app.Todos.Toggle(ctx, owner.ID, id, !undo)
			if err != nil {
				return err
			}
			if t.Completed() {
				fmt.Printf("Completed %s\n", t.Title)
			} else {
				fmt.Printf("Reopened %s\n", t.Title)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&undo, "undo", false, "Mark the todo pending again")

	return cmd
}

func newTodoRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a todo permanently",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			owner, err := resolveOwner(ctx, app)
			if err != nil {
				return err
			}
			id, err := resolveTodoID(ctx, app, owner.ID, args[0])
			if err != nil {
				return err
			}
			if err := app.Todos.Delete(ctx, owner.ID, id); err != nil {
				return err
			}
			fmt.Println("Deleted.")
			return nil
		},
	}
}
