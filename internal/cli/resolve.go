package cli

import (
	"context"
	"fmt"
	"strings"
)

// shortID returns the first ID segment, enough to disambiguate in practice.
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}

// resolveTodoID expands a short ID prefix to the full todo ID.
func resolveTodoID(ctx context.Context, app *App, ownerID, ref string) (string, error) {
	todos, err := app.Todos.List(ctx, ownerID)
	if err != nil {
		return "", err
	}
	var match string
	for _, t := range todos {
		if t.ID == ref {
			return t.ID, nil
		}
		if strings.HasPrefix(t.ID, ref) {
			if match != "" {
				return "", fmt.Errorf("ambiguous todo id %q", ref)
			}
			match = t.ID
		}
	}
	if match == "" {
		// Let the service surface its usual not-found error.
		return ref, nil
	}
	return match, nil
}
