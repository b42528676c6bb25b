package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
)

// sessionForm collects the session name and subject interactively.
func sessionForm(name, subject *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Session name").
				Placeholder("Evening review").
				Value(name).
				Validate(validateNonEmpty),
			huh.NewInput().
				Title("Subject (blank for general)").
				Placeholder("Math").
				Value(subject),
		),
	).WithShowHelp(false)
}

func validateNonEmpty(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("must not be empty")
	}
	return nil
}
