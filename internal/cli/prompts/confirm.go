// Package prompts provides interactive CLI prompt components using charmbracelet/huh.
package prompts

import (
	"github.com/charmbracelet/huh"
)

// RunConfirm asks a yes/no question. The default answer is no.
func RunConfirm(title, description string) (bool, error) {
	var confirmed bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Yes").
				Negative("No").
				Value(&confirmed),
		),
	)

	if err := form.Run(); err != nil {
		return false, err
	}
	return confirmed, nil
}
