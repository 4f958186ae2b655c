package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
)

// ConfirmSave asks whether to save the email to folder. Aborting the prompt
// counts as declining.
func ConfirmSave(ctx context.Context, folder string) (bool, error) {
	confirmed := false
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf(ConfirmPromptFormat, folder)).
				Affirmative("Yes").
				Negative("No").
				Value(&confirmed),
		),
	)
	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, err
	}
	return confirmed, nil
}

