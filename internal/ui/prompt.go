package ui

import (
	"errors"
	"fmt"

	"github.com/manifoldco/promptui"
)

// ConfirmIssueCreation asks before an issue is filed. Answering no is not an error.
func ConfirmIssueCreation(repo string, count int) (bool, error) {
	noun := "comments"
	if count == 1 {
		noun = "comment"
	}

	prompt := promptui.Prompt{
		Label:     fmt.Sprintf("Create an issue in %s with %d unresolved %s", repo, count, noun),
		IsConfirm: true,
	}

	if _, err := prompt.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		return false, fmt.Errorf("confirmation prompt failed: %w", err)
	}
	return true, nil
}
