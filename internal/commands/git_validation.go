package commands

import (
	"fmt"
	"os/exec"
)

// ValidateGitAvailable ensures a git binary is on PATH before anything is cloned
func ValidateGitAvailable() error {
	if _, err := exec.LookPath("git"); err != nil {
		return fmt.Errorf("git is required to update preview branches: %w", err)
	}
	return nil
}
