package deploy

import (
	"context"
	"fmt"

	"github.com/alan/openhands-staging-deploy/internal/commands"
)

// updatePreview pins sha on the preview branch through a scratch clone
func (dc *DeployCommand) updatePreview(ctx context.Context, branch, sha string) error {
	fmt.Fprintf(dc.out, "Updating preview branch %s with commit %s...\n", branch, commands.ShortSHA(sha))

	updater, err := dc.newUpdater()
	if err != nil {
		return err
	}

	result, err := updater.Update(ctx, branch, sha, dc.PRNumber)
	if err != nil {
		return fmt.Errorf("failed to update preview branch %s: %w", branch, err)
	}

	if !result.Changed {
		fmt.Fprintln(dc.out, "No changes to commit - already at latest SHA.")
		return nil
	}
	fmt.Fprintln(dc.out, "Preview branch updated successfully.")
	return nil
}
