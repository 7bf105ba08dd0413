package deploy

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/alan/openhands-staging-deploy/internal/github"
)

// triggerCreatePreviewWorkflow asks the deploy repository to open a preview PR. It does not wait.
func (dc *DeployCommand) triggerCreatePreviewWorkflow(ctx context.Context, deployRepo github.Repository) {
	fmt.Fprintf(dc.out, "Triggering preview PR creation workflow for OpenHands PR #%d...\n", dc.PRNumber)

	accepted := dc.api.DispatchWorkflow(ctx, deployRepo, dc.Config.CreateWorkflow, dc.Config.CreateWorkflowRef, map[string]interface{}{
		"prNumber": strconv.Itoa(dc.PRNumber),
	})
	if !accepted {
		slog.Warn("Preview PR creation workflow was not accepted", "workflow", dc.Config.CreateWorkflow)
		fmt.Fprintln(dc.out, "Warning: GitHub did not accept the workflow dispatch; see the log above.")
	} else {
		fmt.Fprintln(dc.out, "Workflow triggered. Check GitHub Actions for progress.")
	}
	fmt.Fprintf(dc.out, "  %s\n", github.WorkflowURL(dc.Config.GitHost, deployRepo, dc.Config.CreateWorkflow))
}

// triggerStagingDeployment dispatches the deploy workflow on the preview branch. It does not wait.
func (dc *DeployCommand) triggerStagingDeployment(ctx context.Context, deployRepo github.Repository, branch string) {
	fmt.Fprintf(dc.out, "Triggering staging deployment from branch %s...\n", branch)

	accepted := dc.api.DispatchWorkflow(ctx, deployRepo, dc.Config.DeployWorkflow, branch, map[string]interface{}{
		"deployEnvironment": dc.Config.DeployEnvironment,
		"openhandsPrNumber": strconv.Itoa(dc.PRNumber),
	})
	if !accepted {
		slog.Warn("Staging deployment workflow was not accepted", "workflow", dc.Config.DeployWorkflow, "ref", branch)
		fmt.Fprintln(dc.out, "Warning: GitHub did not accept the deployment dispatch; see the log above.")
	} else {
		fmt.Fprintln(dc.out, "Staging deployment triggered.")
	}
	fmt.Fprintf(dc.out, "  Monitor at: %s\n", github.WorkflowURL(dc.Config.GitHost, deployRepo, dc.Config.DeployWorkflow))
}
