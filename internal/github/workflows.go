package github

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/go-github/v57/github"
)

// DispatchWorkflow fires a workflow_dispatch event for the named workflow file on ref.
// It does not wait for the run. The result reports whether GitHub accepted the event;
// rejections are logged.
func (c *Client) DispatchWorkflow(ctx context.Context, repo Repository, workflow, ref string, inputs map[string]interface{}) bool {
	event := github.CreateWorkflowDispatchEventRequest{
		Ref:    ref,
		Inputs: inputs,
	}
	endpoint := fmt.Sprintf("repos/%s/%s/actions/workflows/%s/dispatches", repo.Owner, repo.Name, workflow)

	slog.Debug("GitHub API: Dispatching workflow", "repo", repo.String(), "workflow", workflow, "ref", ref)
	if _, err := c.do(ctx, http.MethodPost, endpoint, &event, nil); err != nil {
		logFailure(http.MethodPost, endpoint, err)
		return false
	}
	return true
}

// WorkflowURL returns the Actions page for a workflow file
func WorkflowURL(host string, repo Repository, workflow string) string {
	return fmt.Sprintf("https://%s/%s/actions/workflows/%s", host, repo, workflow)
}
