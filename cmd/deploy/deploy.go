package deploy

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/alan/openhands-staging-deploy/cmd"
	"github.com/alan/openhands-staging-deploy/internal/commands"
	"github.com/alan/openhands-staging-deploy/internal/github"
	"github.com/alan/openhands-staging-deploy/internal/preview"
	"github.com/spf13/cobra"
)

// ErrNoPreviewPR is returned for --update-only when the deploy repository has no preview PR
var ErrNoPreviewPR = errors.New("no preview PR exists")

// pullRequestAPI is the slice of the GitHub client the deploy flow needs
type pullRequestAPI interface {
	GetSourcePR(ctx context.Context, repo github.Repository, number int) (*github.SourcePR, error)
	FindPreviewPR(ctx context.Context, repo github.Repository, marker string) (*github.PreviewPR, bool)
	DispatchWorkflow(ctx context.Context, repo github.Repository, workflow, ref string, inputs map[string]interface{}) bool
}

// previewUpdater pins a new commit on an existing preview branch
type previewUpdater interface {
	Update(ctx context.Context, branch, sha string, prNumber int) (*preview.Result, error)
}

// DeployCommand encapsulates the deploy command with common functionality
type DeployCommand struct {
	commands.BaseCommand
	PRNumber   int
	CreateOnly bool
	UpdateOnly bool
	Deploy     bool

	out        io.Writer
	api        pullRequestAPI
	newUpdater func() (previewUpdater, error)
}

// NewDeployCmd creates and returns the deploy command
func NewDeployCmd(globalConfigFile *string, loadConfig func(string) (*cmd.Config, error)) *cobra.Command {
	deployCmd := &DeployCommand{}

	cobraCmd := &cobra.Command{
		Use:   "openhands-staging-deploy <pr-number>",
		Short: "Promote an OpenHands PR to a preview PR and optionally deploy it to staging",
		Long: `Promote an OpenHands pull request into the deploy repository.

If a preview PR for the source PR already exists in the deploy repository, its branch is
updated to pin the source PR's current head commit and runtime image tag. Otherwise the
preview PR creation workflow is dispatched and the command should be re-run once it finishes.

With --deploy, the staging deployment workflow is dispatched on the preview branch after
a successful update.

Requires the GITHUB_TOKEN environment variable.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			prNumber, err := commands.ParsePRNumberFromArgs(args)
			if err != nil {
				return err
			}
			deployCmd.PRNumber = prNumber

			// Initialize base command
			deployCmd.ConfigFile = globalConfigFile
			deployCmd.LoadConfig = loadConfig
			deployCmd.Context = cobraCmd.Context()
			if err := deployCmd.Init(); err != nil {
				return err
			}

			deployCmd.out = cobraCmd.OutOrStdout()
			deployCmd.api = deployCmd.GitHubClient
			deployCmd.newUpdater = func() (previewUpdater, error) {
				if err := commands.ValidateGitAvailable(); err != nil {
					return nil, err
				}
				return preview.NewUpdater(deployCmd.Config, deployCmd.Token), nil
			}

			return deployCmd.Run(deployCmd.Context)
		},
	}

	cobraCmd.Flags().BoolVar(&deployCmd.CreateOnly, "create-only", false, "Only create the preview PR; do nothing if it already exists")
	cobraCmd.Flags().BoolVar(&deployCmd.UpdateOnly, "update-only", false, "Only update an existing preview PR; fail if there is none")
	cobraCmd.Flags().BoolVar(&deployCmd.Deploy, "deploy", false, "Trigger the staging deployment after updating the preview PR")

	return cobraCmd
}

// Run executes the deploy flow
func (dc *DeployCommand) Run(ctx context.Context) error {
	sourceRepo, err := github.ParseRepository(dc.Config.SourceRepo)
	if err != nil {
		return fmt.Errorf("invalid source_repo: %w", err)
	}
	deployRepo, err := github.ParseRepository(dc.Config.DeployRepo)
	if err != nil {
		return fmt.Errorf("invalid deploy_repo: %w", err)
	}

	sourcePR, err := dc.api.GetSourcePR(ctx, sourceRepo, dc.PRNumber)
	if err != nil {
		return fmt.Errorf("could not find OpenHands PR #%d: %w", dc.PRNumber, err)
	}
	commands.DisplaySourcePR(dc.out, sourcePR)

	commands.PrintSection(dc.out, "Checking for existing preview PR")
	previewPR, found := dc.api.FindPreviewPR(ctx, deployRepo, dc.Config.PreviewMarker(dc.PRNumber))

	if found {
		commands.DisplayPreviewPR(dc.out, previewPR)

		if dc.CreateOnly {
			fmt.Fprintln(dc.out, "\n--create-only specified but preview PR already exists.")
			return nil
		}

		commands.PrintSection(dc.out, "Updating preview PR")
		if err := dc.updatePreview(ctx, previewPR.Branch, sourcePR.HeadSHA); err != nil {
			return err
		}

		if dc.Deploy {
			commands.PrintSection(dc.out, "Deploying to staging")
			dc.triggerStagingDeployment(ctx, deployRepo, previewPR.Branch)
		}
	} else {
		fmt.Fprintln(dc.out, "No existing preview PR found.")

		if dc.UpdateOnly {
			fmt.Fprintln(dc.out, "\n--update-only specified but no preview PR exists.")
			return fmt.Errorf("%w for OpenHands PR #%d in %s", ErrNoPreviewPR, dc.PRNumber, deployRepo)
		}

		commands.PrintSection(dc.out, "Creating preview PR")
		dc.triggerCreatePreviewWorkflow(ctx, deployRepo)

		if dc.Deploy {
			fmt.Fprintln(dc.out, "\nNote: Cannot deploy to staging until preview PR is created.")
			fmt.Fprintln(dc.out, "Wait for the workflow to complete, then run again with --deploy")
		}
	}

	commands.PrintSection(dc.out, "Done")
	fmt.Fprintf(dc.out, "Staging URL (after deployment): %s\n", dc.Config.StagingURL)
	return nil
}
