// Package preview updates an existing preview branch in the deploy repository so that it pins
// a new source commit.
package preview

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alan/openhands-staging-deploy/cmd"
	"github.com/alan/openhands-staging-deploy/internal/deployfile"
	"github.com/alan/openhands-staging-deploy/internal/git"
)

// Result describes what an update did
type Result struct {
	Branch   string
	SHA      string
	Tag      string
	Changed  bool
	Strategy deployfile.Strategy
}

// Updater rewrites the pinned commit on a preview branch through a throwaway clone
type Updater struct {
	config *cmd.Config
	token  string
	runner git.Runner

	// tempDir is the parent for scratch clones; empty means the system default
	tempDir string
}

// NewUpdater returns an Updater that shells out to git with token-authenticated clone URLs
func NewUpdater(config *cmd.Config, token string) *Updater {
	return &Updater{
		config: config,
		token:  token,
		runner: git.NewExecRunner(token),
	}
}

// Update clones the deploy repository, checks out branch, pins sha and its runtime image tag,
// then commits and pushes. An unchanged file is not an error: Result.Changed is false and nothing
// is pushed. The scratch clone is removed on every return path.
func (u *Updater) Update(ctx context.Context, branch, sha string, prNumber int) (*Result, error) {
	const errCtx = "updating preview branch"

	scratch, err := os.MkdirTemp(u.tempDir, "staging-deploy-")
	if err != nil {
		return nil, fmt.Errorf("%s: create scratch dir: %w", errCtx, err)
	}
	defer func() {
		if rmErr := os.RemoveAll(scratch); rmErr != nil {
			slog.Warn("Failed to remove scratch clone", "dir", scratch, "error", rmErr)
		}
	}()

	url := git.CloneURL(u.config.GitHost, u.config.DeployRepo, u.token)
	repo, err := git.Clone(ctx, u.runner, url, filepath.Join(scratch, "deploy"))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}
	repo.WithAuthor(u.config.CommitAuthorName, u.config.CommitAuthorEmail)

	if err := repo.Checkout(ctx, branch); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	tag := u.config.RuntimeImageTag(sha)
	strategy, err := deployfile.Pin(
		filepath.Join(repo.Dir, u.config.DeployFile),
		u.config.EnvSection,
		deployfile.Field{Key: u.config.SHAKey, Value: sha},
		deployfile.Field{Key: u.config.TagKey, Value: tag},
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	if err := repo.Add(ctx, u.config.DeployFile); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	result := &Result{Branch: branch, SHA: sha, Tag: tag, Strategy: strategy}

	changed, err := repo.Commit(ctx, u.config.RenderCommitMessage(prNumber, sha))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}
	if !changed {
		slog.Info("Preview branch already pins this commit", "branch", branch, "sha", sha)
		return result, nil
	}

	if err := repo.Push(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	result.Changed = true
	return result, nil
}
