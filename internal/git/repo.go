package git

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// nothingToCommit is what git prints when a commit would be empty
const nothingToCommit = "nothing to commit"

// Repo is a local clone. Create with Clone; the caller owns the directory.
type Repo struct {
	// Dir is the filesystem location of the clone
	Dir string

	runner   Runner
	identity []string
}

// CloneURL builds an HTTPS clone URL that authenticates with token
func CloneURL(host, repo, token string) string {
	if token == "" {
		return fmt.Sprintf("https://%s/%s.git", host, repo)
	}
	return fmt.Sprintf("https://x-access-token:%s@%s/%s.git", token, host, repo)
}

// Clone clones url into dir
func Clone(ctx context.Context, runner Runner, url, dir string) (*Repo, error) {
	const errCtx = "cloning repository"

	slog.Info("Cloning deploy repository", "dir", dir)
	if _, err := runner.Run(ctx, "", "clone", url, dir); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	return &Repo{Dir: dir, runner: runner}, nil
}

// WithAuthor sets the identity used for commits. Empty values leave git's own config in charge.
func (r *Repo) WithAuthor(name, email string) *Repo {
	r.identity = nil
	if name != "" {
		r.identity = append(r.identity, "-c", "user.name="+name)
	}
	if email != "" {
		r.identity = append(r.identity, "-c", "user.email="+email)
	}
	return r
}

// Checkout switches to an existing branch
func (r *Repo) Checkout(ctx context.Context, branch string) error {
	slog.Info("Checking out branch", "branch", branch)
	if _, err := r.runner.Run(ctx, r.Dir, "checkout", branch); err != nil {
		return fmt.Errorf("failed to checkout branch %s: %w", branch, err)
	}
	return nil
}

// Add stages paths
func (r *Repo) Add(ctx context.Context, paths ...string) error {
	args := append([]string{"add", "--"}, paths...)
	if _, err := r.runner.Run(ctx, r.Dir, args...); err != nil {
		return fmt.Errorf("failed to stage %s: %w", strings.Join(paths, " "), err)
	}
	return nil
}

// Commit records the staged changes. Returns true when a commit was made and false when
// there was nothing to commit.
func (r *Repo) Commit(ctx context.Context, message string) (bool, error) {
	args := append(append([]string{}, r.identity...), "commit", "-m", message)
	out, err := r.runner.Run(ctx, r.Dir, args...)
	if err != nil {
		if strings.Contains(out, nothingToCommit) {
			slog.Info("Nothing to commit", "dir", r.Dir)
			return false, nil
		}
		return false, fmt.Errorf("failed to commit: %w", err)
	}
	return true, nil
}

// Push pushes the current branch to its upstream
func (r *Repo) Push(ctx context.Context) error {
	slog.Info("Pushing branch")
	if _, err := r.runner.Run(ctx, r.Dir, "push"); err != nil {
		return fmt.Errorf("failed to push: %w", err)
	}
	return nil
}
