// Package git drives the git command line against a scratch clone of the deploy repository.
package git

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
)

// redacted replaces secrets in anything that is logged or returned
const redacted = "***"

// Runner executes git with args in dir and returns the combined stdout and stderr.
// On failure the output is still returned alongside the error.
type Runner interface {
	Run(ctx context.Context, dir string, args ...string) (string, error)
}

// ExecRunner runs the git binary found on PATH
type ExecRunner struct {
	// Secrets are scrubbed from log lines and error strings
	Secrets []string
}

// NewExecRunner returns a Runner that scrubs the given secrets from its logs and errors
func NewExecRunner(secrets ...string) *ExecRunner {
	return &ExecRunner{Secrets: secrets}
}

// Run implements Runner
func (r *ExecRunner) Run(ctx context.Context, dir string, args ...string) (string, error) {
	const errCtx = "executing git"

	printable := r.redact(strings.Join(args, " "))
	slog.Info("executing", "cmd", "git", "args", printable, "dir", dir)

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")

	by, err := cmd.CombinedOutput()
	out := r.redact(string(by))

	slog.Debug("output", "result", out)

	if err != nil {
		return out, fmt.Errorf("%s: git %s: %w\n%s", errCtx, printable, err, strings.TrimSpace(out))
	}

	return out, nil
}

func (r *ExecRunner) redact(s string) string {
	return Redact(s, r.Secrets...)
}

// Redact replaces every non-empty secret in s
func Redact(s string, secrets ...string) string {
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		s = strings.ReplaceAll(s, secret, redacted)
	}
	return s
}
