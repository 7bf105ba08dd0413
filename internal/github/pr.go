package github

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	"github.com/google/go-github/v57/github"
)

// openPRPageSize is how many open deploy PRs are scanned for a preview PR
const openPRPageSize = 100

var (
	// ErrPRNotFound is returned when a pull request lookup comes back empty
	ErrPRNotFound = errors.New("pull request not found")
	// ErrInvalidPRNumber is returned for non-positive PR numbers
	ErrInvalidPRNumber = errors.New("PR number must be a positive integer")
	// ErrInvalidHeadSHA is returned when a PR head is not a full commit hash
	ErrInvalidHeadSHA = errors.New("head commit is not a 40 character hex SHA")
)

var commitSHAPattern = regexp.MustCompile(`^[0-9a-fA-F]{40}$`)

// IsCommitSHA reports whether s is a full 40 character hex commit hash
func IsCommitSHA(s string) bool {
	return commitSHAPattern.MatchString(s)
}

// GetSourcePR fetches a pull request and normalizes it into a SourcePR
func (c *Client) GetSourcePR(ctx context.Context, repo Repository, number int) (*SourcePR, error) {
	if number <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPRNumber, number)
	}

	slog.Debug("GitHub API: Getting PR", "repo", repo.String(), "pr", number)
	var pr github.PullRequest
	endpoint := fmt.Sprintf("repos/%s/%s/pulls/%d", repo.Owner, repo.Name, number)
	if !c.Request(ctx, http.MethodGet, endpoint, nil, &pr) {
		return nil, fmt.Errorf("%w: %s#%d", ErrPRNotFound, repo, number)
	}

	sha := pr.GetHead().GetSHA()
	if !IsCommitSHA(sha) {
		return nil, fmt.Errorf("%w: PR #%d reports %q", ErrInvalidHeadSHA, number, sha)
	}

	return &SourcePR{
		Number:  pr.GetNumber(),
		State:   PRState(pr.GetState()),
		HeadSHA: sha,
		HeadRef: pr.GetHead().GetRef(),
		Title:   pr.GetTitle(),
		URL:     pr.GetHTMLURL(),
	}, nil
}

// ListOpenPRs fetches the first page of open pull requests. An API failure yields an empty list.
func (c *Client) ListOpenPRs(ctx context.Context, repo Repository) []*github.PullRequest {
	slog.Debug("GitHub API: Listing pull requests", "repo", repo.String(), "state", "open", "per_page", openPRPageSize)
	var prs []*github.PullRequest
	endpoint := fmt.Sprintf("repos/%s/%s/pulls?state=open&per_page=%d", repo.Owner, repo.Name, openPRPageSize)
	if !c.Request(ctx, http.MethodGet, endpoint, nil, &prs) {
		return nil
	}
	return prs
}

// FindPreviewPR returns the first open PR whose title contains marker
func (c *Client) FindPreviewPR(ctx context.Context, repo Repository, marker string) (*PreviewPR, bool) {
	return findPreviewPR(c.ListOpenPRs(ctx, repo), marker)
}

// findPreviewPR scans prs in order for a title containing marker.
// This is a plain substring match, so "#12" also matches a title mentioning "#123".
func findPreviewPR(prs []*github.PullRequest, marker string) (*PreviewPR, bool) {
	for _, pr := range prs {
		if !strings.Contains(pr.GetTitle(), marker) {
			continue
		}
		return &PreviewPR{
			Number:  pr.GetNumber(),
			Branch:  pr.GetHead().GetRef(),
			Title:   pr.GetTitle(),
			URL:     pr.GetHTMLURL(),
			HeadSHA: pr.GetHead().GetSHA(),
		}, true
	}
	return nil, false
}
