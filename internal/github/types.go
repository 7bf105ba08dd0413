package github

import (
	"fmt"
	"strings"
)

// PRState is the state GitHub reports for a pull request. Merged PRs report closed.
type PRState string

const (
	// PRStateOpen indicates the PR is still open
	PRStateOpen PRState = "open"
	// PRStateClosed indicates the PR was closed or merged
	PRStateClosed PRState = "closed"
)

// Repository identifies a GitHub repository as owner/name
type Repository struct {
	Owner string
	Name  string
}

// ParseRepository parses an "owner/name" string
func ParseRepository(s string) (Repository, error) {
	owner, name, ok := strings.Cut(s, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return Repository{}, fmt.Errorf("repository must be in the form 'owner/repo', got %q", s)
	}
	return Repository{Owner: owner, Name: name}, nil
}

func (r Repository) String() string {
	return r.Owner + "/" + r.Name
}

// SourcePR is the pull request whose head commit is being promoted
type SourcePR struct {
	Number  int
	State   PRState
	HeadSHA string
	HeadRef string
	Title   string
	URL     string
}

// PreviewPR is a pull request in the deploy repository pinning a source commit for staging
type PreviewPR struct {
	Number  int
	Branch  string
	Title   string
	URL     string
	HeadSHA string
}
