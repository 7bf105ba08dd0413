package commands

import (
	"fmt"
	"io"

	"github.com/alan/openhands-staging-deploy/internal/github"
)

// shortSHALength is how much of a commit hash is shown to the operator
const shortSHALength = 12

// ShortSHA abbreviates a commit hash for display
func ShortSHA(sha string) string {
	if len(sha) <= shortSHALength {
		return sha
	}
	return sha[:shortSHALength]
}

// PrintSection prints a section heading preceded by a blank line
func PrintSection(w io.Writer, title string) {
	fmt.Fprintf(w, "\n=== %s ===\n", title)
}

// DisplaySourcePR prints the source PR summary and warns when it is no longer open
func DisplaySourcePR(w io.Writer, pr *github.SourcePR) {
	PrintSection(w, fmt.Sprintf("OpenHands PR #%d", pr.Number))
	fmt.Fprintf(w, "  Title: %s\n", pr.Title)
	fmt.Fprintf(w, "  State: %s\n", pr.State)
	fmt.Fprintf(w, "  HEAD SHA: %s\n", ShortSHA(pr.HeadSHA))
	fmt.Fprintf(w, "  URL: %s\n", pr.URL)

	if pr.State != github.PRStateOpen {
		fmt.Fprintf(w, "\nWarning: PR is %s, not open\n", pr.State)
	}
}

// DisplayPreviewPR prints where the existing preview PR lives
func DisplayPreviewPR(w io.Writer, pr *github.PreviewPR) {
	fmt.Fprintf(w, "Found existing preview PR #%d\n", pr.Number)
	fmt.Fprintf(w, "  Branch: %s\n", pr.Branch)
	fmt.Fprintf(w, "  URL: %s\n", pr.URL)
}
