package github

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
)

const (
	// UserAgent identifies this tool on every API request
	UserAgent = "openhands-staging-deploy"

	// maxRedirects is the number of redirects followed before a request is abandoned
	maxRedirects = 5
)

var errTooManyRedirects = errors.New("too many redirects")

// Client wraps the GitHub API client
type Client struct {
	client *github.Client
}

// NewClient creates a new GitHub client with token authentication
func NewClient(ctx context.Context, token string) *Client {
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)
	tc.CheckRedirect = checkRedirect

	client := github.NewClient(tc)
	client.UserAgent = UserAgent

	return &Client{
		client: client,
	}
}

// WithBaseURL points the client at a different API root (GitHub Enterprise or a test server)
func (c *Client) WithBaseURL(baseURL string) (*Client, error) {
	if baseURL == "" {
		return c, nil
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid API URL %q: %w", baseURL, err)
	}
	c.client.BaseURL = u

	return c, nil
}

// checkRedirect bounds redirect chains. net/http already keeps method and body on 307/308
// and switches to a bodiless GET on 301/302/303.
func checkRedirect(req *http.Request, via []*http.Request) error {
	if len(via) > maxRedirects {
		return errTooManyRedirects
	}
	slog.Debug("GitHub API: Following redirect", "method", req.Method, "url", req.URL.String(), "hop", len(via))
	return nil
}
