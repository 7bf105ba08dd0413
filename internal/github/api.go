package github

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	json "github.com/goccy/go-json"
	"github.com/google/go-github/v57/github"
)

var errNotFound = errors.New("not found")

// Request performs an API call and decodes the JSON response into v.
//
// It reports whether a response value was present. No-content, not-found and accepted
// responses are absent. Any other failure (4xx/5xx, transport errors, a redirect chain longer
// than five hops, undecodable bodies) is logged and also reported as absent; Request never
// returns an error to the caller.
func (c *Client) Request(ctx context.Context, method, endpoint string, body, v any) bool {
	present, err := c.do(ctx, method, endpoint, body, v)
	if errors.Is(err, errNotFound) {
		slog.Debug("GitHub API: Not found", "method", method, "endpoint", endpoint)
		return false
	}
	if err != nil {
		logFailure(method, endpoint, err)
		return false
	}
	return present
}

// do is Request without the logging. Not-found comes back as errNotFound so callers that
// need the target to exist can tell it apart from no-content.
func (c *Client) do(ctx context.Context, method, endpoint string, body, v any) (bool, error) {
	req, err := c.client.NewRequest(method, endpoint, body)
	if err != nil {
		return false, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.client.BareDo(ctx, req)
	if err != nil {
		var accepted *github.AcceptedError
		if errors.As(err, &accepted) {
			return false, nil
		}
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return false, fmt.Errorf("%w: %w", errNotFound, err)
		}
		return false, err
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode == http.StatusNoContent {
		return false, nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, fmt.Errorf("failed to read response body: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return false, nil
	}

	if v != nil {
		if err := json.Unmarshal(data, v); err != nil {
			return false, fmt.Errorf("failed to decode response body: %w", err)
		}
	}

	return true, nil
}

// logFailure reports a soft API failure
func logFailure(method, endpoint string, err error) {
	var ghErr *github.ErrorResponse
	switch {
	case errors.Is(err, errTooManyRedirects):
		slog.Error("GitHub API: Too many redirects", "method", method, "endpoint", endpoint, "max", maxRedirects)
	case errors.As(err, &ghErr) && ghErr.Response != nil:
		slog.Error("GitHub API error",
			"method", method,
			"endpoint", endpoint,
			"status", ghErr.Response.StatusCode,
			"body", errorBody(ghErr),
		)
	default:
		slog.Error("GitHub API request failed", "method", method, "endpoint", endpoint, "error", err)
	}
}

// errorBody renders the decoded error payload GitHub sent back
func errorBody(ghErr *github.ErrorResponse) string {
	data, err := json.Marshal(struct {
		Message string         `json:"message"`
		Errors  []github.Error `json:"errors,omitempty"`
	}{ghErr.Message, ghErr.Errors})
	if err != nil {
		return ghErr.Message
	}
	return string(data)
}
