package github

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	ctx := context.Background()
	token := "test-token"

	client := NewClient(ctx, token)

	if client == nil {
		t.Fatal("NewClient() returned nil")
	}

	if client.client == nil {
		t.Error("NewClient() client field is nil")
	}

	if client.client.UserAgent != UserAgent {
		t.Errorf("NewClient() user agent = %v, want %v", client.client.UserAgent, UserAgent)
	}
}

func TestClient_WithBaseURL(t *testing.T) {
	tests := []struct {
		name     string
		baseURL  string
		expected string
	}{
		{name: "adds trailing slash", baseURL: "https://ghe.example.com/api/v3", expected: "https://ghe.example.com/api/v3/"},
		{name: "keeps trailing slash", baseURL: "http://127.0.0.1:8080/", expected: "http://127.0.0.1:8080/"},
		{name: "empty keeps default", baseURL: "", expected: "https://api.github.com/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(context.Background(), "test-token").WithBaseURL(tt.baseURL)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, client.client.BaseURL.String())
		})
	}
}

func TestCheckRedirect(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "http://example.com/", nil)

	for hops := 1; hops <= maxRedirects; hops++ {
		assert.NoError(t, checkRedirect(req, make([]*http.Request, hops)), "hop %d", hops)
	}
	assert.ErrorIs(t, checkRedirect(req, make([]*http.Request, maxRedirects+1)), errTooManyRedirects)
}

// newTestClient returns a Client that talks to handler instead of api.github.com
func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(context.Background(), "test-token").WithBaseURL(server.URL)
	require.NoError(t, err)

	return client
}
