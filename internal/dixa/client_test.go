package dixa

import (
	stdErrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mozilla-ai/dixa-mcp/internal/errors"
)

func TestNewClient(t *testing.T) {
	t.Parallel()

	t.Run("empty API key", func(t *testing.T) {
		t.Parallel()

		c, err := NewClient("  ")
		require.Nil(t, c)
		require.ErrorIs(t, err, errors.ErrConfiguration)
	})

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		c, err := NewClient("key")
		require.NoError(t, err)
		require.Equal(t, DefaultBaseURL, c.BaseURL())
		require.NotNil(t, c.Agents)
		require.NotNil(t, c.Analytics)
	})

	t.Run("trailing slash is trimmed", func(t *testing.T) {
		t.Parallel()

		c, err := NewClient("key", WithBaseURL("http://localhost:8080/v1/"))
		require.NoError(t, err)
		require.Equal(t, "http://localhost:8080/v1", c.BaseURL())
	})
}

func TestClientOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opt     ClientOption
		wantErr string
	}{
		{name: "missing scheme", opt: WithBaseURL("dev.dixa.io/v1"), wantErr: "scheme must be http or https"},
		{name: "unsupported scheme", opt: WithBaseURL("ftp://dev.dixa.io"), wantErr: "scheme must be http or https"},
		{name: "missing host", opt: WithBaseURL("https://"), wantErr: "missing host"},
		{name: "nil http client", opt: WithHTTPClient(nil), wantErr: "http client cannot be nil"},
		{name: "nil typed http client", opt: WithHTTPClient((*http.Client)(nil)), wantErr: "http client cannot be nil"},
		{name: "nil logger", opt: WithLogger(nil), wantErr: "logger cannot be nil"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewClientOptions(tc.opt)
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestClient_Headers(t *testing.T) {
	t.Parallel()

	t.Run("GET has no content type", func(t *testing.T) {
		t.Parallel()

		api, c := newFakeAPI(t, respondWith(http.StatusOK, `{"data":{}}`))
		_, err := c.Organization.Get(t.Context())
		require.NoError(t, err)

		req := api.last(t)
		require.Equal(t, http.MethodGet, req.Method)
		require.Equal(t, "/organization", req.Path)
		require.Equal(t, testAPIKey, req.Header.Get("Authorization"))
		require.Equal(t, "application/json", req.Header.Get("Accept"))
		require.Empty(t, req.Header.Get("Content-Type"))
		require.Empty(t, req.Body)
	})

	t.Run("body is sent as JSON", func(t *testing.T) {
		t.Parallel()

		api, c := newFakeAPI(t, respondWith(http.StatusCreated, `{"data":{"id":"t1"}}`))
		_, err := c.Teams.Create(t.Context(), "Support")
		require.NoError(t, err)

		req := api.last(t)
		require.Equal(t, "application/json", req.Header.Get("Content-Type"))
		require.JSONEq(t, `{"name":"Support"}`, string(req.Body))
	})
}

func TestClient_Responses(t *testing.T) {
	t.Parallel()

	t.Run("body is returned unchanged", func(t *testing.T) {
		t.Parallel()

		body := `{"data":{"id":"a1","count":12345678901234567890,"ratio":0.1}}`
		_, c := newFakeAPI(t, respondWith(http.StatusOK, body))

		res, err := c.Agents.Get(t.Context(), "a1")
		require.NoError(t, err)
		require.JSONEq(t, body, toJSON(t, res))
	})

	t.Run("204 reports the call specific message", func(t *testing.T) {
		t.Parallel()

		_, c := newFakeAPI(t, respondWith(http.StatusNoContent, ""))

		res, err := c.Tags.Delete(t.Context(), "tag-1")
		require.NoError(t, err)
		require.Equal(t, map[string]any{"success": true, "message": "Tag deleted successfully"}, res)
	})

	t.Run("empty 200 reports plain success", func(t *testing.T) {
		t.Parallel()

		_, c := newFakeAPI(t, respondWith(http.StatusOK, ""))

		res, err := c.Tags.Activate(t.Context(), "tag-1")
		require.NoError(t, err)
		require.Equal(t, map[string]any{"success": true}, res)
	})

	t.Run("success with body on a no-content endpoint", func(t *testing.T) {
		t.Parallel()

		_, c := newFakeAPI(t, respondWith(http.StatusOK, `{"data":{"id":"tag-1","state":"Active"}}`))

		res, err := c.Tags.Activate(t.Context(), "tag-1")
		require.NoError(t, err)
		require.JSONEq(t, `{"data":{"id":"tag-1","state":"Active"}}`, toJSON(t, res))
	})

	t.Run("invalid JSON is a remote error", func(t *testing.T) {
		t.Parallel()

		_, c := newFakeAPI(t, respondWith(http.StatusOK, `<html>`))

		_, err := c.Queues.List(t.Context())
		require.ErrorIs(t, err, errors.ErrRemote)
	})
}

func TestClient_Errors(t *testing.T) {
	t.Parallel()

	t.Run("client error with JSON detail", func(t *testing.T) {
		t.Parallel()

		_, c := newFakeAPI(t, respondWith(http.StatusNotFound, `{"message":"Agent not found"}`))

		_, err := c.Agents.Get(t.Context(), "missing")
		require.ErrorIs(t, err, errors.ErrRemote)
		require.NotErrorIs(t, err, errors.ErrTransport)

		var httpErr *HTTPError
		require.True(t, stdErrors.As(err, &httpErr))
		require.Equal(t, http.StatusNotFound, httpErr.StatusCode)
		require.Equal(t, map[string]any{"message": "Agent not found"}, httpErr.Detail)
		require.Contains(t, err.Error(), "HTTP 404 error: 404 Client Error: Not Found for url: ")
		require.Contains(t, err.Error(), "/agents/missing")
		require.Contains(t, err.Error(), ` - {"message":"Agent not found"}`)
	})

	t.Run("server error with text detail", func(t *testing.T) {
		t.Parallel()

		_, c := newFakeAPI(t, respondWith(http.StatusBadGateway, "upstream unavailable"))

		_, err := c.Teams.List(t.Context())
		require.ErrorIs(t, err, errors.ErrRemote)
		require.Contains(t, err.Error(), "HTTP 502 error: 502 Server Error: Bad Gateway for url: ")
		require.Contains(t, err.Error(), " - upstream unavailable")
	})

	t.Run("unreachable host is a transport error", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.NotFoundHandler())
		srv.Close()

		c, err := NewClient(testAPIKey, WithBaseURL(srv.URL))
		require.NoError(t, err)

		_, err = c.Organization.Get(t.Context())
		require.ErrorIs(t, err, errors.ErrTransport)
		require.NotErrorIs(t, err, errors.ErrRemote)
		require.Contains(t, err.Error(), "request failed: ")
	})
}

func TestEndpoint(t *testing.T) {
	t.Parallel()

	require.Equal(t, "/agents", endpoint("agents"))
	require.Equal(t, "/agents/a1/teams", endpoint("agents", "a1", "teams"))
	require.Equal(t, "/agents/a%2Fb", endpoint("agents", "a/b"))
	require.Equal(t, "/analytics/filter/channel%20type", endpoint("analytics", "filter", "channel type"))
}
