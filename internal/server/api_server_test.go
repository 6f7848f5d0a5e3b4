package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hashicorp/go-hclog"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/require"

	"github.com/mozilla-ai/dixa-mcp/internal/api"
	"github.com/mozilla-ai/dixa-mcp/internal/errors"
)

func newTestAPIServer(t *testing.T, catalogue *fakeCatalogue, opt ...APIOption) *APIServer {
	t.Helper()

	deps, err := NewAPIDependencies(hclog.NewNullLogger(), catalogue, testMCPServer(), "localhost:8090")
	require.NoError(t, err)

	srv, err := NewAPIServer(deps, opt...)
	require.NoError(t, err)

	return srv
}

func newTestHTTPServer(t *testing.T, catalogue *fakeCatalogue, opt ...APIOption) *httptest.Server {
	t.Helper()

	handler, err := newTestAPIServer(t, catalogue, opt...).Handler()
	require.NoError(t, err)

	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	return ts
}

func TestNewAPIServer_AppliesDefaults(t *testing.T) {
	t.Parallel()

	srv := newTestAPIServer(t, &fakeCatalogue{})
	require.Equal(t, DefaultAPIShutdownTimeout(), srv.shutdownTimeout)
	require.False(t, srv.cors.Enabled)

	srv = newTestAPIServer(t, &fakeCatalogue{}, WithShutdownTimeout(10*time.Second), WithCORSEnabled(true))
	require.Equal(t, 10*time.Second, srv.shutdownTimeout)
	require.True(t, srv.cors.Enabled)

	deps := APIDependencies{Addr: "localhost:8090"}
	_, err := NewAPIServer(deps)
	require.ErrorContains(t, err, "invalid dependencies for API server")

	deps, err = NewAPIDependencies(hclog.NewNullLogger(), &fakeCatalogue{}, testMCPServer(), "localhost:8090")
	require.NoError(t, err)
	_, err = NewAPIServer(deps, WithShutdownTimeout(0))
	require.ErrorContains(t, err, "invalid API options")
}

func TestAPIServer_Health(t *testing.T) {
	t.Parallel()

	ts := newTestHTTPServer(t, &fakeCatalogue{tools: []mcp.Tool{mcp.NewTool("list_tags")}})

	// StripSlashes makes the trailing slash irrelevant.
	resp, err := http.Get(ts.URL + "/api/v1/health/")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, "ok", body["status"])
	require.Equal(t, float64(1), body["tools"])
}

func TestAPIServer_CallTool_AuthorizationHeader(t *testing.T) {
	t.Parallel()

	catalogue := &fakeCatalogue{result: map[string]any{"data": []any{}}}
	ts := newTestHTTPServer(t, catalogue)

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/api/v1/tools/list_tags", strings.NewReader(`{}`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer header-key")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "header-key", catalogue.ctxKey)
	require.Empty(t, catalogue.apiKey)
}

func TestAPIServer_CallTool_ErrorStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		err       error
		status    int
		errorType api.ErrorType
	}{
		{"validation", fmt.Errorf("%w: missing required argument 'tag_id'", errors.ErrValidation), http.StatusBadRequest, api.ValidationFailure},
		{"configuration", fmt.Errorf("%w: no API key", errors.ErrConfiguration), http.StatusUnauthorized, api.ConfigurationFailure},
		{"unknown tool", fmt.Errorf("%w: nope", errors.ErrToolNotFound), http.StatusNotFound, api.ToolNotFoundFailure},
		{"remote", fmt.Errorf("%w: 404 Not Found", errors.ErrRemote), http.StatusBadGateway, api.RemoteFailure},
		{"transport", fmt.Errorf("%w: connection refused", errors.ErrTransport), http.StatusBadGateway, api.TransportFailure},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ts := newTestHTTPServer(t, &fakeCatalogue{err: tc.err})

			resp, err := http.Post(ts.URL+"/api/v1/tools/remove_tag", "application/json", strings.NewReader(`{"arguments": {}}`))
			require.NoError(t, err)
			defer resp.Body.Close()

			require.Equal(t, tc.status, resp.StatusCode)
			require.Equal(t, string(tc.errorType), resp.Header.Get(api.HeaderErrorType))
		})
	}
}

func TestAPIServer_CallTool_MalformedBody(t *testing.T) {
	t.Parallel()

	ts := newTestHTTPServer(t, &fakeCatalogue{})

	resp, err := http.Post(ts.URL+"/api/v1/tools/list_tags", "application/json", strings.NewReader(`{"arguments": "nope"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.GreaterOrEqual(t, resp.StatusCode, http.StatusBadRequest)
	require.Less(t, resp.StatusCode, http.StatusInternalServerError)
}

func TestAPIServer_MCPEndpoint(t *testing.T) {
	t.Parallel()

	ts := newTestHTTPServer(t, &fakeCatalogue{})

	initialize := `{"jsonrpc": "2.0", "id": 1, "method": "initialize", "params": {` +
		`"protocolVersion": "2025-03-26", "capabilities": {}, "clientInfo": {"name": "test", "version": "1.0.0"}}}`

	req, err := http.NewRequest(http.MethodPost, ts.URL+MCPEndpointPath, strings.NewReader(initialize))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, text/event-stream")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotEmpty(t, resp.Header.Get("Mcp-Session-Id"))
}

func TestAPIServer_CORSPreflight(t *testing.T) {
	t.Parallel()

	ts := newTestHTTPServer(
		t,
		&fakeCatalogue{},
		WithCORSEnabled(true),
		WithCORSAllowOrigins([]string{" https://app.example.com "}),
	)

	req, err := http.NewRequest(http.MethodOptions, ts.URL+MCPEndpointPath, nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Authorization")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, "https://app.example.com", resp.Header.Get("Access-Control-Allow-Origin"))
	require.Contains(t, strings.ToLower(resp.Header.Get("Access-Control-Allow-Headers")), "authorization")
}

func TestAPIServer_ApplyCORS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		cors        CORSConfig
		origin      string
		allowOrigin string
		credentials string
	}{
		{
			name: "listed origin with credentials",
			cors: CORSConfig{
				Enabled:          true,
				AllowOrigins:     []string{"http://localhost:3000", "https://example.com"},
				AllowMethods:     []string{http.MethodGet},
				AllowCredentials: true,
			},
			origin:      "https://example.com",
			allowOrigin: "https://example.com",
			credentials: "true",
		},
		{
			name: "wildcard drops credentials",
			cors: CORSConfig{
				Enabled:          true,
				AllowOrigins:     []string{"http://localhost:3000", "*"},
				AllowMethods:     []string{http.MethodGet},
				AllowCredentials: true,
			},
			origin:      "https://anywhere.example.com",
			allowOrigin: "*",
		},
		{
			name: "origins are trimmed",
			cors: CORSConfig{
				Enabled:      true,
				AllowOrigins: []string{"  http://localhost:3000  ", "\thttps://example.com\n"},
				AllowMethods: []string{http.MethodGet},
			},
			origin:      "http://localhost:3000",
			allowOrigin: "http://localhost:3000",
		},
		{
			name: "unlisted origin",
			cors: CORSConfig{
				Enabled:      true,
				AllowOrigins: []string{"https://example.com"},
				AllowMethods: []string{http.MethodGet},
			},
			origin: "https://evil.example.com",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			srv := &APIServer{logger: hclog.NewNullLogger(), cors: tc.cors}
			mux := chi.NewMux()
			srv.applyCORS(mux)
			mux.Get("/", func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Origin", tc.origin)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			require.Equal(t, tc.allowOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
			require.Equal(t, tc.credentials, rec.Header().Get("Access-Control-Allow-Credentials"))
		})
	}
}

func TestMapError(t *testing.T) {
	t.Parallel()

	logger := hclog.NewNullLogger()

	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{"ErrValidation maps to 400", errors.ErrValidation, http.StatusBadRequest},
		{"ErrConfiguration maps to 401", errors.ErrConfiguration, http.StatusUnauthorized},
		{"ErrToolNotFound maps to 404", errors.ErrToolNotFound, http.StatusNotFound},
		{"ErrRemote maps to 502", errors.ErrRemote, http.StatusBadGateway},
		{"ErrTransport maps to 502", errors.ErrTransport, http.StatusBadGateway},
		{"wrapped ErrValidation maps to 400", fmt.Errorf("tool x: %w", errors.ErrValidation), http.StatusBadRequest},
		{"unknown error maps to 500", fmt.Errorf("unknown error"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, tc.expectedStatus, mapError(logger, tc.err).GetStatus())
		})
	}
}

func TestErrorHandler(t *testing.T) {
	t.Parallel()

	handler := errorHandler(hclog.NewNullLogger())

	tests := []struct {
		name           string
		status         int
		errs           []error
		expectedStatus int
	}{
		{"no errors keeps status", http.StatusInternalServerError, nil, http.StatusInternalServerError},
		{"client status kept", http.StatusUnprocessableEntity, []error{fmt.Errorf("bad body")}, http.StatusUnprocessableEntity},
		{"single error mapped", http.StatusInternalServerError, []error{errors.ErrValidation}, http.StatusBadRequest},
		{
			"multiple errors joined then mapped",
			http.StatusInternalServerError,
			[]error{fmt.Errorf("first"), errors.ErrConfiguration},
			http.StatusUnauthorized,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, tc.expectedStatus, handler(nil, tc.status, "message", tc.errs...).GetStatus())
		})
	}
}
