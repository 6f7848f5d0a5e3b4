package dixa

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"
)

const testAPIKey = "test-api-key"

// recordedRequest is what the fake API saw for one call.
type recordedRequest struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte
}

// fakeAPI stands in for the Dixa API and records every request it receives.
type fakeAPI struct {
	mu       sync.Mutex
	requests []recordedRequest
	respond  func(r *http.Request) (int, string)
}

func newFakeAPI(t *testing.T, respond func(r *http.Request) (int, string)) (*fakeAPI, *Client) {
	t.Helper()

	f := &fakeAPI{respond: respond}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)

		f.mu.Lock()
		f.requests = append(f.requests, recordedRequest{
			Method: r.Method,
			Path:   r.URL.EscapedPath(),
			Query:  r.URL.Query(),
			Header: r.Header.Clone(),
			Body:   body,
		})
		f.mu.Unlock()

		status, respBody := f.respond(r)
		if respBody != "" {
			w.Header().Set("Content-Type", "application/json")
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(respBody))
	}))
	t.Cleanup(srv.Close)

	c, err := NewClient(testAPIKey, WithBaseURL(srv.URL), WithLogger(hclog.NewNullLogger()))
	require.NoError(t, err)

	return f, c
}

// respondWith answers every request with the same status and body.
func respondWith(status int, body string) func(r *http.Request) (int, string) {
	return func(*http.Request) (int, string) {
		return status, body
	}
}

func (f *fakeAPI) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func (f *fakeAPI) last(t *testing.T) recordedRequest {
	t.Helper()

	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.requests, "expected at least one request")
	return f.requests[len(f.requests)-1]
}

func (f *fakeAPI) all() []recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]recordedRequest(nil), f.requests...)
}

// toJSON marshals a decoded response body for comparison with require.JSONEq.
func toJSON(t *testing.T, v any) string {
	t.Helper()

	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

func ptr[T any](v T) *T {
	return &v
}
