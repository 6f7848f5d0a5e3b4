package credentials

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"

	"github.com/mozilla-ai/dixa-mcp/internal/errors"
)

func envWith(key string) func(string) string {
	return func(name string) string {
		if name == EnvVarAPIKey {
			return key
		}
		return ""
	}
}

func TestResolver_Resolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		explicit string
		request  string
		process  string
		env      string
		want     string
	}{
		{name: "explicit wins", explicit: "k-explicit", request: "k-request", process: "k-process", env: "k-env", want: "k-explicit"},
		{name: "request over process", request: "k-request", process: "k-process", env: "k-env", want: "k-request"},
		{name: "process over environment", process: "k-process", env: "k-env", want: "k-process"},
		{name: "environment last", env: "k-env", want: "k-env"},
		{name: "blank values are skipped", explicit: "  ", process: " ", env: "k-env", want: "k-env"},
		{name: "surrounding space is trimmed", explicit: " k-explicit\n", want: "k-explicit"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			r, err := NewResolver(tc.process, WithGetenv(envWith(tc.env)), WithLogger(hclog.NewNullLogger()))
			require.NoError(t, err)

			ctx := WithAPIKey(t.Context(), tc.request)

			got, err := r.Resolve(ctx, tc.explicit)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestResolver_NoKey(t *testing.T) {
	t.Parallel()

	r, err := NewResolver("", WithGetenv(envWith("")))
	require.NoError(t, err)

	_, err = r.Resolve(context.Background(), "")
	require.ErrorIs(t, err, errors.ErrConfiguration)
	require.Contains(t, err.Error(), "API key is required but not found")
	require.Contains(t, err.Error(), "Authorization header")
	require.Contains(t, err.Error(), EnvVarAPIKey)
	require.Contains(t, err.Error(), "--api-key")
}

func TestNewResolver_Options(t *testing.T) {
	t.Parallel()

	_, err := NewResolver("", WithLogger(nil))
	require.EqualError(t, err, "logger cannot be nil")

	_, err = NewResolver("", WithGetenv(nil))
	require.EqualError(t, err, "getenv function cannot be nil")

	r, err := NewResolver("k", nil)
	require.NoError(t, err)
	require.NotNil(t, r)
}

func TestKeyFromAuthorization(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"":                "",
		"raw-key":         "raw-key",
		"Bearer abc":      "abc",
		"bearer abc":      "abc",
		"  Bearer  abc  ": "abc",
		"Bearer ":         "",
		"Basic abc":       "Basic abc",
	}

	for in, want := range tests {
		require.Equal(t, want, KeyFromAuthorization(in), "input %q", in)
	}
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	var got string
	var found bool
	h := Middleware(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got, found = APIKeyFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodPost, "/mcp", nil)
	req.Header.Set("Authorization", "Bearer from-header")
	h.ServeHTTP(httptest.NewRecorder(), req)
	require.True(t, found)
	require.Equal(t, "from-header", got)

	req = httptest.NewRequest(http.MethodPost, "/mcp", nil)
	h.ServeHTTP(httptest.NewRecorder(), req)
	require.False(t, found)
}

func TestHTTPContextFunc(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/mcp", nil)
	req.Header.Set("Authorization", "header-key")

	ctx := HTTPContextFunc(t.Context(), req)
	key, ok := APIKeyFromContext(ctx)
	require.True(t, ok)
	require.Equal(t, "header-key", key)

	// The value does not leak into unrelated contexts.
	_, ok = APIKeyFromContext(t.Context())
	require.False(t, ok)
}
