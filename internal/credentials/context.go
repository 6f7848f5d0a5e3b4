package credentials

import (
	"context"
	"net/http"
	"strings"
)

type apiKeyContextKey struct{}

// WithAPIKey returns a copy of ctx carrying key as the request-scoped API key.
// An empty key leaves ctx unchanged.
func WithAPIKey(ctx context.Context, key string) context.Context {
	key = strings.TrimSpace(key)
	if key == "" {
		return ctx
	}
	return context.WithValue(ctx, apiKeyContextKey{}, key)
}

// APIKeyFromContext returns the request-scoped API key, if any.
func APIKeyFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	key, ok := ctx.Value(apiKeyContextKey{}).(string)
	return key, ok && key != ""
}

// KeyFromAuthorization extracts the API key from an Authorization header value.
// A leading "Bearer " scheme is removed; raw keys are accepted as they are.
func KeyFromAuthorization(header string) string {
	header = strings.TrimSpace(header)
	if strings.EqualFold(header, "Bearer") {
		return ""
	}
	if scheme, rest, ok := strings.Cut(header, " "); ok && strings.EqualFold(scheme, "Bearer") {
		return strings.TrimSpace(rest)
	}
	return header
}

// Middleware stores the key from the Authorization header on the request context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if key := KeyFromAuthorization(r.Header.Get("Authorization")); key != "" {
			r = r.WithContext(WithAPIKey(r.Context(), key))
		}
		next.ServeHTTP(w, r)
	})
}

// HTTPContextFunc copies the key from the Authorization header onto ctx.
// Its signature matches server.HTTPContextFunc from mcp-go.
func HTTPContextFunc(ctx context.Context, r *http.Request) context.Context {
	return WithAPIKey(ctx, KeyFromAuthorization(r.Header.Get("Authorization")))
}
