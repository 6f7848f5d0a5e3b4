// Package errors defines domain-level errors used throughout the application.
// These errors classify failures of tool calls and are mapped to appropriate HTTP status codes at the API boundary.
//
// NOTE: Important for developers
// When adding a new error here, you MUST consider how it should be handled when returned from API endpoints.
//
// Unmapped errors will default to HTTP 500 Internal Server Error.
//
// Don't forget to:
// 1. Add your error to mapError (internal/server/api_server.go)
// 2. Add a test case to TestMapError (internal/server/api_server_test.go)
package errors

import (
	"errors"
)

var (
	// ErrValidation indicates that caller-supplied arguments violate a documented constraint,
	// such as mutually exclusive filters both being set or an enum value outside the allowed set.
	// It is always raised before any network call is made.
	// Recommended to map to HTTP 400 Bad Request.
	ErrValidation = errors.New("validation failed")

	// ErrConfiguration indicates that no usable API key could be resolved from any source.
	// It is raised before any network call is made.
	// Recommended to map to HTTP 401 Unauthorized.
	ErrConfiguration = errors.New("configuration error")

	// ErrRemote indicates that the Dixa API answered with a non-2xx status code.
	// Recommended to map to HTTP 502 Bad Gateway.
	ErrRemote = errors.New("remote API error")

	// ErrTransport indicates that the Dixa API could not be reached at all (DNS, timeout, connection reset).
	// Recommended to map to HTTP 502 Bad Gateway.
	ErrTransport = errors.New("request failed")

	// ErrToolNotFound indicates that the requested tool does not exist, or exists but is not enabled.
	// Recommended to map to HTTP 404 Not Found.
	ErrToolNotFound = errors.New("tool not found")
)
