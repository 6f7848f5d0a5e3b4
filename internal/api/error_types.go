package api

import (
	stdErrors "errors"

	"github.com/mozilla-ai/dixa-mcp/internal/errors"
)

// ErrorType represents the classification of errors returned via HTTP headers.
type ErrorType string

// HeaderErrorType is the HTTP header key which should be used to convey API error types.
const HeaderErrorType = "Dixa-Mcp-Error-Type"

const (
	// ValidationFailure indicates the tool arguments were rejected before any request was sent to Dixa.
	ValidationFailure ErrorType = "validation"

	// ConfigurationFailure indicates no API key could be resolved for the call.
	ConfigurationFailure ErrorType = "configuration"

	// ToolNotFoundFailure indicates the tool does not exist or is not enabled.
	ToolNotFoundFailure ErrorType = "tool-not-found"

	// RemoteFailure indicates Dixa answered with a non-2xx status code.
	RemoteFailure ErrorType = "remote"

	// TransportFailure indicates Dixa could not be reached.
	TransportFailure ErrorType = "transport"

	// UnknownFailure covers every other error.
	UnknownFailure ErrorType = "unknown"
)

// errorTypeOf classifies err by the domain error it wraps.
func errorTypeOf(err error) ErrorType {
	switch {
	case stdErrors.Is(err, errors.ErrValidation):
		return ValidationFailure
	case stdErrors.Is(err, errors.ErrConfiguration):
		return ConfigurationFailure
	case stdErrors.Is(err, errors.ErrToolNotFound):
		return ToolNotFoundFailure
	case stdErrors.Is(err, errors.ErrRemote):
		return RemoteFailure
	case stdErrors.Is(err, errors.ErrTransport):
		return TransportFailure
	default:
		return UnknownFailure
	}
}
