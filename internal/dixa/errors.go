package dixa

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/mozilla-ai/dixa-mcp/internal/errors"
)

// HTTPError is returned when the Dixa API answers with a non-2xx status code.
type HTTPError struct {
	// StatusCode is the HTTP status code of the response.
	StatusCode int

	// Method and URL identify the failed request.
	Method string
	URL    string

	// Detail holds the decoded error body, when the body was valid JSON.
	Detail any

	// Body holds the raw response text.
	Body string
}

// TransportError is returned when the request never produced an HTTP response.
type TransportError struct {
	Err error
}

func newHTTPError(method string, url string, status int, body []byte) *HTTPError {
	e := &HTTPError{
		StatusCode: status,
		Method:     method,
		URL:        url,
		Body:       string(body),
	}

	if len(bytes.TrimSpace(body)) > 0 {
		if detail, err := decodeJSON(body); err == nil {
			e.Detail = detail
		}
	}

	return e
}

// Error includes the status code, the standard reason text and the error detail returned by the API.
func (e *HTTPError) Error() string {
	class := "Client"
	if e.StatusCode >= 500 {
		class = "Server"
	}

	msg := fmt.Sprintf(
		"HTTP %d error: %d %s Error: %s for url: %s",
		e.StatusCode,
		e.StatusCode,
		class,
		http.StatusText(e.StatusCode),
		e.URL,
	)

	if e.Detail != nil {
		if b, err := json.Marshal(e.Detail); err == nil {
			return msg + " - " + string(b)
		}
	}

	return msg + " - " + e.Body
}

// Is reports whether target is errors.ErrRemote.
func (e *HTTPError) Is(target error) bool {
	return target == errors.ErrRemote
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is reports whether target is errors.ErrTransport.
func (e *TransportError) Is(target error) bool {
	return target == errors.ErrTransport
}
