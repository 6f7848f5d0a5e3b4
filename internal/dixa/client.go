// Package dixa provides a client for the Dixa REST API.
//
// The client exposes one service per resource family (agents, conversations, queues...). Every service method
// maps 1:1 onto a REST endpoint and shares the same request and error contract:
//
//   - local argument validation happens before any network call and fails with errors.ErrValidation
//   - exactly one HTTP request is issued per call, with no retries
//   - a 2xx response body is decoded and returned unchanged
//   - an empty 204 response is reported as {"success": true, "message": "..."}
//   - a non-2xx response is returned as *HTTPError, a network failure as *TransportError
package dixa

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/mozilla-ai/dixa-mcp/internal/errors"
)

// Client talks to the Dixa API on behalf of a single API key.
// Clients are cheap to construct and are expected to be created per call.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient HTTPDoer
	logger     hclog.Logger

	Organization     *OrganizationService
	Agents           *AgentsService
	Settings         *SettingsService
	Conversations    *ConversationsService
	CustomAttributes *CustomAttributesService
	EndUsers         *EndUsersService
	Knowledge        *KnowledgeService
	Queues           *QueuesService
	Tags             *TagsService
	Teams            *TeamsService
	Analytics        *AnalyticsService
}

// service is embedded by every resource service to reach the shared client.
type service struct {
	client *Client
}

// request describes a single outbound call.
type request struct {
	method string
	path   string
	query  url.Values
	body   any

	// noContentMessage is reported in the success literal when the API answers 204 with an empty body.
	noContentMessage string
}

// NewClient returns a Client authenticating with apiKey.
// An empty apiKey is a configuration error.
func NewClient(apiKey string, opt ...ClientOption) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, fmt.Errorf("%w: API key cannot be empty", errors.ErrConfiguration)
	}

	opts, err := NewClientOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimSuffix(opts.BaseURL, "/"),
		httpClient: opts.HTTPClient,
		logger:     opts.Logger.Named("dixa"),
	}

	s := service{client: c}
	c.Organization = (*OrganizationService)(&s)
	c.Agents = (*AgentsService)(&s)
	c.Settings = (*SettingsService)(&s)
	c.Conversations = (*ConversationsService)(&s)
	c.CustomAttributes = (*CustomAttributesService)(&s)
	c.EndUsers = (*EndUsersService)(&s)
	c.Knowledge = (*KnowledgeService)(&s)
	c.Queues = (*QueuesService)(&s)
	c.Tags = (*TagsService)(&s)
	c.Teams = (*TeamsService)(&s)
	c.Analytics = (*AnalyticsService)(&s)

	return c, nil
}

// BaseURL returns the API root the client sends requests to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// do issues the request and normalizes the outcome according to the package contract.
func (c *Client) do(ctx context.Context, r request) (any, error) {
	body, status, err := c.send(ctx, r)
	if err != nil {
		return nil, err
	}

	if len(bytes.TrimSpace(body)) == 0 {
		if status == http.StatusNoContent && r.noContentMessage != "" {
			return NoContent(r.noContentMessage), nil
		}
		return map[string]any{"success": true}, nil
	}

	return decodeJSON(body)
}

// send performs the HTTP exchange and returns the raw body of a 2xx response.
func (c *Client) send(ctx context.Context, r request) ([]byte, int, error) {
	endpoint := c.baseURL + r.path
	if len(r.query) > 0 {
		endpoint += "?" + r.query.Encode()
	}

	var bodyReader io.Reader
	if r.body != nil {
		b, err := json.Marshal(r.body)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, endpoint, bodyReader)
	if err != nil {
		return nil, 0, &TransportError{Err: err}
	}

	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Accept", "application/json")
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	c.logger.Debug("Sending request", "method", r.method, "path", r.path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Request failed", "method", r.method, "path", r.path, "error", err)
		return nil, 0, &TransportError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, &TransportError{Err: err}
	}

	c.logger.Debug(
		"Received response",
		"method", r.method,
		"path", r.path,
		"status", resp.StatusCode,
		"latency", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, resp.StatusCode, newHTTPError(r.method, endpoint, resp.StatusCode, body)
	}

	return body, resp.StatusCode, nil
}

// NoContent returns the literal reported for successful calls without a response body.
func NoContent(message string) map[string]any {
	return map[string]any{
		"success": true,
		"message": message,
	}
}

// decodeJSON decodes a response body, keeping numbers exactly as the API sent them.
func decodeJSON(body []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: response body is not valid JSON: %w", errors.ErrRemote, err)
	}

	return v, nil
}

// endpoint joins escaped path segments into an API path, e.g. endpoint("agents", id) => "/agents/<id>".
func endpoint(segments ...string) string {
	var sb strings.Builder
	for _, s := range segments {
		sb.WriteByte('/')
		sb.WriteString(url.PathEscape(s))
	}
	return sb.String()
}
