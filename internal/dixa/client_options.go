package dixa

import (
	"fmt"
	"net/http"
	"net/url"
	"reflect"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// DefaultBaseURL is the root of the Dixa REST API.
const DefaultBaseURL = "https://dev.dixa.io/v1"

// HTTPDoer executes HTTP requests. *http.Client satisfies it.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientOptions contains optional configuration for a Client.
// NewClientOptions should be used to create instances of ClientOptions.
type ClientOptions struct {
	// BaseURL is the API root, without a trailing slash.
	BaseURL string

	// HTTPClient executes requests. Timeouts are left to this client.
	HTTPClient HTTPDoer

	// Logger receives request level diagnostics. API keys are never logged.
	Logger hclog.Logger
}

// ClientOption defines a functional option for configuring ClientOptions.
// Options are applied in order, with later options overriding earlier ones.
type ClientOption func(*ClientOptions) error

// NewClientOptions creates ClientOptions with optional configurations applied.
// Starts with default values, then applies options in order with later options overriding earlier ones.
func NewClientOptions(opts ...ClientOption) (ClientOptions, error) {
	options := ClientOptions{
		BaseURL:    DefaultBaseURL,
		HTTPClient: http.DefaultClient,
		Logger:     hclog.NewNullLogger(),
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&options); err != nil {
			return ClientOptions{}, err
		}
	}

	return options, nil
}

// WithBaseURL overrides the API root, e.g. to point at a test server.
func WithBaseURL(baseURL string) ClientOption {
	return func(o *ClientOptions) error {
		baseURL = strings.TrimSpace(baseURL)
		u, err := url.Parse(baseURL)
		if err != nil {
			return fmt.Errorf("invalid base URL '%s': %w", baseURL, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("invalid base URL '%s': scheme must be http or https", baseURL)
		}
		if u.Host == "" {
			return fmt.Errorf("invalid base URL '%s': missing host", baseURL)
		}

		o.BaseURL = baseURL
		return nil
	}
}

// WithHTTPClient sets the HTTP client used to execute requests.
func WithHTTPClient(c HTTPDoer) ClientOption {
	return func(o *ClientOptions) error {
		if c == nil || reflect.ValueOf(c).IsNil() {
			return fmt.Errorf("http client cannot be nil")
		}
		o.HTTPClient = c
		return nil
	}
}

// WithLogger sets the logger used by the client.
func WithLogger(l hclog.Logger) ClientOption {
	return func(o *ClientOptions) error {
		if l == nil || reflect.ValueOf(l).IsNil() {
			return fmt.Errorf("logger cannot be nil")
		}
		o.Logger = l
		return nil
	}
}
