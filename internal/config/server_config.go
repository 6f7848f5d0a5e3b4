package config

import (
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
)

// Supported MCP transports.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// ServerConfigSection contains MCP transport and HTTP listener settings.
//
// NOTE: if you add/remove fields you must review the associated Validate implementation
// and the flags of the serve command.
type ServerConfigSection struct {
	// Transport selects how MCP clients connect, either "stdio" or "http".
	// Maps to CLI flag --transport
	Transport *string `json:"transport,omitempty" toml:"transport,omitempty" yaml:"transport,omitempty"`

	// Address to bind the HTTP listener (e.g., "localhost:8090")
	// Maps to CLI flag --addr
	Addr *string `json:"addr,omitempty" toml:"addr,omitempty" yaml:"addr,omitempty"`

	// Graceful shutdown timeout for the HTTP listener
	// Maps to CLI flag --shutdown-timeout
	ShutdownTimeout *Duration `json:"shutdownTimeout,omitempty" toml:"shutdown_timeout,omitempty" yaml:"shutdown_timeout,omitempty"`

	// Nested CORS configuration for cross-origin requests
	CORS *CORSConfigSection `json:"cors,omitempty" toml:"cors,omitempty" yaml:"cors,omitempty"`
}

// CORSConfigSection contains Cross-Origin Resource Sharing (CORS) configuration.
type CORSConfigSection struct {
	// Enable CORS support
	Enable *bool `json:"enable,omitempty" toml:"enable,omitempty" yaml:"enable,omitempty"`

	// Allowed origins for CORS requests
	Origins []string `json:"allowOrigins,omitempty" toml:"allow_origins,omitempty" yaml:"allow_origins,omitempty"`

	// Allowed HTTP methods for CORS requests
	Methods []string `json:"allowMethods,omitempty" toml:"allow_methods,omitempty" yaml:"allow_methods,omitempty"`

	// Allowed headers for CORS requests
	Headers []string `json:"allowHeaders,omitempty" toml:"allow_headers,omitempty" yaml:"allow_headers,omitempty"`

	// Headers exposed to the client
	ExposeHeaders []string `json:"exposeHeaders,omitempty" toml:"expose_headers,omitempty" yaml:"expose_headers,omitempty"`

	// Allow credentials in CORS requests
	Credentials *bool `json:"allowCredentials,omitempty" toml:"allow_credentials,omitempty" yaml:"allow_credentials,omitempty"`

	// Maximum age for CORS preflight cache
	MaxAge *Duration `json:"maxAge,omitempty" toml:"max_age,omitempty" yaml:"max_age,omitempty"`
}

// Duration is a custom time.Duration type that provides improved marshaling.
type Duration time.Duration

// Validate implements Validator for ServerConfigSection.
func (s *ServerConfigSection) Validate() error {
	var result *multierror.Error

	if s.Transport != nil {
		switch *s.Transport {
		case TransportStdio, TransportHTTP:
		default:
			result = multierror.Append(result, NewErrInvalidValue("transport", *s.Transport))
		}
	}

	if s.Addr != nil && !IsValidAddr(*s.Addr) {
		result = multierror.Append(result, NewErrInvalidValue("addr", *s.Addr))
	}

	if s.ShutdownTimeout != nil && *s.ShutdownTimeout <= 0 {
		result = multierror.Append(result, fmt.Errorf("shutdown timeout must be positive"))
	}

	if s.CORS != nil {
		if err := s.CORS.Validate(); err != nil {
			result = multierror.Append(result, err)
		}
	}

	return result.ErrorOrNil()
}

// EnableOrDefault returns the configured enable flag, or defaultEnable when unset.
func (c *CORSConfigSection) EnableOrDefault(defaultEnable bool) bool {
	if c == nil || c.Enable == nil {
		return defaultEnable
	}
	return *c.Enable
}

// Validate implements Validator for CORSConfigSection.
func (c *CORSConfigSection) Validate() error {
	var result *multierror.Error

	for _, origin := range c.Origins {
		// Wildcard origin check.
		// See: https://developer.mozilla.org/en-US/docs/Web/HTTP/Reference/Headers/Access-Control-Allow-Origin#sect
		if origin == "*" {
			continue
		}
		if strings.TrimSpace(origin) == "" {
			result = multierror.Append(result, fmt.Errorf("CORS origin cannot be empty"))
			continue
		}
		if u, err := url.Parse(strings.TrimSpace(origin)); err != nil || u.Scheme == "" || u.Host == "" {
			result = multierror.Append(result, fmt.Errorf("invalid origin address: %s", origin))
		}
	}

	validMethods := ValidHTTPRequestMethods()
	for _, method := range c.Methods {
		if method == "*" {
			continue
		}
		if method == "" {
			result = multierror.Append(result, fmt.Errorf("CORS method cannot be empty"))
			continue
		}
		if _, ok := validMethods[method]; !ok {
			result = multierror.Append(result, fmt.Errorf("CORS method %s is not a valid HTTP request method", method))
		}
	}

	if c.MaxAge != nil && *c.MaxAge <= 0 {
		result = multierror.Append(result, fmt.Errorf("CORS max age must be positive"))
	}

	return result.ErrorOrNil()
}

// ValidHTTPRequestMethods returns the set of HTTP methods accepted in CORS configuration.
func ValidHTTPRequestMethods() map[string]struct{} {
	return map[string]struct{}{
		http.MethodGet:     {},
		http.MethodHead:    {},
		http.MethodPost:    {},
		http.MethodPut:     {},
		http.MethodPatch:   {},
		http.MethodDelete:  {},
		http.MethodConnect: {},
		http.MethodOptions: {},
		http.MethodTrace:   {},
	}
}

// MarshalText implements encoding.TextMarshaler for Duration.
func (d *Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(*d).String()), nil
}

// String returns a human-readable string representation of the duration.
func (d *Duration) String() string {
	if d == nil {
		return ""
	}
	return time.Duration(*d).String()
}

// UnmarshalText implements encoding.TextUnmarshaler for Duration.
func (d *Duration) UnmarshalText(text []byte) error {
	duration, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(duration)
	return nil
}

// IsValidAddr reports whether addr is a host:port pair suitable for binding a listener.
func IsValidAddr(addr string) bool {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return false
	}

	// Special case: ":" (empty host, empty port) is valid for bind-all-interfaces
	if host == "" && port == "" {
		return true
	}
	if port == "" {
		return false
	}
	if strings.ContainsAny(host, " \t\n\r") {
		return false
	}
	if host != "" && net.ParseIP(host) == nil && len(host) > 253 {
		return false
	}

	if _, err := net.LookupPort("tcp", port); err != nil {
		return false
	}

	return true
}
