// Package credentials decides which Dixa API key a call should use.
//
// A key is looked up fresh for every call, in priority order:
//  1. the key passed explicitly by the caller
//  2. the key carried by the request context (from an inbound Authorization header)
//  3. the process-wide key given with --api-key
//  4. the DIXA_API_KEY environment variable
//
// Empty values are skipped. Keys are never logged.
package credentials

import (
	"context"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/mozilla-ai/dixa-mcp/internal/errors"
)

// EnvVarAPIKey is the environment variable consulted last.
const EnvVarAPIKey = "DIXA_API_KEY"

// Source identifies where a resolved key came from.
type Source string

const (
	SourceExplicit    Source = "explicit"
	SourceRequest     Source = "request"
	SourceProcess     Source = "process"
	SourceEnvironment Source = "environment"
)

// Resolver resolves the API key for a call.
// NewResolver should be used to create instances of Resolver.
type Resolver struct {
	processKey string
	getenv     func(string) string
	logger     hclog.Logger
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver) error

// NewResolver returns a Resolver that falls back to processKey and then to the environment.
func NewResolver(processKey string, opt ...ResolverOption) (*Resolver, error) {
	r := &Resolver{
		processKey: processKey,
		getenv:     os.Getenv,
		logger:     hclog.NewNullLogger(),
	}

	for _, o := range opt {
		if o == nil {
			continue
		}
		if err := o(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// WithLogger sets the logger used to report which source a key was resolved from.
func WithLogger(logger hclog.Logger) ResolverOption {
	return func(r *Resolver) error {
		if logger == nil || reflect.ValueOf(logger).IsNil() {
			return fmt.Errorf("logger cannot be nil")
		}
		r.logger = logger
		return nil
	}
}

// WithGetenv replaces the function used to read environment variables.
func WithGetenv(fn func(string) string) ResolverOption {
	return func(r *Resolver) error {
		if fn == nil {
			return fmt.Errorf("getenv function cannot be nil")
		}
		r.getenv = fn
		return nil
	}
}

// Resolve returns the first non-empty key in priority order.
// When no source yields a key, the returned error wraps errors.ErrConfiguration.
func (r *Resolver) Resolve(ctx context.Context, explicit string) (string, error) {
	key, source, ok := r.lookup(ctx, explicit)
	if !ok {
		r.logger.Debug("No API key found", "checked", []Source{SourceExplicit, SourceRequest, SourceProcess, SourceEnvironment})
		return "", fmt.Errorf(
			"%w: API key is required but not found, "+
				"for remote servers set the Authorization header on the request, "+
				"for local servers set the %s environment variable or use the --api-key flag",
			errors.ErrConfiguration,
			EnvVarAPIKey,
		)
	}

	r.logger.Debug("Resolved API key", "source", source)

	return key, nil
}

func (r *Resolver) lookup(ctx context.Context, explicit string) (string, Source, bool) {
	if k := strings.TrimSpace(explicit); k != "" {
		return k, SourceExplicit, true
	}
	if k, ok := APIKeyFromContext(ctx); ok {
		return k, SourceRequest, true
	}
	if k := strings.TrimSpace(r.processKey); k != "" {
		return k, SourceProcess, true
	}
	if k := strings.TrimSpace(r.getenv(EnvVarAPIKey)); k != "" {
		return k, SourceEnvironment, true
	}
	return "", "", false
}
