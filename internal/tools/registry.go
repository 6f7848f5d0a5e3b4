// Package tools exposes the Dixa client operations as MCP tools.
//
// Every tool maps onto exactly one client operation. A call validates its arguments against the tool's
// input schema, resolves the API key, builds a client for that key and runs the operation.
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"slices"
	"sort"

	"github.com/hashicorp/go-hclog"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/xeipuuv/gojsonschema"

	"github.com/mozilla-ai/dixa-mcp/internal/credentials"
	"github.com/mozilla-ai/dixa-mcp/internal/dixa"
	"github.com/mozilla-ai/dixa-mcp/internal/errors"
)

// Tool is an MCP tool backed by a single Dixa client operation.
type Tool struct {
	mcp.Tool

	run    handlerFunc
	schema *gojsonschema.Schema
}

// handlerFunc runs the client operation of a tool.
type handlerFunc func(ctx context.Context, c *dixa.Client, a Arguments) (any, error)

// Registry holds the enabled tools and dispatches calls to them.
// NewRegistry should be used to create instances of Registry.
type Registry struct {
	logger        hclog.Logger
	resolver      *credentials.Resolver
	clientOptions []dixa.ClientOption
	tools         map[string]Tool
}

// RegistryOptions contains optional configuration for a Registry.
type RegistryOptions struct {
	Logger        hclog.Logger
	ClientOptions []dixa.ClientOption

	// Allow lists the only tools to enable. Empty enables every tool.
	Allow []string

	// Deny lists tools that are never enabled.
	Deny []string

	// ReadOnly disables every tool that modifies data.
	ReadOnly bool
}

// RegistryOption defines a functional option for configuring RegistryOptions.
type RegistryOption func(*RegistryOptions) error

// ReadOnly reports whether the tool only reads data.
func (t Tool) ReadOnly() bool {
	return t.Annotations.ReadOnlyHint != nil && *t.Annotations.ReadOnlyHint
}

// WithLogger sets the logger used by the registry and the clients it creates.
func WithLogger(logger hclog.Logger) RegistryOption {
	return func(o *RegistryOptions) error {
		if logger == nil || reflect.ValueOf(logger).IsNil() {
			return fmt.Errorf("logger cannot be nil")
		}
		o.Logger = logger
		return nil
	}
}

// WithClientOptions appends options applied to every client created for a call.
func WithClientOptions(opts ...dixa.ClientOption) RegistryOption {
	return func(o *RegistryOptions) error {
		o.ClientOptions = append(o.ClientOptions, opts...)
		return nil
	}
}

// WithAllowed restricts the registry to the named tools.
func WithAllowed(names ...string) RegistryOption {
	return func(o *RegistryOptions) error {
		o.Allow = append(o.Allow, names...)
		return nil
	}
}

// WithDenied removes the named tools from the registry.
func WithDenied(names ...string) RegistryOption {
	return func(o *RegistryOptions) error {
		o.Deny = append(o.Deny, names...)
		return nil
	}
}

// WithReadOnly removes every tool that modifies data from the registry.
func WithReadOnly(readOnly bool) RegistryOption {
	return func(o *RegistryOptions) error {
		o.ReadOnly = readOnly
		return nil
	}
}

// NewRegistry returns a Registry holding every tool enabled by the options.
// Naming a tool that does not exist in the allow or deny list is a configuration error.
func NewRegistry(resolver *credentials.Resolver, opt ...RegistryOption) (*Registry, error) {
	if resolver == nil {
		return nil, fmt.Errorf("credential resolver cannot be nil")
	}

	opts := RegistryOptions{Logger: hclog.NewNullLogger()}
	for _, o := range opt {
		if o == nil {
			continue
		}
		if err := o(&opts); err != nil {
			return nil, err
		}
	}

	all := catalogue()
	known := make(map[string]Tool, len(all))
	for _, t := range all {
		known[t.Name] = t
	}

	for _, name := range slices.Concat(opts.Allow, opts.Deny) {
		if _, ok := known[name]; !ok {
			return nil, fmt.Errorf("%w: unknown tool '%s'", errors.ErrConfiguration, name)
		}
	}

	logger := opts.Logger.Named("tools")
	enabled := make(map[string]Tool, len(all))
	for name, t := range known {
		switch {
		case len(opts.Allow) > 0 && !slices.Contains(opts.Allow, name):
			continue
		case slices.Contains(opts.Deny, name):
			continue
		case opts.ReadOnly && !t.ReadOnly():
			continue
		}

		schema, err := compileSchema(t.Tool)
		if err != nil {
			return nil, err
		}
		t.schema = schema
		enabled[name] = t
	}

	logger.Debug("Tools enabled", "count", len(enabled), "total", len(known), "read_only", opts.ReadOnly)

	return &Registry{
		logger:        logger,
		resolver:      resolver,
		clientOptions: append([]dixa.ClientOption{dixa.WithLogger(opts.Logger)}, opts.ClientOptions...),
		tools:         enabled,
	}, nil
}

// Tools returns the enabled tools sorted by name.
func (r *Registry) Tools() []mcp.Tool {
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]mcp.Tool, 0, len(names))
	for _, name := range names {
		out = append(out, r.tools[name].Tool)
	}
	return out
}

// Get returns the named tool, or errors.ErrToolNotFound when it is unknown or disabled.
func (r *Registry) Get(name string) (Tool, error) {
	t, ok := r.tools[name]
	if !ok {
		return Tool{}, fmt.Errorf("%w: %s", errors.ErrToolNotFound, name)
	}
	return t, nil
}

// Call runs the named tool. apiKey takes precedence over every other credential source when non-empty.
// Bulk operations return the raw response body, with the per-item outcomes logged.
func (r *Registry) Call(ctx context.Context, name string, args map[string]any, apiKey string) (any, error) {
	t, err := r.Get(name)
	if err != nil {
		return nil, err
	}

	a := NewArguments(args)
	if err := validateArguments(t.schema, a); err != nil {
		return nil, err
	}

	key, err := r.resolver.Resolve(ctx, apiKey)
	if err != nil {
		return nil, err
	}

	client, err := dixa.NewClient(key, r.clientOptions...)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("Calling tool", "tool", name)

	res, err := t.run(ctx, client, a)
	if err != nil {
		r.logger.Warn("Tool call failed", "tool", name, "error", err)
		return nil, err
	}

	if bulk, ok := res.(*dixa.BulkResult); ok {
		succeeded, failed := bulk.Counts()
		r.logger.Info("Bulk request completed", "tool", name, "succeeded", succeeded, "failed", failed)
		return bulk.Raw, nil
	}

	return res, nil
}

// Register adds every enabled tool to the MCP server.
func (r *Registry) Register(s *server.MCPServer) {
	for _, t := range r.Tools() {
		s.AddTool(t, r.handler(t.Name))
	}
}

// handler adapts Call to the MCP tool handler signature.
// Failures are reported to the client as error results rather than protocol errors.
func (r *Registry) handler(name string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		res, err := r.Call(ctx, name, req.GetArguments(), "")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		text, err := FormatResult(res)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		return mcp.NewToolResultText(text), nil
	}
}

// FormatResult renders a call result as indented JSON.
func FormatResult(res any) (string, error) {
	b, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode result: %w", err)
	}
	return string(b), nil
}
