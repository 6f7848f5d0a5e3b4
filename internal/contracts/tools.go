package contracts

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// ToolCatalogue provides a way to discover and invoke the enabled Dixa tools.
type ToolCatalogue interface {
	// Tools returns the enabled tool definitions, sorted by name.
	Tools() []mcp.Tool

	// Call validates the arguments against the named tool's schema and invokes it.
	// A non-empty apiKey takes precedence over any other credential source.
	Call(ctx context.Context, name string, args map[string]any, apiKey string) (any, error)
}
