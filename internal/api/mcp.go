package api

import (
	"maps"

	"github.com/mark3labs/mcp-go/mcp"
)

// DomainMeta wraps mcp.Meta for API conversion.
type DomainMeta mcp.Meta

// Meta represents metadata in API responses.
type Meta map[string]any

// ToAPIType converts a domain meta to an API meta type.
// This creates a flat _meta object structure as MCP defines it.
// Returns nil when there are no additional fields, so the field can be omitted.
func (d DomainMeta) ToAPIType() (Meta, error) {
	if d.AdditionalFields == nil {
		return nil, nil
	}

	return maps.Clone(d.AdditionalFields), nil
}
