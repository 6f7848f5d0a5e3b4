package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mozilla-ai/dixa-mcp/internal/contracts"
)

const (
	// queryParamDetail is the name of the query parameter for detail level selection.
	queryParamDetail = "detail"

	// toolDetailFull returns all fields including schemas and annotations.
	toolDetailFull toolDetailLevel = "full"

	// toolDetailMinimal returns only name and title.
	toolDetailMinimal toolDetailLevel = "minimal"

	// toolDetailSummary returns name, title, and description.
	toolDetailSummary toolDetailLevel = "summary"
)

// toolDetailLevel defines the amount of information to return about tools.
type toolDetailLevel string

// ToolsRequest represents the incoming API request for listing the enabled tools.
type ToolsRequest struct {
	Detail string `doc:"Level of detail to return: minimal, summary or full (default)" example:"summary" query:"detail"`
}

// ToolCallRequest represents the incoming API request to call a tool.
type ToolCallRequest struct {
	Name string `doc:"Name of the tool to call" example:"list_agents" path:"name"`
	Body ToolCallBody
}

// ToolCallBody carries the arguments of a tool call, and optionally the API key to call Dixa with.
type ToolCallBody struct {
	Arguments map[string]any `doc:"Arguments of the tool, keyed by snake_case name" json:"arguments,omitempty"`

	// APIKey takes precedence over the Authorization header and the server's own key.
	APIKey string `doc:"Dixa API key to use for this call" json:"apiKey,omitempty"`
}

// ToolCallResponse represents the wrapped API response for calling a tool.
// The body is the decoded Dixa response.
type ToolCallResponse struct {
	Body any
}

// ToolView is a union constraint for all tool view types.
// This ensures type safety when using generic ToolsResponse.
type ToolView interface {
	ToolMinimal | ToolSummary | Tool
}

// ToolsResponseBody represents the body of a tools response.
type ToolsResponseBody[T ToolView] struct {
	Tools []T `json:"tools"`
}

// ToolsResponse represents a generic wrapped API response for tool collections.
// The type parameter T must be one of the ToolView types (ToolMinimal, ToolSummary, or Tool).
type ToolsResponse[T ToolView] struct {
	Body ToolsResponseBody[T]
}

// ToolMinimal represents minimal tool information with name and title only.
type ToolMinimal struct {
	// Name of the tool.
	Name string `doc:"Name of the tool" json:"name"`

	// Title is a human-readable and easily understood title for the tool.
	Title string `doc:"Human-readable title" json:"title,omitempty"`
}

// ToolSummary represents summary tool information including name, title, and description.
type ToolSummary struct {
	ToolMinimal

	// Description is a human-readable description of the tool.
	// Tools that modify data in Dixa say so here.
	Description string `doc:"Description of what the tool does" json:"description"`
}

// Tool represents complete tool information including the input schema and annotations.
type Tool struct {
	ToolSummary

	// InputSchema is JSONSchema defining the expected arguments for the tool.
	InputSchema *JSONSchema `doc:"Input parameters schema" json:"inputSchema,omitempty"`

	// Annotations provide optional additional tool information.
	Annotations *ToolAnnotations `doc:"Additional hints about the tool" json:"annotations,omitempty"`

	// Meta is reserved by MCP to allow clients and servers to attach additional metadata to their interactions.
	Meta Meta `doc:"Additional metadata" json:"_meta,omitempty"` //nolint:tagliatelle
}

// JSONSchema defines the structure for a JSON schema object.
type JSONSchema struct {
	// Type defines the type for this schema, e.g. "object".
	Type string `json:"type"`

	// Properties represents a property name and associated object definition.
	Properties map[string]any `json:"properties,omitempty"`

	// Required lists the (keys of) Properties that are required.
	Required []string `json:"required,omitempty"`
}

// ToolAnnotations provides additional properties describing a Tool to clients.
// NOTE: all properties in ToolAnnotations are **hints**.
type ToolAnnotations struct {
	// Title is a human-readable title for the tool.
	Title *string `json:"title,omitempty"`

	// ReadOnlyHint if true, the tool never modifies data in Dixa.
	ReadOnlyHint *bool `json:"readOnlyHint,omitempty"`

	// DestructiveHint if true, the tool may delete or overwrite data in Dixa.
	// Only meaningful when ReadOnlyHint is false.
	DestructiveHint *bool `json:"destructiveHint,omitempty"`

	// IdempotentHint if true, repeating the call with the same arguments has no additional effect.
	// Only meaningful when ReadOnlyHint is false.
	IdempotentHint *bool `json:"idempotentHint,omitempty"`

	// OpenWorldHint if true, the tool reaches outside the process (every Dixa tool does).
	OpenWorldHint *bool `json:"openWorldHint,omitempty"`
}

// domainTool wraps mcp.Tool for conversion to Tool via ToAPIType.
type domainTool mcp.Tool

// domainToolMinimal wraps Tool for projection to ToolMinimal via ToAPIType.
type domainToolMinimal Tool

// domainToolSummary wraps Tool for projection to ToolSummary via ToAPIType.
type domainToolSummary Tool

// Normalize handles case-insensitivity and trimming, providing a safe default.
func (t toolDetailLevel) Normalize() toolDetailLevel {
	normalized := toolDetailLevel(strings.ToLower(strings.TrimSpace(string(t))))
	switch normalized {
	case toolDetailMinimal, toolDetailSummary, toolDetailFull:
		return normalized
	default:
		return toolDetailFull // Safe default.
	}
}

// ToAPIType converts a wrapped domain type to Tool.
func (d domainTool) ToAPIType() (Tool, error) {
	annotations := &ToolAnnotations{
		Title:           &d.Annotations.Title,
		ReadOnlyHint:    d.Annotations.ReadOnlyHint,
		DestructiveHint: d.Annotations.DestructiveHint,
		IdempotentHint:  d.Annotations.IdempotentHint,
		OpenWorldHint:   d.Annotations.OpenWorldHint,
	}
	if annotations.IsZero() {
		annotations = nil
	}

	var meta Meta
	if d.Meta != nil {
		m, err := DomainMeta(*d.Meta).ToAPIType()
		if err != nil {
			return Tool{}, err
		}
		meta = m
	}

	return Tool{
		ToolSummary: ToolSummary{
			ToolMinimal: ToolMinimal{
				Name:  d.Name,
				Title: d.Annotations.Title,
			},
			Description: d.Description,
		},
		InputSchema: &JSONSchema{
			Type:       d.InputSchema.Type,
			Properties: d.InputSchema.Properties,
			Required:   d.InputSchema.Required,
		},
		Annotations: annotations,
		Meta:        meta,
	}, nil
}

// ToAPIType projects Tool to ToolMinimal.
func (t domainToolMinimal) ToAPIType() (ToolMinimal, error) {
	return ToolMinimal{
		Name:  t.Name,
		Title: t.Title,
	}, nil
}

// ToAPIType projects Tool to ToolSummary.
func (t domainToolSummary) ToAPIType() (ToolSummary, error) {
	minimal, err := domainToolMinimal(t).ToAPIType()
	if err != nil {
		return ToolSummary{}, err
	}

	return ToolSummary{
		ToolMinimal: minimal,
		Description: t.Description,
	}, nil
}

// IsZero reports whether the ToolAnnotations struct has no meaningful values set.
func (a *ToolAnnotations) IsZero() bool {
	if a == nil {
		return true
	}

	if a.Title != nil && *a.Title != "" {
		return false
	}

	return a.ReadOnlyHint == nil && a.DestructiveHint == nil && a.IdempotentHint == nil && a.OpenWorldHint == nil
}

// RegisterToolRoutes sets up the routes to list and call the enabled tools.
func RegisterToolRoutes(routerAPI huma.API, catalogue contracts.ToolCatalogue, apiPathPrefix string) {
	toolsAPI := huma.NewGroup(routerAPI, apiPathPrefix)
	tags := []string{"Tools"}

	huma.Register(
		toolsAPI,
		huma.Operation{
			OperationID: "listTools",
			Method:      http.MethodGet,
			Summary:     "List tools",
			Description: "Returns the enabled tools with configurable detail level via ?detail= query parameter (minimal, summary, full)",
			Tags:        tags,
		},
		func(ctx context.Context, _ *ToolsRequest) (*ToolsResponse[Tool], error) {
			return handleTools(catalogue)
		},
	)

	huma.Register(
		toolsAPI,
		huma.Operation{
			OperationID: "callTool",
			Method:      http.MethodPost,
			Path:        "/{name}",
			Summary:     "Call a tool",
			Description: "Validates the arguments against the tool's input schema, then calls Dixa. " +
				"The API key is taken from the body, then the Authorization header, then the server configuration.",
			Tags: tags,
		},
		func(ctx context.Context, input *ToolCallRequest) (*ToolCallResponse, error) {
			return handleToolCall(ctx, catalogue, input.Name, input.Body)
		},
	)
}

// handleTools returns the full definitions of the enabled tools.
func handleTools(catalogue contracts.ToolCatalogue) (*ToolsResponse[Tool], error) {
	mcpTools := catalogue.Tools()
	wrapped := make([]domainTool, 0, len(mcpTools))
	for _, t := range mcpTools {
		wrapped = append(wrapped, domainTool(t))
	}

	tools, err := convertAll[Tool](wrapped)
	if err != nil {
		return nil, err
	}

	resp := &ToolsResponse[Tool]{}
	resp.Body.Tools = tools

	return resp, nil
}

// handleToolCall calls a tool, classifying any failure through the HeaderErrorType response header.
func handleToolCall(
	ctx context.Context,
	catalogue contracts.ToolCatalogue,
	name string,
	body ToolCallBody,
) (*ToolCallResponse, error) {
	result, err := catalogue.Call(ctx, name, body.Arguments, body.APIKey)
	if err != nil {
		return nil, huma.ErrorWithHeaders(err, http.Header{
			HeaderErrorType: []string{string(errorTypeOf(err))},
		})
	}

	resp := &ToolCallResponse{}
	resp.Body = result

	return resp, nil
}

// toolFieldSelectTransformer transforms tool responses based on the detail query parameter.
// It filters the response to return only the requested level of detail: minimal, summary, or full.
func toolFieldSelectTransformer(ctx huma.Context, _ string, v any) (any, error) {
	detail := toolDetailLevel(ctx.Query(queryParamDetail)).Normalize()
	if detail == toolDetailFull {
		return v, nil
	}

	// Huma passes the Body field to transformers, not the full response.
	body, ok := v.(ToolsResponseBody[Tool])
	if !ok {
		return v, nil // Not our type, pass through.
	}

	switch detail {
	case toolDetailMinimal:
		wrapped := make([]domainToolMinimal, len(body.Tools))
		for i, t := range body.Tools {
			wrapped[i] = domainToolMinimal(t)
		}
		minimal, err := convertAll[ToolMinimal](wrapped)
		if err != nil {
			return nil, err
		}
		return ToolsResponseBody[ToolMinimal]{Tools: minimal}, nil

	case toolDetailSummary:
		wrapped := make([]domainToolSummary, len(body.Tools))
		for i, t := range body.Tools {
			wrapped[i] = domainToolSummary(t)
		}
		summary, err := convertAll[ToolSummary](wrapped)
		if err != nil {
			return nil, err
		}
		return ToolsResponseBody[ToolSummary]{Tools: summary}, nil

	default:
		return v, nil
	}
}
