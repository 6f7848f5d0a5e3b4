package tools

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/xeipuuv/gojsonschema"

	"github.com/mozilla-ai/dixa-mcp/internal/errors"
)

// compileSchema compiles the input schema of an MCP tool.
func compileSchema(t mcp.Tool) (*gojsonschema.Schema, error) {
	raw, err := json.Marshal(t.InputSchema)
	if err != nil {
		return nil, fmt.Errorf("failed to encode input schema of tool '%s': %w", t.Name, err)
	}

	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("invalid input schema of tool '%s': %w", t.Name, err)
	}

	return schema, nil
}

// validateArguments checks args against schema and reports every violation in a single validation error.
func validateArguments(schema *gojsonschema.Schema, args Arguments) error {
	result, err := schema.Validate(gojsonschema.NewGoLoader(map[string]any(args)))
	if err != nil {
		return fmt.Errorf("%w: failed to validate arguments: %w", errors.ErrValidation, err)
	}

	if result.Valid() {
		return nil
	}

	problems := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		problems = append(problems, e.String())
	}

	return fmt.Errorf("%w: %s", errors.ErrValidation, strings.Join(problems, "; "))
}

// withInteger adds an integer property to the input schema.
// mcp.WithNumber only produces "number", which would accept fractional page sizes.
func withInteger(name string, opts ...mcp.PropertyOption) mcp.ToolOption {
	return withProperty(name, map[string]any{"type": "integer"}, opts...)
}

// withFlexible adds a property that accepts its structured JSON type, or the same value encoded as a JSON string.
func withFlexible(name string, jsonType string, opts ...mcp.PropertyOption) mcp.ToolOption {
	return withProperty(name, map[string]any{"type": []string{jsonType, "string"}}, opts...)
}

// withStringArray adds an array of strings property to the input schema.
func withStringArray(name string, opts ...mcp.PropertyOption) mcp.ToolOption {
	return withProperty(name, map[string]any{
		"type":  "array",
		"items": map[string]any{"type": "string"},
	}, opts...)
}

// withObjectArray adds an array of objects property to the input schema.
func withObjectArray(name string, opts ...mcp.PropertyOption) mcp.ToolOption {
	return withProperty(name, map[string]any{
		"type":  "array",
		"items": map[string]any{"type": "object"},
	}, opts...)
}

func withProperty(name string, schema map[string]any, opts ...mcp.PropertyOption) mcp.ToolOption {
	return func(t *mcp.Tool) {
		for _, opt := range opts {
			opt(schema)
		}

		if required, ok := schema["required"].(bool); ok {
			delete(schema, "required")
			if required {
				t.InputSchema.Required = append(t.InputSchema.Required, name)
			}
		}

		t.InputSchema.Properties[name] = schema
	}
}
