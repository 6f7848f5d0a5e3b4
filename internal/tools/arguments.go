package tools

import (
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/mozilla-ai/dixa-mcp/internal/errors"
)

// Arguments holds the arguments of a single tool call, keyed by their snake_case names.
type Arguments map[string]any

// NewArguments copies args, dropping every argument whose value is null.
// MCP clients commonly send null for optional arguments they do not use.
func NewArguments(args map[string]any) Arguments {
	out := make(Arguments, len(args))
	for k, v := range args {
		if v == nil {
			continue
		}
		out[k] = v
	}
	return out
}

// String returns the named string argument, or "" when it is absent.
func (a Arguments) String(name string) string {
	s, _ := a[name].(string)
	return s
}

// Bool returns the named boolean argument, or false when it is absent.
func (a Arguments) Bool(name string) bool {
	b, _ := a[name].(bool)
	return b
}

// OptionalBool returns the named boolean argument, or nil when it is absent.
func (a Arguments) OptionalBool(name string) *bool {
	b, ok := a[name].(bool)
	if !ok {
		return nil
	}
	return &b
}

// Decode decodes the named argument into target. An absent argument leaves target untouched.
func (a Arguments) Decode(name string, target any) error {
	v, ok := a[name]
	if !ok {
		return nil
	}
	if err := decode(v, target); err != nil {
		return fmt.Errorf("%w: invalid argument '%s': %w", errors.ErrValidation, name, err)
	}
	return nil
}

// DecodeInto decodes every argument into the mapstructure tagged fields of target.
// Arguments without a matching field are ignored.
func (a Arguments) DecodeInto(target any) error {
	if err := decode(map[string]any(a), target); err != nil {
		return fmt.Errorf("%w: invalid arguments: %w", errors.ErrValidation, err)
	}
	return nil
}

func decode(input any, target any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  target,
		TagName: "mapstructure",
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}
