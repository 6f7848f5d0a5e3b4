package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// ToolsConfigSection restricts which tools are exposed to MCP and REST clients.
//
// A tool is exposed when it is in Allow (or Allow is empty), is not in Deny,
// and is read-only whenever ReadOnly is set.
type ToolsConfigSection struct {
	// Allow lists the only tools to expose. Empty means all tools.
	Allow []string `json:"allow,omitempty" toml:"allow,omitempty" yaml:"allow,omitempty"`

	// Deny lists tools that are never exposed.
	Deny []string `json:"deny,omitempty" toml:"deny,omitempty" yaml:"deny,omitempty"`

	// ReadOnly hides every tool that modifies data.
	// Maps to CLI flag --read-only
	ReadOnly *bool `json:"readOnly,omitempty" toml:"read_only,omitempty" yaml:"read_only,omitempty"`
}

// Validate implements Validator for ToolsConfigSection.
func (t *ToolsConfigSection) Validate() error {
	var result *multierror.Error

	for _, name := range t.Allow {
		if strings.TrimSpace(name) == "" {
			result = multierror.Append(result, fmt.Errorf("allowed tool name cannot be empty"))
			continue
		}
		if slices.Contains(t.Deny, name) {
			result = multierror.Append(result, fmt.Errorf("tool '%s' is both allowed and denied", name))
		}
	}

	for _, name := range t.Deny {
		if strings.TrimSpace(name) == "" {
			result = multierror.Append(result, fmt.Errorf("denied tool name cannot be empty"))
		}
	}

	return result.ErrorOrNil()
}

// ReadOnlyOrDefault returns the configured read-only flag, or defaultReadOnly when unset.
func (t *ToolsConfigSection) ReadOnlyOrDefault(defaultReadOnly bool) bool {
	if t == nil || t.ReadOnly == nil {
		return defaultReadOnly
	}
	return *t.ReadOnly
}
