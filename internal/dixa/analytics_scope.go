package dixa

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Filter is a single analytics filter, e.g. {"attribute": "channel", "values": ["email"]}.
// Filters are forwarded to the API unchanged.
type Filter = map[string]any

// Scope selects which conversations an analytics query covers.
// It is one of PeriodScope, CsidScope or FiltersScope.
type Scope interface {
	apply(b *analyticsBody)
}

// PeriodScope covers a time period. At least one filter is required alongside it.
type PeriodScope struct {
	Period  any
	Filters []Filter
}

// CsidScope covers an explicit list of conversation IDs, optionally narrowed by filters.
type CsidScope struct {
	Csids   []any
	Filters []Filter
}

// FiltersScope covers whatever matches the filters.
type FiltersScope struct {
	Filters []Filter
}

// ScopeInput holds the raw scope arguments of an analytics query.
// Each field accepts either its structured form or the same value encoded as a JSON string.
type ScopeInput struct {
	Period  any `mapstructure:"period_filter"`
	Csids   any `mapstructure:"csid_filter"`
	Filters any `mapstructure:"filters"`
}

// scopeParts is a ScopeInput after decoding and cleaning.
type scopeParts struct {
	period  any
	csids   []any
	filters []Filter
}

func (s PeriodScope) apply(b *analyticsBody) {
	b.PeriodFilter = s.Period
	b.Filters = s.Filters
}

func (s CsidScope) apply(b *analyticsBody) {
	b.CsidFilter = s.Csids
	b.Filters = s.Filters
}

func (s FiltersScope) apply(b *analyticsBody) {
	b.Filters = s.Filters
}

// BuildScope decodes the scope arguments and selects the scope variant.
//
// Filter entries without an attribute or with an empty values list are dropped.
// A period takes precedence over conversation IDs and then requires at least one filter.
// At least one of the three inputs must remain after cleaning.
func BuildScope(in ScopeInput) (Scope, error) {
	parts, err := in.parts()
	if err != nil {
		return nil, err
	}

	switch {
	case parts.period != nil:
		if len(parts.filters) == 0 {
			return nil, validationError(
				"when using period_filter, at least one filter in the filters array is required, " +
					"use the prepare query tools to discover available filter attributes and values",
			)
		}
		return PeriodScope{Period: parts.period, Filters: parts.filters}, nil
	case len(parts.csids) > 0:
		return CsidScope{Csids: parts.csids, Filters: parts.filters}, nil
	case len(parts.filters) > 0:
		return FiltersScope{Filters: parts.filters}, nil
	default:
		return nil, validationError(
			"at least one of period_filter, csid_filter, or filters must be provided, period_filter is the preferred option",
		)
	}
}

// lenientScope selects the scope variant like BuildScope without enforcing its requirements.
// It returns nil when no input is usable.
func (in ScopeInput) lenientScope() (Scope, error) {
	parts, err := in.parts()
	if err != nil {
		return nil, err
	}

	switch {
	case parts.period != nil:
		return PeriodScope{Period: parts.period, Filters: parts.filters}, nil
	case len(parts.csids) > 0:
		return CsidScope{Csids: parts.csids, Filters: parts.filters}, nil
	case len(parts.filters) > 0:
		return FiltersScope{Filters: parts.filters}, nil
	default:
		return nil, nil
	}
}

func (in ScopeInput) parts() (scopeParts, error) {
	var parts scopeParts

	period, err := decodeFlexible("period_filter", in.Period)
	if err != nil {
		return parts, err
	}
	switch p := period.(type) {
	case nil:
	case map[string]any:
		if len(p) > 0 {
			parts.period = p
		}
	default:
		return parts, validationError("period_filter must be an object")
	}

	csids, err := decodeFlexible("csid_filter", in.Csids)
	if err != nil {
		return parts, err
	}
	if list, ok := csids.([]any); ok {
		parts.csids = list
	}

	filters, err := decodeFlexible("filters", in.Filters)
	if err != nil {
		return parts, err
	}
	if list, ok := filters.([]any); ok {
		parts.filters = cleanFilters(list)
	}

	return parts, nil
}

// cleanFilters keeps the filter objects that name an attribute and carry a non-empty values list.
func cleanFilters(list []any) []Filter {
	var out []Filter
	for _, item := range list {
		f, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if _, ok := f["attribute"]; !ok {
			continue
		}
		if values, ok := f["values"].([]any); !ok || len(values) == 0 {
			continue
		}
		out = append(out, f)
	}
	return out
}

// decodeFlexible returns v unchanged, unless it is a string in which case it is decoded as JSON.
// Empty strings are treated as absent.
func decodeFlexible(name string, v any) (any, error) {
	s, ok := v.(string)
	if !ok {
		return normalizeJSON(v)
	}

	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()

	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, validationError("%s is not valid JSON: %s", name, err)
	}

	return out, nil
}

// normalizeJSON round-trips structured values through JSON, so typed slices and maps
// (e.g. []int or []string nested in a filter) are seen as []any and map[string]any.
func normalizeJSON(v any) (any, error) {
	if v == nil {
		return nil, nil
	}

	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode analytics argument: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode analytics argument: %w", err)
	}

	return out, nil
}
