package dixa

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/iancoleman/strcase"
)

// Page selects a page of a paginated listing.
// Both fields are optional; an unset field is not sent.
type Page struct {
	// Key is the opaque pagination key returned by a previous response.
	Key string `mapstructure:"page_key"`

	// Limit is the maximum number of results per page.
	Limit *int `mapstructure:"page_limit"`
}

// Extra holds additional body fields that are merged into a request payload as-is.
// Keys are converted to lowerCamelCase, so both "display_order" and "displayOrder" become "displayOrder".
type Extra map[string]any

func (p Page) values() url.Values {
	q := url.Values{}
	p.apply(q)
	return q
}

func (p Page) apply(q url.Values) {
	if p.Key != "" {
		q.Set("pageKey", p.Key)
	}
	if p.Limit != nil {
		q.Set("pageLimit", strconv.Itoa(*p.Limit))
	}
}

// merge returns body with the extra fields layered on top of it.
// Extra fields win over typed fields with the same wire name.
func (e Extra) merge(body any) (map[string]any, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	merged := map[string]any{}
	if err := json.Unmarshal(b, &merged); err != nil {
		return nil, fmt.Errorf("failed to build request body: %w", err)
	}

	for k, v := range e {
		merged[strcase.ToLowerCamel(k)] = v
	}

	return merged, nil
}

// agentIDs is the {"agentIds": [...]} body used by team and queue membership endpoints.
type agentIDs struct {
	AgentIDs []string `json:"agentIds"`
}

// bulk wraps a list of items in the {"data": [...]} envelope used by bulk endpoints.
type bulk[T any] struct {
	Data []T `json:"data"`
}
