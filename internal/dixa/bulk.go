package dixa

import (
	"context"
	"fmt"
)

// Discriminator values of bulk action outcomes.
const (
	bulkSuccessType = "BulkActionSuccess"
	bulkFailureType = "BulkActionFailure"
)

// BulkResult is the response of a bulk endpoint.
type BulkResult struct {
	// Outcomes holds one entry per submitted item, in request order.
	// Entries with an unrecognized _type are not represented.
	Outcomes []BulkOutcome

	// Raw is the response body exactly as decoded.
	Raw any
}

// BulkOutcome is either a BulkSuccess or a BulkFailure.
type BulkOutcome interface {
	bulkOutcome()
}

// BulkSuccess is the outcome of an item the API accepted.
type BulkSuccess struct {
	Data any
}

// BulkFailure is the outcome of an item the API rejected.
type BulkFailure struct {
	Error   any
	Message string
}

func (BulkSuccess) bulkOutcome() {}

func (BulkFailure) bulkOutcome() {}

// Counts returns how many outcomes succeeded and failed.
func (r *BulkResult) Counts() (succeeded int, failed int) {
	for _, o := range r.Outcomes {
		switch o.(type) {
		case BulkSuccess:
			succeeded++
		case BulkFailure:
			failed++
		}
	}
	return succeeded, failed
}

// doBulk issues a bulk request and decodes the per-item outcomes.
func (c *Client) doBulk(ctx context.Context, r request) (*BulkResult, error) {
	raw, err := c.do(ctx, r)
	if err != nil {
		return nil, err
	}

	res := &BulkResult{Raw: raw}

	body, ok := raw.(map[string]any)
	if !ok {
		return res, nil
	}
	items, ok := body["data"].([]any)
	if !ok {
		return res, nil
	}

	for _, item := range items {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}

		switch entry["_type"] {
		case bulkSuccessType:
			res.Outcomes = append(res.Outcomes, BulkSuccess{Data: entry["data"]})
		case bulkFailureType:
			f := BulkFailure{Error: entry["error"]}
			if e, ok := entry["error"].(map[string]any); ok {
				if msg, ok := e["message"]; ok {
					f.Message = fmt.Sprint(msg)
				}
			}
			res.Outcomes = append(res.Outcomes, f)
		}
	}

	return res, nil
}
