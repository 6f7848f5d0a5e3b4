package dixa

import (
	"context"
	"fmt"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Page size bounds for the first page of unaggregated records.
const (
	MinRecordsPageLimit = 1
	MaxRecordsPageLimit = 300
)

// AnalyticsService handles the analytics metrics and records endpoints.
type AnalyticsService service

// MetricQuery requests aggregated data of a metric.
type MetricQuery struct {
	ScopeInput `mapstructure:",squash"`

	MetricID string `mapstructure:"metric_id"`
	Timezone string `mapstructure:"timezone"`

	// Aggregations is a list of aggregation names, or the same list encoded as a JSON string.
	Aggregations any `mapstructure:"aggregations"`
}

// RecordQuery requests unaggregated records of a metric.
// When Page.Key is set the scope requirements are not enforced, since the key encodes the original query.
type RecordQuery struct {
	ScopeInput `mapstructure:",squash"`
	Page       `mapstructure:",squash"`

	RecordID string `mapstructure:"record_id"`
	Timezone string `mapstructure:"timezone"`
}

type analyticsBody struct {
	ID           string   `json:"id"`
	Timezone     string   `json:"timezone"`
	PeriodFilter any      `json:"periodFilter,omitempty"`
	CsidFilter   []any    `json:"csidFilter,omitempty"`
	Filters      []Filter `json:"filters,omitempty"`
	Aggregations []any    `json:"aggregations,omitempty"`
}

func (q MetricQuery) Validate() error {
	return validation.Errors{
		"metric_id": validation.Validate(q.MetricID, validation.Required),
		"timezone":  validation.Validate(q.Timezone, validation.Required),
	}.Filter()
}

func (q RecordQuery) Validate() error {
	errs := validation.Errors{
		"record_id": validation.Validate(q.RecordID, validation.Required),
		"timezone":  validation.Validate(q.Timezone, validation.Required),
	}

	if q.Key == "" && q.Limit != nil {
		n := *q.Limit
		errs["page_limit"] = validation.Validate(n,
			validation.Min(MinRecordsPageLimit).Error(
				fmt.Sprintf("must be at least %d, but got %d", MinRecordsPageLimit, n),
			),
			validation.Max(MaxRecordsPageLimit).Error(
				fmt.Sprintf(
					"must be at most %d, but got %d, use pagination with page_key instead of requesting large page sizes",
					MaxRecordsPageLimit,
					n,
				),
			),
		)
	}

	return errs.Filter()
}

// FilterValues lists the values accepted by a filter attribute.
func (s *AnalyticsService) FilterValues(ctx context.Context, attribute string, page Page) (any, error) {
	return s.client.do(ctx, request{
		method: http.MethodGet,
		path:   endpoint("analytics", "filter", attribute),
		query:  page.values(),
	})
}

// MetricsCatalogue lists the metric IDs that can be queried.
func (s *AnalyticsService) MetricsCatalogue(ctx context.Context, page Page) (any, error) {
	return s.client.do(ctx, request{method: http.MethodGet, path: endpoint("analytics", "metrics"), query: page.values()})
}

// MetricDescription returns the filters and aggregations available for a metric.
func (s *AnalyticsService) MetricDescription(ctx context.Context, metricID string) (any, error) {
	return s.client.do(ctx, request{method: http.MethodGet, path: endpoint("analytics", "metrics", metricID)})
}

// MetricData fetches aggregated metric data.
func (s *AnalyticsService) MetricData(ctx context.Context, q MetricQuery) (any, error) {
	if err := validate(q); err != nil {
		return nil, err
	}

	scope, err := BuildScope(q.ScopeInput)
	if err != nil {
		return nil, err
	}

	aggregations, err := decodeFlexible("aggregations", q.Aggregations)
	if err != nil {
		return nil, err
	}

	body := analyticsBody{ID: q.MetricID, Timezone: q.Timezone}
	scope.apply(&body)

	switch a := aggregations.(type) {
	case nil:
	case []any:
		body.Aggregations = a
	default:
		return nil, validationError("aggregations must be an array")
	}

	s.client.logger.Debug("Fetching metric data", "metric", q.MetricID, "scope", fmt.Sprintf("%T", scope))

	return s.client.do(ctx, request{method: http.MethodPost, path: endpoint("analytics", "metrics"), body: body})
}

// RecordsCatalogue lists the record IDs that can be queried.
func (s *AnalyticsService) RecordsCatalogue(ctx context.Context, page Page) (any, error) {
	return s.client.do(ctx, request{method: http.MethodGet, path: endpoint("analytics", "records"), query: page.values()})
}

// RecordDescription returns the filters and fields available for a record.
func (s *AnalyticsService) RecordDescription(ctx context.Context, recordID string) (any, error) {
	return s.client.do(ctx, request{method: http.MethodGet, path: endpoint("analytics", "records", recordID)})
}

// RecordsData fetches unaggregated records. Subsequent pages repeat the same body with the page key as a query parameter.
func (s *AnalyticsService) RecordsData(ctx context.Context, q RecordQuery) (any, error) {
	if err := validate(q); err != nil {
		return nil, err
	}

	var scope Scope
	var err error
	if q.Key == "" {
		scope, err = BuildScope(q.ScopeInput)
	} else {
		scope, err = q.ScopeInput.lenientScope()
	}
	if err != nil {
		return nil, err
	}

	body := analyticsBody{ID: q.RecordID, Timezone: q.Timezone}
	if scope != nil {
		scope.apply(&body)
	}

	s.client.logger.Debug("Fetching records data", "record", q.RecordID, "paged", q.Key != "")

	return s.client.do(ctx, request{
		method: http.MethodPost,
		path:   endpoint("analytics", "records"),
		query:  q.Page.values(),
		body:   body,
	})
}
