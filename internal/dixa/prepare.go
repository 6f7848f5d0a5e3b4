package dixa

import (
	"context"
)

// FilterOption describes a filter attribute together with the values it accepts.
type FilterOption struct {
	Attribute   string `json:"attribute"`
	Description any    `json:"description"`
	Values      any    `json:"values"`
}

// MetricQueryGuide gathers everything needed to build a MetricQuery for one metric.
type MetricQueryGuide struct {
	MetricID              string         `json:"metric_id"`
	Description           any            `json:"description"`
	AvailableFilters      []FilterOption `json:"available_filters"`
	AvailableAggregations any            `json:"available_aggregations"`
	RelatedRecordIDs      any            `json:"related_record_ids"`
}

// RecordQueryGuide gathers everything needed to build a RecordQuery for one record.
type RecordQueryGuide struct {
	RecordID         string         `json:"record_id"`
	Description      any            `json:"description"`
	AvailableFilters []FilterOption `json:"available_filters"`
	FieldsMetadata   any            `json:"fields_metadata"`
	RelatedMetricIDs any            `json:"related_metric_ids"`
}

// PrepareMetricQuery returns the metrics catalogue when metricID is empty.
// Otherwise it returns the metric description combined with the values of each of its filter attributes.
func (s *AnalyticsService) PrepareMetricQuery(ctx context.Context, metricID string, page Page) (any, error) {
	if metricID == "" {
		return s.MetricsCatalogue(ctx, page)
	}

	desc, err := s.MetricDescription(ctx, metricID)
	if err != nil {
		return nil, err
	}

	data := dataOf(desc)
	filters, err := s.filterOptions(ctx, data)
	if err != nil {
		return nil, err
	}

	return MetricQueryGuide{
		MetricID:              metricID,
		Description:           valueOr(data, "description", ""),
		AvailableFilters:      filters,
		AvailableAggregations: valueOr(data, "aggregations", []any{}),
		RelatedRecordIDs:      valueOr(data, "relatedRecordIds", []any{}),
	}, nil
}

// PrepareRecordQuery returns the records catalogue when recordID is empty.
// Otherwise it returns the record description combined with the values of each of its filter attributes.
func (s *AnalyticsService) PrepareRecordQuery(ctx context.Context, recordID string, page Page) (any, error) {
	if recordID == "" {
		return s.RecordsCatalogue(ctx, page)
	}

	desc, err := s.RecordDescription(ctx, recordID)
	if err != nil {
		return nil, err
	}

	data := dataOf(desc)
	filters, err := s.filterOptions(ctx, data)
	if err != nil {
		return nil, err
	}

	return RecordQueryGuide{
		RecordID:         recordID,
		Description:      valueOr(data, "description", ""),
		AvailableFilters: filters,
		FieldsMetadata:   valueOr(data, "fieldsMetadata", []any{}),
		RelatedMetricIDs: valueOr(data, "relatedMetricIds", []any{}),
	}, nil
}

// filterOptions looks up the values of every filter attribute listed in a description, one attribute at a time.
// An attribute whose values cannot be fetched is reported with an empty values list.
func (s *AnalyticsService) filterOptions(ctx context.Context, data map[string]any) ([]FilterOption, error) {
	options := []FilterOption{}

	filters, _ := data["filters"].([]any)
	for _, item := range filters {
		info, ok := item.(map[string]any)
		if !ok {
			continue
		}
		attr, _ := info["filterAttribute"].(string)
		if attr == "" {
			continue
		}

		// Cancellation aborts the whole guide instead of degrading to empty value lists.
		if err := ctx.Err(); err != nil {
			return nil, &TransportError{Err: err}
		}

		opt := FilterOption{
			Attribute:   attr,
			Description: valueOr(info, "description", ""),
			Values:      []any{},
		}

		values, err := s.FilterValues(ctx, attr, Page{})
		if err != nil {
			s.client.logger.Debug("Filter values unavailable", "attribute", attr, "error", err)
		} else if m, ok := values.(map[string]any); ok {
			opt.Values = valueOr(m, "data", []any{})
		}

		options = append(options, opt)
	}

	return options, nil
}

// dataOf returns the "data" object of a response body, or an empty map.
func dataOf(body any) map[string]any {
	if m, ok := body.(map[string]any); ok {
		if data, ok := m["data"].(map[string]any); ok {
			return data
		}
	}
	return map[string]any{}
}

func valueOr(m map[string]any, key string, fallback any) any {
	if v, ok := m[key]; ok {
		return v
	}
	return fallback
}
