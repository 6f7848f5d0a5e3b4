package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mozilla-ai/dixa-mcp/internal/dixa"
)

const (
	periodFilterDescription = `Time period to cover, as an object or the same object encoded as a JSON string. ` +
		`Preset: {"_type": "Preset", "value": {"_type": "PreviousWeek"}}. ` +
		`Interval: {"_type": "Interval", "start": "2025-01-01T00:00:00Z", "end": "2025-01-31T23:59:59Z"}. ` +
		`Takes precedence over csid_filter, and requires at least one filter.`

	csidFilterDescription = `Conversation IDs to cover, e.g. [12345, 12346]. Only used when period_filter is absent.`

	filtersDescription = `Filters to apply, e.g. [{"attribute": "channel", "values": ["email"]}]. ` +
		`Entries with an empty values list are dropped. Required with period_filter, optional with csid_filter, ` +
		`and may be used alone.`

	timezoneDescription = `IANA timezone name, e.g. "Europe/Copenhagen" or "UTC"`
)

// scope adds the analytics scope arguments. At least one of them must be supplied on a first query.
func scope(opts ...mcp.ToolOption) []mcp.ToolOption {
	return append(opts,
		withFlexible("period_filter", "object", mcp.Description(periodFilterDescription)),
		withFlexible("csid_filter", "array", mcp.Description(csidFilterDescription)),
		withFlexible("filters", "array", mcp.Description(filtersDescription)),
	)
}

func analyticsTools() []Tool {
	return []Tool{
		query(
			"prepare_analytics_metric_query",
			"Prepare analytics metric query",
			"Step 1 of every aggregated analytics question. Without metric_id, lists the available metric IDs. "+
				"With metric_id, returns the metric description, every filter attribute with its valid values, "+
				"the available aggregations and the related record IDs: everything needed to call fetch_aggregated_data.",
			func(ctx context.Context, c *dixa.Client, a Arguments) (any, error) {
				var page dixa.Page
				if err := a.DecodeInto(&page); err != nil {
					return nil, err
				}
				return c.Analytics.PrepareMetricQuery(ctx, a.String("metric_id"), page)
			},
			paging(mcp.WithString("metric_id", mcp.Description("Metric to prepare a query for, e.g. closed_conversations")))...,
		),
		query(
			"prepare_analytics_record_query",
			"Prepare analytics record query",
			"Without record_id, lists the available record IDs. With record_id, returns the record description, "+
				"every filter attribute with its valid values, the fields metadata and the related metric IDs: "+
				"everything needed to call fetch_unaggregated_data.",
			func(ctx context.Context, c *dixa.Client, a Arguments) (any, error) {
				var page dixa.Page
				if err := a.DecodeInto(&page); err != nil {
					return nil, err
				}
				return c.Analytics.PrepareRecordQuery(ctx, a.String("record_id"), page)
			},
			paging(mcp.WithString("record_id", mcp.Description("Record to prepare a query for, e.g. closed_conversations")))...,
		),
		query(
			"fetch_aggregated_data",
			"Fetch aggregated analytics data",
			"Get aggregated (summary) data of a metric, such as counts, percentages or averages. "+
				"Call prepare_analytics_metric_query first to discover valid filters and aggregations. "+
				"Always try this tool before fetch_unaggregated_data: most questions are answered by aggregates. "+
				"For per-group metrics, Count is the number of groups, not the number of underlying items.",
			func(ctx context.Context, c *dixa.Client, a Arguments) (any, error) {
				var q dixa.MetricQuery
				if err := a.DecodeInto(&q); err != nil {
					return nil, err
				}
				return c.Analytics.MetricData(ctx, q)
			},
			scope(
				id("metric_id", "Metric to query, as listed by prepare_analytics_metric_query"),
				mcp.WithString("timezone", mcp.Required(), mcp.Description(timezoneDescription)),
				withFlexible("aggregations", "array", mcp.Description(`Aggregations to compute, e.g. ["Count", "Percentage"]`)),
			)...,
		),
		query(
			"fetch_unaggregated_data",
			"Fetch unaggregated analytics data",
			"Get individual records of a metric. Only use this when fetch_aggregated_data cannot answer the question. "+
				"Call prepare_analytics_record_query first to discover valid filters. "+
				fmt.Sprintf(
					"The first page accepts page_limit between %d and %d. ",
					dixa.MinRecordsPageLimit,
					dixa.MaxRecordsPageLimit,
				)+
				"To fetch the next page, repeat the same arguments with the page_key of the previous response.",
			func(ctx context.Context, c *dixa.Client, a Arguments) (any, error) {
				var q dixa.RecordQuery
				if err := a.DecodeInto(&q); err != nil {
					return nil, err
				}
				return c.Analytics.RecordsData(ctx, q)
			},
			paging(scope(
				id("record_id", "Record to query, as listed by prepare_analytics_record_query"),
				mcp.WithString("timezone", mcp.Required(), mcp.Description(timezoneDescription)),
			)...)...,
		),
	}
}
