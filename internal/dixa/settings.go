package dixa

import (
	"context"
	"net/http"
	"net/url"
)

// SettingsService handles business hours and contact endpoints.
type SettingsService service

// BusinessHoursStatus reports whether the schedule is open now, or at timestamp when one is given (ISO 8601).
func (s *SettingsService) BusinessHoursStatus(ctx context.Context, scheduleID string, timestamp string) (any, error) {
	q := url.Values{}
	if timestamp != "" {
		q.Set("timestamp", timestamp)
	}

	return s.client.do(ctx, request{
		method: http.MethodGet,
		path:   endpoint("business-hours", "schedules", scheduleID, "status"),
		query:  q,
	})
}

// BusinessHoursSchedules lists the business hours schedules of the organization.
func (s *SettingsService) BusinessHoursSchedules(ctx context.Context) (any, error) {
	return s.client.do(ctx, request{method: http.MethodGet, path: endpoint("business-hours", "schedules")})
}

// ContactEndpoints lists the email addresses and phone numbers of the organization,
// optionally restricted to one endpoint type (e.g. "EmailEndpoint").
func (s *SettingsService) ContactEndpoints(ctx context.Context, endpointType string) (any, error) {
	q := url.Values{}
	if endpointType != "" {
		q.Set("_type", endpointType)
	}

	return s.client.do(ctx, request{method: http.MethodGet, path: endpoint("contact-endpoints"), query: q})
}

func (s *SettingsService) ContactEndpoint(ctx context.Context, contactEndpointID string) (any, error) {
	return s.client.do(ctx, request{method: http.MethodGet, path: endpoint("contact-endpoints", contactEndpointID)})
}
