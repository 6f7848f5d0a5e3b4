package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/mozilla-ai/dixa-mcp/internal/contracts"
)

// HealthStatusOK is reported whenever the server is able to answer requests.
const HealthStatusOK HealthStatus = "ok"

// HealthStatus represents the current status of the server.
type HealthStatus string

// HealthResponse is the response for GET /health.
type HealthResponse struct {
	Body struct {
		Status HealthStatus `doc:"Status of the server"    example:"ok" json:"status"`
		Tools  int          `doc:"Number of enabled tools" example:"42" json:"tools"`
	}
}

// RegisterHealthRoutes sets up health-related API endpoint routes.
// The check is local only: it never calls Dixa, so it needs no API key.
func RegisterHealthRoutes(routerAPI huma.API, catalogue contracts.ToolCatalogue, apiPathPrefix string) {
	healthAPI := huma.NewGroup(routerAPI, apiPathPrefix)
	tags := []string{"Health"}

	huma.Register(
		healthAPI,
		huma.Operation{
			OperationID: "getHealth",
			Method:      http.MethodGet,
			Summary:     "Get the health status of the server",
			Tags:        tags,
		},
		func(ctx context.Context, _ *struct{}) (*HealthResponse, error) {
			return handleHealth(catalogue)
		},
	)
}

func handleHealth(catalogue contracts.ToolCatalogue) (*HealthResponse, error) {
	resp := &HealthResponse{}
	resp.Body.Status = HealthStatusOK
	resp.Body.Tools = len(catalogue.Tools())

	return resp, nil
}
