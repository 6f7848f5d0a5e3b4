package dixa

import (
	"context"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// TeamsService handles teams and their members.
type TeamsService service

type teamName struct {
	Name string `json:"name"`
}

func (s *TeamsService) List(ctx context.Context) (any, error) {
	return s.client.do(ctx, request{method: http.MethodGet, path: endpoint("teams")})
}

func (s *TeamsService) Get(ctx context.Context, teamID string) (any, error) {
	return s.client.do(ctx, request{method: http.MethodGet, path: endpoint("teams", teamID)})
}

// Agents lists the members of a team.
func (s *TeamsService) Agents(ctx context.Context, teamID string) (any, error) {
	return s.client.do(ctx, request{method: http.MethodGet, path: endpoint("teams", teamID, "agents")})
}

// Presence returns the presence status of the members of a team.
func (s *TeamsService) Presence(ctx context.Context, teamID string, page Page) (any, error) {
	return s.client.do(ctx, request{
		method: http.MethodGet,
		path:   endpoint("teams", teamID, "presence"),
		query:  page.values(),
	})
}

func (s *TeamsService) Create(ctx context.Context, name string) (any, error) {
	if err := validation.Validate(name, validation.Required); err != nil {
		return nil, validationError("name: %s", err)
	}
	return s.client.do(ctx, request{method: http.MethodPost, path: endpoint("teams"), body: teamName{Name: name}})
}

// AddAgents adds agents to a team.
func (s *TeamsService) AddAgents(ctx context.Context, teamID string, ids []string) (any, error) {
	return s.client.do(ctx, request{
		method: http.MethodPatch,
		path:   endpoint("teams", teamID, "agents"),
		body:   newAgentIDs(ids),
	})
}

// RemoveAgents removes agents from a team.
func (s *TeamsService) RemoveAgents(ctx context.Context, teamID string, ids []string) (any, error) {
	return s.client.do(ctx, request{
		method:           http.MethodDelete,
		path:             endpoint("teams", teamID, "agents"),
		body:             newAgentIDs(ids),
		noContentMessage: "Agents removed from team successfully",
	})
}

func (s *TeamsService) Delete(ctx context.Context, teamID string) (any, error) {
	return s.client.do(ctx, request{
		method:           http.MethodDelete,
		path:             endpoint("teams", teamID),
		noContentMessage: "Team deleted successfully",
	})
}
