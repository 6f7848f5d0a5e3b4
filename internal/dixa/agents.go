package dixa

import (
	"context"
	"net/http"
	"net/url"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Working channels an agent can be toggled on or off for.
const (
	ChannelEmail           = "Email"
	ChannelInteractiveChat = "InteractiveChat"
	ChannelMessaging       = "Messaging"
	ChannelSpeak           = "Speak"
)

// WorkingChannels lists every accepted working channel.
var WorkingChannels = []string{ChannelEmail, ChannelInteractiveChat, ChannelMessaging, ChannelSpeak}

// OrganizationService handles the /organization endpoint.
type OrganizationService service

// AgentsService handles agents and admins.
type AgentsService service

// ListAgentsParams filters the agents listing.
type ListAgentsParams struct {
	Page  `mapstructure:",squash"`
	Email string `mapstructure:"email"`
	Phone string `mapstructure:"phone"`
}

// CreateAgentParams is the body of POST /agents.
// Optional scalar fields and lists are only sent when non-empty, except MiddleNames which is sent whenever set.
type CreateAgentParams struct {
	DisplayName            string   `json:"displayName"                      mapstructure:"display_name"`
	Email                  string   `json:"email"                            mapstructure:"email"`
	PhoneNumber            string   `json:"phoneNumber,omitempty"            mapstructure:"phone_number"`
	AdditionalEmails       []string `json:"additionalEmails,omitempty"       mapstructure:"additional_emails"`
	AdditionalPhoneNumbers []string `json:"additionalPhoneNumbers,omitempty" mapstructure:"additional_phone_numbers"`
	FirstName              string   `json:"firstName,omitempty"              mapstructure:"first_name"`
	LastName               string   `json:"lastName,omitempty"               mapstructure:"last_name"`
	MiddleNames            []string `json:"middleNames,omitzero"             mapstructure:"middle_names"`
	AvatarURL              string   `json:"avatarUrl,omitempty"              mapstructure:"avatar_url"`
}

// PatchAgentParams is the body of PATCH /agents/{id}. Every field is sent whenever set.
type PatchAgentParams struct {
	DisplayName            *string  `json:"displayName,omitempty"            mapstructure:"display_name"`
	AdditionalEmails       []string `json:"additionalEmails,omitzero"        mapstructure:"additional_emails"`
	AdditionalPhoneNumbers []string `json:"additionalPhoneNumbers,omitzero"  mapstructure:"additional_phone_numbers"`
	FirstName              *string  `json:"firstName,omitempty"              mapstructure:"first_name"`
	LastName               *string  `json:"lastName,omitempty"               mapstructure:"last_name"`
	MiddleNames            []string `json:"middleNames,omitzero"             mapstructure:"middle_names"`
	AvatarURL              *string  `json:"avatarUrl,omitempty"              mapstructure:"avatar_url"`
}

// UpdateAgentParams is the body of PUT /agents/{id}. DisplayName is required, every other field is sent whenever set.
type UpdateAgentParams struct {
	DisplayName            string   `json:"displayName"                      mapstructure:"display_name"`
	PhoneNumber            *string  `json:"phoneNumber,omitempty"            mapstructure:"phone_number"`
	AdditionalEmails       []string `json:"additionalEmails,omitzero"        mapstructure:"additional_emails"`
	AdditionalPhoneNumbers []string `json:"additionalPhoneNumbers,omitzero"  mapstructure:"additional_phone_numbers"`
	FirstName              *string  `json:"firstName,omitempty"              mapstructure:"first_name"`
	LastName               *string  `json:"lastName,omitempty"               mapstructure:"last_name"`
	MiddleNames            []string `json:"middleNames,omitzero"             mapstructure:"middle_names"`
	AvatarURL              *string  `json:"avatarUrl,omitempty"              mapstructure:"avatar_url"`
}

type workingChannel struct {
	Channel string `json:"channel"`
	Working bool   `json:"working"`
}

func (p CreateAgentParams) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.DisplayName, validation.Required),
		validation.Field(&p.Email, validation.Required),
	)
}

func (p UpdateAgentParams) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.DisplayName, validation.Required),
	)
}

// Get returns the organization the API key belongs to.
func (s *OrganizationService) Get(ctx context.Context) (any, error) {
	return s.client.do(ctx, request{method: http.MethodGet, path: endpoint("organization")})
}

// Get returns a single agent.
func (s *AgentsService) Get(ctx context.Context, agentID string) (any, error) {
	return s.client.do(ctx, request{method: http.MethodGet, path: endpoint("agents", agentID)})
}

// List returns the agents of the organization, optionally filtered by email or phone number (not both).
func (s *AgentsService) List(ctx context.Context, p ListAgentsParams) (any, error) {
	if p.Email != "" && p.Phone != "" {
		return nil, validationError("email and phone parameters are mutually exclusive, provide only one")
	}

	q := url.Values{}
	if p.Email != "" {
		q.Set("email", p.Email)
	}
	if p.Phone != "" {
		q.Set("phone", p.Phone)
	}
	p.Page.apply(q)

	return s.client.do(ctx, request{method: http.MethodGet, path: endpoint("agents"), query: q})
}

// ListPresence returns the presence status of every agent.
func (s *AgentsService) ListPresence(ctx context.Context) (any, error) {
	return s.client.do(ctx, request{method: http.MethodGet, path: endpoint("agents", "presence")})
}

// ListTeams returns the teams the agent is a member of.
func (s *AgentsService) ListTeams(ctx context.Context, agentID string) (any, error) {
	return s.client.do(ctx, request{method: http.MethodGet, path: endpoint("agents", agentID, "teams")})
}

// Create adds an agent to the organization.
func (s *AgentsService) Create(ctx context.Context, p CreateAgentParams) (any, error) {
	if err := validate(p); err != nil {
		return nil, err
	}
	return s.client.do(ctx, request{method: http.MethodPost, path: endpoint("agents"), body: p})
}

// Patch partially updates an agent.
func (s *AgentsService) Patch(ctx context.Context, agentID string, p PatchAgentParams) (any, error) {
	return s.client.do(ctx, request{method: http.MethodPatch, path: endpoint("agents", agentID), body: p})
}

// Update replaces an agent.
func (s *AgentsService) Update(ctx context.Context, agentID string, p UpdateAgentParams) (any, error) {
	if err := validate(p); err != nil {
		return nil, err
	}
	return s.client.do(ctx, request{method: http.MethodPut, path: endpoint("agents", agentID), body: p})
}

// SetWorkingChannel toggles whether the agent is working on the given channel.
func (s *AgentsService) SetWorkingChannel(ctx context.Context, agentID string, channel string, working bool) (any, error) {
	if err := validation.Validate(channel, oneOf("channel", WorkingChannels...)); err != nil {
		return nil, validationError("%s", err)
	}

	return s.client.do(ctx, request{
		method:           http.MethodPut,
		path:             endpoint("agents", agentID, "presence", "working-channel"),
		body:             workingChannel{Channel: channel, Working: working},
		noContentMessage: "Agent working channel updated successfully",
	})
}
