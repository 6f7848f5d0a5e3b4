package dixa

import (
	"context"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// QueuesService handles queues and their members.
type QueuesService service

// CreateQueueParams describes a new queue. Every optional field is sent whenever set.
type CreateQueueParams struct {
	Name                         string         `json:"name"                                   mapstructure:"name"`
	CallFunctionality            *bool          `json:"callFunctionality,omitempty"            mapstructure:"call_functionality"`
	IsDefault                    *bool          `json:"isDefault,omitempty"                    mapstructure:"is_default"`
	QueueThresholds              map[string]any `json:"queueThresholds,omitzero"               mapstructure:"queue_thresholds"`
	OfferTimeout                 *int           `json:"offerTimeout,omitempty"                 mapstructure:"offer_timeout"`
	OfferAlgorithm               *string        `json:"offerAlgorithm,omitempty"               mapstructure:"offer_algorithm"`
	WrapupTimeout                *int           `json:"wrapupTimeout,omitempty"                mapstructure:"wrapup_timeout"`
	Priority                     *int           `json:"priority,omitempty"                     mapstructure:"priority"`
	OfferAbandonedConversations  *bool          `json:"offerAbandonedConversations,omitempty"  mapstructure:"offer_abandoned_conversations"`
	DoNotOfferTimeouts           map[string]any `json:"doNotOfferTimeouts,omitzero"            mapstructure:"do_not_offer_timeouts"`
	IsDoNotOfferEnabled          *bool          `json:"isDoNotOfferEnabled,omitempty"          mapstructure:"is_do_not_offer_enabled"`
	PreferredAgentTimeouts       map[string]any `json:"preferredAgentTimeouts,omitzero"        mapstructure:"preferred_agent_timeouts"`
	IsPreferredAgentEnabled      *bool          `json:"isPreferredAgentEnabled,omitempty"      mapstructure:"is_preferred_agent_enabled"`
	PreferredAgentOfflineTimeout *int           `json:"preferredAgentOfflineTimeout,omitempty" mapstructure:"preferred_agent_offline_timeout"`
	PersonalAgentOfflineTimeout  *int           `json:"personalAgentOfflineTimeout,omitempty"  mapstructure:"personal_agent_offline_timeout"`
	IsRestricted                 *bool          `json:"isRestricted,omitempty"                 mapstructure:"is_restricted"`
	Extra                        Extra          `json:"-"                                      mapstructure:"extra_fields"`
}

func (p CreateQueueParams) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.Required),
	)
}

func (s *QueuesService) List(ctx context.Context) (any, error) {
	return s.client.do(ctx, request{method: http.MethodGet, path: endpoint("queues")})
}

func (s *QueuesService) Get(ctx context.Context, queueID string) (any, error) {
	return s.client.do(ctx, request{method: http.MethodGet, path: endpoint("queues", queueID)})
}

// Availability reports whether a queue currently has agents available.
func (s *QueuesService) Availability(ctx context.Context, queueID string) (any, error) {
	return s.client.do(ctx, request{method: http.MethodGet, path: endpoint("queues", queueID, "availability")})
}

// ConversationPosition returns the position of a conversation in a queue.
func (s *QueuesService) ConversationPosition(ctx context.Context, queueID string, conversationID string) (any, error) {
	return s.client.do(ctx, request{
		method: http.MethodGet,
		path:   endpoint("queues", queueID, "conversations", conversationID, "position"),
	})
}

// Members lists the agents assigned to a queue.
func (s *QueuesService) Members(ctx context.Context, queueID string) (any, error) {
	return s.client.do(ctx, request{method: http.MethodGet, path: endpoint("queues", queueID, "members")})
}

// Create adds a queue. The queue definition is wrapped as {"request": {...}}.
func (s *QueuesService) Create(ctx context.Context, p CreateQueueParams) (any, error) {
	if err := validate(p); err != nil {
		return nil, err
	}

	def, err := p.Extra.merge(p)
	if err != nil {
		return nil, err
	}

	return s.client.do(ctx, request{
		method: http.MethodPost,
		path:   endpoint("queues"),
		body:   map[string]any{"request": def},
	})
}

// AssignAgents adds agents to a queue.
func (s *QueuesService) AssignAgents(ctx context.Context, queueID string, ids []string) (any, error) {
	return s.client.do(ctx, request{
		method: http.MethodPatch,
		path:   endpoint("queues", queueID, "members"),
		body:   newAgentIDs(ids),
	})
}

// RemoveAgents removes agents from a queue.
func (s *QueuesService) RemoveAgents(ctx context.Context, queueID string, ids []string) (any, error) {
	return s.client.do(ctx, request{
		method:           http.MethodDelete,
		path:             endpoint("queues", queueID, "members"),
		body:             newAgentIDs(ids),
		noContentMessage: "Agents removed from queue successfully",
	})
}

func newAgentIDs(ids []string) agentIDs {
	if ids == nil {
		ids = []string{}
	}
	return agentIDs{AgentIDs: ids}
}
