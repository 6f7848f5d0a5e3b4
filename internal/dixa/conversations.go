package dixa

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Conversation channels accepted when starting a conversation.
const (
	ConversationCallback    = "Callback"
	ConversationChat        = "Chat"
	ConversationContactForm = "ContactForm"
	ConversationEmail       = "Email"
	ConversationSms         = "Sms"
)

// Directions of the first message of a new conversation.
const (
	MessageInbound  = "Inbound"
	MessageOutbound = "Outbound"
)

// MaxSearchPageLimit is the largest page size accepted by conversation search.
const MaxSearchPageLimit = 50

var (
	// ConversationTypes lists every accepted conversation type.
	ConversationTypes = []string{
		ConversationCallback,
		ConversationChat,
		ConversationContactForm,
		ConversationEmail,
		ConversationSms,
	}

	// MessageTypes lists every accepted message direction.
	MessageTypes = []string{MessageInbound, MessageOutbound}
)

// ConversationsService handles conversations and their sub-resources.
type ConversationsService service

// NoteParams is the body of a single internal note.
type NoteParams struct {
	Message   string `json:"message"             mapstructure:"message"`
	AgentID   string `json:"agentId,omitempty"   mapstructure:"agent_id"`
	CreatedAt string `json:"createdAt,omitempty" mapstructure:"created_at"`
}

// BulkNote is one note of a bulk note request.
// Items are supplied with wire names, and optional keys are forwarded whenever present.
type BulkNote struct {
	Message   string  `json:"message"             mapstructure:"message"`
	AgentID   *string `json:"agentId,omitempty"   mapstructure:"agentId"`
	CreatedAt *string `json:"createdAt,omitempty" mapstructure:"createdAt"`
}

// CreateConversationParams describes a new conversation and its first message.
type CreateConversationParams struct {
	RequesterID        string           `mapstructure:"requester_id"`
	ConversationType   string           `mapstructure:"conversation_type"`
	MessageContent     string           `mapstructure:"message_content"`
	MessageType        string           `mapstructure:"message_type"`
	Subject            string           `mapstructure:"subject"`
	EmailIntegrationID string           `mapstructure:"email_integration_id"`
	Language           string           `mapstructure:"language"`
	AgentID            string           `mapstructure:"agent_id"`
	Attachments        []map[string]any `mapstructure:"attachments"`
}

// SearchConversationsParams selects conversations by filters and/or a text query.
type SearchConversationsParams struct {
	Page    `json:"-"                 mapstructure:",squash"`
	Filters map[string]any `json:"filters,omitempty" mapstructure:"filters"`
	Query   map[string]any `json:"query,omitempty"   mapstructure:"query"`
}

type newConversation struct {
	RequesterID        string     `json:"requesterId"`
	Message            newMessage `json:"message"`
	Type               string     `json:"_type"`
	Subject            string     `json:"subject,omitempty"`
	EmailIntegrationID string     `json:"emailIntegrationId,omitempty"`
	Language           string     `json:"language,omitempty"`
	AgentID            string     `json:"agentId,omitempty"`
}

type newMessage struct {
	Content     textContent      `json:"content"`
	Attachments []map[string]any `json:"attachments"`
	Type        string           `json:"_type"`
}

type textContent struct {
	Value string `json:"value"`
	Type  string `json:"_type"`
}

type tagName struct {
	Name string `json:"name"`
}

type claim struct {
	AgentID string `json:"agentId"`
	Force   bool   `json:"force"`
}

type closeConversation struct {
	UserID string `json:"userId,omitempty"`
}

type link struct {
	ParentConversationID string `json:"parentConversationId"`
}

type conversationImport struct {
	Conversations []map[string]any `json:"conversations"`
}

type followUp struct {
	FollowUp bool `json:"followUp"`
}

func (p NoteParams) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Message, validation.Required),
	)
}

func (p CreateConversationParams) Validate() error {
	err := validation.Errors{
		"requester_id":      validation.Validate(p.RequesterID, validation.Required),
		"conversation_type": validation.Validate(p.ConversationType, oneOf("conversation_type", ConversationTypes...)),
		"message_type":      validation.Validate(p.MessageType, oneOf("message_type", MessageTypes...)),
	}.Filter()
	if err != nil {
		return err
	}

	if p.ConversationType == ConversationSms && p.MessageType == MessageInbound {
		return validation.NewError(
			"validation_sms_inbound",
			"Sms conversations only support Outbound messages, use message_type 'Outbound' for Sms conversations",
		)
	}

	return nil
}

func (p SearchConversationsParams) Validate() error {
	if p.Limit != nil && *p.Limit > MaxSearchPageLimit {
		return validation.NewError(
			"validation_page_limit",
			"page_limit must be less than or equal to "+strconv.Itoa(MaxSearchPageLimit)+", but got "+strconv.Itoa(*p.Limit),
		)
	}
	return nil
}

func (s *ConversationsService) Get(ctx context.Context, conversationID string) (any, error) {
	return s.get(ctx, conversationID)
}

func (s *ConversationsService) Flows(ctx context.Context, conversationID string) (any, error) {
	return s.get(ctx, conversationID, "flows")
}

// ActivityLog returns the activity log of a single conversation.
func (s *ConversationsService) ActivityLog(ctx context.Context, conversationID string) (any, error) {
	return s.get(ctx, conversationID, "activity-log")
}

func (s *ConversationsService) Notes(ctx context.Context, conversationID string) (any, error) {
	return s.get(ctx, conversationID, "notes")
}

func (s *ConversationsService) Linked(ctx context.Context, conversationID string) (any, error) {
	return s.get(ctx, conversationID, "linked")
}

func (s *ConversationsService) Messages(ctx context.Context, conversationID string) (any, error) {
	return s.get(ctx, conversationID, "messages")
}

func (s *ConversationsService) Ratings(ctx context.Context, conversationID string) (any, error) {
	return s.get(ctx, conversationID, "ratings")
}

// Tags returns the tags attached to a conversation.
func (s *ConversationsService) Tags(ctx context.Context, conversationID string) (any, error) {
	return s.get(ctx, conversationID, "tags")
}

// OrganizationActivityLog returns the conversation activity log of the whole organization.
func (s *ConversationsService) OrganizationActivityLog(ctx context.Context) (any, error) {
	return s.client.do(ctx, request{method: http.MethodGet, path: endpoint("conversations", "activity-log")})
}

// AddNote adds an internal note to a conversation.
func (s *ConversationsService) AddNote(ctx context.Context, conversationID string, p NoteParams) (any, error) {
	if err := validate(p); err != nil {
		return nil, err
	}

	return s.client.do(ctx, request{
		method: http.MethodPost,
		path:   endpoint("conversations", conversationID, "notes"),
		body:   p,
	})
}

// AddNotesBulk adds several internal notes to a conversation in one request.
func (s *ConversationsService) AddNotesBulk(ctx context.Context, conversationID string, notes []BulkNote) (*BulkResult, error) {
	if notes == nil {
		notes = []BulkNote{}
	}

	return s.client.doBulk(ctx, request{
		method: http.MethodPost,
		path:   endpoint("conversations", conversationID, "notes", "bulk"),
		body:   bulk[BulkNote]{Data: notes},
	})
}

// Anonymize requests anonymization of a conversation. The force flag is always sent.
func (s *ConversationsService) Anonymize(ctx context.Context, conversationID string, force bool) (any, error) {
	return s.client.do(ctx, request{
		method: http.MethodPatch,
		path:   endpoint("conversations", conversationID, "anonymize"),
		query:  url.Values{"force": {strconv.FormatBool(force)}},
	})
}

// AnonymizeMessage requests anonymization of a single message.
func (s *ConversationsService) AnonymizeMessage(ctx context.Context, conversationID string, messageID string) (any, error) {
	return s.client.do(ctx, request{
		method: http.MethodPatch,
		path:   endpoint("conversations", conversationID, "messages", messageID, "anonymize"),
	})
}

// TagBulk attaches tags to a conversation by name.
func (s *ConversationsService) TagBulk(ctx context.Context, conversationID string, tagNames []string) (*BulkResult, error) {
	tags := make([]tagName, 0, len(tagNames))
	for _, n := range tagNames {
		tags = append(tags, tagName{Name: n})
	}

	return s.client.doBulk(ctx, request{
		method: http.MethodPost,
		path:   endpoint("conversations", conversationID, "tags", "bulk"),
		body:   bulk[tagName]{Data: tags},
	})
}

// Claim assigns a conversation to an agent.
func (s *ConversationsService) Claim(ctx context.Context, conversationID string, agentID string, force bool) (any, error) {
	return s.client.do(ctx, request{
		method:           http.MethodPut,
		path:             endpoint("conversations", conversationID, "claim"),
		body:             claim{AgentID: agentID, Force: force},
		noContentMessage: "Conversation claimed successfully",
	})
}

// Close closes a conversation, optionally on behalf of userID.
func (s *ConversationsService) Close(ctx context.Context, conversationID string, userID string) (any, error) {
	return s.client.do(ctx, request{
		method:           http.MethodPut,
		path:             endpoint("conversations", conversationID, "close"),
		body:             closeConversation{UserID: userID},
		noContentMessage: "Conversation closed successfully",
	})
}

// Create starts a new conversation with a text message.
func (s *ConversationsService) Create(ctx context.Context, p CreateConversationParams) (any, error) {
	if err := validate(p); err != nil {
		return nil, err
	}

	attachments := p.Attachments
	if attachments == nil {
		attachments = []map[string]any{}
	}

	return s.client.do(ctx, request{
		method: http.MethodPost,
		path:   endpoint("conversations"),
		body: newConversation{
			RequesterID: p.RequesterID,
			Message: newMessage{
				Content:     textContent{Value: p.MessageContent, Type: "Text"},
				Attachments: attachments,
				Type:        p.MessageType,
			},
			Type:               p.ConversationType,
			Subject:            p.Subject,
			EmailIntegrationID: p.EmailIntegrationID,
			Language:           p.Language,
			AgentID:            p.AgentID,
		},
	})
}

// Link makes a conversation a child of another conversation.
func (s *ConversationsService) Link(ctx context.Context, conversationID string, parentConversationID string) (any, error) {
	return s.client.do(ctx, request{
		method:           http.MethodPut,
		path:             endpoint("conversations", conversationID, "link"),
		body:             link{ParentConversationID: parentConversationID},
		noContentMessage: "Conversation linked successfully",
	})
}

// Import imports conversations from another system.
func (s *ConversationsService) Import(ctx context.Context, conversations []map[string]any) (any, error) {
	if conversations == nil {
		conversations = []map[string]any{}
	}

	return s.client.do(ctx, request{
		method: http.MethodPost,
		path:   endpoint("conversations", "import"),
		body:   conversationImport{Conversations: conversations},
	})
}

// PatchCustomAttributes updates custom attributes of a conversation. The attributes are the request body.
func (s *ConversationsService) PatchCustomAttributes(ctx context.Context, conversationID string, attrs map[string]any) (any, error) {
	if attrs == nil {
		attrs = map[string]any{}
	}

	return s.client.do(ctx, request{
		method: http.MethodPatch,
		path:   endpoint("conversations", conversationID, "custom-attributes"),
		body:   attrs,
	})
}

func (s *ConversationsService) Reopen(ctx context.Context, conversationID string) (any, error) {
	return s.client.do(ctx, request{
		method:           http.MethodPut,
		path:             endpoint("conversations", conversationID, "reopen"),
		noContentMessage: "Conversation reopened successfully",
	})
}

// Search finds conversations. A request body is only sent when filters or a query are set.
func (s *ConversationsService) Search(ctx context.Context, p SearchConversationsParams) (any, error) {
	if err := validate(p); err != nil {
		return nil, err
	}

	r := request{
		method: http.MethodPost,
		path:   endpoint("search", "conversations"),
		query:  p.Page.values(),
	}
	if len(p.Filters) > 0 || len(p.Query) > 0 {
		r.body = p
	}

	return s.client.do(ctx, r)
}

// Tag attaches an existing tag to a conversation.
func (s *ConversationsService) Tag(ctx context.Context, conversationID string, tagID string) (any, error) {
	return s.client.do(ctx, request{
		method:           http.MethodPut,
		path:             endpoint("conversations", conversationID, "tags", tagID),
		noContentMessage: "Conversation tagged successfully",
	})
}

// Untag removes a tag from a conversation.
func (s *ConversationsService) Untag(ctx context.Context, conversationID string, tagID string) (any, error) {
	return s.client.do(ctx, request{
		method:           http.MethodDelete,
		path:             endpoint("conversations", conversationID, "tags", tagID),
		noContentMessage: "Conversation untagged successfully",
	})
}

// SetFollowUp sets or clears the follow-up flag of a conversation.
func (s *ConversationsService) SetFollowUp(ctx context.Context, conversationID string, value bool) (any, error) {
	return s.client.do(ctx, request{
		method:           http.MethodPut,
		path:             endpoint("conversations", conversationID, "followup"),
		body:             followUp{FollowUp: value},
		noContentMessage: "Conversation follow-up status updated successfully",
	})
}

func (s *ConversationsService) get(ctx context.Context, conversationID string, sub ...string) (any, error) {
	return s.client.do(ctx, request{
		method: http.MethodGet,
		path:   endpoint(append([]string{"conversations", conversationID}, sub...)...),
	})
}
