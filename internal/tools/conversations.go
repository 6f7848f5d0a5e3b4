package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mozilla-ai/dixa-mcp/internal/dixa"
)

func conversationTools() []Tool {
	conversationID := id("conversation_id", "ID of the conversation")

	return []Tool{
		query(
			"fetch_conversation_by_id",
			"Fetch conversation",
			"Get a single conversation by ID.",
			func(ctx context.Context, c *dixa.Client, a Arguments) (any, error) {
				return c.Conversations.Get(ctx, a.String("conversation_id"))
			},
			conversationID,
		),
		query(
			"list_conversation_flows",
			"List conversation flows",
			"List the flows a conversation went through.",
			func(ctx context.Context, c *dixa.Client, a Arguments) (any, error) {
				return c.Conversations.Flows(ctx, a.String("conversation_id"))
			},
			conversationID,
		),
		query(
			"list_conversation_activity_log",
			"List conversation activity log",
			"Get the activity log of a conversation.",
			func(ctx context.Context, c *dixa.Client, a Arguments) (any, error) {
				return c.Conversations.ActivityLog(ctx, a.String("conversation_id"))
			},
			conversationID,
		),
		query(
			"list_organization_activity_log",
			"List organization activity log",
			"Get the conversation activity log of the whole organization.",
			func(ctx context.Context, c *dixa.Client, _ Arguments) (any, error) {
				return c.Conversations.OrganizationActivityLog(ctx)
			},
		),
		query(
			"list_conversation_notes",
			"List conversation notes",
			"List the internal notes of a conversation.",
			func(ctx context.Context, c *dixa.Client, a Arguments) (any, error) {
				return c.Conversations.Notes(ctx, a.String("conversation_id"))
			},
			conversationID,
		),
		query(
			"list_linked_conversations",
			"List linked conversations",
			"List the conversations linked to a conversation.",
			func(ctx context.Context, c *dixa.Client, a Arguments) (any, error) {
				return c.Conversations.Linked(ctx, a.String("conversation_id"))
			},
			conversationID,
		),
		query(
			"list_conversation_messages",
			"List conversation messages",
			"List the messages of a conversation.",
			func(ctx context.Context, c *dixa.Client, a Arguments) (any, error) {
				return c.Conversations.Messages(ctx, a.String("conversation_id"))
			},
			conversationID,
		),
		query(
			"list_conversation_ratings",
			"List conversation ratings",
			"List the satisfaction ratings of a conversation.",
			func(ctx context.Context, c *dixa.Client, a Arguments) (any, error) {
				return c.Conversations.Ratings(ctx, a.String("conversation_id"))
			},
			conversationID,
		),
		query(
			"list_conversation_tags",
			"List conversation tags",
			"List the tags attached to a conversation.",
			func(ctx context.Context, c *dixa.Client, a Arguments) (any, error) {
				return c.Conversations.Tags(ctx, a.String("conversation_id"))
			},
			conversationID,
		),
		query(
			"search_conversations",
			"Search conversations",
			"Search conversations with structured filters and/or a free text query. At most 50 results per page.",
			func(ctx context.Context, c *dixa.Client, a Arguments) (any, error) {
				var p dixa.SearchConversationsParams
				if err := a.DecodeInto(&p); err != nil {
					return nil, err
				}
				return c.Conversations.Search(ctx, p)
			},
			paging(
				mcp.WithObject("filters", mcp.Description(
					`Structured search filters, e.g. {"strategy": "All", "conditions": [{"field": {"_type": "Status", "value": "Open"}}]}`,
				)),
				mcp.WithObject("query", mcp.Description(`Free text query, e.g. {"value": "refund", "exactMatch": false}`)),
			)...,
		),
		mutation(
			"add_conversation_note",
			"Add conversation note",
			"Add an internal note to a conversation.",
			additive,
			func(ctx context.Context, c *dixa.Client, a Arguments) (any, error) {
				var p dixa.NoteParams
				if err := a.DecodeInto(&p); err != nil {
					return nil, err
				}
				return c.Conversations.AddNote(ctx, a.String("conversation_id"), p)
			},
			conversationID,
			mcp.WithString("message", mcp.Required(), mcp.Description("Text of the note")),
			mcp.WithString("agent_id", mcp.Description("ID of the agent authoring the note")),
			mcp.WithString("created_at", mcp.Description("Creation time of the note (ISO 8601)")),
		),
		mutation(
			"add_conversation_notes_bulk",
			"Add conversation notes in bulk",
			"Add several internal notes to a conversation in one request. Each note reports its own success or failure.",
			additive,
			func(ctx context.Context, c *dixa.Client, a Arguments) (any, error) {
				var notes []dixa.BulkNote
				if err := a.Decode("notes", &notes); err != nil {
					return nil, err
				}
				return c.Conversations.AddNotesBulk(ctx, a.String("conversation_id"), notes)
			},
			conversationID,
			withObjectArray("notes", mcp.Required(), mcp.Description(
				`Notes to add, e.g. [{"message": "Called back", "agentId": "...", "createdAt": "2025-01-01T10:00:00Z"}]`,
			)),
		),
		mutation(
			"anonymize_conversation",
			"Anonymize conversation",
			"Request anonymization of a conversation. This cannot be undone.",
			destructive,
			func(ctx context.Context, c *dixa.Client, a Arguments) (any, error) {
				return c.Conversations.Anonymize(ctx, a.String("conversation_id"), a.Bool("force"))
			},
			conversationID,
			mcp.WithBoolean("force", mcp.Description("Anonymize even if the conversation is not closed")),
		),
		mutation(
			"anonymize_conversation_message",
			"Anonymize conversation message",
			"Request anonymization of a single message of a conversation. This cannot be undone.",
			destructive,
			func(ctx context.Context, c *dixa.Client, a Arguments) (any, error) {
				return c.Conversations.AnonymizeMessage(ctx, a.String("conversation_id"), a.String("message_id"))
			},
			conversationID,
			id("message_id", "ID of the message"),
		),
		mutation(
			"tag_conversation_bulk",
			"Tag conversation in bulk",
			"Attach several tags to a conversation by name. Each tag reports its own success or failure.",
			idempotent,
			func(ctx context.Context, c *dixa.Client, a Arguments) (any, error) {
				var names []string
				if err := a.Decode("tag_names", &names); err != nil {
					return nil, err
				}
				return c.Conversations.TagBulk(ctx, a.String("conversation_id"), names)
			},
			conversationID,
			withStringArray("tag_names", mcp.Required(), mcp.Description("Names of the tags to attach")),
		),
		mutation(
			"assign_conversation_to_agent",
			"Assign conversation to agent",
			"Claim a conversation on behalf of an agent.",
			idempotent,
			func(ctx context.Context, c *dixa.Client, a Arguments) (any, error) {
				return c.Conversations.Claim(ctx, a.String("conversation_id"), a.String("agent_id"), a.Bool("force"))
			},
			conversationID,
			id("agent_id", "ID of the agent"),
			mcp.WithBoolean("force", mcp.Description("Take over the conversation even if another agent holds it")),
		),
		mutation(
			"close_conversation",
			"Close conversation",
			"Close a conversation.",
			idempotent,
			func(ctx context.Context, c *dixa.Client, a Arguments) (any, error) {
				return c.Conversations.Close(ctx, a.String("conversation_id"), a.String("user_id"))
			},
			conversationID,
			mcp.WithString("user_id", mcp.Description("ID of the user closing the conversation")),
		),
		mutation(
			"start_conversation",
			"Start conversation",
			"Start a new conversation with a text message. Sms conversations only support Outbound messages.",
			additive,
			func(ctx context.Context, c *dixa.Client, a Arguments) (any, error) {
				var p dixa.CreateConversationParams
				if err := a.DecodeInto(&p); err != nil {
					return nil, err
				}
				return c.Conversations.Create(ctx, p)
			},
			id("requester_id", "ID of the end user the conversation is with"),
			mcp.WithString("conversation_type", mcp.Required(), mcp.Enum(dixa.ConversationTypes...), mcp.Description("Channel of the conversation")),
			mcp.WithString("message_content", mcp.Required(), mcp.Description("Text of the first message")),
			mcp.WithString("message_type", mcp.Required(), mcp.Enum(dixa.MessageTypes...), mcp.Description("Direction of the first message")),
			mcp.WithString("subject", mcp.Description("Subject, for email conversations")),
			mcp.WithString("email_integration_id", mcp.Description("Contact endpoint to send from, for email conversations")),
			mcp.WithString("language", mcp.Description("Language code of the conversation")),
			mcp.WithString("agent_id", mcp.Description("ID of the agent sending an outbound message")),
			withObjectArray("attachments", mcp.Description(`Attachments, e.g. [{"url": "https://...", "prettyName": "invoice.pdf"}]`)),
		),
		mutation(
			"link_conversation_to_parent",
			"Link conversation to parent",
			"Make a conversation a child of another conversation.",
			idempotent,
			func(ctx context.Context, c *dixa.Client, a Arguments) (any, error) {
				return c.Conversations.Link(ctx, a.String("conversation_id"), a.String("parent_conversation_id"))
			},
			conversationID,
			id("parent_conversation_id", "ID of the parent conversation"),
		),
		mutation(
			"import_conversations",
			"Import conversations",
			"Import conversations from another system.",
			additive,
			func(ctx context.Context, c *dixa.Client, a Arguments) (any, error) {
				var conversations []map[string]any
				if err := a.Decode("conversations", &conversations); err != nil {
					return nil, err
				}
				return c.Conversations.Import(ctx, conversations)
			},
			withObjectArray("conversations", mcp.Required(), mcp.Description("Conversations to import, using the Dixa import format")),
		),
		mutation(
			"reopen_conversation",
			"Reopen conversation",
			"Reopen a closed conversation.",
			idempotent,
			func(ctx context.Context, c *dixa.Client, a Arguments) (any, error) {
				return c.Conversations.Reopen(ctx, a.String("conversation_id"))
			},
			conversationID,
		),
		mutation(
			"tag_conversation",
			"Tag conversation",
			"Attach an existing tag to a conversation.",
			idempotent,
			func(ctx context.Context, c *dixa.Client, a Arguments) (any, error) {
				return c.Conversations.Tag(ctx, a.String("conversation_id"), a.String("tag_id"))
			},
			conversationID,
			id("tag_id", "ID of the tag"),
		),
		mutation(
			"remove_tag_from_conversation",
			"Remove tag from conversation",
			"Detach a tag from a conversation.",
			destructive,
			func(ctx context.Context, c *dixa.Client, a Arguments) (any, error) {
				return c.Conversations.Untag(ctx, a.String("conversation_id"), a.String("tag_id"))
			},
			conversationID,
			id("tag_id", "ID of the tag"),
		),
		mutation(
			"set_conversation_followup_status",
			"Set conversation follow-up",
			"Set or clear the follow-up flag of a conversation.",
			idempotent,
			func(ctx context.Context, c *dixa.Client, a Arguments) (any, error) {
				return c.Conversations.SetFollowUp(ctx, a.String("conversation_id"), a.Bool("follow_up"))
			},
			conversationID,
			mcp.WithBoolean("follow_up", mcp.Required(), mcp.Description("Whether the conversation needs follow-up")),
		),
	}
}
