package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mozilla-ai/dixa-mcp/internal/dixa"
)

const extraFieldsDescription = "Additional fields to send as-is. Keys may be snake_case or camelCase, e.g. {\"display_order\": 2}"

func knowledgeTools() []Tool {
	articleID := id("article_id", "ID of the knowledge article")

	return []Tool{
		query(
			"list_knowledge_articles",
			"List knowledge articles",
			"List the knowledge base articles.",
			func(ctx context.Context, c *dixa.Client, a Arguments) (any, error) {
				var page dixa.Page
				if err := a.DecodeInto(&page); err != nil {
					return nil, err
				}
				return c.Knowledge.ListArticles(ctx, page)
			},
			paging()...,
		),
		query(
			"fetch_knowledge_article_by_id",
			"Fetch knowledge article",
			"Get a single knowledge base article by ID.",
			func(ctx context.Context, c *dixa.Client, a Arguments) (any, error) {
				return c.Knowledge.GetArticle(ctx, a.String("article_id"))
			},
			articleID,
		),
		query(
			"list_knowledge_categories",
			"List knowledge categories",
			"List the knowledge base categories.",
			func(ctx context.Context, c *dixa.Client, a Arguments) (any, error) {
				var page dixa.Page
				if err := a.DecodeInto(&page); err != nil {
					return nil, err
				}
				return c.Knowledge.ListCategories(ctx, page)
			},
			paging()...,
		),
		mutation(
			"add_knowledge_article",
			"Add knowledge article",
			"Create a knowledge base article.",
			additive,
			func(ctx context.Context, c *dixa.Client, a Arguments) (any, error) {
				var p dixa.CreateArticleParams
				if err := a.DecodeInto(&p); err != nil {
					return nil, err
				}
				return c.Knowledge.CreateArticle(ctx, p)
			},
			mcp.WithString("title", mcp.Required(), mcp.Description("Title of the article")),
			mcp.WithString("content", mcp.Required(), mcp.Description("Body of the article")),
			mcp.WithString("category_id", mcp.Description("ID of the category to file the article under")),
			mcp.WithBoolean("published", mcp.Description("Whether the article is published")),
			mcp.WithObject("extra_fields", mcp.Description(extraFieldsDescription)),
		),
		mutation(
			"modify_knowledge_article",
			"Modify knowledge article",
			"Partially update a knowledge base article. Only the supplied fields are changed.",
			idempotent,
			func(ctx context.Context, c *dixa.Client, a Arguments) (any, error) {
				var p dixa.PatchArticleParams
				if err := a.DecodeInto(&p); err != nil {
					return nil, err
				}
				return c.Knowledge.PatchArticle(ctx, a.String("article_id"), p)
			},
			articleID,
			mcp.WithString("title", mcp.Description("Title of the article")),
			mcp.WithString("content", mcp.Description("Body of the article")),
			mcp.WithString("category_id", mcp.Description("ID of the category to file the article under")),
			mcp.WithBoolean("published", mcp.Description("Whether the article is published")),
			mcp.WithObject("extra_fields", mcp.Description(extraFieldsDescription)),
		),
		mutation(
			"remove_knowledge_article",
			"Remove knowledge article",
			"Delete a knowledge base article.",
			destructive,
			func(ctx context.Context, c *dixa.Client, a Arguments) (any, error) {
				return c.Knowledge.DeleteArticle(ctx, a.String("article_id"))
			},
			articleID,
		),
		mutation(
			"add_knowledge_category",
			"Add knowledge category",
			"Create a knowledge base category, optionally nested under a parent category.",
			additive,
			func(ctx context.Context, c *dixa.Client, a Arguments) (any, error) {
				var p dixa.CreateCategoryParams
				if err := a.DecodeInto(&p); err != nil {
					return nil, err
				}
				return c.Knowledge.CreateCategory(ctx, p)
			},
			mcp.WithString("name", mcp.Required(), mcp.Description("Name of the category")),
			mcp.WithString("parent_id", mcp.Description("ID of the parent category")),
			mcp.WithObject("extra_fields", mcp.Description(extraFieldsDescription)),
		),
	}
}

func queueTools() []Tool {
	queueID := id("queue_id", "ID of the queue")

	return []Tool{
		query(
			"list_queues",
			"List queues",
			"List the queues of the organization.",
			func(ctx context.Context, c *dixa.Client, _ Arguments) (any, error) {
				return c.Queues.List(ctx)
			},
		),
		query(
			"fetch_queue_by_id",
			"Fetch queue",
			"Get a single queue by ID.",
			func(ctx context.Context, c *dixa.Client, a Arguments) (any, error) {
				return c.Queues.Get(ctx, a.String("queue_id"))
			},
			queueID,
		),
		query(
			"check_queue_availability",
			"Check queue availability",
			"Check whether a queue currently has agents available.",
			func(ctx context.Context, c *dixa.Client, a Arguments) (any, error) {
				return c.Queues.Availability(ctx, a.String("queue_id"))
			},
			queueID,
		),
		query(
			"check_conversation_queue_position",
			"Check conversation queue position",
			"Get the position of a conversation in a queue.",
			func(ctx context.Context, c *dixa.Client, a Arguments) (any, error) {
				return c.Queues.ConversationPosition(ctx, a.String("queue_id"), a.String("conversation_id"))
			},
			queueID,
			id("conversation_id", "ID of the conversation"),
		),
		query(
			"list_queue_agents",
			"List queue agents",
			"List the agents assigned to a queue.",
			func(ctx context.Context, c *dixa.Client, a Arguments) (any, error) {
				return c.Queues.Members(ctx, a.String("queue_id"))
			},
			queueID,
		),
		mutation(
			"add_queue",
			"Add queue",
			"Create a queue. Only the name is required.",
			additive,
			func(ctx context.Context, c *dixa.Client, a Arguments) (any, error) {
				var p dixa.CreateQueueParams
				if err := a.DecodeInto(&p); err != nil {
					return nil, err
				}
				return c.Queues.Create(ctx, p)
			},
			mcp.WithString("name", mcp.Required(), mcp.Description("Name of the queue")),
			mcp.WithBoolean("call_functionality", mcp.Description("Whether the queue handles calls")),
			mcp.WithBoolean("is_default", mcp.Description("Whether this is the default queue")),
			mcp.WithObject("queue_thresholds", mcp.Description("Thresholds keyed by threshold type")),
			withInteger("offer_timeout", mcp.Description("Seconds before an offer to an agent times out")),
			mcp.WithString("offer_algorithm", mcp.Description("Offer algorithm, e.g. AllAtOnce or OneAtATimeRandom")),
			withInteger("wrapup_timeout", mcp.Description("Seconds of wrap-up time after a conversation")),
			withInteger("priority", mcp.Description("Priority of the queue")),
			mcp.WithBoolean("offer_abandoned_conversations", mcp.Description("Whether abandoned conversations are offered")),
			mcp.WithObject("do_not_offer_timeouts", mcp.Description("Do-not-offer timeouts keyed by channel")),
			mcp.WithBoolean("is_do_not_offer_enabled", mcp.Description("Whether do-not-offer is enabled")),
			mcp.WithObject("preferred_agent_timeouts", mcp.Description("Preferred agent timeouts keyed by channel")),
			mcp.WithBoolean("is_preferred_agent_enabled", mcp.Description("Whether preferred agent routing is enabled")),
			withInteger("preferred_agent_offline_timeout", mcp.Description("Seconds to wait for an offline preferred agent")),
			withInteger("personal_agent_offline_timeout", mcp.Description("Seconds to wait for an offline personal agent")),
			mcp.WithBoolean("is_restricted", mcp.Description("Whether the queue is restricted")),
			mcp.WithObject("extra_fields", mcp.Description(extraFieldsDescription)),
		),
		mutation(
			"assign_agents_to_queue",
			"Assign agents to queue",
			"Add agents to a queue.",
			idempotent,
			func(ctx context.Context, c *dixa.Client, a Arguments) (any, error) {
				var ids []string
				if err := a.Decode("agent_ids", &ids); err != nil {
					return nil, err
				}
				return c.Queues.AssignAgents(ctx, a.String("queue_id"), ids)
			},
			queueID,
			withStringArray("agent_ids", mcp.Required(), mcp.Description("IDs of the agents to assign")),
		),
		mutation(
			"remove_agents_from_queue",
			"Remove agents from queue",
			"Remove agents from a queue.",
			destructive,
			func(ctx context.Context, c *dixa.Client, a Arguments) (any, error) {
				var ids []string
				if err := a.Decode("agent_ids", &ids); err != nil {
					return nil, err
				}
				return c.Queues.RemoveAgents(ctx, a.String("queue_id"), ids)
			},
			queueID,
			withStringArray("agent_ids", mcp.Required(), mcp.Description("IDs of the agents to remove")),
		),
	}
}

func settingsTools() []Tool {
	return []Tool{
		query(
			"list_business_hours_schedules",
			"List business hours schedules",
			"List the business hours schedules of the organization.",
			func(ctx context.Context, c *dixa.Client, _ Arguments) (any, error) {
				return c.Settings.BusinessHoursSchedules(ctx)
			},
		),
		query(
			"check_business_hours_status",
			"Check business hours status",
			"Check whether a business hours schedule is open now, or at the given time.",
			func(ctx context.Context, c *dixa.Client, a Arguments) (any, error) {
				return c.Settings.BusinessHoursStatus(ctx, a.String("schedule_id"), a.String("timestamp"))
			},
			id("schedule_id", "ID of the business hours schedule"),
			mcp.WithString("timestamp", mcp.Description("Time to check (ISO 8601), defaults to now")),
		),
		query(
			"list_contact_endpoints",
			"List contact endpoints",
			"List the email addresses and phone numbers customers can reach the organization on.",
			func(ctx context.Context, c *dixa.Client, a Arguments) (any, error) {
				return c.Settings.ContactEndpoints(ctx, a.String("_type"))
			},
			mcp.WithString("_type", mcp.Description("Only return endpoints of this type, e.g. EmailEndpoint or TelephonyEndpoint")),
		),
		query(
			"fetch_contact_endpoint_by_id",
			"Fetch contact endpoint",
			"Get a single contact endpoint by ID.",
			func(ctx context.Context, c *dixa.Client, a Arguments) (any, error) {
				return c.Settings.ContactEndpoint(ctx, a.String("contact_endpoint_id"))
			},
			id("contact_endpoint_id", "ID of the contact endpoint (an email address or phone number)"),
		),
	}
}
