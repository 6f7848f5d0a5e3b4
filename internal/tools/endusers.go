package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mozilla-ai/dixa-mcp/internal/dixa"
)

// endUserFields adds the optional contact fields shared by the end user create and update tools.
func endUserFields(opts ...mcp.ToolOption) []mcp.ToolOption {
	return append(opts,
		mcp.WithString("email", mcp.Description("Primary email address")),
		mcp.WithString("phone_number", mcp.Description("Primary phone number")),
		withStringArray("additional_emails", mcp.Description("Additional email addresses")),
		withStringArray("additional_phone_numbers", mcp.Description("Additional phone numbers")),
		mcp.WithString("first_name", mcp.Description("First name")),
		mcp.WithString("last_name", mcp.Description("Last name")),
		withStringArray("middle_names", mcp.Description("Middle names")),
		mcp.WithString("avatar_url", mcp.Description("URL of the avatar image")),
		mcp.WithString("external_id", mcp.Description("ID of the end user in an external system")),
	)
}

// bulkUsers adds the end_users argument of the bulk tools.
func bulkUsers(description string) mcp.ToolOption {
	return withObjectArray("end_users", mcp.Required(), mcp.Description(description))
}

func endUserTools() []Tool {
	userID := id("user_id", "ID of the end user")

	runBulk := func(op func(*dixa.EndUsersService, context.Context, []map[string]any) (*dixa.BulkResult, error)) handlerFunc {
		return func(ctx context.Context, c *dixa.Client, a Arguments) (any, error) {
			var users []map[string]any
			if err := a.Decode("end_users", &users); err != nil {
				return nil, err
			}
			return op(c.EndUsers, ctx, users)
		}
	}

	return []Tool{
		query(
			"list_end_users",
			"List end users",
			"List the end users (contacts) of the organization.",
			func(ctx context.Context, c *dixa.Client, a Arguments) (any, error) {
				var page dixa.Page
				if err := a.DecodeInto(&page); err != nil {
					return nil, err
				}
				return c.EndUsers.List(ctx, page)
			},
			paging()...,
		),
		query(
			"fetch_end_user_by_id",
			"Fetch end user",
			"Get a single end user by ID.",
			func(ctx context.Context, c *dixa.Client, a Arguments) (any, error) {
				return c.EndUsers.Get(ctx, a.String("user_id"))
			},
			userID,
		),
		query(
			"list_end_user_conversations",
			"List end user conversations",
			"List the conversations requested by an end user.",
			func(ctx context.Context, c *dixa.Client, a Arguments) (any, error) {
				var page dixa.Page
				if err := a.DecodeInto(&page); err != nil {
					return nil, err
				}
				return c.EndUsers.Conversations(ctx, a.String("user_id"), page)
			},
			paging(userID)...,
		),
		mutation(
			"add_end_user",
			"Add end user",
			"Create a new end user. Only the display name is required.",
			additive,
			func(ctx context.Context, c *dixa.Client, a Arguments) (any, error) {
				var p dixa.CreateEndUserParams
				if err := a.DecodeInto(&p); err != nil {
					return nil, err
				}
				return c.EndUsers.Create(ctx, p)
			},
			endUserFields(mcp.WithString("display_name", mcp.Required(), mcp.Description("Display name of the end user")))...,
		),
		mutation(
			"add_end_users_bulk",
			"Add end users in bulk",
			"Create several end users in one request. Each end user reports its own success or failure.",
			additive,
			runBulk((*dixa.EndUsersService).CreateBulk),
			bulkUsers(`End users to create, using API field names, e.g. [{"displayName": "Jane Doe", "email": "jane@example.com"}]`),
		),
		mutation(
			"modify_end_user_partial",
			"Modify end user",
			"Partially update an end user. Only the supplied fields are changed, and a supplied empty list clears that list.",
			idempotent,
			func(ctx context.Context, c *dixa.Client, a Arguments) (any, error) {
				var p dixa.PatchEndUserParams
				if err := a.DecodeInto(&p); err != nil {
					return nil, err
				}
				return c.EndUsers.Patch(ctx, a.String("user_id"), p)
			},
			endUserFields(userID, mcp.WithString("display_name", mcp.Description("Display name of the end user")))...,
		),
		mutation(
			"update_end_user",
			"Update end user",
			"Replace an end user. The display name is required.",
			idempotent,
			func(ctx context.Context, c *dixa.Client, a Arguments) (any, error) {
				var p dixa.UpdateEndUserParams
				if err := a.DecodeInto(&p); err != nil {
					return nil, err
				}
				return c.EndUsers.Update(ctx, a.String("user_id"), p)
			},
			endUserFields(userID, mcp.WithString("display_name", mcp.Required(), mcp.Description("Display name of the end user")))...,
		),
		mutation(
			"modify_end_users_bulk",
			"Modify end users in bulk",
			"Partially update several end users in one request. Each end user reports its own success or failure.",
			idempotent,
			runBulk((*dixa.EndUsersService).PatchBulk),
			bulkUsers(`End user patches, using API field names and including each "id", e.g. [{"id": "...", "displayName": "Jane Doe"}]`),
		),
		mutation(
			"update_end_users_bulk",
			"Update end users in bulk",
			"Replace several end users in one request. Each end user reports its own success or failure.",
			idempotent,
			runBulk((*dixa.EndUsersService).UpdateBulk),
			bulkUsers(`End users, using API field names and including each "id", e.g. [{"id": "...", "displayName": "Jane Doe"}]`),
		),
		mutation(
			"anonymize_end_user",
			"Anonymize end user",
			"Request anonymization of an end user and their data. This cannot be undone.",
			destructive,
			func(ctx context.Context, c *dixa.Client, a Arguments) (any, error) {
				return c.EndUsers.Anonymize(ctx, a.String("user_id"), a.Bool("force"))
			},
			userID,
			mcp.WithBoolean("force", mcp.Description("Anonymize even if the end user has open conversations")),
		),
	}
}

func customAttributeTools() []Tool {
	return []Tool{
		query(
			"list_custom_attributes",
			"List custom attributes",
			"List the custom attribute definitions of the organization.",
			func(ctx context.Context, c *dixa.Client, _ Arguments) (any, error) {
				return c.CustomAttributes.List(ctx)
			},
		),
		query(
			"fetch_custom_attribute_by_id",
			"Fetch custom attribute",
			"Get a single custom attribute definition by ID.",
			func(ctx context.Context, c *dixa.Client, a Arguments) (any, error) {
				return c.CustomAttributes.Get(ctx, a.String("custom_attribute_id"))
			},
			id("custom_attribute_id", "ID of the custom attribute"),
		),
		mutation(
			"update_conversation_custom_attributes",
			"Update conversation custom attributes",
			"Set custom attribute values on a conversation.",
			idempotent,
			func(ctx context.Context, c *dixa.Client, a Arguments) (any, error) {
				var attrs map[string]any
				if err := a.Decode("custom_attributes", &attrs); err != nil {
					return nil, err
				}
				return c.Conversations.PatchCustomAttributes(ctx, a.String("conversation_id"), attrs)
			},
			id("conversation_id", "ID of the conversation"),
			mcp.WithObject("custom_attributes", mcp.Required(), mcp.Description("Values keyed by custom attribute ID")),
		),
		mutation(
			"update_end_user_custom_attributes",
			"Update end user custom attributes",
			"Set custom attribute values on an end user.",
			idempotent,
			func(ctx context.Context, c *dixa.Client, a Arguments) (any, error) {
				var attrs map[string]any
				if err := a.Decode("custom_attributes", &attrs); err != nil {
					return nil, err
				}
				return c.CustomAttributes.PatchEndUser(ctx, a.String("user_id"), attrs)
			},
			id("user_id", "ID of the end user"),
			mcp.WithObject("custom_attributes", mcp.Required(), mcp.Description("Values keyed by custom attribute ID")),
		),
	}
}
