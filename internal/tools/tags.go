package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mozilla-ai/dixa-mcp/internal/dixa"
)

func tagTools() []Tool {
	return []Tool{
		query(
			"list_tags",
			"List tags",
			"List the conversation tags of the organization.",
			func(ctx context.Context, c *dixa.Client, a Arguments) (any, error) {
				return c.Tags.List(ctx, a.OptionalBool("include_deactivated"))
			},
			mcp.WithBoolean("include_deactivated", mcp.Description("Also return deactivated tags")),
		),
		query(
			"fetch_tag_by_id",
			"Fetch tag",
			"Get a single tag by ID.",
			func(ctx context.Context, c *dixa.Client, a Arguments) (any, error) {
				return c.Tags.Get(ctx, a.String("tag_id"))
			},
			id("tag_id", "ID of the tag"),
		),
		mutation(
			"add_tag",
			"Add tag",
			"Create a new conversation tag.",
			additive,
			func(ctx context.Context, c *dixa.Client, a Arguments) (any, error) {
				var p dixa.CreateTagParams
				if err := a.DecodeInto(&p); err != nil {
					return nil, err
				}
				return c.Tags.Create(ctx, p)
			},
			mcp.WithString("name", mcp.Required(), mcp.Description("Name of the tag")),
			mcp.WithString("color", mcp.Description("Hex color of the tag, e.g. #FF0000")),
		),
		mutation(
			"activate_tag",
			"Activate tag",
			"Activate a deactivated tag.",
			idempotent,
			func(ctx context.Context, c *dixa.Client, a Arguments) (any, error) {
				return c.Tags.Activate(ctx, a.String("tag_id"))
			},
			id("tag_id", "ID of the tag"),
		),
		mutation(
			"deactivate_tag",
			"Deactivate tag",
			"Deactivate a tag so it can no longer be applied.",
			idempotent,
			func(ctx context.Context, c *dixa.Client, a Arguments) (any, error) {
				return c.Tags.Deactivate(ctx, a.String("tag_id"))
			},
			id("tag_id", "ID of the tag"),
		),
		mutation(
			"remove_tag",
			"Remove tag",
			"Delete a tag.",
			destructive,
			func(ctx context.Context, c *dixa.Client, a Arguments) (any, error) {
				return c.Tags.Delete(ctx, a.String("tag_id"))
			},
			id("tag_id", "ID of the tag"),
		),
	}
}
