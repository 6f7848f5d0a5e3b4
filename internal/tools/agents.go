package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mozilla-ai/dixa-mcp/internal/dixa"
)

func organizationTools() []Tool {
	return []Tool{
		query(
			"fetch_organization_details",
			"Fetch organization details",
			"Get the details of the Dixa organization the API key belongs to.",
			func(ctx context.Context, c *dixa.Client, _ Arguments) (any, error) {
				return c.Organization.Get(ctx)
			},
		),
	}
}

func agentTools() []Tool {
	return []Tool{
		query(
			"list_agents",
			"List agents",
			"List the agents and admins of the organization. Filter by email or by phone number, not both.",
			func(ctx context.Context, c *dixa.Client, a Arguments) (any, error) {
				var p dixa.ListAgentsParams
				if err := a.DecodeInto(&p); err != nil {
					return nil, err
				}
				return c.Agents.List(ctx, p)
			},
			paging(
				mcp.WithString("email", mcp.Description("Only return the agent with this email address")),
				mcp.WithString("phone", mcp.Description("Only return the agent with this phone number")),
			)...,
		),
		query(
			"fetch_agent_by_id",
			"Fetch agent",
			"Get a single agent or admin by ID.",
			func(ctx context.Context, c *dixa.Client, a Arguments) (any, error) {
				return c.Agents.Get(ctx, a.String("agent_id"))
			},
			id("agent_id", "ID of the agent"),
		),
		query(
			"list_agents_presence",
			"List agents presence",
			"Get the presence status (online, away, working channels) of every agent.",
			func(ctx context.Context, c *dixa.Client, _ Arguments) (any, error) {
				return c.Agents.ListPresence(ctx)
			},
		),
		query(
			"list_agent_teams",
			"List agent teams",
			"List the teams an agent is a member of.",
			func(ctx context.Context, c *dixa.Client, a Arguments) (any, error) {
				return c.Agents.ListTeams(ctx, a.String("agent_id"))
			},
			id("agent_id", "ID of the agent"),
		),
		mutation(
			"add_agent",
			"Add agent",
			"Create a new agent in the organization. Display name and email are required.",
			additive,
			func(ctx context.Context, c *dixa.Client, a Arguments) (any, error) {
				var p dixa.CreateAgentParams
				if err := a.DecodeInto(&p); err != nil {
					return nil, err
				}
				return c.Agents.Create(ctx, p)
			},
			mcp.WithString("display_name", mcp.Required(), mcp.Description("Display name of the agent")),
			mcp.WithString("email", mcp.Required(), mcp.Description("Primary email address of the agent")),
			mcp.WithString("phone_number", mcp.Description("Primary phone number")),
			withStringArray("additional_emails", mcp.Description("Additional email addresses")),
			withStringArray("additional_phone_numbers", mcp.Description("Additional phone numbers")),
			mcp.WithString("first_name", mcp.Description("First name")),
			mcp.WithString("last_name", mcp.Description("Last name")),
			withStringArray("middle_names", mcp.Description("Middle names")),
			mcp.WithString("avatar_url", mcp.Description("URL of the avatar image")),
		),
		mutation(
			"modify_agent_partial",
			"Modify agent",
			"Partially update an agent. Only the supplied fields are changed.",
			idempotent,
			func(ctx context.Context, c *dixa.Client, a Arguments) (any, error) {
				var p dixa.PatchAgentParams
				if err := a.DecodeInto(&p); err != nil {
					return nil, err
				}
				return c.Agents.Patch(ctx, a.String("agent_id"), p)
			},
			id("agent_id", "ID of the agent"),
			mcp.WithString("display_name", mcp.Description("Display name of the agent")),
			withStringArray("additional_emails", mcp.Description("Additional email addresses, replaces the current list")),
			withStringArray("additional_phone_numbers", mcp.Description("Additional phone numbers, replaces the current list")),
			mcp.WithString("first_name", mcp.Description("First name")),
			mcp.WithString("last_name", mcp.Description("Last name")),
			withStringArray("middle_names", mcp.Description("Middle names, replaces the current list")),
			mcp.WithString("avatar_url", mcp.Description("URL of the avatar image")),
		),
		mutation(
			"update_agent_full",
			"Update agent",
			"Replace an agent. The display name is required, and omitted optional fields are not sent.",
			idempotent,
			func(ctx context.Context, c *dixa.Client, a Arguments) (any, error) {
				var p dixa.UpdateAgentParams
				if err := a.DecodeInto(&p); err != nil {
					return nil, err
				}
				return c.Agents.Update(ctx, a.String("agent_id"), p)
			},
			id("agent_id", "ID of the agent"),
			mcp.WithString("display_name", mcp.Required(), mcp.Description("Display name of the agent")),
			mcp.WithString("phone_number", mcp.Description("Primary phone number")),
			withStringArray("additional_emails", mcp.Description("Additional email addresses")),
			withStringArray("additional_phone_numbers", mcp.Description("Additional phone numbers")),
			mcp.WithString("first_name", mcp.Description("First name")),
			mcp.WithString("last_name", mcp.Description("Last name")),
			withStringArray("middle_names", mcp.Description("Middle names")),
			mcp.WithString("avatar_url", mcp.Description("URL of the avatar image")),
		),
		mutation(
			"set_agent_working_channel",
			"Set agent working channel",
			"Toggle whether an agent is working on a channel.",
			idempotent,
			func(ctx context.Context, c *dixa.Client, a Arguments) (any, error) {
				return c.Agents.SetWorkingChannel(ctx, a.String("agent_id"), a.String("channel"), a.Bool("working"))
			},
			id("agent_id", "ID of the agent"),
			mcp.WithString("channel", mcp.Required(), mcp.Enum(dixa.WorkingChannels...), mcp.Description("Channel to toggle")),
			mcp.WithBoolean("working", mcp.Required(), mcp.Description("Whether the agent works on the channel")),
		),
	}
}

func teamTools() []Tool {
	return []Tool{
		query(
			"list_teams",
			"List teams",
			"List the teams of the organization.",
			func(ctx context.Context, c *dixa.Client, _ Arguments) (any, error) {
				return c.Teams.List(ctx)
			},
		),
		query(
			"fetch_team_by_id",
			"Fetch team",
			"Get a single team by ID.",
			func(ctx context.Context, c *dixa.Client, a Arguments) (any, error) {
				return c.Teams.Get(ctx, a.String("team_id"))
			},
			id("team_id", "ID of the team"),
		),
		query(
			"list_team_agents",
			"List team agents",
			"List the agents that are members of a team.",
			func(ctx context.Context, c *dixa.Client, a Arguments) (any, error) {
				return c.Teams.Agents(ctx, a.String("team_id"))
			},
			id("team_id", "ID of the team"),
		),
		query(
			"list_team_presence",
			"List team presence",
			"Get the presence status of the members of a team.",
			func(ctx context.Context, c *dixa.Client, a Arguments) (any, error) {
				var page dixa.Page
				if err := a.DecodeInto(&page); err != nil {
					return nil, err
				}
				return c.Teams.Presence(ctx, a.String("team_id"), page)
			},
			paging(id("team_id", "ID of the team"))...,
		),
		mutation(
			"add_team",
			"Add team",
			"Create a new team.",
			additive,
			func(ctx context.Context, c *dixa.Client, a Arguments) (any, error) {
				return c.Teams.Create(ctx, a.String("name"))
			},
			mcp.WithString("name", mcp.Required(), mcp.Description("Name of the team")),
		),
		mutation(
			"add_agents_to_team",
			"Add agents to team",
			"Add agents to a team.",
			idempotent,
			func(ctx context.Context, c *dixa.Client, a Arguments) (any, error) {
				var ids []string
				if err := a.Decode("agent_ids", &ids); err != nil {
					return nil, err
				}
				return c.Teams.AddAgents(ctx, a.String("team_id"), ids)
			},
			id("team_id", "ID of the team"),
			withStringArray("agent_ids", mcp.Required(), mcp.Description("IDs of the agents to add")),
		),
		mutation(
			"remove_agents_from_team",
			"Remove agents from team",
			"Remove agents from a team.",
			destructive,
			func(ctx context.Context, c *dixa.Client, a Arguments) (any, error) {
				var ids []string
				if err := a.Decode("agent_ids", &ids); err != nil {
					return nil, err
				}
				return c.Teams.RemoveAgents(ctx, a.String("team_id"), ids)
			},
			id("team_id", "ID of the team"),
			withStringArray("agent_ids", mcp.Required(), mcp.Description("IDs of the agents to remove")),
		),
		mutation(
			"remove_team",
			"Remove team",
			"Delete a team.",
			destructive,
			func(ctx context.Context, c *dixa.Client, a Arguments) (any, error) {
				return c.Teams.Delete(ctx, a.String("team_id"))
			},
			id("team_id", "ID of the team"),
		),
	}
}
