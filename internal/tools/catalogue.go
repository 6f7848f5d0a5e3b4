package tools

import (
	"slices"

	"github.com/mark3labs/mcp-go/mcp"
)

// modifiesData is appended to the description of every tool that is not read-only.
const modifiesData = "\n\nWARNING: this tool modifies data in Dixa."

// effect classifies the side effects of a tool that modifies data.
type effect int

const (
	// additive tools create new data.
	additive effect = iota

	// idempotent tools update data, and repeating the call has no further effect.
	idempotent

	// destructive tools delete or irreversibly alter data.
	destructive
)

// catalogue returns every tool the server knows about.
func catalogue() []Tool {
	return slices.Concat(
		organizationTools(),
		agentTools(),
		teamTools(),
		tagTools(),
		conversationTools(),
		endUserTools(),
		customAttributeTools(),
		knowledgeTools(),
		queueTools(),
		settingsTools(),
		analyticsTools(),
	)
}

// query defines a read-only tool.
func query(name string, title string, description string, run handlerFunc, opts ...mcp.ToolOption) Tool {
	base := []mcp.ToolOption{
		mcp.WithDescription(description),
		mcp.WithTitleAnnotation(title),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
	}

	return Tool{Tool: mcp.NewTool(name, append(base, opts...)...), run: run}
}

// mutation defines a tool that modifies data.
func mutation(name string, title string, description string, e effect, run handlerFunc, opts ...mcp.ToolOption) Tool {
	base := []mcp.ToolOption{
		mcp.WithDescription(description + modifiesData),
		mcp.WithTitleAnnotation(title),
		mcp.WithReadOnlyHintAnnotation(false),
		mcp.WithDestructiveHintAnnotation(e == destructive),
		mcp.WithIdempotentHintAnnotation(e != additive),
		mcp.WithOpenWorldHintAnnotation(true),
	}

	return Tool{Tool: mcp.NewTool(name, append(base, opts...)...), run: run}
}

// id adds a required identifier argument.
func id(name string, description string) mcp.ToolOption {
	return mcp.WithString(name, mcp.Required(), mcp.Description(description))
}

// paging adds the optional page_key and page_limit arguments.
func paging(opts ...mcp.ToolOption) []mcp.ToolOption {
	return append(opts,
		mcp.WithString("page_key", mcp.Description("Pagination key returned by a previous response, to fetch the next page")),
		withInteger("page_limit", mcp.Description("Maximum number of results per page")),
	)
}
