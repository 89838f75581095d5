package mcp

import "github.com/mark3labs/mcp-go/mcp"

// listGuidesTool defines the list_guides MCP tool.
var listGuidesTool = mcp.NewTool("list_guides",
	mcp.WithDescription("List every guide in reading order with its slug, title and route."),
)

// getGuideTool defines the get_guide MCP tool.
var getGuideTool = mcp.NewTool("get_guide",
	mcp.WithDescription("Get the content of a guide by slug."),
	mcp.WithString("slug",
		mcp.Required(),
		mcp.Description("Guide slug, e.g. \"quickstart\""),
	),
	mcp.WithString("format",
		mcp.Description("Content format (default markdown)"),
		mcp.Enum("markdown", "html"),
	),
)

// previousGuideTool defines the previous_guide MCP tool.
var previousGuideTool = mcp.NewTool("previous_guide",
	mcp.WithDescription("Get the guide that comes before the given guide in reading order."),
	mcp.WithString("slug",
		mcp.Required(),
		mcp.Description("Slug of the current guide"),
	),
)

// nextGuideTool defines the next_guide MCP tool.
var nextGuideTool = mcp.NewTool("next_guide",
	mcp.WithDescription("Get the guide that comes after the given guide in reading order."),
	mcp.WithString("slug",
		mcp.Required(),
		mcp.Description("Slug of the current guide"),
	),
)
