package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/guidebook/internal/guide"
	"github.com/ziadkadry99/guidebook/internal/route"
)

// handleListGuides lists all guides in reading order.
func (s *Server) handleListGuides(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	guides := s.source.Guides()
	if len(guides) == 0 {
		return mcp.NewToolResultText("No guides found. Add markdown files to the guides directory."), nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d guide(s):\n", len(guides)))
	for i, g := range guides {
		sb.WriteString(fmt.Sprintf("%d. %s (slug: %s, route: %s)\n", i+1, g.Title, g.Slug, route.Guide(g.Slug).String()))
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// handleGetGuide returns a guide's content.
func (s *Server) handleGetGuide(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	g, errResult := s.lookup(request)
	if errResult != nil {
		return errResult, nil
	}

	switch request.GetString("format", "markdown") {
	case "html":
		body, err := s.renderer.Render(g)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to render guide: %v", err)), nil
		}
		return mcp.NewToolResultText(body), nil
	default:
		return mcp.NewToolResultText(formatGuide(g) + "\n" + g.Body), nil
	}
}

// handlePreviousGuide returns the guide before the given one.
func (s *Server) handlePreviousGuide(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	g, errResult := s.lookup(request)
	if errResult != nil {
		return errResult, nil
	}
	prev, ok := guide.PreviousGuide(g, s.source.Guides())
	if !ok {
		return mcp.NewToolResultText(fmt.Sprintf("%q is the first guide; there is no previous guide.", g.Slug)), nil
	}
	return mcp.NewToolResultText(formatGuide(prev)), nil
}

// handleNextGuide returns the guide after the given one.
func (s *Server) handleNextGuide(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	g, errResult := s.lookup(request)
	if errResult != nil {
		return errResult, nil
	}
	next, ok := guide.NextGuide(g, s.source.Guides())
	if !ok {
		return mcp.NewToolResultText(fmt.Sprintf("%q is the last guide; there is no next guide.", g.Slug)), nil
	}
	return mcp.NewToolResultText(formatGuide(next)), nil
}

// lookup resolves the slug argument, or returns a tool error result.
func (s *Server) lookup(request mcp.CallToolRequest) (guide.Guide, *mcp.CallToolResult) {
	slug, err := request.RequireString("slug")
	if err != nil {
		return guide.Guide{}, mcp.NewToolResultError("missing required parameter: slug")
	}
	g, ok := s.source.Guides().BySlug(slug)
	if !ok {
		return guide.Guide{}, mcp.NewToolResultError(fmt.Sprintf("no guide with slug %q", slug))
	}
	return g, nil
}

// formatGuide summarizes a guide's metadata for agent consumption.
func formatGuide(g guide.Guide) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Title: %s\n", g.Title))
	sb.WriteString(fmt.Sprintf("Slug: %s\n", g.Slug))
	sb.WriteString(fmt.Sprintf("Route: %s\n", route.Guide(g.Slug).String()))
	if g.EditURL != "" {
		sb.WriteString(fmt.Sprintf("Edit: %s\n", g.EditURL))
	}
	return sb.String()
}
