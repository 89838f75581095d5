package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/ziadkadry99/guidebook/internal/guide"
)

// Version is set via ldflags at build time.
var Version = "dev"

// GuideSource supplies the current guide list.
type GuideSource interface {
	Guides() guide.Guides
}

// Static serves a fixed guide list.
type Static guide.Guides

func (s Static) Guides() guide.Guides { return guide.Guides(s) }

// Server wraps an MCP server that exposes guide navigation tools.
type Server struct {
	source   GuideSource
	renderer *guide.Renderer
	mcp      *server.MCPServer
}

// NewServer creates a new MCP server over source.
func NewServer(source GuideSource) *Server {
	s := &Server{
		source:   source,
		renderer: guide.NewRenderer(),
	}

	s.mcp = server.NewMCPServer(
		"guidebook",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(listGuidesTool, s.handleListGuides)
	s.mcp.AddTool(getGuideTool, s.handleGetGuide)
	s.mcp.AddTool(previousGuideTool, s.handlePreviousGuide)
	s.mcp.AddTool(nextGuideTool, s.handleNextGuide)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
