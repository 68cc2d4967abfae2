// Package mcp exposes the transposer as Model Context Protocol tools.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"capotokeys/internal/domain"
	"capotokeys/internal/ports"
)

// Deps carries what the tool handlers need
type Deps struct {
	Repo          ports.OutputRepository
	Renderer      ports.DocumentRenderer
	Layout        domain.Layout
	Conflict      domain.ConflictMode
	MaxTextLength int
	ListLimit     int
	Logger        *zap.Logger
}

// NewServer builds an MCP server with every tool registered
func NewServer(version string, deps Deps) *server.MCPServer {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	s := server.NewMCPServer(
		"capotokeys",
		version,
		server.WithToolCapabilities(true),
	)

	s.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	RegisterReadTools(s, deps)
	RegisterWriteTools(s, deps)
	return s
}
