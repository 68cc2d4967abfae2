package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"capotokeys/internal/application/commands"
	"capotokeys/internal/domain"
)

// RegisterWriteTools adds the tools that modify the outputs directory.
func RegisterWriteTools(s *server.MCPServer, deps Deps) {
	s.AddTool(generateTool(), generateHandler(deps))
	s.AddTool(deleteGroupTool(), deleteGroupHandler(deps))
}

// --- generate ---

func generateTool() mcp.Tool {
	return mcp.NewTool("generate",
		mcp.WithDescription("Transpose a chord sheet and save it as {stem}.txt (and {stem}.pdf). An existing stem gets a -2, -3, ... suffix unless conflict is overwrite."),
		mcp.WithString("text",
			mcp.Description("Chord sheet text"),
			mcp.Required(),
		),
		mcp.WithString("title",
			mcp.Description("Sheet title, defaults to Chord Sheet"),
		),
		mcp.WithNumber("amount",
			mcp.Description("Capo / semitones up, 0 to 11"),
			mcp.Required(),
		),
		mcp.WithBoolean("pdf",
			mcp.Description("Also render a PDF (default true)"),
		),
		mcp.WithString("conflict",
			mcp.Description("suffix or overwrite; defaults to the server setting"),
			mcp.Enum("suffix", "overwrite"),
		),
	)
}

func generateHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewGenerateCommand(deps.Repo, deps.Renderer,
			req.GetString("text", ""), req.GetString("title", ""), req.GetInt("amount", -1))
		cmd.PDF = req.GetBool("pdf", true)
		cmd.Layout = deps.Layout
		cmd.MaxTextLength = deps.MaxTextLength
		cmd.Conflict = deps.Conflict
		if mode := req.GetString("conflict", ""); mode != "" {
			cmd.Conflict = domain.ParseConflictMode(mode)
		}

		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		deps.Logger.Info("generated sheet", zap.String("stem", result.Stem), zap.Strings("files", result.Files))
		return mcp.NewToolResultText(fmt.Sprintf("%s\n\n%s", result.Message, result.Text)), nil
	}
}

// --- delete_group ---

func deleteGroupTool() mcp.Tool {
	return mcp.NewTool("delete_group",
		mcp.WithDescription("Delete every saved file whose stem belongs to a group key, e.g. my-song-capo3."),
		mcp.WithString("group_key",
			mcp.Description("Group key as reported by list_outputs or parse_stem"),
			mcp.Required(),
		),
	)
}

func deleteGroupHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewDeleteGroupCommand(deps.Repo, req.GetString("group_key", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}
