package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"capotokeys/internal/application"
	"capotokeys/internal/application/commands"
	"capotokeys/internal/domain"
)

// RegisterReadTools adds the tools that never touch the outputs directory
// plus the listing tool.
func RegisterReadTools(s *server.MCPServer, deps Deps) {
	s.AddTool(transposeTool(), transposeHandler(deps))
	s.AddTool(buildStemTool(), buildStemHandler())
	s.AddTool(parseStemTool(), parseStemHandler())
	s.AddTool(listOutputsTool(), listOutputsHandler(deps))
}

// --- transpose ---

func transposeTool() mcp.Tool {
	return mcp.NewTool("transpose",
		mcp.WithDescription("Transpose every chord in a chord sheet up by a number of semitones (the capo fret). Everything that is not a chord is returned unchanged."),
		mcp.WithString("text",
			mcp.Description("Chord sheet text"),
			mcp.Required(),
		),
		mcp.WithNumber("amount",
			mcp.Description("Semitones to transpose up, 0 to 11"),
			mcp.Required(),
		),
	)
}

func transposeHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewTransposeCommand(req.GetString("text", ""), req.GetInt("amount", -1))
		cmd.MaxTextLength = deps.MaxTextLength

		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Text), nil
	}
}

// --- build_stem ---

func buildStemTool() mcp.Tool {
	return mcp.NewTool("build_stem",
		mcp.WithDescription("Build the output file stem for a title and capo, e.g. \"My Song\" + 3 → my-song-capo3."),
		mcp.WithString("title",
			mcp.Description("Sheet title; blank falls back to chord-sheet"),
		),
		mcp.WithNumber("amount",
			mcp.Description("Capo / transpose amount, 0 to 11"),
			mcp.Required(),
		),
	)
}

func buildStemHandler() server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		amount, err := application.ValidateAmount("amount", req.GetInt("amount", -1))
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(domain.BuildStem(req.GetString("title", ""), amount)), nil
	}
}

// --- parse_stem ---

func parseStemTool() mcp.Tool {
	return mcp.NewTool("parse_stem",
		mcp.WithDescription("Describe an output file stem: group key, display label, title slug, capo and revision. Accepts legacy timestamp-prefixed stems and foreign names."),
		mcp.WithString("stem",
			mcp.Description("File name without extension"),
			mcp.Required(),
		),
	)
}

func parseStemHandler() server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		stem := req.GetString("stem", "")
		if err := application.ValidateRequired("stem", stem); err != nil {
			return toolError(err)
		}
		return jsonResult(domain.ParseStem(stem))
	}
}

// --- list_outputs ---

func listOutputsTool() mcp.Tool {
	return mcp.NewTool("list_outputs",
		mcp.WithDescription("List generated sheets grouped by song and capo, newest first."),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of files to consider"),
		),
	)
}

func listOutputsHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		limit := req.GetInt("limit", deps.ListLimit)
		result, err := commands.NewListOutputsCommand(deps.Repo, limit).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		if len(result.Groups) == 0 {
			return mcp.NewToolResultText("No outputs found."), nil
		}

		var sb strings.Builder
		for _, g := range result.Groups {
			names := make([]string, len(g.Files))
			for i, f := range g.Files {
				names[i] = f.Name
			}
			fmt.Fprintf(&sb, "%s  [%s]  %s  %s\n",
				g.Label, g.Key, g.ModTime.Format("2006-01-02 15:04:05"), strings.Join(names, ", "))
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return toolError(err)
	}
	return mcp.NewToolResultText(string(data)), nil
}
