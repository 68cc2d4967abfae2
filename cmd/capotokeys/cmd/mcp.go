package cmd

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	mcpadapter "capotokeys/internal/adapters/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the transposer as MCP tools over stdio",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := mcpadapter.NewServer(version, mcpadapter.Deps{
			Repo:          GetRepo(),
			Renderer:      renderer,
			Layout:        cfg.PDF,
			Conflict:      cfg.Conflict(),
			MaxTextLength: cfg.Web.MaxTextLength,
			ListLimit:     cfg.Web.OutputListLimit,
			Logger:        logger,
		})
		return server.ServeStdio(s)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
