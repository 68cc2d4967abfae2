package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"capotokeys/internal/adapters/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web frontend",
	Long: `Serve the HTTP frontend on web.host:web.port (WEB_HOST, WEB_PORT).

The server stops gracefully on SIGINT or SIGTERM.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if !verbose {
			gin.SetMode(gin.ReleaseMode)
		}

		handler := web.NewHandler(GetRepo(), renderer, web.Options{
			Layout:        cfg.PDF,
			Conflict:      cfg.Conflict(),
			MaxTextLength: cfg.Web.MaxTextLength,
			ListLimit:     cfg.Web.OutputListLimit,
		}, logger)
		router := web.NewRouter(handler, int64(cfg.Web.MaxRequestBytes), logger)

		logger.Info("starting web frontend",
			zap.String("version", version),
			zap.String("outputs_dir", GetRepo().Dir()),
		)
		return web.NewServer(cfg.Addr(), router, logger).Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
