package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"capotokeys/internal/adapters/editor"
	"capotokeys/internal/adapters/tui"
	"capotokeys/internal/adapters/viewer"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse outputs in a terminal UI",
	Long: `Open an interactive browser over the outputs directory. The list
refreshes when files are added or removed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		watcher, err := tui.NewWatcher(GetRepo().Dir())
		if err != nil {
			logger.Warn("live refresh disabled", zap.Error(err))
		} else {
			defer watcher.Close()
		}

		app := tui.NewApp(GetRepo(), editor.NewOpener(), viewer.NewOpener(GetRepo().Dir()), watcher, cfg.Web.OutputListLimit)
		p := tea.NewProgram(app, tea.WithAltScreen())

		if _, err := p.Run(); err != nil {
			return fmt.Errorf("tui: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
