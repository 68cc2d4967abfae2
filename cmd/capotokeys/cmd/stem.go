package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"capotokeys/internal/application"
	"capotokeys/internal/domain"
)

var stemCmd = &cobra.Command{
	Use:   "stem",
	Short: "Build or parse output file stems",
	Long: `Inspect the naming scheme used for output files.

Examples:
  capotokeys stem build "My Song" 3
  capotokeys stem parse 20230101-120000-my-song-capo5`,
}

var stemBuildCmd = &cobra.Command{
	Use:   "build <title> <amount>",
	Short: "Print the canonical stem for a title and capo",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := domain.ParseTransposeAmount(args[1])
		if err != nil {
			return &application.ValidationError{Field: "amount", Message: err.Error()}
		}
		fmt.Fprintln(cmd.OutOrStdout(), application.BuildStem(args[0], amount))
		return nil
	},
}

var stemParseCmd = &cobra.Command{
	Use:   "parse <stem>",
	Short: "Print the descriptor of a stem as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := json.MarshalIndent(application.ParseStem(args[0]), "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(stemCmd)
	stemCmd.AddCommand(stemBuildCmd)
	stemCmd.AddCommand(stemParseCmd)
}
