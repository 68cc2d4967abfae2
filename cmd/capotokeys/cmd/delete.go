package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"capotokeys/internal/application/commands"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <file>",
	Short: "Delete one output file",
	Long: `Delete a single file from the outputs directory.

Warning: This operation cannot be undone.

Examples:
  capotokeys delete my-song-capo3.pdf`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		deleteCmd := commands.NewDeleteOutputCommand(GetRepo(), args[0])
		result, err := deleteCmd.Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

var deleteGroupCmd = &cobra.Command{
	Use:   "delete-group <group-key>",
	Short: "Delete every file of an output group",
	Long: `Delete the txt and pdf files that share a group key, as shown by
"capotokeys list --groups".

Warning: This operation cannot be undone.

Examples:
  capotokeys delete-group my-song-capo3
  capotokeys delete-group my-song-capo3-2`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		result, err := commands.NewDeleteGroupCommand(GetRepo(), args[0]).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(deleteGroupCmd)
}
