package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"capotokeys/internal/application/commands"
)

var (
	listLimit  int
	listGroups bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List generated outputs, newest first",
	Long: `List the txt and pdf files in the outputs directory, most recently
modified first.

Examples:
  capotokeys list
  capotokeys list --limit 20
  capotokeys list --groups`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		result, err := commands.NewListOutputsCommand(GetRepo(), listLimit).Execute(ctx)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(result.Files) == 0 {
			fmt.Fprintln(out, "No outputs found.")
			return nil
		}

		if !listGroups {
			for _, f := range result.Files {
				fmt.Fprintf(out, "%s  %7.1f KB  %s\n",
					f.ModTime.Format("2006-01-02 15:04:05"), float64(f.Size)/1024, f.Name)
			}
			return nil
		}

		for _, g := range result.Groups {
			names := make([]string, len(g.Files))
			for i, f := range g.Files {
				names[i] = f.Name
			}
			fmt.Fprintf(out, "%s  [%s]\n    %s\n", g.Label, g.Key, strings.Join(names, ", "))
		}
		return nil
	},
}

func init() {
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", commands.DefaultListLimit, "maximum number of files")
	listCmd.Flags().BoolVar(&listGroups, "groups", false, "group files by title and capo")
	rootCmd.AddCommand(listCmd)
}
