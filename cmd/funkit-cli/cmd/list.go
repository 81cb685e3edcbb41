package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all documents",
	Long: `List every document with its id, title, and a one-line preview.
Binary documents show a size placeholder instead of content.

Example:
  funkit-cli list`,
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := store.Index()
		if err != nil {
			return err
		}
		for _, e := range entries {
			fmt.Printf("%-6d %-30s %s\n", e.ID, e.Title, e.Description)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
