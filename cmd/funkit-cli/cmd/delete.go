package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"funkit/internal/domain"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a document",
	Long: `Permanently delete a document. Other documents referencing it keep
their markup; the reference shows up as (missing) in the tree.

Example:
  funkit-cli delete 12`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, ok := domain.ParseDocID(args[0])
		if !ok {
			return fmt.Errorf("not a document id: %q", args[0])
		}
		if err := store.Delete(id); err != nil {
			return err
		}
		fmt.Printf("Deleted document %d\n", id)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
