package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"funkit/internal/domain"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a document",
	Long: `Print a document's title and body. Accepts a bare id or a
"Doc 12" style reference.

Example:
  funkit-cli show 12`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, ok := domain.ParseDocID(args[0])
		if !ok {
			return fmt.Errorf("not a document id: %q", args[0])
		}

		doc, err := store.Get(id)
		if err != nil {
			return err
		}
		if doc == nil {
			return fmt.Errorf("no document with id %d", id)
		}

		fmt.Printf("#%d %s\n\n", doc.ID, doc.DisplayTitle())
		if doc.IsBinary() {
			fmt.Println(doc.Preview())
			return nil
		}
		fmt.Println(doc.Body)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
