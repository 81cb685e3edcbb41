package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"funkit/internal/application"
	"funkit/internal/domain"
)

var parentCmd = &cobra.Command{
	Use:   "parent <id> [parent-id]",
	Short: "Show or set a document's explicit parent",
	Long: `With one argument, print the document's ancestor chain from the root
down. With two, record the second id as the explicit parent; a parent id
of 0 clears the relation.

The explicit parent relation is what jump navigation uses to reveal a
document inside the tree.

Examples:
  funkit-cli parent 12
  funkit-cli parent 12 3
  funkit-cli parent 12 0`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, ok := domain.ParseDocID(args[0])
		if !ok {
			return fmt.Errorf("not a document id: %q", args[0])
		}

		if len(args) == 2 {
			parent, ok := domain.ParseDocID(args[1])
			if !ok && args[1] != "0" {
				return fmt.Errorf("not a document id: %q", args[1])
			}
			return store.SetParent(id, parent)
		}

		graph := application.NewDeriver(store)
		chain, err := graph.AncestorChain(id)
		if err != nil {
			return err
		}
		if len(chain) == 0 {
			fmt.Println("No ancestors.")
			return nil
		}
		for _, ancestor := range chain {
			desc := graph.Describe(ancestor)
			fmt.Printf("%-6d %s\n", desc.ID, desc.Title)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(parentCmd)
}
