package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"funkit/internal/application"
	"funkit/internal/domain"
)

var rootsCmd = &cobra.Command{
	Use:   "roots",
	Short: "List root documents",
	Long: `List documents referenced by no other document. When every document
is referenced (a fully cyclic corpus), all documents are listed.

Example:
  funkit-cli roots`,
	RunE: func(cmd *cobra.Command, args []string) error {
		graph := application.NewDeriver(store)
		ids, err := graph.Roots(context.Background())
		if err != nil {
			return err
		}
		for _, id := range ids {
			desc := graph.Describe(id)
			fmt.Printf("%-6d %s\n", desc.ID, desc.Title)
		}
		return nil
	},
}

var childrenCmd = &cobra.Command{
	Use:   "children <id>",
	Short: "List a document's referenced children",
	Long: `List the documents referenced from a document's body, deduplicated
in order of first occurrence. Unresolvable targets are shown as (missing).

Example:
  funkit-cli children 12`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, ok := domain.ParseDocID(args[0])
		if !ok {
			return fmt.Errorf("not a document id: %q", args[0])
		}

		graph := application.NewDeriver(store)
		children, err := graph.Children(id)
		if err != nil {
			return err
		}
		for _, c := range children {
			fmt.Printf("%-6d %s\n", c.ID, c.Title)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rootsCmd)
	rootCmd.AddCommand(childrenCmd)
}
