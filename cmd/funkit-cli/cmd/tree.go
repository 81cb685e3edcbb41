package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"funkit/internal/application"
	"funkit/internal/domain"
)

var treeDepth int

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Print the derived document tree",
	Long: `Print the reference graph as a tree, starting from the roots.
Documents referenced by no other document are roots; when every document
is referenced, all documents are shown. Cycles are cut by depth.

Example:
  funkit-cli tree --depth 4`,
	RunE: func(cmd *cobra.Command, args []string) error {
		graph := application.NewDeriver(store)
		ids, err := graph.Roots(context.Background())
		if err != nil {
			return err
		}
		for _, id := range ids {
			if err := printSubtree(graph, graph.Describe(id), 0); err != nil {
				return err
			}
		}
		return nil
	},
}

func printSubtree(graph *application.Deriver, doc domain.ChildDoc, depth int) error {
	indent := strings.Repeat("  ", depth)
	fmt.Printf("%s%d %s\n", indent, doc.ID, doc.Title)

	if doc.Missing || depth >= treeDepth {
		return nil
	}
	children, err := graph.Children(doc.ID)
	if err != nil {
		return err
	}
	for _, child := range children {
		if err := printSubtree(graph, child, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	treeCmd.Flags().IntVar(&treeDepth, "depth", 3, "maximum depth to expand")
	rootCmd.AddCommand(treeCmd)
}
