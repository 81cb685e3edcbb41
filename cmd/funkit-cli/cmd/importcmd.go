package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"funkit/internal/application"
	"funkit/internal/domain"
)

var (
	importMaxNodes int
	importMaxDepth int
)

var importCmd = &cobra.Command{
	Use:   "import <file.opml>",
	Short: "Import an OPML outline and print it as a tree",
	Long: `Parse an OPML (or similar XML outline) file and print the resulting
tree with hierarchical numbers. Oversized outlines are cut off at the
node and depth limits and reported as truncated.

Example:
  funkit-cli import notes.opml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		result, err := domain.ImportOutlineString(string(data), domain.OutlineOptions{
			MaxNodes: importMaxNodes,
			MaxDepth: importMaxDepth,
		})
		if err != nil {
			// A malformed outline is not fatal: show the raw text.
			logger.Warn("outline parse failed, showing raw content", "err", err)
			fmt.Println(string(data))
			return nil
		}

		ctrl := application.NewController(nil, nil)
		ctrl.LoadOutline(result.Nodes)
		for _, root := range ctrl.Roots() {
			printOutlineItem(root)
		}

		if result.Truncated {
			logger.Warn("outline truncated", "max-nodes", importMaxNodes, "max-depth", importMaxDepth)
		}
		return nil
	},
}

func printOutlineItem(it *application.TreeItem) {
	fmt.Printf("%-12s %s\n", it.Number, it.Title)
	for _, child := range it.Children() {
		printOutlineItem(child)
	}
}

func init() {
	importCmd.Flags().IntVar(&importMaxNodes, "max-nodes", domain.DefaultMaxOutlineNodes, "node budget before truncation")
	importCmd.Flags().IntVar(&importMaxDepth, "max-depth", domain.DefaultMaxOutlineDepth, "depth budget before truncation")
	rootCmd.AddCommand(importCmd)
}
