package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"funkit/internal/domain"
)

var scanCmd = &cobra.Command{
	Use:   "scan <id>",
	Short: "List a document's references",
	Long: `Scan a document's body for [label](doc:ID) markup and print each
reference in order of appearance with its character offsets.

Example:
  funkit-cli scan 12`,
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
		if doc.IsBinary() {
			fmt.Println("Binary document, no references.")
			return nil
		}

		refs := domain.Scan(doc.Body)
		if len(refs) == 0 {
			fmt.Println("No references.")
			return nil
		}
		for _, r := range refs {
			fmt.Printf("%-20s → %-6d chars %d-%d\n", r.Label, r.TargetID, r.Start, r.End)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)
}
