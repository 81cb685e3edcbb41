package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"funkit/internal/domain"
)

var (
	updateBody   string
	updateStdin  bool
	updateAppend bool
)

var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Replace or append to a document body",
	Long: `Replace a text document's body, or append to it with --append.

Examples:
  funkit-cli update 12 --body "new body"
  funkit-cli update 12 --append --body "one more line"
  cat notes.txt | funkit-cli update 12 --stdin`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, ok := domain.ParseDocID(args[0])
		if !ok {
			return fmt.Errorf("not a document id: %q", args[0])
		}

		body := updateBody
		if updateStdin {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return err
			}
			body = string(data)
		}

		if updateAppend {
			return store.Append(id, body)
		}
		return store.Update(id, body)
	},
}

func init() {
	updateCmd.Flags().StringVar(&updateBody, "body", "", "new body text")
	updateCmd.Flags().BoolVar(&updateStdin, "stdin", false, "read the body from stdin")
	updateCmd.Flags().BoolVar(&updateAppend, "append", false, "append instead of replacing")
	rootCmd.AddCommand(updateCmd)
}
