package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var (
	createBody   string
	createStdin  bool
	createParent int64
	createBinary string
)

var createCmd = &cobra.Command{
	Use:   "create <title>",
	Short: "Create a new document",
	Long: `Create a new document and print its id.

The body comes from --body, from stdin with --stdin, or stays empty.
--file stores the named file's raw bytes as a binary document instead.
--parent records an explicit parent relation used by jump navigation.

Examples:
  funkit-cli create "Reading notes" --body "see [Intro](doc:1)"
  cat notes.txt | funkit-cli create "Reading notes" --stdin
  funkit-cli create "Cover" --file cover.png --parent 1`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		title := args[0]

		var (
			id  int64
			err error
		)
		switch {
		case createBinary != "":
			data, readErr := os.ReadFile(createBinary)
			if readErr != nil {
				return readErr
			}
			id, err = store.AddBinary(title, data)

		case createStdin:
			data, readErr := io.ReadAll(os.Stdin)
			if readErr != nil {
				return readErr
			}
			id, err = store.Add(title, string(data))

		default:
			id, err = store.Add(title, createBody)
		}
		if err != nil {
			return err
		}

		if createParent != 0 {
			if err := store.SetParent(id, createParent); err != nil {
				return err
			}
		}

		logger.Debug("created document", "id", id, "title", title)
		fmt.Println(id)
		return nil
	},
}

func init() {
	createCmd.Flags().StringVar(&createBody, "body", "", "document body")
	createCmd.Flags().BoolVar(&createStdin, "stdin", false, "read the body from stdin")
	createCmd.Flags().StringVar(&createBinary, "file", "", "store the file's bytes as a binary document")
	createCmd.Flags().Int64Var(&createParent, "parent", 0, "explicit parent document id")
	rootCmd.AddCommand(createCmd)
}
