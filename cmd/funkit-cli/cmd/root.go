package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"funkit/internal/adapters/sqlite"
	"funkit/internal/config"
)

var (
	dbPath  string
	verbose bool
	store   *sqlite.Store
	logger  *log.Logger
)

var rootCmd = &cobra.Command{
	Use:   "funkit-cli",
	Short: "CLI for browsing and editing a funkit document database",
	Long: `funkit-cli is a command-line interface for a funkit document database.

Documents reference each other with inline [label](doc:ID) markup; the
reference graph is derived from document bodies, never stored. Commands
cover document CRUD, reference scanning, the derived tree, and OPML
outline import.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		level := log.WarnLevel
		if verbose {
			level = log.DebugLevel
		}
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Level:           level,
		})

		if dbPath == "" {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			dbPath = cfg.DBPath
		}

		var err error
		store, err = sqlite.Open(dbPath)
		return err
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if store != nil {
			return store.Close()
		}
		return nil
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "path to the document database (default from config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}
