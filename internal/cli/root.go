package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

// directoryFile is the --file flag shared by the offline commands.
var directoryFile string

var rootCmd = &cobra.Command{
	Use:   "linkhub",
	Short: "Directory of official government service portals",
	Long: `linkhub serves a directory of government service portals and lets
visitors filter it by free-text search and category.

Without a subcommand it runs the HTTP service, like "linkhub serve".`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&directoryFile, "file", "f", os.Getenv("LINKHUB_DIRECTORY_FILE"),
		"directory file (default: builtin directory)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}
