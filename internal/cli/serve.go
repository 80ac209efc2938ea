package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/linkhub/internal/app"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP service",
	Long: `Runs the HTTP service. Configuration comes from LINKHUB_* environment
variables; --file overrides LINKHUB_DIRECTORY_FILE.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if cmd.Flags().Changed("file") {
		if err := os.Setenv("LINKHUB_DIRECTORY_FILE", directoryFile); err != nil {
			return err
		}
	}
	return app.New(cmd.Context()).Run(cmd.Context())
}
