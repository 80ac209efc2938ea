package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/linkhub/internal/directory"
	"github.com/MrSnakeDoc/linkhub/internal/sources/links"
)

// loadDirectory builds a directory from --file, reporting skipped entries
// on stderr.
func loadDirectory(cmd *cobra.Command) (*directory.Directory, error) {
	cfg, err := links.NewLoader(directoryFile).Load()
	if err != nil {
		return nil, err
	}

	all, skipped, err := links.NewMapper().MapLinks(cfg)
	for _, s := range skipped {
		cmd.PrintErrf("warning: skipping invalid entry: %v\n", s)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to map directory: %w", err)
	}

	return directory.New(all)
}
