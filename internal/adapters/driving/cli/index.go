package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build the search index",
	Long: `Walks the memory directory, indexes every markdown file, and prunes
entries whose backing file has been removed. Unreadable files are skipped
and counted; they do not abort the pass. Re-running is idempotent.`,
	Args: cobra.NoArgs,
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, _ []string) error {
	if indexerService == nil {
		return errors.New("indexer not configured")
	}

	stats, err := indexerService.Reindex(cmd.Context())
	if err != nil {
		return fmt.Errorf("indexing failed: %w", err)
	}

	cmd.Printf("Indexed %d files in %s", stats.Indexed, memoryDir)
	if stats.Skipped > 0 {
		cmd.Printf(" (%d skipped)", stats.Skipped)
	}
	if stats.Pruned > 0 {
		cmd.Printf(" (%d stale entries pruned)", stats.Pruned)
	}
	cmd.Println()
	return nil
}
