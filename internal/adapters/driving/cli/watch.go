package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/moteboxai/agent-memory-tools/internal/logger"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-index memory files as they change",
	Long: `Runs a full indexing pass, then watches the memory directory and
re-indexes files as they are created, modified or removed. Runs until
interrupted.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	if indexerService == nil || memorySource == nil {
		return errors.New("indexer not configured")
	}

	ctx := cmd.Context()

	stats, err := indexerService.Reindex(ctx)
	if err != nil {
		return fmt.Errorf("initial indexing failed: %w", err)
	}
	cmd.Printf("Indexed %d files; watching %s for changes...\n", stats.Indexed, memoryDir)

	changes, err := memorySource.Watch(ctx)
	if err != nil {
		return fmt.Errorf("watch failed: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case path, ok := <-changes:
			if !ok {
				return nil
			}
			if err := indexerService.IndexFile(ctx, path); err != nil {
				logger.Warn("Re-index %s: %v", path, err)
				continue
			}
			cmd.Printf("Re-indexed %s\n", path)
		}
	}
}
