package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/moteboxai/agent-memory-tools/internal/core/domain"
)

var (
	timelineDate   string
	timelineWindow int
	timelineJSON   bool
)

var timelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Show memory around a date (layer 2: chronological context)",
	Long: `Returns documents within a window of days around an anchor date,
oldest first. Unlike search this gives chronological context: neighbouring
days are included even when nothing exists on the anchor date itself.`,
	Args: cobra.NoArgs,
	RunE: runTimeline,
}

func init() {
	timelineCmd.Flags().StringVarP(&timelineDate, "date", "d", "", "anchor date (YYYY-MM-DD, required)")
	timelineCmd.Flags().IntVarP(&timelineWindow, "window", "w", 0, "window size in days (default 3)")
	timelineCmd.Flags().BoolVar(&timelineJSON, "json", false, "output entries as JSON")
	timelineCmd.MarkFlagRequired("date") //nolint:errcheck
	rootCmd.AddCommand(timelineCmd)
}

func runTimeline(cmd *cobra.Command, _ []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	anchor, err := time.Parse("2006-01-02", timelineDate)
	if err != nil {
		return fmt.Errorf("%w: unparsable date %q (want YYYY-MM-DD)", domain.ErrInvalidInput, timelineDate)
	}

	entries, err := searchService.Timeline(cmd.Context(), anchor, timelineWindow)
	if err != nil {
		return fmt.Errorf("timeline failed: %w", err)
	}

	if timelineJSON {
		return printJSON(cmd, entries)
	}
	return printTimeline(cmd, entries)
}

func printTimeline(cmd *cobra.Command, entries []domain.TimelineEntry) error {
	if len(entries) == 0 {
		cmd.Println("No documents in window.")
		return nil
	}

	for i := range entries {
		cmd.Printf("%s (%+d) %s\n", entries[i].Date.Format("2006-01-02"), entries[i].Position, entries[i].Title)
		cmd.Printf("    %s\n", entries[i].Path)
		if entries[i].Excerpt != "" {
			cmd.Printf("    %s\n", entries[i].Excerpt)
		}
	}
	return nil
}
