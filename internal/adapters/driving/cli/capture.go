package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var decisionCmd = &cobra.Command{
	Use:   "decision [text] [rationale]",
	Short: "Capture a decision as a searchable record",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runDecision,
}

var insightCmd = &cobra.Command{
	Use:   "insight [text]",
	Short: "Capture an insight as a searchable record",
	Args:  cobra.ExactArgs(1),
	RunE:  runInsight,
}

var compressCmd = &cobra.Command{
	Use:   "compress [text] [title]",
	Short: "Compress conversation text into insight records",
	Long: `Scans conversation text line by line and keeps only the lines that
match a cue phrase: decisions ("decided", "chose", "will use"), questions
(lines ending in ?), actions ("built", "implemented") and insights
("realized", "learned"). Each kept line becomes its own searchable record;
a summary record notes the per-category counts.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runCompress,
}

func init() {
	rootCmd.AddCommand(decisionCmd)
	rootCmd.AddCommand(insightCmd)
	rootCmd.AddCommand(compressCmd)
}

func runDecision(cmd *cobra.Command, args []string) error {
	if captureService == nil {
		return errors.New("capture service not configured")
	}

	rationale := ""
	if len(args) > 1 {
		rationale = args[1]
	}

	rec, err := captureService.CaptureDecision(cmd.Context(), args[0], rationale)
	if err != nil {
		return fmt.Errorf("capture decision: %w", err)
	}

	cmd.Printf("Captured decision: %s\n", args[0])
	cmd.Printf("Record: %s\n", rec.Path)
	return nil
}

func runInsight(cmd *cobra.Command, args []string) error {
	if captureService == nil {
		return errors.New("capture service not configured")
	}

	rec, err := captureService.CaptureInsight(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("capture insight: %w", err)
	}

	cmd.Printf("Captured insight: %s\n", args[0])
	cmd.Printf("Record: %s\n", rec.Path)
	return nil
}

func runCompress(cmd *cobra.Command, args []string) error {
	if captureService == nil {
		return errors.New("capture service not configured")
	}

	title := ""
	if len(args) > 1 {
		title = args[1]
	}

	records, err := captureService.Compress(cmd.Context(), args[0], title)
	if err != nil {
		return fmt.Errorf("compress: %w", err)
	}

	cmd.Printf("Produced %d records:\n", len(records))
	for i := range records {
		cmd.Printf("  [%s] %s\n", records[i].Category, records[i].Path)
	}
	return nil
}
