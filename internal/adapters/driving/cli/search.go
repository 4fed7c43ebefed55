package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/moteboxai/agent-memory-tools/internal/core/domain"
)

var (
	searchLimit int
	searchJSON  bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search memory files (layer 1: compact results)",
	Long: `Performs keyword search over titles, bodies and tags. All terms
must appear; terms match by prefix. Results carry an excerpt only; use
'get' to fetch full content.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 10, "maximum number of results")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	results, err := searchService.Search(cmd.Context(), args[0], searchLimit)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return printJSON(cmd, results)
	}
	return printSearchResults(cmd, results)
}

func printSearchResults(cmd *cobra.Command, results []domain.SearchResult) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i := range results {
		cmd.Printf("  [%d] %s (%s, %.2f)\n", i+1, results[i].Title,
			results[i].Date.Format("2006-01-02"), results[i].Score)
		cmd.Printf("      %s\n", results[i].Path)
		if results[i].Excerpt != "" {
			cmd.Printf("      %s\n", results[i].Excerpt)
		}
		if len(results[i].Tags) > 0 {
			cmd.Printf("      tags: %s\n", strings.Join(results[i].Tags, " "))
		}
		cmd.Println()
	}
	return nil
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
