package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
)

var getJSON bool

var getCmd = &cobra.Command{
	Use:   "get [path]",
	Short: "Fetch full document content (layer 3)",
	Long: `Returns the complete document for a path, body included. This is
the only command that returns body content; search and timeline always
stay compact.`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

func init() {
	getCmd.Flags().BoolVar(&getJSON, "json", false, "output the document as JSON")
	rootCmd.AddCommand(getCmd)
}

func runGet(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	doc, err := searchService.Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if getJSON {
		return printJSON(cmd, doc)
	}

	cmd.Printf("Path:  %s\n", doc.Path)
	cmd.Printf("Title: %s\n", doc.Title)
	cmd.Printf("Date:  %s\n", doc.Date.Format("2006-01-02"))
	if len(doc.Tags) > 0 {
		cmd.Printf("Tags:  %s\n", strings.Join(doc.Tags, " "))
	}
	cmd.Println()
	cmd.Println(doc.Body)
	return nil
}
