// Package cli implements the recall command surface with cobra. Services
// are injected once at startup via SetServices; commands fail with a clear
// error when invoked before wiring (mainly in tests).
package cli

import (
	"github.com/spf13/cobra"

	"github.com/moteboxai/agent-memory-tools/internal/core/ports/driven"
	"github.com/moteboxai/agent-memory-tools/internal/core/ports/driving"
	"github.com/moteboxai/agent-memory-tools/internal/logger"
)

// version is stamped at build time via SetVersion.
var version = "dev"

// Injected services.
var (
	searchService  driving.SearchService
	indexerService driving.Indexer
	captureService driving.CaptureService
	memorySource   driven.MemorySource
	memoryDir      string
)

// verboseFlag toggles diagnostic logging on stderr.
var verboseFlag bool

var rootCmd = &cobra.Command{
	Use:   "recall",
	Short: "Index and search agent memory files",
	Long: `Recall indexes a directory of markdown memory files and answers
queries at three levels of detail: compact search results, a chronological
timeline, and full document content. Conversation text can be compressed
into categorized, searchable insight records.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging")
}

// Services aggregates everything the commands need.
type Services struct {
	Search    driving.SearchService
	Indexer   driving.Indexer
	Capture   driving.CaptureService
	Source    driven.MemorySource
	MemoryDir string
}

// SetServices injects the service implementations used by the commands.
func SetServices(s Services) {
	searchService = s.Search
	indexerService = s.Indexer
	captureService = s.Capture
	memorySource = s.Source
	memoryDir = s.MemoryDir
}

// SetVersion sets the version string reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
