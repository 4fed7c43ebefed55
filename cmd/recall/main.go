// Command recall indexes markdown memory files and serves them back at
// three levels of detail: compact search, a chronological timeline, and
// full document content.
package main

import (
	"fmt"
	"os"

	"github.com/moteboxai/agent-memory-tools/internal/adapters/driven/source/filesystem"
	"github.com/moteboxai/agent-memory-tools/internal/adapters/driven/storage/sqlite"
	"github.com/moteboxai/agent-memory-tools/internal/adapters/driving/cli"
	"github.com/moteboxai/agent-memory-tools/internal/config"
	"github.com/moteboxai/agent-memory-tools/internal/core/services"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load("")
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	store, err := sqlite.NewStore(cfg.IndexPath())
	if err != nil {
		return fmt.Errorf("opening index: %w", err)
	}
	defer store.Close()

	source := filesystem.New(cfg.MemoryDir)
	extractor := services.NewExtractor()

	cli.SetServices(cli.Services{
		Search:    services.NewSearchService(store),
		Indexer:   services.NewIndexerService(source, store, extractor, cfg.MemoryDir),
		Capture:   services.NewCaptureService(store),
		Source:    source,
		MemoryDir: cfg.MemoryDir,
	})
	cli.SetVersion(version)

	return cli.Execute()
}
