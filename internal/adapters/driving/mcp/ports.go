package mcp

import (
	"github.com/moteboxai/agent-memory-tools/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search resolves the three disclosure tiers.
	Search driving.SearchService

	// Capture compresses conversation text into insight records.
	// Optional; the capture tool is not registered without it.
	Capture driving.CaptureService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	return nil
}
