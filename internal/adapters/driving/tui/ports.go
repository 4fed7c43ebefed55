// Package tui provides an interactive terminal user interface for recall.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/moteboxai/agent-memory-tools/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search resolves the three disclosure tiers.
	Search driving.SearchService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	return nil
}
