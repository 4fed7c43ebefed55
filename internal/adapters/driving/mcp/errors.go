// Package mcp provides an MCP (Model Context Protocol) server adapter for
// recall. It lets AI assistants query agent memory through the three
// disclosure tiers without shelling out to the CLI.
package mcp

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("mcp: search service is required")
