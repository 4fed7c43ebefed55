// Package driving defines the primary ports: the operations external
// actors (CLI, MCP server, TUI) invoke on the core services.
package driving
