// Package driven defines the secondary ports: interfaces the core services
// depend on, implemented by infrastructure adapters (SQLite index,
// filesystem scanner).
package driven
