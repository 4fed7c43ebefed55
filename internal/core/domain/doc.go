// Package domain contains the core types for the memory index: documents,
// insight records, search results, and the errors shared across layers.
// It has no dependencies on adapters or infrastructure.
package domain
