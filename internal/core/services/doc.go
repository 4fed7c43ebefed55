// Package services contains the core business logic: metadata extraction,
// bulk indexing, the three-tier search resolver, and session compression.
// Services depend only on the driven ports, never on concrete adapters.
package services
