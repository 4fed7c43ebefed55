package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested document does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input: an unparsable
	// date, a non-positive limit, or an empty required string.
	ErrInvalidInput = errors.New("invalid input")

	// ErrStoreUnavailable indicates the backing index file is missing,
	// corrupt, or unwritable.
	ErrStoreUnavailable = errors.New("index store unavailable")

	// ErrSourceUnreadable indicates a source file encountered during
	// indexing could not be read.
	ErrSourceUnreadable = errors.New("source unreadable")
)
