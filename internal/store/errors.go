package store

import "errors"

// Sentinel errors returned by every store. Handlers translate them into HTTP
// status codes; nothing here is thrown across the service boundary.
var (
	// ErrNotFound means the id has no matching record in the collection.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateKey means the natural key (name, email or tax id) collides
	// with an existing record, active or not, after normalization.
	ErrDuplicateKey = errors.New("duplicate natural key")
)
