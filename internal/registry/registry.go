// Package registry tracks canonical URLs seen across batches, keyed by the
// hash of their normalized form.
package registry

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when no entry exists for a hash.
var ErrNotFound = errors.New("canonical url not found")

// Hash identifies a canonical URL (hex SHA256 of the normalized form).
type Hash string

// Entry records a canonical URL and when it was first observed.
type Entry struct {
	Hash         Hash
	CanonicalURL string
	FirstSeenURL string
	FirstSeenAt  time.Time
	Hits         int64
}

// Repository defines the interface for canonical URL storage.
type Repository interface {
	// Save stores an entry. Saving an existing hash keeps the original
	// first-seen data and does not reset the hit count.
	Save(ctx context.Context, entry *Entry) error

	// GetByHash retrieves an entry by hash. Returns ErrNotFound if no
	// entry exists.
	GetByHash(ctx context.Context, hash Hash) (*Entry, error)

	// IncrementHits bumps the hit counter for a hash. Unknown hashes are
	// a no-op.
	IncrementHits(ctx context.Context, hash Hash) error
}
