package ratelimit

import (
	"context"
	"time"
)

// Store counts requests per key over sliding windows. Keys combine the
// client, scope or endpoint, and window so each limit tracks independently.
type Store interface {
	// Record adds a request for the key and returns how many requests the
	// key has made inside the window, the new one included. Entries older
	// than the window are pruned.
	Record(ctx context.Context, key string, window time.Duration) (count int64, err error)
}
