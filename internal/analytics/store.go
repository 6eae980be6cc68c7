package analytics

import "context"

// Store defines the interface for persisting analytics events.
type Store interface {
	SaveURLNormalized(ctx context.Context, event *URLNormalizedEvent) error
	SaveBatchDeduped(ctx context.Context, event *BatchDedupedEvent) error
}
