package analytics

import "time"

// Topics for analytics events.
const (
	TopicURLNormalized = "url.normalized"
	TopicBatchDeduped  = "batch.deduped"
)

// URLNormalizedEvent is emitted for every single-URL normalization served.
type URLNormalizedEvent struct {
	BatchID      string    `json:"batchId"`
	OriginalURL  string    `json:"originalUrl"`
	Normalized   string    `json:"normalized"`
	Changed      bool      `json:"changed"`
	ClientIP     string    `json:"clientIp"`
	UserAgent    string    `json:"userAgent"`
	NormalizedAt time.Time `json:"normalizedAt"`
}

// BatchDedupedEvent is emitted once per batch dedup request.
type BatchDedupedEvent struct {
	BatchID     string    `json:"batchId"`
	Original    int       `json:"original"`
	Unique      int       `json:"unique"`
	Duplicates  int       `json:"duplicates"`
	ClientIP    string    `json:"clientIp"`
	UserAgent   string    `json:"userAgent"`
	Referrer    string    `json:"referrer,omitempty"`
	ProcessedAt time.Time `json:"processedAt"`
}
