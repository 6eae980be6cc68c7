package store

import (
	"context"

	"github.com/serroba/urlnorm/internal/analytics"
	"go.uber.org/zap"
)

// Noop is a no-op implementation of analytics.Store that logs events.
type Noop struct {
	logger *zap.Logger
}

// NewNoop creates a new no-op analytics store.
func NewNoop(logger *zap.Logger) *Noop {
	return &Noop{logger: logger}
}

func (n *Noop) SaveURLNormalized(_ context.Context, event *analytics.URLNormalizedEvent) error {
	n.logger.Info("url normalized event received",
		zap.String("batchId", event.BatchID),
		zap.String("originalUrl", event.OriginalURL),
		zap.String("normalized", event.Normalized),
		zap.Bool("changed", event.Changed),
		zap.Time("normalizedAt", event.NormalizedAt),
	)

	return nil
}

func (n *Noop) SaveBatchDeduped(_ context.Context, event *analytics.BatchDedupedEvent) error {
	n.logger.Info("batch deduped event received",
		zap.String("batchId", event.BatchID),
		zap.Int("original", event.Original),
		zap.Int("unique", event.Unique),
		zap.Int("duplicates", event.Duplicates),
		zap.Time("processedAt", event.ProcessedAt),
	)

	return nil
}
