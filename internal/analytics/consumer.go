package analytics

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/serroba/urlnorm/internal/messaging"
	"go.uber.org/zap"
)

// Consumer persists analytics events from both event topics. It composes one
// typed consumer per topic over a shared subscriber.
type Consumer struct {
	subscriber message.Subscriber
	normalized *messaging.Consumer[URLNormalizedEvent]
	deduped    *messaging.Consumer[BatchDedupedEvent]
}

// NewConsumer creates a new analytics consumer writing to the given store.
func NewConsumer(subscriber message.Subscriber, store Store, logger *zap.Logger) *Consumer {
	return &Consumer{
		subscriber: subscriber,
		normalized: messaging.NewConsumer(subscriber, TopicURLNormalized,
			func(ctx context.Context, event *URLNormalizedEvent) error {
				return store.SaveURLNormalized(ctx, event)
			}, logger),
		deduped: messaging.NewConsumer(subscriber, TopicBatchDeduped,
			func(ctx context.Context, event *BatchDedupedEvent) error {
				return store.SaveBatchDeduped(ctx, event)
			}, logger),
	}
}

// Start begins consuming messages from both topics.
func (c *Consumer) Start(ctx context.Context) error {
	if err := c.normalized.Start(ctx); err != nil {
		return err
	}

	if err := c.deduped.Start(ctx); err != nil {
		_ = c.normalized.Shutdown()

		return err
	}

	return nil
}

// Shutdown stops both topic consumers and closes the subscriber.
func (c *Consumer) Shutdown() error {
	err := c.normalized.Shutdown()

	if derr := c.deduped.Shutdown(); err == nil {
		err = derr
	}

	if cerr := c.subscriber.Close(); err == nil {
		err = cerr
	}

	return err
}
