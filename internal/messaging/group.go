package messaging

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Runnable is a component with a start/stop lifecycle.
type Runnable interface {
	Start(ctx context.Context) error
	Shutdown() error
}

// ConsumerGroup starts and stops a set of consumers together. Consumers own
// their subscribers and close them on shutdown; the group only sequences the
// lifecycle.
type ConsumerGroup struct {
	consumers []Runnable
	logger    *zap.Logger
}

// NewConsumerGroup creates an empty consumer group.
func NewConsumerGroup(logger *zap.Logger) *ConsumerGroup {
	return &ConsumerGroup{logger: logger}
}

// Add registers a consumer with the group.
func (g *ConsumerGroup) Add(consumer Runnable) {
	g.consumers = append(g.consumers, consumer)
}

// Start starts every consumer. If one fails, the consumers already started
// are shut down before returning the error.
func (g *ConsumerGroup) Start(ctx context.Context) error {
	for i, consumer := range g.consumers {
		if err := consumer.Start(ctx); err != nil {
			for j := i - 1; j >= 0; j-- {
				if serr := g.consumers[j].Shutdown(); serr != nil {
					g.logger.Error("failed to stop consumer during rollback",
						zap.Int("index", j),
						zap.Error(serr),
					)
				}
			}

			return fmt.Errorf("start consumer %d: %w", i, err)
		}
	}

	g.logger.Info("consumer group started", zap.Int("count", len(g.consumers)))

	return nil
}

// Shutdown stops every consumer, continuing past failures and returning the
// first error encountered.
func (g *ConsumerGroup) Shutdown() error {
	g.logger.Info("shutting down consumer group")

	var firstErr error

	for i, consumer := range g.consumers {
		if err := consumer.Shutdown(); err != nil {
			g.logger.Error("consumer shutdown failed", zap.Int("index", i), zap.Error(err))

			if firstErr == nil {
				firstErr = err
			}
		}
	}

	return firstErr
}
