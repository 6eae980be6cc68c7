package messaging_test

import (
	"context"
	"errors"
	"testing"

	"github.com/serroba/urlnorm/internal/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockRunnable struct {
	startErr    error
	started     bool
	shutdownErr error
	shutdown    bool
}

func (m *mockRunnable) Start(_ context.Context) error {
	if m.startErr != nil {
		return m.startErr
	}

	m.started = true

	return nil
}

func (m *mockRunnable) Shutdown() error {
	m.shutdown = true
	return m.shutdownErr
}

func TestConsumerGroup_Start(t *testing.T) {
	t.Run("starts all consumers", func(t *testing.T) {
		group := messaging.NewConsumerGroup(zap.NewNop())

		first := &mockRunnable{}
		second := &mockRunnable{}
		group.Add(first)
		group.Add(second)

		err := group.Start(context.Background())

		require.NoError(t, err)
		assert.True(t, first.started)
		assert.True(t, second.started)
	})

	t.Run("stops started consumers when one fails to start", func(t *testing.T) {
		group := messaging.NewConsumerGroup(zap.NewNop())

		first := &mockRunnable{}
		failing := &mockRunnable{startErr: errors.New("start error")}
		group.Add(first)
		group.Add(failing)

		err := group.Start(context.Background())

		assert.Error(t, err)
		assert.True(t, first.shutdown)
	})
}

func TestConsumerGroup_Shutdown(t *testing.T) {
	t.Run("shuts down all consumers", func(t *testing.T) {
		group := messaging.NewConsumerGroup(zap.NewNop())

		first := &mockRunnable{}
		second := &mockRunnable{}
		group.Add(first)
		group.Add(second)

		require.NoError(t, group.Start(context.Background()))
		require.NoError(t, group.Shutdown())

		assert.True(t, first.shutdown)
		assert.True(t, second.shutdown)
	})

	t.Run("returns first shutdown error but still stops the rest", func(t *testing.T) {
		group := messaging.NewConsumerGroup(zap.NewNop())

		failing := &mockRunnable{shutdownErr: errors.New("shutdown error")}
		second := &mockRunnable{}
		group.Add(failing)
		group.Add(second)

		require.NoError(t, group.Start(context.Background()))

		err := group.Shutdown()

		assert.Error(t, err)
		assert.True(t, second.shutdown)
	})
}
