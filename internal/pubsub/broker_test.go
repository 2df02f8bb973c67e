package pubsub

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrokerPublishSubscribe(t *testing.T) {
	t.Parallel()

	broker := NewBroker[string]()
	t.Cleanup(broker.Shutdown)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sub := broker.Subscribe(ctx)
	require.Equal(t, 1, broker.SubscriberCount())

	broker.Publish(CreatedEvent, "hello")

	select {
	case ev := <-sub:
		assert.Equal(t, CreatedEvent, ev.Type)
		assert.Equal(t, "hello", ev.Payload)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestBrokerUnsubscribeOnCancel(t *testing.T) {
	t.Parallel()

	broker := NewBroker[int]()
	t.Cleanup(broker.Shutdown)

	ctx, cancel := context.WithCancel(context.Background())
	sub := broker.Subscribe(ctx)
	cancel()

	// The channel closes once the cleanup goroutine runs.
	select {
	case _, ok := <-sub:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("subscriber channel was not closed")
	}

	assert.Eventually(t, func() bool {
		return broker.SubscriberCount() == 0
	}, time.Second, 10*time.Millisecond)
}

func TestBrokerShutdown(t *testing.T) {
	t.Parallel()

	broker := NewBroker[int]()
	sub := broker.Subscribe(context.Background())
	broker.Shutdown()

	_, ok := <-sub
	assert.False(t, ok)

	// Publishing and subscribing after shutdown are no-ops.
	broker.Publish(UpdatedEvent, 1)
	late := broker.Subscribe(context.Background())
	_, ok = <-late
	assert.False(t, ok)
}

func TestBrokerDoesNotBlockOnSlowSubscriber(t *testing.T) {
	t.Parallel()

	broker := NewBroker[int]()
	t.Cleanup(broker.Shutdown)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_ = broker.Subscribe(ctx)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := range bufferSize * 2 {
			broker.Publish(CreatedEvent, i)
		}
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a slow subscriber")
	}
}
