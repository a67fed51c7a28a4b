package messaging_test

import (
	"context"
	"testing"
	"time"

	"github.com/JoshGearou/shortlink/internal/messaging"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testEvent struct {
	Code string `json:"code"`
}

func TestPublishConsume(t *testing.T) {
	bus := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer func() { _ = bus.Close() }()

	received := make(chan *testEvent, 1)

	consumer := messaging.NewConsumer[testEvent](bus, "test.topic", func(_ context.Context, e *testEvent) error {
		received <- e

		return nil
	}, zap.NewNop())

	require.NoError(t, consumer.Start(context.Background()))
	defer func() { _ = consumer.Shutdown() }()

	publish := messaging.NewPublishFunc[testEvent](bus, "test.topic")

	require.NoError(t, publish(&testEvent{Code: "abc123"}))

	select {
	case e := <-received:
		assert.Equal(t, "abc123", e.Code)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestPublisherGroup_Shutdown(t *testing.T) {
	bus := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	group := messaging.NewPublisherGroup(bus)

	assert.Same(t, bus, group.Publisher())
	require.NoError(t, group.Shutdown())
}
