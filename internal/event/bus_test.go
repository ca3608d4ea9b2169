package event

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_PublishSubscribe(t *testing.T) {
	bus := NewBus()
	events, unsubscribe := bus.Subscribe()
	defer unsubscribe()

	published := Event{ID: "evt-1", Type: TypeProductCreated, ActorID: 5}
	bus.Publish(published)

	select {
	case received := <-events:
		assert.Equal(t, published, received)
	case <-time.After(time.Second):
		t.Fatal("event not delivered")
	}
}

func TestBus_MultipleSubscribers(t *testing.T) {
	bus := NewBus()

	first, stopFirst := bus.Subscribe()
	defer stopFirst()
	second, stopSecond := bus.Subscribe()
	defer stopSecond()

	bus.Publish(Event{ID: "evt-1", Type: TypeMessageCreated})

	for _, ch := range []<-chan Event{first, second} {
		select {
		case received := <-ch:
			assert.Equal(t, "evt-1", received.ID)
		case <-time.After(time.Second):
			t.Fatal("event not delivered to all subscribers")
		}
	}
}

func TestBus_UnsubscribeClosesChannel(t *testing.T) {
	bus := NewBus()
	events, unsubscribe := bus.Subscribe()

	unsubscribe()

	_, open := <-events
	require.False(t, open)

	// Publishing after unsubscribe must not panic.
	bus.Publish(Event{ID: "evt-2", Type: TypeProductDeleted})
}

func TestBus_SlowSubscriberDoesNotBlock(t *testing.T) {
	bus := NewBus()
	_, unsubscribe := bus.Subscribe()
	defer unsubscribe()

	// Fill well past the buffer; Publish must never block.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 500; i++ {
			bus.Publish(Event{ID: "evt", Type: TypeProductUpdated})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on a slow subscriber")
	}
}
