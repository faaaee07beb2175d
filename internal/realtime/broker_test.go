package realtime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBroker_PublishReachesAllSubscribers(t *testing.T) {
	b := NewBroker(nil)

	ch1, cancel1 := b.Subscribe("chat-1")
	defer cancel1()
	ch2, cancel2 := b.Subscribe("chat-1")
	defer cancel2()

	b.Publish(MessageEvent{ChatID: "chat-1", MessageID: "m1", Message: "hello"})

	for _, ch := range []<-chan MessageEvent{ch1, ch2} {
		select {
		case ev := <-ch:
			require.Equal(t, "m1", ev.MessageID)
		case <-time.After(time.Second):
			t.Fatal("subscriber did not receive event")
		}
	}
}

func TestBroker_EventsAreFilteredByChat(t *testing.T) {
	b := NewBroker(nil)

	ch, cancel := b.Subscribe("chat-a")
	defer cancel()

	b.Publish(MessageEvent{ChatID: "chat-b", MessageID: "other"})

	select {
	case ev := <-ch:
		t.Fatalf("received event for a different chat: %+v", ev)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestBroker_CancelClosesChannel(t *testing.T) {
	b := NewBroker(nil)

	ch, cancel := b.Subscribe("chat-1")
	require.Equal(t, 1, b.SubscriberCount("chat-1"))

	cancel()
	require.Zero(t, b.SubscriberCount("chat-1"))

	_, open := <-ch
	require.False(t, open)

	// A second cancel is a no-op.
	cancel()
}

func TestBroker_PublishWithoutSubscribers(t *testing.T) {
	b := NewBroker(nil)

	// Must not panic or block.
	b.Publish(MessageEvent{ChatID: "empty", MessageID: "m1"})
}

func TestBroker_SlowSubscriberDoesNotBlockPublish(t *testing.T) {
	b := NewBroker(nil)

	_, cancel := b.Subscribe("chat-1")
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < subscriberBuffer+10; i++ {
			b.Publish(MessageEvent{ChatID: "chat-1", MessageID: "m"})
		}
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a full subscriber buffer")
	}
}
