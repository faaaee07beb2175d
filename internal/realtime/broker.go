// Package realtime fans chat message events out to open conversation
// streams. Events are published after the message row is inserted, so the
// delivery order of a single chat's stream matches insert order.
package realtime

import (
	"log/slog"
	"sync"
	"time"
)

// MessageEvent is what a subscriber receives for each new chat message.
// ClientKey carries the sender-assigned idempotency key so a subscriber can
// drop the echo of a message it already appended locally at submit time.
type MessageEvent struct {
	MessageID  string    `json:"message_id"`
	ChatID     string    `json:"chat_id"`
	SenderID   string    `json:"sender_id"`
	SenderName string    `json:"sender_name"`
	Message    string    `json:"message"`
	ClientKey  string    `json:"client_key,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

const subscriberBuffer = 32

// Broker routes message events to subscribers keyed by chat ID.
type Broker struct {
	mu   sync.RWMutex
	subs map[string]map[chan MessageEvent]struct{}
	log  *slog.Logger
}

func NewBroker(log *slog.Logger) *Broker {
	if log == nil {
		log = slog.Default()
	}
	return &Broker{
		subs: make(map[string]map[chan MessageEvent]struct{}),
		log:  log,
	}
}

// Subscribe registers a listener for one chat. The returned cancel function
// removes the subscription and closes the channel; closing a chat view must
// call it.
func (b *Broker) Subscribe(chatID string) (<-chan MessageEvent, func()) {
	ch := make(chan MessageEvent, subscriberBuffer)

	b.mu.Lock()
	if b.subs[chatID] == nil {
		b.subs[chatID] = make(map[chan MessageEvent]struct{})
	}
	b.subs[chatID][ch] = struct{}{}
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		if set, ok := b.subs[chatID]; ok {
			if _, ok := set[ch]; ok {
				delete(set, ch)
				close(ch)
			}
			if len(set) == 0 {
				delete(b.subs, chatID)
			}
		}
		b.mu.Unlock()
	}

	return ch, cancel
}

// Publish delivers an event to every subscriber of its chat. A subscriber
// whose buffer is full misses the event; it will catch up on reload, the
// same way a dropped connection would.
func (b *Broker) Publish(ev MessageEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for ch := range b.subs[ev.ChatID] {
		select {
		case ch <- ev:
		default:
			b.log.Warn("dropping realtime event for slow subscriber",
				"chat_id", ev.ChatID, "message_id", ev.MessageID)
		}
	}
}

// SubscriberCount reports the number of open subscriptions for a chat.
func (b *Broker) SubscriberCount(chatID string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[chatID])
}
