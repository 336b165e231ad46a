package events

import "sync"

// subscriberBuffer is the channel capacity given to each subscriber.
// A subscriber that falls this many events behind starts losing
// messages.
const subscriberBuffer = 64

// Bus is a best-effort, in-process event broadcaster.
//
// Publish never blocks the producer: when a subscriber's buffer is
// full the event is dropped for that subscriber only. There is no
// retry and no backpressure; consumers that need a consistent view
// should re-read the catalog rather than rely on the stream.
type Bus struct {
	mu   sync.RWMutex
	subs map[uint64]chan Event
	next uint64
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[uint64]chan Event)}
}

// Subscribe registers a new subscriber and returns its channel
// together with a cancel function. Cancel must be called exactly once;
// it closes the channel.
func (b *Bus) Subscribe() (<-chan Event, func()) {
	b.mu.Lock()
	id := b.next
	b.next++
	ch := make(chan Event, subscriberBuffer)
	b.subs[id] = ch
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		if sub, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(sub)
		}
		b.mu.Unlock()
	}
	return ch, cancel
}

// Publish delivers the event to every subscriber whose buffer has
// room and silently drops it for the rest.
func (b *Bus) Publish(ev Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

// Subscribers returns the number of active subscribers.
func (b *Bus) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
