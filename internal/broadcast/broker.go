// Package broadcast fans out full-state snapshots to other listening
// contexts in the same process. Delivery is best-effort and at most once per
// publish; consumers must replace their view wholesale, never merge.
package broadcast

import (
	"sync"

	"WealthCompass/internal/model"
)

// subscriber buffer; a listener that falls this far behind starts dropping.
const subscriberBuffer = 8

// Broker is a publish/subscribe hub for portfolio state snapshots.
type Broker struct {
	mu     sync.Mutex
	subs   map[int]chan model.PortfolioState
	next   int
	closed bool
}

func NewBroker() *Broker {
	return &Broker{subs: make(map[int]chan model.PortfolioState)}
}

// Subscribe registers a listener. The returned cancel func must be called
// when the listener goes away; it closes the channel.
func (b *Broker) Subscribe() (<-chan model.PortfolioState, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.next
	b.next++
	ch := make(chan model.PortfolioState, subscriberBuffer)
	if b.closed {
		close(ch)
		return ch, func() {}
	}
	b.subs[id] = ch

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if sub, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Publish sends the snapshot to every subscriber without blocking the
// publisher: a full subscriber buffer drops the message.
func (b *Broker) Publish(st model.PortfolioState) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- st:
		default:
		}
	}
}

// Close drops all subscribers and closes their channels.
func (b *Broker) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
	}
}
