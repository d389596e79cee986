// Package notify is a small in-process publish-subscribe channel. Write
// services publish the name of the operation that just landed; listeners
// (the SSE refresh stream, tests) react by refetching. It is deliberately
// decoupled from the cache layer: invalidation makes the next read fresh,
// notification tells interested parties that a next read is worth making.
package notify

import "sync"

const subscriberBuffer = 16

// Notifier fans operation names out to subscribers. Publishing never
// blocks: a subscriber that has fallen behind misses events rather than
// stalling the write path.
type Notifier struct {
	mu   sync.Mutex
	next int
	subs map[int]chan string
}

// New creates an empty notifier.
func New() *Notifier {
	return &Notifier{subs: make(map[int]chan string)}
}

// Subscribe registers a listener. The returned cancel function must be
// called to release the subscription; the channel is closed by cancel.
func (n *Notifier) Subscribe() (<-chan string, func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.next
	n.next++
	ch := make(chan string, subscriberBuffer)
	n.subs[id] = ch

	cancel := func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		if ch, ok := n.subs[id]; ok {
			delete(n.subs, id)
			close(ch)
		}
	}
	return ch, cancel
}

// Publish delivers op to every subscriber that has buffer room.
func (n *Notifier) Publish(op string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for _, ch := range n.subs {
		select {
		case ch <- op:
		default:
		}
	}
}
