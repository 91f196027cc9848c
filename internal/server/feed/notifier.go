// Package feed carries change notifications from writers to live snapshot
// subscriptions. A notification only says that a topic changed; subscribers
// reload their snapshot from storage, so lost or coalesced signals never
// leave a subscriber with a partial view.
package feed

import (
	"context"
	"sync"
)

// Topic names. Writers publish to the topic of every view they change.
const (
	TopicDirectory = "directory"
)

// AliasesTopic is the topic of ownerID's alias overlay.
func AliasesTopic(ownerID string) string { return "aliases:" + ownerID }

// ConversationTopic is the topic of one conversation stream.
func ConversationTopic(key string) string { return "conversation:" + key }

// Notifier fans out change signals per topic.
type Notifier interface {
	Publish(ctx context.Context, topic string) error
	// Subscribe returns a channel receiving one value after publishes on
	// topic. Bursts may be coalesced into a single value. The channel is
	// closed once ctx is done.
	Subscribe(ctx context.Context, topic string) (<-chan struct{}, error)
	Close() error
}

// MemoryNotifier is an in-process Notifier. Publish never blocks.
type MemoryNotifier struct {
	mu     sync.Mutex
	topics map[string]map[chan struct{}]struct{}
}

func NewMemoryNotifier() *MemoryNotifier {
	return &MemoryNotifier{topics: make(map[string]map[chan struct{}]struct{})}
}

func (n *MemoryNotifier) Publish(_ context.Context, topic string) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	for ch := range n.topics[topic] {
		select {
		case ch <- struct{}{}:
		default:
			// a signal is already pending
		}
	}
	return nil
}

func (n *MemoryNotifier) Subscribe(ctx context.Context, topic string) (<-chan struct{}, error) {
	ch := make(chan struct{}, 1)

	n.mu.Lock()
	subs, ok := n.topics[topic]
	if !ok {
		subs = make(map[chan struct{}]struct{})
		n.topics[topic] = subs
	}
	subs[ch] = struct{}{}
	n.mu.Unlock()

	go func() {
		<-ctx.Done()
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.topics[topic], ch)
		if len(n.topics[topic]) == 0 {
			delete(n.topics, topic)
		}
		close(ch)
	}()

	return ch, nil
}

// Subscribers reports how many live subscriptions topic has.
func (n *MemoryNotifier) Subscribers(topic string) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.topics[topic])
}

func (n *MemoryNotifier) Close() error { return nil }
