package store

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// Notifier fans out "table changed" signals to in-process subscribers.
// Each subscriber holds at most one pending signal, so bursts of writes
// collapse into a single wake-up and Publish never blocks.
type Notifier struct {
	mu          sync.Mutex
	subscribers map[string]chan struct{}
	closed      bool
	done        chan struct{}
	logger      *slog.Logger
}

// NewNotifier creates a notifier. Pass nil logger for default.
func NewNotifier(logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{
		subscribers: make(map[string]chan struct{}),
		done:        make(chan struct{}),
		logger:      logger.With("component", "notifier"),
	}
}

// Subscribe registers for change signals until ctx is cancelled or the
// notifier is closed, after which the channel is closed. Subscribing to a closed notifier yields a closed
// channel.
func (n *Notifier) Subscribe(ctx context.Context) <-chan struct{} {
	id := uuid.New().String()
	ch := make(chan struct{}, 1)

	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		close(ch)
		return ch
	}
	n.subscribers[id] = ch
	n.mu.Unlock()

	n.logger.Debug("subscriber added", "sub_id", id)

	go func() {
		select {
		case <-ctx.Done():
			n.unsubscribe(id)
		case <-n.done:
		}
	}()

	return ch
}

// Publish wakes every subscriber.
func (n *Notifier) Publish() {
	n.mu.Lock()
	defer n.mu.Unlock()

	for _, ch := range n.subscribers {
		select {
		case ch <- struct{}{}:
		default:
			// already pending
		}
	}
}

// Len reports the number of live subscribers.
func (n *Notifier) Len() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.subscribers)
}

func (n *Notifier) unsubscribe(id string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	ch, ok := n.subscribers[id]
	if !ok {
		return
	}
	delete(n.subscribers, id)
	close(ch)

	n.logger.Debug("subscriber removed", "sub_id", id)
}

// Close closes every subscriber channel. Later publishes are no-ops.
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed {
		return
	}
	n.closed = true
	close(n.done)
	for id, ch := range n.subscribers {
		close(ch)
		delete(n.subscribers, id)
	}
}
