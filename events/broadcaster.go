package events

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/user/messagely-go/logging"
)

const clientBuffer = 32

type client struct {
	username string
	ch       chan Event
}

// Broadcaster tracks open streams per user. A user may hold several streams
// (one per tab or device); each gets every event addressed to that user.
type Broadcaster struct {
	mu      sync.RWMutex
	clients map[string]*client
	log     logging.Logger
}

func NewBroadcaster(log logging.Logger) *Broadcaster {
	return &Broadcaster{clients: make(map[string]*client), log: log}
}

// Subscribe registers a stream for username and returns its id and channel.
// The channel is closed by Unsubscribe.
func (b *Broadcaster) Subscribe(username string) (string, <-chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := uuid.New().String()
	c := &client{username: username, ch: make(chan Event, clientBuffer)}
	b.clients[id] = c
	return id, c.ch
}

// Unsubscribe removes the stream and closes its channel. Unknown ids are ignored.
func (b *Broadcaster) Unsubscribe(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if c, ok := b.clients[id]; ok {
		close(c.ch)
		delete(b.clients, id)
	}
}

// Publish delivers e to every stream of username without blocking. Streams
// whose buffer is full miss the event. It returns the number of deliveries.
func (b *Broadcaster) Publish(ctx context.Context, username string, e Event) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	delivered := 0
	for id, c := range b.clients {
		if c.username != username {
			continue
		}
		select {
		case c.ch <- e:
			delivered++
		default:
			b.log.Warn(ctx, "dropping event for slow stream", "client_id", id, "event", e.Name)
		}
	}
	return delivered
}

// Subscribers returns the number of open streams for username.
func (b *Broadcaster) Subscribers(username string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	n := 0
	for _, c := range b.clients {
		if c.username == username {
			n++
		}
	}
	return n
}

// Close ends every open stream. It is registered as a server shutdown hook.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for id, c := range b.clients {
		close(c.ch)
		delete(b.clients, id)
	}
}
