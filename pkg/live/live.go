// Package live delivers realtime record-change notifications over a
// websocket connection, so list views can refresh without polling. The
// demo server broadcasts matching events; any backend speaking the same
// frame format works.
package live

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/sonalan/filact-sub001/pkg/logger"
)

// EventType labels what happened to a record.
type EventType string

const (
	EventCreated EventType = "created"
	EventUpdated EventType = "updated"
	EventDeleted EventType = "deleted"
)

// Event is one record-change notification.
type Event struct {
	Type     EventType       `json:"type"`
	Resource string          `json:"resource"`
	ID       any             `json:"id,omitempty"`
	Payload  json.RawMessage `json:"payload,omitempty"`
}

type subscriber struct {
	resource string
	ch       chan Event
}

// Client maintains one websocket connection and fans incoming events
// out to per-resource subscribers.
type Client struct {
	conn *websocket.Conn
	log  *logger.Logger

	mu     sync.Mutex
	subs   map[string]subscriber
	closed bool
	done   chan struct{}
}

// Dial connects to a live endpoint (ws:// or wss://) and starts the
// read loop.
func Dial(ctx context.Context, url string, headers http.Header) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, headers)
	if err != nil {
		return nil, fmt.Errorf("live: dial %s: %w", url, err)
	}

	c := &Client{
		conn: conn,
		log:  logger.New(),
		subs: make(map[string]subscriber),
		done: make(chan struct{}),
	}
	go c.readLoop()
	return c, nil
}

// Subscribe returns a channel of events for one resource. The
// subscription ends when ctx is canceled or the client closes; the
// channel is closed either way. Events that arrive while the subscriber
// is not keeping up are dropped rather than blocking the read loop.
func (c *Client) Subscribe(ctx context.Context, resource string) (<-chan Event, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, fmt.Errorf("live: client is closed")
	}
	id := uuid.NewString()
	sub := subscriber{resource: resource, ch: make(chan Event, 16)}
	c.subs[id] = sub
	c.mu.Unlock()

	go func() {
		select {
		case <-ctx.Done():
		case <-c.done:
		}
		c.unsubscribe(id)
	}()

	return sub.ch, nil
}

func (c *Client) unsubscribe(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if sub, ok := c.subs[id]; ok {
		delete(c.subs, id)
		close(sub.ch)
	}
}

// Close tears down the connection and every subscription.
func (c *Client) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	for id, sub := range c.subs {
		delete(c.subs, id)
		close(sub.ch)
	}
	c.mu.Unlock()

	close(c.done)
	return c.conn.Close()
}

func (c *Client) readLoop() {
	defer c.Close()

	for {
		var event Event
		if err := c.conn.ReadJSON(&event); err != nil {
			select {
			case <-c.done:
			default:
				c.log.Debug("live: read loop ended: %v", err)
			}
			return
		}

		c.mu.Lock()
		for _, sub := range c.subs {
			if sub.resource != "" && sub.resource != event.Resource {
				continue
			}
			select {
			case sub.ch <- event:
			default:
				// Slow subscriber: drop rather than stall the loop.
			}
		}
		c.mu.Unlock()
	}
}
