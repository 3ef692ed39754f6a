// Package progress carries engine events to a single consumer without ever
// blocking the producers.
package progress

import (
	"sync"

	"go.trai.ch/modsync/internal/core/domain"
	"go.trai.ch/modsync/internal/core/ports"
)

var _ ports.EventSink = (*Channel)(nil)

// Channel is an unbounded multi-producer, single-consumer event queue.
// Emit never blocks; events are delivered in emission order on Events.
type Channel struct {
	mu     sync.Mutex
	queue  []domain.Event
	closed bool

	signal chan struct{}
	out    chan domain.Event
}

// NewChannel creates a Channel and starts its delivery loop.
func NewChannel() *Channel {
	c := &Channel{
		signal: make(chan struct{}, 1),
		out:    make(chan domain.Event),
	}
	go c.pump()
	return c
}

// Emit enqueues event. Events emitted after Close are dropped.
func (c *Channel) Emit(event domain.Event) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.queue = append(c.queue, event)
	c.mu.Unlock()
	c.notify()
}

// Events returns the receive side. It is closed once Close has been called
// and every queued event has been delivered.
func (c *Channel) Events() <-chan domain.Event {
	return c.out
}

// Close stops accepting events. Already queued events are still delivered.
func (c *Channel) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	c.notify()
}

func (c *Channel) notify() {
	select {
	case c.signal <- struct{}{}:
	default:
	}
}

func (c *Channel) pump() {
	defer close(c.out)
	for {
		c.mu.Lock()
		batch := c.queue
		c.queue = nil
		closed := c.closed
		c.mu.Unlock()

		for _, e := range batch {
			c.out <- e
		}

		if len(batch) == 0 {
			if closed {
				return
			}
			<-c.signal
		}
	}
}

// Discard is an EventSink that drops everything.
type Discard struct{}

// Emit implements ports.EventSink.
func (Discard) Emit(domain.Event) {}
