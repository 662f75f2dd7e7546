// Package eventbus fans record mutation events out to in-process consumers.
// Publishing is decoupled from handling: the manager drops an event on a
// buffered channel right after a successful store call and moves on, while
// one consumer goroutine works through the buffer and invokes every
// registered handler in turn. A full buffer sheds events rather than slow
// down the request path.
package eventbus

import (
	"context"
	"log"
	"sync"

	"github.com/urmhq/urm/internal/event"
)

// Handler receives each published event. Calls arrive from the bus's
// consumer goroutine, one event at a time.
type Handler interface {
	HandleEvent(ctx context.Context, evt event.DomainEvent) error
}

// HandlerFunc lets a bare function subscribe.
type HandlerFunc func(ctx context.Context, evt event.DomainEvent) error

func (f HandlerFunc) HandleEvent(ctx context.Context, evt event.DomainEvent) error {
	return f(ctx, evt)
}

// Bus is the in-process pub/sub pipe between the manager and its
// consumers. A single goroutine drains the event channel, so handlers see
// events in publish order and need no locking of their own.
type Bus struct {
	mu          sync.RWMutex
	subscribers []namedHandler
	events      chan event.DomainEvent
	done        chan struct{}
}

type namedHandler struct {
	name    string
	handler Handler
}

// New creates a Bus whose channel buffers up to bufSize pending events.
// Sizes below 1 get a sane default.
func New(bufSize int) *Bus {
	if bufSize < 1 {
		bufSize = 64
	}
	return &Bus{
		events: make(chan event.DomainEvent, bufSize),
		done:   make(chan struct{}),
	}
}

// Subscribe registers a handler under a name used in dispatch error logs.
// Subscriptions belong in setup code, before Start.
func (b *Bus) Subscribe(name string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers = append(b.subscribers, namedHandler{name: name, handler: h})
}

// Publish enqueues an event without ever blocking the caller. When the
// buffer is full the event is logged and dropped; a missed live-refresh
// ping costs less than a stalled request handler.
func (b *Bus) Publish(ctx context.Context, evt event.DomainEvent) {
	select {
	case b.events <- evt:
	default:
		log.Printf("eventbus: buffer full, dropping event %s (%s)", evt.EventType, evt.ID)
	}
}

// Start launches the consumer goroutine. It runs until ctx is cancelled,
// then drains whatever is still buffered before exiting so accepted events
// are not lost on shutdown.
func (b *Bus) Start(ctx context.Context) {
	go func() {
		defer close(b.done)
		for {
			select {
			case evt := <-b.events:
				b.dispatch(ctx, evt)
			case <-ctx.Done():
				for {
					select {
					case evt := <-b.events:
						b.dispatch(ctx, evt)
					default:
						return
					}
				}
			}
		}
	}()
}

// Stop blocks until the consumer goroutine has drained and exited. The
// events channel is deliberately never closed: publishers may still race a
// shutdown, and a send on a closed channel would panic where a dropped
// event is harmless. Call only after the Start context is cancelled.
func (b *Bus) Stop() {
	<-b.done
}

func (b *Bus) dispatch(ctx context.Context, evt event.DomainEvent) {
	b.mu.RLock()
	subs := b.subscribers
	b.mu.RUnlock()

	for _, s := range subs {
		if err := s.handler.HandleEvent(ctx, evt); err != nil {
			log.Printf("eventbus: %s handler error for %s: %v", s.name, evt.EventType, err)
		}
	}
}
