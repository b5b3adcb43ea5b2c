package events

import (
	"context"
	"sync"
)

// EventHandler handles a published event.
type EventHandler func(context.Context, Event) error

// Dispatcher fans events out to subscribed handlers.
type Dispatcher interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType EventType, handler EventHandler)
}

// inMemoryDispatcher runs handlers synchronously on the publishing
// goroutine. Handler errors are swallowed; side effects hanging off the
// bus are best-effort and must not fail the triggering operation.
type inMemoryDispatcher struct {
	mu          sync.RWMutex
	subscribers map[EventType][]EventHandler
}

func NewInMemoryDispatcher() Dispatcher {
	return &inMemoryDispatcher{subscribers: make(map[EventType][]EventHandler)}
}

func (d *inMemoryDispatcher) Publish(ctx context.Context, event Event) error {
	for _, handler := range d.handlersFor(event.Type) {
		_ = handler(ctx, event)
	}
	return nil
}

func (d *inMemoryDispatcher) Subscribe(eventType EventType, handler EventHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.subscribers[eventType] = append(d.subscribers[eventType], handler)
}

// handlersFor copies the handler slice so publishing never holds the
// lock while handlers run.
func (d *inMemoryDispatcher) handlersFor(t EventType) []EventHandler {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]EventHandler, len(d.subscribers[t]))
	copy(out, d.subscribers[t])
	return out
}
