package events

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// EventHandlerFunc is a function that handles a domain event.
type EventHandlerFunc func(ctx context.Context, event DomainEvent) error

// namedHandler wraps a handler with its name for debugging
type namedHandler struct {
	name    string
	handler EventHandlerFunc
}

// Dispatcher dispatches domain events to registered handlers synchronously.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[string][]namedHandler
	// ContinueOnError determines if dispatch should continue when a handler fails
	ContinueOnError bool
}

// NewDispatcher creates a new Dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		handlers: make(map[string][]namedHandler),
	}
}

// Register registers a handler for specific event types.
func (d *Dispatcher) Register(name string, handler EventHandlerFunc, eventTypes ...string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	nh := namedHandler{name: name, handler: handler}
	for _, eventType := range eventTypes {
		d.handlers[eventType] = append(d.handlers[eventType], nh)
	}
}

// RegisterWildcard registers a handler for all events (wildcard "*").
func (d *Dispatcher) RegisterWildcard(name string, handler EventHandlerFunc) {
	d.Register(name, handler, "*")
}

// Dispatch dispatches an event to all registered handlers. If
// ContinueOnError is false, dispatch stops at the first handler error;
// otherwise all handlers run and errors are collected.
func (d *Dispatcher) Dispatch(ctx context.Context, event DomainEvent) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	eventType := event.EventType()

	var handlers []namedHandler
	handlers = append(handlers, d.handlers[eventType]...)
	handlers = append(handlers, d.handlers["*"]...)

	var errs []error
	for _, nh := range handlers {
		if err := nh.handler(ctx, event); err != nil {
			handlerErr := fmt.Errorf("handler %s failed for event %s: %w", nh.name, eventType, err)
			if !d.ContinueOnError {
				return handlerErr
			}
			errs = append(errs, handlerErr)
		}
	}

	if len(errs) > 0 {
		return &DispatchError{Errors: errs}
	}
	return nil
}

// HasHandlers returns true if the event type has any handler, including
// wildcard handlers.
func (d *Dispatcher) HasHandlers(eventType string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.handlers[eventType]) > 0 || len(d.handlers["*"]) > 0
}

// DispatchError aggregates handler failures from a single dispatch.
type DispatchError struct {
	Errors []error
}

func (e *DispatchError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("%d handler(s) failed: %s", len(e.Errors), strings.Join(msgs, "; "))
}

// Unwrap returns the first error for errors.Is/As chains.
func (e *DispatchError) Unwrap() error {
	if len(e.Errors) == 0 {
		return nil
	}
	return e.Errors[0]
}
