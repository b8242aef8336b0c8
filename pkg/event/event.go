package event

import (
	"context"
	"time"
)

// Event is what listeners and subscribers receive.
type Event struct {
	ID      string
	Name    string
	Payload any
	Time    time.Time
}

// Listener handles an event. The result is only used by Dispatcher.Until.
type Listener func(ctx context.Context, e Event) (any, error)

// Func adapts a listener that produces no result.
func Func(fn func(ctx context.Context, e Event) error) Listener {
	return func(ctx context.Context, e Event) (any, error) {
		return nil, fn(ctx, e)
	}
}

// ListenerID identifies a registration for Dispatcher.Remove.
type ListenerID uint64

// ListenOption configures one listener registration.
type ListenOption func(*registration)

// WithPriority orders listeners of one event; higher runs first. Listeners
// of equal priority run in registration order.
func WithPriority(priority int) ListenOption {
	return func(r *registration) { r.priority = priority }
}

// Once removes the listener after its first invocation.
func Once() ListenOption {
	return func(r *registration) { r.once = true }
}
