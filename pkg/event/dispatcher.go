package event

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/utilkit/pkg/logger"
)

type registration struct {
	id       ListenerID
	pattern  string
	fn       Listener
	priority int
	once     bool
	fired    atomic.Bool
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger for listener failures and dropped subscribers.
func WithLogger(log *slog.Logger) Option {
	return func(d *Dispatcher) { d.log = logger.OrDefault(log) }
}

// WithClock sets the source of Event.Time.
func WithClock(clock func() time.Time) Option {
	return func(d *Dispatcher) {
		if clock != nil {
			d.clock = clock
		}
	}
}

// WithBufferSize sets the channel buffer of new subscriptions. Defaults to 64.
func WithBufferSize(n int) Option {
	return func(d *Dispatcher) { d.bufferSize = n }
}

// Dispatcher routes named events to listeners registered under exact names
// or path.Match patterns such as "user.*". All methods are safe for
// concurrent use.
type Dispatcher struct {
	mu         sync.RWMutex
	listeners  []*registration
	subs       map[*Subscription]struct{}
	nextID     ListenerID
	closed     bool
	log        *slog.Logger
	clock      func() time.Time
	bufferSize int
	wg         sync.WaitGroup
}

// NewDispatcher creates a dispatcher with no listeners.
func NewDispatcher(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		subs:       make(map[*Subscription]struct{}),
		log:        slog.Default(),
		clock:      time.Now,
		bufferSize: 64,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.log = d.log.With(logger.Component("event"))
	return d
}

// Listen registers fn for every event whose name matches pattern.
func (d *Dispatcher) Listen(pattern string, fn Listener, opts ...ListenOption) (ListenerID, error) {
	if fn == nil {
		return 0, ErrNilListener
	}
	if pattern == "" {
		return 0, fmt.Errorf("%w: empty pattern", ErrInvalidPattern)
	}
	if _, err := path.Match(pattern, ""); err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPattern, pattern)
	}

	r := &registration{pattern: pattern, fn: fn}
	for _, opt := range opts {
		opt(r)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return 0, ErrDispatcherClosed
	}
	d.nextID++
	r.id = d.nextID
	d.listeners = append(d.listeners, r)
	return r.id, nil
}

// ListenOnce is Listen with the Once option.
func (d *Dispatcher) ListenOnce(pattern string, fn Listener, opts ...ListenOption) (ListenerID, error) {
	return d.Listen(pattern, fn, append(opts, Once())...)
}

// Remove unregisters one listener and reports whether it existed.
func (d *Dispatcher) Remove(id ListenerID) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := len(d.listeners)
	d.listeners = slices.DeleteFunc(d.listeners, func(r *registration) bool { return r.id == id })
	return len(d.listeners) != n
}

// Forget removes every listener registered under exactly pattern.
func (d *Dispatcher) Forget(pattern string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listeners = slices.DeleteFunc(d.listeners, func(r *registration) bool { return r.pattern == pattern })
}

// HasListeners reports whether any listener would receive name.
func (d *Dispatcher) HasListeners(name string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return slices.ContainsFunc(d.listeners, func(r *registration) bool { return matches(r.pattern, name) })
}

func matches(pattern, name string) bool {
	if pattern == name {
		return true
	}
	ok, _ := path.Match(pattern, name)
	return ok
}

// Dispatch calls the listeners of name synchronously, highest priority
// first, then publishes the event to subscribers. A listener returning
// ErrStopPropagation ends the chain; other listener errors are logged and
// returned joined after every remaining listener has run.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, payload any) error {
	e, regs, err := d.prepare(name, payload)
	if err != nil {
		return err
	}
	ctx = withEventAttrs(ctx, e)

	var errs []error
	for _, r := range regs {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if !d.claim(r) {
			continue
		}
		_, err := d.call(ctx, r, e)
		if errors.Is(err, ErrStopPropagation) {
			break
		}
		if err != nil {
			d.log.ErrorContext(ctx, "event listener failed",
				slog.String("pattern", r.pattern),
				logger.Error(err),
			)
			errs = append(errs, err)
		}
	}

	d.publish(e)
	return errors.Join(errs...)
}

// Until calls listeners in Dispatch order and returns the first non-nil
// result. It stops at the first error. Subscribers are not notified.
func (d *Dispatcher) Until(ctx context.Context, name string, payload any) (any, error) {
	e, regs, err := d.prepare(name, payload)
	if err != nil {
		return nil, err
	}
	ctx = withEventAttrs(ctx, e)
	for _, r := range regs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !d.claim(r) {
			continue
		}
		res, err := d.call(ctx, r, e)
		if errors.Is(err, ErrStopPropagation) {
			return res, nil
		}
		if err != nil {
			return nil, err
		}
		if res != nil {
			return res, nil
		}
	}
	return nil, nil
}

// withEventAttrs makes log calls of listeners carry the event they handle.
func withEventAttrs(ctx context.Context, e Event) context.Context {
	return logger.ContextWithAttrs(ctx, logger.Event(e.Name), slog.String("event_id", e.ID))
}

func (d *Dispatcher) prepare(name string, payload any) (Event, []*registration, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return Event{}, nil, ErrDispatcherClosed
	}

	var regs []*registration
	for _, r := range d.listeners {
		if matches(r.pattern, name) {
			regs = append(regs, r)
		}
	}
	slices.SortStableFunc(regs, func(a, b *registration) int {
		if c := cmp.Compare(b.priority, a.priority); c != 0 {
			return c
		}
		return cmp.Compare(a.id, b.id)
	})

	return Event{
		ID:      uuid.NewString(),
		Name:    name,
		Payload: payload,
		Time:    d.clock(),
	}, regs, nil
}

// claim reports whether r may run; once listeners run at most one time
// even under concurrent dispatches.
func (d *Dispatcher) claim(r *registration) bool {
	if !r.once {
		return true
	}
	if !r.fired.CompareAndSwap(false, true) {
		return false
	}
	d.Remove(r.id)
	return true
}

func (d *Dispatcher) call(ctx context.Context, r *registration, e Event) (res any, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: %v", ErrListenerPanic, p)
		}
	}()
	return r.fn(ctx, e)
}

// Subscribe returns a buffered feed of every dispatched event. Events are
// dropped for a subscriber whose buffer is full, and the subscription is
// closed, so one slow consumer never blocks Dispatch.
func (d *Dispatcher) Subscribe(ctx context.Context) *Subscription {
	d.mu.Lock()
	defer d.mu.Unlock()

	sub := newSubscription(d.bufferSize, d.unsubscribe)
	if d.closed {
		sub.close()
		return sub
	}
	d.subs[sub] = struct{}{}

	if ctx.Done() != nil {
		d.wg.Add(1)
		go func() {
			defer d.wg.Done()
			select {
			case <-ctx.Done():
				sub.Close()
			case <-sub.done:
			}
		}()
	}
	return sub
}

func (d *Dispatcher) publish(e Event) {
	d.mu.RLock()
	var slow []*Subscription
	for sub := range d.subs {
		if !sub.send(e) {
			slow = append(slow, sub)
		}
	}
	d.mu.RUnlock()

	for _, sub := range slow {
		d.log.Warn("dropping slow event subscriber", logger.Event(e.Name))
		sub.Close()
	}
}

func (d *Dispatcher) unsubscribe(sub *Subscription) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.subs, sub)
}

// Close closes every subscription and rejects further use. Safe to call
// more than once.
func (d *Dispatcher) Close() error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	subs := make([]*Subscription, 0, len(d.subs))
	for sub := range d.subs {
		subs = append(subs, sub)
	}
	clear(d.subs)
	d.listeners = nil
	d.mu.Unlock()

	for _, sub := range subs {
		sub.close()
	}
	d.wg.Wait()
	return nil
}
