package event

import "sync"

// Subscription receives every dispatched event until it is closed, its
// context ends or the dispatcher closes.
type Subscription struct {
	ch     chan Event
	done   chan struct{}
	mu     sync.RWMutex
	closed bool
	unsub  func(*Subscription)
}

func newSubscription(bufferSize int, unsub func(*Subscription)) *Subscription {
	return &Subscription{
		ch:    make(chan Event, max(bufferSize, 1)),
		done:  make(chan struct{}),
		unsub: unsub,
	}
}

// C is closed once the subscription ends.
func (s *Subscription) C() <-chan Event { return s.ch }

// Close detaches the subscription from its dispatcher. Safe to call twice.
func (s *Subscription) Close() {
	if s.unsub != nil {
		s.unsub(s)
	}
	s.close()
}

func (s *Subscription) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closed = true
		close(s.ch)
		close(s.done)
	}
}

// send never blocks; a full buffer drops the event and reports false.
func (s *Subscription) send(e Event) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return false
	}
	select {
	case s.ch <- e:
		return true
	default:
		return false
	}
}
