package event

import "errors"

var (
	// ErrStopPropagation may be returned by a listener to skip the listeners
	// after it. Dispatch does not report it as a failure.
	ErrStopPropagation  = errors.New("stop event propagation")
	ErrInvalidPattern   = errors.New("invalid event pattern")
	ErrNilListener      = errors.New("listener is nil")
	ErrDispatcherClosed = errors.New("dispatcher is closed")
	ErrListenerPanic    = errors.New("listener panicked")
)
