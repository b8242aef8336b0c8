package cache

import (
	"errors"
	"fmt"
)

var (
	// ErrMiss matches every lookup that found no live entry.
	ErrMiss       = errors.New("cache miss")
	ErrNotFound   = fmt.Errorf("%w: key not found", ErrMiss)
	ErrExpired    = fmt.Errorf("%w: entry expired", ErrMiss)
	ErrInvalidKey = errors.New("invalid cache key")
	ErrEncode     = errors.New("failed to encode cache value")
	ErrDecode     = errors.New("failed to decode cache value")
	ErrWrite      = errors.New("failed to write cache entry")
	ErrRead       = errors.New("failed to read cache entry")
)
