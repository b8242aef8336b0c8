package cache

import (
	"context"
	"time"
)

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// MemoryStore keeps encoded entries in a bounded LRU.
type MemoryStore struct {
	lru  *LRU[string, memoryEntry]
	opts options
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore holds at most capacity entries.
func NewMemoryStore(capacity int, opts ...Option) *MemoryStore {
	return &MemoryStore{
		lru:  NewLRU[string, memoryEntry](capacity),
		opts: newOptions(opts),
	}
}

func (s *MemoryStore) Get(ctx context.Context, key string, dst any) error {
	if err := validKey(key); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	e, ok := s.lru.Get(key)
	if !ok {
		return ErrNotFound
	}
	if e.expired(s.opts.clock()) {
		s.lru.Remove(key)
		return ErrExpired
	}
	return decode(e.data, dst)
}

func (s *MemoryStore) Put(ctx context.Context, key string, value any, ttl time.Duration) error {
	if err := validKey(key); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := encode(value)
	if err != nil {
		return err
	}
	s.lru.Put(key, memoryEntry{data: data, expiresAt: s.opts.expiresAt(ttl)})
	return nil
}

func (s *MemoryStore) Has(ctx context.Context, key string) bool {
	return s.Get(ctx, key, nil) == nil
}

func (s *MemoryStore) Forget(ctx context.Context, key string) error {
	if err := validKey(key); err != nil {
		return err
	}
	s.lru.Remove(key)
	return nil
}

func (s *MemoryStore) Flush(ctx context.Context) error {
	s.lru.Clear()
	return nil
}

// Prune drops expired entries and returns how many were removed.
func (s *MemoryStore) Prune(ctx context.Context) (int, error) {
	now := s.opts.clock()
	return s.lru.RemoveFunc(func(_ string, e memoryEntry) bool { return e.expired(now) }), nil
}

func (s *MemoryStore) Len() int { return s.lru.Len() }
