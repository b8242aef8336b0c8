package cache

import (
	"context"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/utilkit/pkg/redis"
)

const defaultRedisPrefix = "cache:"

// RedisStore keeps entries in Redis under a key prefix and relies on native
// key expiry.
type RedisStore struct {
	client goredis.UniversalClient
	opts   options
}

var _ Store = (*RedisStore)(nil)

func NewRedisStore(client goredis.UniversalClient, opts ...Option) *RedisStore {
	o := newOptions(opts)
	if o.prefix == "" {
		o.prefix = defaultRedisPrefix
	}
	return &RedisStore{client: client, opts: o}
}

// NewRedisStoreFromConfig nests the store prefix under cfg.KeyPrefix.
func NewRedisStoreFromConfig(client goredis.UniversalClient, cfg redis.Config, opts ...Option) *RedisStore {
	base := []Option{
		WithPrefix(cfg.KeyPrefix + defaultRedisPrefix),
		WithScanBatchSize(cfg.ScanBatchSize),
	}
	return NewRedisStore(client, append(base, opts...)...)
}

func (s *RedisStore) key(key string) string { return s.opts.prefix + key }

func (s *RedisStore) Get(ctx context.Context, key string, dst any) error {
	if err := validKey(key); err != nil {
		return err
	}
	b, err := s.client.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return ErrNotFound
	}
	if err != nil {
		return errors.Join(ErrRead, err)
	}
	return decode(b, dst)
}

func (s *RedisStore) Put(ctx context.Context, key string, value any, ttl time.Duration) error {
	if err := validKey(key); err != nil {
		return err
	}
	b, err := encode(value)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key(key), b, s.opts.ttl(ttl)).Err(); err != nil {
		return errors.Join(ErrWrite, err)
	}
	return nil
}

func (s *RedisStore) Has(ctx context.Context, key string) bool {
	if validKey(key) != nil {
		return false
	}
	n, err := s.client.Exists(ctx, s.key(key)).Result()
	return err == nil && n > 0
}

func (s *RedisStore) Forget(ctx context.Context, key string) error {
	if err := validKey(key); err != nil {
		return err
	}
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return errors.Join(ErrWrite, err)
	}
	return nil
}

// Flush deletes every key under the store prefix.
func (s *RedisStore) Flush(ctx context.Context) error {
	if _, err := redis.DeleteMatching(ctx, s.client, s.opts.prefix+"*", s.opts.scanBatch); err != nil {
		return errors.Join(ErrWrite, err)
	}
	return nil
}
