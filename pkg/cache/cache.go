package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/goccy/go-json"

	"github.com/dmitrymomot/utilkit/pkg/logger"
)

// Store is a key/value cache with per-entry expiry. Values are encoded as
// JSON; Get decodes into dst, which must be a pointer or nil.
type Store interface {
	Get(ctx context.Context, key string, dst any) error
	// Put stores value for ttl. A ttl of zero or less keeps the entry until
	// it is forgotten, unless the store has a default TTL for zero.
	Put(ctx context.Context, key string, value any, ttl time.Duration) error
	Has(ctx context.Context, key string) bool
	Forget(ctx context.Context, key string) error
	Flush(ctx context.Context) error
}

// Option configures the stores of this package.
type Option func(*options)

type options struct {
	clock      func() time.Time
	log        *slog.Logger
	prefix     string
	defaultTTL time.Duration
	scanBatch  int64
}

func newOptions(opts []Option) options {
	o := options{clock: time.Now, log: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func WithClock(clock func() time.Time) Option {
	return func(o *options) {
		if clock != nil {
			o.clock = clock
		}
	}
}

func WithLogger(log *slog.Logger) Option {
	return func(o *options) { o.log = logger.OrDefault(log) }
}

// WithPrefix namespaces keys. Only the Redis store uses it.
func WithPrefix(prefix string) Option {
	return func(o *options) { o.prefix = prefix }
}

// WithDefaultTTL is applied when Put is called with a zero ttl. Negative
// ttls still mean forever.
func WithDefaultTTL(ttl time.Duration) Option {
	return func(o *options) { o.defaultTTL = ttl }
}

// WithScanBatchSize sets the SCAN count hint used by RedisStore.Flush.
func WithScanBatchSize(n int64) Option {
	return func(o *options) { o.scanBatch = n }
}

// ttl resolves the effective lifetime; zero means no expiry.
func (o options) ttl(ttl time.Duration) time.Duration {
	if ttl == 0 {
		ttl = o.defaultTTL
	}
	return max(ttl, 0)
}

// expiresAt returns the expiry instant, or the zero time for forever.
func (o options) expiresAt(ttl time.Duration) time.Time {
	if ttl = o.ttl(ttl); ttl == 0 {
		return time.Time{}
	}
	return o.clock().Add(ttl)
}

func validKey(key string) error {
	if key == "" {
		return ErrInvalidKey
	}
	return nil
}

func encode(value any) ([]byte, error) {
	b, err := json.Marshal(value)
	if err != nil {
		return nil, errors.Join(ErrEncode, err)
	}
	return b, nil
}

func decode(b []byte, dst any) error {
	if dst == nil {
		return nil
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return errors.Join(ErrDecode, err)
	}
	return nil
}

// Get is the typed form of Store.Get.
func Get[T any](ctx context.Context, s Store, key string) (T, error) {
	var v T
	if err := s.Get(ctx, key, &v); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

// Remember returns the cached value of key, or calls fn, stores its result
// for ttl and returns it. Errors of fn are returned without caching.
func Remember[T any](ctx context.Context, s Store, key string, ttl time.Duration, fn func(context.Context) (T, error)) (T, error) {
	v, err := Get[T](ctx, s, key)
	if err == nil {
		return v, nil
	}
	if !errors.Is(err, ErrMiss) && !errors.Is(err, ErrDecode) {
		var zero T
		return zero, err
	}

	v, err = fn(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	if err := s.Put(ctx, key, v, ttl); err != nil {
		return v, err
	}
	return v, nil
}

// Pull returns the value of key and removes it.
func Pull[T any](ctx context.Context, s Store, key string) (T, error) {
	v, err := Get[T](ctx, s, key)
	if err != nil {
		return v, err
	}
	if err := s.Forget(ctx, key); err != nil {
		return v, err
	}
	return v, nil
}
