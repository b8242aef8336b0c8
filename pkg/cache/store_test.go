package cache_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/utilkit/pkg/cache"
	"github.com/dmitrymomot/utilkit/pkg/logger"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type profile struct {
	Name string   `json:"name"`
	Tags []string `json:"tags"`
}

type storeFactory func(t *testing.T, clock *fakeClock) (cache.Store, func(time.Duration))

func stores() map[string]storeFactory {
	return map[string]storeFactory{
		"file": func(t *testing.T, clock *fakeClock) (cache.Store, func(time.Duration)) {
			s, err := cache.NewFileCache(t.TempDir(), cache.WithClock(clock.Now), cache.WithLogger(logger.Discard()))
			require.NoError(t, err)
			return s, clock.Advance
		},
		"memory": func(t *testing.T, clock *fakeClock) (cache.Store, func(time.Duration)) {
			return cache.NewMemoryStore(100, cache.WithClock(clock.Now)), clock.Advance
		},
		"redis": func(t *testing.T, _ *fakeClock) (cache.Store, func(time.Duration)) {
			mr := miniredis.RunT(t)
			client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
			t.Cleanup(func() { _ = client.Close() })
			return cache.NewRedisStore(client, cache.WithPrefix("test:")), mr.FastForward
		},
	}
}

func TestStores(t *testing.T) {
	t.Parallel()

	for name, factory := range stores() {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()

			t.Run("put and get", func(t *testing.T) {
				s, _ := factory(t, &fakeClock{now: time.Unix(1_700_000_000, 0)})
				in := profile{Name: "ada", Tags: []string{"x", "y"}}
				require.NoError(t, s.Put(ctx, "p", in, time.Minute))

				var out profile
				require.NoError(t, s.Get(ctx, "p", &out))
				assert.Equal(t, in, out)
				assert.True(t, s.Has(ctx, "p"))
			})

			t.Run("missing key", func(t *testing.T) {
				s, _ := factory(t, &fakeClock{now: time.Unix(1_700_000_000, 0)})
				var out string
				err := s.Get(ctx, "nope", &out)
				assert.ErrorIs(t, err, cache.ErrNotFound)
				assert.ErrorIs(t, err, cache.ErrMiss)
				assert.False(t, s.Has(ctx, "nope"))
			})

			t.Run("expiry", func(t *testing.T) {
				s, advance := factory(t, &fakeClock{now: time.Unix(1_700_000_000, 0)})
				require.NoError(t, s.Put(ctx, "short", 1, 2*time.Second))
				require.NoError(t, s.Put(ctx, "forever", 2, 0))

				advance(3 * time.Second)

				assert.ErrorIs(t, s.Get(ctx, "short", new(int)), cache.ErrMiss)
				var v int
				require.NoError(t, s.Get(ctx, "forever", &v))
				assert.Equal(t, 2, v)
			})

			t.Run("forget and flush", func(t *testing.T) {
				s, _ := factory(t, &fakeClock{now: time.Unix(1_700_000_000, 0)})
				require.NoError(t, s.Put(ctx, "a", "1", 0))
				require.NoError(t, s.Put(ctx, "b", "2", 0))

				require.NoError(t, s.Forget(ctx, "a"))
				require.NoError(t, s.Forget(ctx, "a"))
				assert.False(t, s.Has(ctx, "a"))

				require.NoError(t, s.Flush(ctx))
				assert.False(t, s.Has(ctx, "b"))
			})

			t.Run("invalid key", func(t *testing.T) {
				s, _ := factory(t, &fakeClock{now: time.Unix(1_700_000_000, 0)})
				assert.ErrorIs(t, s.Put(ctx, "", 1, 0), cache.ErrInvalidKey)
				assert.ErrorIs(t, s.Get(ctx, "", nil), cache.ErrInvalidKey)
			})

			t.Run("unencodable value", func(t *testing.T) {
				s, _ := factory(t, &fakeClock{now: time.Unix(1_700_000_000, 0)})
				assert.ErrorIs(t, s.Put(ctx, "ch", make(chan int), 0), cache.ErrEncode)
			})

			t.Run("decode into wrong type", func(t *testing.T) {
				s, _ := factory(t, &fakeClock{now: time.Unix(1_700_000_000, 0)})
				require.NoError(t, s.Put(ctx, "s", "text", 0))
				var n int
				assert.ErrorIs(t, s.Get(ctx, "s", &n), cache.ErrDecode)
			})
		})
	}
}

func TestRemember(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := cache.NewMemoryStore(10)

	calls := 0
	load := func(context.Context) (profile, error) {
		calls++
		return profile{Name: "grace"}, nil
	}

	for range 3 {
		p, err := cache.Remember(ctx, s, "user", time.Minute, load)
		require.NoError(t, err)
		assert.Equal(t, "grace", p.Name)
	}
	assert.Equal(t, 1, calls)

	boom := errors.New("boom")
	_, err := cache.Remember(ctx, s, "other", time.Minute, func(context.Context) (int, error) { return 0, boom })
	assert.ErrorIs(t, err, boom)
	assert.False(t, s.Has(ctx, "other"))
}

func TestPull(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := cache.NewMemoryStore(10)
	require.NoError(t, s.Put(ctx, "token", "abc", 0))

	v, err := cache.Pull[string](ctx, s, "token")
	require.NoError(t, err)
	assert.Equal(t, "abc", v)

	_, err = cache.Pull[string](ctx, s, "token")
	assert.ErrorIs(t, err, cache.ErrNotFound)
}

func TestDefaultTTL(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	s := cache.NewMemoryStore(10, cache.WithClock(clock.Now), cache.WithDefaultTTL(time.Minute))

	require.NoError(t, s.Put(ctx, "zero", 1, 0))
	require.NoError(t, s.Put(ctx, "negative", 1, -1))
	clock.Advance(2 * time.Minute)

	assert.False(t, s.Has(ctx, "zero"))
	assert.True(t, s.Has(ctx, "negative"))
}
