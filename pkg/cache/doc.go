// Package cache provides a small key/value cache abstraction with three
// stores behind one Store interface:
//
//   - FileCache keeps one JSON file per key on disk.
//   - MemoryStore keeps entries in a bounded, concurrency safe LRU.
//   - RedisStore keeps entries in Redis under a key prefix.
//
// Values are encoded with github.com/goccy/go-json, so anything that
// marshals to JSON can be cached and read back into a typed destination:
//
//	store, _ := cache.NewFileCache(dir)
//	user, err := cache.Remember(ctx, store, "user:42", time.Hour, loadUser)
//
// A ttl of zero or less keeps an entry until it is forgotten. WithDefaultTTL
// turns a zero ttl into a fixed lifetime. Lookups of absent or expired keys
// return ErrNotFound or ErrExpired; both match ErrMiss.
//
// Instrument wraps any Store with Prometheus counters.
package cache
