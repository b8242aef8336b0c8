package config

import (
	"fmt"
	"maps"
	"os"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type entry struct {
	once  sync.Once
	value any
	err   error
}

var (
	mu      sync.Mutex
	entries = make(map[reflect.Type]*entry)

	dotenvOnce sync.Once
)

// Load parses the environment into v. Each type is parsed once; later calls
// copy the memoised value. A failed parse is not memoised.
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}
	dotenvOnce.Do(func() {
		// a missing .env is fine
		_ = godotenv.Load()
	})

	key := reflect.TypeFor[T]()
	e := lookup(key)
	e.once.Do(func() {
		var parsed T
		if err := env.Parse(&parsed); err != nil {
			e.err = err
			return
		}
		e.value = parsed
	})

	if e.err != nil {
		mu.Lock()
		if entries[key] == e {
			delete(entries, key)
		}
		mu.Unlock()
		return fmt.Errorf("%w: %s: %w", ErrParsingConfig, key, e.err)
	}
	*v = e.value.(T)
	return nil
}

func lookup(key reflect.Type) *entry {
	mu.Lock()
	defer mu.Unlock()
	e, ok := entries[key]
	if !ok {
		e = &entry{}
		entries[key] = e
	}
	return e
}

// MustLoad is Load that panics on failure.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(err)
	}
}

// LoadEnv reads the given .env files into the environment. Later files
// override earlier ones; variables set before the call are kept.
func LoadEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}

	merged := make(map[string]string)
	for _, p := range paths {
		values, err := godotenv.Read(p)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrLoadingEnvFile, p, err)
		}
		maps.Copy(merged, values)
	}

	for k, v := range merged {
		if _, set := os.LookupEnv(k); set {
			continue
		}
		if err := os.Setenv(k, v); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrLoadingEnvFile, k, err)
		}
	}
	return nil
}

// MustLoadEnv is LoadEnv that panics on failure.
func MustLoadEnv(paths ...string) {
	if err := LoadEnv(paths...); err != nil {
		panic(err)
	}
}

// Reset forgets every memoised struct.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	clear(entries)
}
