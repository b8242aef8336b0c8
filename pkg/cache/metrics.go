package cache

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// InstrumentedStore counts hits, misses, writes and errors of a Store.
type InstrumentedStore struct {
	Store
	hits   prometheus.Counter
	misses prometheus.Counter
	writes prometheus.Counter
	errs   *prometheus.CounterVec
}

// Instrument wraps store and registers its counters with reg, or the default
// registerer when reg is nil.
func Instrument(store Store, namespace string, reg prometheus.Registerer) (*InstrumentedStore, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	counter := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      name,
			Help:      help,
		})
	}
	s := &InstrumentedStore{
		Store:  store,
		hits:   counter("hits_total", "Cache lookups that found a live entry."),
		misses: counter("misses_total", "Cache lookups that found nothing or an expired entry."),
		writes: counter("writes_total", "Successful cache writes."),
		errs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "errors_total",
			Help:      "Cache operations that failed for reasons other than a miss.",
		}, []string{"op"}),
	}
	for _, c := range []prometheus.Collector{s.hits, s.misses, s.writes, s.errs} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *InstrumentedStore) Get(ctx context.Context, key string, dst any) error {
	err := s.Store.Get(ctx, key, dst)
	switch {
	case err == nil:
		s.hits.Inc()
	case errors.Is(err, ErrMiss):
		s.misses.Inc()
	default:
		s.errs.WithLabelValues("get").Inc()
	}
	return err
}

func (s *InstrumentedStore) Put(ctx context.Context, key string, value any, ttl time.Duration) error {
	err := s.Store.Put(ctx, key, value, ttl)
	if err != nil {
		s.errs.WithLabelValues("put").Inc()
		return err
	}
	s.writes.Inc()
	return nil
}

func (s *InstrumentedStore) Forget(ctx context.Context, key string) error {
	err := s.Store.Forget(ctx, key)
	if err != nil {
		s.errs.WithLabelValues("forget").Inc()
	}
	return err
}

func (s *InstrumentedStore) Flush(ctx context.Context) error {
	err := s.Store.Flush(ctx)
	if err != nil {
		s.errs.WithLabelValues("flush").Inc()
	}
	return err
}
