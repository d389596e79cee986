package cache

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"
)

// Func is the shape of a memoizable data-access function: an arbitrary
// fetch taking serializable arguments and returning a typed result.
type Func[T any] func(ctx context.Context, args ...any) (T, error)

// MemoizeOption configures a memoized function.
type MemoizeOption func(*memoizeConfig)

type memoizeConfig struct {
	ttl time.Duration
}

// WithTTL overrides the store's default TTL for results cached by this
// wrapper.
func WithTTL(ttl time.Duration) MemoizeOption {
	return func(c *memoizeConfig) { c.ttl = ttl }
}

// Memoize wraps fn so that results are served from store when fresh and
// concurrent duplicate calls are coalesced into a single in-flight fetch.
//
// The wrapper derives the cache key from name and the stable serialization
// of the arguments. On a miss, exactly one fetch runs per key no matter
// how many callers arrive while it is in flight; every waiter receives the
// same value or the same error. Failed fetches are never cached, so the
// next call re-invokes fn. A value that signals an application-level
// failure without returning an error is cached like any other value.
//
// The wrapper adds no retry, timeout, or cancellation semantics of its
// own; whatever fn does with ctx passes through unchanged. Note that with
// coalescing the winning caller's ctx governs the shared fetch.
func Memoize[T any](store *Store, name string, fn Func[T], opts ...MemoizeOption) Func[T] {
	cfg := memoizeConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	var inflight singleflight.Group

	return func(ctx context.Context, args ...any) (T, error) {
		key := Key(name, args...)

		if v, ok := store.Get(key); ok {
			return v.(T), nil
		}

		v, err, _ := inflight.Do(key, func() (any, error) {
			// A racing caller may have populated the store between our
			// miss and acquiring the flight.
			if v, ok := store.Get(key); ok {
				return v, nil
			}
			out, err := fn(ctx, args...)
			if err != nil {
				return nil, err
			}
			store.SetWithTTL(key, out, cfg.ttl)
			return out, nil
		})
		if err != nil {
			var zero T
			return zero, err
		}
		return v.(T), nil
	}
}
