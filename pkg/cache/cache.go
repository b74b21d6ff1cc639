package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"golang.org/x/sync/singleflight"
)

// Cache is a typed key-value cache with expiry.
//
// The ttl passed to Set is interpreted as:
//   - positive: the entry expires after ttl
//   - zero: the cache's default TTL applies
//   - negative: the entry never expires
type Cache[V any] interface {
	// Get returns ErrNotFound for missing and expired keys.
	Get(ctx context.Context, key string) (V, error)
	Set(ctx context.Context, key string, value V, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	Close() error
}

// Marshaler encodes values for byte-oriented backends.
type Marshaler[V any] interface {
	Marshal(v V) ([]byte, error)
	Unmarshal(data []byte) (V, error)
}

// JSON is the default Marshaler.
type JSON[V any] struct{}

func (JSON[V]) Marshal(v V) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Join(ErrMarshal, err)
	}
	return data, nil
}

func (JSON[V]) Unmarshal(data []byte) (V, error) {
	var v V
	if err := json.Unmarshal(data, &v); err != nil {
		return v, errors.Join(ErrUnmarshal, err)
	}
	return v, nil
}

// LoadFunc computes a value on a cache miss together with its TTL.
type LoadFunc[V any] func(ctx context.Context) (V, time.Duration, error)

// Loader reads through a cache. Concurrent misses on one key share a single
// call to the load function.
type Loader[V any] struct {
	cache Cache[V]
	group singleflight.Group
}

// NewLoader returns a read-through loader over c.
func NewLoader[V any](c Cache[V]) *Loader[V] {
	return &Loader[V]{cache: c}
}

// Cache returns the underlying cache.
func (l *Loader[V]) Cache() Cache[V] {
	return l.cache
}

type loaded[V any] struct {
	val V
	ttl time.Duration
}

// Get returns the cached value for key or loads and stores it.
// Load errors are returned and nothing is cached.
func (l *Loader[V]) Get(ctx context.Context, key string, fn LoadFunc[V]) (V, error) {
	if v, err := l.cache.Get(ctx, key); err == nil {
		return v, nil
	}

	res, err, _ := l.group.Do(key, func() (any, error) {
		v, ttl, err := fn(ctx)
		if err != nil {
			return nil, err
		}
		_ = l.cache.Set(ctx, key, v, ttl)
		return loaded[V]{val: v, ttl: ttl}, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return res.(loaded[V]).val, nil
}

// Forget drops key from the cache.
func (l *Loader[V]) Forget(ctx context.Context, key string) error {
	return l.cache.Delete(ctx, key)
}
