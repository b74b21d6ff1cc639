package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryOption configures a Memory cache.
type MemoryOption func(*memoryConfig)

type memoryConfig struct {
	defaultTTL time.Duration
	maxEntries int
	sweepEvery time.Duration
}

// WithDefaultTTL sets the TTL used when Set is given zero. Default: no expiry.
func WithDefaultTTL(d time.Duration) MemoryOption {
	return func(c *memoryConfig) { c.defaultTTL = d }
}

// WithMaxEntries bounds the cache; the oldest entry is evicted on overflow.
// Zero means unbounded.
func WithMaxEntries(n int) MemoryOption {
	return func(c *memoryConfig) { c.maxEntries = n }
}

// WithSweepInterval sets how often expired entries are purged.
// Zero disables the background sweep. Default: one minute.
func WithSweepInterval(d time.Duration) MemoryOption {
	return func(c *memoryConfig) { c.sweepEvery = d }
}

type memoryEntry[V any] struct {
	value   V
	expires time.Time
	seq     uint64
}

func (e memoryEntry[V]) expired(now time.Time) bool {
	return !e.expires.IsZero() && now.After(e.expires)
}

// Memory is an in-process cache safe for concurrent use.
type Memory[V any] struct {
	cfg     memoryConfig
	mu      sync.Mutex
	entries map[string]memoryEntry[V]
	seq     uint64
	closed  bool
	stop    chan struct{}
}

// NewMemory returns a Memory cache. Call Close to stop the background sweep.
func NewMemory[V any](opts ...MemoryOption) *Memory[V] {
	cfg := memoryConfig{sweepEvery: time.Minute}
	for _, opt := range opts {
		opt(&cfg)
	}

	m := &Memory[V]{
		cfg:     cfg,
		entries: make(map[string]memoryEntry[V]),
		stop:    make(chan struct{}),
	}
	if cfg.sweepEvery > 0 {
		go m.sweepLoop()
	}
	return m
}

func (m *Memory[V]) Get(_ context.Context, key string) (V, error) {
	var zero V

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return zero, ErrClosed
	}
	e, ok := m.entries[key]
	if !ok {
		return zero, ErrNotFound
	}
	if e.expired(time.Now()) {
		delete(m.entries, key)
		return zero, ErrNotFound
	}
	return e.value, nil
}

func (m *Memory[V]) Set(_ context.Context, key string, value V, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	if ttl == 0 {
		ttl = m.cfg.defaultTTL
	}
	var expires time.Time
	if ttl > 0 {
		expires = time.Now().Add(ttl)
	}

	if _, exists := m.entries[key]; !exists && m.cfg.maxEntries > 0 && len(m.entries) >= m.cfg.maxEntries {
		m.evictLocked()
	}

	m.seq++
	m.entries[key] = memoryEntry[V]{value: value, expires: expires, seq: m.seq}
	return nil
}

func (m *Memory[V]) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	delete(m.entries, key)
	return nil
}

func (m *Memory[V]) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	clear(m.entries)
	return nil
}

// Len returns the number of stored entries, expired ones included.
func (m *Memory[V]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

func (m *Memory[V]) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}
	m.closed = true
	m.entries = nil
	close(m.stop)
	return nil
}

// evictLocked drops an expired entry if there is one, otherwise the oldest.
func (m *Memory[V]) evictLocked() {
	now := time.Now()
	var (
		victim string
		oldest uint64
		found  bool
	)
	for k, e := range m.entries {
		if e.expired(now) {
			delete(m.entries, k)
			return
		}
		if !found || e.seq < oldest {
			victim, oldest, found = k, e.seq, true
		}
	}
	if found {
		delete(m.entries, victim)
	}
}

func (m *Memory[V]) sweepLoop() {
	t := time.NewTicker(m.cfg.sweepEvery)
	defer t.Stop()

	for {
		select {
		case <-m.stop:
			return
		case now := <-t.C:
			m.mu.Lock()
			for k, e := range m.entries {
				if e.expired(now) {
					delete(m.entries, k)
				}
			}
			m.mu.Unlock()
		}
	}
}
