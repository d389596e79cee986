// Package cache implements the in-memory caching layer used by the admin
// API's data-access functions: a bounded TTL store with LRU eviction, a
// memoizing wrapper with request coalescing, and a router that maps write
// operations to the cache keys they invalidate.
package cache

import (
	"container/list"
	"strings"
	"sync"
	"time"
)

// Metrics receives cache events. Implementations must be safe for
// concurrent use. A nil-safe no-op implementation is used by default.
type Metrics interface {
	Hit(store string)
	Miss(store string)
	Eviction(store string)
	Invalidation(store string, removed int)
}

// NoopMetrics discards all cache events.
type NoopMetrics struct{}

func (NoopMetrics) Hit(string)              {}
func (NoopMetrics) Miss(string)             {}
func (NoopMetrics) Eviction(string)         {}
func (NoopMetrics) Invalidation(string, int) {}

// entry is one memoized result together with its expiry bookkeeping.
type entry struct {
	key       string
	value     any
	createdAt time.Time
	expiresAt time.Time
}

// Store is a named pool of cached entries with a shared size bound and a
// default TTL. Recency is tracked with a doubly linked list so the least
// recently used entry can be evicted in O(1) when the bound is exceeded.
// Expiration is lazy: entries are checked on read rather than swept by a
// background goroutine.
//
// Unlike the single-threaded dashboard context this design comes from,
// stores here are shared across concurrent HTTP handlers, so all
// operations take the store mutex.
type Store struct {
	name       string
	maxSize    int
	defaultTTL time.Duration
	metrics    Metrics

	mu      sync.Mutex
	items   map[string]*list.Element
	lru     *list.List // front = most recently used
	hits    uint64
	misses  uint64
	evicted uint64
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithMetrics attaches a metrics sink to the store.
func WithMetrics(m Metrics) StoreOption {
	return func(s *Store) {
		if m != nil {
			s.metrics = m
		}
	}
}

// NewStore creates an empty store. maxSize must be positive; defaultTTL is
// applied by Set when the caller does not provide one.
func NewStore(name string, maxSize int, defaultTTL time.Duration, opts ...StoreOption) *Store {
	if maxSize <= 0 {
		maxSize = 100
	}
	s := &Store{
		name:       name,
		maxSize:    maxSize,
		defaultTTL: defaultTTL,
		metrics:    NoopMetrics{},
		items:      make(map[string]*list.Element),
		lru:        list.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the store's volatility-class name (static, dynamic, user).
func (s *Store) Name() string { return s.name }

// Get returns the cached value for key if it is present and fresh. A stale
// entry is removed on the way out and reported as a miss. A hit moves the
// entry to the front of the recency list.
func (s *Store) Get(key string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	el, ok := s.items[key]
	if !ok {
		s.misses++
		s.metrics.Miss(s.name)
		return nil, false
	}

	ent := el.Value.(*entry)
	if time.Now().After(ent.expiresAt) {
		s.removeElement(el)
		s.misses++
		s.metrics.Miss(s.name)
		return nil, false
	}

	s.lru.MoveToFront(el)
	s.hits++
	s.metrics.Hit(s.name)
	return ent.value, true
}

// Set inserts or overwrites an entry using the store's default TTL.
func (s *Store) Set(key string, value any) {
	s.SetWithTTL(key, value, 0)
}

// SetWithTTL inserts or overwrites an entry. A non-positive ttl falls back
// to the store's default. If the insertion would grow the store past
// maxSize, the least recently used entry is evicted first. Set never fails.
func (s *Store) SetWithTTL(key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		ttl = s.defaultTTL
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if el, ok := s.items[key]; ok {
		ent := el.Value.(*entry)
		ent.value = value
		ent.createdAt = now
		ent.expiresAt = now.Add(ttl)
		s.lru.MoveToFront(el)
		return
	}

	if s.lru.Len() >= s.maxSize {
		if back := s.lru.Back(); back != nil {
			s.removeElement(back)
			s.evicted++
			s.metrics.Eviction(s.name)
		}
	}

	el := s.lru.PushFront(&entry{
		key:       key,
		value:     value,
		createdAt: now,
		expiresAt: now.Add(ttl),
	})
	s.items[key] = el
}

// Invalidate removes every entry whose function-name portion (the text
// before the first ':') matches one of the patterns, either exactly or as
// a prefix. Matching against the function name rather than the full key
// lets one pattern purge all parameterized variants of a read function.
// It returns the number of entries removed.
func (s *Store) Invalidate(patterns []string) int {
	if len(patterns) == 0 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key, el := range s.items {
		if matchesAny(key, patterns) {
			s.removeElement(el)
			removed++
		}
	}
	if removed > 0 {
		s.metrics.Invalidation(s.name, removed)
	}
	return removed
}

// Clear removes all entries unconditionally.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = make(map[string]*list.Element)
	s.lru.Init()
}

// Len returns the number of physically present entries, including any that
// are expired but not yet purged.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lru.Len()
}

// EntryStats describes a single cached entry in a Stats snapshot.
type EntryStats struct {
	Key       string `json:"key"`
	IsExpired bool   `json:"is_expired"`
	AgeMs     int64  `json:"age_ms"`
}

// Stats is a point-in-time diagnostic snapshot of a store.
type Stats struct {
	Name    string       `json:"name"`
	Size    int          `json:"size"`
	MaxSize int          `json:"max_size"`
	Hits    uint64       `json:"hits"`
	Misses  uint64       `json:"misses"`
	Evicted uint64       `json:"evicted"`
	Entries []EntryStats `json:"entries"`
}

// Stats returns a read-only snapshot. It does not refresh recency and does
// not purge expired entries, so it is safe to poll from a debug surface
// without disturbing cache behavior. Entries are listed from most to least
// recently used.
func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	st := Stats{
		Name:    s.name,
		Size:    s.lru.Len(),
		MaxSize: s.maxSize,
		Hits:    s.hits,
		Misses:  s.misses,
		Evicted: s.evicted,
		Entries: make([]EntryStats, 0, s.lru.Len()),
	}
	for el := s.lru.Front(); el != nil; el = el.Next() {
		ent := el.Value.(*entry)
		st.Entries = append(st.Entries, EntryStats{
			Key:       ent.key,
			IsExpired: now.After(ent.expiresAt),
			AgeMs:     now.Sub(ent.createdAt).Milliseconds(),
		})
	}
	return st
}

// removeElement unlinks an entry from both the map and the recency list.
// Caller must hold the mutex.
func (s *Store) removeElement(el *list.Element) {
	ent := el.Value.(*entry)
	s.lru.Remove(el)
	delete(s.items, ent.key)
}

// matchesAny reports whether the function-name portion of key matches any
// pattern exactly or by prefix.
func matchesAny(key string, patterns []string) bool {
	fn := key
	if i := strings.IndexByte(key, ':'); i >= 0 {
		fn = key[:i]
	}
	for _, p := range patterns {
		if fn == p || strings.HasPrefix(fn, p) {
			return true
		}
	}
	return false
}
