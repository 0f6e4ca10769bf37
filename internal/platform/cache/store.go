package cache

import (
	"container/list"
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/riskibarqy/match-analyzer/internal/platform/resilience"
)

var errNilLoader = errors.New("cache: loader is required")

// Stats are cumulative counters since the store was created.
type Stats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

type item[V any] struct {
	key       string
	value     V
	expiresAt time.Time
}

// Store is an in-process LRU cache with an optional TTL. A zero ttl keeps
// entries until they are evicted; a zero capacity never evicts.
type Store[V any] struct {
	ttl      time.Duration
	capacity int
	now      func() time.Time

	mu    sync.Mutex
	items map[string]*list.Element
	lru   *list.List

	flight resilience.Group[V]

	hits, misses, evictions atomic.Uint64
}

func New[V any](ttl time.Duration, capacity int) *Store[V] {
	return &Store[V]{
		ttl:      ttl,
		capacity: max(capacity, 0),
		now:      time.Now,
		items:    make(map[string]*list.Element),
		lru:      list.New(),
	}
}

func (s *Store[V]) Get(key string) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero V
	el, ok := s.items[key]
	if !ok {
		s.misses.Add(1)
		return zero, false
	}
	it := el.Value.(*item[V])
	if s.ttl > 0 && !it.expiresAt.After(s.now()) {
		s.removeLocked(el)
		s.misses.Add(1)
		return zero, false
	}

	s.lru.MoveToFront(el)
	s.hits.Add(1)
	return it.value, true
}

func (s *Store[V]) Set(key string, value V) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var expiresAt time.Time
	if s.ttl > 0 {
		expiresAt = s.now().Add(s.ttl)
	}

	if el, ok := s.items[key]; ok {
		it := el.Value.(*item[V])
		it.value, it.expiresAt = value, expiresAt
		s.lru.MoveToFront(el)
		return
	}

	s.items[key] = s.lru.PushFront(&item[V]{key: key, value: value, expiresAt: expiresAt})
	for s.capacity > 0 && s.lru.Len() > s.capacity {
		s.removeLocked(s.lru.Back())
		s.evictions.Add(1)
	}
}

func (s *Store[V]) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if el, ok := s.items[key]; ok {
		s.removeLocked(el)
	}
}

// Len counts stored entries, expired ones included until they are touched.
func (s *Store[V]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lru.Len()
}

func (s *Store[V]) Stats() Stats {
	return Stats{
		Hits:      s.hits.Load(),
		Misses:    s.misses.Load(),
		Evictions: s.evictions.Load(),
	}
}

// GetOrLoad returns the cached value or runs loader once for all concurrent
// callers of the same key. Loader errors are returned and never stored.
func (s *Store[V]) GetOrLoad(ctx context.Context, key string, loader func(context.Context) (V, error)) (V, error) {
	if loader == nil {
		var zero V
		return zero, errNilLoader
	}
	if v, ok := s.Get(key); ok {
		return v, nil
	}

	v, _, err := s.flight.Do(key, func() (V, error) {
		if v, ok := s.Get(key); ok {
			return v, nil
		}
		loaded, err := loader(ctx)
		if err != nil {
			return loaded, err
		}
		s.Set(key, loaded)
		return loaded, nil
	})
	return v, err
}

func (s *Store[V]) removeLocked(el *list.Element) {
	it := s.lru.Remove(el).(*item[V])
	delete(s.items, it.key)
}
