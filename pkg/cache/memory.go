package cache

import (
	"container/list"
	"context"
	"sync"
	"time"
)

// MemoryOption configures the in-memory cache.
type MemoryOption func(*memorySettings)

type memorySettings struct {
	defaultTTL      time.Duration
	cleanupInterval time.Duration
	capacity        int
}

// WithDefaultTTL sets the TTL applied when Set is called with zero.
// Default is one hour.
func WithDefaultTTL(d time.Duration) MemoryOption {
	return func(s *memorySettings) {
		s.defaultTTL = d
	}
}

// WithCleanupInterval sets how often the janitor removes expired entries.
// Default is one minute.
func WithCleanupInterval(d time.Duration) MemoryOption {
	return func(s *memorySettings) {
		s.cleanupInterval = d
	}
}

// WithCapacity bounds the entry count. At capacity the least recently
// used entry is evicted. Zero means unbounded.
func WithCapacity(n int) MemoryOption {
	return func(s *memorySettings) {
		s.capacity = n
	}
}

type memoryEntry[V any] struct {
	expiresAt time.Time // zero means never expires
	value     V
	key       string
}

func (e *memoryEntry[V]) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// Memory is an in-memory cache with TTL expiration and LRU eviction.
// Lookups use a map, eviction order a doubly linked list with the most
// recently used entry at the front.
type Memory[V any] struct {
	items    map[string]*list.Element
	order    *list.List
	settings memorySettings
	done     chan struct{}
	mu       sync.Mutex
	closed   bool
}

// NewMemory creates an in-memory cache and starts its janitor goroutine.
// Call Close to stop the janitor.
func NewMemory[V any](opts ...MemoryOption) *Memory[V] {
	s := memorySettings{
		defaultTTL:      time.Hour,
		cleanupInterval: time.Minute,
	}
	for _, opt := range opts {
		opt(&s)
	}

	m := &Memory[V]{
		items:    make(map[string]*list.Element),
		order:    list.New(),
		settings: s,
		done:     make(chan struct{}),
	}

	if s.cleanupInterval > 0 {
		go m.janitor()
	}
	return m
}

// Get returns the value for key, marking it as recently used.
func (m *Memory[V]) Get(_ context.Context, key string) (V, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var zero V
	elem, ok := m.items[key]
	if !ok {
		return zero, ErrNotFound
	}

	e := elem.Value.(*memoryEntry[V])
	if e.expired(time.Now()) {
		m.remove(elem)
		return zero, ErrNotFound
	}

	m.order.MoveToFront(elem)
	return e.value, nil
}

// Set stores a value, evicting the LRU entry when at capacity.
func (m *Memory[V]) Set(_ context.Context, key string, value V, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	if ttl == 0 {
		ttl = m.settings.defaultTTL
	}
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl)
	}

	if elem, ok := m.items[key]; ok {
		e := elem.Value.(*memoryEntry[V])
		e.value = value
		e.expiresAt = expiresAt
		m.order.MoveToFront(elem)
		return nil
	}

	if m.settings.capacity > 0 && len(m.items) >= m.settings.capacity {
		if oldest := m.order.Back(); oldest != nil {
			m.remove(oldest)
		}
	}

	e := &memoryEntry[V]{key: key, value: value, expiresAt: expiresAt}
	m.items[key] = m.order.PushFront(e)
	return nil
}

// Delete removes a key.
func (m *Memory[V]) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	if elem, ok := m.items[key]; ok {
		m.remove(elem)
	}
	return nil
}

// Has reports whether key exists and has not expired.
func (m *Memory[V]) Has(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	elem, ok := m.items[key]
	if !ok {
		return false, nil
	}
	if elem.Value.(*memoryEntry[V]).expired(time.Now()) {
		m.remove(elem)
		return false, nil
	}
	return true, nil
}

// Clear drops all entries.
func (m *Memory[V]) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	m.items = make(map[string]*list.Element)
	m.order.Init()
	return nil
}

// Close stops the janitor. Idempotent.
func (m *Memory[V]) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.closed {
		m.closed = true
		close(m.done)
	}
	return nil
}

func (m *Memory[V]) janitor() {
	ticker := time.NewTicker(m.settings.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			m.sweep()
		}
	}
}

// sweep removes expired entries, walking from the LRU end.
func (m *Memory[V]) sweep() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	for elem := m.order.Back(); elem != nil; {
		prev := elem.Prev()
		if elem.Value.(*memoryEntry[V]).expired(now) {
			m.remove(elem)
		}
		elem = prev
	}
}

// remove deletes an element. Caller holds the mutex.
func (m *Memory[V]) remove(elem *list.Element) {
	m.order.Remove(elem)
	delete(m.items, elem.Value.(*memoryEntry[V]).key)
}

var _ Cache[any] = (*Memory[any])(nil)
