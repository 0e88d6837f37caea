package collections

import "sync"

// SyncMap is a generic thread-safe map.
type SyncMap[K comparable, V any] struct {
	mu   sync.RWMutex
	data map[K]V
}

// NewSyncMap creates a new SyncMap.
func NewSyncMap[K comparable, V any]() *SyncMap[K, V] {
	return &SyncMap[K, V]{
		data: make(map[K]V),
	}
}

// Get retrieves a value from the map.
func (m *SyncMap[K, V]) Get(key K) (V, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	val, ok := m.data[key]
	return val, ok
}

// Set stores a value in the map.
func (m *SyncMap[K, V]) Set(key K, value V) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
}

// Delete removes a key from the map and reports whether it was present.
func (m *SyncMap[K, V]) Delete(key K) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	delete(m.data, key)
	return ok
}

// Compute replaces the value at key with the result of fn while holding the
// write lock. fn receives the current value and whether it exists; if fn
// returns an error the map is left unchanged.
func (m *SyncMap[K, V]) Compute(key K, fn func(current V, exists bool) (V, error)) (V, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	current, ok := m.data[key]
	next, err := fn(current, ok)
	if err != nil {
		var zero V
		return zero, err
	}
	m.data[key] = next
	return next, nil
}

// Len returns the number of items in the map.
func (m *SyncMap[K, V]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

// Values returns a snapshot of all values in unspecified order.
func (m *SyncMap[K, V]) Values() []V {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]V, 0, len(m.data))
	for _, v := range m.data {
		out = append(out, v)
	}
	return out
}
