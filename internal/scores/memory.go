package scores

import "sync"

// MemoryKV is a KV kept in process memory. Tests and the
// --db "" mode use it.
type MemoryKV struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemoryKV returns an empty store.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string]string)}
}

// Get implements KV.
func (m *MemoryKV) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

// Set implements KV.
func (m *MemoryKV) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}
