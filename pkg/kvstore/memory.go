package kvstore

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/looklush/storefront/pkg/metrics"
)

// Memory is an in-process Store + Ephemeral implementation. It is the
// default for tests and for running without any external backing service.
type Memory struct {
	mu      sync.RWMutex
	values  map[string]string
	expires map[string]time.Time
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		values:  make(map[string]string),
		expires: make(map[string]time.Time),
	}
}

func (m *Memory) Get(key string, dest interface{}) bool {
	m.mu.RLock()
	raw, ok := m.values[key]
	exp, hasExp := m.expires[key]
	m.mu.RUnlock()

	if !ok {
		metrics.StoreMisses.WithLabelValues("memory").Inc()
		return false
	}
	if hasExp && time.Now().After(exp) {
		_ = m.Delete(key)
		metrics.StoreMisses.WithLabelValues("memory").Inc()
		return false
	}

	metrics.StoreHits.WithLabelValues("memory").Inc()
	return json.Unmarshal([]byte(raw), dest) == nil
}

func (m *Memory) Put(key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.values[key] = string(data)
	delete(m.expires, key)
	m.mu.Unlock()
	return nil
}

func (m *Memory) Delete(key string) error {
	m.mu.Lock()
	delete(m.values, key)
	delete(m.expires, key)
	m.mu.Unlock()
	return nil
}

func (m *Memory) PutTTL(key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.values[key] = string(data)
	m.expires[key] = time.Now().Add(ttl)
	m.mu.Unlock()
	return nil
}

func (m *Memory) Take(key string, dest interface{}) bool {
	m.mu.Lock()
	raw, ok := m.values[key]
	exp, hasExp := m.expires[key]
	delete(m.values, key)
	delete(m.expires, key)
	m.mu.Unlock()

	if !ok {
		return false
	}
	if hasExp && time.Now().After(exp) {
		return false
	}

	return json.Unmarshal([]byte(raw), dest) == nil
}

// Sweep drops expired entries. Expiry is otherwise checked lazily on read,
// so a periodic sweep keeps abandoned TTL keys from accumulating.
func (m *Memory) Sweep() int {
	now := time.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	swept := 0
	for key, exp := range m.expires {
		if now.After(exp) {
			delete(m.values, key)
			delete(m.expires, key)
			swept++
		}
	}
	return swept
}

var (
	_ Store     = (*Memory)(nil)
	_ Ephemeral = (*Memory)(nil)
)
