package cache

import (
	"context"
	"encoding/json" // JSON encoding/decoding
	"sync"
	"time"
)

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// Memory is an in-process Store guarded by a mutex. Values are kept as
// JSON so Get behaves identically to the Redis backend.
type Memory struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

// NewMemory returns an empty in-process cache
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]memoryEntry)}
}

// Get retrieves a value from the map and unmarshals it into dest
func (m *Memory) Get(_ context.Context, key string, dest any) (bool, error) {
	m.mu.Lock()
	entry, ok := m.entries[key]
	if ok && time.Now().After(entry.expiresAt) {
		delete(m.entries, key) // Expired, drop it
		ok = false
	}
	m.mu.Unlock()
	if !ok {
		return false, nil // Key does not exist
	}
	return true, json.Unmarshal(entry.data, dest) // Unmarshal JSON into dest
}

// Set stores a value in the map with a specified TTL
func (m *Memory) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	b, err := json.Marshal(value) // Marshal value to JSON
	if err != nil {
		return err // Return error if marshaling fails
	}
	m.mu.Lock()
	m.entries[key] = memoryEntry{data: b, expiresAt: time.Now().Add(ttl)}
	m.mu.Unlock()
	return nil
}

// Delete removes keys from the map
func (m *Memory) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	for _, key := range keys {
		delete(m.entries, key)
	}
	m.mu.Unlock()
	return nil
}
