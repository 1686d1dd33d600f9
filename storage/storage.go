// Package storage defines the key/value contract used for persisted and
// session-scoped settings, with an in-memory implementation and browser
// bindings to localStorage and sessionStorage.
package storage

import (
	"errors"
	"sync"
)

// ErrUnavailable is returned by stores whose backing storage cannot be used
// (disabled, privacy mode, quota).
var ErrUnavailable = errors.New("storage: unavailable")

// Store is a string key/value store. Implementations may fail on every call;
// callers are expected to degrade to a default value.
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// Memory is an in-memory Store, safe for concurrent use.
type Memory struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

func (m *Memory) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

// Clear drops every key, like the end of a browser session.
func (m *Memory) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.data)
}

// Unavailable is a Store that fails every operation with ErrUnavailable.
type Unavailable struct{}

func (Unavailable) Get(string) (string, bool, error) { return "", false, ErrUnavailable }
func (Unavailable) Set(string, string) error         { return ErrUnavailable }
