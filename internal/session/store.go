package session

import (
	"errors"
	"sync"
)

// ErrNotFound is returned by Store.Get when no value exists for the key.
var ErrNotFound = errors.New("session: key not found")

// Store is the device-local key-value storage the session rides on. The app
// only ever stores short opaque strings (token, role); no encryption and no
// expiry tracking happen at this layer.
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Remove(keys ...string) error
}

// MemoryStore is an in-memory Store. Used by tests and as a fallback when no
// durable path is configured.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (s *MemoryStore) Get(key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

func (s *MemoryStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *MemoryStore) Remove(keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range keys {
		delete(s.values, key)
	}
	return nil
}
