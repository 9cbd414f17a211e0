// Package session keeps the admin bearer token server-side. The browser
// only ever holds a signed session cookie; the backend token it maps to
// lives in a Store and is purged on logout or the first 401.
package session

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrNotFound is returned when a session ID has no live token behind it.
var ErrNotFound = errors.New("session not found")

// Store maps session IDs to backend bearer tokens with a TTL.
type Store interface {
	Set(ctx context.Context, id, token string, ttl time.Duration) error
	Get(ctx context.Context, id string) (string, error)
	Delete(ctx context.Context, id string) error
}

// MemoryStore is the in-process Store used in development and tests.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	token     string
	expiresAt time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry)}
}

func (s *MemoryStore) Set(_ context.Context, id, token string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[id] = memoryEntry{token: token, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[id]
	if !ok {
		return "", ErrNotFound
	}
	if time.Now().After(entry.expiresAt) {
		delete(s.entries, id)
		return "", ErrNotFound
	}
	return entry.token, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
	return nil
}
