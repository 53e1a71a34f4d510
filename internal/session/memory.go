package session

import (
	"context"
	"sync"
	"time"

	"inkwell/internal/models"
)

type memoryEntry struct {
	principal models.Principal
	expiresAt time.Time
}

// MemoryStore is an in-process session store. It backs single-node
// deployments without Redis and all tests; expired entries are reaped
// lazily on access.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryStore creates an in-memory session store.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Create opens a new session for the principal and returns its token.
func (s *MemoryStore) Create(_ context.Context, principal models.Principal) (string, error) {
	token := newToken()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[token] = memoryEntry{
		principal: principal,
		expiresAt: s.now().Add(s.ttl),
	}
	return token, nil
}

// Get resolves a token to its Principal.
func (s *MemoryStore) Get(_ context.Context, token string) (*models.Principal, error) {
	s.mu.RLock()
	entry, ok := s.entries[token]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	if s.now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.entries, token)
		s.mu.Unlock()
		return nil, ErrNotFound
	}
	principal := entry.principal
	return &principal, nil
}

// Refresh replaces the stored Principal, keeping the existing expiry.
func (s *MemoryStore) Refresh(_ context.Context, token string, principal models.Principal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[token]
	if !ok || s.now().After(entry.expiresAt) {
		delete(s.entries, token)
		return ErrNotFound
	}
	entry.principal = principal
	s.entries[token] = entry
	return nil
}

// Destroy invalidates the token.
func (s *MemoryStore) Destroy(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, token)
	return nil
}
