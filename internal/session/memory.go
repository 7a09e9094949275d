package session

import (
	"context" // Matches the Store interface
	"sync"    // Handlers run concurrently
	"time"    // Expiry

	"deluxe_membership/internal/domain" // Importing domain models
)

type entry struct {
	user    domain.User // User the token was issued for
	expires time.Time   // Zero means no expiry
}

func (e entry) expired(now time.Time) bool {
	return !e.expires.IsZero() && !now.Before(e.expires)
}

// MemoryStore is a process-local Store. Entries expire after ttl; zero ttl keeps them forever.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *MemoryStore) Put(_ context.Context, token string, user domain.User) error {
	now := s.now()
	e := entry{user: user}
	if s.ttl > 0 {
		e.expires = now.Add(s.ttl)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// Tokens that are never presented again would otherwise stay forever
	for t, old := range s.entries {
		if old.expired(now) {
			delete(s.entries, t)
		}
	}
	s.entries[token] = e
	return nil
}

func (s *MemoryStore) Get(_ context.Context, token string) (domain.User, error) {
	now := s.now()
	s.mu.RLock()
	e, ok := s.entries[token]
	s.mu.RUnlock()

	if !ok {
		return domain.User{}, ErrNotFound
	}
	if e.expired(now) {
		s.mu.Lock()
		// A Put may have refreshed the token since the read lock was released
		if cur, ok := s.entries[token]; ok && cur.expired(now) {
			delete(s.entries, token)
		}
		s.mu.Unlock()
		return domain.User{}, ErrNotFound
	}
	return e.user, nil
}

func (s *MemoryStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	delete(s.entries, token) // No-op for unknown tokens
	s.mu.Unlock()
	return nil
}

// Len returns the number of stored entries, expired ones included
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
