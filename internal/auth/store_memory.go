package auth

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryTokenStore is an in-memory TokenStore useful for tests.
// It is not intended for production use.
type MemoryTokenStore struct {
	mu     sync.Mutex
	tokens map[string]memoryEntry
	clock  func() time.Time
}

type memoryEntry struct {
	userID    uuid.UUID
	expiresAt time.Time
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{
		tokens: make(map[string]memoryEntry),
		clock:  time.Now,
	}
}

// SetClock overrides the expiry clock for deterministic TTL tests.
func (s *MemoryTokenStore) SetClock(clock func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clock = clock
}

func (s *MemoryTokenStore) Put(ctx context.Context, token string, userID uuid.UUID, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = memoryEntry{userID: userID, expiresAt: s.clock().Add(ttl)}
	return nil
}

func (s *MemoryTokenStore) Get(ctx context.Context, token string) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lookupLocked(token, false)
}

func (s *MemoryTokenStore) Take(ctx context.Context, token string) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lookupLocked(token, true)
}

func (s *MemoryTokenStore) Delete(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, token)
	return nil
}

func (s *MemoryTokenStore) lookupLocked(token string, remove bool) (uuid.UUID, error) {
	e, ok := s.tokens[token]
	if !ok {
		return uuid.Nil, ErrUnauthorized
	}
	if !s.clock().Before(e.expiresAt) {
		// Expired entries behave exactly like absent ones.
		delete(s.tokens, token)
		return uuid.Nil, ErrUnauthorized
	}
	if remove {
		delete(s.tokens, token)
	}
	return e.userID, nil
}
