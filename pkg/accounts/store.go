package accounts

import (
	"context"
	"sync"
)

// Store persists local users. Implementations must enforce username uniqueness.
type Store interface {
	// FindByUsername returns ErrNotFound when no user matches.
	FindByUsername(ctx context.Context, username string) (*User, error)
	// Create returns ErrDuplicateUser when the username is taken.
	Create(ctx context.Context, u *User) error
}

// MemoryStore is an in-process Store for tests and local development.
type MemoryStore struct {
	mu    sync.RWMutex
	users map[string]User
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: make(map[string]User)}
}

func (s *MemoryStore) FindByUsername(_ context.Context, username string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[username]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (s *MemoryStore) Create(_ context.Context, u *User) error {
	if err := u.validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[u.Username]; ok {
		return ErrDuplicateUser
	}
	s.users[u.Username] = *u
	return nil
}

// Len returns the number of stored users.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}
