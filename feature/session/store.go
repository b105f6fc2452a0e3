package session

import (
	"errors"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

var (
	// ErrNotFound is returned for unknown or expired sessions.
	ErrNotFound = errors.New("session not found")
	// ErrCapacity is returned when no more sessions can be created.
	ErrCapacity = errors.New("session capacity reached")
)

// Store keeps live sessions in memory until they expire.
// Expired sessions are invisible immediately but only purged once the store fills
// up to the cleanup threshold.
type Store struct {
	mu        sync.Mutex
	items     *cache.Cache
	limit     int
	cleanupAt int
}

// NewStore creates an empty store.
func NewStore(cfg Config) *Store {
	limit := cfg.MaxSessions
	if limit <= 0 {
		limit = 2000
	}
	return &Store{
		items:     cache.New(cache.NoExpiration, 0),
		limit:     limit,
		cleanupAt: cfg.CleanupAt(),
	}
}

// Create stores s until s.ExpiresAt.
func (st *Store) Create(s *Session) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	if st.items.ItemCount() >= st.cleanupAt {
		st.items.DeleteExpired()
	}
	if st.items.ItemCount() >= st.limit {
		return ErrCapacity
	}

	return st.items.Add(s.ID, s.clone(), time.Until(s.ExpiresAt))
}

// Get returns a copy of the session with id.
func (st *Store) Get(id string) (*Session, error) {
	v, ok := st.items.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	return v.(*Session).clone(), nil
}

// Update applies fn to the stored session and returns a copy of the result.
// Updates to one store are serialized; fn must not block.
func (st *Store) Update(id string, fn func(s *Session) error) (*Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	v, ok := st.items.Get(id)
	if !ok {
		return nil, ErrNotFound
	}

	s := v.(*Session).clone()
	if err := fn(s); err != nil {
		return nil, err
	}
	s.Version++
	s.UpdatedAt = time.Now().UTC()

	st.items.Set(id, s, time.Until(s.ExpiresAt))
	return s.clone(), nil
}

// Count returns the number of stored sessions, including expired ones not yet purged.
func (st *Store) Count() int {
	return st.items.ItemCount()
}

// Cleanup purges every expired session.
func (st *Store) Cleanup() {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.items.DeleteExpired()
}
