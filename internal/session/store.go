package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session tracks one Messenger user's conversation state.
type Session struct {
	ID         string
	UserID     string
	Context    map[string]any
	CreatedAt  time.Time
	LastSeenAt time.Time
}

// Store owns all live sessions. A reverse index from Messenger user id to
// session id keeps find-or-create a single keyed lookup under one lock
// acquisition, so at most one session ever exists per user even with
// webhook events handled on concurrent goroutines.
type Store struct {
	ttl time.Duration

	mu       sync.RWMutex
	sessions map[string]*Session
	byUser   map[string]string
}

// NewStore creates an empty store. ttl is the idle time after which a
// session is evicted by the janitor; ttl <= 0 disables eviction.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		ttl:      ttl,
		sessions: make(map[string]*Session),
		byUser:   make(map[string]string),
	}
}

// FindOrCreate returns the session id for the given user, allocating a new
// session with empty context on first contact. created reports whether a
// new session was made. The user's LastSeenAt is refreshed either way.
func (s *Store) FindOrCreate(userID string) (string, bool) {
	now := time.Now().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()

	if id, ok := s.byUser[userID]; ok {
		s.sessions[id].LastSeenAt = now
		return id, false
	}

	sess := &Session{
		ID:         uuid.NewString(),
		UserID:     userID,
		Context:    make(map[string]any),
		CreatedAt:  now,
		LastSeenAt: now,
	}
	s.sessions[sess.ID] = sess
	s.byUser[userID] = sess.ID

	return sess.ID, true
}

// Get retrieves a session by id.
func (s *Store) Get(id string) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	return sess, ok
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.sessions)
}

// Start runs the eviction janitor until ctx is done. No-op when the store
// was created without a TTL.
func (s *Store) Start(ctx context.Context) {
	if s.ttl <= 0 {
		return
	}

	interval := s.ttl / 10
	if interval < time.Second {
		interval = time.Second
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.evictExpired(time.Now().UTC())
			}
		}
	}()
}

// evictExpired drops sessions idle longer than the TTL and returns how many
// were removed.
func (s *Store) evictExpired(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for id, sess := range s.sessions {
		if now.Sub(sess.LastSeenAt) > s.ttl {
			delete(s.sessions, id)
			delete(s.byUser, sess.UserID)
			evicted++
		}
	}
	return evicted
}
