package checkout

import (
	"sync"
	"time"

	apperrors "github.com/jengamart/storefront/pkg/errors"
)

// SessionStore keeps checkout sessions in memory. Sessions are
// deliberately not durable: a restart abandons in-flight checkouts,
// which matches their 30-minute lifetime. One session per user at a
// time; starting a new checkout replaces any existing one.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session // keyed by user ID

	stop chan struct{}
	once sync.Once

	// nowFunc is overridable in tests.
	nowFunc func() time.Time
}

// NewSessionStore creates a store and starts a background sweep that
// drops expired sessions every cleanupInterval.
func NewSessionStore(cleanupInterval time.Duration) *SessionStore {
	s := &SessionStore{
		sessions: make(map[string]*Session),
		stop:     make(chan struct{}),
		nowFunc:  time.Now,
	}
	if cleanupInterval > 0 {
		go s.cleanupLoop(cleanupInterval)
	}
	return s
}

// Put stores or replaces the user's session.
func (s *SessionStore) Put(session *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.UserID] = session
}

// Get returns the user's session. Expired sessions are removed and
// reported as gone so the caller can distinguish "expired" from "never
// started".
func (s *SessionStore) Get(userID string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[userID]
	if !ok {
		return nil, apperrors.NotFound("checkout session", userID)
	}
	if s.nowFunc().UTC().After(session.ExpiresAt) {
		delete(s.sessions, userID)
		return nil, apperrors.Gone("checkout session has expired")
	}
	return session, nil
}

// Delete removes the user's session if present.
func (s *SessionStore) Delete(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}

// Len returns the number of live sessions, expired or not.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Close stops the background sweep.
func (s *SessionStore) Close() {
	s.once.Do(func() { close(s.stop) })
}

func (s *SessionStore) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.removeExpired()
		case <-s.stop:
			return
		}
	}
}

func (s *SessionStore) removeExpired() {
	now := s.nowFunc().UTC()
	s.mu.Lock()
	defer s.mu.Unlock()
	for userID, session := range s.sessions {
		if now.After(session.ExpiresAt) {
			delete(s.sessions, userID)
		}
	}
}
