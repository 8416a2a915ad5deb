package core

// session.go keeps each browser session's raw upload in memory.
//
// The upload bytes are the only state that outlives a request. Entries
// expire after the TTL measured from their last access; Run sweeps them
// in the background until its context ends.

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrNoUpload is returned when a session has no stored upload.
var ErrNoUpload = errors.New("no upload for this session")

// DefaultSessionTTL applies when NewSessionStore gets a non-positive TTL.
const DefaultSessionTTL = time.Hour

type sessionEntry struct {
	upload     Upload
	lastAccess time.Time
}

// SessionStore maps session ids to uploads.
type SessionStore struct {
	mu      sync.RWMutex
	entries map[string]*sessionEntry
	ttl     time.Duration

	now func() time.Time
}

// NewSessionStore creates an empty store.
func NewSessionStore(ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionStore{
		entries: make(map[string]*sessionEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// NewSessionID returns a fresh random session id.
func NewSessionID() string {
	return uuid.NewString()
}

// ValidSessionID reports whether id has the shape NewSessionID produces.
func ValidSessionID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// Put stores u for the session, replacing any previous upload.
func (s *SessionStore) Put(id string, u Upload) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[id] = &sessionEntry{upload: u, lastAccess: s.now()}
}

// Get returns the session's upload and refreshes its expiry.
func (s *SessionStore) Get(id string) (Upload, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		return Upload{}, ErrNoUpload
	}
	now := s.now()
	if now.Sub(e.lastAccess) > s.ttl {
		delete(s.entries, id)
		return Upload{}, ErrNoUpload
	}
	e.lastAccess = now
	return e.upload, nil
}

// Delete forgets the session's upload.
func (s *SessionStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
}

// Len returns the number of stored uploads, expired or not.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Sweep removes expired entries and returns how many were removed.
func (s *SessionStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, e := range s.entries {
		if now.Sub(e.lastAccess) > s.ttl {
			delete(s.entries, id)
			removed++
		}
	}
	return removed
}

// Run sweeps every interval until ctx is cancelled.
func (s *SessionStore) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = s.ttl / 4
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				slog.Debug("expired sessions removed", "count", n, "remaining", s.Len())
			}
		}
	}
}
