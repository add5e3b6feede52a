package cart

import (
	"sync"
	"time"
)

const (
	// SessionTTL is how long an idle cart survives before it is dropped.
	SessionTTL = 2 * time.Hour

	// CleanupInterval is how often the background cleanup runs.
	CleanupInterval = 5 * time.Minute
)

type sessionEntry struct {
	store    *Store
	lastSeen time.Time
}

// Sessions owns one cart Store per client session. A store is created on first
// access and dropped after SessionTTL of inactivity. Carts are never persisted.
type Sessions struct {
	mu    sync.Mutex
	carts map[string]*sessionEntry
	ttl   time.Duration

	stopCleanup chan struct{}
	wg          sync.WaitGroup
}

func NewSessions() *Sessions {
	s := &Sessions{
		carts:       make(map[string]*sessionEntry),
		ttl:         SessionTTL,
		stopCleanup: make(chan struct{}),
	}

	s.wg.Add(1)
	go s.cleanupLoop()

	return s
}

func (s *Sessions) cleanupLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.expireIdle()
		case <-s.stopCleanup:
			return
		}
	}
}

func (s *Sessions) expireIdle() {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-s.ttl)
	for id, entry := range s.carts {
		if entry.lastSeen.Before(cutoff) {
			delete(s.carts, id)
		}
	}
}

// Get returns the cart for the session, creating it on first use.
func (s *Sessions) Get(sessionID string) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.carts[sessionID]
	if !ok {
		entry = &sessionEntry{store: NewStore()}
		s.carts[sessionID] = entry
	}
	entry.lastSeen = time.Now()
	return entry.store
}

// Drop discards the session's cart. Dropping an unknown session is a no-op.
func (s *Sessions) Drop(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
}

// Close stops the background cleanup and waits for it to finish.
func (s *Sessions) Close() error {
	close(s.stopCleanup)
	s.wg.Wait()
	return nil
}
