package session

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/pratikkkbhere/DataPilot/domain/core"
)

// Store is the in-memory registry of live workbenches. Access to each
// workbench is serialized through With, so pipeline stages never run
// concurrently against the same dataset.
type Store struct {
	mu       sync.RWMutex
	sessions map[core.SessionID]*entry
}

type entry struct {
	mu         sync.Mutex
	workbench  *Workbench
	lastAccess time.Time
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{sessions: make(map[core.SessionID]*entry)}
}

// Put registers a workbench under its own ID.
func (s *Store) Put(w *Workbench) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[w.ID] = &entry{workbench: w, lastAccess: time.Now()}
}

// With runs fn with exclusive access to the identified workbench. Returns
// ErrSessionGone when the session does not exist or has been swept.
func (s *Store) With(id core.SessionID, fn func(*Workbench) error) error {
	s.mu.RLock()
	e, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return core.ErrSessionGone
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.lastAccess = time.Now()
	return fn(e.workbench)
}

// Delete removes a session and releases its resources.
func (s *Store) Delete(id core.SessionID) {
	s.mu.Lock()
	e, ok := s.sessions[id]
	if ok {
		delete(s.sessions, id)
	}
	s.mu.Unlock()

	if ok {
		e.mu.Lock()
		e.workbench.Close()
		e.mu.Unlock()
	}
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// StartJanitor sweeps sessions idle longer than ttl until ctx is done.
func (s *Store) StartJanitor(ctx context.Context, interval, ttl time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.sweep(ttl)
			}
		}
	}()
}

func (s *Store) sweep(ttl time.Duration) {
	cutoff := time.Now().Add(-ttl)

	s.mu.Lock()
	var stale []*entry
	for id, e := range s.sessions {
		if e.lastAccess.Before(cutoff) {
			stale = append(stale, e)
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	for _, e := range stale {
		e.mu.Lock()
		log.Printf("[SessionStore] sweeping idle session %s", e.workbench.ID)
		e.workbench.Close()
		e.mu.Unlock()
	}
}
