package recorder

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store is the in-memory registry of recording sessions. It is caller-owned:
// construct one with NewStore and pass it to every component that records or
// generates, rather than relying on package-level state.
//
// All mutation of a session's action log goes through the store mutex, so
// concurrent appends to the same session are totally ordered and none are
// lost.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*Session),
	}
}

// Open creates a new session with a fresh uuid, an empty action log, and the
// current time as its start timestamp. The options are validated first;
// nothing is registered on validation failure.
func (s *Store) Open(opts SessionOptions) (*Session, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	session := &Session{
		ID:        uuid.New().String(),
		Actions:   make([]Action, 0),
		StartTime: time.Now(),
		Options:   opts,
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	return session.clone(), nil
}

// Append records one action against the session. The action is timestamped
// at append time and is immutable afterwards. Unknown ids return
// ErrSessionNotFound rather than failing hard. Appends after Close are
// tolerated; the session simply keeps growing until it is removed.
func (s *Store) Append(id, toolName string, params map[string]string, result string) (*Action, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, exists := s.sessions[id]
	if !exists {
		return nil, ErrSessionNotFound
	}

	action := Action{
		ToolName:  toolName,
		Params:    params,
		Timestamp: time.Now(),
		Result:    result,
	}
	session.Actions = append(session.Actions, action)

	return &action, nil
}

// Close stamps the session's end time. Closing is idempotent: the first
// close wins and later closes leave EndTime untouched. The session stays in
// the registry until Remove is called.
func (s *Store) Close(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, exists := s.sessions[id]
	if !exists {
		return nil, ErrSessionNotFound
	}

	if session.EndTime == nil {
		now := time.Now()
		session.EndTime = &now
	}

	return session.clone(), nil
}

// Get returns a copy of the session. The store keeps exclusive ownership of
// the live record; callers can hold the copy without racing appends.
func (s *Store) Get(id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, exists := s.sessions[id]
	if !exists {
		return nil, ErrSessionNotFound
	}

	return session.clone(), nil
}

// List returns copies of all registered sessions, open and closed.
func (s *Store) List() []*Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Session, 0, len(s.sessions))
	for _, session := range s.sessions {
		out = append(out, session.clone())
	}
	return out
}

// Remove deletes the session from the registry. Removing an unknown id
// returns ErrSessionNotFound.
func (s *Store) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[id]; !exists {
		return ErrSessionNotFound
	}
	delete(s.sessions, id)
	return nil
}

// Register re-introduces a session into the registry, replacing any stale
// entry with the same id. Persistence uses this to make loaded snapshots
// eligible for generation again.
func (s *Store) Register(session *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session.clone()
}

// Len reports the number of registered sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
