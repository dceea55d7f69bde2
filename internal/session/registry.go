package session

import (
	"fmt"
	"sync"
)

// Registry tracks every live session by connection id and enforces the
// one-world-session-per-character rule: a second admission for an already
// admitted character is rejected, the first session keeps playing.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
	byChar   map[int64]string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		sessions: map[string]*Session{},
		byChar:   map[int64]string{},
	}
}

// Add registers a session for a freshly accepted connection.
func (r *Registry) Add(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ConnID] = s
}

// Get returns the session for a connection id, or nil.
func (r *Registry) Get(connID string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sessions[connID]
}

// AdmitCharacter claims a character for a connection. It fails when the
// character is already in the world on another live connection.
func (r *Registry) AdmitCharacter(connID string, characterID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if holder, ok := r.byChar[characterID]; ok && holder != connID {
		return fmt.Errorf("character %d is already in the world", characterID)
	}
	r.byChar[characterID] = connID
	return nil
}

// ReleaseCharacter gives up a connection's character claim, if it holds one.
func (r *Registry) ReleaseCharacter(connID string, characterID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.byChar[characterID] == connID {
		delete(r.byChar, characterID)
	}
}

// Remove drops a session and any character claim it holds. Safe to call for
// an unknown connection id.
func (r *Registry) Remove(connID string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[connID]
	if !ok {
		return nil
	}
	delete(r.sessions, connID)

	if charID := s.CharacterID(); charID != 0 && r.byChar[charID] == connID {
		delete(r.byChar, charID)
	}
	return s
}

// Count returns the number of live sessions.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
