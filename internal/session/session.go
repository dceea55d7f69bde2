package session

import (
	"sync"

	"github.com/pixil98/go-realm/internal/game"
)

// TargetType discriminates what kind of entity a combat target refers to.
type TargetType string

const (
	TargetMonster TargetType = "monster"
	TargetPlayer  TargetType = "player"
)

// Valid reports whether the value is a known target type.
func (t TargetType) Valid() bool {
	return t == TargetMonster || t == TargetPlayer
}

// Target is the currently selected attackable entity. It is transient: never
// persisted, cleared on death or deselection.
type Target struct {
	ID   int64
	Type TargetType
}

// Session is the per-connection mutable record. It is created on connect and
// accumulates identity and character state as the connection climbs the
// presence tiers. All snapshot mutation goes through its accessors.
type Session struct {
	ConnID string

	mu        sync.Mutex
	accountID int64
	username  string
	character *game.Character
	target    *Target
}

// New creates an empty session for a connection.
func New(connID string) *Session {
	return &Session{ConnID: connID}
}

// SetAccount records the verified identity for this connection.
func (s *Session) SetAccount(accountID int64, username string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accountID = accountID
	s.username = username
}

// Account returns the verified identity, if any.
func (s *Session) Account() (int64, string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accountID, s.username, s.accountID != 0
}

// SetCharacter installs the live character snapshot on world admission. The
// session keeps its own copy; callers must not retain the pointer.
func (s *Session) SetCharacter(c *game.Character) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *c
	s.character = &copied
}

// ClearCharacter removes the snapshot and any selected target on world leave.
func (s *Session) ClearCharacter() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.character = nil
	s.target = nil
}

// Character returns a copy of the snapshot, or false when the connection has
// no character in the world.
func (s *Session) Character() (game.Character, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.character == nil {
		return game.Character{}, false
	}
	return *s.character, true
}

// CharacterID returns the admitted character's id, or zero.
func (s *Session) CharacterID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.character == nil {
		return 0
	}
	return s.character.ID
}

// SetPosition updates the snapshot's position. No-op without a character.
func (s *Session) SetPosition(x, y, z float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.character == nil {
		return
	}
	s.character.PosX, s.character.PosY, s.character.PosZ = x, y, z
}

// SetMap updates the snapshot's current map. No-op without a character.
func (s *Session) SetMap(mapID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.character == nil {
		return
	}
	s.character.Map = mapID
}

// SetVitals updates the snapshot's HP/MP. No-op without a character.
func (s *Session) SetVitals(hp, mp int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.character == nil {
		return
	}
	s.character.HP, s.character.MP = hp, mp
}

// SetTarget records the selected combat target.
func (s *Session) SetTarget(id int64, t TargetType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.target = &Target{ID: id, Type: t}
}

// ClearTarget drops the selected combat target.
func (s *Session) ClearTarget() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.target = nil
}

// Target returns the selected combat target, if any.
func (s *Session) Target() (Target, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.target == nil {
		return Target{}, false
	}
	return *s.target, true
}
