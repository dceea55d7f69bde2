package storage

import (
	"context"
	"errors"

	"github.com/pixil98/go-realm/internal/game"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrBadCredentials is returned when account verification fails. It is
// deliberately the same for unknown accounts and wrong passwords.
var ErrBadCredentials = errors.New("invalid username or password")

// CharacterStore provides read-modify-write access to persistent characters.
// Every method is a single statement; callers get per-call atomicity and
// nothing more.
type CharacterStore interface {
	Get(ctx context.Context, id int64) (*game.Character, error)
	UpdatePosition(ctx context.Context, id int64, x, y, z float64, mapID string) error
	UpdateVitals(ctx context.Context, id int64, hp, mp int) error
	AddExperience(ctx context.Context, id int64, exp int) error
	LevelUp(ctx context.Context, id int64, newLevel int, inc game.StatIncrease) error
	UpdateLastPlayed(ctx context.Context, id int64) error
}

// MonsterStore provides access to persistent monster instances.
type MonsterStore interface {
	Get(ctx context.Context, id int64) (*game.Monster, error)
	GetByMap(ctx context.Context, mapID string) ([]*game.Monster, error)
	UpdateHP(ctx context.Context, id int64, hp int) error
	Reset(ctx context.Context, id int64) error
}

// Account is the authenticated identity attached to a connection.
type Account struct {
	ID       int64
	Username string
}

// AccountVerifier checks login credentials against stored accounts.
type AccountVerifier interface {
	Verify(ctx context.Context, username, password string) (*Account, error)
}

// ServerStatusStore records this realm's liveness and population.
type ServerStatusStore interface {
	UpdateStatus(ctx context.Context, serverID int64, status string, playerCount int) error
}
