package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"github.com/pixil98/go-realm/internal/game"
)

// Postgres owns the connection pool and hands out per-entity store views.
// Schema management lives outside this service; the stores assume the
// characters, monsters, accounts, and servers tables exist.
type Postgres struct {
	db *sql.DB
}

// NewPostgres opens a connection pool against the given DSN and pings it.
func NewPostgres(dsn string) (*Postgres, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetConnMaxIdleTime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &Postgres{db: db}, nil
}

// Close releases the underlying connection pool.
func (p *Postgres) Close() error {
	return p.db.Close()
}

// Characters returns the character store view.
func (p *Postgres) Characters() CharacterStore { return &pgCharacters{p.db} }

// Monsters returns the monster store view.
func (p *Postgres) Monsters() MonsterStore { return &pgMonsters{p.db} }

// Accounts returns the credential verifier view.
func (p *Postgres) Accounts() AccountVerifier { return &pgAccounts{p.db} }

// Servers returns the server status store view.
func (p *Postgres) Servers() ServerStatusStore { return &pgServers{p.db} }

type pgCharacters struct {
	db *sql.DB
}

const characterColumns = `id, account_id, name, class, race, level, exp,
	str, dex, vit, intl, luk, hp, max_hp, mp, max_mp, pos_x, pos_y, pos_z, map`

func (s *pgCharacters) Get(ctx context.Context, id int64) (*game.Character, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+characterColumns+` FROM characters WHERE id = $1`, id)

	var c game.Character
	err := row.Scan(&c.ID, &c.AccountID, &c.Name, &c.Class, &c.Race, &c.Level,
		&c.Exp, &c.Str, &c.Dex, &c.Vit, &c.Int, &c.Luk,
		&c.HP, &c.MaxHP, &c.MP, &c.MaxMP, &c.PosX, &c.PosY, &c.PosZ, &c.Map)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading character %d: %w", id, err)
	}
	return &c, nil
}

func (s *pgCharacters) UpdatePosition(ctx context.Context, id int64, x, y, z float64, mapID string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE characters SET pos_x = $1, pos_y = $2, pos_z = $3, map = $4 WHERE id = $5`,
		x, y, z, mapID, id)
	if err != nil {
		return fmt.Errorf("updating position for character %d: %w", id, err)
	}
	return nil
}

func (s *pgCharacters) UpdateVitals(ctx context.Context, id int64, hp, mp int) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE characters SET hp = $1, mp = $2 WHERE id = $3`, hp, mp, id)
	if err != nil {
		return fmt.Errorf("updating vitals for character %d: %w", id, err)
	}
	return nil
}

func (s *pgCharacters) AddExperience(ctx context.Context, id int64, exp int) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE characters SET exp = exp + $1 WHERE id = $2`, exp, id)
	if err != nil {
		return fmt.Errorf("granting experience to character %d: %w", id, err)
	}
	return nil
}

func (s *pgCharacters) LevelUp(ctx context.Context, id int64, newLevel int, inc game.StatIncrease) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE characters SET
			level = $1,
			str = str + $2, dex = dex + $3, vit = vit + $4,
			intl = intl + $5, luk = luk + $6,
			max_hp = max_hp + $7, max_mp = max_mp + $8,
			hp = max_hp + $7, mp = max_mp + $8
		WHERE id = $9`,
		newLevel, inc.Str, inc.Dex, inc.Vit, inc.Int, inc.Luk, inc.HP, inc.MP, id)
	if err != nil {
		return fmt.Errorf("leveling up character %d: %w", id, err)
	}
	return nil
}

func (s *pgCharacters) UpdateLastPlayed(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE characters SET last_played = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("updating last played for character %d: %w", id, err)
	}
	return nil
}

type pgMonsters struct {
	db *sql.DB
}

const monsterColumns = `id, name, level, hp, max_hp, atk, def, exp, map, pos_x, pos_y, pos_z`

func (s *pgMonsters) Get(ctx context.Context, id int64) (*game.Monster, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+monsterColumns+` FROM monsters WHERE id = $1`, id)

	m, err := scanMonster(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading monster %d: %w", id, err)
	}
	return m, nil
}

func (s *pgMonsters) GetByMap(ctx context.Context, mapID string) ([]*game.Monster, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+monsterColumns+` FROM monsters WHERE map = $1`, mapID)
	if err != nil {
		return nil, fmt.Errorf("loading monsters for map %s: %w", mapID, err)
	}
	defer rows.Close()

	var monsters []*game.Monster
	for rows.Next() {
		m, err := scanMonster(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning monster: %w", err)
		}
		monsters = append(monsters, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating monsters: %w", err)
	}
	return monsters, nil
}

func (s *pgMonsters) UpdateHP(ctx context.Context, id int64, hp int) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE monsters SET hp = $1 WHERE id = $2`, hp, id)
	if err != nil {
		return fmt.Errorf("updating hp for monster %d: %w", id, err)
	}
	return nil
}

func (s *pgMonsters) Reset(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE monsters SET hp = max_hp WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("resetting monster %d: %w", id, err)
	}
	return nil
}

func scanMonster(scan func(...any) error) (*game.Monster, error) {
	var m game.Monster
	err := scan(&m.ID, &m.Name, &m.Level, &m.HP, &m.MaxHP, &m.Atk, &m.Def,
		&m.Exp, &m.Map, &m.PosX, &m.PosY, &m.PosZ)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

type pgAccounts struct {
	db *sql.DB
}

func (s *pgAccounts) Verify(ctx context.Context, username, password string) (*Account, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash FROM accounts WHERE username = $1`, username)

	var (
		acct Account
		hash []byte
	)
	err := row.Scan(&acct.ID, &acct.Username, &hash)
	if err == sql.ErrNoRows {
		return nil, ErrBadCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("loading account %q: %w", username, err)
	}

	if bcrypt.CompareHashAndPassword(hash, []byte(password)) != nil {
		return nil, ErrBadCredentials
	}
	return &acct, nil
}

type pgServers struct {
	db *sql.DB
}

func (s *pgServers) UpdateStatus(ctx context.Context, serverID int64, status string, playerCount int) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE servers SET status = $1, player_count = $2, updated_at = NOW() WHERE id = $3`,
		status, playerCount, serverID)
	if err != nil {
		return fmt.Errorf("updating status for server %d: %w", serverID, err)
	}
	return nil
}
