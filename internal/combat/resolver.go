package combat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/pixil98/go-realm/internal/game"
	"github.com/pixil98/go-realm/internal/storage"
)

// ErrTargetDead is returned when the selected monster has no HP left. It is a
// precondition failure, not a server error.
var ErrTargetDead = errors.New("monster is already dead")

// Outcome is the terminal classification of one attack resolution.
type Outcome string

const (
	OutcomeMiss     Outcome = "miss"
	OutcomeHit      Outcome = "hit"
	OutcomeCritical Outcome = "critical"
	OutcomeKill     Outcome = "kill"
)

// Result is the outcome of a single resolved attack.
type Result struct {
	Outcome    Outcome
	Damage     int
	IsCritical bool
	MonsterHP  int

	// Kill side effects.
	ExpGained int
	LeveledUp bool
	NewLevel  int
}

// RespawnScheduler queues a killed monster for later respawn.
type RespawnScheduler interface {
	Schedule(monsterID int64, mapID string)
}

// roller is the source of uniform rolls in [0,1). *rand.Rand satisfies it;
// tests script it.
type roller interface {
	Float64() float64
}

// Resolver resolves attacks against persistent monster and character state.
// HP read-modify-write is serialized per monster id so simultaneous attacks
// never double-subtract from the same observed HP.
type Resolver struct {
	chars    storage.CharacterStore
	monsters storage.MonsterStore
	respawn  RespawnScheduler
	rng      roller

	locksMu sync.Mutex
	locks   map[int64]*sync.Mutex
}

// NewResolver creates a resolver with a time-seeded roll source.
func NewResolver(chars storage.CharacterStore, monsters storage.MonsterStore, respawn RespawnScheduler) *Resolver {
	return &Resolver{
		chars:    chars,
		monsters: monsters,
		respawn:  respawn,
		rng:      rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)),
		locks:    map[int64]*sync.Mutex{},
	}
}

func (r *Resolver) monsterLock(id int64) *sync.Mutex {
	r.locksMu.Lock()
	defer r.locksMu.Unlock()
	mu, ok := r.locks[id]
	if !ok {
		mu = &sync.Mutex{}
		r.locks[id] = mu
	}
	return mu
}

// AttackMonster resolves one attack by the given character against the given
// monster: validate the target is alive, roll to hit, roll for critical,
// compute damage, persist the new HP, and on a kill grant experience with at
// most one level up.
func (r *Resolver) AttackMonster(ctx context.Context, characterID, monsterID int64) (*Result, error) {
	mu := r.monsterLock(monsterID)
	mu.Lock()
	defer mu.Unlock()

	monster, err := r.monsters.Get(ctx, monsterID)
	if err != nil {
		return nil, fmt.Errorf("loading monster: %w", err)
	}
	if !monster.Alive() {
		return nil, ErrTargetDead
	}

	attacker, err := r.chars.Get(ctx, characterID)
	if err != nil {
		return nil, fmt.Errorf("loading attacker: %w", err)
	}

	if r.rng.Float64() > HitChance(attacker.Dex) {
		return &Result{Outcome: OutcomeMiss, MonsterHP: monster.HP}, nil
	}

	critical := r.rng.Float64() <= CritChance(attacker.Luk)
	variation := minVariation + r.rng.Float64()*variationRange
	damage := FinalDamage(BaseDamage(attacker.Class, attacker.Str, attacker.Int), monster.Def, critical, variation)

	newHP := monster.HP - damage
	if newHP < 0 {
		newHP = 0
	}
	if err := r.monsters.UpdateHP(ctx, monsterID, newHP); err != nil {
		return nil, fmt.Errorf("applying damage: %w", err)
	}

	result := &Result{
		Outcome:    OutcomeHit,
		Damage:     damage,
		IsCritical: critical,
		MonsterHP:  newHP,
	}
	if critical {
		result.Outcome = OutcomeCritical
	}
	if newHP > 0 {
		return result, nil
	}

	// The killing blow is committed; rewards and respawn follow regardless
	// of what happens to the attacking connection.
	result.Outcome = OutcomeKill
	r.grantRewards(ctx, attacker, monster, result)
	r.respawn.Schedule(monsterID, monster.Map)

	slog.InfoContext(ctx, "monster killed",
		"monster", monsterID, "character", characterID, "exp", result.ExpGained)
	return result, nil
}

// grantRewards issues the experience for a kill and applies at most one level
// up. A grant crossing two thresholds still levels once; the surplus counts
// toward the next grant's check. Reward persistence failures are logged but
// do not undo the kill.
func (r *Resolver) grantRewards(ctx context.Context, attacker *game.Character, monster *game.Monster, result *Result) {
	if err := r.chars.AddExperience(ctx, attacker.ID, monster.Exp); err != nil {
		slog.ErrorContext(ctx, "granting experience",
			"character", attacker.ID, "error", err)
		return
	}
	result.ExpGained = monster.Exp

	updated, err := r.chars.Get(ctx, attacker.ID)
	if err != nil {
		slog.ErrorContext(ctx, "reloading character for level check",
			"character", attacker.ID, "error", err)
		return
	}

	if !game.ReadyToLevel(updated.Level, updated.Exp) {
		return
	}

	newLevel := updated.Level + 1
	inc := game.StatIncreaseFor(updated.Class)
	if err := r.chars.LevelUp(ctx, attacker.ID, newLevel, inc); err != nil {
		slog.ErrorContext(ctx, "applying level up",
			"character", attacker.ID, "error", err)
		return
	}

	result.LeveledUp = true
	result.NewLevel = newLevel
	slog.InfoContext(ctx, "character leveled up",
		"character", attacker.ID, "level", newLevel)
}
