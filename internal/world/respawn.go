package world

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// MonsterResetter restores a dead monster to full health in storage.
type MonsterResetter interface {
	Reset(ctx context.Context, id int64) error
}

// EventMonsterRespawned announces a monster returning to its map.
const EventMonsterRespawned = "monster_respawned"

// MonsterRespawnedPayload is the body of a monster_respawned event.
type MonsterRespawnedPayload struct {
	MonsterID int64 `json:"monsterId"`
}

type respawnEntry struct {
	mapID string
	due   time.Time
}

// RespawnManager brings killed monsters back after a fixed delay. Kills are
// scheduled by the combat resolver; the driver tick drains due entries.
type RespawnManager struct {
	mu      sync.Mutex
	pending map[int64]respawnEntry

	delay    time.Duration
	monsters MonsterResetter
	router   *Router
	now      func() time.Time
}

// NewRespawnManager creates a manager resetting monsters after delay.
func NewRespawnManager(monsters MonsterResetter, router *Router, delay time.Duration) *RespawnManager {
	return &RespawnManager{
		pending:  map[int64]respawnEntry{},
		delay:    delay,
		monsters: monsters,
		router:   router,
		now:      time.Now,
	}
}

// Schedule queues a monster for respawn on its map. Scheduling an already
// pending monster keeps the earlier due time.
func (m *RespawnManager) Schedule(monsterID int64, mapID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.pending[monsterID]; ok {
		return
	}
	m.pending[monsterID] = respawnEntry{mapID: mapID, due: m.now().Add(m.delay)}
}

// Pending returns the number of monsters awaiting respawn.
func (m *RespawnManager) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}

// Tick resets every due monster and announces it to the monster's map group.
// Due entries are claimed before the storage call so a kill landing while the
// reset runs schedules the next respawn instead of being erased; a storage
// failure re-queues the entry for the next tick.
func (m *RespawnManager) Tick(ctx context.Context) error {
	now := m.now()

	m.mu.Lock()
	due := map[int64]respawnEntry{}
	for id, entry := range m.pending {
		if !entry.due.After(now) {
			due[id] = entry
			delete(m.pending, id)
		}
	}
	m.mu.Unlock()

	for id, entry := range due {
		if err := m.monsters.Reset(ctx, id); err != nil {
			slog.ErrorContext(ctx, "monster respawn failed", "monster", id, "error", err)
			m.requeue(id, entry)
			continue
		}

		m.router.BroadcastToMap(ctx, entry.mapID, EventMonsterRespawned,
			MonsterRespawnedPayload{MonsterID: id}, "")
		slog.InfoContext(ctx, "monster respawned", "monster", id, "map", entry.mapID)
	}
	return nil
}

// requeue puts a claimed entry back after a failed reset, keeping the earlier
// due time if a concurrent kill re-scheduled the monster meanwhile.
func (m *RespawnManager) requeue(id int64, entry respawnEntry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.pending[id]; ok && existing.due.Before(entry.due) {
		return
	}
	m.pending[id] = entry
}
