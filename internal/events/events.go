package events

import "github.com/pixil98/go-realm/internal/game"

// Inbound event names.
const (
	EventLogin        = "login"
	EventEnterWorld   = "enter_world"
	EventMove         = "move"
	EventPlayerUpdate = "player_update"
	EventSelectTarget = "select_target"
	EventAttack       = "attack"
)

// Outbound event names. All are map-scoped broadcasts excluding the
// originating connection.
const (
	EventPlayerJoined       = "player_joined"
	EventPlayerLeft         = "player_left"
	EventPlayerMoved        = "player_moved"
	EventPlayerStatsUpdated = "player_stats_updated"
	EventCombatUpdate       = "combat_update"
)

// Ack is the common reply shape. Every request-response event embeds it.
type Ack struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type LoginResponse struct {
	Ack
	AccountID int64  `json:"accountId,omitempty"`
	Username  string `json:"username,omitempty"`
}

type EnterWorldResponse struct {
	Ack
	Character *game.Character `json:"character,omitempty"`
}

type AttackResponse struct {
	Ack
	CombatUpdatePayload
}

type PlayerJoinedPayload struct {
	Character game.Character `json:"character"`
}

type PlayerLeftPayload struct {
	CharacterID   int64  `json:"characterId"`
	CharacterName string `json:"characterName,omitempty"`
}

type PlayerMovedPayload struct {
	CharacterID int64   `json:"characterId"`
	PosX        float64 `json:"posX"`
	PosY        float64 `json:"posY"`
	PosZ        float64 `json:"posZ"`
	Map         string  `json:"map"`
}

type PlayerStatsUpdatedPayload struct {
	CharacterID int64 `json:"characterId"`
	HP          int   `json:"hp"`
	MP          int   `json:"mp"`
	Level       int   `json:"level,omitempty"`
}

type CombatUpdatePayload struct {
	AttackerID int64  `json:"attackerId"`
	TargetID   int64  `json:"targetId"`
	TargetType string `json:"targetType"`
	Result     string `json:"result"`
	Damage     int    `json:"damage"`
	IsCritical bool   `json:"isCritical"`
	MonsterHP  int    `json:"monsterHp"`
	ExpGained  int    `json:"expGained,omitempty"`
	LeveledUp  bool   `json:"leveledUp,omitempty"`
	NewLevel   int    `json:"newLevel,omitempty"`
}
