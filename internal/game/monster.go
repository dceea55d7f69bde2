package game

// Monster is a persistent monster instance as read from storage. Monsters are
// shared world state, not owned by any session; HP mutation goes through the
// combat resolver which serializes per monster id.
type Monster struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Level int    `json:"level"`
	HP    int    `json:"hp"`
	MaxHP int    `json:"maxHp"`
	Atk   int    `json:"atk"`
	Def   int    `json:"def"`
	Exp   int    `json:"exp"`
	Map   string `json:"map"`

	PosX float64 `json:"posX"`
	PosY float64 `json:"posY"`
	PosZ float64 `json:"posZ"`
}

// Alive reports whether the monster can still be attacked.
func (m *Monster) Alive() bool {
	return m.HP > 0
}
