package game

import "fmt"

// Class identifies a character's combat discipline.
type Class string

const (
	ClassWarrior Class = "warrior"
	ClassMage    Class = "mage"
	ClassArcher  Class = "archer"
	ClassRogue   Class = "rogue"
	ClassCleric  Class = "cleric"
)

// Classes lists every valid class.
var Classes = []Class{ClassWarrior, ClassMage, ClassArcher, ClassRogue, ClassCleric}

func (c Class) Validate() error {
	for _, v := range Classes {
		if c == v {
			return nil
		}
	}
	return fmt.Errorf("unknown class: %s", c)
}

// MagicAffinity reports whether the class deals spell damage (INT-scaled)
// rather than weapon damage (STR-scaled).
func (c Class) MagicAffinity() bool {
	return c == ClassMage || c == ClassCleric
}

// Race identifies a character's ancestry.
type Race string

const (
	RaceHuman   Race = "human"
	RaceElf     Race = "elf"
	RaceDarkElf Race = "dark_elf"
	RaceOrc     Race = "orc"
	RaceDwarf   Race = "dwarf"
)

// Races lists every valid race.
var Races = []Race{RaceHuman, RaceElf, RaceDarkElf, RaceOrc, RaceDwarf}

func (r Race) Validate() error {
	for _, v := range Races {
		if r == v {
			return nil
		}
	}
	return fmt.Errorf("unknown race: %s", r)
}

// Stats holds the five primary attributes.
type Stats struct {
	Str int `json:"str"`
	Dex int `json:"dex"`
	Vit int `json:"vit"`
	Int int `json:"int"`
	Luk int `json:"luk"`
}

// Character is the persistent character record as read from storage.
type Character struct {
	ID        int64  `json:"id"`
	AccountID int64  `json:"accountId"`
	Name      string `json:"name"`
	Class     Class  `json:"class"`
	Race      Race   `json:"race"`
	Level     int    `json:"level"`
	Exp       int    `json:"exp"`

	Stats

	HP    int `json:"hp"`
	MaxHP int `json:"maxHp"`
	MP    int `json:"mp"`
	MaxMP int `json:"maxMp"`

	PosX float64 `json:"posX"`
	PosY float64 `json:"posY"`
	PosZ float64 `json:"posZ"`
	Map  string  `json:"map"`
}

// StatIncrease is the per-level growth applied on level up.
type StatIncrease struct {
	Stats
	HP int
	MP int
}

var classBaseStats = map[Class]struct {
	Stats
	HP, MP int
}{
	ClassWarrior: {Stats{Str: 15, Dex: 10, Vit: 13, Int: 8, Luk: 9}, 120, 30},
	ClassMage:    {Stats{Str: 8, Dex: 10, Vit: 9, Int: 15, Luk: 13}, 80, 100},
	ClassArcher:  {Stats{Str: 10, Dex: 15, Vit: 10, Int: 9, Luk: 11}, 90, 50},
	ClassRogue:   {Stats{Str: 11, Dex: 15, Vit: 10, Int: 8, Luk: 11}, 85, 45},
	ClassCleric:  {Stats{Str: 10, Dex: 9, Vit: 12, Int: 13, Luk: 11}, 100, 80},
}

var raceModifiers = map[Race]Stats{
	RaceHuman:   {Str: 1, Dex: 1, Vit: 1, Int: 1, Luk: 1},
	RaceElf:     {Str: 0, Dex: 2, Vit: 0, Int: 2, Luk: 1},
	RaceDarkElf: {Str: 1, Dex: 2, Vit: 0, Int: 1, Luk: 1},
	RaceOrc:     {Str: 2, Dex: 0, Vit: 2, Int: -1, Luk: 0},
	RaceDwarf:   {Str: 2, Dex: 0, Vit: 2, Int: 0, Luk: 0},
}

var classStatIncreases = map[Class]StatIncrease{
	ClassWarrior: {Stats{Str: 3, Dex: 1, Vit: 2, Int: 0, Luk: 1}, 20, 5},
	ClassMage:    {Stats{Str: 0, Dex: 1, Vit: 1, Int: 3, Luk: 2}, 10, 25},
	ClassArcher:  {Stats{Str: 1, Dex: 3, Vit: 1, Int: 1, Luk: 1}, 15, 10},
	ClassRogue:   {Stats{Str: 1, Dex: 3, Vit: 1, Int: 0, Luk: 2}, 12, 8},
	ClassCleric:  {Stats{Str: 1, Dex: 1, Vit: 2, Int: 2, Luk: 1}, 18, 15},
}

// BaseStatsFor returns the starting stats and HP/MP for a new character of
// the given class and race. Vitality and intelligence modifiers from the race
// also scale starting HP and MP.
func BaseStatsFor(class Class, race Race) (Stats, int, int) {
	base := classBaseStats[class]
	mod := raceModifiers[race]

	stats := Stats{
		Str: base.Str + mod.Str,
		Dex: base.Dex + mod.Dex,
		Vit: base.Vit + mod.Vit,
		Int: base.Int + mod.Int,
		Luk: base.Luk + mod.Luk,
	}
	return stats, base.HP + mod.Vit*5, base.MP + mod.Int*3
}

// StatIncreaseFor returns the growth applied when a character of the given
// class gains a level.
func StatIncreaseFor(class Class) StatIncrease {
	return classStatIncreases[class]
}
