package game

import (
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestExpForLevel(t *testing.T) {
	tests := map[string]struct {
		level int
		exp   int
	}{
		"level zero":  {0, 0},
		"level one":   {1, 100},
		"level two":   {2, 400},
		"level five":  {5, 2500},
		"level ten":   {10, 10000},
		"below range": {-3, 0},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "exp", ExpForLevel(tt.level), tt.exp)
		})
	}
}

func TestReadyToLevel(t *testing.T) {
	tests := map[string]struct {
		level int
		exp   int
		ready bool
	}{
		"fresh character":     {1, 0, false},
		"just short":          {1, 399, false},
		"exact threshold":     {1, 400, true},
		"past threshold":      {1, 500, true},
		"mid levels short":    {4, 2400, false},
		"mid levels at bound": {4, 2500, true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "ready", ReadyToLevel(tt.level, tt.exp), tt.ready)
		})
	}
}

func TestExpToNextLevel(t *testing.T) {
	testutil.AssertEqual(t, "remaining", ExpToNextLevel(1, 150), 250)
	testutil.AssertEqual(t, "clamped", ExpToNextLevel(1, 9000), 0)
}

func TestBaseStatsFor(t *testing.T) {
	tests := map[string]struct {
		class Class
		race  Race
		stats Stats
		hp    int
		mp    int
	}{
		"human warrior": {
			class: ClassWarrior, race: RaceHuman,
			stats: Stats{Str: 16, Dex: 11, Vit: 14, Int: 9, Luk: 10},
			hp:    125, mp: 33,
		},
		"elf mage": {
			class: ClassMage, race: RaceElf,
			stats: Stats{Str: 8, Dex: 12, Vit: 9, Int: 17, Luk: 14},
			hp:    80, mp: 106,
		},
		"orc warrior": {
			class: ClassWarrior, race: RaceOrc,
			stats: Stats{Str: 17, Dex: 10, Vit: 15, Int: 7, Luk: 9},
			hp:    130, mp: 27,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			stats, hp, mp := BaseStatsFor(tt.class, tt.race)
			testutil.AssertEqual(t, "stats", stats, tt.stats)
			testutil.AssertEqual(t, "hp", hp, tt.hp)
			testutil.AssertEqual(t, "mp", mp, tt.mp)
		})
	}
}
