package combat

import (
	"math"
	"testing"

	"github.com/pixil98/go-realm/internal/game"
	"github.com/pixil98/go-testutil"
)

func assertClose(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("%s: got %v, want %v", name, got, want)
	}
}

func TestHitChance(t *testing.T) {
	tests := map[string]struct {
		dex  int
		want float64
	}{
		"no dex":         {0, 0.80},
		"modest dex":     {10, 0.90},
		"at cap":         {15, 0.95},
		"clamped at cap": {100, 0.95},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assertClose(t, "hit chance", HitChance(tt.dex), tt.want)
		})
	}
}

func TestCritChance(t *testing.T) {
	tests := map[string]struct {
		luk  int
		want float64
	}{
		"no luk":         {0, 0.05},
		"modest luk":     {10, 0.10},
		"at cap":         {50, 0.30},
		"clamped at cap": {200, 0.30},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assertClose(t, "crit chance", CritChance(tt.luk), tt.want)
		})
	}
}

func TestBaseDamage(t *testing.T) {
	tests := map[string]struct {
		class game.Class
		want  int
	}{
		"warrior scales on str": {game.ClassWarrior, 30},
		"rogue scales on str":   {game.ClassRogue, 30},
		"archer scales on str":  {game.ClassArcher, 30},
		"mage scales on int":    {game.ClassMage, 24},
		"cleric scales on int":  {game.ClassCleric, 24},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "base damage", BaseDamage(tt.class, 15, 12), tt.want)
		})
	}
}

func TestFinalDamage(t *testing.T) {
	tests := map[string]struct {
		base      int
		def       int
		critical  bool
		variation float64
		want      int
	}{
		"plain hit":              {30, 10, false, 1.0, 20},
		"critical before defense": {30, 10, true, 1.0, 35},
		"variation floors":       {30, 10, false, 1.1, 22},
		"overwhelming defense":   {10, 500, false, 1.0, 1},
		"floor survives low variation": {10, 9, false, 0.9, 1},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "damage",
				FinalDamage(tt.base, tt.def, tt.critical, tt.variation), tt.want)
		})
	}
}

// Damage must stay at or above 1 across the whole variation range for any
// stat combination.
func TestDamageFloor(t *testing.T) {
	for def := 0; def <= 200; def += 25 {
		for _, variation := range []float64{0.9, 0.95, 1.0, 1.05, 1.1} {
			if got := FinalDamage(2, def, false, variation); got < 1 {
				t.Fatalf("damage %d below floor for def=%d variation=%v", got, def, variation)
			}
		}
	}
}
