package combat

import (
	"math"

	"github.com/pixil98/go-realm/internal/game"
)

const (
	baseHitChance  = 0.80
	maxHitChance   = 0.95
	baseCritChance = 0.05
	maxCritChance  = 0.30
	critMultiplier = 1.5

	// Damage variation bounds: every landed hit is scaled by a uniform
	// factor in [minVariation, minVariation+variationRange).
	minVariation   = 0.9
	variationRange = 0.2
)

// HitChance returns the attacker's chance to land a hit: 80% base plus 1%
// per point of DEX, capped at 95%.
func HitChance(dex int) float64 {
	return math.Min(maxHitChance, baseHitChance+float64(dex)*0.01)
}

// CritChance returns the attacker's chance to land a critical once a hit
// connects: 5% base plus 0.5% per point of LUK, capped at 30%.
func CritChance(luk int) float64 {
	return math.Min(maxCritChance, baseCritChance+float64(luk)*0.005)
}

// BaseDamage returns the attacker's raw damage before defense. Magic-affinity
// classes scale on INT, everyone else on STR.
func BaseDamage(class game.Class, str, intl int) int {
	if class.MagicAffinity() {
		return intl * 2
	}
	return str * 2
}

// FinalDamage applies the critical multiplier, target defense, and the
// variation factor. A landed hit always deals at least 1 damage, even after
// the downward variation roll.
func FinalDamage(base, def int, critical bool, variation float64) int {
	raw := float64(base)
	if critical {
		raw *= critMultiplier
	}
	mitigated := math.Max(1, raw-float64(def))
	damage := int(math.Floor(mitigated * variation))
	if damage < 1 {
		damage = 1
	}
	return damage
}
