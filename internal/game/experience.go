package game

// ExpForLevel returns the cumulative experience required to reach the given
// level: floor(100 * level^2).
func ExpForLevel(level int) int {
	if level < 1 {
		return 0
	}
	return 100 * level * level
}

// ExpToNextLevel returns the remaining experience needed to reach the next
// level, never negative.
func ExpToNextLevel(level, experience int) int {
	remaining := ExpForLevel(level+1) - experience
	if remaining < 0 {
		return 0
	}
	return remaining
}

// ReadyToLevel reports whether a character with the given level and cumulative
// experience qualifies for a level up. A single grant qualifies for at most
// one level; callers apply one level up per experience grant.
func ReadyToLevel(level, experience int) bool {
	return experience >= ExpForLevel(level+1)
}
