package game

import "math"

// rawLevel maps an xp total onto the continuous level curve. Each level n
// begins at n^2.5 xp, so the xp cost per level grows with level.
func rawLevel(xp int64) float64 {
	if xp < 0 {
		xp = 0
	}
	return math.Pow(float64(xp), 1/2.5)
}

// Level returns the level for an xp total. Level(0) is 0 and the result is
// non-decreasing in xp.
func Level(xp int64) int {
	return int(math.Floor(rawLevel(xp)))
}

// ToNextLevel returns the smallest xp amount whose addition lifts the total
// into the next level. The inner epsilon keeps a total sitting exactly on a
// level boundary from being treated as still below it; the outer one absorbs
// Pow overshooting an exact integer boundary by an ulp, which would otherwise
// inflate the result by one.
func ToNextLevel(xp int64) int64 {
	if xp < 0 {
		xp = 0
	}
	next := math.Ceil(rawLevel(xp) + 1e-10)
	return int64(math.Ceil(math.Pow(next, 2.5) - 1e-9 - float64(xp)))
}
