package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevel(t *testing.T) {
	assert.Equal(t, 0, Level(0))
	assert.Equal(t, 1, Level(1))
	assert.Equal(t, 0, Level(-5))

	// 2^2.5 is about 5.66, so 5 xp is still level 1 and 6 xp is level 2.
	assert.Equal(t, 1, Level(5))
	assert.Equal(t, 2, Level(6))
}

func TestLevelMonotonic(t *testing.T) {
	prev := Level(0)
	for xp := int64(1); xp <= 3000; xp++ {
		cur := Level(xp)
		require.GreaterOrEqual(t, cur, prev, "level dropped at xp=%d", xp)
		prev = cur
	}
}

func TestToNextLevel(t *testing.T) {
	assert.Equal(t, int64(1), ToNextLevel(0))
	assert.Equal(t, int64(1), ToNextLevel(-1))

	// 9^2.5 is exactly 243, a boundary where Pow may land an ulp high; the
	// smallest crossing amounts must still be exact on both sides of it.
	assert.Equal(t, int64(61), ToNextLevel(182))
	assert.Equal(t, int64(1), ToNextLevel(242))
	assert.Equal(t, int64(74), ToNextLevel(243))
}

// Adding ToNextLevel(xp) must land exactly one level up, and one xp less
// must not cross.
func TestToNextLevelCrossing(t *testing.T) {
	for xp := int64(0); xp <= 100000; xp++ {
		need := ToNextLevel(xp)
		require.GreaterOrEqual(t, need, int64(1), "xp=%d", xp)
		require.Equal(t, Level(xp)+1, Level(xp+need), "xp=%d need=%d", xp, need)
		if need > 1 {
			require.Equal(t, Level(xp), Level(xp+need-1), "xp=%d need=%d", xp, need)
		}
	}
}
