package game

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadExcludeMissingFileInitializes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "excluded_users.txt")

	e := LoadExclude(path)
	assert.Equal(t, 0, e.Len())

	// A fresh empty file must have been written.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, string(data))
}

func TestLoadExcludeCorruptFileSelfHeals(t *testing.T) {
	path := filepath.Join(t.TempDir(), "excluded_users.txt")
	require.NoError(t, os.WriteFile(path, []byte("12\nnot-a-number\n34"), 0644))

	e := LoadExclude(path)
	assert.Equal(t, 0, e.Len())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, string(data))
}

func TestToggleRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "excluded_users.txt")
	e := LoadExclude(path)

	excluded, err := e.Toggle(42)
	require.NoError(t, err)
	assert.True(t, excluded)
	assert.True(t, e.Contains(42))

	excluded, err = e.Toggle(42)
	require.NoError(t, err)
	assert.False(t, excluded)
	assert.False(t, e.Contains(42))
}

func TestTogglePersistsSortedAscending(t *testing.T) {
	path := filepath.Join(t.TempDir(), "excluded_users.txt")
	e := LoadExclude(path)

	for _, id := range []int64{300, 7, 42} {
		_, err := e.Toggle(id)
		require.NoError(t, err)
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "7\n42\n300", string(data))

	// A fresh load sees the same membership.
	reloaded := LoadExclude(path)
	assert.True(t, reloaded.Contains(7))
	assert.True(t, reloaded.Contains(42))
	assert.True(t, reloaded.Contains(300))
	assert.Equal(t, 3, reloaded.Len())
}

func TestTogglePersistFailureRollsBack(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "excluded_users.txt")
	e := LoadExclude(path)

	_, err := e.Toggle(42)
	require.NoError(t, err)

	// Replace the file with a directory so the rewrite fails.
	require.NoError(t, os.Remove(path))
	require.NoError(t, os.Mkdir(path, 0755))

	_, err = e.Toggle(7)
	require.ErrorIs(t, err, ErrExcludePersist)

	// The failed toggle must not be visible in memory.
	assert.False(t, e.Contains(7))
	assert.True(t, e.Contains(42))
}
