package database

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *XPStore {
	t.Helper()
	store, err := NewXPStore(filepath.Join(t.TempDir(), "xp.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestAddXPInsertsThenIncrements(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	old, now, err := store.AddXP(ctx, 1, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(0), old)
	assert.Equal(t, int64(4), now)

	old, now, err = store.AddXP(ctx, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(4), old)
	assert.Equal(t, int64(5), now)
}

func TestGetXP(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.GetXP(ctx, 1)
	assert.ErrorIs(t, err, ErrNoRecord)

	_, _, err = store.AddXP(ctx, 1, 7)
	require.NoError(t, err)

	xp, err := store.GetXP(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(7), xp)
}

func TestClearXP(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	existed, err := store.ClearXP(ctx, 1)
	require.NoError(t, err)
	assert.False(t, existed)

	_, _, err = store.AddXP(ctx, 1, 3)
	require.NoError(t, err)

	existed, err = store.ClearXP(ctx, 1)
	require.NoError(t, err)
	assert.True(t, existed)

	_, err = store.GetXP(ctx, 1)
	assert.ErrorIs(t, err, ErrNoRecord)
}

func TestTopNOrdering(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for user, xp := range map[int64]int64{1: 30, 2: 50, 3: 10, 4: 50} {
		_, _, err := store.AddXP(ctx, user, xp)
		require.NoError(t, err)
	}

	rows, err := store.TopN(ctx, 3)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	// Descending by xp, ties broken by ascending user id.
	assert.Equal(t, UserXP{UserID: 2, XP: 50}, rows[0])
	assert.Equal(t, UserXP{UserID: 4, XP: 50}, rows[1])
	assert.Equal(t, UserXP{UserID: 1, XP: 30}, rows[2])
}

func TestTopNEmpty(t *testing.T) {
	store := newTestStore(t)

	rows, err := store.TopN(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestCountUsers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	count, err := store.CountUsers(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	for user := int64(1); user <= 3; user++ {
		_, _, err := store.AddXP(ctx, user, 1)
		require.NoError(t, err)
	}

	count, err = store.CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

// Concurrent awards for one user must not lose updates.
func TestAddXPConcurrent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	const n = 50
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := store.AddXP(ctx, 1, 1)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	xp, err := store.GetXP(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(n), xp)
}
