package game

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"levelbot/utils/database"
)

// Settings holds the tunable pieces of the xp policy.
type Settings struct {
	// Cooldown is the minimum gap between xp-eligible messages per user.
	Cooldown time.Duration
	// Reengagement is the absence after which a message earns BonusAward
	// instead of BaseAward.
	Reengagement    time.Duration
	BaseAward       int64
	BonusAward      int64
	LeaderboardSize int
	// StorageTimeout bounds each database call.
	StorageTimeout time.Duration
}

// DefaultSettings returns the stock xp policy.
func DefaultSettings() Settings {
	return Settings{
		Cooldown:        5 * time.Minute,
		Reengagement:    6 * time.Hour,
		BaseAward:       1,
		BonusAward:      4,
		LeaderboardSize: 10,
		StorageTimeout:  5 * time.Second,
	}
}

// LevelUp is returned when an award crosses a level boundary.
type LevelUp struct {
	Level  int
	XP     int64
	ToNext int64
}

// Status describes a user's current standing. A user with no stored record
// reads as zero xp.
type Status struct {
	Level  int
	XP     int64
	ToNext int64
}

// LeaderboardEntry is one visible row of the leaderboard. Rank is 1-based
// over non-excluded users only.
type LeaderboardEntry struct {
	Rank   int
	UserID int64
	Level  int
}

// Engine encapsulates game state and mechanics: the exclusion set, the
// per-process cooldown table and the durable xp store. The cooldown table is
// deliberately not persisted; a restart just means the next message from
// everyone is eligible again.
type Engine struct {
	settings Settings
	store    *database.XPStore
	exclude  *PersistentExclude

	mu      sync.Mutex
	lastMsg map[int64]time.Time
}

// NewEngine builds the engine around an opened store and a loaded exclusion
// set.
func NewEngine(store *database.XPStore, exclude *PersistentExclude, settings Settings) *Engine {
	e := &Engine{
		settings: settings,
		store:    store,
		exclude:  exclude,
		lastMsg:  make(map[int64]time.Time),
	}
	log.Println("Initialized game state.")
	return e
}

func (e *Engine) storageCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, e.settings.StorageTimeout)
}

// evaluate applies the award policy for a message from user at now and
// returns the xp amount, zero when the message earns nothing. The cooldown
// stamp is only advanced when an award is made, so ineligible messages do
// not push the window forward.
func (e *Engine) evaluate(user int64, now time.Time) int64 {
	if e.exclude.Contains(user) {
		return 0
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	// A user with no entry has the zero time here, which reads as a very
	// long absence and earns the bonus.
	elapsed := now.Sub(e.lastMsg[user])
	if elapsed <= e.settings.Cooldown {
		return 0
	}
	e.lastMsg[user] = now

	if elapsed > e.settings.Reengagement {
		return e.settings.BonusAward
	}
	return e.settings.BaseAward
}

// OnMessage processes one inbound message. It returns a non-nil LevelUp only
// when the award pushed the user across a level boundary.
func (e *Engine) OnMessage(ctx context.Context, user int64, now time.Time) (*LevelUp, error) {
	amount := e.evaluate(user, now)
	if amount == 0 {
		return nil, nil
	}

	ctx, cancel := e.storageCtx(ctx)
	defer cancel()
	oldXP, newXP, err := e.store.AddXP(ctx, user, amount)
	if err != nil {
		return nil, err
	}

	if Level(oldXP) == Level(newXP) {
		return nil, nil
	}
	return &LevelUp{Level: Level(newXP), XP: newXP, ToNext: ToNextLevel(newXP)}, nil
}

// Status returns the user's level, xp and distance to the next level.
func (e *Engine) Status(ctx context.Context, user int64) (Status, error) {
	ctx, cancel := e.storageCtx(ctx)
	defer cancel()

	xp, err := e.store.GetXP(ctx, user)
	if err != nil && !errors.Is(err, database.ErrNoRecord) {
		return Status{}, err
	}
	return Status{Level: Level(xp), XP: xp, ToNext: ToNextLevel(xp)}, nil
}

// Leaderboard returns up to limit visible entries ranked by xp. Excluded
// users keep their stored xp but are filtered out here, so the fetch window
// starts at limit plus the excluded count and doubles until enough visible
// rows are gathered or storage is exhausted.
func (e *Engine) Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = e.settings.LeaderboardSize
	}

	fetch := limit + e.exclude.Len()
	for {
		cctx, cancel := e.storageCtx(ctx)
		rows, err := e.store.TopN(cctx, fetch)
		cancel()
		if err != nil {
			return nil, err
		}

		entries := make([]LeaderboardEntry, 0, limit)
		for _, row := range rows {
			if e.exclude.Contains(row.UserID) {
				continue
			}
			entries = append(entries, LeaderboardEntry{
				Rank:   len(entries) + 1,
				UserID: row.UserID,
				Level:  Level(row.XP),
			})
			if len(entries) == limit {
				return entries, nil
			}
		}

		if len(rows) < fetch {
			// Storage is exhausted; this is everything visible.
			return entries, nil
		}
		fetch *= 2
	}
}

// Clear removes the user's xp record. It returns the amount that was cleared
// and whether a record existed; clearing twice is not an error.
func (e *Engine) Clear(ctx context.Context, user int64) (int64, bool, error) {
	ctx, cancel := e.storageCtx(ctx)
	defer cancel()

	xp, err := e.store.GetXP(ctx, user)
	if errors.Is(err, database.ErrNoRecord) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}

	existed, err := e.store.ClearXP(ctx, user)
	if err != nil {
		return 0, false, err
	}
	return xp, existed, nil
}

// ExcludeToggle flips the user's opt-out state. The new state is only
// reported once it has been persisted.
func (e *Engine) ExcludeToggle(user int64) (bool, error) {
	return e.exclude.Toggle(user)
}

// IsExcluded reports whether the user has opted out of the game.
func (e *Engine) IsExcluded(user int64) bool {
	return e.exclude.Contains(user)
}

// UserCount returns the number of users with a stored xp record.
func (e *Engine) UserCount(ctx context.Context) (int, error) {
	ctx, cancel := e.storageCtx(ctx)
	defer cancel()
	return e.store.CountUsers(ctx)
}

// CleanupCooldowns drops cooldown entries old enough that their absence
// changes nothing: past the re-engagement window a missing entry and a stale
// one produce the same award.
func (e *Engine) CleanupCooldowns(now time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for user, t := range e.lastMsg {
		if now.Sub(t) > e.settings.Reengagement {
			delete(e.lastMsg, user)
		}
	}
}
