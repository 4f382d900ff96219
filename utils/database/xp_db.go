package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// ErrNoRecord reports that a user has never earned xp. A stored total of
// zero is a different thing and does not produce this error.
var ErrNoRecord = errors.New("no xp record for user")

// XPStore persists per-user xp totals in SQLite. All mutation goes through
// atomic upserts, so concurrent awards for the same user never lose updates.
type XPStore struct {
	db *sqlx.DB
}

// NewXPStore opens the database at dbPath and ensures the user_xp table
// exists. Any failure here means the backing store is unusable; the caller
// should treat it as fatal.
func NewXPStore(dbPath string) (*XPStore, error) {
	db, err := sqlx.Connect("sqlite3", dbPath+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open xp database: %w", err)
	}

	schema := `CREATE TABLE IF NOT EXISTS user_xp (
	    user_id INTEGER NOT NULL PRIMARY KEY,
	    xp INTEGER NOT NULL
	);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create user_xp table: %w", err)
	}

	return &XPStore{db: db}, nil
}

// Close closes the underlying database handle.
func (s *XPStore) Close() error {
	return s.db.Close()
}

// AddXP inserts a new record with xp = amount, or increments an existing one,
// in a single statement. It returns the totals before and after the award.
func (s *XPStore) AddXP(ctx context.Context, user, amount int64) (int64, int64, error) {
	query := `INSERT INTO user_xp (user_id, xp) VALUES (?, ?)
	    ON CONFLICT(user_id) DO UPDATE SET xp = xp + excluded.xp
	    RETURNING xp`

	var xp int64
	if err := s.db.QueryRowxContext(ctx, query, user, amount).Scan(&xp); err != nil {
		return 0, 0, fmt.Errorf("failed to add xp for user %d: %w", user, err)
	}
	return xp - amount, xp, nil
}

// GetXP returns the stored total for user, or ErrNoRecord.
func (s *XPStore) GetXP(ctx context.Context, user int64) (int64, error) {
	var xp int64
	err := s.db.QueryRowxContext(ctx, "SELECT xp FROM user_xp WHERE user_id = ?", user).Scan(&xp)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNoRecord
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read xp for user %d: %w", user, err)
	}
	return xp, nil
}

// ClearXP deletes the record for user and reports whether one existed.
// Clearing a user who has no record is not an error.
func (s *XPStore) ClearXP(ctx context.Context, user int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM user_xp WHERE user_id = ?", user)
	if err != nil {
		return false, fmt.Errorf("failed to clear xp for user %d: %w", user, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to clear xp for user %d: %w", user, err)
	}
	return affected > 0, nil
}

// UserXP mirrors one row of the user_xp table.
type UserXP struct {
	UserID int64 `db:"user_id"`
	XP     int64 `db:"xp"`
}

// TopN returns up to limit records ordered by descending xp. Ties are broken
// by user id so the order is deterministic within a call.
func (s *XPStore) TopN(ctx context.Context, limit int) ([]UserXP, error) {
	var rows []UserXP
	err := s.db.SelectContext(ctx, &rows,
		"SELECT user_id, xp FROM user_xp ORDER BY xp DESC, user_id ASC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to read top xp records: %w", err)
	}
	return rows, nil
}

// CountUsers returns the number of users with a stored xp record.
func (s *XPStore) CountUsers(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowxContext(ctx, "SELECT COUNT(*) FROM user_xp").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count xp records: %w", err)
	}
	return count, nil
}
