package sqlite

import (
	"context"
	"fmt"

	"github.com/aminah/showtrack/internal/apperror"
	"github.com/aminah/showtrack/internal/model"
	"github.com/aminah/showtrack/internal/repository"
)

// Compile-time check that *DB implements repository.MembershipRepository.
var _ repository.MembershipRepository = (*DB)(nil)

// AddToSet places a (user, show) pair into the named set.
//
// ONE STATEMENT, THREE CASES:
// The upsert covers every transition the toggle engine needs:
//   - pair in neither set → fresh row, plain insert
//   - pair already in this set → status overwritten with itself, no-op
//   - pair in the OTHER set → status flips in place — the cross-list move
//     is a single atomic write, so no failure can strand the pair in both
//     sets or lose it from both
//
// The composite primary key on (user_id, show_id) is what turns "add to
// watched" into "move to watched" for free.
func (db *DB) AddToSet(ctx context.Context, userID string, list repository.ListName, showID string) error {
	if !list.Valid() {
		return apperror.Invalid("list", fmt.Sprintf("unknown list %q", list))
	}

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO user_shows (user_id, show_id, status)
		 VALUES (?, ?, ?)
		 ON CONFLICT(user_id, show_id) DO UPDATE SET
			status   = excluded.status,
			added_at = CURRENT_TIMESTAMP`,
		userID, showID, string(list),
	)
	if err != nil {
		return fmt.Errorf("sqlite: adding show %s to %s of user %s: %w", showID, list, userID, err)
	}

	return nil
}

// RemoveFromSet removes a pair from the named set. Removing a pair that is
// absent (or that sits in the other set) is a no-op success — the
// operation is idempotent by contract.
func (db *DB) RemoveFromSet(ctx context.Context, userID string, list repository.ListName, showID string) error {
	if !list.Valid() {
		return apperror.Invalid("list", fmt.Sprintf("unknown list %q", list))
	}

	_, err := db.conn.ExecContext(ctx,
		`DELETE FROM user_shows
		 WHERE user_id = ? AND show_id = ? AND status = ?`,
		userID, showID, string(list),
	)
	if err != nil {
		return fmt.Errorf("sqlite: removing show %s from %s of user %s: %w", showID, list, userID, err)
	}

	return nil
}

// SetsForUser returns both membership sets in insertion order.
// Both slices are non-nil even when empty, so they serialize as [] not null.
func (db *DB) SetsForUser(ctx context.Context, userID string) (watchlist, watched []string, err error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT show_id, status FROM user_shows
		 WHERE user_id = ?
		 ORDER BY added_at, show_id`,
		userID,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("sqlite: reading sets of user %s: %w", userID, err)
	}
	defer rows.Close()

	watchlist = []string{}
	watched = []string{}
	for rows.Next() {
		var showID, status string
		if err := rows.Scan(&showID, &status); err != nil {
			return nil, nil, fmt.Errorf("sqlite: scanning membership row: %w", err)
		}
		switch repository.ListName(status) {
		case repository.Watchlist:
			watchlist = append(watchlist, showID)
		case repository.Watched:
			watched = append(watched, showID)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("sqlite: iterating membership rows: %w", err)
	}

	return watchlist, watched, nil
}

// ShowsInSet resolves one set to full show records. The inner join drops
// orphaned ids (shows deleted after being listed) without error.
func (db *DB) ShowsInSet(ctx context.Context, userID string, list repository.ListName) ([]model.Show, error) {
	if !list.Valid() {
		return nil, apperror.Invalid("list", fmt.Sprintf("unknown list %q", list))
	}

	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+prefixedShowColumns+`
		 FROM user_shows us
		 JOIN shows s ON s.id = us.show_id
		 WHERE us.user_id = ? AND us.status = ?
		 ORDER BY us.added_at, us.show_id`,
		userID, string(list),
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: resolving %s of user %s: %w", list, userID, err)
	}
	defer rows.Close()

	return collectShows(rows)
}

const prefixedShowColumns = `s.id, s.type, s.title, s.genres, s.date_released,
	s.personal_rating, s.rotten_tomato_rating, s.recommendations, s.where_to_watch`
