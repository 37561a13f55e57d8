package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/aminah/showtrack/internal/apperror"
	"github.com/aminah/showtrack/internal/model"
	"github.com/aminah/showtrack/internal/repository"
)

// Compile-time check that *DB implements repository.ShowRepository.
var _ repository.ShowRepository = (*DB)(nil)

const showColumns = `id, type, title, genres, date_released,
	personal_rating, rotten_tomato_rating, recommendations, where_to_watch`

// Create inserts a new show, assigning it a fresh UUID.
// The caller's struct is updated in place with the generated ID.
func (db *DB) Create(ctx context.Context, show *model.Show) error {
	show.ID = uuid.NewString()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO shows (`+showColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		show.ID,
		string(show.Type),
		show.Title,
		joinEnums(show.Genres),
		show.DateReleased.Time,
		show.PersonalRating,
		show.RottenTomatoRating,
		show.Recommendations,
		joinEnums(show.WhereToWatch),
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating show: %w", err)
	}

	return nil
}

// scanShow reads one row into a Show. The scan target list must stay in
// sync with showColumns.
func scanShow(scan func(dest ...any) error) (*model.Show, error) {
	var (
		s         model.Show
		typ       string
		genres    string
		released  time.Time
		platforms string
	)
	if err := scan(
		&s.ID, &typ, &s.Title, &genres, &released,
		&s.PersonalRating, &s.RottenTomatoRating, &s.Recommendations, &platforms,
	); err != nil {
		return nil, err
	}
	s.Type = model.ShowType(typ)
	s.Genres = splitGenres(genres)
	s.DateReleased = model.DateOf(released)
	s.WhereToWatch = splitPlatforms(platforms)
	return &s, nil
}

// GetByID retrieves a single show. Returns apperror.ErrNotFound when the
// id does not resolve.
func (db *DB) GetByID(ctx context.Context, id string) (*model.Show, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT `+showColumns+` FROM shows WHERE id = ?`, id)

	show, err := scanShow(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("show", id)
		}
		return nil, fmt.Errorf("sqlite: getting show %s: %w", id, err)
	}
	return show, nil
}

// GetByTitle returns every show with the exact title. Several records can
// share a title (remakes), so the result is a list; an empty list is not
// an error here — the service decides whether that is a 404.
func (db *DB) GetByTitle(ctx context.Context, title string) ([]model.Show, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+showColumns+` FROM shows WHERE title = ? ORDER BY date_released DESC`,
		title,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: getting shows titled %q: %w", title, err)
	}
	defer rows.Close()

	return collectShows(rows)
}

// List returns the entire catalog, ordered by title for deterministic
// output. Filtering and sorting for display happen in the catalog engine,
// not in SQL — the engine's semantics (fail-open bands, sort-then-filter)
// don't map onto WHERE clauses.
func (db *DB) List(ctx context.Context) ([]model.Show, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+showColumns+` FROM shows ORDER BY title COLLATE NOCASE, id`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing shows: %w", err)
	}
	defer rows.Close()

	return collectShows(rows)
}

func collectShows(rows *sql.Rows) ([]model.Show, error) {
	shows := make([]model.Show, 0, 16)
	for rows.Next() {
		s, err := scanShow(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning show row: %w", err)
		}
		shows = append(shows, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating shows: %w", err)
	}
	return shows, nil
}

// Update replaces every mutable field of an existing show.
// RowsAffected == 0 means the WHERE clause matched nothing → not found.
func (db *DB) Update(ctx context.Context, show *model.Show) error {
	result, err := db.conn.ExecContext(ctx,
		`UPDATE shows
		 SET type = ?, title = ?, genres = ?, date_released = ?,
		     personal_rating = ?, rotten_tomato_rating = ?,
		     recommendations = ?, where_to_watch = ?
		 WHERE id = ?`,
		string(show.Type),
		show.Title,
		joinEnums(show.Genres),
		show.DateReleased.Time,
		show.PersonalRating,
		show.RottenTomatoRating,
		show.Recommendations,
		joinEnums(show.WhereToWatch),
		show.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating show %s: %w", show.ID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("show", show.ID)
	}

	return nil
}

// Delete removes a show. Membership rows referencing it are NOT cleaned
// up — user lists keep the orphaned id until the next toggle, and reads
// that resolve shows skip it.
func (db *DB) Delete(ctx context.Context, id string) error {
	result, err := db.conn.ExecContext(ctx,
		`DELETE FROM shows WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting show %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("show", id)
	}

	return nil
}
