// Package sqlite implements the repository interfaces using SQLite as the
// catalog store.
//
// WHY SQLITE?
// SQLite is an embedded database — it lives inside the Go binary as a single
// file. No separate database server to install, configure, or manage. A
// personal tracker is exactly the single-writer, read-mostly workload it
// excels at, and ":memory:" gives free, isolated databases for tests.
//
// WHY modernc.org/sqlite INSTEAD OF github.com/mattn/go-sqlite3?
// mattn/go-sqlite3 uses CGo, which needs a C compiler and makes
// cross-compilation painful. modernc.org/sqlite is a pure Go translation of
// the SQLite sources — works everywhere Go works.
package sqlite

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/aminah/showtrack/internal/model"

	// Side-effect import: registers the "sqlite" driver with database/sql.
	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection pool and implements the repository
// interfaces. The server owns it and closes it on shutdown.
type DB struct {
	conn *sql.DB
}

// New opens (or creates) the database at dbPath and runs migrations.
// Use ":memory:" for an ephemeral database in tests.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// Force an immediate connection — a bad path or permissions problem
	// should surface here, not on the first query.
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL lets reads proceed while a write is in flight — important for a
	// web server even at hobby scale.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	// Foreign keys are OFF by default in SQLite.
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the connection pool. Always defer this next to New.
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates the schema. CREATE TABLE IF NOT EXISTS keeps it safe to
// run on every start.
//
// SCHEMA NOTES:
//   - genres and where_to_watch are space-joined enum name lists in a TEXT
//     column. They are closed enums validated at the service boundary, so a
//     join table would buy nothing but joins.
//   - user_shows holds AT MOST ONE row per (user, show) with a status of
//     'watchlist' or 'watched'. The composite primary key is what makes the
//     two lists mutually exclusive: there is no representation for "both".
//   - user_shows.show_id deliberately has NO foreign key. Deleting a show
//     leaves list entries orphaned; reads resolve through a join and simply
//     skip them.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS shows (
			id                   TEXT PRIMARY KEY,
			type                 TEXT NOT NULL,
			title                TEXT NOT NULL,
			genres               TEXT NOT NULL,
			date_released        DATETIME NOT NULL,
			personal_rating      INTEGER NOT NULL,
			rotten_tomato_rating INTEGER NOT NULL,
			recommendations      INTEGER NOT NULL DEFAULT 0,
			where_to_watch       TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_shows_title ON shows(title);
	`)
	if err != nil {
		return fmt.Errorf("creating shows table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id            TEXT PRIMARY KEY,
			name          TEXT NOT NULL,
			email         TEXT NOT NULL DEFAULT '',
			picture       TEXT NOT NULL DEFAULT '',
			password_hash TEXT NOT NULL DEFAULT '',
			date_joined   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);
	`)
	if err != nil {
		return fmt.Errorf("creating users table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS user_shows (
			user_id  TEXT NOT NULL REFERENCES users(id),
			show_id  TEXT NOT NULL,
			status   TEXT NOT NULL CHECK (status IN ('watchlist', 'watched')),
			added_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (user_id, show_id)
		);
		CREATE INDEX IF NOT EXISTS idx_user_shows_status ON user_shows(user_id, status);
	`)
	if err != nil {
		return fmt.Errorf("creating user_shows table: %w", err)
	}

	return nil
}

// joinEnums flattens an enum slice to the stored space-joined form.
// Enum names never contain spaces, so the encoding is unambiguous.
func joinEnums[T ~string](vals []T) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = string(v)
	}
	return strings.Join(parts, " ")
}

func splitGenres(s string) []model.Genre {
	if s == "" {
		return nil
	}
	parts := strings.Fields(s)
	out := make([]model.Genre, len(parts))
	for i, p := range parts {
		out[i] = model.Genre(p)
	}
	return out
}

func splitPlatforms(s string) []model.Platform {
	if s == "" {
		return nil
	}
	parts := strings.Fields(s)
	out := make([]model.Platform, len(parts))
	for i, p := range parts {
		out[i] = model.Platform(p)
	}
	return out
}
