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

// Compile-time check that *DB implements repository.UserRepository.
var _ repository.UserRepository = (*DB)(nil)

// CreateUser inserts a new user with empty lists.
//
// ID handling: OAuth sign-ins arrive with the provider's subject already
// set as the ID; explicit registrations arrive with an empty ID and get a
// generated UUID. DateJoined is the server's clock, not the client's.
func (db *DB) CreateUser(ctx context.Context, user *model.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.DateJoined = time.Now().UTC()
	user.Watchlist = []string{}
	user.Watched = []string{}

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO users (id, name, email, picture, password_hash, date_joined)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		user.ID, user.Name, user.Email, user.Picture, user.PasswordHash, user.DateJoined,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating user: %w", err)
	}

	return nil
}

// GetUserByID retrieves a user and both membership sets.
func (db *DB) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	u, err := db.getUserRow(ctx, `WHERE id = ?`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("user", id)
		}
		return nil, fmt.Errorf("sqlite: getting user %s: %w", id, err)
	}

	if err := db.fillSets(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// GetUserByEmail retrieves a user by email (used by local password login).
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	u, err := db.getUserRow(ctx, `WHERE email = ?`, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("user", email)
		}
		return nil, fmt.Errorf("sqlite: getting user by email: %w", err)
	}

	if err := db.fillSets(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Upsert creates the user on first sign-in and refreshes the profile
// fields on later ones, keyed by ID (the OAuth subject). date_joined and
// password_hash are only written on insert.
func (db *DB) Upsert(ctx context.Context, user *model.User) error {
	if user.ID == "" {
		return apperror.MissingID("userId")
	}
	now := time.Now().UTC()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO users (id, name, email, picture, password_hash, date_joined)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			name    = excluded.name,
			email   = excluded.email,
			picture = excluded.picture`,
		user.ID, user.Name, user.Email, user.Picture, user.PasswordHash, now,
	)
	if err != nil {
		return fmt.Errorf("sqlite: upserting user %s: %w", user.ID, err)
	}

	// Read the canonical row back so the caller sees the original
	// date_joined for returning users, plus current list membership.
	stored, err := db.GetUserByID(ctx, user.ID)
	if err != nil {
		return err
	}
	*user = *stored
	return nil
}

// getUserRow fetches the scalar columns of one user.
func (db *DB) getUserRow(ctx context.Context, where string, arg any) (*model.User, error) {
	var u model.User
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, name, email, picture, password_hash, date_joined
		 FROM users `+where, arg,
	).Scan(&u.ID, &u.Name, &u.Email, &u.Picture, &u.PasswordHash, &u.DateJoined)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// fillSets populates Watchlist and Watched from the membership table.
func (db *DB) fillSets(ctx context.Context, u *model.User) error {
	watchlist, watched, err := db.SetsForUser(ctx, u.ID)
	if err != nil {
		return err
	}
	u.Watchlist = watchlist
	u.Watched = watched
	return nil
}
