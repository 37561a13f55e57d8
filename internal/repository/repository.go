// Package repository declares the storage interfaces the service layer
// depends on. The concrete SQLite implementation lives in repository/sqlite;
// tests substitute in-memory fakes. Services only ever see these interfaces.
package repository

import (
	"context"

	"github.com/aminah/showtrack/internal/model"
)

// ListName names one of a user's two membership sets.
type ListName string

const (
	Watchlist ListName = "watchlist"
	Watched   ListName = "watched"
)

// Valid reports whether the name is one of the two known sets.
func (l ListName) Valid() bool {
	return l == Watchlist || l == Watched
}

// ShowRepository is the catalog store surface for show records.
// GetByTitle matches the exact title and may return several records
// (remakes share a title). List returns the full catalog.
type ShowRepository interface {
	Create(ctx context.Context, show *model.Show) error
	GetByID(ctx context.Context, id string) (*model.Show, error)
	GetByTitle(ctx context.Context, title string) ([]model.Show, error)
	List(ctx context.Context) ([]model.Show, error)
	Update(ctx context.Context, show *model.Show) error
	Delete(ctx context.Context, id string) error
}

// UserRepository is the catalog store surface for user records.
// Users are never deleted by the application.
type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	// Upsert creates the user on first sign-in and refreshes profile
	// fields (name, email, picture) on subsequent sign-ins, keyed by ID.
	Upsert(ctx context.Context, user *model.User) error
}

// MembershipRepository manages the per-(user, show) list membership.
//
// Both mutations are atomic and idempotent: adding a pair already in the
// target set, or removing a pair not in it, is a no-op success. AddToSet
// MOVES the pair when it currently belongs to the other set — a single
// statement, so the "in both sets" state can never be observed or stored.
type MembershipRepository interface {
	AddToSet(ctx context.Context, userID string, list ListName, showID string) error
	RemoveFromSet(ctx context.Context, userID string, list ListName, showID string) error
	// SetsForUser returns both membership sets in insertion order.
	SetsForUser(ctx context.Context, userID string) (watchlist, watched []string, err error)
	// ShowsInSet resolves a set to full show records, skipping ids whose
	// show has since been deleted.
	ShowsInSet(ctx context.Context, userID string, list ListName) ([]model.Show, error)
}
