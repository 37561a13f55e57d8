// Package model defines the data structures used throughout the application.
package model

import "time"

// User represents an account and its two show lists.
//
// WHY ID string (and not a numeric key)?
// Google OAuth is the primary identity provider. Google's stable "sub" claim
// is used directly as the user ID for signed-in users, so the external auth
// subject and our primary key are the same value. Users created by explicit
// registration get a generated UUID instead — both are opaque strings to the
// rest of the app.
//
// Watchlist and Watched hold show IDs only (weak references). They are
// derived from the membership table on every read and are mutually
// exclusive: a show ID never appears in both at once. Deleting a show does
// NOT clean these up — an orphaned ID may linger until the next toggle.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`   // may be empty (hidden by the provider)
	Picture      string    `json:"picture"` // profile image URL, may be empty
	Watchlist    []string  `json:"watchlist"`
	Watched      []string  `json:"watched"`
	DateJoined   time.Time `json:"dateJoined"`
	PasswordHash string    `json:"-"` // bcrypt hash for local accounts, never serialized
}
