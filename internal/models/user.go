// Package models defines the data types persisted by taskpad.
package models

// User is a registered account in the local user directory. Users are
// immutable after creation; there is no update operation.
type User struct {
	// ID is a globally unique identifier (uuid).
	ID string `json:"id"`

	// Username is unique across the directory, trimmed, non-empty.
	Username string `json:"username"`

	// Email is unique across the directory, trimmed, must contain '@'.
	Email string `json:"email"`

	// CreatedAt is the creation time in epoch milliseconds.
	CreatedAt int64 `json:"createdAt"`
}

// Session is the identity currently treated as logged in: a denormalized
// subset of the User it mirrors. At most one session exists at a time.
type Session struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// SessionFor builds the session mirroring u.
func SessionFor(u User) *Session {
	return &Session{ID: u.ID, Username: u.Username, Email: u.Email}
}
