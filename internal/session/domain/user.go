package domain

import "time"

// User is a member of the user directory. The session core only reads the
// ID, password hash and role; the rest is bookkeeping.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
