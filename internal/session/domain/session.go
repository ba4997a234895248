package domain

import (
	"errors"
	"time"
)

// Role is the closed set of user roles carried in the session token.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
	RoleGuest Role = "guest"
)

// ErrUnknownRole reports a role string outside the closed set.
var ErrUnknownRole = errors.New("domain: unknown role")

// ParseRole validates a role string coming off the wire.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleUser, RoleGuest:
		return Role(s), nil
	default:
		return "", ErrUnknownRole
	}
}

func (r Role) String() string { return string(r) }

// Session is the decoded, validated in-memory form of a session token.
// There is no server-side record behind it: the token is the session, and
// everything here was either signed into the token or derived from the
// clock at read time.
type Session struct {
	UserID string
	Role   Role

	// StartedAt is the time of original authentication, preserved
	// unchanged across rotations. Anchor for the absolute lifetime.
	StartedAt time.Time

	// ExpiresAt is the current token expiry, updated on every rotation.
	ExpiresAt time.Time
}

// Age is how long ago this logical session was first established.
func (s Session) Age(now time.Time) time.Duration {
	return now.Sub(s.StartedAt)
}

// TimeLeft is the remaining validity of the current token. Negative once
// expired.
func (s Session) TimeLeft(now time.Time) time.Duration {
	return s.ExpiresAt.Sub(now)
}
