package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the signed session payload. The token is the session: there is
// no server-side record, so everything the lifecycle policy needs has to be
// in here.
type Claims struct {
	jwt.RegisteredClaims

	// Role of the authenticated user ("admin", "user", "guest").
	Role string `json:"role"`

	// SessionStartAt is the unix time of the original authentication.
	// It is preserved unchanged across rotations and anchors the absolute
	// session lifetime.
	SessionStartAt int64 `json:"sst"`
}

// NewSessionClaims builds claims for a session starting (or continuing from)
// startAt and expiring at now+ttl. For a fresh login startAt equals now; a
// rotation passes the original start time through untouched.
func NewSessionClaims(
	subject, role string,
	startAt, now time.Time,
	ttl time.Duration,
	issuer, audience string,
) Claims {
	rc := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	if issuer != "" {
		rc.Issuer = issuer
	}
	if audience != "" {
		rc.Audience = jwt.ClaimStrings{audience}
	}

	return Claims{
		RegisteredClaims: rc,
		Role:             role,
		SessionStartAt:   startAt.Unix(),
	}
}

// validateShape checks the session-specific invariants that the generic JWT
// validation does not cover: sub and role present, and
// sst <= iat <= exp.
func (c Claims) validateShape() error {
	if c.Subject == "" || c.Role == "" {
		return ErrInvalidClaim
	}
	if c.SessionStartAt <= 0 || c.IssuedAt == nil || c.ExpiresAt == nil {
		return ErrInvalidClaim
	}

	iat := c.IssuedAt.Unix()
	if c.SessionStartAt > iat || iat > c.ExpiresAt.Unix() {
		return ErrInvalidClaim
	}

	return nil
}
