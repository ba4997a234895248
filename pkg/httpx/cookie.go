package httpx

import (
	"errors"
	"net/http"
	"time"
)

// SessionCookie adapts one request/response pair to a get/set/delete view of
// a single named cookie. The session use cases consume this through their
// SessionStore interface; this file is the only place that knows the
// transport is an HTTP cookie.
type SessionCookie struct {
	name   string
	secure bool
	w      http.ResponseWriter
	r      *http.Request
}

// NewSessionCookie builds the adapter for one request. secure should be true
// everywhere except local development.
func NewSessionCookie(name string, secure bool, w http.ResponseWriter, r *http.Request) *SessionCookie {
	return &SessionCookie{name: name, secure: secure, w: w, r: r}
}

// Get returns the raw token and whether the cookie was present. A missing
// cookie is not an error.
func (c *SessionCookie) Get() (string, bool, error) {
	cookie, err := c.r.Cookie(c.name)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return "", false, nil
		}
		return "", false, err
	}
	return cookie.Value, true, nil
}

// Set writes the session cookie. Expiry mirrors the token's own expiry so
// the browser drops the cookie when the token dies anyway.
func (c *SessionCookie) Set(token string, expiresAt time.Time) error {
	http.SetCookie(c.w, &http.Cookie{
		Name:     c.name,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Delete expires the cookie immediately. Idempotent.
func (c *SessionCookie) Delete() error {
	http.SetCookie(c.w, &http.Cookie{
		Name:     c.name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
