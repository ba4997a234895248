package sessionsdk

import "time"

// Refresh reason strings reported by the refresh endpoint. The set is closed;
// clients must treat unknown values as "not_needed".
const (
	ReasonRotated                  = "rotated"
	ReasonNotNeeded                = "not_needed"
	ReasonNoCookie                 = "no_cookie"
	ReasonInvalidOrMissingUser     = "invalid_or_missing_user"
	ReasonAbsoluteLifetimeExceeded = "absolute_lifetime_exceeded"
)

// ErrorResponse is the standard error body for all endpoints.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// SignupRequest creates a new account.
type SignupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest authenticates an existing account.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SessionResponse is returned by signup, login and demo: the session cookie
// rides along on the response, this body just describes it.
type SessionResponse struct {
	UserID    string    `json:"userId"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// RefreshResponse is the refresh endpoint's JSON body. Optional fields are
// zero when the server has nothing to report for them.
type RefreshResponse struct {
	Refreshed bool   `json:"refreshed"`
	Reason    string `json:"reason"`

	TimeLeftSec int64 `json:"timeLeftSec,omitempty"`
	AgeSec      int64 `json:"ageSec,omitempty"`
	MaxSec      int64 `json:"maxSec,omitempty"`

	UserID string `json:"userId,omitempty"`
	Role   string `json:"role,omitempty"`
}

// SessionEnded reports whether the server declared the session over for good,
// which is the one outcome that requires the client to act.
func (r *RefreshResponse) SessionEnded() bool {
	return r.Reason == ReasonAbsoluteLifetimeExceeded
}

// UserInfoResponse describes the authenticated user.
type UserInfoResponse struct {
	UserID    string    `json:"userId"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// UsersResponse is the admin user listing.
type UsersResponse struct {
	Users []UserInfoResponse `json:"users"`
}

// HealthChecks reports per-dependency status on the readiness probe.
type HealthChecks struct {
	Database string `json:"database"`
}

// HealthResponse is the body of the liveness and readiness probes.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}
