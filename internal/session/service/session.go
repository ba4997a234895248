package service

import (
	"context"
	"errors"
	"time"

	"github.com/foliodesk/folio/internal/session/domain"
	"github.com/foliodesk/folio/pkg/jwtx"
	"github.com/foliodesk/folio/pkg/slogx"
)

// SessionStore is the abstract read/write/delete view of the single session
// cookie. The HTTP layer supplies a per-request implementation; nothing in
// this package knows the transport is a cookie.
type SessionStore interface {
	Get() (token string, ok bool, err error)
	Set(token string, expiresAt time.Time) error
	Delete() error
}

// ReadStatus tags the outcome of decoding the current session. Callers need
// to tell these apart: they map to different user-facing reasons.
type ReadStatus int

const (
	// ReadOK: a live, valid session.
	ReadOK ReadStatus = iota
	// ReadNoSession: no cookie was presented (not an error).
	ReadNoSession
	// ReadDecodeFailed: a cookie was presented but the token did not
	// verify (bad signature, malformed, expired, iss/aud mismatch).
	ReadDecodeFailed
	// ReadInvalidClaims: the token verified but the claims are
	// semantically broken (unknown role, inconsistent timestamps).
	ReadInvalidClaims
	// ReadTerminated: the token verified but the lifecycle policy says the
	// session is over (absolute lifetime exceeded, or expired inside the
	// verifier's leeway window).
	ReadTerminated
)

func (s ReadStatus) String() string {
	switch s {
	case ReadOK:
		return "ok"
	case ReadNoSession:
		return "no_session"
	case ReadDecodeFailed:
		return "decode_failed"
	case ReadInvalidClaims:
		return "invalid_claims"
	case ReadTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// ReadResult is what ReadSession hands back. Session and Decision are only
// meaningful when Status is ReadOK, except that a ReadTerminated result
// carries the Decision that ended the session.
type ReadResult struct {
	Status   ReadStatus
	Session  domain.Session
	Decision domain.Decision
}

// RotateReason is the closed set of rotation outcomes.
type RotateReason int

const (
	RotateRotated RotateReason = iota
	RotateNotNeeded
	RotateNoCookie
	RotateInvalidToken
	RotateSessionExpired
	RotateAbsoluteLimit
)

// Wire returns the refresh-endpoint reason string. The wire set is closed;
// an expired session and a broken token both read as
// "invalid_or_missing_user" externally, even though they stay distinct in
// logs.
func (r RotateReason) Wire() string {
	switch r {
	case RotateRotated:
		return "rotated"
	case RotateNotNeeded:
		return "not_needed"
	case RotateNoCookie:
		return "no_cookie"
	case RotateInvalidToken, RotateSessionExpired:
		return "invalid_or_missing_user"
	case RotateAbsoluteLimit:
		return "absolute_lifetime_exceeded"
	default:
		return "invalid_or_missing_user"
	}
}

// RotateResult reports what RotateSession did.
type RotateResult struct {
	Refreshed bool
	Reason    RotateReason

	// TimeLeft is set for rotated / not-needed outcomes.
	TimeLeft time.Duration

	// Age and Max are set when the absolute limit ended the session.
	Age time.Duration
	Max time.Duration

	// UserID and Role are set whenever the token decoded, whatever the
	// outcome.
	UserID string
	Role   domain.Role
}

// Sessions orchestrates codec, lifecycle policy and session store. It holds
// no per-session state: every method is a pure function of the presented
// token and the clock, which is what makes concurrent requests bearing the
// same token harmless.
type Sessions struct {
	Codec  *jwtx.Codec
	Policy domain.LifecyclePolicy

	// Now is the clock. Defaults to time.Now; tests override it.
	Now func() time.Time
}

func (s *Sessions) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// decode verifies the raw token and lifts it into a domain session.
func (s *Sessions) decode(token string) (domain.Session, ReadStatus) {
	claims, err := s.Codec.Verify(token)
	if err != nil {
		if errors.Is(err, jwtx.ErrInvalidClaim) {
			return domain.Session{}, ReadInvalidClaims
		}
		return domain.Session{}, ReadDecodeFailed
	}

	role, err := domain.ParseRole(claims.Role)
	if err != nil {
		return domain.Session{}, ReadInvalidClaims
	}

	return domain.Session{
		UserID:    claims.Subject,
		Role:      role,
		StartedAt: time.Unix(claims.SessionStartAt, 0).UTC(),
		ExpiresAt: claims.ExpiresAt.Time.UTC(),
	}, ReadOK
}

// cleanup deletes the cookie after any non-OK decode. One rule, every call
// site: a cookie that failed to decode for any reason is dead weight and
// gets removed.
func (s *Sessions) cleanup(ctx context.Context, store SessionStore) {
	if err := store.Delete(); err != nil {
		slogx.FromContext(ctx).Warn("session cleanup failed", "err", err)
	}
}

// Read decodes the current session and evaluates the lifecycle policy.
// Transport failures are logged and reported as "no session": a broken
// cookie read must degrade to logged-out, never to a 500.
func (s *Sessions) Read(ctx context.Context, store SessionStore) ReadResult {
	log := slogx.FromContext(ctx)

	token, ok, err := store.Get()
	if err != nil {
		log.Warn("session cookie read failed", "err", err)
		return ReadResult{Status: ReadNoSession}
	}
	if !ok {
		return ReadResult{Status: ReadNoSession}
	}

	sess, status := s.decode(token)
	if status != ReadOK {
		log.Info("session decode failed", "status", status.String())
		s.cleanup(ctx, store)
		return ReadResult{Status: status}
	}

	decision := s.Policy.Evaluate(sess, s.now())
	if decision.Kind == domain.DecisionTerminate {
		log.Info("session terminated on read",
			"user_id", sess.UserID,
			"reason", decision.Reason.String(),
		)
		s.cleanup(ctx, store)
		return ReadResult{Status: ReadTerminated, Session: sess, Decision: decision}
	}

	return ReadResult{Status: ReadOK, Session: sess, Decision: decision}
}

// Establish signs a fresh token for (userID, role) and stores it. The
// session start time is now: this is the anchor the absolute lifetime is
// measured from, and nothing ever moves it.
func (s *Sessions) Establish(ctx context.Context, store SessionStore, userID string, role domain.Role) (domain.Session, error) {
	now := s.now()

	claims := jwtx.NewSessionClaims(
		userID, role.String(),
		now, now,
		s.Policy.Duration,
		s.Codec.Issuer(), s.Codec.Audience(),
	)

	token, err := s.Codec.Sign(claims)
	if err != nil {
		return domain.Session{}, err
	}

	expiresAt := now.Add(s.Policy.Duration)
	if err := store.Set(token, expiresAt); err != nil {
		return domain.Session{}, err
	}

	slogx.FromContext(ctx).Info("session established",
		"user_id", userID,
		"role", role.String(),
		"expires_at", expiresAt,
	)

	return domain.Session{
		UserID:    userID,
		Role:      role,
		StartedAt: now,
		ExpiresAt: expiresAt,
	}, nil
}

// Rotate re-issues the current token with a fresh expiry if the lifecycle
// policy calls for it. The original session start time is preserved: a
// rotation extends the token, never the session.
func (s *Sessions) Rotate(ctx context.Context, store SessionStore) RotateResult {
	log := slogx.FromContext(ctx)

	token, ok, err := store.Get()
	if err != nil {
		log.Warn("session cookie read failed", "err", err)
		return RotateResult{Reason: RotateNoCookie}
	}
	if !ok {
		return RotateResult{Reason: RotateNoCookie}
	}

	sess, status := s.decode(token)
	if status != ReadOK {
		log.Info("rotate: session decode failed", "status", status.String())
		s.cleanup(ctx, store)
		return RotateResult{Reason: RotateInvalidToken}
	}

	now := s.now()
	decision := s.Policy.Evaluate(sess, now)

	switch decision.Kind {
	case domain.DecisionTerminate:
		s.cleanup(ctx, store)

		reason := RotateSessionExpired
		if decision.Reason == domain.TerminateAbsoluteLimit {
			reason = RotateAbsoluteLimit
		}

		log.Info("rotate: session terminated",
			"user_id", sess.UserID,
			"reason", decision.Reason.String(),
			"age", decision.Age,
			"max", decision.Max,
		)

		return RotateResult{
			Reason: reason,
			Age:    decision.Age,
			Max:    decision.Max,
			UserID: sess.UserID,
			Role:   sess.Role,
		}

	case domain.DecisionRotate:
		claims := jwtx.NewSessionClaims(
			sess.UserID, sess.Role.String(),
			sess.StartedAt, now,
			s.Policy.Duration,
			s.Codec.Issuer(), s.Codec.Audience(),
		)

		signed, err := s.Codec.Sign(claims)
		if err != nil {
			// A session that fails to re-sign is still valid until its own
			// expiry; report not-needed rather than killing it.
			log.Error("rotate: re-sign failed", "user_id", sess.UserID, "err", err)
			return RotateResult{
				Reason:   RotateNotNeeded,
				TimeLeft: decision.TimeLeft,
				UserID:   sess.UserID,
				Role:     sess.Role,
			}
		}

		expiresAt := now.Add(s.Policy.Duration)
		if err := store.Set(signed, expiresAt); err != nil {
			log.Error("rotate: cookie write failed", "user_id", sess.UserID, "err", err)
			return RotateResult{
				Reason:   RotateNotNeeded,
				TimeLeft: decision.TimeLeft,
				UserID:   sess.UserID,
				Role:     sess.Role,
			}
		}

		log.Info("session rotated",
			"user_id", sess.UserID,
			"expires_at", expiresAt,
		)

		return RotateResult{
			Refreshed: true,
			Reason:    RotateRotated,
			TimeLeft:  s.Policy.Duration,
			UserID:    sess.UserID,
			Role:      sess.Role,
		}

	default:
		return RotateResult{
			Reason:   RotateNotNeeded,
			TimeLeft: decision.TimeLeft,
			UserID:   sess.UserID,
			Role:     sess.Role,
		}
	}
}

// Clear deletes the session cookie unconditionally. Idempotent.
func (s *Sessions) Clear(ctx context.Context, store SessionStore) {
	s.cleanup(ctx, store)
}
