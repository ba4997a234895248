package domain_test

import (
	"testing"
	"time"

	"github.com/foliodesk/folio/internal/session/domain"
	"github.com/stretchr/testify/require"
)

var testPolicy = domain.LifecyclePolicy{
	Duration:         30 * time.Minute,
	RefreshThreshold: 10 * time.Minute,
	MaxLifetime:      12 * time.Hour,
}

func sessionAt(start time.Time) domain.Session {
	return domain.Session{
		UserID:    "u1",
		Role:      domain.RoleUser,
		StartedAt: start,
		ExpiresAt: start.Add(testPolicy.Duration),
	}
}

func TestEvaluate(t *testing.T) {
	start := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		sess   domain.Session
		now    time.Time
		kind   domain.DecisionKind
		reason domain.TerminateReason
	}{
		{
			name: "fresh session continues",
			sess: sessionAt(start),
			now:  start.Add(time.Minute),
			kind: domain.DecisionContinue,
		},
		{
			name: "just above threshold continues",
			sess: sessionAt(start),
			now:  start.Add(testPolicy.Duration - testPolicy.RefreshThreshold - time.Second),
			kind: domain.DecisionContinue,
		},
		{
			name: "exactly at threshold rotates",
			sess: sessionAt(start),
			now:  start.Add(testPolicy.Duration - testPolicy.RefreshThreshold),
			kind: domain.DecisionRotate,
		},
		{
			name: "inside threshold rotates",
			sess: sessionAt(start),
			now:  start.Add(testPolicy.Duration - time.Minute),
			kind: domain.DecisionRotate,
		},
		{
			name:   "exactly at expiry terminates",
			sess:   sessionAt(start),
			now:    start.Add(testPolicy.Duration),
			kind:   domain.DecisionTerminate,
			reason: domain.TerminateExpired,
		},
		{
			name:   "past expiry terminates",
			sess:   sessionAt(start),
			now:    start.Add(testPolicy.Duration + time.Hour),
			kind:   domain.DecisionTerminate,
			reason: domain.TerminateExpired,
		},
		{
			name: "rotated session near absolute limit",
			sess: domain.Session{
				UserID:    "u1",
				Role:      domain.RoleUser,
				StartedAt: start,
				ExpiresAt: start.Add(testPolicy.MaxLifetime).Add(time.Hour),
			},
			now:    start.Add(testPolicy.MaxLifetime),
			kind:   domain.DecisionTerminate,
			reason: domain.TerminateAbsoluteLimit,
		},
		{
			// Both absolutely exceeded and locally expired: the absolute
			// limit is the reported reason.
			name:   "absolute limit dominates expiry",
			sess:   sessionAt(start),
			now:    start.Add(testPolicy.MaxLifetime + time.Hour),
			kind:   domain.DecisionTerminate,
			reason: domain.TerminateAbsoluteLimit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := testPolicy.Evaluate(tt.sess, tt.now)
			require.Equal(t, tt.kind, got.Kind)

			switch tt.kind {
			case domain.DecisionTerminate:
				require.Equal(t, tt.reason, got.Reason)
				require.Equal(t, tt.sess.Age(tt.now), got.Age)
				require.Equal(t, testPolicy.MaxLifetime, got.Max)
			default:
				require.Equal(t, tt.sess.TimeLeft(tt.now), got.TimeLeft)
			}
		})
	}
}

func TestEvaluateIsDeterministic(t *testing.T) {
	start := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	sess := sessionAt(start)
	now := start.Add(25 * time.Minute)

	first := testPolicy.Evaluate(sess, now)
	for range 10 {
		require.Equal(t, first, testPolicy.Evaluate(sess, now))
	}
}

func TestParseRole(t *testing.T) {
	for _, ok := range []string{"admin", "user", "guest"} {
		role, err := domain.ParseRole(ok)
		require.NoError(t, err)
		require.Equal(t, ok, role.String())
	}

	for _, bad := range []string{"", "root", "Admin", "superuser"} {
		_, err := domain.ParseRole(bad)
		require.ErrorIs(t, err, domain.ErrUnknownRole, "input %q", bad)
	}
}
