package authz_test

import (
	"context"
	"crypto/rand"
	"testing"
	"time"

	"github.com/foliodesk/folio/internal/session/authz"
	"github.com/foliodesk/folio/internal/session/domain"
	"github.com/foliodesk/folio/internal/session/service"
	"github.com/foliodesk/folio/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	token string
	has   bool
}

func (m *memStore) Get() (string, bool, error) { return m.token, m.has, nil }

func (m *memStore) Set(token string, _ time.Time) error {
	m.token = token
	m.has = true
	return nil
}

func (m *memStore) Delete() error {
	m.token = ""
	m.has = false
	return nil
}

func newGuard(t *testing.T) (*authz.Guard, *service.Sessions) {
	t.Helper()

	secret := make([]byte, 48)
	_, err := rand.Read(secret)
	require.NoError(t, err)

	codec, err := jwtx.NewCodec(jwtx.CodecOptions{Secret: secret})
	require.NoError(t, err)

	sessions := &service.Sessions{
		Codec: codec,
		Policy: domain.LifecyclePolicy{
			Duration:         30 * time.Minute,
			RefreshThreshold: 10 * time.Minute,
			MaxLifetime:      12 * time.Hour,
		},
	}

	return &authz.Guard{
		Sessions:      sessions,
		LoginPath:     "/login",
		DashboardPath: "/dashboard",
	}, sessions
}

func login(t *testing.T, sessions *service.Sessions, store *memStore, role domain.Role) {
	t.Helper()
	_, err := sessions.Establish(context.Background(), store, "u1", role)
	require.NoError(t, err)
}

func TestAuthorizePublic(t *testing.T) {
	guard, _ := newGuard(t)

	out := guard.Authorize(context.Background(), &memStore{}, authz.Public())
	require.True(t, out.Allow)
}

func TestAuthorizeProtected(t *testing.T) {
	guard, sessions := newGuard(t)
	ctx := context.Background()

	t.Run("no cookie redirects to login", func(t *testing.T) {
		out := guard.Authorize(ctx, &memStore{}, authz.Protected())
		require.False(t, out.Allow)
		require.Equal(t, authz.ReasonNotLoggedIn, out.Reason)
		require.Equal(t, "/login", out.Target)
	})

	t.Run("tampered token redirects to login with token reason", func(t *testing.T) {
		store := &memStore{token: "garbage", has: true}
		out := guard.Authorize(ctx, store, authz.Protected())
		require.False(t, out.Allow)
		require.Equal(t, authz.ReasonInvalidToken, out.Reason)
		require.Equal(t, "/login", out.Target)
		// Cleanup happened.
		require.False(t, store.has)
	})

	t.Run("valid session proceeds", func(t *testing.T) {
		store := &memStore{}
		login(t, sessions, store, domain.RoleUser)

		out := guard.Authorize(ctx, store, authz.Protected())
		require.True(t, out.Allow)
		require.Equal(t, "u1", out.Session.UserID)
	})
}

func TestAuthorizeAdmin(t *testing.T) {
	guard, sessions := newGuard(t)
	ctx := context.Background()

	t.Run("non-admin session redirects to dashboard", func(t *testing.T) {
		store := &memStore{}
		login(t, sessions, store, domain.RoleUser)

		out := guard.Authorize(ctx, store, authz.Admin())
		require.False(t, out.Allow)
		require.Equal(t, authz.ReasonRoleInsufficient, out.Reason)
		require.Equal(t, "/dashboard", out.Target)
		// The session itself stays live.
		require.True(t, store.has)
	})

	t.Run("no cookie redirects to login", func(t *testing.T) {
		out := guard.Authorize(ctx, &memStore{}, authz.Admin())
		require.False(t, out.Allow)
		require.Equal(t, authz.ReasonNotLoggedIn, out.Reason)
		require.Equal(t, "/login", out.Target)
	})

	t.Run("admin session proceeds", func(t *testing.T) {
		store := &memStore{}
		login(t, sessions, store, domain.RoleAdmin)

		out := guard.Authorize(ctx, store, authz.Admin())
		require.True(t, out.Allow)
	})
}

func TestAuthorizeMisconfiguredRouteFailsClosed(t *testing.T) {
	guard, sessions := newGuard(t)
	ctx := context.Background()

	store := &memStore{}
	login(t, sessions, store, domain.RoleAdmin)

	out := guard.Authorize(ctx, store, authz.Classification{Public: true, Admin: true})
	require.False(t, out.Allow)
	require.Equal(t, authz.ReasonRouteMisconfigured, out.Reason)
	require.Equal(t, "/login", out.Target)
}
