package service_test

import (
	"context"
	"testing"

	"github.com/foliodesk/folio/internal/session/domain"
	"github.com/foliodesk/folio/internal/session/service"
	"github.com/foliodesk/folio/internal/session/store/drivers/sqlite"
	"github.com/stretchr/testify/require"
)

func newUsers(t *testing.T) *service.Users {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	return &service.Users{Store: st}
}

func TestSignupAndLogin(t *testing.T) {
	users := newUsers(t)
	ctx := context.Background()

	created, err := users.Signup(ctx, "alice", "a-decent-password")
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Equal(t, domain.RoleUser, created.Role)
	require.NotEqual(t, "a-decent-password", created.PasswordHash)

	t.Run("correct password", func(t *testing.T) {
		user, err := users.Login(ctx, "alice", "a-decent-password")
		require.NoError(t, err)
		require.Equal(t, created.ID, user.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := users.Login(ctx, "alice", "wrong")
		require.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("unknown user gets the same error", func(t *testing.T) {
		_, err := users.Login(ctx, "mallory", "whatever")
		require.ErrorIs(t, err, service.ErrInvalidCredentials)
	})
}

func TestSignupValidation(t *testing.T) {
	users := newUsers(t)
	ctx := context.Background()

	t.Run("bad usernames", func(t *testing.T) {
		for _, name := range []string{"", "ab", "has space", "way-too-long-username-over-thirty-two-chars"} {
			_, err := users.Signup(ctx, name, "a-decent-password")
			require.ErrorIs(t, err, service.ErrInvalidUsername, "username %q", name)
		}
	})

	t.Run("short password", func(t *testing.T) {
		_, err := users.Signup(ctx, "bob", "short")
		require.ErrorIs(t, err, service.ErrInvalidPassword)
	})

	t.Run("duplicate username", func(t *testing.T) {
		_, err := users.Signup(ctx, "carol", "a-decent-password")
		require.NoError(t, err)

		_, err = users.Signup(ctx, "carol", "another-password")
		require.ErrorIs(t, err, service.ErrUsernameTaken)
	})
}

func TestDemoUser(t *testing.T) {
	users := newUsers(t)
	ctx := context.Background()

	first, err := users.Demo(ctx)
	require.NoError(t, err)
	require.Equal(t, domain.RoleGuest, first.Role)
	require.Equal(t, "demo", first.Username)

	// Second call reuses the same account.
	second, err := users.Demo(ctx)
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
}
