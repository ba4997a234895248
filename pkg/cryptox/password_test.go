package cryptox_test

import (
	"strings"
	"testing"

	"github.com/foliodesk/folio/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := cryptox.HashPassword("correct horse battery staple")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"))

	require.NoError(t, cryptox.VerifyPassword("correct horse battery staple", hash))

	err = cryptox.VerifyPassword("wrong password", hash)
	require.ErrorIs(t, err, cryptox.ErrPasswordMismatch)
}

func TestHashIsSalted(t *testing.T) {
	h1, err := cryptox.HashPassword("same password")
	require.NoError(t, err)
	h2, err := cryptox.HashPassword("same password")
	require.NoError(t, err)

	require.NotEqual(t, h1, h2)
	require.NoError(t, cryptox.VerifyPassword("same password", h1))
	require.NoError(t, cryptox.VerifyPassword("same password", h2))
}

func TestVerifyRejectsMangledHash(t *testing.T) {
	for _, hash := range []string{
		"",
		"$argon2id$v=19$m=65536,t=3,p=2$abc", // too few parts
		"$bcrypt$v=19$m=65536,t=3,p=2$c2FsdA$aGFzaA",
		"$argon2id$v=18$m=65536,t=3,p=2$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=65536,t=3,p=2$!!!$aGFzaA", // bad salt encoding
	} {
		err := cryptox.VerifyPassword("password", hash)
		require.Error(t, err, "hash %q", hash)
		require.NotErrorIs(t, err, cryptox.ErrPasswordMismatch)
	}
}
