package jwtx_test

import (
	"crypto/rand"
	"testing"
	"time"

	"github.com/foliodesk/folio/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func testSecret(t *testing.T) []byte {
	t.Helper()
	secret := make([]byte, 48)
	_, err := rand.Read(secret)
	require.NoError(t, err)
	return secret
}

func newTestCodec(t *testing.T, issuer, audience string) *jwtx.Codec {
	t.Helper()
	codec, err := jwtx.NewCodec(jwtx.CodecOptions{
		Secret:   testSecret(t),
		Issuer:   issuer,
		Audience: audience,
	})
	require.NoError(t, err)
	return codec
}

func TestNewCodecRejectsWeakSecret(t *testing.T) {
	_, err := jwtx.NewCodec(jwtx.CodecOptions{Secret: []byte("too-short")})
	require.ErrorIs(t, err, jwtx.ErrWeakSecret)

	_, err = jwtx.NewCodec(jwtx.CodecOptions{Secret: nil})
	require.ErrorIs(t, err, jwtx.ErrWeakSecret)

	// 32 bytes exactly is acceptable.
	_, err = jwtx.NewCodec(jwtx.CodecOptions{Secret: make([]byte, 32)})
	require.NoError(t, err)
}

func TestSignVerifyRoundTrip(t *testing.T) {
	codec := newTestCodec(t, "folio", "folio-app")

	now := time.Now().UTC().Truncate(time.Second)
	start := now.Add(-10 * time.Minute)
	claims := jwtx.NewSessionClaims("u1", "user", start, now, 30*time.Minute, "folio", "folio-app")

	token, err := codec.Sign(claims)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsed, err := codec.Verify(token)
	require.NoError(t, err)

	require.Equal(t, "u1", parsed.Subject)
	require.Equal(t, "user", parsed.Role)
	require.Equal(t, start.Unix(), parsed.SessionStartAt)
	require.Equal(t, now.Unix(), parsed.IssuedAt.Unix())
	require.Equal(t, now.Add(30*time.Minute).Unix(), parsed.ExpiresAt.Unix())
	require.Equal(t, "folio", parsed.Issuer)
	require.Contains(t, parsed.Audience, "folio-app")
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	codec := newTestCodec(t, "", "")

	now := time.Now().UTC()
	claims := jwtx.NewSessionClaims("u1", "user", now, now, time.Hour, "", "")
	token, err := codec.Sign(claims)
	require.NoError(t, err)

	// Flip a character in the signature segment.
	tampered := token[:len(token)-2] + "xx"
	_, err = codec.Verify(tampered)
	require.Error(t, err)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	codecA := newTestCodec(t, "", "")
	codecB := newTestCodec(t, "", "")

	now := time.Now().UTC()
	token, err := codecA.Sign(jwtx.NewSessionClaims("u1", "user", now, now, time.Hour, "", ""))
	require.NoError(t, err)

	_, err = codecB.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrInvalidSig)
}

func TestVerifyRejectsExpired(t *testing.T) {
	codec := newTestCodec(t, "", "")

	now := time.Now().UTC().Add(-2 * time.Hour)
	token, err := codec.Sign(jwtx.NewSessionClaims("u1", "user", now, now, time.Hour, "", ""))
	require.NoError(t, err)

	_, err = codec.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrExpired)
}

func TestVerifyLeewayAbsorbsSkew(t *testing.T) {
	codec := newTestCodec(t, "", "")

	// Expired two seconds ago: inside the default leeway window.
	now := time.Now().UTC().Add(-time.Hour - 2*time.Second)
	token, err := codec.Sign(jwtx.NewSessionClaims("u1", "user", now, now, time.Hour, "", ""))
	require.NoError(t, err)

	_, err = codec.Verify(token)
	require.NoError(t, err)
}

func TestVerifyIssuerAudienceMismatch(t *testing.T) {
	secret := testSecret(t)

	issuerA, err := jwtx.NewCodec(jwtx.CodecOptions{Secret: secret, Issuer: "folio", Audience: "app-a"})
	require.NoError(t, err)
	issuerB, err := jwtx.NewCodec(jwtx.CodecOptions{Secret: secret, Issuer: "other", Audience: "app-a"})
	require.NoError(t, err)
	audB, err := jwtx.NewCodec(jwtx.CodecOptions{Secret: secret, Issuer: "folio", Audience: "app-b"})
	require.NoError(t, err)

	now := time.Now().UTC()
	token, err := issuerA.Sign(jwtx.NewSessionClaims("u1", "user", now, now, time.Hour, "folio", "app-a"))
	require.NoError(t, err)

	t.Run("same issuer and audience", func(t *testing.T) {
		_, err := issuerA.Verify(token)
		require.NoError(t, err)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		_, err := issuerB.Verify(token)
		require.ErrorIs(t, err, jwtx.ErrIssuer)
	})

	t.Run("wrong audience", func(t *testing.T) {
		_, err := audB.Verify(token)
		require.ErrorIs(t, err, jwtx.ErrAudience)
	})
}

func TestVerifyRejectsAlgConfusion(t *testing.T) {
	secret := testSecret(t)
	codec, err := jwtx.NewCodec(jwtx.CodecOptions{Secret: secret})
	require.NoError(t, err)

	now := time.Now().UTC()
	claims := jwtx.NewSessionClaims("u1", "user", now, now, time.Hour, "", "")

	t.Run("none algorithm", func(t *testing.T) {
		tok := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
		raw, err := tok.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = codec.Verify(raw)
		require.Error(t, err)
	})

	t.Run("hs512 not in allow-list", func(t *testing.T) {
		tok := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
		raw, err := tok.SignedString(secret)
		require.NoError(t, err)

		_, err = codec.Verify(raw)
		require.Error(t, err)
	})
}

func TestVerifyRejectsMalformed(t *testing.T) {
	codec := newTestCodec(t, "", "")

	for _, raw := range []string{"", "not-a-jwt", "a.b", "a.b.c.d"} {
		_, err := codec.Verify(raw)
		require.ErrorIs(t, err, jwtx.ErrMalformed, "input %q", raw)
	}
}

func TestSignRejectsBrokenClaims(t *testing.T) {
	codec := newTestCodec(t, "", "")
	now := time.Now().UTC()

	t.Run("empty subject", func(t *testing.T) {
		c := jwtx.NewSessionClaims("", "user", now, now, time.Hour, "", "")
		_, err := codec.Sign(c)
		require.ErrorIs(t, err, jwtx.ErrInvalidClaim)
	})

	t.Run("empty role", func(t *testing.T) {
		c := jwtx.NewSessionClaims("u1", "", now, now, time.Hour, "", "")
		_, err := codec.Sign(c)
		require.ErrorIs(t, err, jwtx.ErrInvalidClaim)
	})

	t.Run("session start after issue", func(t *testing.T) {
		c := jwtx.NewSessionClaims("u1", "user", now.Add(time.Hour), now, time.Hour, "", "")
		_, err := codec.Sign(c)
		require.ErrorIs(t, err, jwtx.ErrInvalidClaim)
	})
}
