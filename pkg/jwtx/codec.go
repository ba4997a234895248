package jwtx

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// MinSecretBytes is the minimum HS256 secret length. Anything shorter is a
// configuration error and the codec refuses to exist.
const MinSecretBytes = 32

// DefaultLeeway absorbs clock skew between issuer and verifier when
// validating exp/nbf/iat.
const DefaultLeeway = 5 * time.Second

var (
	ErrWeakSecret = errors.New("jwtx: secret shorter than 32 bytes")

	ErrMalformed  = errors.New("jwtx: malformed token")
	ErrInvalidSig = errors.New("jwtx: invalid signature")

	ErrIssuer       = errors.New("jwtx: issuer mismatch")
	ErrAudience     = errors.New("jwtx: audience mismatch")
	ErrExpired      = errors.New("jwtx: token expired")
	ErrNotYetValid  = errors.New("jwtx: token not yet valid")
	ErrInvalidClaim = errors.New("jwtx: invalid claims")
)

// Codec signs and verifies session tokens with a single symmetric scheme.
// Exactly one algorithm (HS256) is accepted on verify; "none" and every
// asymmetric algorithm are rejected to close alg-confusion attacks.
type Codec struct {
	secret   []byte
	issuer   string
	audience string
	leeway   time.Duration
	timeFunc func() time.Time
}

// CodecOptions configures a Codec.
type CodecOptions struct {
	// Secret is the HS256 signing key. Must be at least MinSecretBytes.
	Secret []byte

	// Issuer, when set, is embedded on sign and enforced on verify.
	Issuer string

	// Audience, when set, is embedded on sign and enforced on verify.
	Audience string

	// Leeway for exp/nbf validation. Defaults to DefaultLeeway.
	Leeway time.Duration

	// TimeFunc overrides the verification clock. Defaults to time.Now;
	// tests inject their own.
	TimeFunc func() time.Time
}

// NewCodec validates the secret once, at construction. Failing here is the
// startup-time invariant the rest of the system relies on.
func NewCodec(opts CodecOptions) (*Codec, error) {
	if len(opts.Secret) < MinSecretBytes {
		return nil, ErrWeakSecret
	}

	leeway := opts.Leeway
	if leeway <= 0 {
		leeway = DefaultLeeway
	}

	return &Codec{
		secret:   opts.Secret,
		issuer:   opts.Issuer,
		audience: opts.Audience,
		leeway:   leeway,
		timeFunc: opts.TimeFunc,
	}, nil
}

// Issuer returns the configured issuer claim, if any.
func (c *Codec) Issuer() string { return c.issuer }

// Audience returns the configured audience claim, if any.
func (c *Codec) Audience() string { return c.audience }

// Sign produces a compact HS256 token for the given claims.
func (c *Codec) Sign(claims Claims) (string, error) {
	if err := claims.validateShape(); err != nil {
		return "", err
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := tok.SignedString(c.secret)
	if err != nil {
		return "", errors.Join(ErrInvalidSig, err)
	}
	return signed, nil
}

// Verify checks signature, algorithm, expiry and (if configured) issuer and
// audience. All failures come back as one of the package sentinels; nothing
// panics past this boundary.
func (c *Codec) Verify(token string) (Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(c.leeway),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	}
	if c.issuer != "" {
		opts = append(opts, jwt.WithIssuer(c.issuer))
	}
	if c.audience != "" {
		opts = append(opts, jwt.WithAudience(c.audience))
	}
	if c.timeFunc != nil {
		opts = append(opts, jwt.WithTimeFunc(c.timeFunc))
	}

	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return c.secret, nil
	}, opts...)
	if err != nil {
		return Claims{}, mapParseError(err)
	}

	if err := claims.validateShape(); err != nil {
		return Claims{}, err
	}

	return claims, nil
}

// mapParseError folds golang-jwt's error tree into the package sentinels.
// Order matters: a token can be both expired and otherwise broken, and the
// most specific diagnostic should win.
func mapParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrMalformed
	case errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return ErrIssuer
	case errors.Is(err, jwt.ErrTokenInvalidAudience):
		return ErrAudience
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return ErrNotYetValid
	case errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrTokenUnverifiable):
		return ErrInvalidSig
	default:
		return errors.Join(ErrInvalidClaim, err)
	}
}
