package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingSecret = errors.New("jwtx: signing secret is not configured")
	ErrMalformed     = errors.New("jwtx: malformed token")
	ErrAlgMismatch   = errors.New("jwtx: algorithm mismatch")
	ErrInvalidSig    = errors.New("jwtx: invalid signature")

	ErrIssuer       = errors.New("jwtx: issuer mismatch")
	ErrExpired      = errors.New("jwtx: token expired")
	ErrNotYetValid  = errors.New("jwtx: token not yet valid")
	ErrInvalidClaim = errors.New("jwtx: invalid claims")
)

// Verifier validates a token string and returns the claims if it is legit.
type Verifier interface {
	Verify(token string) (Claims, error)
}

// Config carries everything the HS256 signer needs. The secret is injected
// here rather than read from a package global so tests can supply a fixed
// secret and a deterministic clock.
type Config struct {
	Secret []byte
	Issuer string
	TTL    time.Duration    // defaults to DefaultSessionTTL
	Now    func() time.Time // defaults to time.Now
}

// HS256 signs and verifies session tokens with a process-wide shared secret.
type HS256 struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewHS256 builds a signer/verifier from cfg. The secret is required.
func NewHS256(cfg Config) (*HS256, error) {
	if len(cfg.Secret) == 0 {
		return nil, ErrMissingSecret
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &HS256{
		secret: cfg.Secret,
		issuer: cfg.Issuer,
		ttl:    ttl,
		now:    now,
	}, nil
}

// TTL reports the configured session lifetime.
func (h *HS256) TTL() time.Duration { return h.ttl }

// Sign issues a session token for the given identity, expiring TTL from now.
func (h *HS256) Sign(userID, username, role string) (string, error) {
	claims := NewSessionClaims(userID, username, role, h.issuer, h.ttl, h.now().UTC())

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(h.secret)
	if err != nil {
		return "", fmt.Errorf("jwtx: sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature, algorithm, issuer, and expiry of a token and
// returns the embedded claims. Failures collapse into the jwtx error set so
// callers can treat them uniformly as an invalid token.
func (h *HS256) Verify(raw string) (Claims, error) {
	parsed, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, ErrAlgMismatch
		}
		return h.secret, nil
	}, jwt.WithoutClaimsValidation())
	if err != nil {
		switch {
		case errors.Is(err, ErrAlgMismatch):
			return Claims{}, ErrAlgMismatch
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return Claims{}, ErrInvalidSig
		default:
			return Claims{}, ErrMalformed
		}
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return Claims{}, ErrMalformed
	}
	if claims.Subject == "" {
		return Claims{}, ErrInvalidClaim
	}
	if err := claims.ValidateIssuer(h.issuer); err != nil {
		return Claims{}, err
	}
	if err := claims.ValidateExpiryAt(h.now().UTC()); err != nil {
		return Claims{}, err
	}

	return *claims, nil
}
