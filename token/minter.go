package token

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrSigningKeyMissing is returned by [NewMinter] when the symmetric signing key is
// unset or empty. An unsigned credential must never be minted, so this is a fatal
// configuration error checked once at startup, not per call.
var ErrSigningKeyMissing = errors.New("signing key missing or empty")

// Config defines a public type used by taskgate APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	SigningKey []byte
	TTL        time.Duration
	Issuer     string
	Audience   string
	Leeway     time.Duration
}

// Claims is the claim set of a minted bearer credential. The backend identifies the
// caller by the registered "sub" claim; "email" is informational.
type Claims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// Minter defines a public type used by taskgate APIs.
//
// Minter instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Minter struct {
	config Config
}

// NewMinter describes the newminter operation and its observable behavior.
//
// NewMinter may return an error when input validation, dependency calls, or security checks fail.
// NewMinter does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewMinter(cfg Config) (*Minter, error) {
	if len(cfg.SigningKey) == 0 {
		return nil, ErrSigningKeyMissing
	}
	if cfg.TTL <= 0 {
		return nil, errors.New("invalid TTL configuration")
	}
	if cfg.Leeway < 0 || cfg.Leeway > 2*time.Minute {
		return nil, errors.New("invalid leeway configuration")
	}
	cfg.Issuer = strings.TrimSpace(cfg.Issuer)
	cfg.Audience = strings.TrimSpace(cfg.Audience)
	cfg.SigningKey = append([]byte(nil), cfg.SigningKey...)

	return &Minter{config: cfg}, nil
}

// TTL returns the configured credential lifetime.
func (m *Minter) TTL() time.Duration {
	return m.config.TTL
}

// Mint creates a fresh signed credential for subject with an optional email claim.
// Expiry is issued-at plus the configured TTL; the jti claim is unique per call, so
// credentials are never reused across calls.
func (m *Minter) Mint(subject, email string) (string, error) {
	if subject == "" {
		return "", errors.New("subject is required")
	}

	now := time.Now()
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.config.TTL)),
			ID:        uuid.NewString(),
			Issuer:    m.config.Issuer,
		},
	}
	if m.config.Audience != "" {
		claims.Audience = jwt.ClaimStrings{m.config.Audience}
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(m.config.SigningKey)
}

// Parse verifies a credential's signature and validity window and returns its claims.
// Only HS256 is accepted; alg-substitution tokens are rejected.
func (m *Minter) Parse(tokenStr string) (*Claims, error) {
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if m.config.Leeway > 0 {
		options = append(options, jwt.WithLeeway(m.config.Leeway))
	}
	if m.config.Issuer != "" {
		options = append(options, jwt.WithIssuer(m.config.Issuer))
	}
	if m.config.Audience != "" {
		options = append(options, jwt.WithAudience(m.config.Audience))
	}

	parser := jwt.NewParser(options...)
	tok, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return m.config.SigningKey, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	if claims.Subject == "" {
		return nil, errors.New("token missing subject")
	}

	return claims, nil
}
