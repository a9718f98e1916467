// Package token signs and verifies the bearer tokens issued at login.
//
// Tokens are self-contained: subject, issued-at and expiry are carried in
// the signed payload and validity is recomputed from the token alone on
// every request. The server keeps no session state and no revocation
// list, so a token stands until its expiry or until the signing key
// changes.
package token

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/recordkeep/customer-api/internal/core/domain"
)

const DefaultTTL = 24 * time.Hour

// Codec issues and verifies HS256-signed tokens with a fixed TTL.
// The key and TTL are set at construction and never change, so a single
// Codec is safe for concurrent use.
type Codec struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

// NewCodec builds a Codec around the given signing secret. A
// non-positive ttl falls back to DefaultTTL.
func NewCodec(secret string, ttl time.Duration) *Codec {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Codec{key: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue returns a signed token asserting username until the TTL elapses.
func (c *Codec) Issue(username string) (string, error) {
	now := c.now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.key)
}

// Verify decodes tokenString and returns its subject. Malformed input,
// a wrong or tampered signature and an expired token all return
// domain.ErrTokenInvalid; the caller cannot distinguish them. The
// signature is checked before any claim is trusted.
func (c *Codec) Verify(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
				return nil, jwt.ErrTokenSignatureInvalid
			}
			return c.key, nil
		},
		jwt.WithTimeFunc(func() time.Time { return c.now() }),
	)
	if err != nil || !parsed.Valid || claims.Subject == "" {
		return "", domain.ErrTokenInvalid
	}
	return claims.Subject, nil
}

// GenerateSecret returns a fresh 256-bit signing key as unpadded
// url-safe base64. Intended for the composition root when no key is
// configured; a key generated this way dies with the process, so every
// restart invalidates all outstanding tokens.
func GenerateSecret() (string, error) {
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(key), nil
}
