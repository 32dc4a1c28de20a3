// Package session keeps the API bearer token in a browser cookie. The
// cookie value is sealed with NaCl secretbox so the browser can neither
// read nor forge it.
package session

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"io"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/nacl/secretbox"
)

const CookieName = "admin_token"

var ErrInvalidCookie = errors.New("session: invalid cookie")

type Sealer struct {
	key [32]byte
}

// NewSealer derives the box key from secret.
func NewSealer(secret string) *Sealer {
	return &Sealer{key: sha256.Sum256([]byte(secret))}
}

func (s *Sealer) Seal(token string) (string, error) {
	var nonce [24]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return "", err
	}
	box := secretbox.Seal(nonce[:], []byte(token), &nonce, &s.key)
	return base64.RawURLEncoding.EncodeToString(box), nil
}

func (s *Sealer) Open(value string) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil || len(raw) < 24+secretbox.Overhead {
		return "", ErrInvalidCookie
	}
	var nonce [24]byte
	copy(nonce[:], raw[:24])
	plain, ok := secretbox.Open(nil, raw[24:], &nonce, &s.key)
	if !ok {
		return "", ErrInvalidCookie
	}
	return string(plain), nil
}

// Claims are the parts of the API's JWT the dashboard reads for display
// and expiry. The signature is not verified here; the API does that on
// every call.
type Claims struct {
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

func Parse(token string) (*Claims, error) {
	var c Claims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Expired reports whether token carries an exp claim in the past. Tokens
// that are not JWTs, or have no exp, are left to the API to judge.
func Expired(token string, now time.Time) bool {
	c, err := Parse(token)
	if err != nil || c.ExpiresAt == nil {
		return false
	}
	return !now.Before(c.ExpiresAt.Time)
}

// Actor names the signed-in admin for audit entries.
func Actor(token string) string {
	c, err := Parse(token)
	if err != nil {
		return "unknown"
	}
	if c.Email != "" {
		return c.Email
	}
	if c.Subject != "" {
		return c.Subject
	}
	return "unknown"
}
