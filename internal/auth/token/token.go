// Package token issues and verifies the signed session tokens returned
// to clients after authentication. Tokens are stateless: validity is
// proven by signature and expiry alone, nothing is stored server-side
// and nothing is revocable before expiry.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is the session token validity window.
const DefaultTTL = 7 * 24 * time.Hour

var (
	ErrSecretTooShort = errors.New("token: signing secret must be at least 32 bytes")

	// ErrInvalidToken covers malformed, forged and expired tokens alike;
	// callers get no distinguishing detail.
	ErrInvalidToken = errors.New("token: invalid")
)

// Service signs and verifies HS256 session tokens with a process-wide
// secret.
type Service struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewService(secret []byte, ttl time.Duration) (*Service, error) {
	if len(secret) < 32 {
		return nil, ErrSecretTooShort
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{
		secret: secret,
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// Issue signs a token carrying subjectID, valid from now until now+TTL.
func (s *Service) Issue(subjectID string) (string, error) {
	if subjectID == "" {
		return "", errors.New("token: empty subject")
	}

	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   subjectID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(s.secret)
}

// Verify checks signature and expiry and returns the subject ID. Any
// failure mode collapses to ErrInvalidToken.
func (s *Service) Verify(raw string) (string, error) {
	parsed, err := jwt.ParseWithClaims(
		raw,
		&jwt.RegisteredClaims{},
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, ErrInvalidToken
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return s.now() }),
	)
	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", ErrInvalidToken
	}

	return claims.Subject, nil
}
