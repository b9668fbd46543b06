package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrTokenExpired is returned when a token is past its lifetime.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenMalformed is returned when the signature or structure check fails.
	ErrTokenMalformed = errors.New("token malformed")
)

// Authority issues and validates signed session tokens. Tokens are stateless:
// they bind a subject ID and an issue time, nothing else. The subject's role
// is deliberately not embedded — the Gate resolves it from the store at
// validation time so a stale or tampered role claim can never widen access.
type Authority struct {
	secret []byte
	ttl    time.Duration
}

func NewAuthority(secret []byte, ttl time.Duration) *Authority {
	return &Authority{secret: secret, ttl: ttl}
}

// Issue creates a signed token for the subject. Stateless; no side effects.
func (a *Authority) Issue(subjectID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subjectID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

// Parse verifies the signature and lifetime and returns the subject ID.
// Failures are distinguished (expired vs malformed) for logging; the Gate
// collapses them before anything reaches a client.
func (a *Authority) Parse(token string) (uuid.UUID, error) {
	tok, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		// block alg confusion
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenMalformed
		}
		return a.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return uuid.Nil, ErrTokenExpired
		}
		return uuid.Nil, ErrTokenMalformed
	}
	claims, ok := tok.Claims.(*jwt.RegisteredClaims)
	if !ok || !tok.Valid {
		return uuid.Nil, ErrTokenMalformed
	}
	subjectID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, ErrTokenMalformed
	}
	return subjectID, nil
}
