package remote

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/medtrack/core/internal/domain/apperrors"
)

// nowFunc is swapped in expiry tests.
var nowFunc = time.Now

// StaticTokenSource serves a configured bearer token, for CLI usage and
// tests. It cannot mint new credentials, so Refresh only swaps in the
// configured refresh token when one exists; otherwise the caller gets the
// terminal "please log in again" condition.
type StaticTokenSource struct {
	token   string
	refresh string
}

// NewStaticTokenSource builds a token source from configured credentials.
func NewStaticTokenSource(token, refreshToken string) *StaticTokenSource {
	return &StaticTokenSource{token: token, refresh: refreshToken}
}

// Token returns the configured token. When the token is a JWT with a
// readable expiry that has already passed, the guaranteed 401 is skipped
// and the expiry surfaces immediately as an auth error.
func (s *StaticTokenSource) Token(ctx context.Context) (string, error) {
	if s.token == "" {
		return "", nil
	}
	if expired(s.token) {
		if s.refresh != "" {
			return s.refresh, nil
		}
		return "", apperrors.Auth("token expired", jwt.ErrTokenExpired)
	}
	return s.token, nil
}

// Refresh swaps to the configured refresh token, once.
func (s *StaticTokenSource) Refresh(ctx context.Context) (string, error) {
	if s.refresh == "" || s.refresh == s.token {
		return "", apperrors.Auth("no refresh credential configured", nil)
	}
	s.token = s.refresh
	return s.token, nil
}

// expired inspects the token's exp claim without verifying the signature;
// verification is the backend's job, this is only an optimization to avoid
// a round trip that will certainly fail.
func expired(token string) bool {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false // opaque tokens pass through untouched
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Time.Before(nowFunc())
}
