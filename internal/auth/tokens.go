// Package auth holds the credential verifier, the token service and the
// request authentication middleware.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/spendlog/spendlog-backend/internal/httperr"
)

// TokenClaims is the payload carried by both token kinds. The kinds are told
// apart purely by their signing secret.
type TokenClaims struct {
	UserID int64 `json:"userId"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies access and refresh tokens. Secrets and
// lifetimes are injected at construction and never change.
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewTokenService(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *TokenService {
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &TokenService{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

func (s *TokenService) IssueAccessToken(userID int64) (string, error) {
	return s.sign(userID, s.accessSecret, s.accessTTL)
}

func (s *TokenService) IssueRefreshToken(userID int64) (string, error) {
	return s.sign(userID, s.refreshSecret, s.refreshTTL)
}

func (s *TokenService) sign(userID int64, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := TokenClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// VerifyAccessToken returns the user id carried by a valid access token.
// Missing, malformed, expired and wrongly-signed tokens all produce the same
// unauthorized error so callers answer a uniform 401.
func (s *TokenService) VerifyAccessToken(token string) (int64, error) {
	return verify(token, s.accessSecret, "invalid or expired access token")
}

func (s *TokenService) VerifyRefreshToken(token string) (int64, error) {
	return verify(token, s.refreshSecret, "invalid or expired refresh token")
}

func verify(tokenStr string, secret []byte, message string) (int64, error) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil || !token.Valid || claims.UserID == 0 {
		return 0, httperr.Unauthorized(message)
	}
	return claims.UserID, nil
}
