package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// CookieName is the cookie that carries the session token.
const CookieName = "sf_session"

var ErrInvalidToken = errors.New("invalid or expired session token")

// TokenIssuer signs and validates session tokens (HS256 JWTs carrying a sid claim).
type TokenIssuer struct {
	secretKey []byte
	ttl       time.Duration
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secretKey: []byte(secret), ttl: ttl}
}

// NewID returns a fresh session id.
func NewID() string {
	return uuid.NewString()
}

// Issue returns a signed token for sid.
func (t *TokenIssuer) Issue(sid string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sid": sid,
		"iat": now.Unix(),
		"exp": now.Add(t.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secretKey)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Parse validates tokenStr and returns its session id.
func (t *TokenIssuer) Parse(tokenStr string) (string, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return t.secretKey, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		return "", ErrInvalidToken
	}
	return sid, nil
}

// MaxAge is the cookie lifetime in seconds.
func (t *TokenIssuer) MaxAge() int {
	return int(t.ttl / time.Second)
}
