package identity

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Roles as carried in token claims. The engine does not manage accounts or
// permissions; it only reads the identity the gateway already established.
const (
	RoleParticipant = "participant"
	RoleManager     = "manager"
	RoleAdmin       = "admin"
)

var ErrInvalidToken = errors.New("invalid token")

type UserContext struct {
	UserID         string
	OrganizationID string
	Role           string
}

type Claims struct {
	UserID         string `json:"uid"`
	OrganizationID string `json:"org"`
	Role           string `json:"role"`
	jwt.RegisteredClaims
}

func ParseToken(secret, token string) (Claims, error) {
	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !parsed.Valid {
		return Claims{}, ErrInvalidToken
	}
	return claims, nil
}

func IssueToken(secret string, user UserContext, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:         user.UserID,
		OrganizationID: user.OrganizationID,
		Role:           user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
