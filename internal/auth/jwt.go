package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Principal is the verified identity behind a request. The identity provider
// guarantees Email; Name and Image are optional profile hints.
type Principal struct {
	Email string
	Name  string
	Image string
}

// Claims is the session token payload shared with the identity provider.
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	Image string `json:"image,omitempty"`
	jwt.RegisteredClaims
}

func SignToken(secret string, p Principal, ttl time.Duration) (string, error) {
	claims := &Claims{
		Email: p.Email,
		Name:  p.Name,
		Image: p.Image,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString([]byte(secret))
}

func ParseToken(secret, tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if c, ok := token.Claims.(*Claims); ok && token.Valid && c.Email != "" {
		return c, nil
	}
	return nil, errors.New("invalid token")
}
