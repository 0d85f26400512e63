package jwt

import (
	"errors"
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

var (
	ErrMalformedHeader = errors.New("authorization header is malformed")
	ErrInvalidToken    = errors.New("invalid token")
	ErrExpiredToken    = errors.New("token has expired")
)

type Claims struct {
	Email string `json:"email"`
	jwtlib.RegisteredClaims
}

// Identity is the outcome of a successful check. A zero Identity is an
// anonymous caller.
type Identity struct {
	Email         string
	Authenticated bool
}

func GenerateToken(email string, secret []byte, ttl time.Duration, now time.Time) (string, error) {
	claims := Claims{
		Email: email,
		RegisteredClaims: jwtlib.RegisteredClaims{
			ExpiresAt: jwtlib.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwtlib.NewNumericDate(now),
		},
	}
	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ParseToken checks the signature only. Expiry is judged by the caller
// against its own clock so that expired and forged tokens stay distinguishable.
func ParseToken(tokenString string, secret []byte) (*Claims, error) {
	token, err := jwtlib.ParseWithClaims(tokenString, &Claims{}, func(token *jwtlib.Token) (interface{}, error) {
		if token.Method.Alg() != jwtlib.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	}, jwtlib.WithoutClaimsValidation())
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// Authenticate resolves an Authorization header value. An empty header is
// an anonymous caller, not an error.
func Authenticate(header string, secret []byte, now time.Time) (Identity, error) {
	if header == "" {
		return Identity{}, nil
	}
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return Identity{}, ErrMalformedHeader
	}
	claims, err := ParseToken(parts[1], secret)
	if err != nil {
		return Identity{}, ErrInvalidToken
	}
	if claims.Email == "" || claims.ExpiresAt == nil {
		return Identity{}, ErrInvalidToken
	}
	if !now.Before(claims.ExpiresAt.Time) {
		return Identity{}, ErrExpiredToken
	}
	return Identity{Email: claims.Email, Authenticated: true}, nil
}
