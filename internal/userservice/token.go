package userservice

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenIssuer = "inkwell-api"

var (
	ErrMissingToken = errors.New("no access token")
	ErrInvalidToken = errors.New("access token is invalid")
)

// TokenIssuer signs and verifies stateless HS256 access tokens.
type TokenIssuer struct {
	secret []byte
	// ttl of zero issues tokens without an expiry.
	ttl time.Duration
	now func() time.Time
}

type Claims struct {
	UserID string `json:"id"`
	jwt.RegisteredClaims
}

func NewTokenIssuer(secret string, ttl time.Duration) (*TokenIssuer, error) {
	if secret == "" {
		return nil, errors.New("token signing secret must be provided")
	}

	return &TokenIssuer{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

func (t *TokenIssuer) IssueToken(userID string) (string, error) {
	if userID == "" {
		return "", errors.New("invalid user ID")
	}

	now := t.now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  userID,
			Issuer:   tokenIssuer,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if t.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(t.ttl))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// VerifyToken returns the user id embedded in token.
func (t *TokenIssuer) VerifyToken(tokenString string) (string, error) {
	if tokenString == "" {
		return "", ErrMissingToken
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(tokenIssuer))
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	if claims.UserID == "" || claims.Subject != claims.UserID {
		return "", ErrInvalidToken
	}

	return claims.UserID, nil
}
