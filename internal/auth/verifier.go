// Package auth delegates authentication to the external identity provider.
// The server never issues credentials; it only verifies provider-signed
// bearer tokens and extracts the stable external user identifier.
package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrNoToken      = errors.New("unauthorized: no token provided")
	ErrInvalidToken = errors.New("unauthorized: invalid token")
)

// Identity is the verified external identity attached to a request.
type Identity struct {
	UID   string
	Email string
}

// Verifier checks a bearer token and resolves it to an external identity.
type Verifier interface {
	Verify(token string) (*Identity, error)
}

// JWTVerifier validates provider-issued HS256 tokens. The uid claim (falling
// back to the standard subject) carries the external identifier.
type JWTVerifier struct {
	secret []byte
	issuer string
}

func NewJWTVerifier(secret, issuer string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret), issuer: issuer}
}

func (v *JWTVerifier) Verify(tokenString string) (*Identity, error) {
	if tokenString == "" {
		return nil, ErrNoToken
	}

	claims := jwt.MapClaims{}
	parserOpts := []jwt.ParserOption{jwt.WithValidMethods([]string{"HS256"})}
	if v.issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(v.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, parserOpts...)
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	uid, _ := claims["uid"].(string)
	if uid == "" {
		if sub, err := claims.GetSubject(); err == nil {
			uid = sub
		}
	}
	if uid == "" {
		return nil, fmt.Errorf("%w: token carries no uid", ErrInvalidToken)
	}

	email, _ := claims["email"].(string)
	return &Identity{UID: uid, Email: email}, nil
}
