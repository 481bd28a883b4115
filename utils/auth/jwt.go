package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrExpiredToken  = errors.New("token has expired")
	ErrInvalidClaims = errors.New("invalid token claims")
)

const (
	// TokenIssuerName is the iss claim on every minted token.
	TokenIssuerName = "self"

	// TokenValidity is the fixed lifetime of a minted token.
	TokenValidity = 3600 * time.Second
)

// Claims are the claims carried by a minted bearer token. Scope holds the
// caller's granted authorities joined with single spaces, in caller order.
type Claims struct {
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}

// TokenIssuer mints signed, time-bounded bearer tokens for principals that
// were already authenticated upstream. It holds no state beyond its signing
// key; it performs no persistence and no validation of the principal.
type TokenIssuer struct {
	secret []byte
}

// NewTokenIssuer creates a token issuer signing with the given HMAC secret
func NewTokenIssuer(secret string) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret)}
}

// Issue mints a token for the principal: issuer "self", issued-at now,
// expiry exactly TokenValidity later, subject = principal, scope = the
// authorities space-joined.
func (i *TokenIssuer) Issue(principal string, authorities []string) (string, error) {
	now := time.Now()

	claims := Claims{
		Scope: strings.Join(authorities, " "),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Issuer:    TokenIssuerName,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenValidity)),
			Subject:   principal,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

// Validate parses and verifies a token minted by Issue and returns its
// claims.
func (i *TokenIssuer) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return i.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClaims
	}

	return claims, nil
}
