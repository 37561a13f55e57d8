// Package auth provides Google OAuth, JWT sessions, and password hashing.
//
// SESSION FLOW:
//  1. User hits /auth/google/login → redirected to Google's consent page
//  2. Google calls back with a code; we exchange it for the user's profile
//  3. The user is upserted and a JWT goes into an HttpOnly cookie
//  4. Middleware validates the cookie on later requests and puts the
//     user id into the request context
//
// JWTs are stateless — userID and expiry live inside the signed token, so
// validation needs no store lookup, only the HMAC secret.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenIssuer is checked on every validation so tokens minted by another
// app sharing the secret (or a misconfigured one) are rejected.
const tokenIssuer = "showtrack"

// TokenTTL is the session-token lifetime. There is no refresh flow, so
// this is also how often the user re-signs-in; a leaked token stays
// usable until expiry, since "logout" only deletes the cookie.
const TokenTTL = 24 * time.Hour

// TokenService signs and validates JWT access tokens.
type TokenService struct {
	secret []byte
}

// NewTokenService creates a TokenService. The secret should be at least
// 32 bytes of random data in production (openssl rand -hex 32).
func NewTokenService(secret string) (*TokenService, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: JWT secret must be at least 16 characters")
	}
	return &TokenService{secret: []byte(secret)}, nil
}

// claims embeds the registered JWT claims; the user id travels in "sub".
type claims struct {
	jwt.RegisteredClaims
}

// Generate creates and signs a token for the given userID, valid TokenTTL.
func (s *TokenService) Generate(userID string) (string, error) {
	return s.GenerateWithDuration(userID, TokenTTL)
}

// GenerateWithDuration creates a token with a custom lifetime.
// Exposed for tests (expired tokens) and future refresh tokens.
func (s *TokenService) GenerateWithDuration(userID string, d time.Duration) (string, error) {
	now := time.Now()

	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(d)),
			Issuer:    tokenIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing token: %w", err)
	}

	return signed, nil
}

// Validate parses and verifies a token string and returns the userID.
//
// WithValidMethods pins the algorithm to HS256 — without it, an attacker
// could present a token claiming a different algorithm and some parsers
// would accept it ("algorithm confusion").
func (s *TokenService) Validate(tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("auth: unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", fmt.Errorf("auth: token expired")
		}
		return "", fmt.Errorf("auth: invalid token: %w", err)
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("auth: invalid token claims")
	}

	if c.Subject == "" {
		return "", fmt.Errorf("auth: token has no subject")
	}

	return c.Subject, nil
}
