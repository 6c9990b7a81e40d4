// Copyright (c) 2026 Mangabay. All rights reserved.

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing) from
// the domain logic. It acts as an Infrastructure service injected into the
// Application layer.
package sec

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// accessClaims is the payload embedded inside a JWT access token.
//
// Custom application claims are abbreviated to keep the JWT payload small.
type accessClaims struct {
	jwt.RegisteredClaims

	Username string `json:"unm"`
	Role     string `json:"rol"`
}

// TokenService handles generation and verification of JWT access tokens
// using HS256.
//
// The session cookie is the primary authentication mechanism for browsers;
// access tokens exist so API clients can authenticate statelessly with an
// Authorization header.
type TokenService struct {
	secret []byte
	issuer string
}

// NewTokenService creates a new TokenService signing with the given secret.
func NewTokenService(secret, issuer string) (*TokenService, error) {
	if secret == "" {
		return nil, fmt.Errorf("sec: token secret must not be empty")
	}
	return &TokenService{secret: []byte(secret), issuer: issuer}, nil
}

// GenerateAccessToken creates a signed JWT for the given user.
func (service *TokenService) GenerateAccessToken(userID int64, username string, role UserRole, timeToLive time.Duration) (string, error) {
	currentTime := time.Now()
	claims := accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
		},
		Username: username,
		Role:     string(role),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign access token: %w", err)
	}
	return signed, nil
}

// VerifyToken parses and validates a JWT access token string.
//
// It returns the reconstructed [AuthClaims] on success. DarkMode is always
// false for token-authenticated requests; the preference lives in the
// server-side session, which API clients do not carry.
func (service *TokenService) VerifyToken(tokenStr string) (*AuthClaims, error) {
	var claims accessClaims

	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method %q", token.Header["alg"])
		}
		return service.secret, nil
	}, jwt.WithIssuer(service.issuer))

	if err != nil {
		return nil, fmt.Errorf("sec: invalid access token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("sec: invalid access token")
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("sec: malformed subject claim: %w", err)
	}

	return &AuthClaims{
		UserID:   userID,
		Username: claims.Username,
		Role:     UserRole(claims.Role),
	}, nil
}
