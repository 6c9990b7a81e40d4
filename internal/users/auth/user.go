// Copyright (c) 2026 Mangabay. All rights reserved.

/*
Package auth implements the user identity and session management layer.

It defines the core domain entities (User, SessionPayload) and logic for
registration, login, logout, and the per-session display preference.

# Architecture

This layer is the "Truth" of the system. Entities defined here have no external
dependencies and encapsulate all business rules related to user identity.
*/
package auth

import (
	"time"

	"github.com/tranquochuy/mangabay/internal/platform/sec"
)

// # Domain Entities

// User represents a registered member of the Mangabay platform.
type User struct {
	ID           int64        `json:"id"`
	Username     string       `json:"username"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"` // Explicitly omitted from JSON for security.
	Role         sec.UserRole `json:"role"`
	CreatedAt    time.Time    `json:"created_at"`
}

// SessionPayload is the JSON document stored in Redis per active session.
//
// The opaque session ID travels in the cookie; everything the request
// pipeline needs about the user lives server-side in this payload.
type SessionPayload struct {
	UserID   int64        `json:"user_id"`
	Username string       `json:"username"`
	Role     sec.UserRole `json:"role"`
	DarkMode bool         `json:"dark_mode"`
}

// Claims converts the stored payload into request-scoped identity claims.
func (p *SessionPayload) Claims(sessionID string) *sec.AuthClaims {
	return &sec.AuthClaims{
		UserID:    p.UserID,
		Username:  p.Username,
		Role:      p.Role,
		DarkMode:  p.DarkMode,
		SessionID: sessionID,
	}
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldUsername        = "username"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirm_password"
	FieldAccessToken     = "access_token"
	FieldTokenType       = "token_type"
	FieldExpiresIn       = "expires_in"
	FieldUser            = "user"
	FieldMessage         = "message"
	FieldDarkMode        = "dark_mode"
)
