// Copyright (c) 2026 Mangabay. All rights reserved.

package sec

// # User Roles

// UserRole represents the authorization level granted to an account.
type UserRole string

const (
	// Unrestricted access to the admin back-office
	RoleAdmin UserRole = "admin"

	// Default role for standard registered readers
	RoleUser UserRole = "user"
)

// IsAdmin reports whether the role grants admin back-office access.
func (r UserRole) IsAdmin() bool {
	return r == RoleAdmin
}

// Valid reports whether the role is one of the known values.
func (r UserRole) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// Toggle flips between the two roles. Used by the admin user-management
// surface ("make admin" / "revoke admin").
func (r UserRole) Toggle() UserRole {
	if r == RoleAdmin {
		return RoleUser
	}
	return RoleAdmin
}

// # Session Identity

// AuthClaims is the request-scoped identity resolved once by the
// authentication middleware and carried in the request context. Handlers and
// services receive it explicitly instead of reading ambient session state.
type AuthClaims struct {
	UserID   int64
	Username string
	Role     UserRole

	// DarkMode is the reader display preference stored alongside the session.
	DarkMode bool

	// SessionID is the opaque server-side session identifier. Empty when the
	// request authenticated with a Bearer access token instead of the cookie.
	SessionID string
}
