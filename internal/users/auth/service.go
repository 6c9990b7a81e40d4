// Copyright (c) 2026 Mangabay. All rights reserved.

/*
Package auth implements the core identity and access management system.

It handles user registration with secure password hashing, the cookie session
lifecycle backed by Redis, and access token issuance for API clients.

Architecture:

  - Service: Orchestrates business logic (Register, Login, Logout).
  - Repository: Abstracted interfaces for Postgres (Users) and Redis (Sessions).
  - Security: Leverages Bcrypt hashing and HS256-signed access tokens.
*/
package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tranquochuy/mangabay/internal/platform/apperr"
	"github.com/tranquochuy/mangabay/internal/platform/constants"
	"github.com/tranquochuy/mangabay/internal/platform/sec"
)

// # Contracts & Types

// TokenProvider defines the contract for generating security tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed JWT string for the given user.
	//
	// # Parameters
	//   - userID: The ID of the account.
	//   - username: The username of the account.
	//   - role: The role of the account.
	//   - timeToLive: The duration before the token expires.
	//
	// # Returns
	//   - A signed JWT string, or an err if signing fails.
	GenerateAccessToken(userID int64, username string, role sec.UserRole, timeToLive time.Duration) (string, error)
}

// Service implements user authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or login logic must be reviewed carefully.
type Service struct {
	userRepository    UserRepository
	sessionRepository SessionRepository
	tokenProvider     TokenProvider
}

// NewService constructs a new auth [Service] with necessary dependencies.
func NewService(userRepo UserRepository, sessionRepo SessionRepository, tokenProv TokenProvider) *Service {
	return &Service{
		userRepository:    userRepo,
		sessionRepository: sessionRepo,
		tokenProvider:     tokenProv,
	}
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new reader.
type RegisterInput struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

/*
Register validates, hashes, and persists a brand new user account.

Description: New accounts always start with the reader role; promotion to
admin happens only through the admin user-management surface.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *User: Created entity
  - err: ValidationError (password mismatch), Conflict (identity exists), or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {

	// The two password fields must agree before anything touches storage.
	if input.Password != input.ConfirmPassword {
		return nil, apperr.ValidationError("Passwords do not match")
	}

	// Canonicalize the identity fields once; the uniqueness lookups and the
	// stored row must see the same values.
	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(input.Email)

	// Verify username uniqueness. Return a client-safe Conflict err.
	_, err := service.userRepository.FindByUsername(context, username)
	if err == nil {
		return nil, apperr.Conflict("Username is already taken")
	}

	// Verify email uniqueness. Return a client-safe Conflict err.
	_, err = service.userRepository.FindByEmail(context, email)
	if err == nil {
		return nil, apperr.Conflict("Email is already registered")
	}

	// Prevent storing plain-text passwords. Default cost is used for balance
	// between security and CPU utilization during registration spikes.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	user := &User{
		Username:     username,
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         sec.RoleUser,
	}

	// Persist the user; the unique indexes backstop the lookups above.
	if err := service.userRepository.Create(context, user); err != nil {
		return nil, err
	}

	return user, nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Username string
	Password string
}

// LoginSession represents a successfully established user session.
type LoginSession struct {
	SessionID   string
	ExpiresAt   time.Time
	AccessToken string
	User        *User
}

/*
Login validates user credentials and establishes a server-side session.

Description: Verifies identity with a constant-time password comparison, then
stores the session payload in Redis under a fresh opaque ID. An access token
is issued alongside for API clients that cannot carry cookies.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *LoginSession: Transport-ready session identifiers
  - err: Unauthorized or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*LoginSession, error) {

	user, err := service.userRepository.FindByUsername(context, input.Username)

	// If (err != nil) the user does not exist. Generic message to prevent enumeration.
	if err != nil {
		return nil, apperr.Unauthorized("Invalid username or password")
	}

	// Verify password hash using constant-time comparison in bcrypt to prevent timing attacks
	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid username or password")
	}

	// Opaque, unguessable session identifier
	sessionID := uuid.NewString()

	payload := &SessionPayload{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		DarkMode: false,
	}

	expiresAt := time.Now().Add(constants.SessionTTL)
	if err := service.sessionRepository.Set(context, sessionID, payload, constants.SessionTTL); err != nil {
		return nil, fmt.Errorf("auth_service_session_creation_failed: %w", err)
	}

	// Short-lived Bearer token for cookie-less API clients
	accessToken, err := service.tokenProvider.GenerateAccessToken(user.ID, user.Username, user.Role, constants.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	return &LoginSession{
		SessionID:   sessionID,
		ExpiresAt:   expiresAt,
		AccessToken: accessToken,
		User:        user,
	}, nil
}

/*
Logout removes the server-side session.

Description: Deleting an already-absent session succeeds, so logout is
idempotent and safe to retry.

Parameters:
  - context: context.Context
  - sessionID: string

Returns:
  - err: Storage failures only
*/
func (service *Service) Logout(context context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}

	if err := service.sessionRepository.Delete(context, sessionID); err != nil {
		return fmt.Errorf("auth_service_logout_failed: %w", err)
	}

	return nil
}

// # Session Management

/*
Resolve loads the session payload for an opaque session ID and converts it
into request-scoped identity claims.

Description: This satisfies the authentication middleware's SessionResolver
contract. An absent or expired session yields Unauthorized, which the
middleware treats as an anonymous request.

Parameters:
  - context: context.Context
  - sessionID: string

Returns:
  - *sec.AuthClaims: Resolved identity
  - err: Unauthorized or connectivity failures
*/
func (service *Service) Resolve(context context.Context, sessionID string) (*sec.AuthClaims, error) {
	payload, err := service.sessionRepository.Get(context, sessionID)
	if err != nil {
		return nil, err
	}

	return payload.Claims(sessionID), nil
}

/*
ToggleDarkMode flips the display preference stored in the session payload.

Description: The preference is per-session, not per-account: it lives and
dies with the Redis session. The write refreshes the session TTL.

Parameters:
  - context: context.Context
  - sessionID: string

Returns:
  - bool: The new dark-mode state
  - err: Unauthorized when the session is gone, or storage failures
*/
func (service *Service) ToggleDarkMode(context context.Context, sessionID string) (bool, error) {
	if sessionID == "" {
		return false, apperr.Unauthorized("An active session is required")
	}

	payload, err := service.sessionRepository.Get(context, sessionID)
	if err != nil {
		return false, err
	}

	payload.DarkMode = !payload.DarkMode

	if err := service.sessionRepository.Set(context, sessionID, payload, constants.SessionTTL); err != nil {
		return false, fmt.Errorf("auth_service_toggle_dark_mode_failed: %w", err)
	}

	return payload.DarkMode, nil
}
