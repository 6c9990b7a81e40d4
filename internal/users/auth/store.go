// Copyright (c) 2026 Mangabay. All rights reserved.

package auth

import (
	"context"
	"time"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: int64

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByID(context context.Context, id int64) (*User, error)

	/*
		FindByUsername returns the account with the given username.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByUsername(context context.Context, username string) (*User, error)

	/*
		FindByEmail returns the account with the given email.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		Create persists a brand-new user account and assigns its ID.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: Persistence failures, Conflict on duplicate identity
	*/
	Create(context context.Context, user *User) error
}

// # Session Data Access

// SessionRepository defines the contract for server-side session storage.
//
// Sessions are volatile: an opaque session ID maps to a [SessionPayload]
// with a sliding expiry.
type SessionRepository interface {

	/*
		Set stores (or overwrites) the payload for a session ID.

		Parameters:
		  - context: context.Context
		  - sessionID: string
		  - payload: *SessionPayload
		  - ttl: time.Duration

		Returns:
		  - error: Persistence failures
	*/
	Set(context context.Context, sessionID string, payload *SessionPayload, ttl time.Duration) error

	/*
		Get retrieves the payload for a session ID.

		Parameters:
		  - context: context.Context
		  - sessionID: string

		Returns:
		  - *SessionPayload: Stored session state
		  - error: Unauthorized when the session is absent or expired
	*/
	Get(context context.Context, sessionID string) (*SessionPayload, error)

	/*
		Delete removes a session. Deleting an absent session is not an error.

		Parameters:
		  - context: context.Context
		  - sessionID: string

		Returns:
		  - error: Persistence failures
	*/
	Delete(context context.Context, sessionID string) error
}
