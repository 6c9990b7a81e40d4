// Copyright (c) 2026 Mangabay. All rights reserved.

package account

import (
	"context"

	"github.com/tranquochuy/mangabay/internal/platform/sec"
)

// Repository defines persistence for account management.
type Repository interface {
	/*
		FindByID returns the account with the given ID.

		Returns:
		  - *Account: the stored account
		  - error: apperr.NotFound when no such account exists
	*/
	FindByID(context context.Context, id int64) (*Account, error)

	/*
		UpdateEmail changes an account's email address.

		Returns:
		  - error: apperr.Conflict when the email is already taken by
		    another account, apperr.NotFound, or a storage error
	*/
	UpdateEmail(context context.Context, id int64, email string) error

	/*
		UpdatePasswordHash replaces an account's stored password hash.
	*/
	UpdatePasswordHash(context context.Context, id int64, passwordHash string) error

	/*
		List returns accounts ordered by username.

		Description: When search is non-empty, matches it case-insensitively
		against username and email.

		Returns:
		  - []*Account: one page of accounts
		  - int: the total matching account count
		  - error: a storage error
	*/
	List(context context.Context, search string, limit, offset int) ([]*Account, int, error)

	/*
		SetRole overwrites an account's role.
	*/
	SetRole(context context.Context, id int64, role sec.UserRole) error

	/*
		DeleteCascade removes an account and everything it owns.

		Description: Deletes the user's comments, bookmarks, and reading
		history inside one transaction before removing the account row.
	*/
	DeleteCascade(context context.Context, id int64) error

	/*
		Stats returns catalog and account totals plus the newest accounts.
	*/
	Stats(context context.Context, newestCount int) (*Stats, error)
}
