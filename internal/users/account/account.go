// Copyright (c) 2026 Mangabay. All rights reserved.

/*
Package account covers the member-facing profile surface and the admin
user-management back-office.

It is deliberately separate from the auth package: auth owns credentials
and sessions, account owns everything that happens to a registered user
afterwards (profile edits, the reader dashboard, role changes, removal).
*/
package account

import (
	"time"

	"github.com/tranquochuy/mangabay/internal/platform/sec"
)

// Account is a registered user as seen by the profile and admin surfaces.
type Account struct {
	ID           int64        `json:"id"`
	Username     string       `json:"username"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"`
	Role         sec.UserRole `json:"role"`
	CreatedAt    time.Time    `json:"created_at"`
}

// Stats is the admin dashboard summary.
type Stats struct {
	MangaCount   int        `json:"manga_count"`
	ChapterCount int        `json:"chapter_count"`
	UserCount    int        `json:"user_count"`
	NewestUsers  []*Account `json:"newest_users"`
}

// Request field identifiers.
const (
	FieldUserID          = "userID"
	FieldEmail           = "email"
	FieldNewPassword     = "new_password"
	FieldConfirmPassword = "confirm_password"
)
