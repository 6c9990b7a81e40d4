// Copyright (c) 2026 Mangabay. All rights reserved.

package account

import (
	"context"
	"strings"

	"github.com/tranquochuy/mangabay/internal/library/bookmark"
	"github.com/tranquochuy/mangabay/internal/library/history"
	"github.com/tranquochuy/mangabay/internal/platform/apperr"
	"github.com/tranquochuy/mangabay/internal/platform/constants"
	"github.com/tranquochuy/mangabay/internal/platform/sec"
	"github.com/tranquochuy/mangabay/pkg/pagination"
)

// BookmarkSource supplies the dashboard's bookmark panel.
type BookmarkSource interface {
	List(context context.Context, userID int64, params pagination.Params) (*bookmark.ListResult, error)
}

// HistorySource supplies the dashboard's recent-reading panel.
type HistorySource interface {
	Recent(context context.Context, userID int64, n int) ([]history.View, error)
	DistinctMangaCount(context context.Context, userID int64) (int, error)
}

// # Service

// Service owns profile management, the reader dashboard, and the admin
// user-management surface.
type Service struct {
	repository Repository
	bookmarks  BookmarkSource
	history    HistorySource
}

// NewService constructs the account service.
func NewService(repository Repository, bookmarks BookmarkSource, history HistorySource) *Service {
	return &Service{
		repository: repository,
		bookmarks:  bookmarks,
		history:    history,
	}
}

/*
Profile returns the user's own account.
*/
func (service *Service) Profile(context context.Context, userID int64) (*Account, error) {
	return service.repository.FindByID(context, userID)
}

// UpdateProfileInput carries a profile edit. Password fields are optional;
// when NewPassword is empty the stored hash is left untouched.
type UpdateProfileInput struct {
	Email           string
	NewPassword     string
	ConfirmPassword string
}

/*
UpdateProfile changes the user's email and, optionally, their password.

Description: A password change requires the confirmation field to match.
The username is immutable; it identifies the account in comments and
cannot be edited.

Parameters:
  - context: the request context
  - userID: the acting user
  - input: the new profile values

Returns:
  - *Account: the updated account
  - error: a validation, conflict, or storage error
*/
func (service *Service) UpdateProfile(context context.Context, userID int64, input UpdateProfileInput) (*Account, error) {
	account, err := service.repository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	email := strings.TrimSpace(input.Email)
	if email != "" && email != account.Email {
		if err := service.repository.UpdateEmail(context, userID, email); err != nil {
			return nil, err
		}
		account.Email = email
	}

	if input.NewPassword != "" {
		if input.NewPassword != input.ConfirmPassword {
			return nil, apperr.ValidationError("Passwords do not match")
		}
		hash, err := sec.HashPassword(input.NewPassword)
		if err != nil {
			return nil, apperr.Internal(err)
		}
		if err := service.repository.UpdatePasswordHash(context, userID, hash); err != nil {
			return nil, err
		}
		account.PasswordHash = hash
	}

	return account, nil
}

// Dashboard is the member landing view: saved manga, recent reading, and a
// small reading statistic.
type Dashboard struct {
	Bookmarks     []bookmark.View `json:"bookmarks"`
	RecentReads   []history.View  `json:"recent_reads"`
	MangaReadNum  int             `json:"manga_read_count"`
	BookmarkTotal int             `json:"bookmark_total"`
}

/*
GetDashboard assembles the member dashboard.
*/
func (service *Service) GetDashboard(context context.Context, userID int64) (*Dashboard, error) {
	bookmarks, err := service.bookmarks.List(context, userID, pagination.Params{
		Page:  1,
		Limit: constants.EngagementPageSize,
	})
	if err != nil {
		return nil, err
	}

	recent, err := service.history.Recent(context, userID, constants.DashboardHistoryCount)
	if err != nil {
		return nil, err
	}

	mangaRead, err := service.history.DistinctMangaCount(context, userID)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Bookmarks:     bookmarks.Bookmarks,
		RecentReads:   recent,
		MangaReadNum:  mangaRead,
		BookmarkTotal: bookmarks.Meta.Total,
	}, nil
}

// # Admin Surface

// ListResult bundles a page of accounts with pagination metadata.
type ListResult struct {
	Users []*Account      `json:"users"`
	Meta  pagination.Meta `json:"-"`
}

/*
AdminList returns accounts for the admin user table, optionally filtered by
a search term over username and email.
*/
func (service *Service) AdminList(context context.Context, search string, params pagination.Params) (*ListResult, error) {
	accounts, total, err := service.repository.List(context, strings.TrimSpace(search), params.Limit, params.Offset())
	if err != nil {
		return nil, err
	}
	if accounts == nil {
		accounts = []*Account{}
	}

	return &ListResult{
		Users: accounts,
		Meta:  pagination.NewMeta(params.Page, params.Limit, total),
	}, nil
}

/*
ToggleRole flips a user between reader and admin.

Description: An admin cannot change their own role; that guards against a
sole administrator locking themselves out of the back-office.

Returns:
  - *Account: the account with its new role
  - error: forbidden for self-targeting, not found, or storage
*/
func (service *Service) ToggleRole(context context.Context, adminID, targetID int64) (*Account, error) {
	if adminID == targetID {
		return nil, apperr.Forbidden("You cannot change your own role")
	}

	account, err := service.repository.FindByID(context, targetID)
	if err != nil {
		return nil, err
	}

	newRole := account.Role.Toggle()
	if err := service.repository.SetRole(context, targetID, newRole); err != nil {
		return nil, err
	}
	account.Role = newRole

	return account, nil
}

/*
DeleteUser removes a user account and everything it owns.

Description: Self-deletion through the admin surface is refused for the
same lockout reason as [Service.ToggleRole].
*/
func (service *Service) DeleteUser(context context.Context, adminID, targetID int64) error {
	if adminID == targetID {
		return apperr.Forbidden("You cannot delete your own account")
	}

	if _, err := service.repository.FindByID(context, targetID); err != nil {
		return err
	}

	return service.repository.DeleteCascade(context, targetID)
}

/*
AdminStats returns the back-office dashboard summary.
*/
func (service *Service) AdminStats(context context.Context) (*Stats, error) {
	stats, err := service.repository.Stats(context, constants.DashboardHistoryCount)
	if err != nil {
		return nil, err
	}
	if stats.NewestUsers == nil {
		stats.NewestUsers = []*Account{}
	}
	return stats, nil
}
