// Copyright (c) 2026 Mangabay. All rights reserved.

package bookmark

import (
	"context"
	"strings"

	"github.com/tranquochuy/mangabay/internal/platform/apperr"
	"github.com/tranquochuy/mangabay/pkg/pagination"
)

// # Service

// Service owns the bookmark lifecycle for both series and page bookmarks.
type Service struct {
	repository Repository
}

// NewService constructs the bookmark service.
func NewService(repository Repository) *Service {
	return &Service{repository: repository}
}

/*
Toggle flips the user's series bookmark for a manga.

Description: When a series bookmark already exists it is removed, otherwise
a new one is created. The bool reports whether the manga is bookmarked
after the call.

Parameters:
  - context: the request context
  - userID: the acting user
  - mangaID: the manga whose bookmark is toggled

Returns:
  - bool: true when the series is now bookmarked
  - error: a storage error
*/
func (service *Service) Toggle(context context.Context, userID, mangaID int64) (bool, error) {
	existing, err := service.repository.FindSeries(context, userID, mangaID)
	if err == nil {
		if err := service.repository.Delete(context, existing.ID); err != nil {
			return false, err
		}
		return false, nil
	}
	if appErr := apperr.As(err); appErr == nil || appErr.Code != "NOT_FOUND" {
		return false, err
	}

	bookmark := &Bookmark{
		UserID:  userID,
		MangaID: mangaID,
	}
	if err := service.repository.Insert(context, bookmark); err != nil {
		return false, err
	}

	return true, nil
}

// UpsertPageInput carries the fields of a page bookmark write.
type UpsertPageInput struct {
	MangaID    int64
	ChapterID  int64
	PageNumber int
	Note       string
}

/*
UpsertPage records or moves the user's page bookmark within a chapter.

Description: A user keeps at most one page bookmark per chapter. A second
write for the same chapter overwrites the stored page number and note
rather than creating another row.

Parameters:
  - context: the request context
  - userID: the acting user
  - input: the bookmark position and note

Returns:
  - *Bookmark: the stored bookmark
  - error: a validation or storage error
*/
func (service *Service) UpsertPage(context context.Context, userID int64, input UpsertPageInput) (*Bookmark, error) {
	if input.PageNumber < 1 {
		return nil, apperr.ValidationError("Page number must be at least 1")
	}
	note := strings.TrimSpace(input.Note)

	existing, err := service.repository.FindPage(context, userID, input.MangaID, input.ChapterID)
	if err == nil {
		if err := service.repository.UpdatePage(context, existing.ID, input.PageNumber, note); err != nil {
			return nil, err
		}
		existing.PageNumber = input.PageNumber
		existing.Note = note
		return existing, nil
	}
	if appErr := apperr.As(err); appErr == nil || appErr.Code != "NOT_FOUND" {
		return nil, err
	}

	chapterID := input.ChapterID
	bookmark := &Bookmark{
		UserID:     userID,
		MangaID:    input.MangaID,
		ChapterID:  &chapterID,
		PageNumber: input.PageNumber,
		Note:       note,
	}
	if err := service.repository.Insert(context, bookmark); err != nil {
		return nil, err
	}

	return bookmark, nil
}

/*
Delete removes one of the user's bookmarks.

Description: Only the owner may delete a bookmark through this path.

Parameters:
  - context: the request context
  - userID: the acting user
  - bookmarkID: the bookmark to remove

Returns:
  - error: not found, forbidden for non owners, or a storage error
*/
func (service *Service) Delete(context context.Context, userID, bookmarkID int64) error {
	bookmark, err := service.repository.FindByID(context, bookmarkID)
	if err != nil {
		return err
	}
	if bookmark.UserID != userID {
		return apperr.Forbidden("You may only remove your own bookmarks")
	}

	return service.repository.Delete(context, bookmarkID)
}

// ListResult bundles a page of bookmark views with pagination metadata.
type ListResult struct {
	Bookmarks []View          `json:"bookmarks"`
	Meta      pagination.Meta `json:"-"`
}

/*
List returns the user's bookmarks newest first.
*/
func (service *Service) List(context context.Context, userID int64, params pagination.Params) (*ListResult, error) {
	views, total, err := service.repository.ListByUser(context, userID, params.Limit, params.Offset())
	if err != nil {
		return nil, err
	}
	if views == nil {
		views = []View{}
	}

	return &ListResult{
		Bookmarks: views,
		Meta:      pagination.NewMeta(params.Page, params.Limit, total),
	}, nil
}

/*
PageBookmark reports the stored page position for a chapter, if any.

Description: Returns the bookmarked page number and true when the user has
a page bookmark in the chapter. Used by the reader to resume position.
*/
func (service *Service) PageBookmark(context context.Context, userID, mangaID, chapterID int64) (int, bool, error) {
	bookmark, err := service.repository.FindPage(context, userID, mangaID, chapterID)
	if err != nil {
		if appErr := apperr.As(err); appErr != nil && appErr.Code == "NOT_FOUND" {
			return 0, false, nil
		}
		return 0, false, err
	}

	return bookmark.PageNumber, true, nil
}
