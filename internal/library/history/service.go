// Copyright (c) 2026 Mangabay. All rights reserved.

package history

import (
	"context"

	"github.com/tranquochuy/mangabay/internal/platform/apperr"
	"github.com/tranquochuy/mangabay/pkg/pagination"
)

// # Service

// Service owns the reading-history lifecycle.
type Service struct {
	repository Repository
}

// NewService constructs the history service.
func NewService(repository Repository) *Service {
	return &Service{repository: repository}
}

/*
RecordRead upserts a history entry for a chapter read.

Description: The first read of a chapter creates an entry; later reads of
the same chapter refresh the existing entry's timestamp. The reader calls
this on every chapter open, so failures here must not break reading.

Parameters:
  - context: the request context
  - userID: the reading user
  - mangaID: the manga the chapter belongs to
  - chapterID: the chapter that was opened

Returns:
  - error: a storage error
*/
func (service *Service) RecordRead(context context.Context, userID, mangaID, chapterID int64) error {
	existing, err := service.repository.Find(context, userID, chapterID)
	if err == nil {
		return service.repository.Touch(context, existing.ID)
	}
	if appErr := apperr.As(err); appErr == nil || appErr.Code != "NOT_FOUND" {
		return err
	}

	return service.repository.Insert(context, &Entry{
		UserID:    userID,
		MangaID:   mangaID,
		ChapterID: chapterID,
	})
}

// ListResult bundles a page of history views with pagination metadata.
type ListResult struct {
	Entries []View          `json:"entries"`
	Meta    pagination.Meta `json:"-"`
}

/*
List returns the user's reading history most recent first.
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
		Entries: views,
		Meta:    pagination.NewMeta(params.Page, params.Limit, total),
	}, nil
}

/*
Clear removes the user's entire reading history.
*/
func (service *Service) Clear(context context.Context, userID int64) error {
	return service.repository.Clear(context, userID)
}

/*
Recent returns the user's n most recent history entries.
*/
func (service *Service) Recent(context context.Context, userID int64, n int) ([]View, error) {
	views, err := service.repository.Recent(context, userID, n)
	if err != nil {
		return nil, err
	}
	if views == nil {
		views = []View{}
	}
	return views, nil
}

/*
DistinctMangaCount returns how many distinct manga the user has read.
*/
func (service *Service) DistinctMangaCount(context context.Context, userID int64) (int, error) {
	return service.repository.DistinctMangaCount(context, userID)
}
