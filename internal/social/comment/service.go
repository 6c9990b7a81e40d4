// Copyright (c) 2026 Mangabay. All rights reserved.

package comment

import (
	"context"
	"strings"

	"github.com/tranquochuy/mangabay/internal/platform/apperr"
	"github.com/tranquochuy/mangabay/internal/platform/constants"
	"github.com/tranquochuy/mangabay/internal/platform/sec"
	"github.com/tranquochuy/mangabay/internal/platform/validate"
	"github.com/tranquochuy/mangabay/pkg/pagination"
)

// # Service

// Service owns comment posting, editing, and moderation.
type Service struct {
	repository Repository
}

// NewService constructs the comment service.
func NewService(repository Repository) *Service {
	return &Service{repository: repository}
}

// cleanBody trims the body and validates its length.
func cleanBody(body string) (string, error) {
	body = strings.TrimSpace(body)

	validator := &validate.Validator{}
	validator.Required(FieldBody, body)
	validator.MaxLen(FieldBody, body, constants.CommentMaxLength)
	if err := validator.Err(); err != nil {
		return "", err
	}

	return body, nil
}

/*
Add posts a comment on a chapter.

Parameters:
  - context: the request context
  - userID: the comment author
  - chapterID: the chapter being discussed
  - body: the comment text

Returns:
  - *Comment: the stored comment
  - error: a validation or storage error
*/
func (service *Service) Add(context context.Context, userID, chapterID int64, body string) (*Comment, error) {
	body, err := cleanBody(body)
	if err != nil {
		return nil, err
	}

	comment := &Comment{
		UserID:    userID,
		ChapterID: chapterID,
		Body:      body,
	}
	if err := service.repository.Insert(context, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

/*
Edit replaces the body of the caller's own comment.

Description: Only the author may edit. Administrators moderate by deletion,
never by rewriting another user's words.

Returns:
  - *Comment: the updated comment
  - error: not found, forbidden for non authors, validation, or storage
*/
func (service *Service) Edit(context context.Context, userID, commentID int64, body string) (*Comment, error) {
	body, err := cleanBody(body)
	if err != nil {
		return nil, err
	}

	comment, err := service.repository.FindByID(context, commentID)
	if err != nil {
		return nil, err
	}
	if comment.UserID != userID {
		return nil, apperr.Forbidden("You may only edit your own comments")
	}

	if err := service.repository.UpdateBody(context, commentID, body); err != nil {
		return nil, err
	}
	comment.Body = body

	return comment, nil
}

/*
Delete removes a comment.

Description: The author may always delete their own comment; administrators
may delete any comment.

Parameters:
  - context: the request context
  - claims: the acting user's session identity
  - commentID: the comment to remove

Returns:
  - error: not found, forbidden, or a storage error
*/
func (service *Service) Delete(context context.Context, claims *sec.AuthClaims, commentID int64) error {
	comment, err := service.repository.FindByID(context, commentID)
	if err != nil {
		return err
	}
	if comment.UserID != claims.UserID && !claims.Role.IsAdmin() {
		return apperr.Forbidden("You may only remove your own comments")
	}

	return service.repository.Delete(context, commentID)
}

/*
ListByChapter returns a chapter's comment thread oldest first.
*/
func (service *Service) ListByChapter(context context.Context, chapterID int64) ([]View, error) {
	views, err := service.repository.ListByChapter(context, chapterID)
	if err != nil {
		return nil, err
	}
	if views == nil {
		views = []View{}
	}
	return views, nil
}

// ModerationResult bundles a moderation page with pagination metadata.
type ModerationResult struct {
	Comments []ModerationView `json:"comments"`
	Meta     pagination.Meta  `json:"-"`
}

/*
Moderation returns comments across all chapters newest first for the admin
surface, optionally filtered by a search term.
*/
func (service *Service) Moderation(context context.Context, search string, params pagination.Params) (*ModerationResult, error) {
	views, total, err := service.repository.Moderation(context, strings.TrimSpace(search), params.Limit, params.Offset())
	if err != nil {
		return nil, err
	}
	if views == nil {
		views = []ModerationView{}
	}

	return &ModerationResult{
		Comments: views,
		Meta:     pagination.NewMeta(params.Page, params.Limit, total),
	}, nil
}
