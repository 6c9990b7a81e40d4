// Copyright (c) 2026 Mangabay. All rights reserved.

package comment

import "context"

// Repository defines persistence for chapter comments.
type Repository interface {
	/*
		FindByID returns the comment with the given ID.

		Returns:
		  - *Comment: the stored comment
		  - error: apperr.NotFound when no such comment exists
	*/
	FindByID(context context.Context, id int64) (*Comment, error)

	/*
		ListByChapter returns a chapter's comments oldest first with author
		usernames.
	*/
	ListByChapter(context context.Context, chapterID int64) ([]View, error)

	/*
		Insert persists a new comment and assigns its ID and timestamps.
	*/
	Insert(context context.Context, comment *Comment) error

	/*
		UpdateBody replaces a comment's body and refreshes its updated
		timestamp.
	*/
	UpdateBody(context context.Context, id int64, body string) error

	/*
		Delete removes a comment row.
	*/
	Delete(context context.Context, id int64) error

	/*
		Moderation returns comments across all chapters newest first.

		Description: When search is non-empty, matches it case-insensitively
		against the comment body, the author's username, and the manga title.

		Returns:
		  - []ModerationView: one page of comments with catalog context
		  - int: the total matching comment count
		  - error: a storage error
	*/
	Moderation(context context.Context, search string, limit, offset int) ([]ModerationView, int, error)
}
