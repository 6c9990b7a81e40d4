// Copyright (c) 2026 Mangabay. All rights reserved.

package history

import "context"

// Repository defines persistence for reading-history entries.
type Repository interface {
	/*
		Find returns the user's history entry for a chapter.

		Parameters:
		  - context: the request context
		  - userID: the reading user
		  - chapterID: the chapter that was read

		Returns:
		  - *Entry: the stored entry
		  - error: apperr.NotFound when the user has not read the chapter
	*/
	Find(context context.Context, userID, chapterID int64) (*Entry, error)

	/*
		Insert persists a new entry and assigns its ID.
	*/
	Insert(context context.Context, entry *Entry) error

	/*
		Touch refreshes an entry's read timestamp to now.
	*/
	Touch(context context.Context, id int64) error

	/*
		ListByUser returns the user's history most recent first.

		Returns:
		  - []View: one page of entries with manga titles and chapter numbers
		  - int: the total entry count for the user
		  - error: a storage error
	*/
	ListByUser(context context.Context, userID int64, limit, offset int) ([]View, int, error)

	/*
		Recent returns the user's n most recent entries with display fields.
	*/
	Recent(context context.Context, userID int64, n int) ([]View, error)

	/*
		Clear deletes all of the user's history entries.
	*/
	Clear(context context.Context, userID int64) error

	/*
		DistinctMangaCount returns how many distinct manga the user has read.
	*/
	DistinctMangaCount(context context.Context, userID int64) (int, error)
}
