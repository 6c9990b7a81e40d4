// Copyright (c) 2026 Mangabay. All rights reserved.

package bookmark

import "context"

// # Bookmark Data Access

// Repository defines the data access contract for saved positions.
type Repository interface {

	/*
		FindByID returns the bookmark with the given ID.

		Returns:
		  - *Bookmark: Hydrated entity
		  - error: apperr.NotFound or database errors
	*/
	FindByID(context context.Context, id int64) (*Bookmark, error)

	/*
		FindSeries returns the user's series-level bookmark for a manga
		(the row with no chapter context), if one exists.

		Returns:
		  - *Bookmark: Hydrated entity
		  - error: apperr.NotFound when absent
	*/
	FindSeries(context context.Context, userID, mangaID int64) (*Bookmark, error)

	/*
		FindPage returns the user's page-level bookmark for a chapter,
		if one exists.

		Returns:
		  - *Bookmark: Hydrated entity
		  - error: apperr.NotFound when absent
	*/
	FindPage(context context.Context, userID, mangaID, chapterID int64) (*Bookmark, error)

	/*
		Insert persists a new bookmark and assigns its ID.
	*/
	Insert(context context.Context, bookmark *Bookmark) error

	/*
		UpdatePage overwrites the position fields of an existing page
		bookmark and refreshes its timestamp.
	*/
	UpdatePage(context context.Context, id int64, pageNumber int, note string) error

	/*
		Delete removes a bookmark row.

		Returns:
		  - error: apperr.NotFound when the row does not exist
	*/
	Delete(context context.Context, id int64) error

	/*
		ListByUser returns the user's bookmarks newest first, decorated
		with display fields, plus the total count.
	*/
	ListByUser(context context.Context, userID int64, limit, offset int) ([]View, int, error)
}
