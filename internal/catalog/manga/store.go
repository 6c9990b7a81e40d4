// Copyright (c) 2026 Mangabay. All rights reserved.

package manga

import "context"

// Filter narrows the public catalog listing.
type Filter struct {
	// Query matches title, author, or description case-insensitively.
	Query string
	// TitleAuthorOnly narrows Query to the title and author columns. The
	// back-office list uses this so a word buried in a synopsis does not
	// surface the manga.
	TitleAuthorOnly bool
	// Genre is a substring match against the comma-joined genres column.
	Genre string
}

// # Manga Data Access

// Repository defines the data access contract for the catalog.
type Repository interface {

	/*
		List returns a filtered, paginated slice of manga and the total count.

		Parameters:
		  - context: context.Context
		  - filter: Filter
		  - limit: int
		  - offset: int

		Returns:
		  - []*Manga: Page of catalog entries ordered by title
		  - int: Total count matching the filter
		  - error: Database execution errors
	*/
	List(context context.Context, filter Filter, limit, offset int) ([]*Manga, int, error)

	/*
		GenreColumns returns the raw comma-joined genres column of every manga.
		The service layer tokenizes and deduplicates them.
	*/
	GenreColumns(context context.Context) ([]string, error)

	/*
		Featured returns up to n random manga for the home surface.
	*/
	Featured(context context.Context, n int) ([]*Manga, error)

	/*
		FindByID returns the manga with the given ID.

		Returns:
		  - *Manga: Hydrated entity
		  - error: apperr.NotFound or database errors
	*/
	FindByID(context context.Context, id int64) (*Manga, error)

	/*
		ChaptersByManga returns chapter summaries ordered by number ascending.
	*/
	ChaptersByManga(context context.Context, mangaID int64) ([]ChapterSummary, error)

	/*
		HasBookmark reports whether the user holds a series-level bookmark
		(a bookmark row with no chapter context) for the manga.
	*/
	HasBookmark(context context.Context, userID, mangaID int64) (bool, error)

	/*
		Create persists a new series and assigns its ID.
	*/
	Create(context context.Context, manga *Manga) error

	/*
		Update persists changes to an existing series.

		Returns:
		  - error: apperr.NotFound when the row is gone, or database errors
	*/
	Update(context context.Context, manga *Manga) error

	/*
		DeleteCascade removes the series and all dependent rows (comments on
		its chapters, pages, bookmarks, reading history, chapters) in one
		transaction, children first.

		Returns:
		  - error: apperr.NotFound when the series does not exist
	*/
	DeleteCascade(context context.Context, mangaID int64) error

	/*
		PageImagePaths returns the stored image paths of every page under the
		manga, plus its cover path. Used for best-effort file cleanup after a
		cascade delete.
	*/
	PageImagePaths(context context.Context, mangaID int64) ([]string, error)
}
