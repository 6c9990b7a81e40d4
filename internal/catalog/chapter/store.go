// Copyright (c) 2026 Mangabay. All rights reserved.

package chapter

import "context"

// # Chapter Data Access

// Repository defines the data access contract for chapters and pages.
type Repository interface {

	/*
		FindByID returns the chapter with the given ID.

		Returns:
		  - *Chapter: Hydrated entity
		  - error: apperr.NotFound or database errors
	*/
	FindByID(context context.Context, id int64) (*Chapter, error)

	/*
		FindByMangaAndNumber resolves a chapter by its exact (manga, number)
		pair, the coordinates used by reader URLs.

		Returns:
		  - *Chapter: Hydrated entity
		  - error: apperr.NotFound or database errors
	*/
	FindByMangaAndNumber(context context.Context, mangaID int64, number float64) (*Chapter, error)

	/*
		ListByManga returns the manga's chapters ordered by number ascending.
	*/
	ListByManga(context context.Context, mangaID int64) ([]*Chapter, error)

	/*
		Adjacent returns the neighboring chapters of the given number within
		a manga: the largest number strictly below and the smallest strictly
		above. Either may be nil at the ends of the series.
	*/
	Adjacent(context context.Context, mangaID int64, number float64) (previous *Ref, next *Ref, err error)

	/*
		NumberExists reports whether the manga already has a chapter with
		this number. Checked on the admin add path.
	*/
	NumberExists(context context.Context, mangaID int64, number float64) (bool, error)

	/*
		Create persists a new chapter and assigns its ID.
	*/
	Create(context context.Context, chapter *Chapter) error

	/*
		DeleteCascade removes the chapter and its dependent rows (comments,
		pages, chapter-scoped bookmarks, reading history) in one transaction,
		children first.

		Returns:
		  - error: apperr.NotFound when the chapter does not exist
	*/
	DeleteCascade(context context.Context, chapterID int64) error

	/*
		PagesByChapter returns the chapter's pages ordered by page number.
	*/
	PagesByChapter(context context.Context, chapterID int64) ([]Page, error)

	/*
		CreatePage persists a new page row and assigns its ID.
	*/
	CreatePage(context context.Context, page *Page) error

	/*
		FindPage returns a page row by ID.

		Returns:
		  - *Page: Hydrated entity
		  - error: apperr.NotFound or database errors
	*/
	FindPage(context context.Context, pageID int64) (*Page, error)

	/*
		DeletePage removes a page row.

		Returns:
		  - error: apperr.NotFound when the row does not exist
	*/
	DeletePage(context context.Context, pageID int64) error

	/*
		PageImagePaths returns the stored image paths of the chapter's pages.
		Collected before a cascade delete for best-effort file cleanup.
	*/
	PageImagePaths(context context.Context, chapterID int64) ([]string, error)
}
