// Copyright (c) 2026 Mangabay. All rights reserved.

/*
Package bookmark implements the reader's saved-position layer.

Two kinds of rows live in the same table:

  - Series bookmarks: no chapter context, toggled from a series page.
  - Page bookmarks: pinned to a (manga, chapter, page) position with an
    optional note, overwritten in place as the reader moves on.

At most one series row per (user, manga) and one page row per (user, manga,
chapter) is expected. The expectation is enforced by the read-then-write
application logic, not by database constraints; the race between concurrent
writers is an accepted property.
*/
package bookmark

import "time"

// # Domain Entities

// Bookmark is one saved position. ChapterID is nil for series bookmarks.
type Bookmark struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	MangaID    int64     `json:"manga_id"`
	ChapterID  *int64    `json:"chapter_id,omitempty"`
	PageNumber int       `json:"page_number,omitempty"`
	Note       string    `json:"note,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// View decorates a bookmark with display fields for the library listing.
type View struct {
	Bookmark
	MangaTitle    string   `json:"manga_title"`
	ChapterNumber *float64 `json:"chapter_number,omitempty"`
}

// # Field Identifiers

const (
	FieldMangaID    = "mangaID"
	FieldBookmarkID = "bookmarkID"
	FieldChapterID  = "chapter_id"
	FieldPageNumber = "page_number"
	FieldNote       = "note"
)
