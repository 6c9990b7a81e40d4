// Copyright (c) 2026 Mangabay. All rights reserved.

/*
Package manga implements the catalog domain: series discovery, detail pages,
and the admin content-management surface.

# Architecture

This layer owns the Manga aggregate. Chapters are summarized here for the
detail view; their full lifecycle (pages, uploads) lives in the chapter
package.
*/
package manga

import (
	"time"

	"github.com/tranquochuy/mangabay/pkg/query"
)

// # Domain Entities

// Manga represents one series in the catalog.
type Manga struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Description string    `json:"description"`
	// Genres is stored as a single comma-joined column; GenreList splits it.
	Genres        string    `json:"genres"`
	CoverImageURL string    `json:"cover_image_url,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// GenreList returns the trimmed genre tokens of the comma-joined column.
func (m *Manga) GenreList() []string {
	return query.StringSlice(m.Genres)
}

// ChapterSummary is the chapter projection shown on a series detail page.
type ChapterSummary struct {
	ID        int64     `json:"id"`
	Number    float64   `json:"number"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

// Detail is the full series view: the manga, its chapters in reading order,
// and whether the requesting user has a series-level bookmark.
type Detail struct {
	Manga      *Manga           `json:"manga"`
	Chapters   []ChapterSummary `json:"chapters"`
	Bookmarked bool             `json:"bookmarked"`
}

// # Field Identifiers

const (
	FieldTitle       = "title"
	FieldAuthor      = "author"
	FieldDescription = "description"
	FieldGenres      = "genres"
	FieldCover       = "cover"
	FieldMangaID     = "mangaID"
)
