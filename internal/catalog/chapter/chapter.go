// Copyright (c) 2026 Mangabay. All rights reserved.

/*
Package chapter implements the reading flow and chapter content management.

It owns chapters and their pages: the reader view with previous/next
navigation, and the admin surface for adding chapters and ingesting page
images, either one by one or from a ZIP archive.

# Architecture

Reading-history and bookmark state live in the library domain; this package
reaches them through narrow local interfaces so the read flow stays testable
without the engagement stores.
*/
package chapter

import "time"

// # Domain Entities

// Chapter represents one installment of a series.
type Chapter struct {
	ID        int64     `json:"id"`
	MangaID   int64     `json:"manga_id"`
	Number    float64   `json:"number"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

// Page is a single image of a chapter. PageNumber is assigned at ingestion
// and ordered ascending for display; it carries no uniqueness guarantee.
type Page struct {
	ID         int64  `json:"id"`
	ChapterID  int64  `json:"chapter_id"`
	PageNumber int    `json:"page_number"`
	ImageURL   string `json:"image_url"`
}

// Ref is a lightweight chapter reference used for previous/next navigation.
type Ref struct {
	ID     int64   `json:"id"`
	Number float64 `json:"number"`
}

// ReadView is everything the reader surface needs for one chapter.
type ReadView struct {
	Chapter *Chapter `json:"chapter"`
	Pages   []Page   `json:"pages"`
	// Previous is the chapter with the largest number strictly below, if any.
	Previous *Ref `json:"previous,omitempty"`
	// Next is the chapter with the smallest number strictly above, if any.
	Next *Ref `json:"next,omitempty"`
	// InitialPage is where the reader resumes: the page-level bookmark for
	// this chapter when one exists, else page 1.
	InitialPage int `json:"initial_page"`
}

// # Field Identifiers

const (
	FieldMangaID   = "mangaID"
	FieldChapterID = "chapterID"
	FieldPageID    = "pageID"
	FieldNumber    = "number"
	FieldTitle     = "title"
	FieldPages     = "pages"
	FieldArchive   = "archive"
)
