// Copyright (c) 2026 Mangabay. All rights reserved.

package chapter

import (
	"context"
	"io"
	"strings"

	"github.com/tranquochuy/mangabay/internal/platform/apperr"
	"github.com/tranquochuy/mangabay/internal/storage"
)

// # Contracts & Types

// HistoryRecorder marks a chapter as read for a user. Implemented by the
// library domain's history service.
type HistoryRecorder interface {
	// RecordRead upserts the (user, chapter) reading-history row.
	RecordRead(context context.Context, userID, mangaID, chapterID int64) error
}

// BookmarkLookup resolves the page-level bookmark for a chapter, if any.
// Implemented by the library domain's bookmark service.
type BookmarkLookup interface {
	// PageBookmark returns the bookmarked page number and whether one exists.
	PageBookmark(context context.Context, userID, mangaID, chapterID int64) (int, bool, error)
}

// FileStore is the slice of the upload store the chapter flow needs.
// *storage.FileStore satisfies it.
type FileStore interface {
	Save(category, originalName string, content io.Reader) (string, error)
	Remove(refPath string)
	IngestArchive(category string, archive io.ReaderAt, size int64, ingest func(seq int, refPath string) error) (int, error)
}

// Service implements the reading flow and chapter content management.
type Service struct {
	repository Repository
	history    HistoryRecorder
	bookmarks  BookmarkLookup
	files      FileStore
}

// NewService constructs a new chapter [Service].
func NewService(repository Repository, history HistoryRecorder, bookmarks BookmarkLookup, files FileStore) *Service {
	return &Service{
		repository: repository,
		history:    history,
		bookmarks:  bookmarks,
		files:      files,
	}
}

// # Reading Flow

/*
Read assembles the reader view for a chapter addressed by (manga, number).

Description: Resolves the chapter, loads its ordered pages, and computes the
previous/next neighbors. It also upserts the reader's history row
(read-then-write; the race between concurrent reads of the same chapter is
accepted) and resumes at the page-level bookmark when one exists. Reading
requires a session, so userID is always a real user here.

Parameters:
  - context: context.Context
  - mangaID: int64
  - number: float64
  - userID: int64

Returns:
  - *ReadView: Chapter, pages, navigation, initial page
  - err: NotFound when the (manga, number) pair is absent
*/
func (service *Service) Read(context context.Context, mangaID int64, number float64, userID int64) (*ReadView, error) {
	entity, err := service.repository.FindByMangaAndNumber(context, mangaID, number)
	if err != nil {
		return nil, err
	}

	pages, err := service.repository.PagesByChapter(context, entity.ID)
	if err != nil {
		return nil, err
	}

	previous, next, err := service.repository.Adjacent(context, mangaID, number)
	if err != nil {
		return nil, err
	}

	view := &ReadView{
		Chapter:     entity,
		Pages:       pages,
		Previous:    previous,
		Next:        next,
		InitialPage: 1,
	}

	// The reading view must not fail because the history write did;
	// the row is advisory.
	_ = service.history.RecordRead(context, userID, mangaID, entity.ID)

	pageNumber, ok, err := service.bookmarks.PageBookmark(context, userID, mangaID, entity.ID)
	if err == nil && ok && pageNumber > 0 {
		view.InitialPage = pageNumber
	}

	return view, nil
}

// # Admin Management

// AddInput carries the fields of a new chapter.
type AddInput struct {
	MangaID int64
	Number  float64
	Title   string
}

/*
Add creates a chapter under a manga.

Description: Duplicate numbers are rejected here, on the admin add path.
This lookup is the only guard; there is no unique constraint underneath, so
concurrent adds of the same number can both land. Accepted.

Returns:
  - *Chapter: Created entity
  - err: Conflict on a duplicate number, or database failures
*/
func (service *Service) Add(context context.Context, input AddInput) (*Chapter, error) {
	exists, err := service.repository.NumberExists(context, input.MangaID, input.Number)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Conflict("A chapter with this number already exists")
	}

	entity := &Chapter{
		MangaID: input.MangaID,
		Number:  input.Number,
		Title:   strings.TrimSpace(input.Title),
	}

	if err := service.repository.Create(context, entity); err != nil {
		return nil, err
	}

	return entity, nil
}

/*
List returns the manga's chapters ordered by number ascending.
*/
func (service *Service) List(context context.Context, mangaID int64) ([]*Chapter, error) {
	return service.repository.ListByManga(context, mangaID)
}

/*
Delete removes a chapter with its dependent rows, then best-effort deletes
the stored page files.
*/
func (service *Service) Delete(context context.Context, chapterID int64) error {
	paths, err := service.repository.PageImagePaths(context, chapterID)
	if err != nil {
		return err
	}

	if err := service.repository.DeleteCascade(context, chapterID); err != nil {
		return err
	}

	for _, path := range paths {
		service.files.Remove(path)
	}

	return nil
}

/*
Pages returns the chapter's pages ordered by page number.

Returns:
  - []Page: Ordered pages
  - err: NotFound when the chapter does not exist
*/
func (service *Service) Pages(context context.Context, chapterID int64) ([]Page, error) {
	if _, err := service.repository.FindByID(context, chapterID); err != nil {
		return nil, err
	}
	return service.repository.PagesByChapter(context, chapterID)
}

/*
DeletePage removes a page row and best-effort deletes its stored file.
*/
func (service *Service) DeletePage(context context.Context, pageID int64) error {
	page, err := service.repository.FindPage(context, pageID)
	if err != nil {
		return err
	}

	if err := service.repository.DeletePage(context, pageID); err != nil {
		return err
	}

	service.files.Remove(page.ImageURL)
	return nil
}

// # Page Ingestion

// Upload is one image file submitted through the admin upload form.
type Upload struct {
	Filename string
	Content  io.Reader
}

/*
UploadPages stores submitted images as the chapter's pages.

Description: Page numbers are assigned sequentially from 1 in submission
order. Files with a disallowed extension abort the batch at that file; pages
stored before the failure stay stored.

Returns:
  - []Page: Created pages in order
  - err: NotFound, ValidationError on a bad file type, or storage failures
*/
func (service *Service) UploadPages(context context.Context, chapterID int64, uploads []Upload) ([]Page, error) {
	if _, err := service.repository.FindByID(context, chapterID); err != nil {
		return nil, err
	}
	if len(uploads) == 0 {
		return nil, apperr.ValidationError("No page files were submitted")
	}

	var pages []Page
	for index, upload := range uploads {
		refPath, err := service.files.Save(storage.CategoryPages, upload.Filename, upload.Content)
		if err != nil {
			return pages, err
		}

		page := Page{
			ChapterID:  chapterID,
			PageNumber: index + 1,
			ImageURL:   refPath,
		}
		if err := service.repository.CreatePage(context, &page); err != nil {
			return pages, err
		}

		pages = append(pages, page)
	}

	return pages, nil
}

/*
UploadArchive ingests a ZIP of page images into the chapter.

Description: The archive is extracted, image files are collected and sorted
in natural filename order, and each becomes a page with its 1-based sequence
as the page number. On a mid-archive failure the pages committed before the
failure point remain committed; there is no rollback. Accepted.

Returns:
  - int: Number of pages ingested
  - err: NotFound, ValidationError (bad or empty archive), or STORAGE_ERROR
*/
func (service *Service) UploadArchive(context context.Context, chapterID int64, archive io.ReaderAt, size int64) (int, error) {
	if _, err := service.repository.FindByID(context, chapterID); err != nil {
		return 0, err
	}

	return service.files.IngestArchive(storage.CategoryPages, archive, size, func(seq int, refPath string) error {
		return service.repository.CreatePage(context, &Page{
			ChapterID:  chapterID,
			PageNumber: seq,
			ImageURL:   refPath,
		})
	})
}
