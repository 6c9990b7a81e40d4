// Copyright (c) 2026 Mangabay. All rights reserved.

package chapter

import (
	"archive/zip"
	"bytes"
	"context"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tranquochuy/mangabay/internal/platform/apperr"
	"github.com/tranquochuy/mangabay/internal/storage"
)

// # In-Memory Fakes

type fakeRepository struct {
	chapters   map[int64]*Chapter
	pages      map[int64][]Page
	nextID     int64
	nextPageID int64
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		chapters:   map[int64]*Chapter{},
		pages:      map[int64][]Page{},
		nextID:     1,
		nextPageID: 1,
	}
}

func (f *fakeRepository) FindByID(_ context.Context, id int64) (*Chapter, error) {
	if c, ok := f.chapters[id]; ok {
		return c, nil
	}
	return nil, apperr.NotFound("Chapter")
}

func (f *fakeRepository) FindByMangaAndNumber(_ context.Context, mangaID int64, number float64) (*Chapter, error) {
	for _, c := range f.chapters {
		if c.MangaID == mangaID && c.Number == number {
			return c, nil
		}
	}
	return nil, apperr.NotFound("Chapter")
}

func (f *fakeRepository) ListByManga(_ context.Context, mangaID int64) ([]*Chapter, error) {
	var chapters []*Chapter
	for _, c := range f.chapters {
		if c.MangaID == mangaID {
			chapters = append(chapters, c)
		}
	}
	sort.Slice(chapters, func(i, j int) bool { return chapters[i].Number < chapters[j].Number })
	return chapters, nil
}

func (f *fakeRepository) Adjacent(_ context.Context, mangaID int64, number float64) (*Ref, *Ref, error) {
	var previous, next *Ref
	for _, c := range f.chapters {
		if c.MangaID != mangaID {
			continue
		}
		if c.Number < number && (previous == nil || c.Number > previous.Number) {
			previous = &Ref{ID: c.ID, Number: c.Number}
		}
		if c.Number > number && (next == nil || c.Number < next.Number) {
			next = &Ref{ID: c.ID, Number: c.Number}
		}
	}
	return previous, next, nil
}

func (f *fakeRepository) NumberExists(_ context.Context, mangaID int64, number float64) (bool, error) {
	for _, c := range f.chapters {
		if c.MangaID == mangaID && c.Number == number {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepository) Create(_ context.Context, chapter *Chapter) error {
	chapter.ID = f.nextID
	f.nextID++
	f.chapters[chapter.ID] = chapter
	return nil
}

func (f *fakeRepository) DeleteCascade(_ context.Context, chapterID int64) error {
	if _, ok := f.chapters[chapterID]; !ok {
		return apperr.NotFound("Chapter")
	}
	delete(f.chapters, chapterID)
	delete(f.pages, chapterID)
	return nil
}

func (f *fakeRepository) PagesByChapter(_ context.Context, chapterID int64) ([]Page, error) {
	pages := append([]Page(nil), f.pages[chapterID]...)
	sort.Slice(pages, func(i, j int) bool { return pages[i].PageNumber < pages[j].PageNumber })
	return pages, nil
}

func (f *fakeRepository) CreatePage(_ context.Context, page *Page) error {
	page.ID = f.nextPageID
	f.nextPageID++
	f.pages[page.ChapterID] = append(f.pages[page.ChapterID], *page)
	return nil
}

func (f *fakeRepository) FindPage(_ context.Context, pageID int64) (*Page, error) {
	for _, pages := range f.pages {
		for _, page := range pages {
			if page.ID == pageID {
				found := page
				return &found, nil
			}
		}
	}
	return nil, apperr.NotFound("Page")
}

func (f *fakeRepository) DeletePage(_ context.Context, pageID int64) error {
	for chapterID, pages := range f.pages {
		for i, page := range pages {
			if page.ID == pageID {
				f.pages[chapterID] = append(pages[:i], pages[i+1:]...)
				return nil
			}
		}
	}
	return apperr.NotFound("Page")
}

func (f *fakeRepository) PageImagePaths(_ context.Context, chapterID int64) ([]string, error) {
	var paths []string
	for _, page := range f.pages[chapterID] {
		paths = append(paths, page.ImageURL)
	}
	return paths, nil
}

type fakeHistory struct {
	records [][3]int64 // (userID, mangaID, chapterID)
}

func (f *fakeHistory) RecordRead(_ context.Context, userID, mangaID, chapterID int64) error {
	f.records = append(f.records, [3]int64{userID, mangaID, chapterID})
	return nil
}

type fakeBookmarks struct {
	pages map[[3]int64]int // (userID, mangaID, chapterID) → page number
}

func (f *fakeBookmarks) PageBookmark(_ context.Context, userID, mangaID, chapterID int64) (int, bool, error) {
	page, ok := f.pages[[3]int64{userID, mangaID, chapterID}]
	return page, ok, nil
}

func newTestService(t *testing.T) (*Service, *fakeRepository, *fakeHistory, *fakeBookmarks) {
	t.Helper()
	repo := newFakeRepository()
	history := &fakeHistory{}
	bookmarks := &fakeBookmarks{pages: map[[3]int64]int{}}
	files := storage.NewFileStore(t.TempDir())
	return NewService(repo, history, bookmarks, files), repo, history, bookmarks
}

func addChapter(t *testing.T, service *Service, mangaID int64, number float64) *Chapter {
	t.Helper()
	entity, err := service.Add(context.Background(), AddInput{MangaID: mangaID, Number: number})
	require.NoError(t, err)
	return entity
}

// # Reading Flow

func TestService_Read(t *testing.T) {
	service, repo, history, _ := newTestService(t)
	addChapter(t, service, 1, 1)
	middle := addChapter(t, service, 1, 1.5)
	addChapter(t, service, 1, 2)
	repo.pages[middle.ID] = []Page{
		{ID: 1, ChapterID: middle.ID, PageNumber: 1, ImageURL: "/static/uploads/pages/a.png"},
		{ID: 2, ChapterID: middle.ID, PageNumber: 2, ImageURL: "/static/uploads/pages/b.png"},
	}

	view, err := service.Read(context.Background(), 1, 1.5, 7)
	require.NoError(t, err)

	assert.Equal(t, middle.ID, view.Chapter.ID)
	require.Len(t, view.Pages, 2)
	require.NotNil(t, view.Previous)
	require.NotNil(t, view.Next)
	assert.Equal(t, 1.0, view.Previous.Number)
	assert.Equal(t, 2.0, view.Next.Number)
	assert.Equal(t, 1, view.InitialPage)

	// The authenticated read landed in the history exactly once.
	require.Len(t, history.records, 1)
	assert.Equal(t, [3]int64{7, 1, middle.ID}, history.records[0])
}

func TestService_Read_EdgesOfSeries(t *testing.T) {
	service, _, _, _ := newTestService(t)
	addChapter(t, service, 1, 1)
	addChapter(t, service, 1, 2)

	first, err := service.Read(context.Background(), 1, 1, 7)
	require.NoError(t, err)
	assert.Nil(t, first.Previous)
	require.NotNil(t, first.Next)

	last, err := service.Read(context.Background(), 1, 2, 7)
	require.NoError(t, err)
	require.NotNil(t, last.Previous)
	assert.Nil(t, last.Next)
}

func TestService_Read_KeepsFractionalNumbersExact(t *testing.T) {
	service, _, _, _ := newTestService(t)
	addChapter(t, service, 1, 10.125)

	view, err := service.Read(context.Background(), 1, 10.125, 7)
	require.NoError(t, err)
	assert.Equal(t, 10.125, view.Chapter.Number)
}

func TestService_Read_NotFound(t *testing.T) {
	service, _, history, _ := newTestService(t)
	addChapter(t, service, 1, 1)

	_, err := service.Read(context.Background(), 1, 9, 7)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
	assert.Empty(t, history.records)
}

func TestService_Read_ResumesAtBookmarkedPage(t *testing.T) {
	service, _, _, bookmarks := newTestService(t)
	entity := addChapter(t, service, 1, 1)
	bookmarks.pages[[3]int64{7, 1, entity.ID}] = 12

	view, err := service.Read(context.Background(), 1, 1, 7)
	require.NoError(t, err)
	assert.Equal(t, 12, view.InitialPage)

	// A different reader without a bookmark starts at page 1.
	other, err := service.Read(context.Background(), 1, 1, 8)
	require.NoError(t, err)
	assert.Equal(t, 1, other.InitialPage)
}

// # Admin Management

func TestService_Add_DuplicateNumber(t *testing.T) {
	service, _, _, _ := newTestService(t)
	addChapter(t, service, 1, 3)

	_, err := service.Add(context.Background(), AddInput{MangaID: 1, Number: 3})
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "CONFLICT", appErr.Code)

	// The same number under another manga is fine.
	_, err = service.Add(context.Background(), AddInput{MangaID: 2, Number: 3})
	require.NoError(t, err)
}

func TestService_Delete_Cascade(t *testing.T) {
	service, repo, _, _ := newTestService(t)
	entity := addChapter(t, service, 1, 1)
	repo.pages[entity.ID] = []Page{{ID: 1, ChapterID: entity.ID, PageNumber: 1, ImageURL: "/static/uploads/pages/a.png"}}

	require.NoError(t, service.Delete(context.Background(), entity.ID))
	assert.Empty(t, repo.chapters)
	assert.Empty(t, repo.pages)

	err := service.Delete(context.Background(), entity.ID)
	require.Error(t, err)
}

// # Page Ingestion

func TestService_UploadPages_SequentialNumbering(t *testing.T) {
	service, _, _, _ := newTestService(t)
	entity := addChapter(t, service, 1, 1)

	pages, err := service.UploadPages(context.Background(), entity.ID, []Upload{
		{Filename: "cover.png", Content: strings.NewReader("a")},
		{Filename: "spread.jpg", Content: strings.NewReader("b")},
		{Filename: "end.webp", Content: strings.NewReader("c")},
	})
	require.NoError(t, err)
	require.Len(t, pages, 3)

	// Submission order wins, regardless of filenames.
	for i, page := range pages {
		assert.Equal(t, i+1, page.PageNumber)
	}
}

func TestService_UploadPages_StopsAtDisallowedType(t *testing.T) {
	service, repo, _, _ := newTestService(t)
	entity := addChapter(t, service, 1, 1)

	pages, err := service.UploadPages(context.Background(), entity.ID, []Upload{
		{Filename: "p1.png", Content: strings.NewReader("a")},
		{Filename: "virus.exe", Content: strings.NewReader("b")},
		{Filename: "p3.png", Content: strings.NewReader("c")},
	})
	require.Error(t, err)

	// The page stored before the failure stays stored.
	assert.Len(t, pages, 1)
	assert.Len(t, repo.pages[entity.ID], 1)
}

func TestService_UploadPages_RequiresFiles(t *testing.T) {
	service, _, _, _ := newTestService(t)
	entity := addChapter(t, service, 1, 1)

	_, err := service.UploadPages(context.Background(), entity.ID, nil)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func buildZip(t *testing.T, names ...string) []byte {
	t.Helper()
	var buf bytes.Buffer
	writer := zip.NewWriter(&buf)
	for _, name := range names {
		entry, err := writer.Create(name)
		require.NoError(t, err)
		_, err = entry.Write([]byte(name))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return buf.Bytes()
}

func TestService_UploadArchive_NaturalOrder(t *testing.T) {
	service, _, _, _ := newTestService(t)
	entity := addChapter(t, service, 1, 1)

	raw := buildZip(t, "page10.png", "page2.png", "page1.png", "notes.txt")

	count, err := service.UploadArchive(context.Background(), entity.ID, bytes.NewReader(raw), int64(len(raw)))
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	pages, err := service.Pages(context.Background(), entity.ID)
	require.NoError(t, err)
	require.Len(t, pages, 3)

	// Natural filename order decides the page numbers: 1, 2, 10.
	assert.Contains(t, pages[0].ImageURL, "page1.png")
	assert.Contains(t, pages[1].ImageURL, "page2.png")
	assert.Contains(t, pages[2].ImageURL, "page10.png")
	for i, page := range pages {
		assert.Equal(t, i+1, page.PageNumber)
	}
}

func TestService_UploadArchive_UnknownChapter(t *testing.T) {
	service, _, _, _ := newTestService(t)

	raw := buildZip(t, "page1.png")
	_, err := service.UploadArchive(context.Background(), 99, bytes.NewReader(raw), int64(len(raw)))
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}
