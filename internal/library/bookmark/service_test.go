// Copyright (c) 2026 Mangabay. All rights reserved.

package bookmark

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tranquochuy/mangabay/internal/platform/apperr"
	"github.com/tranquochuy/mangabay/pkg/pagination"
)

// # Fakes

type fakeRepository struct {
	nextID    int64
	bookmarks map[int64]*Bookmark
	titles    map[int64]string
	numbers   map[int64]float64
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		nextID:    1,
		bookmarks: make(map[int64]*Bookmark),
		titles:    make(map[int64]string),
		numbers:   make(map[int64]float64),
	}
}

func (repo *fakeRepository) FindByID(_ context.Context, id int64) (*Bookmark, error) {
	bookmark, ok := repo.bookmarks[id]
	if !ok {
		return nil, apperr.NotFound("Bookmark")
	}
	clone := *bookmark
	return &clone, nil
}

func (repo *fakeRepository) FindSeries(_ context.Context, userID, mangaID int64) (*Bookmark, error) {
	for _, bookmark := range repo.bookmarks {
		if bookmark.UserID == userID && bookmark.MangaID == mangaID && bookmark.ChapterID == nil {
			clone := *bookmark
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("Bookmark")
}

func (repo *fakeRepository) FindPage(_ context.Context, userID, mangaID, chapterID int64) (*Bookmark, error) {
	for _, bookmark := range repo.bookmarks {
		if bookmark.UserID == userID && bookmark.MangaID == mangaID &&
			bookmark.ChapterID != nil && *bookmark.ChapterID == chapterID {
			clone := *bookmark
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("Bookmark")
}

func (repo *fakeRepository) Insert(_ context.Context, bookmark *Bookmark) error {
	bookmark.ID = repo.nextID
	repo.nextID++
	if bookmark.CreatedAt.IsZero() {
		bookmark.CreatedAt = time.Now()
	}
	clone := *bookmark
	repo.bookmarks[bookmark.ID] = &clone
	return nil
}

func (repo *fakeRepository) UpdatePage(_ context.Context, id int64, pageNumber int, note string) error {
	bookmark, ok := repo.bookmarks[id]
	if !ok {
		return apperr.NotFound("Bookmark")
	}
	bookmark.PageNumber = pageNumber
	bookmark.Note = note
	bookmark.CreatedAt = time.Now()
	return nil
}

func (repo *fakeRepository) Delete(_ context.Context, id int64) error {
	if _, ok := repo.bookmarks[id]; !ok {
		return apperr.NotFound("Bookmark")
	}
	delete(repo.bookmarks, id)
	return nil
}

func (repo *fakeRepository) ListByUser(_ context.Context, userID int64, limit, offset int) ([]View, int, error) {
	var views []View
	for _, bookmark := range repo.bookmarks {
		if bookmark.UserID != userID {
			continue
		}
		view := View{Bookmark: *bookmark, MangaTitle: repo.titles[bookmark.MangaID]}
		if bookmark.ChapterID != nil {
			number := repo.numbers[*bookmark.ChapterID]
			view.ChapterNumber = &number
		}
		views = append(views, view)
	}
	sort.Slice(views, func(i, j int) bool { return views[i].CreatedAt.After(views[j].CreatedAt) })

	total := len(views)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return views[offset:end], total, nil
}

// # Tests

func TestToggle_RoundTrip(t *testing.T) {
	repo := newFakeRepository()
	service := NewService(repo)
	ctx := context.Background()

	bookmarked, err := service.Toggle(ctx, 1, 42)
	require.NoError(t, err)
	assert.True(t, bookmarked)

	stored, err := repo.FindSeries(ctx, 1, 42)
	require.NoError(t, err)
	assert.Nil(t, stored.ChapterID)

	bookmarked, err = service.Toggle(ctx, 1, 42)
	require.NoError(t, err)
	assert.False(t, bookmarked)

	_, err = repo.FindSeries(ctx, 1, 42)
	require.Error(t, err)
}

func TestToggle_DoesNotTouchPageBookmarks(t *testing.T) {
	repo := newFakeRepository()
	service := NewService(repo)
	ctx := context.Background()

	_, err := service.UpsertPage(ctx, 1, UpsertPageInput{MangaID: 42, ChapterID: 7, PageNumber: 3})
	require.NoError(t, err)

	bookmarked, err := service.Toggle(ctx, 1, 42)
	require.NoError(t, err)
	assert.True(t, bookmarked, "a page bookmark must not count as a series bookmark")

	page, found, err := service.PageBookmark(ctx, 1, 42, 7)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 3, page)
}

func TestUpsertPage_KeepsOneRowPerChapter(t *testing.T) {
	repo := newFakeRepository()
	service := NewService(repo)
	ctx := context.Background()

	first, err := service.UpsertPage(ctx, 1, UpsertPageInput{MangaID: 42, ChapterID: 7, PageNumber: 3, Note: "cliffhanger"})
	require.NoError(t, err)

	second, err := service.UpsertPage(ctx, 1, UpsertPageInput{MangaID: 42, ChapterID: 7, PageNumber: 18, Note: "  fight scene  "})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "a second write for the same chapter must overwrite, not duplicate")
	assert.Equal(t, 18, second.PageNumber)
	assert.Equal(t, "fight scene", second.Note)
	assert.Len(t, repo.bookmarks, 1)
}

func TestUpsertPage_SeparateChaptersSeparateRows(t *testing.T) {
	repo := newFakeRepository()
	service := NewService(repo)
	ctx := context.Background()

	_, err := service.UpsertPage(ctx, 1, UpsertPageInput{MangaID: 42, ChapterID: 7, PageNumber: 3})
	require.NoError(t, err)
	_, err = service.UpsertPage(ctx, 1, UpsertPageInput{MangaID: 42, ChapterID: 8, PageNumber: 1})
	require.NoError(t, err)

	assert.Len(t, repo.bookmarks, 2)
}

func TestUpsertPage_RejectsInvalidPage(t *testing.T) {
	service := NewService(newFakeRepository())

	_, err := service.UpsertPage(context.Background(), 1, UpsertPageInput{MangaID: 42, ChapterID: 7, PageNumber: 0})
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func TestDelete_OwnerOnly(t *testing.T) {
	repo := newFakeRepository()
	service := NewService(repo)
	ctx := context.Background()

	_, err := service.Toggle(ctx, 1, 42)
	require.NoError(t, err)
	stored, err := repo.FindSeries(ctx, 1, 42)
	require.NoError(t, err)

	err = service.Delete(ctx, 2, stored.ID)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "FORBIDDEN", appErr.Code)
	assert.Len(t, repo.bookmarks, 1, "a forbidden delete must leave the bookmark in place")

	require.NoError(t, service.Delete(ctx, 1, stored.ID))
	assert.Empty(t, repo.bookmarks)
}

func TestDelete_UnknownBookmark(t *testing.T) {
	service := NewService(newFakeRepository())

	err := service.Delete(context.Background(), 1, 999)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestList_NewestFirst(t *testing.T) {
	repo := newFakeRepository()
	repo.titles[42] = "Blade of Dawn"
	repo.titles[43] = "Moonlit Courier"
	repo.numbers[7] = 12.5
	service := NewService(repo)
	ctx := context.Background()

	older := &Bookmark{UserID: 1, MangaID: 42, CreatedAt: time.Now().Add(-time.Hour)}
	require.NoError(t, repo.Insert(ctx, older))
	chapterID := int64(7)
	newer := &Bookmark{UserID: 1, MangaID: 43, ChapterID: &chapterID, PageNumber: 4, CreatedAt: time.Now()}
	require.NoError(t, repo.Insert(ctx, newer))
	stranger := &Bookmark{UserID: 2, MangaID: 42, CreatedAt: time.Now()}
	require.NoError(t, repo.Insert(ctx, stranger))

	result, err := service.List(ctx, 1, pagination.Params{Page: 1, Limit: 20})
	require.NoError(t, err)
	require.Len(t, result.Bookmarks, 2)

	assert.Equal(t, "Moonlit Courier", result.Bookmarks[0].MangaTitle)
	require.NotNil(t, result.Bookmarks[0].ChapterNumber)
	assert.Equal(t, 12.5, *result.Bookmarks[0].ChapterNumber)
	assert.Equal(t, "Blade of Dawn", result.Bookmarks[1].MangaTitle)
	assert.Equal(t, 2, result.Meta.Total)
}

func TestList_EmptyIsNotNil(t *testing.T) {
	service := NewService(newFakeRepository())

	result, err := service.List(context.Background(), 1, pagination.Params{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.NotNil(t, result.Bookmarks)
	assert.Empty(t, result.Bookmarks)
}

func TestPageBookmark_MissingIsNotAnError(t *testing.T) {
	service := NewService(newFakeRepository())

	page, found, err := service.PageBookmark(context.Background(), 1, 42, 7)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Zero(t, page)
}
