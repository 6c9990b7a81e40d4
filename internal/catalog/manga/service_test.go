// Copyright (c) 2026 Mangabay. All rights reserved.

package manga

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tranquochuy/mangabay/internal/platform/apperr"
	"github.com/tranquochuy/mangabay/pkg/pagination"
)

// # In-Memory Fakes

type fakeRepository struct {
	manga     map[int64]*Manga
	chapters  map[int64][]ChapterSummary
	bookmarks map[[2]int64]bool // (userID, mangaID) → series-level bookmark
	paths     map[int64][]string
	nextID    int64
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		manga:     map[int64]*Manga{},
		chapters:  map[int64][]ChapterSummary{},
		bookmarks: map[[2]int64]bool{},
		paths:     map[int64][]string{},
		nextID:    1,
	}
}

func (f *fakeRepository) List(_ context.Context, filter Filter, limit, offset int) ([]*Manga, int, error) {
	var matched []*Manga
	for _, m := range f.manga {
		haystack := m.Title + m.Author + m.Description
		if filter.TitleAuthorOnly {
			haystack = m.Title + m.Author
		}
		if filter.Query != "" && !strings.Contains(strings.ToLower(haystack), strings.ToLower(filter.Query)) {
			continue
		}
		if filter.Genre != "" && !strings.Contains(strings.ToLower(m.Genres), strings.ToLower(filter.Genre)) {
			continue
		}
		matched = append(matched, m)
	}

	total := len(matched)
	if offset > len(matched) {
		offset = len(matched)
	}
	matched = matched[offset:]
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, total, nil
}

func (f *fakeRepository) GenreColumns(_ context.Context) ([]string, error) {
	var columns []string
	for _, m := range f.manga {
		if m.Genres != "" {
			columns = append(columns, m.Genres)
		}
	}
	return columns, nil
}

func (f *fakeRepository) Featured(_ context.Context, n int) ([]*Manga, error) {
	var results []*Manga
	for _, m := range f.manga {
		if len(results) == n {
			break
		}
		results = append(results, m)
	}
	return results, nil
}

func (f *fakeRepository) FindByID(_ context.Context, id int64) (*Manga, error) {
	if m, ok := f.manga[id]; ok {
		return m, nil
	}
	return nil, apperr.NotFound("Manga")
}

func (f *fakeRepository) ChaptersByManga(_ context.Context, mangaID int64) ([]ChapterSummary, error) {
	return f.chapters[mangaID], nil
}

func (f *fakeRepository) HasBookmark(_ context.Context, userID, mangaID int64) (bool, error) {
	return f.bookmarks[[2]int64{userID, mangaID}], nil
}

func (f *fakeRepository) Create(_ context.Context, m *Manga) error {
	m.ID = f.nextID
	f.nextID++
	m.CreatedAt = time.Now()
	f.manga[m.ID] = m
	return nil
}

func (f *fakeRepository) Update(_ context.Context, m *Manga) error {
	if _, ok := f.manga[m.ID]; !ok {
		return apperr.NotFound("Manga")
	}
	f.manga[m.ID] = m
	return nil
}

func (f *fakeRepository) DeleteCascade(_ context.Context, mangaID int64) error {
	if _, ok := f.manga[mangaID]; !ok {
		return apperr.NotFound("Manga")
	}
	delete(f.manga, mangaID)
	delete(f.chapters, mangaID)
	delete(f.paths, mangaID)
	return nil
}

func (f *fakeRepository) PageImagePaths(_ context.Context, mangaID int64) ([]string, error) {
	return f.paths[mangaID], nil
}

type fakeFileRemover struct {
	removed []string
}

func (f *fakeFileRemover) Remove(refPath string) {
	f.removed = append(f.removed, refPath)
}

func newTestService() (*Service, *fakeRepository, *fakeFileRemover) {
	repo := newFakeRepository()
	files := &fakeFileRemover{}
	return NewService(repo, files), repo, files
}

func seed(t *testing.T, service *Service, title, genres string) *Manga {
	t.Helper()
	entity, err := service.Create(context.Background(), UpsertInput{
		Title:  title,
		Author: "Author",
		Genres: genres,
	})
	require.NoError(t, err)
	return entity
}

// # Discovery

func TestService_List_GenreVocabulary(t *testing.T) {
	service, _, _ := newTestService()
	seed(t, service, "One", "Action, Fantasy")
	seed(t, service, "Two", "Fantasy,  Romance ")
	seed(t, service, "Three", "")

	result, err := service.List(context.Background(), ListInput{
		Page: pagination.Params{Page: 1, Limit: 12},
	})
	require.NoError(t, err)

	// Tokens are split on commas, trimmed, deduplicated, and sorted.
	assert.Equal(t, []string{"Action", "Fantasy", "Romance"}, result.Genres)
	assert.Equal(t, 3, result.Meta.Total)
}

func TestService_List_Filtered(t *testing.T) {
	service, _, _ := newTestService()
	seed(t, service, "Solo Farming", "Fantasy")
	seed(t, service, "City Hunter", "Action")

	result, err := service.List(context.Background(), ListInput{
		Genre: "fantasy",
		Page:  pagination.Params{Page: 1, Limit: 12},
	})
	require.NoError(t, err)
	require.Len(t, result.Manga, 1)
	assert.Equal(t, "Solo Farming", result.Manga[0].Title)
}

func TestService_AdminList_IgnoresDescriptions(t *testing.T) {
	service, _, _ := newTestService()
	_, err := service.Create(context.Background(), UpsertInput{
		Title:       "Solo Farming",
		Author:      "Author",
		Description: "A dragon teaches agriculture.",
	})
	require.NoError(t, err)

	page := pagination.Params{Page: 1, Limit: 10}

	// The reader-facing search still matches the synopsis.
	public, err := service.List(context.Background(), ListInput{Query: "dragon", Page: page})
	require.NoError(t, err)
	require.Len(t, public.Manga, 1)

	// The back-office list matches title and author only.
	admin, _, err := service.AdminList(context.Background(), "dragon", page)
	require.NoError(t, err)
	assert.Empty(t, admin)

	admin, _, err = service.AdminList(context.Background(), "farming", page)
	require.NoError(t, err)
	require.Len(t, admin, 1)
}

func TestService_Get(t *testing.T) {
	service, repo, _ := newTestService()
	entity := seed(t, service, "Solo Farming", "Fantasy")
	repo.chapters[entity.ID] = []ChapterSummary{
		{ID: 1, Number: 1}, {ID: 2, Number: 1.5}, {ID: 3, Number: 2},
	}
	repo.bookmarks[[2]int64{7, entity.ID}] = true

	detail, err := service.Get(context.Background(), entity.ID, 7)
	require.NoError(t, err)
	assert.True(t, detail.Bookmarked)
	require.Len(t, detail.Chapters, 3)

	// Chapter numbers arrive monotonically increasing.
	for i := 1; i < len(detail.Chapters); i++ {
		assert.Less(t, detail.Chapters[i-1].Number, detail.Chapters[i].Number)
	}

	// Anonymous readers never see a bookmark.
	anonymous, err := service.Get(context.Background(), entity.ID, 0)
	require.NoError(t, err)
	assert.False(t, anonymous.Bookmarked)
}

func TestService_Get_NotFound(t *testing.T) {
	service, _, _ := newTestService()

	_, err := service.Get(context.Background(), 42, 0)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

// # Admin Management

func TestService_Update_ReplacesCover(t *testing.T) {
	service, _, files := newTestService()
	entity := seed(t, service, "Solo Farming", "Fantasy")
	entity.CoverImageURL = "/static/uploads/covers/old.png"

	updated, err := service.Update(context.Background(), entity.ID, UpsertInput{
		Title:         "Solo Farming",
		Author:        "Author",
		CoverImageURL: "/static/uploads/covers/new.png",
	})
	require.NoError(t, err)
	assert.Equal(t, "/static/uploads/covers/new.png", updated.CoverImageURL)
	assert.Equal(t, []string{"/static/uploads/covers/old.png"}, files.removed)
}

func TestService_Update_KeepsCoverWhenAbsent(t *testing.T) {
	service, _, files := newTestService()
	entity := seed(t, service, "Solo Farming", "Fantasy")
	entity.CoverImageURL = "/static/uploads/covers/old.png"

	updated, err := service.Update(context.Background(), entity.ID, UpsertInput{
		Title:  "Renamed",
		Author: "Author",
	})
	require.NoError(t, err)
	assert.Equal(t, "/static/uploads/covers/old.png", updated.CoverImageURL)
	assert.Empty(t, files.removed)
}

func TestService_Delete_CascadesAndCleansFiles(t *testing.T) {
	service, repo, files := newTestService()
	entity := seed(t, service, "Solo Farming", "Fantasy")
	repo.paths[entity.ID] = []string{
		"/static/uploads/pages/p1.png",
		"/static/uploads/covers/c.png",
	}

	require.NoError(t, service.Delete(context.Background(), entity.ID))

	_, err := service.Get(context.Background(), entity.ID, 0)
	require.Error(t, err)
	assert.ElementsMatch(t, repo.paths[entity.ID], nil)
	assert.Len(t, files.removed, 2)
}

func TestService_Delete_NotFound(t *testing.T) {
	service, _, files := newTestService()

	err := service.Delete(context.Background(), 42)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
	assert.Empty(t, files.removed)
}
