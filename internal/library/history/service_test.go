// Copyright (c) 2026 Mangabay. All rights reserved.

package history

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
	nextID  int64
	entries map[int64]*Entry
	titles  map[int64]string
	numbers map[int64]float64
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		nextID:  1,
		entries: make(map[int64]*Entry),
		titles:  make(map[int64]string),
		numbers: make(map[int64]float64),
	}
}

func (repo *fakeRepository) Find(_ context.Context, userID, chapterID int64) (*Entry, error) {
	for _, entry := range repo.entries {
		if entry.UserID == userID && entry.ChapterID == chapterID {
			clone := *entry
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("History entry")
}

func (repo *fakeRepository) Insert(_ context.Context, entry *Entry) error {
	entry.ID = repo.nextID
	repo.nextID++
	if entry.ReadAt.IsZero() {
		entry.ReadAt = time.Now()
	}
	clone := *entry
	repo.entries[entry.ID] = &clone
	return nil
}

func (repo *fakeRepository) Touch(_ context.Context, id int64) error {
	entry, ok := repo.entries[id]
	if !ok {
		return apperr.NotFound("History entry")
	}
	entry.ReadAt = time.Now()
	return nil
}

func (repo *fakeRepository) userViews(userID int64) []View {
	var views []View
	for _, entry := range repo.entries {
		if entry.UserID != userID {
			continue
		}
		views = append(views, View{
			Entry:         *entry,
			MangaTitle:    repo.titles[entry.MangaID],
			ChapterNumber: repo.numbers[entry.ChapterID],
		})
	}
	sort.Slice(views, func(i, j int) bool { return views[i].ReadAt.After(views[j].ReadAt) })
	return views
}

func (repo *fakeRepository) ListByUser(_ context.Context, userID int64, limit, offset int) ([]View, int, error) {
	views := repo.userViews(userID)
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

func (repo *fakeRepository) Recent(_ context.Context, userID int64, n int) ([]View, error) {
	views := repo.userViews(userID)
	if len(views) > n {
		views = views[:n]
	}
	return views, nil
}

func (repo *fakeRepository) Clear(_ context.Context, userID int64) error {
	for id, entry := range repo.entries {
		if entry.UserID == userID {
			delete(repo.entries, id)
		}
	}
	return nil
}

func (repo *fakeRepository) DistinctMangaCount(_ context.Context, userID int64) (int, error) {
	seen := make(map[int64]bool)
	for _, entry := range repo.entries {
		if entry.UserID == userID {
			seen[entry.MangaID] = true
		}
	}
	return len(seen), nil
}

// # Tests

func TestRecordRead_DeduplicatesPerChapter(t *testing.T) {
	repo := newFakeRepository()
	service := NewService(repo)
	ctx := context.Background()

	require.NoError(t, service.RecordRead(ctx, 1, 42, 7))
	require.Len(t, repo.entries, 1)

	first, err := repo.Find(ctx, 1, 7)
	require.NoError(t, err)
	assert.Zero(t, first.ReadDuration, "a fresh entry starts with no reading time")

	time.Sleep(5 * time.Millisecond)
	require.NoError(t, service.RecordRead(ctx, 1, 42, 7))

	assert.Len(t, repo.entries, 1, "re-reading a chapter must not add a row")
	second, err := repo.Find(ctx, 1, 7)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.True(t, second.ReadAt.After(first.ReadAt), "a re-read must refresh the timestamp")
}

func TestRecordRead_SeparatesUsersAndChapters(t *testing.T) {
	repo := newFakeRepository()
	service := NewService(repo)
	ctx := context.Background()

	require.NoError(t, service.RecordRead(ctx, 1, 42, 7))
	require.NoError(t, service.RecordRead(ctx, 1, 42, 8))
	require.NoError(t, service.RecordRead(ctx, 2, 42, 7))

	assert.Len(t, repo.entries, 3)
}

func TestList_MostRecentFirst(t *testing.T) {
	repo := newFakeRepository()
	repo.titles[42] = "Blade of Dawn"
	repo.numbers[7] = 1
	repo.numbers[8] = 2
	service := NewService(repo)
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, &Entry{UserID: 1, MangaID: 42, ChapterID: 7, ReadAt: time.Now().Add(-time.Hour)}))
	require.NoError(t, repo.Insert(ctx, &Entry{UserID: 1, MangaID: 42, ChapterID: 8, ReadAt: time.Now()}))

	result, err := service.List(ctx, 1, pagination.Params{Page: 1, Limit: 20})
	require.NoError(t, err)
	require.Len(t, result.Entries, 2)

	assert.Equal(t, float64(2), result.Entries[0].ChapterNumber)
	assert.Equal(t, float64(1), result.Entries[1].ChapterNumber)
	assert.Equal(t, "Blade of Dawn", result.Entries[0].MangaTitle)
	assert.Equal(t, 2, result.Meta.Total)
}

func TestList_EmptyIsNotNil(t *testing.T) {
	service := NewService(newFakeRepository())

	result, err := service.List(context.Background(), 1, pagination.Params{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.NotNil(t, result.Entries)
	assert.Empty(t, result.Entries)
}

func TestClear_OnlyTouchesOwnHistory(t *testing.T) {
	repo := newFakeRepository()
	service := NewService(repo)
	ctx := context.Background()

	require.NoError(t, service.RecordRead(ctx, 1, 42, 7))
	require.NoError(t, service.RecordRead(ctx, 2, 42, 7))

	require.NoError(t, service.Clear(ctx, 1))

	assert.Len(t, repo.entries, 1)
	_, err := repo.Find(ctx, 2, 7)
	assert.NoError(t, err)
}

func TestRecentAndDistinctCount(t *testing.T) {
	repo := newFakeRepository()
	service := NewService(repo)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 7; i++ {
		require.NoError(t, repo.Insert(ctx, &Entry{
			UserID:    1,
			MangaID:   int64(40 + i%2),
			ChapterID: int64(100 + i),
			ReadAt:    base.Add(time.Duration(i) * time.Minute),
		}))
	}

	recent, err := service.Recent(ctx, 1, 5)
	require.NoError(t, err)
	require.Len(t, recent, 5)
	assert.Equal(t, int64(106), recent[0].ChapterID)

	count, err := service.DistinctMangaCount(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
